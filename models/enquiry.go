package models

import (
	"time"

	"gorm.io/gorm"
)

// Enquiry is a message left through the public contact form
type Enquiry struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"not null" json:"email"`
	Phone     string         `json:"phone"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Status    string         `gorm:"not null;default:'new'" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Enquiry model
func (Enquiry) TableName() string {
	return "enquiries"
}
