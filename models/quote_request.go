package models

import (
	"time"

	"gorm.io/gorm"
)

// Quote request service types
const (
	QuoteServiceRemovals = "removals"
	QuoteServiceCare     = "care"
)

// QuoteRequest is a free-text enquiry that needs manual pricing by an admin
type QuoteRequest struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	UserID       string  `gorm:"not null;index" json:"user_id"`
	ServiceType  string  `gorm:"not null" json:"service_type"` // removals or care
	ContactName  string  `gorm:"not null" json:"contact_name"`
	ContactEmail string  `gorm:"not null" json:"contact_email"`
	ContactPhone string  `gorm:"not null" json:"contact_phone"`
	Requirements string  `gorm:"type:text;not null" json:"requirements"`
	Status       string  `gorm:"not null;default:'pending'" json:"status"` // pending, quoted, accepted, declined, completed
	AdminNotes   *string `gorm:"type:text" json:"admin_notes"`

	// removals
	MovingFrom   string `json:"moving_from,omitempty"`
	MovingTo     string `json:"moving_to,omitempty"`
	MoveDate     string `json:"move_date,omitempty"`
	PropertySize string `json:"property_size,omitempty"`

	// care
	CareType      string `json:"care_type,omitempty"`
	CareRecipient string `json:"care_recipient,omitempty"`
	Frequency     string `json:"frequency,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the QuoteRequest model
func (QuoteRequest) TableName() string {
	return "quote_requests"
}
