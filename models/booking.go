package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking is an instantly priced cleaning booking created by the booking wizard
type Booking struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        string         `gorm:"not null;index" json:"user_id"` // Auth0 subject of the client
	ServiceType   string         `gorm:"not null" json:"service_type"`
	Bedrooms      int            `gorm:"not null;check:bedrooms > 0" json:"bedrooms"`
	Bathrooms     int            `gorm:"not null;check:bathrooms > 0" json:"bathrooms"`
	ScheduledDate string         `gorm:"not null" json:"scheduled_date"` // YYYY-MM-DD
	TimeSlot      string         `gorm:"not null" json:"time_slot"`
	Hours         int            `gorm:"not null" json:"hours"`
	TotalPrice    float64        `gorm:"not null" json:"total_price"`
	Address       string         `json:"address"`
	Notes         string         `gorm:"type:text" json:"notes"`
	Status        string         `gorm:"not null;default:'pending'" json:"status"` // pending, confirmed, in_progress, completed, cancelled
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}
