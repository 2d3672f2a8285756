package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Profile holds a user's personal and address details (1:1 with the user)
type Profile struct {
	ID               uint     `gorm:"primaryKey" json:"id"`
	UserID           string   `gorm:"uniqueIndex;not null" json:"user_id"` // Auth0 user ID (from 'sub' claim)
	FullName         string   `json:"full_name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	AddressLine1     string   `json:"address_line1"`
	AddressLine2     string   `json:"address_line2"`
	City             string   `json:"city"`
	Postcode         string   `json:"postcode"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	WorkerStatus     *string  `json:"worker_status"` // pending_approval, approved, rejected; nil for non-workers
	ProfileCompleted bool     `gorm:"not null;default:false" json:"profile_completed"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}

// IsComplete reports whether every field needed to take on work is filled in
func (p Profile) IsComplete() bool {
	for _, v := range []string{p.FullName, p.Phone, p.AddressLine1, p.City, p.Postcode} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// WorkerStatusValue returns the worker status or "" when unset
func (p Profile) WorkerStatusValue() string {
	if p.WorkerStatus == nil {
		return ""
	}
	return *p.WorkerStatus
}
