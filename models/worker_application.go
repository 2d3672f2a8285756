package models

import (
	"time"

	"gorm.io/gorm"
)

// WorkerApplication is a job application submitted through the careers form
type WorkerApplication struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	UserID          string  `gorm:"index" json:"user_id"` // applicant, links the decision back to their profile
	FullName        string  `gorm:"not null" json:"full_name"`
	Email           string  `gorm:"not null" json:"email"`
	Phone           string  `gorm:"not null" json:"phone"`
	Address         string  `json:"address"`
	Postcode        string  `json:"postcode"`
	ServicesOffered string  `json:"services_offered"`
	ExperienceYears int     `json:"experience_years"`
	RightToWork     bool    `json:"right_to_work"`
	About           string  `gorm:"type:text" json:"about"`
	CVKey           *string `json:"cv_key"`
	IDDocumentKey   *string `json:"id_document_key"`
	PhotoKey        *string `json:"photo_key"`
	CVURL           *string `gorm:"-" json:"cv_url,omitempty"` // computed, presigned
	IDDocumentURL   *string `gorm:"-" json:"id_document_url,omitempty"`
	PhotoURL        *string `gorm:"-" json:"photo_url,omitempty"`
	Status          string  `gorm:"not null;default:'pending'" json:"status"` // pending, approved, rejected
	AdminNotes      *string `gorm:"type:text" json:"admin_notes"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the WorkerApplication model
func (WorkerApplication) TableName() string {
	return "worker_applications"
}
