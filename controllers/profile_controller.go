package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/address"
	"github.com/tidyhome/homeservices-api/config"
	"github.com/tidyhome/homeservices-api/guard"
	"github.com/tidyhome/homeservices-api/middleware"
	"github.com/tidyhome/homeservices-api/models"
	"github.com/tidyhome/homeservices-api/utils"
	"gorm.io/gorm"
)

// UpdateProfileRequest is a partial profile update; nil fields are left unchanged
type UpdateProfileRequest struct {
	FullName     *string  `json:"full_name"`
	Email        *string  `json:"email" binding:"omitempty,email"`
	Phone        *string  `json:"phone"`
	AddressLine1 *string  `json:"address_line1"`
	AddressLine2 *string  `json:"address_line2"`
	City         *string  `json:"city"`
	Postcode     *string  `json:"postcode"`
	Latitude     *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
}

func (r UpdateProfileRequest) apply(p *models.Profile) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = trimmed(*src)
		}
	}
	set(&p.FullName, r.FullName)
	set(&p.Email, r.Email)
	set(&p.Phone, r.Phone)
	set(&p.AddressLine1, r.AddressLine1)
	set(&p.AddressLine2, r.AddressLine2)
	set(&p.City, r.City)
	set(&p.Postcode, r.Postcode)
	if r.Latitude != nil {
		p.Latitude = r.Latitude
	}
	if r.Longitude != nil {
		p.Longitude = r.Longitude
	}
}

// UpdateProfile handles PUT /api/v1/profile. Address hints are returned but never block the update.
func UpdateProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request data", err.Error())
		return
	}

	session, err := middleware.CurrentSession(c)
	if err != nil {
		respondDBError(c, err, "Failed to load user")
		return
	}
	if session.Role == nil {
		utils.RespondError(c, http.StatusNotFound, "USER_NOT_FOUND", "User profile not found. Please create a profile first.")
		return
	}

	db := config.GetDB().WithContext(c.Request.Context())
	var profile models.Profile
	err = db.Where("user_id = ?", userID).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = models.Profile{UserID: userID}
	case err != nil:
		respondDBError(c, err, "Failed to load profile")
		return
	}

	req.apply(&profile)
	profile.ProfileCompleted = profile.IsComplete()

	if err := db.Save(&profile).Error; err != nil {
		respondDBError(c, err, "Failed to update profile")
		return
	}

	middleware.InvalidateSession(c)
	session, err = middleware.CurrentSession(c)
	if err != nil {
		respondDBError(c, err, "Failed to load user")
		return
	}

	hints := address.Validate(address.Join(profile.AddressLine1, profile.AddressLine2, profile.City, profile.Postcode))

	utils.RespondData(c, http.StatusOK, gin.H{
		"profile":       profile,
		"address":       hints,
		"next_location": guard.NextLocation(session.Guard()),
	})
}
