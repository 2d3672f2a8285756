package controllers

import (
	"net/http"
	"net/mail"

	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/config"
	"github.com/tidyhome/homeservices-api/models"
	"github.com/tidyhome/homeservices-api/services"
	"github.com/tidyhome/homeservices-api/utils"
	"gorm.io/gorm"
)

// CreateQuoteRequestRequest covers both the removals and the care quote forms
type CreateQuoteRequestRequest struct {
	ServiceType  string `json:"service_type"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Requirements string `json:"requirements"`

	MovingFrom   string `json:"moving_from"`
	MovingTo     string `json:"moving_to"`
	MoveDate     string `json:"move_date"`
	PropertySize string `json:"property_size"`

	CareType      string `json:"care_type"`
	CareRecipient string `json:"care_recipient"`
	Frequency     string `json:"frequency"`
}

// Validate returns a field -> message map of everything missing for the chosen service
func (r *CreateQuoteRequestRequest) Validate() map[string]string {
	fields := make(map[string]string)
	require := func(name, value string) {
		if trimmed(value) == "" {
			fields[name] = "is required"
		}
	}

	switch r.ServiceType {
	case models.QuoteServiceRemovals:
		require("moving_from", r.MovingFrom)
		require("moving_to", r.MovingTo)
		require("move_date", r.MoveDate)
		require("property_size", r.PropertySize)
	case models.QuoteServiceCare:
		require("care_type", r.CareType)
		require("care_recipient", r.CareRecipient)
		require("frequency", r.Frequency)
	case "":
		fields["service_type"] = "is required"
	default:
		fields["service_type"] = "must be removals or care"
	}

	require("contact_name", r.ContactName)
	require("contact_phone", r.ContactPhone)
	require("requirements", r.Requirements)
	if trimmed(r.ContactEmail) == "" {
		fields["contact_email"] = "is required"
	} else if _, err := mail.ParseAddress(trimmed(r.ContactEmail)); err != nil {
		fields["contact_email"] = "must be a valid email address"
	}

	return fields
}

// CreateQuoteRequest handles POST /api/v1/quote-requests - stores one pending quote request.
// Without an Idempotency-Key a resubmission creates another row.
func CreateQuoteRequest(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateQuoteRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request data", err.Error())
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		respondValidation(c, "Please fill in all required fields", fields)
		return
	}

	quote := models.QuoteRequest{
		UserID:        userID,
		ServiceType:   req.ServiceType,
		ContactName:   trimmed(req.ContactName),
		ContactEmail:  trimmed(req.ContactEmail),
		ContactPhone:  trimmed(req.ContactPhone),
		Requirements:  trimmed(req.Requirements),
		Status:        models.QuotePending,
		MovingFrom:    trimmed(req.MovingFrom),
		MovingTo:      trimmed(req.MovingTo),
		MoveDate:      trimmed(req.MoveDate),
		PropertySize:  trimmed(req.PropertySize),
		CareType:      trimmed(req.CareType),
		CareRecipient: trimmed(req.CareRecipient),
		Frequency:     trimmed(req.Frequency),
	}

	ctx := c.Request.Context()
	if err := config.GetDB().WithContext(ctx).Create(&quote).Error; err != nil {
		respondDBError(c, err, "Failed to submit quote request")
		return
	}
	invalidate(ctx, services.UserListKey(collectionQuoteRequests, userID), services.AllListKey(collectionQuoteRequests))

	var whatsappURL string
	if cfg := config.GetConfig(); cfg != nil && cfg.WhatsAppNumber != "" {
		whatsappURL = utils.WhatsAppLink(cfg.WhatsAppNumber, utils.QuoteWhatsAppText(quote.ID, quote.ServiceType))
	}

	utils.RespondData(c, http.StatusCreated, gin.H{"quote_request": quote, "whatsapp_url": whatsappURL})
}

// ListMyQuoteRequests handles GET /api/v1/quote-requests - the caller's requests, newest first
func ListMyQuoteRequests(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rows, err := cachedList[models.QuoteRequest](c.Request.Context(), services.UserListKey(collectionQuoteRequests, userID), func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC")
	})
	if err != nil {
		respondDBError(c, err, "Failed to fetch quote requests")
		return
	}

	utils.RespondData(c, http.StatusOK, rows)
}
