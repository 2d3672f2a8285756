package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/config"
	"github.com/tidyhome/homeservices-api/models"
	"github.com/tidyhome/homeservices-api/services"
	"github.com/tidyhome/homeservices-api/utils"
)

// CreateEnquiryRequest is the public contact form
type CreateEnquiryRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"max=50"`
	Message string `json:"message" binding:"required,max=5000"`
}

// CreateEnquiry handles POST /api/v1/enquiries
func CreateEnquiry(c *gin.Context) {
	var req CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request data", err.Error())
		return
	}
	if trimmed(req.Name) == "" || trimmed(req.Message) == "" {
		respondValidation(c, "Name and message are required", nil)
		return
	}

	enquiry := models.Enquiry{
		Name:    trimmed(req.Name),
		Email:   trimmed(req.Email),
		Phone:   trimmed(req.Phone),
		Message: trimmed(req.Message),
		Status:  models.EnquiryNew,
	}

	ctx := c.Request.Context()
	if err := config.GetDB().WithContext(ctx).Create(&enquiry).Error; err != nil {
		respondDBError(c, err, "Failed to send your message")
		return
	}
	invalidate(ctx, services.AllListKey(collectionEnquiries))

	utils.RespondData(c, http.StatusCreated, enquiry)
}
