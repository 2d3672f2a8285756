package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/config"
	"github.com/tidyhome/homeservices-api/models"
	"github.com/tidyhome/homeservices-api/services"
	"github.com/tidyhome/homeservices-api/utils"
	"gorm.io/gorm"
)

// UpdateStatusRequest changes the status of one row
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateReviewRequest changes status and/or admin notes of one row
type UpdateReviewRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

// SetRoleRequest assigns a role to a user
type SetRoleRequest struct {
	Role models.Role `json:"role" binding:"required"`
}

// applyReview copies a review onto the row fields and returns the column updates
func applyReview(req UpdateReviewRequest, status *string, notes **string) map[string]interface{} {
	updates := map[string]interface{}{}
	if req.Status != "" {
		updates["status"] = req.Status
		*status = req.Status
	}
	if req.AdminNotes != nil {
		updates["admin_notes"] = *req.AdminNotes
		*notes = req.AdminNotes
	}
	return updates
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

func respondList[T any](c *gin.Context, collection, what string) ([]T, bool) {
	rows, err := cachedList[T](c.Request.Context(), services.AllListKey(collection), newestFirst)
	if err != nil {
		respondDBError(c, err, "Failed to fetch "+what)
		return nil, false
	}
	return rows, true
}

// ListAllBookings handles GET /api/v1/admin/bookings
func ListAllBookings(c *gin.Context) {
	if rows, ok := respondList[models.Booking](c, collectionBookings, "bookings"); ok {
		utils.RespondData(c, http.StatusOK, rows)
	}
}

// ListAllQuoteRequests handles GET /api/v1/admin/quote-requests
func ListAllQuoteRequests(c *gin.Context) {
	if rows, ok := respondList[models.QuoteRequest](c, collectionQuoteRequests, "quote requests"); ok {
		utils.RespondData(c, http.StatusOK, rows)
	}
}

// ListAllWorkerApplications handles GET /api/v1/admin/worker-applications
func ListAllWorkerApplications(c *gin.Context) {
	rows, ok := respondList[models.WorkerApplication](c, collectionWorkerApplications, "worker applications")
	if !ok {
		return
	}
	docs := services.GetDocumentService()
	for i := range rows {
		services.AttachDocumentURLs(c.Request.Context(), docs, &rows[i])
	}
	utils.RespondData(c, http.StatusOK, rows)
}

// ListAllEnquiries handles GET /api/v1/admin/enquiries
func ListAllEnquiries(c *gin.Context) {
	if rows, ok := respondList[models.Enquiry](c, collectionEnquiries, "enquiries"); ok {
		utils.RespondData(c, http.StatusOK, rows)
	}
}

// loadForUpdate fetches row id into dest, writing 404/500 on failure
func loadForUpdate(c *gin.Context, db *gorm.DB, id uint, dest interface{}, what string) bool {
	err := db.First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusNotFound, "NOT_FOUND", what+" not found")
		return false
	}
	if err != nil {
		respondDBError(c, err, "Failed to load "+what)
		return false
	}
	return true
}

// UpdateBookingStatus handles PATCH /api/v1/admin/bookings/:id/status. Last write wins.
func UpdateBookingStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request data", err.Error())
		return
	}
	if !models.IsValidBookingStatus(req.Status) {
		respondValidation(c, "Invalid booking status", gin.H{"status": req.Status})
		return
	}

	ctx := c.Request.Context()
	db := config.GetDB().WithContext(ctx)
	var b models.Booking
	if !loadForUpdate(c, db, id, &b, "Booking") {
		return
	}
	if err := db.Model(&b).Update("status", req.Status).Error; err != nil {
		respondDBError(c, err, "Failed to update booking")
		return
	}
	b.Status = req.Status
	invalidate(ctx, services.UserListKey(collectionBookings, b.UserID), services.AllListKey(collectionBookings))

	utils.RespondData(c, http.StatusOK, b)
}

// UpdateQuoteRequest handles PATCH /api/v1/admin/quote-requests/:id
func UpdateQuoteRequest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request data", err.Error())
		return
	}
	if req.Status == "" && req.AdminNotes == nil {
		respondValidation(c, "Provide a status or admin notes", nil)
		return
	}
	if req.Status != "" && !models.IsValidQuoteStatus(req.Status) {
		respondValidation(c, "Invalid quote request status", gin.H{"status": req.Status})
		return
	}

	ctx := c.Request.Context()
	db := config.GetDB().WithContext(ctx)
	var q models.QuoteRequest
	if !loadForUpdate(c, db, id, &q, "Quote request") {
		return
	}

	updates := applyReview(req, &q.Status, &q.AdminNotes)
	if err := db.Model(&q).Updates(updates).Error; err != nil {
		respondDBError(c, err, "Failed to update quote request")
		return
	}
	invalidate(ctx, services.UserListKey(collectionQuoteRequests, q.UserID), services.AllListKey(collectionQuoteRequests))

	utils.RespondData(c, http.StatusOK, q)
}

// UpdateWorkerApplication handles PATCH /api/v1/admin/worker-applications/:id.
// A decision is copied to the applicant's profile worker status.
func UpdateWorkerApplication(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request data", err.Error())
		return
	}
	if req.Status == "" && req.AdminNotes == nil {
		respondValidation(c, "Provide a status or admin notes", nil)
		return
	}
	if req.Status != "" && !models.IsValidApplicationStatus(req.Status) {
		respondValidation(c, "Invalid application status", gin.H{"status": req.Status})
		return
	}

	ctx := c.Request.Context()
	db := config.GetDB().WithContext(ctx)
	var app models.WorkerApplication
	if !loadForUpdate(c, db, id, &app, "Application") {
		return
	}

	updates := applyReview(req, &app.Status, &app.AdminNotes)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&app).Updates(updates).Error; err != nil {
			return err
		}
		if req.Status == "" || app.UserID == "" {
			return nil
		}
		return tx.Model(&models.Profile{}).
			Where("user_id = ?", app.UserID).
			Update("worker_status", models.WorkerStatusForApplication(req.Status)).Error
	})
	if err != nil {
		respondDBError(c, err, "Failed to update application")
		return
	}
	invalidate(ctx, services.UserListKey(collectionWorkerApplications, app.UserID), services.AllListKey(collectionWorkerApplications))

	services.AttachDocumentURLs(ctx, services.GetDocumentService(), &app)
	utils.RespondData(c, http.StatusOK, app)
}

// UpdateEnquiry handles PATCH /api/v1/admin/enquiries/:id
func UpdateEnquiry(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request data", err.Error())
		return
	}
	if !models.IsValidEnquiryStatus(req.Status) {
		respondValidation(c, "Invalid enquiry status", gin.H{"status": req.Status})
		return
	}

	ctx := c.Request.Context()
	db := config.GetDB().WithContext(ctx)
	var e models.Enquiry
	if !loadForUpdate(c, db, id, &e, "Enquiry") {
		return
	}
	if err := db.Model(&e).Update("status", req.Status).Error; err != nil {
		respondDBError(c, err, "Failed to update enquiry")
		return
	}
	e.Status = req.Status
	invalidate(ctx, services.AllListKey(collectionEnquiries))

	utils.RespondData(c, http.StatusOK, e)
}

// SetUserRole handles PUT /api/v1/admin/users/:user_id/role
func SetUserRole(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		respondValidation(c, "user_id is required", nil)
		return
	}

	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request data", err.Error())
		return
	}
	if !req.Role.Valid() {
		respondValidation(c, "Invalid role", gin.H{"role": req.Role})
		return
	}

	db := config.GetDB().WithContext(c.Request.Context())
	var role models.UserRole
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&role).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			role = models.UserRole{UserID: userID, Role: req.Role}
			if err := tx.Create(&role).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&role).Update("role", req.Role).Error; err != nil {
				return err
			}
			role.Role = req.Role
		}

		if req.Role != models.RoleWorker {
			return nil
		}
		// New workers wait for approval
		return tx.Model(&models.Profile{}).
			Where("user_id = ? AND worker_status IS NULL", userID).
			Update("worker_status", models.WorkerPendingApproval).Error
	})
	if err != nil {
		respondDBError(c, err, "Failed to update role")
		return
	}

	utils.Logger.WithField("user_id", userID).WithField("role", req.Role).Info("Role updated")
	utils.RespondData(c, http.StatusOK, role)
}

// SetWorkerStatus handles PATCH /api/v1/admin/workers/:user_id/status
func SetWorkerStatus(c *gin.Context) {
	userID := c.Param("user_id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request data", err.Error())
		return
	}
	if !models.IsValidWorkerStatus(req.Status) {
		respondValidation(c, "Invalid worker status", gin.H{"status": req.Status})
		return
	}

	db := config.GetDB().WithContext(c.Request.Context())
	var profile models.Profile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusNotFound, "PROFILE_NOT_FOUND", "Profile not found")
		return
	}
	if err != nil {
		respondDBError(c, err, "Failed to load profile")
		return
	}

	if err := db.Model(&profile).Update("worker_status", req.Status).Error; err != nil {
		respondDBError(c, err, "Failed to update worker status")
		return
	}
	profile.WorkerStatus = &req.Status

	utils.RespondData(c, http.StatusOK, profile)
}

// SendBookingConfirmation handles POST /api/v1/notifications/booking-confirmation
func SendBookingConfirmation(c *gin.Context) {
	var req services.BookingEmail
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request data", err.Error())
		return
	}

	sender := services.GetEmailSender()
	if sender == nil {
		utils.RespondError(c, http.StatusServiceUnavailable, "EMAIL_UNAVAILABLE", "Email is not configured")
		return
	}

	id, err := sender.SendBookingConfirmation(c.Request.Context(), req)
	if errors.Is(err, services.ErrEmailNotConfigured) {
		utils.RespondError(c, http.StatusServiceUnavailable, "EMAIL_UNAVAILABLE", "Email is not configured")
		return
	}
	if err != nil {
		utils.Logger.WithError(err).WithField("booking_id", req.BookingID).Error("Failed to send booking confirmation")
		utils.RespondError(c, http.StatusBadGateway, "EMAIL_FAILED", "Failed to send the confirmation email")
		return
	}

	utils.RespondData(c, http.StatusOK, gin.H{"message_id": id})
}
