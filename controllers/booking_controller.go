package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/address"
	"github.com/tidyhome/homeservices-api/booking"
	"github.com/tidyhome/homeservices-api/config"
	"github.com/tidyhome/homeservices-api/middleware"
	"github.com/tidyhome/homeservices-api/models"
	"github.com/tidyhome/homeservices-api/services"
	"github.com/tidyhome/homeservices-api/utils"
	"gorm.io/gorm"
)

// Wizard actions
const (
	WizardNext = "next"
	WizardBack = "back"
)

// WizardRequest is one step transition of the booking wizard
type WizardRequest struct {
	State  booking.Wizard `json:"state"`
	Action string         `json:"action" binding:"omitempty,oneof=next back"`
}

// WizardResponse is the wizard state after a transition
type WizardResponse struct {
	State      booking.Wizard `json:"state"`
	CanAdvance bool           `json:"can_advance"`
	Hours      int            `json:"hours"`
	Price      float64        `json:"price"`
}

// wizardResponse leaves hours and price at zero until the room counts are in range
func wizardResponse(w *booking.Wizard) WizardResponse {
	resp := WizardResponse{State: *w, CanAdvance: w.CanAdvance()}
	if booking.RoomsInRange(w.Bedrooms, w.Bathrooms) {
		resp.Hours = w.Hours()
		resp.Price = w.Price()
	}
	return resp
}

// CreateBookingRequest is the confirm step of the booking wizard.
// Any client-computed price is ignored.
type CreateBookingRequest struct {
	ServiceType string `json:"service_type"`
	Bedrooms    int    `json:"bedrooms"`
	Bathrooms   int    `json:"bathrooms"`
	Date        string `json:"date"`
	TimeSlot    string `json:"time_slot"`
	Address     string `json:"address"`
	Notes       string `json:"notes" binding:"max=2000"`
}

// now is replaced in tests
var now = time.Now

// BookingWizard handles POST /api/v1/bookings/wizard - applies one step transition
func BookingWizard(c *gin.Context) {
	var req WizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request data", err.Error())
		return
	}

	w := req.State
	if w.Step == "" {
		w.Step = booking.StepService
	}

	var err error
	switch req.Action {
	case WizardNext:
		err = w.Next()
	case WizardBack:
		err = w.Back()
	}

	switch {
	case errors.Is(err, booking.ErrStepIncomplete):
		utils.RespondErrorDetails(c, http.StatusBadRequest, "STEP_INCOMPLETE", "Please complete this step before continuing", wizardResponse(&w))
		return
	case errors.Is(err, booking.ErrAtFirstStep), errors.Is(err, booking.ErrAtLastStep):
		utils.RespondErrorDetails(c, http.StatusBadRequest, "INVALID_STEP_TRANSITION", err.Error(), wizardResponse(&w))
		return
	case errors.Is(err, booking.ErrUnknownStep):
		respondValidation(c, "Unknown wizard step", gin.H{"step": string(w.Step)})
		return
	}

	utils.RespondData(c, http.StatusOK, wizardResponse(&w))
}

// GetBookingPrice handles GET /api/v1/bookings/price?bedrooms=&bathrooms=
func GetBookingPrice(c *gin.Context) {
	bedrooms, err1 := strconv.Atoi(c.Query("bedrooms"))
	bathrooms, err2 := strconv.Atoi(c.Query("bathrooms"))
	if err1 != nil || err2 != nil || !booking.RoomsInRange(bedrooms, bathrooms) {
		respondValidation(c, fmt.Sprintf("bedrooms and bathrooms must be whole numbers from 1 to %d", booking.MaxRooms), nil)
		return
	}

	utils.RespondData(c, http.StatusOK, gin.H{
		"bedrooms":  bedrooms,
		"bathrooms": bathrooms,
		"hours":     booking.Hours(bedrooms, bathrooms),
		"price":     booking.Price(bedrooms, bathrooms),
	})
}

// GetBookingOptions handles GET /api/v1/booking-slots
func GetBookingOptions(c *gin.Context) {
	utils.RespondData(c, http.StatusOK, gin.H{
		"service_types": booking.ServiceTypes,
		"time_slots":    booking.TimeSlots,
		"base_price":    booking.BasePrice,
		"base_hours":    booking.BaseHours,
		"hourly_rate":   booking.HourlyRate,
	})
}

// CreateBooking handles POST /api/v1/bookings - stores one pending booking priced on the server
func CreateBooking(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request data", err.Error())
		return
	}

	w := booking.Wizard{
		Step:        booking.StepConfirm,
		ServiceType: trimmed(req.ServiceType),
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Date:        trimmed(req.Date),
		TimeSlot:    trimmed(req.TimeSlot),
	}
	if err := w.Validate(now()); err != nil {
		var verr *booking.ValidationError
		if errors.As(err, &verr) {
			respondValidation(c, "Please check your booking details", verr.Fields)
			return
		}
		respondValidation(c, err.Error(), nil)
		return
	}

	b := models.Booking{
		UserID:        userID,
		ServiceType:   w.ServiceType,
		Bedrooms:      w.Bedrooms,
		Bathrooms:     w.Bathrooms,
		ScheduledDate: w.Date,
		TimeSlot:      w.TimeSlot,
		Hours:         w.Hours(),
		TotalPrice:    w.Price(),
		Address:       trimmed(req.Address),
		Notes:         trimmed(req.Notes),
		Status:        models.BookingPending,
	}

	ctx := c.Request.Context()
	if err := config.GetDB().WithContext(ctx).Create(&b).Error; err != nil {
		respondDBError(c, err, "Failed to create booking")
		return
	}
	invalidate(ctx, services.UserListKey(collectionBookings, userID), services.AllListKey(collectionBookings))

	publishBookingCreated(c, b)

	var whatsappURL string
	if cfg := config.GetConfig(); cfg != nil && cfg.WhatsAppNumber != "" {
		whatsappURL = utils.WhatsAppLink(cfg.WhatsAppNumber,
			utils.BookingWhatsAppText(b.ID, b.ServiceType, b.ScheduledDate, b.TimeSlot, b.TotalPrice))
	}

	data := gin.H{"booking": b, "whatsapp_url": whatsappURL}
	if b.Address != "" {
		data["address"] = address.Validate(b.Address)
	}
	utils.RespondData(c, http.StatusCreated, data)
}

// publishBookingCreated hands the booking to the notification pipeline.
// The booking is already stored, so failures are logged and not returned to the client.
func publishBookingCreated(c *gin.Context, b models.Booking) {
	event := services.BookingCreatedEvent{
		BookingID:   b.ID,
		UserID:      b.UserID,
		ServiceType: b.ServiceType,
		Date:        b.ScheduledDate,
		TimeSlot:    b.TimeSlot,
		Bedrooms:    b.Bedrooms,
		Bathrooms:   b.Bathrooms,
		TotalPrice:  b.TotalPrice,
		Address:     b.Address,
		CreatedAt:   b.CreatedAt,
	}
	if session, err := middleware.CurrentSession(c); err == nil && session.Profile != nil {
		event.CustomerName = session.Profile.FullName
		event.CustomerEmail = session.Profile.Email
	}

	if err := services.GetPublisher().PublishBookingCreated(c.Request.Context(), event); err != nil {
		utils.Logger.WithError(err).WithField("booking_id", b.ID).Warn("Failed to publish booking.created")
	}
}

// ListMyBookings handles GET /api/v1/bookings - the caller's bookings, newest first
func ListMyBookings(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rows, err := cachedList[models.Booking](c.Request.Context(), services.UserListKey(collectionBookings, userID), func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC")
	})
	if err != nil {
		respondDBError(c, err, "Failed to fetch bookings")
		return
	}

	utils.RespondData(c, http.StatusOK, rows)
}
