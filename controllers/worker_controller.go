package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/config"
	"github.com/tidyhome/homeservices-api/middleware"
	"github.com/tidyhome/homeservices-api/models"
	"github.com/tidyhome/homeservices-api/utils"
)

// WorkerJob is a booking as a worker sees it before assignment. The client's identity,
// address and notes are left out.
type WorkerJob struct {
	ID            uint   `json:"id"`
	ServiceType   string `json:"service_type"`
	Bedrooms      int    `json:"bedrooms"`
	Bathrooms     int    `json:"bathrooms"`
	ScheduledDate string `json:"scheduled_date"`
	TimeSlot      string `json:"time_slot"`
	Hours         int    `json:"hours"`
	Status        string `json:"status"`
}

// WorkerDashboard handles GET /api/v1/worker/dashboard - upcoming confirmed jobs for an
// approved worker, soonest first
func WorkerDashboard(c *gin.Context) {
	session, err := middleware.CurrentSession(c)
	if err != nil {
		respondDBError(c, err, "Failed to load user")
		return
	}

	jobs := make([]WorkerJob, 0)
	err = config.GetDB().WithContext(c.Request.Context()).
		Model(&models.Booking{}).
		Where("status IN ?", []string{models.BookingConfirmed, models.BookingInProgress}).
		Order("scheduled_date ASC").Order("time_slot ASC").
		Find(&jobs).Error
	if err != nil {
		respondDBError(c, err, "Failed to fetch jobs")
		return
	}

	utils.RespondData(c, http.StatusOK, gin.H{
		"profile": session.Profile,
		"jobs":    jobs,
	})
}
