package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/address"
	"github.com/tidyhome/homeservices-api/config"
	"github.com/tidyhome/homeservices-api/guard"
	"github.com/tidyhome/homeservices-api/middleware"
	"github.com/tidyhome/homeservices-api/utils"
)

// AddressRequest is free text typed into the manual address field
type AddressRequest struct {
	Address string `json:"address"`
}

// GetNavigation handles GET /api/v1/navigation?path= - tells the client whether to render
// path or where to go instead, with auth, role and profile resolved on the server
func GetNavigation(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		respondValidation(c, "path is required", nil)
		return
	}

	session, err := middleware.CurrentSession(c)
	if err != nil {
		// Unresolved role or profile keeps the client on its loading state
		utils.Logger.WithError(err).Warn("Failed to resolve session for navigation")
		utils.RespondData(c, http.StatusOK, guard.Decide(guard.Session{Loading: true}, path))
		return
	}

	utils.RespondData(c, http.StatusOK, guard.Decide(session.Guard(), path))
}

// ValidateAddress handles POST /api/v1/address/validate. Always 200: hints are advisory.
func ValidateAddress(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request data", err.Error())
		return
	}
	utils.RespondData(c, http.StatusOK, address.Validate(req.Address))
}

// GetMapsConfig handles GET /api/v1/maps/config - the autocomplete key, or 503 so the
// client falls back to manual entry
func GetMapsConfig(c *gin.Context) {
	cfg := config.GetConfig()
	if cfg == nil || cfg.MapsAPIKey == "" {
		utils.RespondError(c, http.StatusServiceUnavailable, "MAPS_UNAVAILABLE", "Address search is unavailable, please type your address")
		return
	}
	utils.RespondData(c, http.StatusOK, gin.H{"api_key": cfg.MapsAPIKey})
}
