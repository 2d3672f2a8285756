package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/config"
	"github.com/tidyhome/homeservices-api/guard"
	"github.com/tidyhome/homeservices-api/middleware"
	"github.com/tidyhome/homeservices-api/models"
	"github.com/tidyhome/homeservices-api/services"
	"github.com/tidyhome/homeservices-api/utils"
	"gorm.io/gorm"
)

// CreateUserRequest is the optional body of POST /api/v1/users
type CreateUserRequest struct {
	AccountType string `json:"account_type" binding:"omitempty,oneof=client worker"`
}

// SessionView is what the client needs to route a signed-in user
type SessionView struct {
	UserID       string          `json:"user_id"`
	Role         models.Role     `json:"role"`
	Profile      *models.Profile `json:"profile"`
	WorkerStatus string          `json:"worker_status,omitempty"`
	NextLocation string          `json:"next_location"`
}

func sessionView(s *middleware.Session) SessionView {
	view := SessionView{
		UserID:       s.UserID,
		Role:         s.RoleName(),
		Profile:      s.Profile,
		NextLocation: guard.NextLocation(s.Guard()),
	}
	if s.Profile != nil {
		view.WorkerStatus = s.Profile.WorkerStatusValue()
	}
	return view
}

// CreateUser handles POST /api/v1/users - creates the caller's role and profile from Auth0 userinfo.
// Self sign-up can only produce clients and workers.
func CreateUser(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateUserRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, "Invalid request data", err.Error())
			return
		}
	}

	accessToken, err := middleware.GetAccessToken(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "MISSING_TOKEN", "Access token not found")
		return
	}

	userInfo, err := lookupUserInfo(c, accessToken)
	if errors.Is(err, services.ErrTokenRejected) {
		utils.RespondError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Auth0 rejected the access token")
		return
	}
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to fetch userinfo")
		utils.RespondError(c, http.StatusBadGateway, "AUTH0_ERROR", "Failed to fetch user information from Auth0")
		return
	}
	if userInfo.Email == "" {
		utils.RespondError(c, http.StatusBadRequest, "MISSING_EMAIL", "Email not provided by Auth0")
		return
	}

	role := models.RoleClient
	if custom, ok := middleware.GetCustomClaims(c); ok && models.Role(custom.SignupRole()) == models.RoleWorker {
		role = models.RoleWorker
	}
	if req.AccountType != "" {
		role = models.Role(req.AccountType)
	}

	profile := models.Profile{
		UserID:   userID,
		FullName: userInfo.Name,
		Email:    userInfo.Email,
	}
	if role == models.RoleWorker {
		status := models.WorkerPendingApproval
		profile.WorkerStatus = &status
	}

	db := config.GetDB().WithContext(c.Request.Context())
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.UserRole{UserID: userID, Role: role}).Error; err != nil {
			return err
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			utils.RespondError(c, http.StatusConflict, "USER_EXISTS", "This account has already been set up")
			return
		}
		respondDBError(c, err, "Failed to create user")
		return
	}

	middleware.InvalidateSession(c)
	session, err := middleware.CurrentSession(c)
	if err != nil {
		respondDBError(c, err, "Failed to load user")
		return
	}

	utils.Logger.WithField("user_id", userID).WithField("role", role).Info("User created")
	utils.RespondData(c, http.StatusCreated, sessionView(session))
}

// lookupUserInfo asks the identity provider for the caller's profile. Without one, tokens are
// signed locally and the profile comes from their claims.
func lookupUserInfo(c *gin.Context, accessToken string) (*services.Auth0UserInfo, error) {
	if provider := services.GetUserInfoProvider(); provider != nil {
		return provider.GetUserInfo(c.Request.Context(), accessToken)
	}

	claims, err := middleware.GetClaims(c)
	if err != nil {
		return nil, fmt.Errorf("read token claims: %w", services.ErrTokenRejected)
	}
	info := &services.Auth0UserInfo{Sub: claims.RegisteredClaims.Subject}
	if custom, ok := claims.CustomClaims.(*middleware.CustomClaims); ok {
		info.Email = trimmed(custom.Email)
		info.Name = trimmed(custom.Name)
	}
	return info, nil
}

// GetMe handles GET /api/v1/users/me - returns the caller's role, profile and landing page
func GetMe(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
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

	utils.RespondData(c, http.StatusOK, sessionView(session))
}
