package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/config"
	"github.com/tidyhome/homeservices-api/guard"
	"github.com/tidyhome/homeservices-api/models"
	"gorm.io/gorm"
)

const contextSession = "session"

// Session is the resolved auth, role and profile state of a request
type Session struct {
	UserID  string
	Role    *models.UserRole
	Profile *models.Profile
}

// Guard converts the session into the guard's view of it
func (s *Session) Guard() guard.Session {
	if s == nil || s.UserID == "" {
		return guard.Session{}
	}
	gs := guard.Session{Authenticated: true}
	if s.Role != nil {
		gs.Role = s.Role.Role
	}
	if s.Profile != nil {
		gs.ProfileCompleted = s.Profile.ProfileCompleted
		gs.WorkerStatus = s.Profile.WorkerStatusValue()
	}
	return gs
}

// RoleName returns the session's role or "" when the user has none yet
func (s *Session) RoleName() models.Role {
	if s == nil || s.Role == nil {
		return ""
	}
	return s.Role.Role
}

// LoadSession reads the role and profile rows for userID. Missing rows are not an error:
// a user who has never bootstrapped simply has neither.
func LoadSession(ctx context.Context, db *gorm.DB, userID string) (*Session, error) {
	s := &Session{UserID: userID}
	if userID == "" {
		return s, nil
	}

	var role models.UserRole
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&role).Error
	switch {
	case err == nil:
		s.Role = &role
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	var profile models.Profile
	err = db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	switch {
	case err == nil:
		s.Profile = &profile
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	return s, nil
}

// CurrentSession returns the session for the request, loading it once per request.
// Anonymous requests get an empty session.
func CurrentSession(c *gin.Context) (*Session, error) {
	if v, ok := c.Get(contextSession); ok {
		if s, ok := v.(*Session); ok {
			return s, nil
		}
	}

	userID, _ := GetUserID(c)
	s, err := LoadSession(c.Request.Context(), config.GetDB(), userID)
	if err != nil {
		return nil, err
	}
	c.Set(contextSession, s)
	return s, nil
}

// InvalidateSession drops the cached session so the next read sees fresh rows
func InvalidateSession(c *gin.Context) {
	c.Set(contextSession, nil)
}
