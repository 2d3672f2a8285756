package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/config"
	"github.com/tidyhome/homeservices-api/middleware"
	"github.com/tidyhome/homeservices-api/services"
	"github.com/tidyhome/homeservices-api/utils"
	"gorm.io/gorm"
)

// Collection names used in cache keys
const (
	collectionBookings           = "bookings"
	collectionQuoteRequests      = "quote_requests"
	collectionWorkerApplications = "worker_applications"
	collectionEnquiries          = "enquiries"
)

const defaultCacheTTL = 5 * time.Minute

// requireUserID writes a 401 and returns false when the request has no user
func requireUserID(c *gin.Context) (string, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user ID from token")
		return "", false
	}
	return userID, true
}

// respondValidation writes a 400 VALIDATION_ERROR with field details
func respondValidation(c *gin.Context, message string, details interface{}) {
	utils.RespondErrorDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", message, details)
}

// respondDBError logs err and writes the generic retryable failure
func respondDBError(c *gin.Context, err error, message string) {
	utils.Logger.WithError(err).WithField("path", c.FullPath()).Error(message)
	utils.RespondError(c, http.StatusInternalServerError, "DATABASE_ERROR", message+". Please try again.")
}

// isUniqueViolation detects duplicate keys on both PostgreSQL and SQLite
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func cacheTTL() time.Duration {
	if cfg := config.GetConfig(); cfg != nil && cfg.CacheTTL > 0 {
		return cfg.CacheTTL
	}
	return defaultCacheTTL
}

// cachedList serves a list query from the cache, filling it on a miss.
// Cache failures fall through to the database.
func cachedList[T any](ctx context.Context, key string, query func(db *gorm.DB) *gorm.DB) ([]T, error) {
	cache := services.GetCache()

	var rows []T
	if cache != nil {
		err := services.GetJSON(ctx, cache, key, &rows)
		if err == nil {
			return rows, nil
		}
		if !errors.Is(err, services.ErrCacheMiss) {
			utils.Logger.WithError(err).WithField("key", key).Warn("Cache read failed")
		}
	}

	rows = make([]T, 0)
	if err := query(config.GetDB().WithContext(ctx)).Find(&rows).Error; err != nil {
		return nil, err
	}

	if cache != nil {
		if err := services.SetJSON(ctx, cache, key, rows, cacheTTL()); err != nil {
			utils.Logger.WithError(err).WithField("key", key).Warn("Cache write failed")
		}
	}
	return rows, nil
}

// invalidate drops cached lists after a successful mutation
func invalidate(ctx context.Context, keys ...string) {
	cache := services.GetCache()
	if cache == nil || len(keys) == 0 {
		return
	}
	if err := cache.Delete(ctx, keys...); err != nil {
		utils.Logger.WithError(err).WithField("keys", keys).Warn("Cache invalidation failed")
	}
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
