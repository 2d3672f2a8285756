package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/config"
	"github.com/tidyhome/homeservices-api/utils"
)

var startedAt = time.Now()

// HealthCheck handles GET /api/v1/health
func HealthCheck(c *gin.Context) {
	utils.RespondData(c, http.StatusOK, gin.H{
		"status":         "ok",
		"message":        "Home Services API is running",
		"uptime_seconds": int64(time.Since(startedAt).Seconds()),
	})
}

// DatabaseStatus handles GET /api/v1/database/status. It pings the pool and lists the migrated tables.
func DatabaseStatus(c *gin.Context) {
	db := config.GetDB()
	if db == nil {
		utils.RespondError(c, http.StatusServiceUnavailable, "DATABASE_ERROR", "Database is not connected")
		return
	}

	ctx := c.Request.Context()
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		utils.Logger.WithError(err).Error("Database ping failed")
		utils.RespondError(c, http.StatusServiceUnavailable, "DATABASE_CONNECTION_ERROR", "Database connection failed")
		return
	}

	tables, err := db.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		respondDBError(c, err, "Failed to query tables")
		return
	}

	stats := sqlDB.Stats()
	utils.RespondData(c, http.StatusOK, gin.H{
		"connected":        true,
		"tables":           tables,
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
	})
}
