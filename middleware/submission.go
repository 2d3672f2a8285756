package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/services"
	"github.com/tidyhome/homeservices-api/utils"
)

// IdempotencyKeyHeader names the client-chosen key of one form submission
const IdempotencyKeyHeader = "Idempotency-Key"

// SubmissionKeyTTL is how long a claimed key blocks repeats
const SubmissionKeyTTL = 24 * time.Hour

const maxIdempotencyKeyLength = 128

// SubmissionKey is the cache key claimed for one user's submission
func SubmissionKey(userID, key string) string {
	return "submit:" + userID + ":" + key
}

// PreventDuplicateSubmission lets the first request carrying an Idempotency-Key through and
// rejects later ones with the same key. Requests without the header are not deduplicated.
// A request that fails releases its key so the user can retry.
func PreventDuplicateSubmission() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			utils.AbortWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Idempotency-Key is too long")
			return
		}

		owner := "anonymous:" + c.ClientIP()
		if userID, err := GetUserID(c); err == nil {
			owner = userID
		}
		cacheKey := SubmissionKey(owner, key)

		cache := services.GetCache()
		ctx := c.Request.Context()
		claimed, err := cache.SetNX(ctx, cacheKey, []byte(time.Now().UTC().Format(time.RFC3339)), SubmissionKeyTTL)
		if err != nil {
			utils.Logger.WithError(err).Error("Failed to claim submission key")
			utils.AbortWithError(c, http.StatusInternalServerError, "CACHE_ERROR", "Something went wrong, please try again")
			return
		}
		if !claimed {
			utils.AbortWithError(c, http.StatusConflict, "DUPLICATE_SUBMISSION", "This form has already been submitted")
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := cache.Delete(ctx, cacheKey); err != nil {
				utils.Logger.WithError(err).Warn("Failed to release submission key")
			}
		}
	}
}
