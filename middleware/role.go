package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/guard"
	"github.com/tidyhome/homeservices-api/models"
	"github.com/tidyhome/homeservices-api/utils"
)

// RequireRole lets the request through only when the caller's stored role is one of roles.
// Must run after EnsureValidToken.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := CurrentSession(c)
		if err != nil {
			utils.Logger.WithError(err).Error("Failed to load session")
			utils.AbortWithError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load user role")
			return
		}

		if session.Role == nil {
			utils.AbortWithError(c, http.StatusForbidden, "USER_NOT_FOUND", "User profile not found. Please create a profile first.")
			return
		}

		for _, r := range roles {
			if session.Role.Role == r {
				c.Next()
				return
			}
		}

		utils.AbortWithError(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to access this resource")
	}
}

// RequireApprovedWorker allows workers whose profile is complete and approved.
// Other workers are told where the navigation guard would send them.
func RequireApprovedWorker() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := CurrentSession(c)
		if err != nil {
			utils.Logger.WithError(err).Error("Failed to load session")
			utils.AbortWithError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load user profile")
			return
		}

		decision := guard.Decide(session.Guard(), guard.PathWorkerDashboard)
		if decision.Action == guard.ActionRender {
			c.Next()
			return
		}

		code := "FORBIDDEN"
		switch decision.Location {
		case guard.PathCompleteProfile:
			code = "PROFILE_INCOMPLETE"
		case guard.PathPendingApproval:
			code = "WORKER_NOT_APPROVED"
		}
		utils.RespondErrorDetails(c, http.StatusForbidden, code, "Worker access is not available for this account", gin.H{
			"location": decision.Location,
		})
		c.Abort()
	}
}
