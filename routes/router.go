// Package routes wires every endpoint with its middleware chain.
package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/config"
	"github.com/tidyhome/homeservices-api/controllers"
	"github.com/tidyhome/homeservices-api/middleware"
	"github.com/tidyhome/homeservices-api/models"
)

// Auth holds the authentication middleware; tests substitute mocks
type Auth struct {
	Required gin.HandlerFunc
	Optional gin.HandlerFunc
}

// DefaultAuth validates bearer tokens with the configured issuer
func DefaultAuth(cfg *config.Config) Auth {
	return Auth{
		Required: middleware.EnsureValidToken(cfg),
		Optional: middleware.OptionalAuth(cfg),
	}
}

// SetupRouter builds the application router with real token validation
func SetupRouter(cfg *config.Config) *gin.Engine {
	return SetupRouterWithAuth(cfg, DefaultAuth(cfg))
}

// SetupRouterWithAuth builds the application router around the given auth middleware
func SetupRouterWithAuth(cfg *config.Config, auth Auth) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", middleware.IdempotencyKeyHeader, middleware.RequestIDHeader)
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	chatLimiter := middleware.NewRateLimiter(6*time.Second, 10)
	formLimiter := middleware.NewRateLimiter(30*time.Second, 5)
	noDuplicates := middleware.PreventDuplicateSubmission()

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", controllers.HealthCheck)
		v1.GET("/database/status", controllers.DatabaseStatus)

		// Public
		v1.GET("/booking-slots", controllers.GetBookingOptions)
		v1.GET("/bookings/price", controllers.GetBookingPrice)
		v1.POST("/bookings/wizard", controllers.BookingWizard)
		v1.POST("/address/validate", controllers.ValidateAddress)
		v1.GET("/navigation", auth.Optional, controllers.GetNavigation)
		v1.POST("/enquiries", auth.Optional, formLimiter.RateLimit(), noDuplicates, controllers.CreateEnquiry)

		// Any signed-in user
		authed := v1.Group("", auth.Required)
		{
			authed.POST("/users", controllers.CreateUser)
			authed.GET("/users/me", controllers.GetMe)
			authed.PUT("/profile", controllers.UpdateProfile)
			authed.GET("/maps/config", controllers.GetMapsConfig)
			authed.POST("/chat", chatLimiter.RateLimit(), controllers.Chat)
			authed.POST("/uploads/documents", formLimiter.RateLimit(), controllers.UploadDocument)
			authed.POST("/worker-applications", noDuplicates, controllers.CreateWorkerApplication)
			authed.GET("/worker-applications/mine", controllers.ListMyWorkerApplications)
		}

		client := v1.Group("", auth.Required, middleware.RequireRole(models.RoleClient, models.RoleUser))
		{
			client.POST("/bookings", noDuplicates, controllers.CreateBooking)
			client.GET("/bookings", controllers.ListMyBookings)
			client.POST("/quote-requests", noDuplicates, controllers.CreateQuoteRequest)
			client.GET("/quote-requests", controllers.ListMyQuoteRequests)
		}

		worker := v1.Group("/worker", auth.Required, middleware.RequireRole(models.RoleWorker), middleware.RequireApprovedWorker())
		{
			worker.GET("/dashboard", controllers.WorkerDashboard)
		}

		admin := v1.Group("", auth.Required, middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/admin/bookings", controllers.ListAllBookings)
			admin.PATCH("/admin/bookings/:id/status", controllers.UpdateBookingStatus)
			admin.GET("/admin/quote-requests", controllers.ListAllQuoteRequests)
			admin.PATCH("/admin/quote-requests/:id", controllers.UpdateQuoteRequest)
			admin.GET("/admin/worker-applications", controllers.ListAllWorkerApplications)
			admin.PATCH("/admin/worker-applications/:id", controllers.UpdateWorkerApplication)
			admin.GET("/admin/enquiries", controllers.ListAllEnquiries)
			admin.PATCH("/admin/enquiries/:id", controllers.UpdateEnquiry)
			admin.PUT("/admin/users/:user_id/role", controllers.SetUserRole)
			admin.PATCH("/admin/workers/:user_id/status", controllers.SetWorkerStatus)
			admin.POST("/notifications/booking-confirmation", controllers.SendBookingConfirmation)
		}
	}

	return router
}
