package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/config"
	"github.com/tidyhome/homeservices-api/models"
	"github.com/tidyhome/homeservices-api/notifier"
	"github.com/tidyhome/homeservices-api/routes"
	"github.com/tidyhome/homeservices-api/services"
	"github.com/tidyhome/homeservices-api/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Logger.Fatalf("Failed to load configuration: %v", err)
	}

	utils.InitLogger(cfg.LogLevel, cfg.IsProduction())
	utils.Logger.Info("Starting Home Services API server...")
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	if err := config.ConnectDatabase(cfg); err != nil {
		utils.Logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	if err := config.GetDB().AutoMigrate(models.All()...); err != nil {
		utils.Logger.Fatalf("Failed to migrate database: %v", err)
	}
	utils.Logger.Info("Database migration completed successfully")

	setupServices(ctx, cfg)

	router := routes.SetupRouter(cfg)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Logger.Infof("Server is running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	utils.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Logger.WithError(err).Error("Server shutdown failed")
	}
	if p, ok := services.GetPublisher().(*services.AMQPPublisher); ok {
		_ = p.Close()
	}
}

// setupServices installs the cache, storage, email, chat and notification backends.
// Every optional backend degrades instead of stopping the server.
func setupServices(ctx context.Context, cfg *config.Config) {
	redisClient, err := config.NewRedisClient(cfg)
	switch {
	case err != nil:
		utils.Logger.WithError(err).Warn("Redis unavailable, using in-memory cache")
	case redisClient != nil:
		services.SetCache(services.NewRedisCache(redisClient, "homeservices"))
		utils.Logger.Info("Using Redis cache")
	default:
		utils.Logger.Info("REDIS_ADDR not set, using in-memory cache")
	}

	if cfg.AWSS3Bucket != "" {
		store, err := services.NewS3Store(ctx, cfg)
		if err != nil {
			utils.Logger.WithError(err).Warn("S3 unavailable, document uploads disabled")
		} else {
			services.InitDocumentService(store)
		}
	} else {
		utils.Logger.Warn("AWS_S3_BUCKET not set, document uploads disabled")
	}

	var sender services.EmailSender
	if cfg.ResendAPIKey != "" {
		sender = services.NewEmailService(cfg, nil)
		services.SetEmailSender(sender)
	} else {
		utils.Logger.Warn("RESEND_API_KEY not set, confirmation emails disabled")
	}

	if cfg.LLMAPIKey != "" {
		services.SetChatStreamer(services.NewChatService(cfg, nil))
	} else {
		utils.Logger.Warn("LLM_API_KEY not set, chat assistant disabled")
	}

	switch {
	case cfg.RabbitMQURL != "":
		publisher, err := services.NewAMQPPublisher(cfg.RabbitMQURL)
		if err != nil {
			utils.Logger.WithError(err).Warn("RabbitMQ unavailable, sending confirmations inline")
			if sender != nil {
				services.SetPublisher(services.InlinePublisher{Sender: sender})
			}
			return
		}
		services.SetPublisher(publisher)

		consumer := notifier.NewConsumer(cfg.RabbitMQURL, sender)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				utils.Logger.WithError(err).Error("Notification consumer stopped")
			}
		}()
	case sender != nil:
		services.SetPublisher(services.InlinePublisher{Sender: sender})
	}
}
