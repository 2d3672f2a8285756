package testutil

import (
	"os"
	"testing"

	"github.com/tidyhome/homeservices-api/config"
	"github.com/tidyhome/homeservices-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against production or development databases.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()
	t.Setenv("GO_ENV", "test")
}

// TestConfig returns a configuration suitable for tests and makes it active
func TestConfig() *config.Config {
	cfg := &config.Config{
		GoEnv:          "test",
		Port:           "8080",
		JWTSecret:      TestJWTSecret,
		AWSRegion:      "eu-west-2",
		AWSS3Bucket:    "test-bucket",
		LogLevel:       "error",
		CompanyName:    "Tidy Home Services",
		ContactPhone:   "020 7946 0000",
		WhatsAppNumber: "+44 7700 900000",
		MapsAPIKey:     "maps-test-key",
	}
	config.SetConfig(cfg)
	return cfg
}

// NewTestDB opens a private in-memory SQLite database, migrates every model into it
// and installs it as the global DB.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// :memory: is per connection
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	config.SetDB(db)
	return db
}

// SeedUser creates a role row and, when profile is non-nil, a profile for userID
func SeedUser(t *testing.T, db *gorm.DB, userID string, role models.Role, profile *models.Profile) {
	t.Helper()

	if err := db.Create(&models.UserRole{UserID: userID, Role: role}).Error; err != nil {
		t.Fatalf("failed to seed role for %s: %v", userID, err)
	}
	if profile != nil {
		profile.UserID = userID
		if err := db.Create(profile).Error; err != nil {
			t.Fatalf("failed to seed profile for %s: %v", userID, err)
		}
	}
}

// CompleteProfile returns a profile that passes Profile.IsComplete
func CompleteProfile(name string) *models.Profile {
	return &models.Profile{
		FullName:         name,
		Email:            "test@example.com",
		Phone:            "07700 900123",
		AddressLine1:     "12 Main Road",
		City:             "London",
		Postcode:         "SW1A 1AA",
		ProfileCompleted: true,
	}
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
