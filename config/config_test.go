package config

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidyhome/homeservices-api/utils"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("PORT", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("WHATSAPP_NUMBER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsTest())
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.NotEmpty(t, cfg.WhatsAppNumber)
	assert.Same(t, cfg, GetConfig())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://tidyhome.co.uk, https://admin.tidyhome.co.uk ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, []string{"https://tidyhome.co.uk", "https://admin.tidyhome.co.uk"}, cfg.CORSAllowedOrigins)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("REDIS_DB", "three")
	t.Setenv("CACHE_TTL", "soon")

	original := utils.Logger
	utils.Logger = logrus.New()
	utils.Logger.SetOutput(io.Discard)
	t.Cleanup(func() { utils.Logger = original })
	hook := logtest.NewLocal(utils.Logger)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)

	warned := map[string]bool{}
	for _, e := range hook.AllEntries() {
		if key, ok := e.Data["key"].(string); ok && e.Level == logrus.WarnLevel {
			warned[key] = true
		}
	}
	assert.True(t, warned["REDIS_DB"])
	assert.True(t, warned["CACHE_TTL"])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"Test env needs nothing", Config{GoEnv: "test"}, ""},
		{"Production needs a database", Config{GoEnv: "production", JWTSecret: strings.Repeat("s", 32)}, "DATABASE_URL"},
		{"Production needs token verification", Config{GoEnv: "production", DatabaseURL: "postgres://x"}, "AUTH0_DOMAIN"},
		{"Auth0 is enough", Config{GoEnv: "production", DatabaseURL: "postgres://x", Auth0Domain: "tidy.eu.auth0.com"}, ""},
		{"Shared secret is enough", Config{GoEnv: "development", DatabaseURL: "postgres://x", JWTSecret: "s"}, ""},
		{"Production shared secret too short", Config{GoEnv: "production", DatabaseURL: "postgres://x", JWTSecret: "short"}, "at least 32"},
		{"Partial AWS credentials", Config{GoEnv: "development", DatabaseURL: "postgres://x", JWTSecret: "s", AWSAccessKeyID: "AKIA"}, "AWS_SECRET_ACCESS_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	err := (&Config{GoEnv: "production"}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "AUTH0_DOMAIN")
}

func TestNewRedisClient_NotConfigured(t *testing.T) {
	client, err := NewRedisClient(&Config{})
	assert.NoError(t, err)
	assert.Nil(t, client)
}
