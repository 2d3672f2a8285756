package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/tidyhome/homeservices-api/middleware"
)

// TestJWTSecret is the HS256 secret used by end-to-end auth tests
const TestJWTSecret = "test-secret-do-not-use-in-production"

// MockValidatedClaims builds the claims EnsureValidToken would attach for subject
func MockValidatedClaims(subject, roleHint string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  middleware.LocalIssuer,
			Subject: subject,
		},
		CustomClaims: &middleware.CustomClaims{Role: roleHint},
	}
}

// SetMockAuthContext marks c as authenticated for userID
func SetMockAuthContext(c *gin.Context, userID string) {
	c.Set(middleware.ContextUserID, userID)
	c.Set(middleware.ContextValidatedClaims, MockValidatedClaims(userID, ""))
	c.Set(middleware.ContextAccessToken, "mock-access-token")
}

// MockAuth is a stand-in for EnsureValidToken that authenticates every request as userID
func MockAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		SetMockAuthContext(c, userID)
		c.Next()
	}
}

// MockAuthFromHeader authenticates requests carrying X-Test-User, leaving the rest anonymous
func MockAuthFromHeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader("X-Test-User"); userID != "" {
			SetMockAuthContext(c, userID)
		}
		c.Next()
	}
}

// MockRequiredAuth authenticates requests carrying X-Test-User and rejects the rest with 401
func MockRequiredAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-Test-User")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "INVALID_TOKEN", "message": "Failed to validate JWT."},
			})
			return
		}
		SetMockAuthContext(c, userID)
		c.Next()
	}
}

// SignTestToken mints an HS256 token accepted by the middleware when JWT_SECRET is TestJWTSecret
func SignTestToken(t *testing.T, subject string, ttl time.Duration) string {
	t.Helper()
	return SignTestTokenWithClaims(t, subject, ttl, nil)
}

// SignTestTokenWithClaims is SignTestToken with extra claims such as email, name or role
func SignTestTokenWithClaims(t *testing.T, subject string, ttl time.Duration, extra map[string]interface{}) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"iss": middleware.LocalIssuer,
		"aud": []string{middleware.LocalIssuer},
		"sub": subject,
		"iat": now.Unix(),
		"nbf": now.Add(-time.Second).Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	for k, v := range extra {
		claims[k] = v
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(TestJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}
