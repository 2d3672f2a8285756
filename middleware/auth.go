package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/tidyhome/homeservices-api/config"
	"github.com/tidyhome/homeservices-api/utils"
)

// LocalIssuer is the issuer and default audience of HS256 tokens signed with JWT_SECRET
const LocalIssuer = "homeservices-api"

// Context keys set by the auth middleware
const (
	ContextUserID          = "user_id"
	ContextAccessToken     = "access_token"
	ContextValidatedClaims = "validated_claims"
)

// CustomClaims carries the sign-up hint a token may hold. Auth0 post-login Actions must namespace it. The role is only a hint for POST /users;
// authorization always reads user_roles. Email and Name are read at sign-up only when tokens are signed locally.
type CustomClaims struct {
	Role           string `json:"role,omitempty"`
	NamespacedRole string `json:"https://tidyhome.co.uk/role,omitempty"`
	Email          string `json:"email,omitempty"`
	Name           string `json:"name,omitempty"`
}

// Validate accepts any claim values; unknown roles are ignored at sign-up.
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// SignupRole returns the role hint, preferring the namespaced Auth0 claim
func (c CustomClaims) SignupRole() string {
	if c.NamespacedRole != "" {
		return strings.ToLower(c.NamespacedRole)
	}
	return strings.ToLower(c.Role)
}

// NewTokenValidator builds an RS256 validator backed by the Auth0 JWKS endpoint, or an
// HS256 validator over JWT_SECRET when no Auth0 domain is configured.
func NewTokenValidator(cfg *config.Config) (*validator.Validator, error) {
	customClaims := validator.WithCustomClaims(func() validator.CustomClaims {
		return &CustomClaims{}
	})
	skew := validator.WithAllowedClockSkew(time.Minute)

	if cfg.Auth0Domain != "" {
		issuerURL, err := url.Parse("https://" + cfg.Auth0Domain + "/")
		if err != nil {
			return nil, err
		}
		provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)
		return validator.New(
			provider.KeyFunc,
			validator.RS256,
			issuerURL.String(),
			[]string{cfg.Auth0Audience},
			customClaims,
			skew,
		)
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("no token verification configured: set AUTH0_DOMAIN or JWT_SECRET")
	}

	audience := cfg.Auth0Audience
	if audience == "" {
		audience = LocalIssuer
	}
	secret := []byte(cfg.JWTSecret)
	return validator.New(
		func(ctx context.Context) (interface{}, error) { return secret, nil },
		validator.HS256,
		LocalIssuer,
		[]string{audience},
		customClaims,
		skew,
	)
}

// EnsureValidToken is a middleware that will check the validity of our JWT.
func EnsureValidToken(cfg *config.Config) gin.HandlerFunc {
	jwtValidator, err := NewTokenValidator(cfg)
	if err != nil {
		utils.Logger.Fatalf("Failed to set up the jwt validator: %v", err)
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		utils.Logger.WithError(err).Warn("Encountered error while validating JWT")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		if _, writeErr := w.Write([]byte(`{"success":false,"error":{"code":"INVALID_TOKEN","message":"Failed to validate JWT."}}`)); writeErr != nil {
			utils.Logger.WithError(writeErr).Error("Failed to write error response")
		}
	}

	middleware := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return func(c *gin.Context) {
		authorized := false
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			token := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
			setClaims(c, token, bearerToken(r))
			authorized = true
		}

		middleware.CheckJWT(handler).ServeHTTP(c.Writer, c.Request)
		if !authorized {
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth validates a bearer token when one is present. Missing or invalid tokens
// leave the request anonymous instead of failing it.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	jwtValidator, err := NewTokenValidator(cfg)
	if err != nil {
		utils.Logger.Fatalf("Failed to set up the jwt validator: %v", err)
	}

	return func(c *gin.Context) {
		raw := bearerToken(c.Request)
		if raw == "" {
			c.Next()
			return
		}

		claims, err := jwtValidator.ValidateToken(c.Request.Context(), raw)
		if err != nil {
			utils.Logger.WithError(err).Debug("Ignoring invalid optional token")
			c.Next()
			return
		}

		if validated, ok := claims.(*validator.ValidatedClaims); ok {
			setClaims(c, validated, raw)
		}
		c.Next()
	}
}

func setClaims(c *gin.Context, claims *validator.ValidatedClaims, accessToken string) {
	c.Set(ContextUserID, claims.RegisteredClaims.Subject)
	c.Set(ContextValidatedClaims, claims)
	c.Set(ContextAccessToken, accessToken)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func contextString(c *gin.Context, key, missingCode, invalidCode string) (string, error) {
	raw, exists := c.Get(key)
	if !exists {
		return "", &AuthError{Code: missingCode, Message: key + " not found in context"}
	}
	value, ok := raw.(string)
	if !ok || value == "" {
		return "", &AuthError{Code: invalidCode, Message: key + " is not a non-empty string"}
	}
	return value, nil
}

// GetUserID returns the token subject set by EnsureValidToken or OptionalAuth
func GetUserID(c *gin.Context) (string, error) {
	return contextString(c, ContextUserID, "MISSING_USER_ID", "INVALID_USER_ID")
}

// GetAccessToken returns the raw bearer token of the request
func GetAccessToken(c *gin.Context) (string, error) {
	return contextString(c, ContextAccessToken, "MISSING_TOKEN", "INVALID_TOKEN")
}

// GetClaims extracts the validated JWT claims from the Gin context
func GetClaims(c *gin.Context) (*validator.ValidatedClaims, error) {
	claims, exists := c.Get(ContextValidatedClaims)
	if !exists {
		return nil, &AuthError{Code: "MISSING_CLAIMS", Message: "Claims not found in context"}
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "Claims are not in the expected format"}
	}

	return validatedClaims, nil
}

// GetCustomClaims returns the custom claims of the token, if any
func GetCustomClaims(c *gin.Context) (*CustomClaims, bool) {
	claims, err := GetClaims(c)
	if err != nil {
		return nil, false
	}
	custom, ok := claims.CustomClaims.(*CustomClaims)
	return custom, ok
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
