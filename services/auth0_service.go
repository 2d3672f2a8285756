package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidyhome/homeservices-api/config"
	"github.com/tidyhome/homeservices-api/utils"
)

// ErrTokenRejected means the identity provider refused the access token
var ErrTokenRejected = errors.New("access token rejected by identity provider")

// userInfoTTL bounds how long a token's profile is reused; Auth0 rate-limits /userinfo
const userInfoTTL = 2 * time.Minute

// Auth0UserInfo is the subset of the OIDC userinfo document used at sign-up
type Auth0UserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture,omitempty"`
}

// UserInfoProvider fetches the profile behind an access token
type UserInfoProvider interface {
	GetUserInfo(ctx context.Context, accessToken string) (*Auth0UserInfo, error)
}

// Auth0Service calls the tenant's userinfo endpoint
type Auth0Service struct {
	endpoint   string
	httpClient *http.Client
	cache      Cache
}

var userInfoProviderInstance UserInfoProvider

// NewAuth0Service builds a client for cfg.Auth0Domain. A domain with a scheme is used as-is.
// It returns nil when no domain is configured.
func NewAuth0Service(cfg *config.Config) *Auth0Service {
	if cfg == nil || cfg.Auth0Domain == "" {
		return nil
	}
	base := strings.TrimSuffix(cfg.Auth0Domain, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return &Auth0Service{
		endpoint:   base + "/userinfo",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      GetCache(),
	}
}

// GetUserInfoProvider returns the configured provider, defaulting to Auth0. It returns nil
// when no provider is set and no Auth0 domain is configured; callers then read the token claims.
func GetUserInfoProvider() UserInfoProvider {
	if userInfoProviderInstance != nil {
		return userInfoProviderInstance
	}
	if svc := NewAuth0Service(config.GetConfig()); svc != nil {
		return svc
	}
	return nil
}

// SetUserInfoProvider overrides the provider (primarily for testing)
func SetUserInfoProvider(p UserInfoProvider) {
	userInfoProviderInstance = p
}

func userInfoCacheKey(accessToken string) string {
	sum := sha256.Sum256([]byte(accessToken))
	return "userinfo:" + hex.EncodeToString(sum[:16])
}

// GetUserInfo resolves accessToken to its profile. A 401 or 403 from the provider maps to ErrTokenRejected.
func (s *Auth0Service) GetUserInfo(ctx context.Context, accessToken string) (*Auth0UserInfo, error) {
	key := userInfoCacheKey(accessToken)
	var cached Auth0UserInfo
	if s.cache != nil && GetJSON(ctx, s.cache, key, &cached) == nil && cached.Sub != "" {
		return &cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call userinfo endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("userinfo status %d: %w", resp.StatusCode, ErrTokenRejected)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("userinfo endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var info Auth0UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}

	if s.cache != nil {
		if err := SetJSON(ctx, s.cache, key, info, userInfoTTL); err != nil {
			utils.Logger.WithError(err).Debug("Failed to cache userinfo")
		}
	}
	return &info, nil
}

// MockUserInfoProvider returns fixed user info for any token
type MockUserInfoProvider struct {
	Info *Auth0UserInfo
	Err  error
}

func (m *MockUserInfoProvider) GetUserInfo(ctx context.Context, accessToken string) (*Auth0UserInfo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Info, nil
}
