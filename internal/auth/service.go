package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/belindamak/japan-trip-chat/internal/redis"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a login attempt does not match the
// configured user table.
var ErrInvalidCredentials = errors.New("invalid username or password")

const sessionKeyPrefix = "session:"

// Service authenticates the fixed user set and issues, validates, and revokes
// session tokens backed by redis.
type Service struct {
	users          map[string][]byte
	store          *redis.Client
	tokenTTL       time.Duration
	cookieName     string
	headerName     string
	csrfCookieName string
	csrfHeaderName string
}

// NewService hashes the configured credentials and constructs an auth service
// with the supplied token lifetime. The user table is read-only afterwards.
func NewService(users map[string]string, store *redis.Client, ttl time.Duration) (*Service, error) {
	if len(users) == 0 {
		return nil, errors.New("at least one user is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	hashed := make(map[string][]byte, len(users))
	for name, pass := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", name, err)
		}
		hashed[name] = hash
	}
	return &Service{
		users:          hashed,
		store:          store,
		tokenTTL:       ttl,
		cookieName:     "auth_token",
		headerName:     "Authorization",
		csrfCookieName: "csrf_token",
		csrfHeaderName: "X-CSRF-Token",
	}, nil
}

// Authenticate checks the credentials against the fixed user table.
func (s *Service) Authenticate(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrInvalidCredentials
	}
	hash, ok := s.users[username]
	if !ok {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueToken mints a new random session token for the user and stores it with
// the configured TTL.
func (s *Service) IssueToken(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", errors.New("username required")
	}
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	if err := s.store.Set(ctx, sessionKeyPrefix+token, username, s.tokenTTL); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// NewCSRFToken returns a random token used for CSRF protection.
func (s *Service) NewCSRFToken() (string, error) {
	return generateToken()
}

// ValidateToken verifies the session exists, returning the username. Expiry is
// handled by the redis TTL.
func (s *Service) ValidateToken(ctx context.Context, authToken string) (string, error) {
	if authToken == "" {
		return "", errors.New("token required")
	}
	username, err := s.store.Get(ctx, sessionKeyPrefix+authToken)
	if err != nil {
		if errors.Is(err, redis.ErrCacheMiss) {
			return "", errors.New("invalid token")
		}
		return "", fmt.Errorf("lookup session: %w", err)
	}
	return username, nil
}

// RevokeToken deletes a single session token.
func (s *Service) RevokeToken(ctx context.Context, authToken string) error {
	if authToken == "" {
		return nil
	}
	if err := s.store.Del(ctx, sessionKeyPrefix+authToken); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// AuthCookieName returns the cookie name storing auth tokens.
func (s *Service) AuthCookieName() string {
	return s.cookieName
}

// CSRFCookieName returns the cookie used for CSRF tokens.
func (s *Service) CSRFCookieName() string {
	return s.csrfCookieName
}

// CSRFHeaderName returns the CSRF header name.
func (s *Service) CSRFHeaderName() string {
	return s.csrfHeaderName
}

// TokenTTL reports the configured token lifetime.
func (s *Service) TokenTTL() time.Duration {
	return s.tokenTTL
}
