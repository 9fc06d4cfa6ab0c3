package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/belindamak/japan-trip-chat/internal/redis"
)

func newTestService(t *testing.T, ttl time.Duration) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := redis.NewClientFromAddr(mr.Addr())
	t.Cleanup(func() { store.Close() })
	svc, err := NewService(map[string]string{"family": "family2025"}, store, ttl)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, mr
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)

	if err := svc.Authenticate("family", "family2025"); err != nil {
		t.Fatalf("expected valid credentials, got %v", err)
	}
	if err := svc.Authenticate("family", "wrong"); err == nil {
		t.Fatal("expected error for wrong password")
	}
	if err := svc.Authenticate("stranger", "family2025"); err == nil {
		t.Fatal("expected error for unknown user")
	}
	if err := svc.Authenticate("", ""); err == nil {
		t.Fatal("expected error for empty credentials")
	}
}

func TestTokenLifecycle(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, "family")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if len(token) != 64 {
		t.Fatalf("expected 64-char hex token, got %d chars", len(token))
	}

	ttl, err := svc.store.TTL(ctx, sessionKeyPrefix+token)
	if err != nil {
		t.Fatalf("session ttl: %v", err)
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Fatalf("expected ttl within the configured hour, got %v", ttl)
	}

	username, err := svc.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if username != "family" {
		t.Fatalf("expected username family, got %q", username)
	}

	if err := svc.RevokeToken(ctx, token); err != nil {
		t.Fatalf("revoke token: %v", err)
	}
	if _, err := svc.ValidateToken(ctx, token); err == nil {
		t.Fatal("expected error after revocation")
	}
}

func TestTokenExpiry(t *testing.T) {
	svc, mr := newTestService(t, time.Minute)
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, "family")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := svc.ValidateToken(ctx, token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestValidateTokenEmpty(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)
	if _, err := svc.ValidateToken(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty token")
	}
}
