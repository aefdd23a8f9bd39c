package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T, ttl time.Duration) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewTokenStore(rdb, ttl), mr
}

func TestTokenStore_IssueAndGet(t *testing.T) {
	s, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	tok, err := s.Issue(ctx, "ops")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if tok.ID == "" || tok.Label != "ops" {
		t.Fatalf("Unexpected token %+v", tok)
	}
	if tok.ExpiresAt-tok.IssuedAt != int64(time.Hour/time.Second) {
		t.Errorf("Expected exp-iat of one hour, got %d", tok.ExpiresAt-tok.IssuedAt)
	}

	got, err := s.Get(ctx, tok.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if *got != *tok {
		t.Errorf("Expected %+v, got %+v", tok, got)
	}
	if ttl := mr.TTL(key(tok.ID)); ttl != time.Hour {
		t.Errorf("Expected key ttl 1h, got %v", ttl)
	}
	if ok, _ := mr.SIsMember(labelKey("ops"), tok.ID); !ok {
		t.Error("Expected token in label set")
	}
}

func TestTokenStore_UnknownToken(t *testing.T) {
	s, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("Expected ErrTokenNotFound, got %v", err)
	}
	ok, err := s.Verify(ctx, "missing")
	if ok || err != nil {
		t.Errorf("Expected (false, nil), got (%v, %v)", ok, err)
	}
}

func TestTokenStore_VerifyExpires(t *testing.T) {
	s, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	tok, err := s.Issue(ctx, "")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if ok, err := s.Verify(ctx, tok.ID); !ok || err != nil {
		t.Fatalf("Expected fresh token to verify, got (%v, %v)", ok, err)
	}

	mr.FastForward(time.Minute + time.Second)
	if ok, err := s.Verify(ctx, tok.ID); ok || err != nil {
		t.Errorf("Expected expired token to fail, got (%v, %v)", ok, err)
	}
}

func TestTokenStore_Revoke(t *testing.T) {
	s, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	tok, err := s.Issue(ctx, "ops")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if err := s.Revoke(ctx, tok.ID); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if ok, _ := s.Verify(ctx, tok.ID); ok {
		t.Error("Expected revoked token to fail")
	}
	if ok, _ := mr.SIsMember(labelKey("ops"), tok.ID); ok {
		t.Error("Expected token removed from label set")
	}
	if err := s.Revoke(ctx, tok.ID); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("Expected ErrTokenNotFound on second revoke, got %v", err)
	}
}

func TestTokenStore_RevokeLabel(t *testing.T) {
	s, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	a, _ := s.Issue(ctx, "ops")
	b, _ := s.Issue(ctx, "ops")
	other, _ := s.Issue(ctx, "ci")
	// b expires on its own; it stays in the set but is not counted.
	mr.Del(key(b.ID))

	n, err := s.RevokeLabel(ctx, "ops")
	if err != nil {
		t.Fatalf("RevokeLabel failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 revoked, got %d", n)
	}
	if ok, _ := s.Verify(ctx, a.ID); ok {
		t.Error("Expected ops token revoked")
	}
	if ok, _ := s.Verify(ctx, other.ID); !ok {
		t.Error("Expected ci token untouched")
	}
	if mr.Exists(labelKey("ops")) {
		t.Error("Expected ops label set deleted")
	}

	if n, err := s.RevokeLabel(ctx, "nobody"); n != 0 || err != nil {
		t.Errorf("Expected (0, nil) for unknown label, got (%d, %v)", n, err)
	}
}

func TestTokenStore_StoreDown(t *testing.T) {
	s, mr := newTestStore(t, time.Hour)
	mr.Close()

	if ok, err := s.Verify(context.Background(), "any"); ok || err == nil {
		t.Errorf("Expected an error when redis is unreachable, got (%v, %v)", ok, err)
	}
}
