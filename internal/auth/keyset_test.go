package auth

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestKeySetFetcherCachesWithinTTL(t *testing.T) {
	ctx := context.Background()
	key := newSigningKey(t)

	var fetches atomic.Int64
	srv := newJWKSServer(t, key, &fetches)

	f := NewKeySetFetcher(testLogger(t), srv.URL, 15*time.Minute)

	if _, err := f.PublicKeyByKID(ctx, testKID); err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	if _, err := f.PublicKeyByKID(ctx, testKID); err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if got := fetches.Load(); got != 1 {
		t.Fatalf("expected a single remote fetch, got %d", got)
	}
}

func TestKeySetFetcherUnknownKID(t *testing.T) {
	ctx := context.Background()
	key := newSigningKey(t)
	srv := newJWKSServer(t, key, nil)

	f := NewKeySetFetcher(testLogger(t), srv.URL, 15*time.Minute)
	if _, err := f.PublicKeyByKID(ctx, "no-such-kid"); err == nil {
		t.Fatalf("expected unknown kid to fail")
	}
}

func TestKeySetFetcherUnreachableEndpoint(t *testing.T) {
	ctx := context.Background()
	f := NewKeySetFetcher(testLogger(t), "http://127.0.0.1:1/jwks.json", 15*time.Minute)
	if _, err := f.PublicKeyByKID(ctx, testKID); err == nil {
		t.Fatalf("expected fetch failure")
	}
}
