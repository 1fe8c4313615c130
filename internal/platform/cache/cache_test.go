package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func newTestStore(t *testing.T) (Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	store, err := New(testLogger(t), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store, mr
}

func TestStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := store.SetJSON(ctx, "k1", payload{Name: "a", Count: 3}, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	var got payload
	ok, err := store.GetJSON(ctx, "k1", &got)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if !ok {
		t.Fatalf("expected hit")
	}
	if got.Name != "a" || got.Count != 3 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestStoreMissingKey(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	var out map[string]any
	ok, err := store.GetJSON(ctx, "never-set", &out)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if ok {
		t.Fatalf("expected miss")
	}
}

func TestStoreExpiryBehavesLikeMissing(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	if err := store.SetJSON(ctx, "short", "v", time.Second); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	mr.FastForward(2 * time.Second)

	var out string
	ok, err := store.GetJSON(ctx, "short", &out)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if ok {
		t.Fatalf("expected expired key to read as missing")
	}
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	if err := store.SetJSON(ctx, "gone", 1, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	if err := store.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	var out int
	ok, _ := store.GetJSON(ctx, "gone", &out)
	if ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestNamespaceIsolation(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	tokens := Namespace(store, "token")
	avatars := Namespace(store, "avatar")

	if err := tokens.SetJSON(ctx, "id", "token-value", time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	var out string
	ok, err := avatars.GetJSON(ctx, "id", &out)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if ok {
		t.Fatalf("avatar namespace must not see token keys")
	}

	ok, err = tokens.GetJSON(ctx, "id", &out)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if !ok || out != "token-value" {
		t.Fatalf("token namespace lost its key: ok=%v out=%q", ok, out)
	}
}

func TestStoreBackendDown(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)
	mr.Close()

	var out string
	if _, err := store.GetJSON(ctx, "k", &out); err == nil {
		t.Fatalf("expected error with backend down")
	}
	if err := store.SetJSON(ctx, "k", "v", time.Minute); err == nil {
		t.Fatalf("expected error with backend down")
	}
}
