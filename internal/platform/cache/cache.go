package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
)

// Store is a get/set-with-TTL cache over opaque JSON values. Reads for
// missing and expired keys are indistinguishable. Writes are best-effort:
// callers treat a write failure as a skipped optimization, not an error.
type Store interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type redisStore struct {
	log    *logger.Logger
	client *goredis.Client
	prefix string
}

type Config struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// New dials redis and returns a Store rooted at the "fitbridge:" prefix.
func New(log *logger.Logger, cfg Config) (Store, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address required")
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Username:    cfg.Username,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisStore{
		log:    log.With("service", "CacheStore"),
		client: client,
		prefix: "fitbridge:",
	}, nil
}

func (s *redisStore) key(k string) string {
	return s.prefix + k
}

func (s *redisStore) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *redisStore) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(key), raw, ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

// Namespace scopes a Store to one purpose so keys from different purposes
// cannot collide. The purpose tag becomes part of every key.
func Namespace(s Store, purpose string) Store {
	purpose = strings.TrimSuffix(purpose, ":")
	return &namespaced{inner: s, prefix: purpose + ":"}
}

type namespaced struct {
	inner  Store
	prefix string
}

func (n *namespaced) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	return n.inner.GetJSON(ctx, n.prefix+key, out)
}

func (n *namespaced) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	return n.inner.SetJSON(ctx, n.prefix+key, value, ttl)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}
