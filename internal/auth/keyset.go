package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
)

// JWK is a single RSA public key from the issuer's published key set.
type JWK struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type JWKS struct {
	Keys []JWK `json:"keys"`
}

// KeySet resolves key IDs to RSA public keys.
type KeySet interface {
	PublicKeyByKID(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

// KeySetFetcher fetches the issuer's JWKS document over HTTP and caches the
// parsed keys in-process for a short TTL. Concurrent refreshes are allowed to
// race: the fetched document is identical regardless of which request wins.
type KeySetFetcher struct {
	log        *logger.Logger
	httpClient *http.Client
	url        string
	ttl        time.Duration

	mu      sync.RWMutex
	keys    map[string]*rsa.PublicKey
	fetched time.Time
}

func NewKeySetFetcher(log *logger.Logger, url string, ttl time.Duration) *KeySetFetcher {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &KeySetFetcher{
		log:        log.With("service", "KeySetFetcher"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		url:        url,
		ttl:        ttl,
	}
}

func (f *KeySetFetcher) PublicKeyByKID(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	f.mu.RLock()
	if key, ok := f.keys[kid]; ok && time.Since(f.fetched) < f.ttl {
		f.mu.RUnlock()
		return key, nil
	}
	f.mu.RUnlock()

	keys, err := f.fetch(ctx)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.keys = keys
	f.fetched = time.Now()
	f.mu.Unlock()

	key, ok := keys[kid]
	if !ok {
		return nil, fmt.Errorf("no key with kid %q in key set", kid)
	}
	return key, nil
}

func (f *KeySetFetcher) fetch(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build key set request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch key set: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch key set: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read key set body: %w", err)
	}

	var doc JWKS
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse key set: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, jwk := range doc.Keys {
		if jwk.Kty != "RSA" || jwk.Kid == "" {
			continue
		}
		pub, err := parseRSAKey(jwk)
		if err != nil {
			f.log.Warn("Skipping unparsable key", "kid", jwk.Kid, "error", err)
			continue
		}
		keys[jwk.Kid] = pub
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("key set at %s contains no usable RSA keys", f.url)
	}
	return keys, nil
}

func parseRSAKey(jwk JWK) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
	if err != nil {
		return nil, fmt.Errorf("decode modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
	if err != nil {
		return nil, fmt.Errorf("decode exponent: %w", err)
	}
	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}
	if e <= 1 {
		return nil, fmt.Errorf("invalid exponent")
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}
