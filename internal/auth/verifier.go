package auth

import (
	"context"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/fitbridge/fitbridge-backend/internal/platform/apierr"
	"github.com/fitbridge/fitbridge-backend/internal/platform/cache"
	"github.com/fitbridge/fitbridge-backend/internal/platform/logger"
)

// Verifier validates bearer credentials against the issuer's published key
// set and caches verified payloads by the exact raw credential string.
//
// A cache hit skips signature work entirely; that is safe because the cached
// entry is the output of a prior full verification and the cache TTL is kept
// far below typical token lifetimes.
type Verifier struct {
	log      *logger.Logger
	keys     KeySet
	tokens   cache.Store
	issuer   string
	audience string
	cacheTTL time.Duration
}

type VerifierConfig struct {
	Issuer   string
	Audience string
	CacheTTL time.Duration
}

func NewVerifier(log *logger.Logger, keys KeySet, tokenCache cache.Store, cfg VerifierConfig) *Verifier {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Verifier{
		log:      log.With("service", "TokenVerifier"),
		keys:     keys,
		tokens:   tokenCache,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		cacheTTL: ttl,
	}
}

type verifiedClaims struct {
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
	jwtv5.RegisteredClaims
}

// Verify returns the identity asserted by rawToken. Every failure mode
// (bad signature, wrong issuer or audience, expired, missing subject,
// unreachable key set) surfaces as the same 401; callers never learn which
// check failed, and no failure downgrades the request to anonymous.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	if rawToken == "" {
		return nil, apierr.InvalidCredential(fmt.Errorf("empty credential"))
	}

	// Cache key is the exact credential bytes: deriving or truncating the
	// key would let one credential poison another's entry.
	if cached, ok := v.cachedIdentity(ctx, rawToken); ok {
		return cached, nil
	}

	claims := &verifiedClaims{}
	_, err := jwtv5.ParseWithClaims(rawToken, claims, v.keyfunc(ctx),
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodRS256.Alg()}),
		jwtv5.WithIssuer(v.issuer),
		jwtv5.WithAudience(v.audience),
		jwtv5.WithExpirationRequired(),
	)
	if err != nil {
		return nil, apierr.Unauthenticated(fmt.Errorf("token verification failed"))
	}
	if claims.Subject == "" {
		return nil, apierr.Unauthenticated(fmt.Errorf("token payload missing subject"))
	}

	identity := &Identity{
		SubjectID:     claims.Subject,
		Issuer:        claims.Issuer,
		Audience:      v.audience,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}

	if err := v.tokens.SetJSON(ctx, rawToken, identity, v.cacheTTL); err != nil {
		v.log.Warn("Token cache write failed (ignored)", "error", err)
	}
	return identity, nil
}

func (v *Verifier) cachedIdentity(ctx context.Context, rawToken string) (*Identity, bool) {
	var identity Identity
	ok, err := v.tokens.GetJSON(ctx, rawToken, &identity)
	if err != nil {
		v.log.Warn("Token cache read failed, treating as miss", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	// The cache TTL should expire entries first, but never hand out an
	// identity past its own expiry.
	if identity.Expired(time.Now()) {
		return nil, false
	}
	return &identity, true
}

func (v *Verifier) keyfunc(ctx context.Context) jwtv5.Keyfunc {
	return func(t *jwtv5.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token header missing kid")
		}
		return v.keys.PublicKeyByKID(ctx, kid)
	}
}
