package auth

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/trackstash/trackstash-server/internal/errors"
)

// Hard requirement: only RS256-signed tokens are accepted. Allowing whatever
// algorithm the token header names would open the door to algorithm-confusion
// attacks, so every other method is rejected even when validly signed.
var acceptedAlgorithms = []string{"RS256"}

// OIDCConfig configures verification against an external identity provider.
type OIDCConfig struct {
	// JWKSURL is the provider's published JSON Web Key Set endpoint.
	JWKSURL string
	// Audience is this service's client identifier; the token's aud claim
	// must match it exactly.
	Audience string
	// Issuers lists the accepted values for the token's iss claim.
	Issuers []string
}

// OIDCVerifier validates bearer tokens signed by an external identity
// provider, looking signing keys up by kid in the provider's JWKS.
type OIDCVerifier struct {
	keys     keyfunc.Keyfunc
	audience string
	issuers  []string
	logger   *slog.Logger
}

var _ Verifier = (*OIDCVerifier)(nil)

// NewOIDCVerifier fetches the provider's key set and returns a verifier.
//
// keyfunc owns the process-wide key cache: keys are fetched on first need,
// refreshed in the background on a bounded schedule, and refetches against
// the provider are rate-limited. The cache lives until ctx is canceled.
// A key fetch failure during a later verification surfaces as an ordinary
// unauthorized error, never as a process failure.
func NewOIDCVerifier(ctx context.Context, cfg OIDCConfig, logger *slog.Logger) (*OIDCVerifier, error) {
	if cfg.JWKSURL == "" {
		return nil, fmt.Errorf("jwks url is required")
	}
	if cfg.Audience == "" {
		return nil, fmt.Errorf("audience is required")
	}
	if len(cfg.Issuers) == 0 {
		return nil, fmt.Errorf("at least one accepted issuer is required")
	}

	keys, err := keyfunc.NewDefaultCtx(ctx, []string{cfg.JWKSURL})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize jwks cache for %s: %w", cfg.JWKSURL, err)
	}

	if logger != nil {
		logger.Info("OIDC verifier initialized", "jwks_url", cfg.JWKSURL, "audience", cfg.Audience)
	}

	return &OIDCVerifier{
		keys:     keys,
		audience: cfg.Audience,
		issuers:  cfg.Issuers,
		logger:   logger,
	}, nil
}

// Verify checks the token's signature, algorithm, audience, issuer and
// expiry, and returns the decoded claims on success.
func (v *OIDCVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, v.keys.Keyfunc,
		jwt.WithValidMethods(acceptedAlgorithms),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		if v.logger != nil {
			v.logger.Debug("token verification failed", "error", err)
		}
		return nil, errors.ErrUnauthorized.WithCause(err)
	}

	// jwt.WithIssuer only accepts a single value; providers like Google
	// publish several issuer strings, so the claim is checked here.
	issuer, err := claims.GetIssuer()
	if err != nil || !slices.Contains(v.issuers, issuer) {
		if v.logger != nil {
			v.logger.Debug("token issuer not accepted", "issuer", issuer)
		}
		return nil, errors.Unauthorized("unauthorized")
	}

	return claimsFromMap(claims), nil
}

// claimsFromMap extracts the well-known identity fields from a decoded
// claim set, keeping the full map available in Raw.
func claimsFromMap(m jwt.MapClaims) *Claims {
	c := &Claims{Raw: map[string]any(m)}
	if sub, ok := m["sub"].(string); ok {
		c.Subject = sub
	}
	if email, ok := m["email"].(string); ok {
		c.Email = email
	}
	if name, ok := m["name"].(string); ok {
		c.Name = name
	}
	return c
}
