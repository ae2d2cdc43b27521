// Package auth verifies bearer tokens presented to the Trackstash API.
//
// Two Verifier implementations exist: OIDCVerifier validates signed tokens
// against an external identity provider's published JWKS, and StaticVerifier
// matches a single shared-secret token for local and test environments. The
// choice between them is a deployment-time configuration decision made once
// at startup, never a per-request branch.
package auth

import "context"

// Claims is the decoded identity attached to a request after successful
// verification. It is request-scoped and never persisted.
type Claims struct {
	// Subject is the stable identifier of the authenticated principal.
	Subject string
	// Email is the principal's email address, when the token carries one.
	Email string
	// Name is the principal's display name, when the token carries one.
	Name string
	// Raw holds the full decoded claim set for anything beyond the above.
	Raw map[string]any
}

// Verifier checks a bearer token and returns the decoded claims.
//
// Any failure — malformed token, bad signature, wrong audience, issuer or
// algorithm, expired token, key fetch failure — returns errors.ErrUnauthorized.
// No partial claims are ever returned alongside an error.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}
