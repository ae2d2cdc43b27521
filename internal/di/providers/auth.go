package providers

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/trackstash/trackstash-server/internal/auth"
	"github.com/trackstash/trackstash-server/internal/config"
	"github.com/trackstash/trackstash-server/internal/logger"
)

// ProvideVerifier provides the token verifier selected by configuration.
//
// The choice is made once at startup; there is no per-request fallback
// between verifiers.
func ProvideVerifier(i do.Injector) (auth.Verifier, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	switch cfg.Auth.Mode {
	case "oidc":
		verifier, err := auth.NewOIDCVerifier(context.Background(), auth.OIDCConfig{
			JWKSURL:  cfg.Auth.JWKSURL,
			Audience: cfg.Auth.ClientID,
			Issuers:  cfg.Auth.Issuers,
		}, log.Logger)
		if err != nil {
			return nil, err
		}
		log.Info("Token verification via OIDC provider", "jwks_url", cfg.Auth.JWKSURL)
		return verifier, nil

	case "static":
		log.Warn("Static token verification enabled; use only for local development")
		return auth.NewStaticVerifier(cfg.Auth.StaticToken), nil

	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Auth.Mode)
	}
}
