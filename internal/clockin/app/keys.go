package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/clockin/pkg/cryptox"
	"github.com/aussiebroadwan/clockin/pkg/jwtx"
)

// InitKeys creates the KeyManager that signs access tokens.
//
// With a key file the signing key survives restarts and so do issued tokens.
// Without one a key is generated in memory and every token becomes invalid
// when the service restarts.
func InitKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	opts := jwtx.KeyManagerOptions{
		Issuer:   cfg.Issuer,
		Audience: []string{Audience},
	}

	if cfg.KeyFile != "" {
		key, err := cryptox.LoadOrCreateEd25519Key(cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load signing key: %w", err)
		}
		opts.Key = key
	}

	km, err := jwtx.NewKeyManager(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key manager: %w", err)
	}

	if cfg.KeyFile != "" {
		logger.Info("signing key loaded", "path", cfg.KeyFile, "kid", km.Signer().KID())
	} else {
		logger.Warn("generated ephemeral signing key, tokens will not survive a restart",
			"kid", km.Signer().KID(),
		)
	}
	return km, nil
}
