package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/antonybholmes/go-auth/pkg/cryptox"
	"github.com/antonybholmes/go-auth/pkg/jwtx"
)

// InitAuthKeys loads the Ed25519 signing material.
//
// With AUTH_PRIVATE_KEY_FILE set, the key is read from disk and a corrupt or
// unreadable file is a startup failure. Without it an ephemeral key is
// generated, which invalidates every previously issued token on restart.
//
// AUTH_PUBLIC_KEY_FILE optionally supplies a separate verification key,
// for deployments where this process verifies tokens minted elsewhere.
func InitAuthKeys(cfg Config, logger *slog.Logger) (*jwtx.Signer, *jwtx.Verifier, error) {
	var pemKey []byte

	if cfg.PrivateKeyFile != "" {
		var err error
		pemKey, err = os.ReadFile(cfg.PrivateKeyFile)
		if err != nil {
			return nil, nil, fmt.Errorf("read signing key %s: %w", cfg.PrivateKeyFile, err)
		}
		logger.Info("signing key loaded", "path", cfg.PrivateKeyFile)
	} else {
		var err error
		pemKey, err = cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, nil, fmt.Errorf("generate ephemeral signing key: %w", err)
		}
		logger.Warn("no signing key configured, generated an ephemeral one; all previously issued tokens are now invalid")
	}

	signer, err := jwtx.NewSigner(pemKey)
	if err != nil {
		return nil, nil, fmt.Errorf("parse signing key: %w", err)
	}

	verifier := jwtx.NewVerifierForKey(signer.PublicKey())
	if cfg.PublicKeyFile != "" {
		pubPEM, err := os.ReadFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, nil, fmt.Errorf("read verification key %s: %w", cfg.PublicKeyFile, err)
		}
		verifier, err = jwtx.NewVerifier(pubPEM)
		if err != nil {
			return nil, nil, fmt.Errorf("parse verification key: %w", err)
		}
		logger.Info("verification key loaded", "path", cfg.PublicKeyFile)
	}

	return signer, verifier, nil
}
