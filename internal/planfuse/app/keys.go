package app

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/planfuse/planfuse/pkg/cryptox"
	"github.com/planfuse/planfuse/pkg/jwtx"
)

// initSigningKeys resolves the session signing secret and builds the HS256
// signer/verifier pair. The secret comes from configuration; in dev, when
// none is configured, a key is loaded from (or created at) the session
// secret file so restarts keep old tokens valid.
//
// Nothing outside this function touches key material; the signer and
// verifier carry it from here on.
func initSigningKeys(cfg Config, logger *slog.Logger) (jwtx.Signer, jwtx.Verifier, error) {
	secret := cfg.SessionSecret
	if secret == "" {
		if cfg.Env != "dev" {
			return nil, nil, fmt.Errorf("no session secret configured")
		}
		loaded, err := loadOrCreateSecret(cfg.SessionSecretFile)
		if err != nil {
			return nil, nil, fmt.Errorf("load session secret: %w", err)
		}
		secret = loaded
		logger.Info("dev session secret loaded", "path", cfg.SessionSecretFile)
	}

	signer, err := jwtx.NewSignerHS256([]byte(secret))
	if err != nil {
		return nil, nil, fmt.Errorf("create signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256([]byte(secret), jwtx.VerifyOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("create verifier: %w", err)
	}
	return signer, verifier, nil
}

// initSealer builds the AES-GCM sealer protecting TOTP seeds at rest. In
// dev an unset key falls back to the session secret file's key so the
// service still starts; Validate rejects that outside dev.
func initSealer(cfg Config) (*cryptox.Sealer, error) {
	key := cfg.TOTPEncKey
	if key == "" {
		loaded, err := loadOrCreateSecret(cfg.SessionSecretFile)
		if err != nil {
			return nil, fmt.Errorf("load TOTP encryption key: %w", err)
		}
		key = loaded
	}
	return cryptox.NewSealer([]byte(key))
}

// loadOrCreateSecret reads a secret from path, generating and persisting a
// fresh 256-bit one on first run. Dev convenience only.
func loadOrCreateSecret(path string) (string, error) {
	if data, err := os.ReadFile(path); err == nil {
		secret := strings.TrimSpace(string(data))
		if len(secret) >= jwtx.MinSecretLen {
			return secret, nil
		}
		return "", fmt.Errorf("secret file %s holds fewer than %d bytes", path, jwtx.MinSecretLen)
	} else if !os.IsNotExist(err) {
		return "", err
	}

	secret, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(secret+"\n"), 0o600); err != nil {
		return "", err
	}
	return secret, nil
}
