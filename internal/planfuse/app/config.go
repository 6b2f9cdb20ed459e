package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config carries everything the service needs at startup. Values layer in
// order: built-in defaults, then an optional TOML file named by
// PLANFUSE_CONFIG, then environment variables (a .env file is loaded
// best-effort first, for development).
type Config struct {
	HTTPAddr  string `toml:"http_addr"`  // HTTP listen address (default: ":8080")
	PublicURL string `toml:"public_url"` // Externally visible base URL
	Issuer    string `toml:"issuer"`     // Name shown in authenticator apps

	StoreDriver string `toml:"store_driver"` // "sqlite" or "postgres" (default: sqlite)
	StoreDSN    string `toml:"store_dsn"`    // Driver DSN; for sqlite, the database path

	// SessionSecret signs session tokens and MFA tickets (HS256). Required
	// outside dev; in dev a key is loaded or created at SessionSecretFile.
	SessionSecret     string `toml:"session_secret"`
	SessionSecretFile string `toml:"session_secret_file"`

	// TOTPEncKey encrypts stored TOTP seeds at rest (AES-GCM). Required
	// outside dev.
	TOTPEncKey string `toml:"totp_enc_key"`

	LockoutThreshold int           `toml:"lockout_threshold"` // Failed attempts before a lock (default: 3)
	SessionTTL       time.Duration `toml:"-"`                 // Session lifetime (default: 24h)
	SweepInterval    time.Duration `toml:"-"`                 // Expired-session sweep interval (default: 1h)

	Env                 string        `toml:"env"`        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        `toml:"log_level"`  // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        `toml:"log_format"` // Log format (json, text) (default: json)
	ShutdownGracePeriod time.Duration `toml:"-"`

	// TOML carries durations as integer seconds; env vars accept Go
	// duration strings. Zero means "use the default above".
	SessionTTLSecs    int `toml:"session_ttl_secs"`
	SweepIntervalSecs int `toml:"sweep_interval_secs"`
	ShutdownGraceSecs int `toml:"shutdown_grace_secs"`
}

// LoadConfig assembles the configuration from defaults, the optional TOML
// file, and the environment.
func LoadConfig() (Config, error) {
	// Best-effort: a missing .env is fine, it only exists in development.
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:            ":8080",
		PublicURL:           "http://localhost:8080",
		Issuer:              "PlanFuse",
		StoreDriver:         "sqlite",
		StoreDSN:            "planfuse.db",
		SessionSecretFile:   "session.secret",
		SessionTTL:          24 * time.Hour,
		SweepInterval:       time.Hour,
		Env:                 "dev",
		LogLevel:            "info",
		LogFormat:           "json",
		ShutdownGracePeriod: 10 * time.Second,
	}

	if path := os.Getenv("PLANFUSE_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	if cfg.SessionTTLSecs > 0 {
		cfg.SessionTTL = time.Duration(cfg.SessionTTLSecs) * time.Second
	}
	if cfg.SweepIntervalSecs > 0 {
		cfg.SweepInterval = time.Duration(cfg.SweepIntervalSecs) * time.Second
	}
	if cfg.ShutdownGraceSecs > 0 {
		cfg.ShutdownGracePeriod = time.Duration(cfg.ShutdownGraceSecs) * time.Second
	}

	cfg.HTTPAddr = getEnvOrDefault("HTTP_ADDR", cfg.HTTPAddr)
	cfg.PublicURL = getEnvOrDefault("PUBLIC_URL", cfg.PublicURL)
	cfg.Issuer = getEnvOrDefault("PLANFUSE_ISSUER", cfg.Issuer)
	cfg.StoreDriver = getEnvOrDefault("STORE_DRIVER", cfg.StoreDriver)
	cfg.StoreDSN = getEnvOrDefault("STORE_DSN", cfg.StoreDSN)
	cfg.SessionSecret = getEnvOrDefault("SESSION_SECRET", cfg.SessionSecret)
	cfg.SessionSecretFile = getEnvOrDefault("SESSION_SECRET_FILE", cfg.SessionSecretFile)
	cfg.TOTPEncKey = getEnvOrDefault("TOTP_ENC_KEY", cfg.TOTPEncKey)
	cfg.LockoutThreshold = getEnvIntOrDefault("LOCKOUT_THRESHOLD", cfg.LockoutThreshold)
	cfg.SessionTTL = getEnvDurationOrDefault("SESSION_TTL", cfg.SessionTTL)
	cfg.SweepInterval = getEnvDurationOrDefault("SWEEP_INTERVAL", cfg.SweepInterval)
	cfg.Env = getEnvOrDefault("ENV", cfg.Env)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.ShutdownGracePeriod = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", cfg.ShutdownGracePeriod)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate fails fast on configuration that would only blow up later.
// Secrets may be absent in dev, where keys.go loads or creates them.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown store driver %q (want sqlite or postgres)", c.StoreDriver)
	}
	if c.StoreDSN == "" {
		return fmt.Errorf("STORE_DSN must be set")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}

	if c.Env != "dev" {
		if len(c.SessionSecret) < 32 {
			return fmt.Errorf("SESSION_SECRET must be at least 32 bytes outside dev")
		}
		if c.TOTPEncKey == "" {
			return fmt.Errorf("TOTP_ENC_KEY must be set outside dev")
		}
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}

	return defaultValue
}
