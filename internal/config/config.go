// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Default values for optional settings.
const (
	DefaultBackendURL = "https://n8n.ridaflows.com/webhook"
	DefaultListenAddr = "127.0.0.1:8080"
	DefaultDBPath     = "viuelpadel.db"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	BackendURL string
	AuthHeader string // Empty means the gateway default.
	ListenAddr string
	DBPath     string
	SecretKey  []byte // 32 bytes, or nil when credentials are kept in memory only.
}

// HasSecretKey reports whether a credential encryption key is configured.
// Used by the composition root to choose between the SQLite credential
// store and the in-memory one.
func (c *Config) HasSecretKey() bool {
	return len(c.SecretKey) > 0
}

// Load reads configuration from environment variables and returns a validated Config.
// All variables are optional: VIUELPADEL_BACKEND_URL (n8n webhook base),
// VIUELPADEL_AUTH_HEADER, VIUELPADEL_LISTEN_ADDR (127.0.0.1:8080),
// VIUELPADEL_DB_PATH (viuelpadel.db) and VIUELPADEL_SECRET_KEY (64 hex chars).
func Load() (*Config, error) {
	backendURL := DefaultBackendURL
	if v, ok := os.LookupEnv("VIUELPADEL_BACKEND_URL"); ok && v != "" {
		u, err := url.Parse(v)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("VIUELPADEL_BACKEND_URL must be an absolute http(s) URL, got %q", v)
		}
		backendURL = strings.TrimRight(v, "/")
	}

	authHeader := strings.TrimSpace(os.Getenv("VIUELPADEL_AUTH_HEADER"))
	if strings.ContainsAny(authHeader, " :\t") {
		return nil, fmt.Errorf("VIUELPADEL_AUTH_HEADER is not a valid header name: %q", authHeader)
	}

	listenAddr := DefaultListenAddr
	if v, ok := os.LookupEnv("VIUELPADEL_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := DefaultDBPath
	if v, ok := os.LookupEnv("VIUELPADEL_DB_PATH"); ok {
		dbPath = v
	}

	var secretKey []byte
	if v := os.Getenv("VIUELPADEL_SECRET_KEY"); v != "" {
		key, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("VIUELPADEL_SECRET_KEY is not valid hex: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("VIUELPADEL_SECRET_KEY must decode to 32 bytes, got %d", len(key))
		}
		secretKey = key
	}

	return &Config{
		BackendURL: backendURL,
		AuthHeader: authHeader,
		ListenAddr: listenAddr,
		DBPath:     dbPath,
		SecretKey:  secretKey,
	}, nil
}
