package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultPort is the HTTP port used when RESUME_TAILOR_PORT is unset.
const DefaultPort = 8080

// DefaultTokenHours is the token lifetime used when JWT_EXPIRATION_HOURS is unset.
const DefaultTokenHours = 24

// JWTConfig holds the signing secret and lifetime of API bearer tokens.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// ServerConfig holds settings for the HTTP API read from the environment.
type ServerConfig struct {
	Port           int
	AllowedOrigins []string
	CacheSize      int
	// JWT is nil when JWT_SECRET is unset, which disables authentication.
	JWT *JWTConfig
}

// NewServerConfig reads RESUME_TAILOR_PORT, RESUME_TAILOR_CORS_ORIGINS,
// RESUME_TAILOR_CACHE_SIZE, JWT_SECRET and JWT_EXPIRATION_HOURS.
func NewServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Port:           DefaultPort,
		AllowedOrigins: []string{"*"},
		CacheSize:      Defaults().CacheSize,
	}

	if v := os.Getenv("RESUME_TAILOR_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid RESUME_TAILOR_PORT: %q", v)
		}
		cfg.Port = port
	}

	if v := os.Getenv("RESUME_TAILOR_CORS_ORIGINS"); v != "" {
		cfg.AllowedOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if v := os.Getenv("RESUME_TAILOR_CACHE_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 0 {
			return nil, fmt.Errorf("invalid RESUME_TAILOR_CACHE_SIZE: %q", v)
		}
		cfg.CacheSize = size
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		jwtCfg, err := tokenConfig(secret)
		if err != nil {
			return nil, err
		}
		cfg.JWT = jwtCfg
	}

	return cfg, nil
}

// TokenConfigFromEnv reads JWT_SECRET and JWT_EXPIRATION_HOURS for minting
// tokens outside the server. Unlike NewServerConfig, a missing secret is an error.
func TokenConfigFromEnv() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}
	return tokenConfig(secret)
}

func tokenConfig(secret string) (*JWTConfig, error) {
	hours := DefaultTokenHours
	if v := os.Getenv("JWT_EXPIRATION_HOURS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %q (want a whole number of hours, at least 1)", v)
		}
		hours = n
	}
	return &JWTConfig{Secret: secret, ExpirationHours: hours}, nil
}

// Addr returns the listen address for the configured port.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
