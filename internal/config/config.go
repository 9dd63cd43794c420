package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds process configuration resolved once at startup from the
// environment. Default ids that used to be hardcoded in the dashboard
// backend are injected here so environments can vary them.
type Config struct {
	Port         string
	DatabasePath string
	JWTSecret    string
	TokenTTL     time.Duration
	Env          string

	DefaultTeamID         string
	DefaultOrganizationID string
}

// Load reads configuration from the environment, failing fast on missing
// or unusable values.
func Load() (*Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if len(jwtSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}

	tokenTTL := 24 * time.Hour
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		tokenTTL = parsed
	}

	return &Config{
		Port:         envOrDefault("PORT", "8080"),
		DatabasePath: envOrDefault("DATABASE_PATH", "workpulse.db"),
		JWTSecret:    jwtSecret,
		TokenTTL:     tokenTTL,
		Env:          envOrDefault("ENV", "development"),

		DefaultTeamID:         envOrDefault("DEFAULT_TEAM_ID", "team-default"),
		DefaultOrganizationID: envOrDefault("DEFAULT_ORGANIZATION_ID", "org-default"),
	}, nil
}

// IsProduction reports whether error responses should omit internal detail.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
