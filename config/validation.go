package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type requirement struct {
	field string
	value func(*Config) string
}

var (
	jwtSecret  = requirement{"JWT_SECRET", func(c *Config) string { return c.JWTSecret }}
	serverPort = requirement{"SERVER_PORT", func(c *Config) string { return c.ServerPort }}
	dbHost     = requirement{"DB_HOST", func(c *Config) string { return c.DBHost }}
	dbName     = requirement{"DB_NAME", func(c *Config) string { return c.DBName }}
	dbUser     = requirement{"DB_USER", func(c *Config) string { return c.DBUser }}
	dbPassword = requirement{"DB_PASSWORD", func(c *Config) string { return c.DBPassword }}
)

// Environment-specific requirements
var requirements = map[Environment][]requirement{
	Development: {serverPort, jwtSecret},
	Test:        {serverPort, jwtSecret},
	CI:          {serverPort, jwtSecret, dbHost, dbName, dbUser, dbPassword},
	Production:  {serverPort, jwtSecret, dbHost, dbName, dbUser, dbPassword},
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []string

	for _, req := range requirements[cfg.Environment] {
		if strings.TrimSpace(req.value(cfg)) == "" {
			errs = append(errs, ValidationError{Field: req.field, Message: "is required"}.Error())
		}
	}

	switch cfg.DBDriver {
	case "postgres":
	case "sqlite":
		if cfg.Environment == Production {
			errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not allowed in production"}.Error())
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)}.Error())
	}

	if cfg.TokenLifespan <= 0 {
		errs = append(errs, ValidationError{Field: "TOKEN_LIFESPAN", Message: "must be positive"}.Error())
	}
	if cfg.RateLimitMax <= 0 || cfg.RateLimitWindow <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT", Message: "window and max must be positive"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
