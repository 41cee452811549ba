package config

import (
	"fmt"
)

// ValidationError reports a configuration field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable. JWT and database
// secrets are mandatory in production only, so local development and tests
// can run with defaults.
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return ValidationError{Field: "ServerPort", Message: "must not be empty"}
	}
	if cfg.DBHost == "" || cfg.DBName == "" {
		return ValidationError{Field: "Database", Message: "host and name must not be empty"}
	}

	if IsProduction() {
		if cfg.JWTSecret == "" {
			return ValidationError{Field: "JWTSecret", Message: "required in production"}
		}
		if cfg.DBPassword == "" {
			return ValidationError{Field: "DBPassword", Message: "required in production"}
		}
	}
	return nil
}
