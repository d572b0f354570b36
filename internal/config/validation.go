// Package config provides configuration management for the Diamond Edge
// predictions application.
package config

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("markets", validateMarkets)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	// Additional cross-field validations
	if err := validateCrossField(cfg); err != nil {
		return err
	}

	return nil
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	env := fl.Field().String()
	switch env {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateMarkets checks that every configured market is a supported kind
func validateMarkets(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < fl.Field().Len(); i++ {
		switch fl.Field().Index(i).String() {
		case "h2h", "spreads":
		default:
			return false
		}
	}
	return true
}

func validateCrossField(cfg *Config) error {
	if cfg.Email.Enabled && cfg.Email.Password == "" {
		return fmt.Errorf("email delivery is enabled but no SMTP password is configured")
	}
	if cfg.Database.Enabled && cfg.Database.Password == "" {
		return fmt.Errorf("database persistence is enabled but no password is configured")
	}
	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	for _, e := range errs {
		return fmt.Errorf("invalid configuration: field %q failed %q validation", e.Namespace(), e.Tag())
	}
	return nil
}
