package config

import "errors"

// Validation errors returned by [StructuredConfig.validate]. Each one names
// the configuration section that failed its invariants.
var (
	// ErrInvalidAppConfigs is returned when the token signing secret is
	// missing. The service cannot mint or verify tokens without it.
	ErrInvalidAppConfigs = errors.New("invalid app configs: token sign key is required")

	// ErrInvalidStorageConfigs is returned when no database DSN is provided.
	ErrInvalidStorageConfigs = errors.New("invalid storage configs: database DSN is required")

	// ErrInvalidMediaConfigs is returned when the media backend selector is
	// unknown or its required settings are missing.
	ErrInvalidMediaConfigs = errors.New("invalid media configs: unknown backend or missing settings")
)
