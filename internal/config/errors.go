package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application settings
	// (for example, missing login URL or robot username).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidEmailConfigs indicates invalid status report settings
	// (for example, a port outside 1..65535).
	ErrInvalidEmailConfigs = errors.New("invalid email configuration")
	// ErrInvalidRetryConfigs indicates a retry policy with no attempts or
	// a non-positive pause.
	ErrInvalidRetryConfigs = errors.New("invalid retry configuration")
)

// ErrINIFileNotFound is returned when config.ini is missing or empty.
var ErrINIFileNotFound = errors.New("ini config file not found or empty")
