package config

import "errors"

// Common errors returned by configuration validation.
var (
	ErrInvalidInterval    = errors.New("interval must be positive")
	ErrConflictingOutputs = errors.New("pipe and serial outputs are mutually exclusive")
	ErrInvalidInertial    = errors.New(`inertial sentence must be "nfimu" or "imuag"`)
)
