package config

import (
	"errors"
	"fmt"
)

// Errors returned by Load and Validate. They are wrapped in a
// *ValidationError naming the offending setting.
var (
	ErrUnknownSetting     = errors.New("unknown setting")
	ErrInvalidType        = errors.New("invalid type")
	ErrInvalidLerp        = errors.New("lerp must be in (0, 1]")
	ErrInvalidDuration    = errors.New("duration must not be negative")
	ErrInvalidMultiplier  = errors.New("multiplier must be positive")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidEasing      = errors.New("invalid easing")
	ErrInvalidSpring      = errors.New("spring frequency and damping must be positive")
	ErrInvalidSnapType    = errors.New("invalid snap type")
	ErrInvalidLevel       = errors.New("invalid log level")
)

// ValidationError ties an error to a setting path.
type ValidationError struct {
	Path  string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("config: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %s: %v (got %v)", e.Path, e.Err, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(path string, value any, err error) error {
	return &ValidationError{Path: path, Value: value, Err: err}
}
