package pageflow

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by configuration, curve lookup and scripting.
var (
	ErrUnknownCurve      = errors.New("pageflow: unknown easing curve")
	ErrUnsupportedFormat = errors.New("pageflow: unsupported file format")
	ErrEmptyScript       = errors.New("pageflow: script has no steps")
	ErrInvalidColor      = errors.New("pageflow: invalid color")
	ErrUnknownPage       = errors.New("pageflow: unknown page")
)

// ConfigError wraps a failure while loading or validating a configuration
// or message file.
type ConfigError struct {
	Path string
	Op   string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("pageflow: config %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("pageflow: config %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a ConfigError.
func NewConfigError(path, op string, err error) *ConfigError {
	return &ConfigError{Path: path, Op: op, Err: err}
}

// IsConfigError reports whether err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
