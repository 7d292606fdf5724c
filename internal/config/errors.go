package config

import "fmt"

// ParseError reports a settings file that could not be parsed.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string

	// Err is the underlying TOML error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("config: parsing %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
