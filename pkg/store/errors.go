package store

import (
	"errors"
	"fmt"
)

// Storage errors reported by Load. LoadOrCreateDefault never returns them.
var (
	ErrNotFound    = errors.New("config file not found")
	ErrEmptyConfig = errors.New("config file contains no buttons")
)

// ParseError reports a config file that exists but cannot be decoded
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
