// Package parsererror defines the fatal error kinds of a reconciliation run.
package parsererror

import (
	"fmt"
	"strings"
)

// MalformedDocumentError reports a statement that is not a well-formed XML document
type MalformedDocumentError struct {
	Source string
	Err    error
}

func (e *MalformedDocumentError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("malformed statement document %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("malformed statement document: %v", e.Err)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// MissingColumnsError reports required ledger columns absent from the header row
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("ledger missing columns: %s", strings.Join(e.Columns, ", "))
}

// ConfigError reports an invalid configuration value
type ConfigError struct {
	Key    string
	Value  interface{}
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s=%v: %s", e.Key, e.Value, e.Reason)
}
