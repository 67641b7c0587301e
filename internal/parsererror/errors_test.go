package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMalformedDocumentError(t *testing.T) {
	tests := []struct {
		name     string
		err      *MalformedDocumentError
		expected string
	}{
		{
			name:     "with source",
			err:      &MalformedDocumentError{Source: "statement.xml", Err: errors.New("unexpected EOF")},
			expected: "malformed statement document statement.xml: unexpected EOF",
		},
		{
			name:     "without source",
			err:      &MalformedDocumentError{Err: errors.New("no root element")},
			expected: "malformed statement document: no root element",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestMalformedDocumentError_Unwrap(t *testing.T) {
	cause := errors.New("syntax error")
	err := fmt.Errorf("parse statement: %w", &MalformedDocumentError{Err: cause})

	var malformed *MalformedDocumentError
	assert.True(t, errors.As(err, &malformed))
	assert.True(t, errors.Is(err, cause))
}

func TestMissingColumnsError(t *testing.T) {
	err := &MissingColumnsError{Columns: []string{"Invoice", "Direction"}}
	assert.Equal(t, "ledger missing columns: Invoice, Direction", err.Error())

	var missing *MissingColumnsError
	assert.True(t, errors.As(fmt.Errorf("map ledger: %w", err), &missing))
	assert.Equal(t, []string{"Invoice", "Direction"}, missing.Columns)
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Key: "reconcile.amount_tolerance", Value: "-1", Reason: "must not be negative"}
	assert.Equal(t, "invalid configuration reconcile.amount_tolerance=-1: must not be negative", err.Error())
}
