// Package parser defines the input contracts of a reconciliation run and the base shared by their implementations.
package parser

import (
	"io"

	"fjacquet/camt-recon/internal/logging"
	"fjacquet/camt-recon/internal/models"
)

// StatementParser turns a bank statement document into its balances and entries.
// Implementations return a *parsererror.MalformedDocumentError when the input is not a
// well-formed document.
type StatementParser interface {
	Parse(r io.Reader) (*models.Statement, error)
}

// LedgerParser turns an internal ledger table into transactions.
// Implementations return a *parsererror.MissingColumnsError when required columns are absent.
type LedgerParser interface {
	Parse(r io.Reader) ([]models.InternalTransaction, error)
}

// LoggerConfigurable is implemented by components accepting a replacement logger
type LoggerConfigurable interface {
	SetLogger(logger logging.Logger)
}
