// Package ledger maps internal ledger tables to InternalTransaction records.
package ledger

import (
	"fmt"
	"io"

	"fjacquet/camt-recon/internal/fileutils"
	"fjacquet/camt-recon/internal/logging"
	"fjacquet/camt-recon/internal/models"
	"fjacquet/camt-recon/internal/parser"
	"fjacquet/camt-recon/internal/parsererror"
	"fjacquet/camt-recon/internal/tabular"

	"github.com/gocarina/gocsv"
)

// LedgerCSVRow represents a single row of the internal ledger.
// It uses struct tags for gocsv unmarshaling.
type LedgerCSVRow struct {
	TxnID        string `csv:"TxnId"`
	Invoice      string `csv:"Invoice"`
	Counterparty string `csv:"Counterparty"`
	Amount       string `csv:"Amount"`
	Currency     string `csv:"Currency"`
	BookDate     string `csv:"BookDate"`
	Direction    string `csv:"Direction"`
}

// Mapper reads ledger tables
type Mapper struct {
	parser.BaseParser
	encoding string
}

var _ parser.LedgerParser = (*Mapper)(nil)

// NewMapper creates a Mapper. encoding names the text encoding of raw input
// given to Parse and ParseFile; empty means UTF-8.
func NewMapper(logger logging.Logger, encoding string) *Mapper {
	return &Mapper{
		BaseParser: parser.NewBaseParser(logger),
		encoding:   encoding,
	}
}

// Parse reads raw ledger text from r
func (m *Mapper) Parse(r io.Reader) ([]models.InternalTransaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	text, err := fileutils.DecodeText(data, m.encoding)
	if err != nil {
		return nil, err
	}
	return m.ParseString(text)
}

// ParseFile reads the ledger stored at path
func (m *Mapper) ParseFile(path string) ([]models.InternalTransaction, error) {
	text, err := fileutils.ReadText(path, m.encoding)
	if err != nil {
		return nil, err
	}

	m.GetLogger().Debug("Read ledger file", logging.F(logging.FieldFile, path))
	return m.ParseString(text)
}

// ParseString parses ledger text already decoded to UTF-8
func (m *Mapper) ParseString(text string) ([]models.InternalTransaction, error) {
	return m.Map(tabular.Parse(text))
}

// Map converts a parsed table. Every required column must be present; extra
// columns are ignored. A row whose amount is not a number is kept with an
// invalid amount.
func (m *Mapper) Map(table tabular.Table) ([]models.InternalTransaction, error) {
	logger := m.GetLogger().WithField(logging.FieldComponent, "ledger")

	if missing := table.MissingColumns(models.RequiredLedgerColumns); len(missing) > 0 {
		err := &parsererror.MissingColumnsError{Columns: missing}
		logger.WithError(err).Error("Ledger is missing required columns")
		return nil, err
	}

	rows, err := bindRows(table)
	if err != nil {
		return nil, err
	}

	transactions := make([]models.InternalTransaction, 0, len(rows))
	for i, row := range rows {
		tx := convertRow(i, row)
		if !tx.Amount.IsValid() {
			logger.Warn("Ledger amount is not a number",
				logging.F(logging.FieldRowIndex, i),
				logging.F("txn_id", tx.TxnID),
				logging.F("raw_amount", row.Amount))
		}
		transactions = append(transactions, tx)
	}

	logger.Info("Mapped ledger rows", logging.F(logging.FieldRows, len(transactions)))
	return transactions, nil
}

func bindRows(table tabular.Table) ([]LedgerCSVRow, error) {
	if len(table.Rows) == 0 {
		return []LedgerCSVRow{}, nil
	}

	var rows []LedgerCSVRow
	if err := gocsv.UnmarshalCSV(tabular.NewReader(table), &rows); err != nil {
		return nil, fmt.Errorf("failed to bind ledger rows: %w", err)
	}
	return rows, nil
}

func convertRow(index int, row LedgerCSVRow) models.InternalTransaction {
	return models.InternalTransaction{
		Index:        index,
		TxnID:        row.TxnID,
		Invoice:      row.Invoice,
		Counterparty: row.Counterparty,
		Amount:       models.ParseAmount(row.Amount),
		Currency:     row.Currency,
		BookingDate:  row.BookDate,
		Direction:    models.Direction(row.Direction),
	}
}
