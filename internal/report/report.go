// Package report renders a reconciliation partition as a table, a YAML summary or a workbook.
package report

import (
	"fjacquet/camt-recon/internal/models"
	"fjacquet/camt-recon/internal/tabular"
)

// Report columns
const (
	ColumnStatus          = "Status"
	ColumnBankEndToEndID  = "Bank_EndToEndId"
	ColumnBankInstrID     = "Bank_InstrId"
	ColumnBankAmount      = "Bank_Amount"
	ColumnBankDir         = "Bank_Dir"
	ColumnBankDate        = "Bank_Date"
	ColumnInternalTxnID   = "Internal_TxnId"
	ColumnInternalInvoice = "Internal_Invoice"
	ColumnInternalAmount  = "Internal_Amount"
	ColumnInternalDir     = "Internal_Dir"
	ColumnInternalDate    = "Internal_Date"
)

// Row statuses
const (
	StatusMatched      = "Matched"
	StatusBankOnly     = "BankOnly"
	StatusInternalOnly = "InternalOnly"
)

// Headers is the report header row, in output order
var Headers = []string{
	ColumnStatus,
	ColumnBankEndToEndID,
	ColumnBankInstrID,
	ColumnBankAmount,
	ColumnBankDir,
	ColumnBankDate,
	ColumnInternalTxnID,
	ColumnInternalInvoice,
	ColumnInternalAmount,
	ColumnInternalDir,
	ColumnInternalDate,
}

// Table returns the report rows: matched pairs, then bank-only entries, then
// internal-only rows, each group in partition order
func Table(p models.Partition) tabular.Table {
	rows := make([]map[string]string, 0, len(p.Matched)+len(p.BankOnly)+len(p.InternalOnly))

	for _, m := range p.Matched {
		row := map[string]string{ColumnStatus: StatusMatched}
		putBank(row, m.Bank)
		putInternal(row, m.Internal)
		rows = append(rows, row)
	}
	for _, b := range p.BankOnly {
		row := map[string]string{ColumnStatus: StatusBankOnly}
		putBank(row, b)
		rows = append(rows, row)
	}
	for _, i := range p.InternalOnly {
		row := map[string]string{ColumnStatus: StatusInternalOnly}
		putInternal(row, i)
		rows = append(rows, row)
	}

	return tabular.Table{Headers: append([]string(nil), Headers...), Rows: rows}
}

// Render serializes the report table
func Render(p models.Partition) string {
	t := Table(p)
	return tabular.Serialize(t.Headers, t.Rows)
}

func putBank(row map[string]string, b models.BankTransaction) {
	row[ColumnBankEndToEndID] = b.EndToEndID
	row[ColumnBankInstrID] = b.InstructionID
	row[ColumnBankAmount] = b.Amount.String()
	row[ColumnBankDir] = string(b.Direction)
	row[ColumnBankDate] = b.BookingDate
}

func putInternal(row map[string]string, i models.InternalTransaction) {
	row[ColumnInternalTxnID] = i.TxnID
	row[ColumnInternalInvoice] = i.Invoice
	row[ColumnInternalAmount] = i.Amount.String()
	row[ColumnInternalDir] = string(i.Direction)
	row[ColumnInternalDate] = i.BookingDate
}
