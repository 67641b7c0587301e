package models

// Direction is the CdtDbtInd of a statement entry or the Direction column of
// a ledger row. Values other than CRDT and DBIT are kept verbatim.
type Direction string

const (
	DirectionCredit Direction = "CRDT"
	DirectionDebit  Direction = "DBIT"
)

// IsDebit returns true for DBIT
func (d Direction) IsDebit() bool {
	return d == DirectionDebit
}

// Balance type codes read from Bal/Tp/CdOrPrtry/Cd
const (
	BalanceTypeOpening = "OPBD"
	BalanceTypeClosing = "CLBD"
)

// Ledger column names
const (
	ColumnTxnID        = "TxnId"
	ColumnInvoice      = "Invoice"
	ColumnCounterparty = "Counterparty"
	ColumnAmount       = "Amount"
	ColumnCurrency     = "Currency"
	ColumnBookDate     = "BookDate"
	ColumnDirection    = "Direction"
)

// RequiredLedgerColumns lists the columns every ledger must carry, in the
// order they are reported when missing.
var RequiredLedgerColumns = []string{
	ColumnTxnID,
	ColumnInvoice,
	ColumnCounterparty,
	ColumnAmount,
	ColumnCurrency,
	ColumnBookDate,
	ColumnDirection,
}

// File permissions
const (
	PermissionFile      = 0600
	PermissionDirectory = 0750
)
