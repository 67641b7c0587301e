package models

// BankTransaction is one Ntry of a CAMT.053 statement. Empty strings mean the
// element was absent from the document.
type BankTransaction struct {
	// Index is the entry's position in document order, starting at 0
	Index            int       `json:"bank_id" yaml:"bank_id"`
	AccountID        string    `json:"iban,omitempty" yaml:"iban,omitempty"`
	Amount           Amount    `json:"amount" yaml:"amount"`
	Currency         string    `json:"currency,omitempty" yaml:"currency,omitempty"`
	Direction        Direction `json:"direction,omitempty" yaml:"direction,omitempty"`
	BookingDate      string    `json:"booking_date,omitempty" yaml:"booking_date,omitempty"`
	EndToEndID       string    `json:"end_to_end_id,omitempty" yaml:"end_to_end_id,omitempty"`
	InstructionID    string    `json:"instr_id,omitempty" yaml:"instr_id,omitempty"`
	DebtorName       string    `json:"debtor,omitempty" yaml:"debtor,omitempty"`
	CreditorName     string    `json:"creditor,omitempty" yaml:"creditor,omitempty"`
	BankTxFamilyCode string    `json:"bank_tx_code,omitempty" yaml:"bank_tx_code,omitempty"`
}

// InternalTransaction is one row of the internal ledger
type InternalTransaction struct {
	// Index is the 0-based data row position in the ledger
	Index        int       `json:"int_id" yaml:"int_id"`
	TxnID        string    `json:"txn_id" yaml:"txn_id"`
	Invoice      string    `json:"invoice" yaml:"invoice"`
	Counterparty string    `json:"counterparty" yaml:"counterparty"`
	Amount       Amount    `json:"amount" yaml:"amount"`
	Currency     string    `json:"currency" yaml:"currency"`
	BookingDate  string    `json:"book_date" yaml:"book_date"`
	Direction    Direction `json:"direction" yaml:"direction"`
}
