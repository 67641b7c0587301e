// Package models defines the data structures shared by the statement parser,
// the ledger mapper, the reconciliation engine and the report writers.
package models

// Balance is a statement balance (OPBD or CLBD)
type Balance struct {
	Amount   Amount `json:"amount" yaml:"amount"`
	Currency string `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// Statement holds everything extracted from one CAMT.053 document
type Statement struct {
	AccountID string            `json:"iban,omitempty" yaml:"iban,omitempty"`
	Opening   *Balance          `json:"opening,omitempty" yaml:"opening,omitempty"`
	Closing   *Balance          `json:"closing,omitempty" yaml:"closing,omitempty"`
	Entries   []BankTransaction `json:"entries" yaml:"entries"`
}

// MatchRecord pairs one bank transaction with one internal transaction
type MatchRecord struct {
	Bank     BankTransaction     `json:"bank" yaml:"bank"`
	Internal InternalTransaction `json:"internal" yaml:"internal"`
	Rule     string              `json:"rule" yaml:"rule"`
}

// Partition is the result of a reconciliation run. Every bank transaction is
// in exactly one of Matched and BankOnly, every internal transaction in
// exactly one of Matched and InternalOnly.
type Partition struct {
	Matched      []MatchRecord         `json:"matched" yaml:"matched"`
	BankOnly     []BankTransaction     `json:"bank_only" yaml:"bank_only"`
	InternalOnly []InternalTransaction `json:"internal_only" yaml:"internal_only"`
}

// PartitionCounts summarizes the size of each side of a Partition
type PartitionCounts struct {
	Matched      int            `json:"matched" yaml:"matched"`
	ByRule       map[string]int `json:"by_rule,omitempty" yaml:"by_rule,omitempty"`
	BankOnly     int            `json:"bank_only" yaml:"bank_only"`
	InternalOnly int            `json:"internal_only" yaml:"internal_only"`
}

// Counts returns the number of records in each part of the partition
func (p Partition) Counts() PartitionCounts {
	counts := PartitionCounts{
		Matched:      len(p.Matched),
		BankOnly:     len(p.BankOnly),
		InternalOnly: len(p.InternalOnly),
	}
	if len(p.Matched) > 0 {
		counts.ByRule = make(map[string]int)
		for _, m := range p.Matched {
			counts.ByRule[m.Rule]++
		}
	}
	return counts
}

// BalanceStatus is the outcome of the balance identity check
type BalanceStatus string

const (
	BalanceOK           BalanceStatus = "OK"
	BalanceMismatch     BalanceStatus = "MISMATCH"
	BalanceUndetermined BalanceStatus = "UNDETERMINED"
)

// BalanceCheck compares opening + movements against the reported closing balance
type BalanceCheck struct {
	Opening           *Balance      `json:"opening,omitempty" yaml:"opening,omitempty"`
	Closing           *Balance      `json:"closing,omitempty" yaml:"closing,omitempty"`
	SumMovements      Amount        `json:"sum_movements" yaml:"sum_movements"`
	CalculatedClosing *Amount       `json:"calculated_closing,omitempty" yaml:"calculated_closing,omitempty"`
	Status            BalanceStatus `json:"status" yaml:"status"`
}

// OK reports whether the balance identity holds
func (b BalanceCheck) OK() bool {
	return b.Status == BalanceOK
}
