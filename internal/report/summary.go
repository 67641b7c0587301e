package report

import (
	"fmt"

	"fjacquet/camt-recon/internal/models"
	"fjacquet/camt-recon/internal/reconciler"

	"gopkg.in/yaml.v3"
)

// Summary is the audit view of one run
type Summary struct {
	RunID     string         `yaml:"run_id,omitempty" json:"run_id,omitempty"`
	AccountID string         `yaml:"account_id" json:"account_id"`
	Tolerance string         `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
	Balance   BalanceSummary `yaml:"balance" json:"balance"`
	Counts    CountSummary   `yaml:"counts" json:"counts"`
}

// BalanceSummary renders a models.BalanceCheck with plain strings. Empty
// fields were absent from the statement.
type BalanceSummary struct {
	Status            string `yaml:"status" json:"status"`
	Currency          string `yaml:"currency,omitempty" json:"currency,omitempty"`
	Opening           string `yaml:"opening,omitempty" json:"opening,omitempty"`
	SumMovements      string `yaml:"sum_movements" json:"sum_movements"`
	CalculatedClosing string `yaml:"calculated_closing,omitempty" json:"calculated_closing,omitempty"`
	Closing           string `yaml:"closing,omitempty" json:"closing,omitempty"`
}

// CountSummary holds partition sizes
type CountSummary struct {
	BankEntries      int `yaml:"bank_entries" json:"bank_entries"`
	LedgerRows       int `yaml:"ledger_rows" json:"ledger_rows"`
	Matched          int `yaml:"matched" json:"matched"`
	MatchedExact     int `yaml:"matched_exact" json:"matched_exact"`
	MatchedTolerance int `yaml:"matched_tolerance" json:"matched_tolerance"`
	BankOnly         int `yaml:"bank_only" json:"bank_only"`
	InternalOnly     int `yaml:"internal_only" json:"internal_only"`
}

// NewSummary builds the summary of a run. tolerance is the rule label of the
// tolerance pass and may be empty.
func NewSummary(runID, accountID, tolerance string, p models.Partition, check models.BalanceCheck) Summary {
	counts := p.Counts()
	exact := counts.ByRule[reconciler.RuleExact]

	return Summary{
		RunID:     runID,
		AccountID: accountID,
		Tolerance: tolerance,
		Balance:   NewBalanceSummary(check),
		Counts: CountSummary{
			BankEntries:      counts.Matched + counts.BankOnly,
			LedgerRows:       counts.Matched + counts.InternalOnly,
			Matched:          counts.Matched,
			MatchedExact:     exact,
			MatchedTolerance: counts.Matched - exact,
			BankOnly:         counts.BankOnly,
			InternalOnly:     counts.InternalOnly,
		},
	}
}

// NewBalanceSummary renders a balance check with plain strings
func NewBalanceSummary(check models.BalanceCheck) BalanceSummary {
	s := BalanceSummary{
		Status:       string(check.Status),
		SumMovements: check.SumMovements.String(),
	}
	if check.Opening != nil {
		s.Opening = check.Opening.Amount.String()
		s.Currency = check.Opening.Currency
	}
	if check.Closing != nil {
		s.Closing = check.Closing.Amount.String()
		if s.Currency == "" {
			s.Currency = check.Closing.Currency
		}
	}
	if check.CalculatedClosing != nil {
		s.CalculatedClosing = check.CalculatedClosing.String()
	}
	return s
}

// BalanceReport is the output of a standalone balance check
type BalanceReport struct {
	AccountID string         `yaml:"account_id" json:"account_id"`
	Entries   int            `yaml:"entries" json:"entries"`
	Balance   BalanceSummary `yaml:"balance" json:"balance"`
}

// NewBalanceReport builds the balance view of a statement
func NewBalanceReport(stmt *models.Statement, check models.BalanceCheck) BalanceReport {
	r := BalanceReport{Balance: NewBalanceSummary(check)}
	if stmt != nil {
		r.AccountID = stmt.AccountID
		r.Entries = len(stmt.Entries)
	}
	return r
}

// RenderSummary encodes s as YAML. s is a Summary or a BalanceReport.
func RenderSummary(s interface{}) ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal summary: %w", err)
	}
	return out, nil
}
