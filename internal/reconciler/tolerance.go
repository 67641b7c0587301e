package reconciler

import (
	"fmt"

	"fjacquet/camt-recon/internal/dateutils"
	"fjacquet/camt-recon/internal/models"

	"github.com/shopspring/decimal"
)

// Default tolerance window
var (
	DefaultAmountTolerance   = decimal.RequireFromString("0.01")
	DefaultDateToleranceDays = 0
)

// Tolerance is the window within which two otherwise unmatched transactions
// are treated as the same economic event. Both bounds are inclusive.
type Tolerance struct {
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	DateDays int             `json:"date_days" yaml:"date_days"`
}

// DefaultTolerance returns {0.01, 0 days}
func DefaultTolerance() Tolerance {
	return Tolerance{Amount: DefaultAmountTolerance, DateDays: DefaultDateToleranceDays}
}

// NewTolerance builds a Tolerance. A negative day window is clamped to 0.
func NewTolerance(amount decimal.Decimal, dateDays int) Tolerance {
	if dateDays < 0 {
		dateDays = 0
	}
	return Tolerance{Amount: amount, DateDays: dateDays}
}

// Validate rejects negative windows
func (t Tolerance) Validate() error {
	if t.Amount.IsNegative() {
		return fmt.Errorf("amount tolerance cannot be negative: %s", t.Amount)
	}
	if t.DateDays < 0 {
		return fmt.Errorf("date tolerance days cannot be negative: %d", t.DateDays)
	}
	return nil
}

// Rule returns the label recorded on matches made within this window,
// e.g. "Amount±0.01, Date±1d"
func (t Tolerance) Rule() string {
	return fmt.Sprintf("Amount±%s, Date±%dd", t.Amount.String(), t.DateDays)
}

// Accepts reports whether the pair falls inside the window. Directions are
// compared by the caller. An invalid amount or an unparseable date never matches.
func (t Tolerance) Accepts(bank models.BankTransaction, internal models.InternalTransaction) bool {
	if !internal.Amount.WithinOf(bank.Amount, t.Amount) {
		return false
	}
	days, ok := dateutils.DayDifference(internal.BookingDate, bank.BookingDate)
	return ok && days <= t.DateDays
}

func (t Tolerance) String() string {
	return t.Rule()
}
