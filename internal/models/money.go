package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NaN is how an invalid amount renders in reports and summaries.
const NaN = "NaN"

// MaxExponent bounds the decimal exponent of parsed numbers. Arithmetic
// rescales both operands to the smaller exponent, so a cell like 1e-200000000
// would otherwise build a huge big.Int.
const MaxExponent = 64

// Amount is a decimal that may be invalid. Statement and ledger cells that
// cannot be read as a number produce an invalid Amount instead of an error,
// and invalidity propagates through arithmetic the way NaN would.
type Amount struct {
	value decimal.Decimal
	valid bool
}

// NewAmount wraps a decimal as a valid Amount
func NewAmount(d decimal.Decimal) Amount {
	return Amount{value: d, valid: true}
}

// InvalidAmount returns the not-a-number Amount
func InvalidAmount() Amount {
	return Amount{}
}

// ParseAmount reads a numeric cell. Surrounding whitespace is ignored; empty
// or non-numeric text yields an invalid Amount.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, NaN) {
		return InvalidAmount()
	}
	d, err := ParseDecimal(s)
	if err != nil {
		return InvalidAmount()
	}
	return NewAmount(d)
}

// ParseDecimal parses s as a decimal whose exponent lies within ±MaxExponent
func ParseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if exp := d.Exponent(); exp > MaxExponent || exp < -MaxExponent {
		return decimal.Zero, fmt.Errorf("exponent %d out of range", exp)
	}
	return d, nil
}

// IsValid reports whether the amount holds a number
func (a Amount) IsValid() bool {
	return a.valid
}

// Add returns a+b, invalid if either side is invalid
func (a Amount) Add(b Amount) Amount {
	if !a.valid || !b.valid {
		return InvalidAmount()
	}
	return NewAmount(a.value.Add(b.value))
}

// Sub returns a-b, invalid if either side is invalid
func (a Amount) Sub(b Amount) Amount {
	if !a.valid || !b.valid {
		return InvalidAmount()
	}
	return NewAmount(a.value.Sub(b.value))
}

// Neg returns -a
func (a Amount) Neg() Amount {
	if !a.valid {
		return a
	}
	return NewAmount(a.value.Neg())
}

// Abs returns |a|
func (a Amount) Abs() Amount {
	if !a.valid {
		return a
	}
	return NewAmount(a.value.Abs())
}

// WithinOf reports whether |a-b| <= tolerance. Any invalid side is never within.
func (a Amount) WithinOf(b Amount, tolerance decimal.Decimal) bool {
	diff := a.Sub(b)
	if !diff.valid {
		return false
	}
	return diff.value.Abs().LessThanOrEqual(tolerance)
}

// LessThan reports whether a < d. Invalid amounts compare false.
func (a Amount) LessThan(d decimal.Decimal) bool {
	return a.valid && a.value.LessThan(d)
}

// Equal reports whether both amounts are valid and numerically equal
func (a Amount) Equal(b Amount) bool {
	return a.valid && b.valid && a.value.Equal(b.value)
}

// String renders the amount without trailing zeros, or NaN
func (a Amount) String() string {
	if !a.valid {
		return NaN
	}
	return a.value.String()
}

// MarshalJSON encodes valid amounts the way decimal does and invalid ones as null
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.value)
}

// MarshalYAML renders the amount as its string form
func (a Amount) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}
