package reconciler

import (
	"fjacquet/camt-recon/internal/models"

	"github.com/shopspring/decimal"
)

// BalanceEpsilon is the largest difference between the calculated and the
// reported closing balance still considered equal (exclusive)
var BalanceEpsilon = decimal.New(1, -6)

// CheckBalance verifies opening + movements against the reported closing balance.
//
// With signed false the movements are the plain sum of entry amounts. With
// signed true DBIT entries are subtracted. The check is UNDETERMINED when a
// balance is missing or any amount involved is not a number.
func CheckBalance(stmt *models.Statement, signed bool) models.BalanceCheck {
	check := models.BalanceCheck{Status: models.BalanceUndetermined}
	if stmt == nil {
		check.SumMovements = models.NewAmount(decimal.Zero)
		return check
	}
	check.Opening = stmt.Opening
	check.Closing = stmt.Closing

	sum := models.NewAmount(decimal.Zero)
	for _, entry := range stmt.Entries {
		amount := entry.Amount
		if signed && entry.Direction.IsDebit() {
			amount = amount.Neg()
		}
		sum = sum.Add(amount)
	}
	check.SumMovements = sum

	if stmt.Opening == nil {
		return check
	}
	calculated := stmt.Opening.Amount.Add(sum)
	check.CalculatedClosing = &calculated

	if stmt.Closing == nil || !calculated.IsValid() || !stmt.Closing.Amount.IsValid() {
		return check
	}

	if calculated.Sub(stmt.Closing.Amount).Abs().LessThan(BalanceEpsilon) {
		check.Status = models.BalanceOK
	} else {
		check.Status = models.BalanceMismatch
	}
	return check
}
