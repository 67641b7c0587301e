package reconciler

import (
	"time"

	"fjacquet/camt-recon/internal/logging"
	"fjacquet/camt-recon/internal/models"
)

// Engine runs Reconcile with a fixed tolerance and logs the outcome
type Engine struct {
	logger    logging.Logger
	tolerance Tolerance
	signed    bool
}

// NewEngine creates an Engine. signed selects the movement sum used by CheckBalance.
func NewEngine(logger logging.Logger, tolerance Tolerance, signed bool) *Engine {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Engine{logger: logger, tolerance: tolerance, signed: signed}
}

// Tolerance returns the engine's window
func (e *Engine) Tolerance() Tolerance {
	return e.tolerance
}

// WithTolerance returns a copy of the engine using tol
func (e *Engine) WithTolerance(tol Tolerance) *Engine {
	clone := *e
	clone.tolerance = tol
	return &clone
}

// Reconcile partitions bank and internal
func (e *Engine) Reconcile(bank []models.BankTransaction, internal []models.InternalTransaction) models.Partition {
	start := time.Now()
	partition := Reconcile(bank, internal, e.tolerance)
	counts := partition.Counts()

	e.logger.Info("Reconciliation completed",
		logging.F(logging.FieldComponent, "reconciler"),
		logging.F(logging.FieldTolerance, e.tolerance.Rule()),
		logging.F(logging.FieldMatched, counts.Matched),
		logging.F("exact", counts.ByRule[RuleExact]),
		logging.F(logging.FieldBankOnly, counts.BankOnly),
		logging.F(logging.FieldInternalOnly, counts.InternalOnly),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	return partition
}

// CheckBalance runs the balance identity check on stmt
func (e *Engine) CheckBalance(stmt *models.Statement) models.BalanceCheck {
	check := CheckBalance(stmt, e.signed)

	logger := e.logger.WithField(logging.FieldComponent, "reconciler")
	fields := []logging.Field{
		logging.F(logging.FieldBalance, string(check.Status)),
		logging.F("sum_movements", check.SumMovements.String()),
	}
	if check.CalculatedClosing != nil {
		fields = append(fields, logging.F("calculated_closing", check.CalculatedClosing.String()))
	}

	if check.Status == models.BalanceMismatch {
		logger.Warn("Statement balance does not add up", fields...)
	} else {
		logger.Info("Statement balance checked", fields...)
	}
	return check
}
