// Package pipeline runs one reconciliation: parse both inputs, match, check balances.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/camt-recon/internal/logging"
	"fjacquet/camt-recon/internal/models"
	"fjacquet/camt-recon/internal/parser"
	"fjacquet/camt-recon/internal/reconciler"
	"fjacquet/camt-recon/internal/report"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Input holds the raw payloads of one run
type Input struct {
	Statement string
	Ledger    string
	// Tolerance overrides the service default when set
	Tolerance *reconciler.Tolerance
	// Source names used in logs and errors, optional
	StatementName string
	LedgerName    string
}

// Result is the outcome of a run
type Result struct {
	RunID     string
	Statement *models.Statement
	Internal  []models.InternalTransaction
	Tolerance reconciler.Tolerance
	Partition models.Partition
	Balance   models.BalanceCheck
	Duration  time.Duration
}

// Summary returns the audit summary of the run
func (r *Result) Summary() report.Summary {
	return report.NewSummary(r.RunID, r.Statement.AccountID, r.Tolerance.Rule(), r.Partition, r.Balance)
}

// Service wires the parsers and the engine
type Service struct {
	statements parser.StatementParser
	ledger     parser.LedgerParser
	engine     *reconciler.Engine
	logger     logging.Logger
	newRunID   func() string
}

// NewService creates a Service
func NewService(statements parser.StatementParser, ledger parser.LedgerParser, engine *reconciler.Engine, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Service{
		statements: statements,
		ledger:     ledger,
		engine:     engine,
		logger:     logger,
		newRunID:   uuid.NewString,
	}
}

// Run parses the statement and the ledger concurrently, then reconciles them.
// A malformed statement or a ledger missing columns aborts the run; the error
// wraps the *parsererror value.
func (s *Service) Run(ctx context.Context, in Input) (*Result, error) {
	start := time.Now()
	runID := s.newRunID()
	logger := s.logger.WithField(logging.FieldRunID, runID)
	logger.Info("Starting reconciliation run",
		logging.F("statement", in.StatementName),
		logging.F("ledger", in.LedgerName))

	var (
		stmt     *models.Statement
		internal []models.InternalTransaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		parsed, err := s.statements.Parse(strings.NewReader(in.Statement))
		if err != nil {
			return fmt.Errorf("failed to parse statement: %w", err)
		}
		stmt = parsed
		return gctx.Err()
	})
	g.Go(func() error {
		parsed, err := s.ledger.Parse(strings.NewReader(in.Ledger))
		if err != nil {
			return fmt.Errorf("failed to parse ledger: %w", err)
		}
		internal = parsed
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("Reconciliation run aborted")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	engine := s.engine
	if in.Tolerance != nil {
		engine = engine.WithTolerance(*in.Tolerance)
	}

	result := &Result{
		RunID:     runID,
		Statement: stmt,
		Internal:  internal,
		Tolerance: engine.Tolerance(),
		Partition: engine.Reconcile(stmt.Entries, internal),
		Balance:   engine.CheckBalance(stmt),
	}
	result.Duration = time.Since(start)

	logger.Info("Reconciliation run finished",
		logging.F(logging.FieldEntries, len(stmt.Entries)),
		logging.F(logging.FieldRows, len(internal)),
		logging.F(logging.FieldBalance, string(result.Balance.Status)),
		logging.F(logging.FieldDuration, result.Duration.Milliseconds()))

	return result, nil
}
