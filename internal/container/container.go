// Package container provides dependency injection for the camt-recon application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/camt-recon/internal/camtparser"
	"fjacquet/camt-recon/internal/config"
	"fjacquet/camt-recon/internal/ledger"
	"fjacquet/camt-recon/internal/logging"
	"fjacquet/camt-recon/internal/pipeline"
	"fjacquet/camt-recon/internal/reconciler"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation; dependencies are reached through
// getter methods only.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	statements *camtparser.Parser
	ledger     *ledger.Mapper
	engine     *reconciler.Engine
	pipeline   *pipeline.Service
}

// NewContainer creates and wires all application dependencies, logging
// through a logrus adapter built from cfg.Log.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger is NewContainer with an explicit logger
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	tolerance := cfg.Tolerance()
	if err := tolerance.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tolerance: %w", err)
	}

	statements := camtparser.NewParser(logger)
	mapper := ledger.NewMapper(logger, cfg.Ledger.Encoding)
	engine := reconciler.NewEngine(logger, tolerance, cfg.Balance.SignedMovements)
	service := pipeline.NewService(statements, mapper, engine, logger)

	logger.Debug("Container initialized",
		logging.F(logging.FieldTolerance, tolerance.Rule()),
		logging.F(logging.FieldEncoding, cfg.Ledger.Encoding),
		logging.F("signed_movements", cfg.Balance.SignedMovements))

	return &Container{
		logger:     logger,
		config:     cfg,
		statements: statements,
		ledger:     mapper,
		engine:     engine,
		pipeline:   service,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStatementParser returns the CAMT.053 parser
func (c *Container) GetStatementParser() *camtparser.Parser {
	return c.statements
}

// GetLedgerMapper returns the ledger mapper
func (c *Container) GetLedgerMapper() *ledger.Mapper {
	return c.ledger
}

// GetEngine returns the reconciliation engine
func (c *Container) GetEngine() *reconciler.Engine {
	return c.engine
}

// GetPipeline returns the run service
func (c *Container) GetPipeline() *pipeline.Service {
	return c.pipeline
}
