// Package reconcile implements the reconcile command
package reconcile

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"fjacquet/camt-recon/cmd/root"
	"fjacquet/camt-recon/internal/config"
	"fjacquet/camt-recon/internal/fileutils"
	"fjacquet/camt-recon/internal/logging"
	"fjacquet/camt-recon/internal/pipeline"
	"fjacquet/camt-recon/internal/reconciler"
	"fjacquet/camt-recon/internal/report"
	"fjacquet/camt-recon/internal/validation"

	"github.com/spf13/cobra"
)

// Options are the flag values of the reconcile command
type Options struct {
	Statement         string
	Ledger            string
	Output            string
	Format            string
	Summary           string
	AmountTolerance   string
	DateToleranceDays int
}

var opts Options

// Cmd represents the reconcile command
var Cmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a CAMT.053 statement against a ledger CSV",
	Long: `Reconcile a CAMT.053 statement against a ledger CSV.

Entries are first paired by EndToEndId = Invoice, then by amount and booking
date within the configured tolerance. The report lists matched pairs, then
bank-only entries, then internal-only rows. Without --output the CSV report is
written to stdout.`,
	RunE: run,
}

func init() {
	flags := Cmd.Flags()
	flags.StringVarP(&opts.Statement, "statement", "s", "", "CAMT.053 statement file (required)")
	flags.StringVarP(&opts.Ledger, "ledger", "l", "", "Ledger CSV file (required)")
	flags.StringVarP(&opts.Output, "output", "o", "", "Report file (default stdout)")
	flags.StringVarP(&opts.Format, "format", "f", "", "Report format: csv or xlsx (default from config)")
	flags.StringVar(&opts.Summary, "summary", "", "Write the YAML run summary to this file")
	flags.StringVar(&opts.AmountTolerance, "amount-tolerance", "", "Override the amount tolerance, e.g. 0.01")
	flags.IntVar(&opts.DateToleranceDays, "date-tolerance-days", 0, "Override the booking date tolerance in days")
	_ = Cmd.MarkFlagRequired("statement")
	_ = Cmd.MarkFlagRequired("ledger")
}

func run(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	logger := c.GetLogger()

	if err := validatePaths(); err != nil {
		return err
	}

	format, err := resolveFormat(cmd, c.GetConfig().Report.Format)
	if err != nil {
		return err
	}
	if format == report.FormatXLSX && opts.Output == "" {
		return fmt.Errorf("--output is required for the xlsx format")
	}

	tol, err := resolveTolerance(cmd, c.GetEngine().Tolerance())
	if err != nil {
		return err
	}

	in, err := readInput(opts.Statement, opts.Ledger)
	if err != nil {
		return err
	}
	in.Tolerance = tol

	result, err := c.GetPipeline().Run(contextOf(cmd), in)
	if err != nil {
		return err
	}

	if err := writeReport(cmd.OutOrStdout(), result, format, opts.Output); err != nil {
		return err
	}

	summary := result.Summary()
	if opts.Summary != "" {
		data, err := report.RenderSummary(summary)
		if err != nil {
			return err
		}
		if err := fileutils.WriteFile(opts.Summary, data); err != nil {
			return err
		}
	}

	logger.Info("Reconciliation summary",
		logging.F(logging.FieldRunID, summary.RunID),
		logging.F(logging.FieldMatched, summary.Counts.Matched),
		logging.F(logging.FieldBankOnly, summary.Counts.BankOnly),
		logging.F(logging.FieldInternalOnly, summary.Counts.InternalOnly),
		logging.F(logging.FieldBalance, summary.Balance.Status))
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func validatePaths() error {
	if err := validation.InputFile(opts.Statement); err != nil {
		return fmt.Errorf("invalid --statement: %w", err)
	}
	if err := validation.InputFile(opts.Ledger); err != nil {
		return fmt.Errorf("invalid --ledger: %w", err)
	}
	if opts.Output != "" {
		if err := validation.OutputFile(opts.Output); err != nil {
			return fmt.Errorf("invalid --output: %w", err)
		}
	}
	if opts.Summary != "" {
		if err := validation.OutputFile(opts.Summary); err != nil {
			return fmt.Errorf("invalid --summary: %w", err)
		}
	}
	return nil
}

func readInput(statementPath, ledgerPath string) (pipeline.Input, error) {
	statement, err := fileutils.ReadFile(statementPath)
	if err != nil {
		return pipeline.Input{}, fmt.Errorf("failed to read statement: %w", err)
	}
	ledgerData, err := fileutils.ReadFile(ledgerPath)
	if err != nil {
		return pipeline.Input{}, fmt.Errorf("failed to read ledger: %w", err)
	}
	return pipeline.Input{
		Statement:     string(statement),
		Ledger:        string(ledgerData),
		StatementName: statementPath,
		LedgerName:    ledgerPath,
	}, nil
}

func resolveFormat(cmd *cobra.Command, configured string) (report.Format, error) {
	name := configured
	if cmd.Flags().Changed("format") {
		name = opts.Format
	}
	format, err := report.ParseFormat(name)
	if err != nil {
		return "", err
	}
	if format == report.FormatSummary {
		return "", fmt.Errorf("format %q is not a report format, use --summary", name)
	}
	return format, nil
}

// resolveTolerance returns nil when no tolerance flag was given
func resolveTolerance(cmd *cobra.Command, base reconciler.Tolerance) (*reconciler.Tolerance, error) {
	flags := cmd.Flags()
	if !flags.Changed("amount-tolerance") && !flags.Changed("date-tolerance-days") {
		return nil, nil
	}

	amount, days := base.Amount, base.DateDays
	if flags.Changed("amount-tolerance") {
		parsed, err := config.ParseAmountTolerance(opts.AmountTolerance)
		if err != nil {
			return nil, fmt.Errorf("invalid --amount-tolerance: %w", err)
		}
		amount = parsed
	}
	if flags.Changed("date-tolerance-days") {
		days = opts.DateToleranceDays
	}
	tol := reconciler.NewTolerance(amount, days)
	return &tol, nil
}

func writeReport(stdout io.Writer, result *pipeline.Result, format report.Format, output string) error {
	var data []byte
	switch format {
	case report.FormatXLSX:
		var buf bytes.Buffer
		if err := report.WriteXLSX(&buf, result.Partition, result.Summary()); err != nil {
			return err
		}
		data = buf.Bytes()
	default:
		data = []byte(report.Render(result.Partition))
	}

	if output == "" {
		_, err := stdout.Write(data)
		return err
	}
	return fileutils.WriteFile(output, data)
}
