// Package balance implements the balance command
package balance

import (
	"fmt"

	"fjacquet/camt-recon/cmd/root"
	"fjacquet/camt-recon/internal/models"
	"fjacquet/camt-recon/internal/reconciler"
	"fjacquet/camt-recon/internal/report"
	"fjacquet/camt-recon/internal/validation"

	"github.com/spf13/cobra"
)

var (
	statementPath string
	signed        bool
)

// Cmd represents the balance command
var Cmd = &cobra.Command{
	Use:   "balance",
	Short: "Check that a CAMT.053 statement balances",
	Long: `Check that opening balance + movements = closing balance on a CAMT.053 statement.

Movement amounts are summed as absolute values unless --signed is given, in which
case debit entries are subtracted. The result is printed as YAML.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&statementPath, "statement", "s", "", "CAMT.053 statement file (required)")
	Cmd.Flags().BoolVar(&signed, "signed", false, "Subtract debit entries instead of adding them (default from config)")
	_ = Cmd.MarkFlagRequired("statement")
}

func run(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	if err := validation.InputFile(statementPath); err != nil {
		return fmt.Errorf("invalid --statement: %w", err)
	}

	stmt, err := c.GetStatementParser().ParseFile(statementPath)
	if err != nil {
		return err
	}

	var check models.BalanceCheck
	if cmd.Flags().Changed("signed") {
		check = reconciler.CheckBalance(stmt, signed)
	} else {
		check = c.GetEngine().CheckBalance(stmt)
	}

	data, err := report.RenderSummary(report.NewBalanceReport(stmt, check))
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
