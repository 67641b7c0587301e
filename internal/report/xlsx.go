package report

import (
	"fmt"
	"io"
	"strconv"

	"fjacquet/camt-recon/internal/models"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names
const (
	SheetReport  = "Report"
	SheetSummary = "Summary"
)

// WriteXLSX writes the report table on sheet Report and the summary on sheet
// Summary. Cells hold the same text as the CSV report.
func WriteXLSX(w io.Writer, p models.Partition, s Summary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetReport); err != nil {
		return fmt.Errorf("failed to name report sheet: %w", err)
	}
	if err := writeRows(f, SheetReport, reportRows(p)); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeRows(f, SheetSummary, summaryRows(s)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func reportRows(p models.Partition) [][]string {
	t := Table(p)
	rows := make([][]string, 0, len(t.Rows)+1)
	rows = append(rows, t.Headers)
	rows = append(rows, t.Records()...)
	return rows
}

func summaryRows(s Summary) [][]string {
	itoa := strconv.Itoa
	return [][]string{
		{"Field", "Value"},
		{"Run ID", s.RunID},
		{"Account", s.AccountID},
		{"Tolerance", s.Tolerance},
		{"Balance status", s.Balance.Status},
		{"Currency", s.Balance.Currency},
		{"Opening", s.Balance.Opening},
		{"Sum of movements", s.Balance.SumMovements},
		{"Calculated closing", s.Balance.CalculatedClosing},
		{"Closing", s.Balance.Closing},
		{"Bank entries", itoa(s.Counts.BankEntries)},
		{"Ledger rows", itoa(s.Counts.LedgerRows)},
		{"Matched", itoa(s.Counts.Matched)},
		{"Matched exact", itoa(s.Counts.MatchedExact)},
		{"Matched by tolerance", itoa(s.Counts.MatchedTolerance)},
		{"Bank only", itoa(s.Counts.BankOnly)},
		{"Internal only", itoa(s.Counts.InternalOnly)},
	}
}

func writeRows(f *excelize.File, sheet string, rows [][]string) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
