package report

import (
	"fmt"
	"strings"
)

// Format selects the report output
type Format string

const (
	FormatCSV     Format = "csv"
	FormatXLSX    Format = "xlsx"
	FormatSummary Format = "summary"
)

// ParseFormat validates a format name, case-insensitively. Empty means csv.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX, FormatSummary:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", name)
	}
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatSummary:
		return "application/yaml"
	default:
		return "text/csv; charset=utf-8"
	}
}

// FileName returns the download name for the format
func (f Format) FileName() string {
	switch f {
	case FormatXLSX:
		return "reconciliation_report.xlsx"
	case FormatSummary:
		return "reconciliation_summary.yaml"
	default:
		return "reconciliation_report.csv"
	}
}
