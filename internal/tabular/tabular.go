// Package tabular implements the comma-delimited text codec used for the
// internal ledger and the reconciliation report.
//
// Parsing recognizes double-quoted fields with "" as an escaped quote and
// accepts \n, \r and \r\n as row terminators. Headers and cells are trimmed,
// and trailing rows whose cells are all empty are dropped.
package tabular

import (
	"strings"
)

// Table is a decoded delimited text: a header row and one map per data row
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// Parse decodes text into a Table. It never fails: malformed quoting is read
// leniently, an unterminated quote runs to the end of the input.
func Parse(text string) Table {
	records := splitRecords(text)

	for len(records) > 0 && allEmpty(records[len(records)-1]) {
		records = records[:len(records)-1]
	}
	if len(records) == 0 {
		return Table{Headers: []string{}, Rows: []map[string]string{}}
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			value := ""
			if i < len(rec) {
				value = strings.TrimSpace(rec[i])
			}
			row[h] = value
		}
		rows = append(rows, row)
	}

	return Table{Headers: headers, Rows: rows}
}

// splitRecords is the character-level scanner. Quotes toggle quoted mode
// wherever they appear; inside quoted mode "" yields one literal quote.
func splitRecords(text string) [][]string {
	var (
		records  [][]string
		fields   []string
		cur      strings.Builder
		inQuotes bool
	)

	pushField := func() {
		fields = append(fields, cur.String())
		cur.Reset()
	}
	pushRecord := func() {
		records = append(records, fields)
		fields = nil
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			pushField()
		case (ch == '\n' || ch == '\r') && !inQuotes:
			if ch == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			pushField()
			pushRecord()
		default:
			cur.WriteByte(ch)
		}
	}

	if cur.Len() > 0 || len(fields) > 0 {
		pushField()
		pushRecord()
	}

	return records
}

func allEmpty(record []string) bool {
	for _, c := range record {
		if c != "" {
			return false
		}
	}
	return true
}

// Serialize encodes headers and rows as delimited text. Rows are separated by
// \n with no trailing terminator; a key missing from a row is written empty.
func Serialize(headers []string, rows []map[string]string) string {
	var b strings.Builder
	writeRecord(&b, headers)
	for _, row := range rows {
		b.WriteByte('\n')
		values := make([]string, len(headers))
		for i, h := range headers {
			values[i] = row[h]
		}
		writeRecord(&b, values)
	}
	return b.String()
}

func writeRecord(b *strings.Builder, values []string) {
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(Escape(v))
	}
}

// Escape quotes a value when it contains a comma, a quote or a line terminator
func Escape(v string) string {
	if !strings.ContainsAny(v, ",\"\n\r") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// Records returns the data rows as positional slices in header order
func (t Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			rec[i] = row[h]
		}
		out = append(out, rec)
	}
	return out
}

// HasColumn reports whether name is one of the table headers
func (t Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// MissingColumns returns the names in required that are not headers, in the
// order given
func (t Table) MissingColumns(required []string) []string {
	var missing []string
	for _, name := range required {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
