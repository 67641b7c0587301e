package tabular

import (
	"io"

	"github.com/gocarina/gocsv"
)

// Reader serves a parsed Table record by record, header row first. It
// satisfies gocsv.CSVReader so struct-tag binding runs on rows decoded with
// this package's quoting rules instead of encoding/csv's.
type Reader struct {
	records [][]string
	pos     int
}

var _ gocsv.CSVReader = (*Reader)(nil)

// NewReader returns a Reader over t
func NewReader(t Table) *Reader {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, append([]string(nil), t.Headers...))
	records = append(records, t.Records()...)
	return &Reader{records: records}
}

// Read returns the next record or io.EOF
func (r *Reader) Read() ([]string, error) {
	if r.pos >= len(r.records) {
		return nil, io.EOF
	}
	rec := r.records[r.pos]
	r.pos++
	return rec, nil
}

// ReadAll returns every remaining record
func (r *Reader) ReadAll() ([][]string, error) {
	rest := r.records[r.pos:]
	r.pos = len(r.records)
	return rest, nil
}
