package tabular

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantHeaders []string
		wantRows    []map[string]string
	}{
		{
			name:        "simple table",
			input:       "A,B\n1,2\n3,4",
			wantHeaders: []string{"A", "B"},
			wantRows:    []map[string]string{{"A": "1", "B": "2"}, {"A": "3", "B": "4"}},
		},
		{
			name:        "crlf terminators",
			input:       "A,B\r\n1,2\r\n",
			wantHeaders: []string{"A", "B"},
			wantRows:    []map[string]string{{"A": "1", "B": "2"}},
		},
		{
			name:        "bare cr terminators",
			input:       "A,B\r1,2\r3,4",
			wantHeaders: []string{"A", "B"},
			wantRows:    []map[string]string{{"A": "1", "B": "2"}, {"A": "3", "B": "4"}},
		},
		{
			name:        "quoted comma and escaped quote",
			input:       "Name,Note\n\"Doe, John\",\"say \"\"hi\"\"\"",
			wantHeaders: []string{"Name", "Note"},
			wantRows:    []map[string]string{{"Name": "Doe, John", "Note": `say "hi"`}},
		},
		{
			name:        "newline inside quotes",
			input:       "A,B\n\"line1\nline2\",x",
			wantHeaders: []string{"A", "B"},
			wantRows:    []map[string]string{{"A": "line1\nline2", "B": "x"}},
		},
		{
			name:        "headers and cells are trimmed",
			input:       " A , B \n  1 ,   2  ",
			wantHeaders: []string{"A", "B"},
			wantRows:    []map[string]string{{"A": "1", "B": "2"}},
		},
		{
			name:        "short rows are padded",
			input:       "A,B,C\n1",
			wantHeaders: []string{"A", "B", "C"},
			wantRows:    []map[string]string{{"A": "1", "B": "", "C": ""}},
		},
		{
			name:        "extra cells are ignored",
			input:       "A\n1,2,3",
			wantHeaders: []string{"A"},
			wantRows:    []map[string]string{{"A": "1"}},
		},
		{
			name:        "trailing empty rows dropped",
			input:       "A,B\n1,2\n,\n\n,,\n",
			wantHeaders: []string{"A", "B"},
			wantRows:    []map[string]string{{"A": "1", "B": "2"}},
		},
		{
			name:        "inner empty row kept",
			input:       "A,B\n,\n1,2",
			wantHeaders: []string{"A", "B"},
			wantRows:    []map[string]string{{"A": "", "B": ""}, {"A": "1", "B": "2"}},
		},
		{
			name:        "header only",
			input:       "A,B\n",
			wantHeaders: []string{"A", "B"},
			wantRows:    []map[string]string{},
		},
		{
			name:        "empty input",
			input:       "",
			wantHeaders: []string{},
			wantRows:    []map[string]string{},
		},
		{
			name:        "only blank lines",
			input:       "\n\r\n,,\n",
			wantHeaders: []string{},
			wantRows:    []map[string]string{},
		},
		{
			name:        "duplicate header keeps last value",
			input:       "A,A\n1,2",
			wantHeaders: []string{"A", "A"},
			wantRows:    []map[string]string{{"A": "2"}},
		},
		{
			name:        "utf-8 content",
			input:       "Name\nZürich Café",
			wantHeaders: []string{"Name"},
			wantRows:    []map[string]string{{"Name": "Zürich Café"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := Parse(tt.input)
			assert.Equal(t, tt.wantHeaders, table.Headers)
			assert.Equal(t, tt.wantRows, table.Rows)
		})
	}
}

func TestSerialize(t *testing.T) {
	headers := []string{"Status", "Note", "Amount"}
	rows := []map[string]string{
		{"Status": "Matched", "Note": "plain", "Amount": "100"},
		{"Status": "BankOnly", "Note": "a,b", "Amount": "NaN"},
		{"Status": "InternalOnly", "Note": `he said "ok"`},
		{"Status": "Matched", "Note": "two\nlines"},
		{"Status": "Matched", "Note": "cr\ronly"},
	}

	want := "Status,Note,Amount\n" +
		"Matched,plain,100\n" +
		"BankOnly,\"a,b\",NaN\n" +
		"InternalOnly,\"he said \"\"ok\"\"\",\n" +
		"Matched,\"two\nlines\",\n" +
		"Matched,\"cr\ronly\","

	assert.Equal(t, want, Serialize(headers, rows))
}

func TestSerialize_HeaderOnly(t *testing.T) {
	assert.Equal(t, "A,\"B,C\"", Serialize([]string{"A", "B,C"}, nil))
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "abc", Escape("abc"))
	assert.Equal(t, " padded ", Escape(" padded "))
	assert.Equal(t, `"a,b"`, Escape("a,b"))
	assert.Equal(t, `""""`, Escape(`"`))
	assert.Equal(t, "", Escape(""))
}

func TestRoundTrip(t *testing.T) {
	headers := []string{"Id", "Text", "Other"}
	rows := []map[string]string{
		{"Id": "1", "Text": "comma, inside", "Other": "x"},
		{"Id": "2", "Text": `quote " inside`, "Other": `""`},
		{"Id": "3", "Text": "newline\ninside", "Other": "crlf\r\ninside"},
		{"Id": "4", "Text": "", "Other": "cr\rinside"},
		{"Id": "5", "Text": `mixed "a,b"` + "\n" + `c`, "Other": "end"},
	}

	table := Parse(Serialize(headers, rows))
	assert.Equal(t, headers, table.Headers)
	assert.Equal(t, rows, table.Rows)
}

func TestTable_Records(t *testing.T) {
	table := Parse("B,A\n1,2\n3,4")
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, table.Records())
}

func TestTable_MissingColumns(t *testing.T) {
	table := Parse("TxnId,Amount,Extra\n")
	assert.True(t, table.HasColumn("Amount"))
	assert.False(t, table.HasColumn("amount"))
	assert.Equal(t, []string{"Invoice", "Direction"},
		table.MissingColumns([]string{"TxnId", "Invoice", "Amount", "Direction"}))
	assert.Nil(t, table.MissingColumns([]string{"TxnId"}))
}

func TestReader(t *testing.T) {
	r := NewReader(Parse("A,B\n1,2\n3,4"))

	first, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, first)

	rest, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, rest)

	_, err = r.Read()
	assert.Equal(t, io.EOF, err)

	rest, err = r.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, rest)
}
