package xmlutils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const namespacedDoc = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:camt.053.001.02">
  <Stmt>
    <Acct><Id><IBAN> CH9300762011623852957 </IBAN></Id></Acct>
    <Ntry><Amt Ccy="CHF">10.00</Amt><Refs><EndToEndId>A</EndToEndId></Refs></Ntry>
    <Ntry><Amt Ccy="EUR">20.00</Amt><Refs><EndToEndId>B</EndToEndId></Refs></Ntry>
  </Stmt>
</Document>`

const prefixedDoc = `<?xml version="1.0"?>
<camt:Document xmlns:camt="urn:iso:std:iso:20022:tech:xsd:camt.053.001.08">
  <camt:Stmt><camt:Ntry><camt:Amt Ccy="USD">5</camt:Amt></camt:Ntry></camt:Stmt>
</camt:Document>`

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		noRoot  bool
		multi   bool
	}{
		{name: "namespaced document", input: namespacedDoc},
		{name: "prefixed document", input: prefixedDoc},
		{name: "latin-1 declaration", input: "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><a>\xe9</a>"},
		{name: "empty input", input: "", wantErr: true, noRoot: true},
		{name: "whitespace only", input: "  \n ", wantErr: true, noRoot: true},
		{name: "declaration only", input: `<?xml version="1.0"?>`, wantErr: true, noRoot: true},
		{name: "unclosed element", input: "<a><b></a>", wantErr: true},
		{name: "truncated document", input: "<a><b>text", wantErr: true},
		{name: "two root elements", input: "<a/><b/>", wantErr: true, multi: true},
		{name: "second root after declaration", input: `<?xml version="1.0"?><Document/>` + "\n<Document/>", wantErr: true, multi: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := ParseString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, root)
				assert.Equal(t, tt.noRoot, errors.Is(err, ErrNoRootElement))
				assert.Equal(t, tt.multi, errors.Is(err, ErrMultipleRoots))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, root)
		})
	}
}

func TestParse_TranscodesLatin1(t *testing.T) {
	root, err := ParseString("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><a><Nm>Caf\xe9</Nm></a>")
	require.NoError(t, err)
	assert.Equal(t, "Café", TextOrEmpty(root, "//Nm"))
}

func TestFirstText_TrimsAndMatchesLocalName(t *testing.T) {
	for _, doc := range []string{namespacedDoc, prefixedDoc} {
		root, err := ParseString(doc)
		require.NoError(t, err)

		amt, ok := FirstText(root, "//Ntry/Amt")
		require.True(t, ok)
		assert.NotEmpty(t, amt)
	}

	root, err := ParseString(namespacedDoc)
	require.NoError(t, err)

	iban, ok := FirstText(root, "//IBAN")
	assert.True(t, ok)
	assert.Equal(t, "CH9300762011623852957", iban)

	_, ok = FirstText(root, "//Missing")
	assert.False(t, ok)
	assert.Equal(t, "", TextOrEmpty(root, "//Missing"))
}

func TestAllNodes_DocumentOrder(t *testing.T) {
	root, err := ParseString(namespacedDoc)
	require.NoError(t, err)

	entries := AllNodes(root, "//Ntry")
	require.Len(t, entries, 2)

	assert.Equal(t, "A", TextOrEmpty(entries[0], ".//EndToEndId"))
	assert.Equal(t, "B", TextOrEmpty(entries[1], ".//EndToEndId"))

	amt, ok := FirstNode(entries[1], "Amt")
	require.True(t, ok)
	ccy, ok := Attr(amt, "Ccy")
	assert.True(t, ok)
	assert.Equal(t, "EUR", ccy)

	_, ok = Attr(amt, "Missing")
	assert.False(t, ok)
}

func TestNilNode(t *testing.T) {
	_, ok := FirstNode(nil, "//a")
	assert.False(t, ok)
	assert.Nil(t, AllNodes(nil, "//a"))
}

func TestCompile_PanicsOnInvalidPath(t *testing.T) {
	root, err := ParseString("<a/>")
	require.NoError(t, err)
	assert.Panics(t, func() { FirstNode(root, "//[") })
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "PMNT-RCDT", JoinNonEmpty("-", "PMNT", "RCDT"))
	assert.Equal(t, "PMNT", JoinNonEmpty("-", "PMNT", ""))
	assert.Equal(t, "ESCT", JoinNonEmpty("-", "", "ESCT"))
	assert.Equal(t, "", JoinNonEmpty("-", "", ""))
}
