// Package camtparser extracts balances and entries from CAMT.053 bank statements.
//
// Only the elements needed for reconciliation are read. Element names are matched by
// local name, so documents work whatever namespace declaration style the bank uses.
package camtparser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/camt-recon/internal/logging"
	"fjacquet/camt-recon/internal/models"
	"fjacquet/camt-recon/internal/parser"
	"fjacquet/camt-recon/internal/parsererror"
	"fjacquet/camt-recon/internal/xmlutils"

	"gopkg.in/xmlpath.v2"
)

// Paths used during extraction. Relative paths are evaluated from a Bal or Ntry node.
const (
	pathIBAN    = "//IBAN"
	pathBalance = "//Bal"
	pathEntry   = "//Ntry"

	pathBalanceCode = "Tp/CdOrPrtry/Cd"
	pathAmount      = "Amt"
	pathCreditDebit = "CdtDbtInd"
	pathBookingDate = "BookgDt/Dt"

	pathRefs       = ".//Refs"
	pathEndToEndID = ".//EndToEndId"
	pathInstrID    = ".//InstrId"

	pathDebtor   = ".//Dbtr"
	pathCreditor = ".//Cdtr"
	pathName     = ".//Nm"

	pathFamily    = ".//Fmly"
	pathFamilyCd  = ".//Cd"
	pathSubFamily = ".//SubFmlyCd"

	attrCurrency = "Ccy"
)

// Parser reads CAMT.053 statements
type Parser struct {
	parser.BaseParser
}

var _ parser.StatementParser = (*Parser)(nil)

// NewParser creates a statement parser logging to logger
func NewParser(logger logging.Logger) *Parser {
	return &Parser{BaseParser: parser.NewBaseParser(logger)}
}

// Parse reads a statement document from r
func (p *Parser) Parse(r io.Reader) (*models.Statement, error) {
	return p.parse(r, "")
}

// ParseString reads a statement held in memory
func (p *Parser) ParseString(text string) (*models.Statement, error) {
	return p.parse(strings.NewReader(text), "")
}

// ParseFile reads the statement stored at path
func (p *Parser) ParseFile(path string) (*models.Statement, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open statement: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			p.GetLogger().WithError(cerr).Warn("Failed to close statement file",
				logging.F(logging.FieldFile, path))
		}
	}()

	return p.parse(file, path)
}

func (p *Parser) parse(r io.Reader, source string) (*models.Statement, error) {
	logger := p.GetLogger().WithField(logging.FieldComponent, "camtparser")

	root, err := xmlutils.Parse(r)
	if err != nil {
		logger.WithError(err).Error("Statement is not a well-formed document",
			logging.F(logging.FieldFile, source))
		return nil, &parsererror.MalformedDocumentError{Source: source, Err: err}
	}

	stmt := &models.Statement{
		AccountID: xmlutils.TextOrEmpty(root, pathIBAN),
	}
	stmt.Opening, stmt.Closing = extractBalances(root)

	nodes := xmlutils.AllNodes(root, pathEntry)
	stmt.Entries = make([]models.BankTransaction, 0, len(nodes))
	for i, node := range nodes {
		entry := extractEntry(node, i, stmt.AccountID)
		if !entry.Amount.IsValid() {
			logger.Warn("Entry amount is not a number",
				logging.F(logging.FieldEntryIndex, i))
		}
		logger.Debug("Extracted statement entry",
			logging.F(logging.FieldEntryIndex, i),
			logging.F("end_to_end_id", entry.EndToEndID),
			logging.F("amount", entry.Amount.String()))
		stmt.Entries = append(stmt.Entries, entry)
	}

	logger.Info("Parsed statement",
		logging.F(logging.FieldFile, source),
		logging.F(logging.FieldEntries, len(stmt.Entries)),
		logging.F("has_opening", stmt.Opening != nil),
		logging.F("has_closing", stmt.Closing != nil))

	return stmt, nil
}

// extractBalances returns the opening and closing balances. A later Bal of the same
// type replaces an earlier one.
func extractBalances(root *xmlpath.Node) (opening, closing *models.Balance) {
	for _, bal := range xmlutils.AllNodes(root, pathBalance) {
		code := xmlutils.TextOrEmpty(bal, pathBalanceCode)
		if code != models.BalanceTypeOpening && code != models.BalanceTypeClosing {
			continue
		}

		amount, currency := readAmount(bal)
		balance := &models.Balance{Amount: amount, Currency: currency}
		if code == models.BalanceTypeOpening {
			opening = balance
		} else {
			closing = balance
		}
	}
	return opening, closing
}

func extractEntry(node *xmlpath.Node, index int, accountID string) models.BankTransaction {
	amount, currency := readAmount(node)

	tx := models.BankTransaction{
		Index:       index,
		AccountID:   accountID,
		Amount:      amount,
		Currency:    currency,
		Direction:   models.Direction(xmlutils.TextOrEmpty(node, pathCreditDebit)),
		BookingDate: xmlutils.TextOrEmpty(node, pathBookingDate),
	}

	if refs, ok := xmlutils.FirstNode(node, pathRefs); ok {
		tx.EndToEndID = xmlutils.TextOrEmpty(refs, pathEndToEndID)
		tx.InstructionID = xmlutils.TextOrEmpty(refs, pathInstrID)
	}
	tx.DebtorName = partyName(node, pathDebtor)
	tx.CreditorName = partyName(node, pathCreditor)

	if family, ok := xmlutils.FirstNode(node, pathFamily); ok {
		tx.BankTxFamilyCode = xmlutils.JoinNonEmpty("-",
			xmlutils.TextOrEmpty(family, pathFamilyCd),
			xmlutils.TextOrEmpty(family, pathSubFamily))
	}

	return tx
}

// readAmount reads the direct Amt child and its currency. A missing element gives an
// invalid amount.
func readAmount(node *xmlpath.Node) (models.Amount, string) {
	amt, ok := xmlutils.FirstNode(node, pathAmount)
	if !ok {
		return models.InvalidAmount(), ""
	}
	currency, _ := xmlutils.Attr(amt, attrCurrency)
	return models.ParseAmount(amt.String()), currency
}

func partyName(node *xmlpath.Node, path string) string {
	party, ok := xmlutils.FirstNode(node, path)
	if !ok {
		return ""
	}
	return xmlutils.TextOrEmpty(party, pathName)
}
