// Package ofx reads bank and credit card statements in OFX/QFX format and
// turns their entries into transaction inputs.
package ofx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/cashflow/internal/model"
)

// Default categories for imported entries: "Outros" of each type.
const (
	DefaultIncomeCategory  = "4"
	DefaultExpenseCategory = "12"
)

// ErrNoStatements is returned when a file parses but holds no statements.
var ErrNoStatements = errors.New("no bank or credit card statements found")

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	datePrefix    = regexp.MustCompile(`^\d{2}/\d{2}\s+`)
)

// Entry is one statement line converted into a transaction input.
type Entry struct {
	FitID     string
	AccountID string
	Input     model.TransactionInput
}

// Parser converts OFX statements. Categories are assigned by type only;
// the user recategorizes afterwards.
type Parser struct {
	incomeCategory  string
	expenseCategory string
	expenseType     string
}

// Option configures a Parser.
type Option func(*Parser)

// WithCategories overrides the categories assigned to imported income and expenses.
func WithCategories(income, expense string) Option {
	return func(p *Parser) {
		p.incomeCategory = income
		p.expenseCategory = expense
	}
}

// WithExpenseType overrides the expense type assigned to imported expenses.
func WithExpenseType(id string) Option {
	return func(p *Parser) {
		p.expenseType = id
	}
}

// NewParser creates a new OFX parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		incomeCategory:  DefaultIncomeCategory,
		expenseCategory: DefaultExpenseCategory,
		expenseType:     model.ExpenseTypeNormal,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// preprocess fixes formatting issues common in bank-generated files.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML opening tags missing their closing bracket.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

func parseResponse(ctx context.Context, reader io.Reader) (*ofxgo.Response, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseFile parses an OFX/QFX file and returns its entries in file order.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]Entry, error) {
	resp, err := parseResponse(ctx, reader)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			entries = append(entries, p.convertList(stmt.BankTranList, string(stmt.BankAcctFrom.AcctID))...)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			entries = append(entries, p.convertList(stmt.BankTranList, string(stmt.CCAcctFrom.AcctID))...)
		}
	}

	if bankStmts+ccStmts == 0 {
		return nil, ErrNoStatements
	}

	slog.Info("parsed OFX file",
		"entries", len(entries),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return entries, nil
}

func (p *Parser) convertList(list *ofxgo.TransactionList, accountID string) []Entry {
	if list == nil {
		return nil
	}
	entries := make([]Entry, 0, len(list.Transactions))
	for _, tx := range list.Transactions {
		entry, err := p.convert(tx, accountID)
		if err != nil {
			slog.Warn("skipping OFX entry", "fitid", tx.FiTID, "account", accountID, "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// convert maps one statement line. OFX amounts are signed: negative is money
// out. The stored amount is always the absolute value.
func (p *Parser) convert(tx ofxgo.Transaction, accountID string) (Entry, error) {
	amount, err := decimal.NewFromString(tx.TrnAmt.FloatString(2))
	if err != nil {
		return Entry{}, fmt.Errorf("invalid amount: %w", err)
	}
	if tx.DtPosted.IsZero() {
		return Entry{}, model.ErrMissingDate
	}

	input := model.TransactionInput{
		Date:        model.DateOf(tx.DtPosted.Time),
		Amount:      amount.Abs(),
		Description: description(tx),
		Type:        model.TransactionTypeIncome,
		Category:    p.incomeCategory,
	}
	if amount.IsNegative() {
		input.Type = model.TransactionTypeExpense
		input.Category = p.expenseCategory
		input.ExpenseType = p.expenseType
	}

	return Entry{
		FitID:     string(tx.FiTID),
		AccountID: accountID,
		Input:     input,
	}, nil
}

// description picks the most readable text of a statement line.
func description(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && (name == "" || isGenericDescription(name)) {
		name = strings.TrimSpace(string(tx.Memo))
	}
	return cleanDescription(name)
}

var prefixes = []string{
	"COMPRA CARTAO DEB ",
	"COMPRA CARTAO ",
	"COMPRA DEBITO ",
	"POS PURCHASE ",
	"DEBIT CARD PURCHASE ",
	"PIX ENVIADO ",
	"PIX RECEBIDO ",
	"TED RECEBIDA ",
	"PAGTO ",
}

func cleanDescription(name string) string {
	upper := strings.ToUpper(name)
	for _, prefix := range prefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}
	return strings.TrimSpace(datePrefix.ReplaceAllString(name, ""))
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PAYMENT", "PURCHASE", "DEBITO", "CREDITO", "PAGAMENTO", "COMPRA", "PIX", "TRANSFERENCIA":
		return true
	}
	return false
}

// Accounts lists the distinct account ids found in a file.
func Accounts(ctx context.Context, reader io.Reader) ([]string, error) {
	resp, err := parseResponse(ctx, reader)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var accounts []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			accounts = append(accounts, id)
		}
	}
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			add(string(stmt.BankAcctFrom.AcctID))
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			add(string(stmt.CCAcctFrom.AcctID))
		}
	}
	return accounts, nil
}
