// Package ofx turns OFX/QFX bank statements into transaction drafts.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/finance-pro/internal/category"
	"github.com/Veraticus/finance-pro/internal/model"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Options choose the categories assigned to imported lines. OFX carries
// no categories, so every debit gets ExpenseCategory and every credit
// gets IncomeCategory.
type Options struct {
	ExpenseCategory string
	IncomeCategory  string
}

func (o Options) categoryFor(t model.TransactionType) string {
	name := o.ExpenseCategory
	if t == model.TypeIncome {
		name = o.IncomeCategory
	}
	if strings.TrimSpace(name) == "" {
		return category.DefaultName(t)
	}
	return strings.TrimSpace(name)
}

// Statement is the result of parsing one file.
type Statement struct {
	Currency string
	Accounts []string
	// Drafts are ordered oldest first so that importing them in order
	// leaves the newest entry at the front of the history.
	Drafts []model.TransactionDraft
}

// Parser implements OFX/QFX file parsing.
type Parser struct {
	logger *slog.Logger
	opts   Options
}

// NewParser creates a new OFX parser.
func NewParser(opts Options, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{opts: opts, logger: logger}
}

// preprocessOFX fixes common formatting issues in OFX files.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML files sometimes lose the closing bracket of a bare opening tag
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file into drafts.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) (*Statement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	stmt := &Statement{}
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if s, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			stmt.addAccount(string(s.BankAcctFrom.AcctID))
			stmt.setCurrency(s.CurDef.String())
			if s.BankTranList != nil {
				stmt.Drafts = append(stmt.Drafts, p.convertAll(s.BankTranList.Transactions)...)
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if s, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			stmt.addAccount(string(s.CCAcctFrom.AcctID))
			stmt.setCurrency(s.CurDef.String())
			if s.BankTranList != nil {
				stmt.Drafts = append(stmt.Drafts, p.convertAll(s.BankTranList.Transactions)...)
			}
		}
	}

	sort.SliceStable(stmt.Drafts, func(i, j int) bool {
		return stmt.Drafts[i].Date.Before(stmt.Drafts[j].Date)
	})

	p.logger.Info("Parsed OFX file",
		"total_transactions", len(stmt.Drafts),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return stmt, nil
}

func (s *Statement) addAccount(id string) {
	if id == "" {
		return
	}
	for _, existing := range s.Accounts {
		if existing == id {
			return
		}
	}
	s.Accounts = append(s.Accounts, id)
}

func (s *Statement) setCurrency(cur string) {
	if s.Currency == "" {
		s.Currency = cur
	}
}

func (p *Parser) convertAll(list []ofxgo.Transaction) []model.TransactionDraft {
	drafts := make([]model.TransactionDraft, 0, len(list))
	for _, tx := range list {
		drafts = append(drafts, p.convertTransaction(tx))
	}
	return drafts
}

// convertTransaction maps a statement line to a draft. OFX uses negative
// amounts for debits; the draft keeps the magnitude and moves the sign
// into the type.
func (p *Parser) convertTransaction(tx ofxgo.Transaction) model.TransactionDraft {
	raw, _ := tx.TrnAmt.Float64()
	amount := decimal.NewFromFloat(raw).Round(2)

	txType := model.TypeExpense
	if amount.Sign() > 0 {
		txType = model.TypeIncome
	}

	return model.TransactionDraft{
		Date:        tx.DtPosted.Time.UTC(),
		Type:        txType,
		Amount:      amount.Abs().InexactFloat64(),
		Category:    p.opts.categoryFor(txType),
		Description: extractMerchantName(tx),
	}
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
		"ОПЛАТА ",
		"ПОКУПКА ",
	}
	upper := strings.ToUpper(name)
	for _, prefix := range prefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// "MM/DD " date stamps
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE", "":
		return true
	}
	return false
}
