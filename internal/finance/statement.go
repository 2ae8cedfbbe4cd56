package finance

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType names the ledger a statement line came from.
type TransactionType string

const (
	TransactionSavings TransactionType = "Savings"
	TransactionShare   TransactionType = "Share"
	TransactionLoan    TransactionType = "Loan"
)

// Transaction is one derived statement line. Credits are inflows to the member's
// standing (savings, share purchases); debits are loan disbursements.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	IsCredit    bool            `json:"is_credit"`
}

// Category is the statement category filter.
type Category string

const (
	CategoryAll     Category = "All"
	CategorySavings Category = "Savings"
	CategoryLoans   Category = "Loans"
	CategoryShares  Category = "Shares"
)

// ParseCategory accepts the category names case-insensitively; blank and
// "All Transactions" mean All.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "all transactions":
		return CategoryAll, nil
	case "savings":
		return CategorySavings, nil
	case "loans", "loan":
		return CategoryLoans, nil
	case "shares", "share":
		return CategoryShares, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Matches reports whether a transaction of type t belongs to the category.
func (c Category) Matches(t TransactionType) bool {
	switch c {
	case CategoryAll:
		return true
	case CategorySavings:
		return t == TransactionSavings
	case CategoryLoans:
		return t == TransactionLoan
	case CategoryShares:
		return t == TransactionShare
	}
	return false
}

// Statement is the filtered, ordered and totaled transaction list for a member.
type Statement struct {
	Transactions []Transaction   `json:"transactions"`
	TotalCredit  decimal.Decimal `json:"total_credit"`
	TotalDebit   decimal.Decimal `json:"total_debit"`
	Category     Category        `json:"category"`
	Period       string          `json:"period"`
}

// ProjectTransactions flattens the ledgers into statement lines, newest first.
// Lines with the same date keep savings-then-shares-then-loans input order.
// Loan repayments are not itemized: the loan ledger only carries the aggregate
// amount paid, so each loan contributes its disbursement only.
func ProjectTransactions(l Ledgers) []Transaction {
	txs := make([]Transaction, 0, len(l.Savings)+len(l.Shares)+len(l.Loans))

	for _, s := range l.Savings {
		label := s.PaymentMonth
		if label == "" {
			label = s.Type
		}
		txs = append(txs, Transaction{
			Date:        s.EffectiveDate(),
			Description: "Savings Contribution - " + label,
			Type:        TransactionSavings,
			Amount:      s.Amount.Abs(),
			IsCredit:    true,
		})
	}

	for _, s := range l.Shares {
		txs = append(txs, Transaction{
			Date:        s.EffectiveDate(),
			Description: fmt.Sprintf("Share Purchase - %d Units", s.SharesCount),
			Type:        TransactionShare,
			Amount:      s.TotalValue.Abs(),
			IsCredit:    true,
		})
	}

	for _, ln := range l.Loans {
		txs = append(txs, Transaction{
			Date:        ln.EffectiveDate(),
			Description: fmt.Sprintf("Loan Disbursement - #%d", ln.ID),
			Type:        TransactionLoan,
			Amount:      ln.LoanAmount.Abs(),
			IsCredit:    false,
		})
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
	return txs
}

// BuildStatement projects the ledgers, keeps the lines matching both the category
// and the period, and totals credits and debits over what remains.
func BuildStatement(l Ledgers, category Category, period Period) Statement {
	stmt := Statement{
		Transactions: make([]Transaction, 0),
		TotalCredit:  decimal.Zero,
		TotalDebit:   decimal.Zero,
		Category:     category,
		Period:       period.Selection,
	}

	for _, tx := range ProjectTransactions(l) {
		if !category.Matches(tx.Type) || !period.Contains(tx.Date) {
			continue
		}
		stmt.Transactions = append(stmt.Transactions, tx)
		if tx.IsCredit {
			stmt.TotalCredit = stmt.TotalCredit.Add(tx.Amount)
		} else {
			stmt.TotalDebit = stmt.TotalDebit.Add(tx.Amount)
		}
	}
	return stmt
}

// TotalByType sums the statement lines of one type, e.g. savings for the footer.
func (s Statement) TotalByType(t TransactionType) decimal.Decimal {
	return Sum(s.Transactions, func(tx Transaction) decimal.Decimal {
		if tx.Type != t {
			return decimal.Zero
		}
		return tx.Amount
	})
}
