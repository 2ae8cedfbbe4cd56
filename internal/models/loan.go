package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is a member loan with its derived repayment figures.
// Balance always equals max(0, TotalRepayable - AmountPaid).
type Loan struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	UserID           uint            `gorm:"not null;index" json:"user_id"`
	LoanAmount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"loan_amount"`
	InterestRate     decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	DurationMonths   int             `gorm:"not null" json:"duration_months"`
	MonthlyRepayment decimal.Decimal `gorm:"type:decimal(15,2)" json:"monthly_repayment"`
	TotalRepayable   decimal.Decimal `gorm:"type:decimal(15,2)" json:"total_repayable"`
	AmountPaid       decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"amount_paid"`
	Balance          decimal.Decimal `gorm:"type:decimal(15,2)" json:"balance"`
	Status           string          `gorm:"default:pending;not null;index" json:"status"`
	Purpose          *string         `json:"purpose"`
	ApplicationDate  time.Time       `gorm:"type:date;index" json:"application_date"`
	ApprovedAt       *time.Time      `json:"approved_at"`
	ClosedAt         *time.Time      `json:"closed_at"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Associations
	Member Member `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for Loan
func (Loan) TableName() string {
	return "loans"
}

// Loan status constants
const (
	LoanStatusPending  = "pending"
	LoanStatusApproved = "approved"
	LoanStatusActive   = "active"
	LoanStatusClosed   = "closed"
	LoanStatusRejected = "rejected"
)

// MayApprove returns true if the loan can be approved
func (l *Loan) MayApprove() bool {
	return l.Status == LoanStatusPending
}

// MayReject returns true if the loan can be rejected
func (l *Loan) MayReject() bool {
	return l.Status == LoanStatusPending
}

// MayReceivePayment returns true if a repayment can be recorded
func (l *Loan) MayReceivePayment() bool {
	return l.Status == LoanStatusApproved || l.Status == LoanStatusActive
}

// MayClose returns true unless the loan is already terminal
func (l *Loan) MayClose() bool {
	return !l.IsTerminal()
}

// IsTerminal returns true for closed and rejected loans
func (l *Loan) IsTerminal() bool {
	return l.Status == LoanStatusClosed || l.Status == LoanStatusRejected
}

// EffectiveDate returns the application date, falling back to the creation time
func (l Loan) EffectiveDate() time.Time {
	if !l.ApplicationDate.IsZero() {
		return l.ApplicationDate
	}
	return l.CreatedAt
}
