package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsRecord is a single contribution on the savings ledger
type SavingsRecord struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type         string          `gorm:"not null;default:'Monthly Savings'" json:"type"`
	PaymentDate  time.Time       `gorm:"type:date;index" json:"payment_date"`
	PaymentMonth string          `json:"payment_month"`
	Description  *string         `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Associations
	Member Member `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for SavingsRecord
func (SavingsRecord) TableName() string {
	return "savings"
}

// Savings type constants
const (
	SavingsTypeMonthly         = "Monthly Savings"
	SavingsTypeSharePurchase   = "Share Purchase"
	SavingsTypeLoanRepayment   = "Loan Repayment"
	SavingsTypeRegistrationFee = "Registration Fee"
	SavingsTypeOther           = "Other"
)

// SavingsTypes lists the accepted savings types
var SavingsTypes = []string{
	SavingsTypeMonthly,
	SavingsTypeSharePurchase,
	SavingsTypeLoanRepayment,
	SavingsTypeRegistrationFee,
	SavingsTypeOther,
}

// IsValidSavingsType reports whether t is one of SavingsTypes
func IsValidSavingsType(t string) bool {
	for _, st := range SavingsTypes {
		if st == t {
			return true
		}
	}
	return false
}

// EffectiveDate returns the payment date, falling back to the creation time
func (s SavingsRecord) EffectiveDate() time.Time {
	if !s.PaymentDate.IsZero() {
		return s.PaymentDate
	}
	return s.CreatedAt
}
