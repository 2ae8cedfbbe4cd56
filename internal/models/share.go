package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ShareRecord is a share purchase on the shares ledger.
// TotalValue always equals SharesCount * ShareValue.
type ShareRecord struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	SharesCount  int             `gorm:"not null" json:"shares_count"`
	ShareValue   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"share_value"`
	TotalValue   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_value"`
	PurchaseDate time.Time       `gorm:"type:date;index" json:"purchase_date"`
	Description  *string         `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Associations
	Member Member `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for ShareRecord
func (ShareRecord) TableName() string {
	return "shares"
}

// RecomputeTotal restores the TotalValue invariant
func (s *ShareRecord) RecomputeTotal() {
	s.TotalValue = s.ShareValue.Mul(decimal.NewFromInt(int64(s.SharesCount)))
}

// BeforeSave keeps TotalValue consistent on every insert and update
func (s *ShareRecord) BeforeSave(tx *gorm.DB) error {
	s.RecomputeTotal()
	return nil
}

// EffectiveDate returns the purchase date, falling back to the creation time
func (s ShareRecord) EffectiveDate() time.Time {
	if !s.PurchaseDate.IsZero() {
		return s.PurchaseDate
	}
	return s.CreatedAt
}
