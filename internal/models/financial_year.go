package models

import "time"

// FinancialYearSetting is the admin-configured current financial year.
// A single row is kept; the latest write wins.
type FinancialYearSetting struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Label           string    `gorm:"not null" json:"label"`
	StartDate       time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate         time.Time `gorm:"type:date;not null" json:"end_date"`
	UpdatedByUserID uint      `json:"updated_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for FinancialYearSetting
func (FinancialYearSetting) TableName() string {
	return "financial_year_settings"
}
