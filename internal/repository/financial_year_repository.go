package repository

import (
	"context"

	"github.com/sjperalta/dpa-api/internal/models"
	"gorm.io/gorm"
)

// FinancialYearRepository stores the admin-configured current financial year
type FinancialYearRepository interface {
	Current(ctx context.Context) (*models.FinancialYearSetting, error)
	Save(ctx context.Context, setting *models.FinancialYearSetting) error
}

type financialYearRepository struct {
	db *gorm.DB
}

// NewFinancialYearRepository creates a new financial year repository
func NewFinancialYearRepository(db *gorm.DB) FinancialYearRepository {
	return &financialYearRepository{db: db}
}

// Current returns the stored setting or ErrNotFound when none was ever saved.
func (r *financialYearRepository) Current(ctx context.Context) (*models.FinancialYearSetting, error) {
	var setting models.FinancialYearSetting
	err := r.db.WithContext(ctx).Order("id ASC").First(&setting).Error
	if err != nil {
		return nil, translate(err)
	}
	return &setting, nil
}

// Save overwrites the single settings row, creating it on first use.
func (r *financialYearRepository) Save(ctx context.Context, setting *models.FinancialYearSetting) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.FinancialYearSetting
		err := tx.Order("id ASC").First(&existing).Error
		switch {
		case err == nil:
			setting.ID = existing.ID
			setting.CreatedAt = existing.CreatedAt
			return tx.Save(setting).Error
		case translate(err) == ErrNotFound:
			setting.ID = 0
			return tx.Create(setting).Error
		default:
			return err
		}
	})
}
