package repository

import (
	"context"

	"github.com/sjperalta/dpa-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SavingsRepository defines the interface for savings ledger access
type SavingsRepository interface {
	FindByID(ctx context.Context, id uint) (*models.SavingsRecord, error)
	List(ctx context.Context, query LedgerQuery) ([]models.SavingsRecord, error)
	Create(ctx context.Context, record *models.SavingsRecord) error
	Update(ctx context.Context, record *models.SavingsRecord) error
	Delete(ctx context.Context, id uint) error
}

type savingsRepository struct {
	db *gorm.DB
}

// NewSavingsRepository creates a new savings repository
func NewSavingsRepository(db *gorm.DB) SavingsRepository {
	return &savingsRepository{db: db}
}

func (r *savingsRepository) FindByID(ctx context.Context, id uint) (*models.SavingsRecord, error) {
	var record models.SavingsRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

// List returns matching savings newest first. Search matches the member's name or
// number and the savings type.
func (r *savingsRepository) List(ctx context.Context, query LedgerQuery) ([]models.SavingsRecord, error) {
	records := make([]models.SavingsRecord, 0)

	db := r.db.WithContext(ctx).Model(&models.SavingsRecord{}).Select("savings.*")
	if query.UserID != nil {
		db = db.Where("savings.user_id = ?", *query.UserID)
	}
	if query.Search != "" {
		search := likePattern(query.Search)
		db = db.Joins("JOIN members ON members.id = savings.user_id").
			Where("LOWER(members.full_name) LIKE ? OR LOWER(members.member_id) LIKE ? OR LOWER(savings.type) LIKE ?",
				search, search, search)
	}

	err := db.Order("savings.payment_date DESC, savings.id DESC").Find(&records).Error
	return records, err
}

func (r *savingsRepository) Create(ctx context.Context, record *models.SavingsRecord) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error)
}

func (r *savingsRepository) Update(ctx context.Context, record *models.SavingsRecord) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(record).Error)
}

func (r *savingsRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.SavingsRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
