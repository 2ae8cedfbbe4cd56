package repository

import (
	"context"

	"github.com/sjperalta/dpa-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShareRepository defines the interface for shares ledger access
type ShareRepository interface {
	FindByID(ctx context.Context, id uint) (*models.ShareRecord, error)
	List(ctx context.Context, query LedgerQuery) ([]models.ShareRecord, error)
	Create(ctx context.Context, record *models.ShareRecord) error
	Update(ctx context.Context, record *models.ShareRecord) error
	Delete(ctx context.Context, id uint) error
}

type shareRepository struct {
	db *gorm.DB
}

// NewShareRepository creates a new share repository
func NewShareRepository(db *gorm.DB) ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) FindByID(ctx context.Context, id uint) (*models.ShareRecord, error) {
	var record models.ShareRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (r *shareRepository) List(ctx context.Context, query LedgerQuery) ([]models.ShareRecord, error) {
	records := make([]models.ShareRecord, 0)

	db := r.db.WithContext(ctx).Model(&models.ShareRecord{}).Select("shares.*")
	if query.UserID != nil {
		db = db.Where("shares.user_id = ?", *query.UserID)
	}
	if query.Search != "" {
		search := likePattern(query.Search)
		db = db.Joins("JOIN members ON members.id = shares.user_id").
			Where("LOWER(members.full_name) LIKE ? OR LOWER(members.member_id) LIKE ?", search, search)
	}

	err := db.Order("shares.purchase_date DESC, shares.id DESC").Find(&records).Error
	return records, err
}

// Create inserts the record; the model's BeforeSave hook fixes TotalValue.
func (r *shareRepository) Create(ctx context.Context, record *models.ShareRecord) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error)
}

func (r *shareRepository) Update(ctx context.Context, record *models.ShareRecord) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(record).Error)
}

func (r *shareRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.ShareRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
