package repository

import (
	"context"

	"github.com/sjperalta/dpa-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoanRepository defines the interface for loan data access
type LoanRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Loan, error)
	List(ctx context.Context, query LedgerQuery) ([]models.Loan, error)
	Create(ctx context.Context, loan *models.Loan) error
	Mutate(ctx context.Context, id uint, fn func(loan *models.Loan) error) (*models.Loan, error)
	Delete(ctx context.Context, id uint) error
}

type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) FindByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	if err := r.db.WithContext(ctx).First(&loan, id).Error; err != nil {
		return nil, translate(err)
	}
	return &loan, nil
}

func (r *loanRepository) List(ctx context.Context, query LedgerQuery) ([]models.Loan, error) {
	loans := make([]models.Loan, 0)

	db := r.db.WithContext(ctx).Model(&models.Loan{}).Select("loans.*")
	if query.UserID != nil {
		db = db.Where("loans.user_id = ?", *query.UserID)
	}
	if query.Search != "" {
		search := likePattern(query.Search)
		db = db.Joins("JOIN members ON members.id = loans.user_id").
			Where("LOWER(members.full_name) LIKE ? OR LOWER(members.member_id) LIKE ? OR LOWER(loans.status) LIKE ?",
				search, search, search)
	}

	err := db.Order("loans.application_date DESC, loans.id DESC").Find(&loans).Error
	return loans, err
}

func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(loan).Error)
}

// Mutate loads the loan, applies fn and saves the result in one transaction.
// On PostgreSQL the row is locked for the duration so concurrent payments on the
// same loan apply one after the other. If fn fails nothing is written.
func (r *loanRepository) Mutate(ctx context.Context, id uint, fn func(loan *models.Loan) error) (*models.Loan, error) {
	var loan models.Loan

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&loan, id).Error; err != nil {
			return translate(err)
		}
		if err := fn(&loan); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&loan).Error
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Loan{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
