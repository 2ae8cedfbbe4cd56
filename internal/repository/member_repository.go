package repository

import (
	"context"

	"github.com/sjperalta/dpa-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MemberRepository defines the interface for member data access
type MemberRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Member, error)
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Member, error)
	Create(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, member *models.Member) error
	List(ctx context.Context, query *ListQuery) ([]models.Member, int64, error)
	Count(ctx context.Context) (int64, error)
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

var memberSortColumns = map[string]bool{
	"full_name":  true,
	"member_id":  true,
	"email":      true,
	"created_at": true,
}

func (r *memberRepository) FindByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).First(&member, id).Error; err != nil {
		return nil, translate(err)
	}
	return &member, nil
}

func (r *memberRepository) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&member).Error
	if err != nil {
		return nil, translate(err)
	}
	return &member, nil
}

func (r *memberRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Member, error) {
	members := make([]models.Member, 0, len(ids))
	if len(ids) == 0 {
		return members, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&members).Error
	return members, err
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	return translate(r.db.WithContext(ctx).Create(member).Error)
}

func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(member).Error)
}

func (r *memberRepository) List(ctx context.Context, query *ListQuery) ([]models.Member, int64, error) {
	var members []models.Member
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Member{})

	// Apply search
	if query.Search != "" {
		search := likePattern(query.Search)
		db = db.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(member_id) LIKE ?",
			search, search, search)
	}

	// Apply role filter
	if query.Filters["role"] != "" {
		db = db.Where("role = ?", query.Filters["role"])
	}

	// Apply status filter
	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order(query.order(memberSortColumns, "created_at DESC"))

	// Apply pagination
	if query.PerPage > 0 {
		db = db.Offset(query.Offset()).Limit(query.PerPage)
	}

	err := db.Find(&members).Error
	return members, total, err
}

func (r *memberRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).
		Where("role = ?", models.RoleMember).
		Count(&total).Error
	return total, err
}
