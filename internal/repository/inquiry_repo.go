package repository

import (
	"context"

	"gorm.io/gorm"

	"fornex/internal/domain"
)

type InquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

func (r *InquiryRepository) Create(ctx context.Context, q *domain.Inquiry) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *InquiryRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Inquiry, error) {
	items := make([]domain.Inquiry, 0)
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at").
		Find(&items).Error
	return items, err
}
