package repository

import (
	"context"
	"path/filepath"

	"fornex/internal/domain"
)

const inquiriesFile = "orcamentos.json"

type JSONInquiryRepository struct {
	file *jsonFile[domain.Inquiry]
}

func NewJSONInquiryRepository(dataDir string) (*JSONInquiryRepository, error) {
	f, err := openJSONFile[domain.Inquiry](filepath.Join(dataDir, inquiriesFile))
	if err != nil {
		return nil, err
	}
	return &JSONInquiryRepository{file: f}, nil
}

func (r *JSONInquiryRepository) Create(ctx context.Context, q *domain.Inquiry) error {
	return r.file.update(ctx, func(items []domain.Inquiry) ([]domain.Inquiry, error) {
		return append(items, *q), nil
	})
}

func (r *JSONInquiryRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Inquiry, error) {
	items, err := r.file.read(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Inquiry, 0)
	for _, q := range items {
		if q.CompanyID == companyID {
			out = append(out, q)
		}
	}
	return out, nil
}
