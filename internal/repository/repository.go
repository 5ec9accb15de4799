package repository

import (
	"context"

	"fornex/internal/domain"
)

// CompanyStore persists Company records. Create assigns the id. Modify runs
// fn on the stored record under the store's write lock and returns the saved
// company; an error from fn leaves the record untouched.
type CompanyStore interface {
	List(ctx context.Context) ([]domain.Company, error)
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	GetByEmail(ctx context.Context, email string) (*domain.Company, error)
	Create(ctx context.Context, c *domain.Company) error
	Modify(ctx context.Context, id string, fn func(*domain.Company) error) (*domain.Company, error)
}

// UserStore persists client records keyed by email.
type UserStore interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByTaxID(ctx context.Context, taxID string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	ModifyByTaxID(ctx context.Context, taxID string, fn func(*domain.User) error) (*domain.User, error)
}

type InquiryStore interface {
	Create(ctx context.Context, q *domain.Inquiry) error
	ListByCompany(ctx context.Context, companyID string) ([]domain.Inquiry, error)
}

// Stores groups the record stores of one backend.
type Stores struct {
	Companies CompanyStore
	Users     UserStore
	Inquiries InquiryStore
	close     func() error
}

func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
