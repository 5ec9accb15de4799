package auth

import (
	"context"

	"fornex/internal/domain"
)

// UserRepository lists the user store methods login and registration need.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

type CompanyRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Company, error)
	Create(ctx context.Context, c *domain.Company) error
}
