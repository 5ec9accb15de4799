package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fornex/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0)
	err := r.db.WithContext(ctx).Order("email").Find(&users).Error
	return users, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) GetByTaxID(ctx context.Context, taxID string) (*domain.User, error) {
	if taxID == "" {
		return nil, ErrNotFound
	}
	return r.first(ctx, "tax_id = ?", taxID)
}

func (r *UserRepository) first(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
		return tx.Create(u).Error
	})
	// email is the primary key, so any unique failure is a duplicate email
	if _, dup := uniqueViolation(err); dup {
		return ErrEmailTaken
	}
	return err
}

// ModifyByTaxID loads the client with a row lock, applies fn and saves it in
// the same transaction. Email is the key and cannot change.
func (r *UserRepository) ModifyByTaxID(ctx context.Context, taxID string, fn func(*domain.User) error) (*domain.User, error) {
	if taxID == "" {
		return nil, ErrNotFound
	}

	var u domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tax_id = ?", taxID).
			First(&u).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		email := u.Email
		if err := fn(&u); err != nil {
			return err
		}
		u.Email = email

		return tx.Model(&domain.User{}).
			Where("email = ?", email).
			Select("*").
			Updates(&u).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}
