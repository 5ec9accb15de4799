package repository

import (
	"context"
	"path/filepath"

	"fornex/internal/domain"
)

const usersFile = "usuarios.json"

type JSONUserRepository struct {
	file *jsonFile[domain.User]
}

func NewJSONUserRepository(dataDir string) (*JSONUserRepository, error) {
	f, err := openJSONFile[domain.User](filepath.Join(dataDir, usersFile))
	if err != nil {
		return nil, err
	}
	return &JSONUserRepository{file: f}, nil
}

func (r *JSONUserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.file.read(ctx)
}

func (r *JSONUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.Email == email })
}

func (r *JSONUserRepository) GetByTaxID(ctx context.Context, taxID string) (*domain.User, error) {
	if taxID == "" {
		return nil, ErrNotFound
	}
	return r.find(ctx, func(u domain.User) bool { return u.TaxID == taxID })
}

func (r *JSONUserRepository) find(ctx context.Context, pred func(domain.User) bool) (*domain.User, error) {
	items, err := r.file.read(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if pred(items[i]) {
			return &items[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *JSONUserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.file.update(ctx, func(items []domain.User) ([]domain.User, error) {
		for _, other := range items {
			if other.Email == u.Email {
				return nil, ErrEmailTaken
			}
		}
		return append(items, *u), nil
	})
}

// ModifyByTaxID applies fn to the client with the given CPF while the file
// is locked. Email is the key and cannot change.
func (r *JSONUserRepository) ModifyByTaxID(ctx context.Context, taxID string, fn func(*domain.User) error) (*domain.User, error) {
	if taxID == "" {
		return nil, ErrNotFound
	}

	var out domain.User
	err := r.file.update(ctx, func(items []domain.User) ([]domain.User, error) {
		for i := range items {
			if items[i].TaxID != taxID {
				continue
			}
			u := items[i]
			if err := fn(&u); err != nil {
				return nil, err
			}
			u.Email = items[i].Email
			items[i] = u
			out = u
			return items, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
