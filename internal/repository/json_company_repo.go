package repository

import (
	"context"
	"path/filepath"
	"strconv"

	"fornex/internal/domain"
)

const companiesFile = "empresas.json"

type JSONCompanyRepository struct {
	file *jsonFile[domain.Company]
}

func NewJSONCompanyRepository(dataDir string) (*JSONCompanyRepository, error) {
	f, err := openJSONFile[domain.Company](filepath.Join(dataDir, companiesFile))
	if err != nil {
		return nil, err
	}
	return &JSONCompanyRepository{file: f}, nil
}

func (r *JSONCompanyRepository) List(ctx context.Context) ([]domain.Company, error) {
	return r.file.read(ctx)
}

func (r *JSONCompanyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	items, err := r.file.read(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *JSONCompanyRepository) GetByEmail(ctx context.Context, email string) (*domain.Company, error) {
	items, err := r.file.read(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Email == email {
			return &items[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create appends c with the next numeric id and writes the id back into c.
func (r *JSONCompanyRepository) Create(ctx context.Context, c *domain.Company) error {
	return r.file.update(ctx, func(items []domain.Company) ([]domain.Company, error) {
		if err := checkCompanyUnique(items, c, ""); err != nil {
			return nil, err
		}
		c.ID = nextCompanyID(items)
		return append(items, *c), nil
	})
}

// Modify applies fn to the stored company while the file is locked, so
// concurrent partial edits see each other's writes. The id cannot change.
func (r *JSONCompanyRepository) Modify(ctx context.Context, id string, fn func(*domain.Company) error) (*domain.Company, error) {
	var out domain.Company
	err := r.file.update(ctx, func(items []domain.Company) ([]domain.Company, error) {
		idx := -1
		for i := range items {
			if items[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, ErrNotFound
		}

		c := items[idx]
		if err := fn(&c); err != nil {
			return nil, err
		}
		c.ID = id
		if err := checkCompanyUnique(items, &c, id); err != nil {
			return nil, err
		}
		items[idx] = c
		out = c
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func checkCompanyUnique(items []domain.Company, c *domain.Company, skipID string) error {
	for _, other := range items {
		if skipID != "" && other.ID == skipID {
			continue
		}
		if c.Email != "" && other.Email == c.Email {
			return ErrEmailTaken
		}
		if c.TaxID != "" && other.TaxID == c.TaxID {
			return ErrTaxIDTaken
		}
	}
	return nil
}

// nextCompanyID returns one past the highest numeric id. Ids that are not
// numbers are ignored so a hand edited file cannot poison the sequence.
func nextCompanyID(items []domain.Company) string {
	var max int64
	for _, c := range items {
		n, err := strconv.ParseInt(c.ID, 10, 64)
		if err == nil && n > max {
			max = n
		}
	}
	return strconv.FormatInt(max+1, 10)
}
