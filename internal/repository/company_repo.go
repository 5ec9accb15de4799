package repository

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fornex/internal/domain"
)

// CompanyRepository is the gorm backed CompanyStore.
type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// List returns companies in registration order. Ids are decimal strings,
// so ordering by length then value is numeric ordering.
func (r *CompanyRepository) List(ctx context.Context) ([]domain.Company, error) {
	companies := make([]domain.Company, 0)
	err := r.db.WithContext(ctx).
		Order("LENGTH(id), id").
		Find(&companies).Error
	return companies, err
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	var c domain.Company
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepository) GetByEmail(ctx context.Context, email string) (*domain.Company, error) {
	var c domain.Company
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// createAttempts bounds retries when two concurrent creates pick the same
// next id and one of them hits the primary key.
const createAttempts = 3

func (r *CompanyRepository) Create(ctx context.Context, c *domain.Company) error {
	var err error
	for attempt := 0; attempt < createAttempts; attempt++ {
		err = r.create(ctx, c)
		if !isPrimaryKeyViolation(err) {
			break
		}
	}
	return mapUniqueViolation(err)
}

func (r *CompanyRepository) create(ctx context.Context, c *domain.Company) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.checkUnique(tx, c); err != nil {
			return err
		}

		var ids []string
		if err := tx.Model(&domain.Company{}).Pluck("id", &ids).Error; err != nil {
			return err
		}
		var max int64
		for _, id := range ids {
			if n, err := strconv.ParseInt(id, 10, 64); err == nil && n > max {
				max = n
			}
		}
		c.ID = strconv.FormatInt(max+1, 10)

		return tx.Create(c).Error
	})
}

// Modify loads the company with a row lock, applies fn and saves it in the
// same transaction. The id cannot change.
func (r *CompanyRepository) Modify(ctx context.Context, id string, fn func(*domain.Company) error) (*domain.Company, error) {
	var c domain.Company
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&c).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := fn(&c); err != nil {
			return err
		}
		c.ID = id

		if err := r.checkUnique(tx.Where("id <> ?", id), &c); err != nil {
			return err
		}
		return tx.Save(&c).Error
	})
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return &c, nil
}

func (r *CompanyRepository) checkUnique(tx *gorm.DB, c *domain.Company) error {
	var count int64
	if err := tx.Session(&gorm.Session{}).Model(&domain.Company{}).
		Where("email = ?", c.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}
	if err := tx.Session(&gorm.Session{}).Model(&domain.Company{}).
		Where("tax_id = ?", c.TaxID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrTaxIDTaken
	}
	return nil
}
