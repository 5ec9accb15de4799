package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"sync"

	"fornex/internal/domain"
	"fornex/internal/domain/upload"
	"fornex/internal/pkg/logger"
	"fornex/internal/repository"
)

var ErrCompanyNotFound = errors.New("company not found")

//go:embed estados.json
var statesJSON []byte

type CompanyRepository interface {
	List(ctx context.Context) ([]domain.Company, error)
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	Modify(ctx context.Context, id string, fn func(*domain.Company) error) (*domain.Company, error)
}

type ImageStore interface {
	Save(ctx context.Context, subject upload.Subject, file *multipart.FileHeader) (string, error)
	Prune(subject upload.Subject, keep string) error
}

type Service struct {
	companies      CompanyRepository
	images         ImageStore
	categoriesFile string
	log            *logger.Logger

	statesOnce sync.Once
	states     []State
}

func NewService(companies CompanyRepository, images ImageStore, categoriesFile string, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{companies: companies, images: images, categoriesFile: categoriesFile, log: log}
}

// List returns every company without credentials. With a filter the result
// goes through FilterAndOrder; without one it keeps store order.
func (s *Service) List(ctx context.Context, f *Filter) ([]domain.Company, error) {
	all, err := s.companies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	if f != nil {
		all = FilterAndOrder(all, *f)
	}

	out := make([]domain.Company, len(all))
	for i, c := range all {
		out[i] = c.Public()
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Company, error) {
	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	pub := c.Public()
	return &pub, nil
}

// Update applies the set fields of req and, when image is given, replaces
// the company's picture. The merge runs inside the store's write lock. Old
// pictures are pruned only after the record is saved; on failure the file
// the record still names is the one kept.
func (s *Service) Update(ctx context.Context, id string, req UpdateCompanyRequest, image *multipart.FileHeader) (*domain.Company, error) {
	subject := upload.Subject{Kind: upload.KindCompany, ID: id}
	var saved, previous string

	c, err := s.companies.Modify(ctx, id, func(c *domain.Company) error {
		assign(&c.Name, req.Name)
		assign(&c.LongDescription, req.LongDescription)
		assign(&c.ShortDescription, req.ShortDescription)
		assign(&c.Phone, req.Phone)
		assign(&c.Location, req.Location)
		if req.setProducts {
			c.Products = req.Products
		}
		if req.setCategories {
			c.Categories = req.Categories
		}

		if image != nil {
			if c.ImagePath != nil {
				previous = *c.ImagePath
			}
			path, err := s.images.Save(ctx, subject, image)
			if err != nil {
				return err
			}
			saved = path
			c.ImagePath = &path
		}
		return nil
	})

	if saved != "" {
		keep := saved
		if err != nil {
			keep = previous
		}
		if perr := s.images.Prune(subject, keep); perr != nil {
			s.log.Warn().Err(perr).Str("company_id", id).Msg("prune old company images")
		}
	}

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("update company: %w", err)
	}

	s.log.Info().Str("company_id", c.ID).Bool("image", image != nil).Msg("company updated")
	pub := c.Public()
	return &pub, nil
}

// Categories returns the configured category list when the file exists,
// otherwise the categories in use by registered companies.
func (s *Service) Categories(ctx context.Context) ([]CategoryOption, error) {
	if s.categoriesFile != "" {
		opts, err := readCategoriesFile(s.categoriesFile)
		if err == nil {
			return opts, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		s.log.Debug().Str("file", s.categoriesFile).Msg("categories file not found, deriving from companies")
	}

	all, err := s.companies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	names := DeriveCategories(all)
	opts := make([]CategoryOption, len(names))
	for i, n := range names {
		opts[i] = CategoryOption{Name: n}
	}
	return opts, nil
}

func (s *Service) States() []State {
	s.statesOnce.Do(func() {
		if err := json.Unmarshal(statesJSON, &s.states); err != nil {
			panic(fmt.Sprintf("catalog: embedded states list: %v", err))
		}
	})
	return s.states
}

// readCategoriesFile accepts [{"nome": ...}] or a plain string array.
func readCategoriesFile(path string) ([]CategoryOption, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var opts []CategoryOption
	if err := json.Unmarshal(data, &opts); err == nil {
		return opts, nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("parse categories file %s: %w", path, err)
	}
	opts = make([]CategoryOption, len(names))
	for i, n := range names {
		opts[i] = CategoryOption{Name: n}
	}
	return opts, nil
}

func assign(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
