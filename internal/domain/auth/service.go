package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"fornex/internal/domain"
	"fornex/internal/pkg/logger"
	"fornex/internal/pkg/validator"
	"fornex/internal/repository"
	"fornex/internal/session"
)

// Service authenticates against the user store first, then the company
// store. Passwords are stored and compared as submitted.
type Service struct {
	users     UserRepository
	companies CompanyRepository
	log       *logger.Logger
}

func NewService(users UserRepository, companies CompanyRepository, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{users: users, companies: companies, log: log}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (session.Session, error) {
	if errs := validator.Validate(req); errs != nil {
		return session.Anonymous(), ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		if passwordMatches(user.Password, req.Password) {
			return session.ForClient(*user), nil
		}
	case !errors.Is(err, repository.ErrNotFound):
		return session.Anonymous(), fmt.Errorf("lookup user: %w", err)
	}

	company, err := s.companies.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		if passwordMatches(company.Password, req.Password) {
			return session.ForCompany(*company), nil
		}
	case !errors.Is(err, repository.ErrNotFound):
		return session.Anonymous(), fmt.Errorf("lookup company: %w", err)
	}

	return session.Anonymous(), ErrInvalidCredentials
}

func (s *Service) RegisterClient(ctx context.Context, req RegisterClientRequest) (*domain.User, error) {
	if err := checkRegistration(req); err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		TaxID:    req.TaxID,
		Phone:    req.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("email", user.Email).Msg("client registered")
	return user, nil
}

func (s *Service) RegisterCompany(ctx context.Context, req RegisterCompanyRequest) (*domain.Company, error) {
	if err := checkRegistration(req); err != nil {
		return nil, err
	}

	company := &domain.Company{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		TaxID:            req.TaxID,
		Address:          req.Address,
		Phone:            req.Phone,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		Location:         req.Location,
		Plan:             domain.Plan(req.Plan),
		Products:         req.Products.Normalize(),
		ImagePath:        nil,
		Categories:       []string{},
	}
	if err := s.companies.Create(ctx, company); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, ErrEmailAlreadyExists
		case errors.Is(err, repository.ErrTaxIDTaken):
			return nil, ErrTaxIDAlreadyExists
		}
		return nil, fmt.Errorf("create company: %w", err)
	}

	s.log.Info().Str("company_id", company.ID).Str("name", company.Name).Msg("company registered")
	return company, nil
}

// checkRegistration reports missing fields before a password mismatch.
func checkRegistration(req any) error {
	errs := validator.Validate(req)
	if errs == nil {
		return nil
	}
	for _, tag := range errs {
		if tag == "required" {
			return ErrMissingFields
		}
	}
	if errs["ConfirmPassword"] == "eqfield" {
		return ErrPasswordMismatch
	}
	return ErrMissingFields
}

func passwordMatches(stored, given string) bool {
	return stored != "" && subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}
