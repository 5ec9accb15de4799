package inquiry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fornex/internal/domain"
	"fornex/internal/pkg/logger"
	"fornex/internal/repository"
	"fornex/internal/session"
)

type Repository interface {
	Create(ctx context.Context, q *domain.Inquiry) error
	ListByCompany(ctx context.Context, companyID string) ([]domain.Inquiry, error)
}

type CompanyReader interface {
	GetByID(ctx context.Context, id string) (*domain.Company, error)
}

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Service handles quote requests from clients to companies
type Service struct {
	repo      Repository
	companies CompanyReader
	users     UserReader
	log       *logger.Logger
	now       func() time.Time
}

func NewService(repo Repository, companies CompanyReader, users UserReader, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, companies: companies, users: users, log: log, now: time.Now}
}

// Submit records a quote request. The session must belong to a client that
// still exists in the user store; the stored client data comes from the
// store, not from the session payload.
func (s *Service) Submit(ctx context.Context, sess session.Session, companyID, message string) (*domain.Inquiry, error) {
	if !sess.CanRequestQuote() {
		return nil, ErrNotClient
	}
	client, err := s.users.GetByEmail(ctx, sess.User.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotClient
		}
		return nil, fmt.Errorf("lookup client: %w", err)
	}

	company, err := s.company(ctx, companyID)
	if err != nil {
		return nil, err
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	q := &domain.Inquiry{
		ID:          uuid.NewString(),
		CompanyID:   company.ID,
		ClientEmail: client.Email,
		ClientName:  client.Name,
		ClientTaxID: client.TaxID,
		Message:     message,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("save inquiry: %w", err)
	}

	s.log.Info().
		Str("inquiry_id", q.ID).
		Str("company_id", q.CompanyID).
		Str("client_email", q.ClientEmail).
		Msg("quote requested")
	return q, nil
}

// ListByCompany returns the quotes received by companyID. Only the company's
// own session may read them: the session must name that id and match the
// stored company's email.
func (s *Service) ListByCompany(ctx context.Context, sess session.Session, companyID string) ([]domain.Inquiry, error) {
	if sess.IsAnonymous() {
		return nil, ErrNoSession
	}
	if !sess.CanEditCompany(companyID) {
		return nil, ErrNotOwner
	}

	company, err := s.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company.Email != sess.Company.Email {
		return nil, ErrNotOwner
	}

	list, err := s.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	if list == nil {
		list = []domain.Inquiry{}
	}
	return list, nil
}

func (s *Service) company(ctx context.Context, id string) (*domain.Company, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrCompanyNotFound
	}
	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("lookup company: %w", err)
	}
	return c, nil
}
