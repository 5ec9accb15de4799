package profile

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"fornex/internal/domain"
	"fornex/internal/domain/upload"
	"fornex/internal/pkg/logger"
	"fornex/internal/repository"
)

type UserRepository interface {
	ModifyByTaxID(ctx context.Context, taxID string, fn func(*domain.User) error) (*domain.User, error)
}

type ImageStore interface {
	Save(ctx context.Context, subject upload.Subject, file *multipart.FileHeader) (string, error)
	Prune(subject upload.Subject, keep string) error
}

// Service manages client profile data
type Service struct {
	users  UserRepository
	images ImageStore
	log    *logger.Logger
}

func NewService(users UserRepository, images ImageStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{users: users, images: images, log: log}
}

// ReplacePicture stores file as the profile image of the client with the
// given CPF and records its public path on the user. Older pictures are
// removed once the user record is saved.
func (s *Service) ReplacePicture(ctx context.Context, taxID string, file *multipart.FileHeader) (*domain.User, string, error) {
	if file == nil {
		return nil, "", ErrNoFile
	}

	subject := upload.Subject{Kind: upload.KindUser, ID: taxID}
	var saved, previous string

	user, err := s.users.ModifyByTaxID(ctx, taxID, func(u *domain.User) error {
		if u.ProfileImagePath != nil {
			previous = *u.ProfileImagePath
		}
		path, err := s.images.Save(ctx, subject, file)
		if err != nil {
			return err
		}
		saved = path
		u.ProfileImagePath = &path
		return nil
	})

	if saved != "" {
		keep := saved
		if err != nil {
			keep = previous
		}
		if perr := s.images.Prune(subject, keep); perr != nil {
			s.log.Warn().Err(perr).Str("cpf", taxID).Msg("prune old profile pictures")
		}
	}

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrProfileNotFound
		}
		return nil, "", fmt.Errorf("update user: %w", err)
	}

	s.log.Info().Str("email", user.Email).Str("path", saved).Msg("profile picture replaced")
	pub := user.Public()
	return &pub, saved, nil
}
