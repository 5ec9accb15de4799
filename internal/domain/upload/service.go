package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	DefaultMaxFileSize = 5 * 1024 * 1024
	UploadsBaseDir     = "./uploads"
	StaticURLBase      = "/uploads"

	profileBaseName = "perfil"
)

// Kind is the top-level upload directory of a record kind.
type Kind string

const (
	KindCompany Kind = "empresas"
	KindUser    Kind = "usuarios"
)

// AllowedMimeTypes lists the image formats accepted as profile pictures.
var AllowedMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// Subject identifies whose image is stored: <kind>/<id>/perfil.<ext>.
type Subject struct {
	Kind Kind
	ID   string
}

func (s Subject) validate() error {
	if s.Kind != KindCompany && s.Kind != KindUser {
		return ErrInvalidSubject
	}
	id := strings.TrimSpace(s.ID)
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) || id != s.ID {
		return ErrInvalidSubject
	}
	return nil
}

// Service keeps exactly one profile image per subject on local disk.
type Service struct {
	baseDir    string
	staticBase string
	maxSize    int64
}

func NewService(baseDir, staticBase string, maxSize int64) *Service {
	if baseDir == "" {
		baseDir = UploadsBaseDir
	}
	if staticBase == "" {
		staticBase = StaticURLBase
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	return &Service{baseDir: baseDir, staticBase: strings.TrimSuffix(staticBase, "/"), maxSize: maxSize}
}

// BaseDir is the directory served under the static URL prefix.
func (s *Service) BaseDir() string { return s.baseDir }

// Save stores fileHeader as perfil.<ext> in the subject's directory and
// returns its public path. Older perfil.* files stay until Prune runs, so a
// record that still points at one never loses its image.
func (s *Service) Save(ctx context.Context, subject Subject, fileHeader *multipart.FileHeader) (string, error) {
	if err := subject.validate(); err != nil {
		return "", err
	}
	if fileHeader == nil || fileHeader.Size == 0 {
		return "", ErrEmptyFile
	}
	if fileHeader.Size > s.maxSize {
		return "", ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to detect file type: %w", err)
	}
	if !mimetype.EqualsAny(mtype.String(), AllowedMimeTypes...) {
		return "", ErrInvalidMimeType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind file: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	absDir := s.dir(subject)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := profileBaseName + mtype.Extension()
	if err := writeFile(absDir, filename, file); err != nil {
		return "", err
	}

	return path.Join(s.staticBase, string(subject.Kind), subject.ID, filename), nil
}

// Prune deletes every perfil.* of subject except the file named by keep,
// a public path returned by Save. An empty keep removes them all.
func (s *Service) Prune(subject Subject, keep string) error {
	if err := subject.validate(); err != nil {
		return err
	}
	keepName := ""
	if keep != "" {
		keepName = path.Base(keep)
	}
	err := removeStale(s.dir(subject), keepName)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Service) dir(subject Subject) string {
	return filepath.Join(s.baseDir, string(subject.Kind), subject.ID)
}

func writeFile(dir, name string, src io.Reader) error {
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

// removeStale deletes every perfil.* in dir except keep.
func removeStale(dir, keep string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to list upload directory: %w", err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == keep {
			continue
		}
		if strings.TrimSuffix(name, filepath.Ext(name)) != profileBaseName {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove previous image: %w", err)
		}
	}
	return nil
}
