package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"doc-catalog/internal/domain"
	"doc-catalog/internal/repository"
)

// AuthorService coordina reglas de negocio para autores, incluida la
// reconciliación de referencias parciales durante la gestión de documentos.
type AuthorService struct {
	logger  *zap.Logger
	authors repository.AuthorRepository
}

var (
	ErrAuthorNotFound  = errors.New("author not found")
	ErrDuplicateAuthor = errors.New("an author with the same email already exists")
	ErrMissingFields   = errors.New("missing required fields")
)

func NewAuthorService(logger *zap.Logger, authors repository.AuthorRepository) *AuthorService {
	return &AuthorService{logger: logger, authors: authors}
}

func (s *AuthorService) GetAll(ctx context.Context) ([]domain.Author, error) {
	return s.authors.GetAll(ctx)
}

func (s *AuthorService) GetByID(ctx context.Context, id string) (domain.Author, error) {
	author, err := s.authors.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Author{}, ErrAuthorNotFound
	}
	return author, err
}

func (s *AuthorService) GetByEmail(ctx context.Context, email string) (domain.Author, error) {
	author, err := s.authors.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Author{}, ErrAuthorNotFound
	}
	return author, err
}

func (s *AuthorService) GetByName(ctx context.Context, name string) (domain.Author, error) {
	author, err := s.authors.GetByName(ctx, name)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Author{}, ErrAuthorNotFound
	}
	return author, err
}

func (s *AuthorService) Search(ctx context.Context, term string) ([]domain.Author, error) {
	return s.authors.Search(ctx, term)
}

type AuthorInput struct {
	Name           string
	Email          string
	Bio            string
	Specialization string
}

// Create registra un autor nuevo con todos los campos obligatorios.
func (s *AuthorService) Create(ctx context.Context, input AuthorInput) (domain.Author, error) {
	if err := validateAuthorFields(input); err != nil {
		return domain.Author{}, err
	}

	exists, err := s.authors.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return domain.Author{}, err
	}
	if exists {
		s.logger.Warn("duplicate author email on create", zap.String("email", input.Email))
		return domain.Author{}, ErrDuplicateAuthor
	}

	now := time.Now().UTC()
	author := domain.Author{
		ID:             uuid.NewString(),
		Name:           input.Name,
		Email:          input.Email,
		Bio:            input.Bio,
		Specialization: input.Specialization,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.authors.Create(ctx, author); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Author{}, ErrDuplicateAuthor
		}
		return domain.Author{}, err
	}
	s.logger.Info("author created", zap.String("author_id", author.ID))
	return author, nil
}

// Update reemplaza los campos de un autor existente.
func (s *AuthorService) Update(ctx context.Context, id string, input AuthorInput) (domain.Author, error) {
	if err := validateAuthorFields(input); err != nil {
		return domain.Author{}, err
	}

	existing, err := s.authors.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Author{}, ErrAuthorNotFound
	}
	if err != nil {
		return domain.Author{}, err
	}

	if existing.Email != input.Email {
		exists, err := s.authors.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return domain.Author{}, err
		}
		if exists {
			return domain.Author{}, ErrDuplicateAuthor
		}
	}

	existing.Name = input.Name
	existing.Email = input.Email
	existing.Bio = input.Bio
	existing.Specialization = input.Specialization
	existing.UpdatedAt = time.Now().UTC()

	if err := s.authors.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Author{}, ErrDuplicateAuthor
		}
		return domain.Author{}, err
	}
	return existing, nil
}

func (s *AuthorService) Delete(ctx context.Context, id string) error {
	err := s.authors.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrAuthorNotFound
	}
	return err
}

// Resolve convierte una referencia parcial en un autor persistido.
// Con id, el autor debe existir. Con email, un match existente se
// reutiliza tal cual (los demás campos de la referencia se descartan);
// sin match se crea desde la referencia. Sin id ni email se crea
// siempre, aunque ya exista un autor con ese nombre.
func (s *AuthorService) Resolve(ctx context.Context, ref domain.AuthorRef) (domain.Author, error) {
	if ref.ID != "" {
		author, err := s.authors.GetByID(ctx, ref.ID)
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("author reference not found", zap.String("author_id", ref.ID))
			return domain.Author{}, ErrAuthorNotFound
		}
		return author, err
	}

	if strings.TrimSpace(ref.Email) != "" {
		author, err := s.authors.GetByEmail(ctx, ref.Email)
		if err == nil {
			return author, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return domain.Author{}, err
		}
	}

	return s.createFromRef(ctx, ref)
}

func (s *AuthorService) createFromRef(ctx context.Context, ref domain.AuthorRef) (domain.Author, error) {
	now := time.Now().UTC()
	author := domain.Author{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(ref.Name),
		Email:          strings.TrimSpace(ref.Email),
		Bio:            ref.Bio,
		Specialization: ref.Specialization,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.authors.Create(ctx, author); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Author{}, ErrDuplicateAuthor
		}
		return domain.Author{}, err
	}
	return author, nil
}

func validateAuthorFields(input AuthorInput) error {
	var missing []string
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(input.Bio) == "" {
		missing = append(missing, "bio")
	}
	if strings.TrimSpace(input.Specialization) == "" {
		missing = append(missing, "specialization")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	return nil
}
