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

// DocumentService coordina reglas de negocio para documentos.
type DocumentService struct {
	logger    *zap.Logger
	documents repository.DocumentRepository
	authors   *AuthorService
}

var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrDuplicateDocument = errors.New("a document with the same title already exists")
)

func NewDocumentService(logger *zap.Logger, documents repository.DocumentRepository, authors *AuthorService) *DocumentService {
	return &DocumentService{
		logger:    logger,
		documents: documents,
		authors:   authors,
	}
}

func (s *DocumentService) GetAll(ctx context.Context) ([]domain.Document, error) {
	return s.documents.GetAll(ctx)
}

func (s *DocumentService) GetByID(ctx context.Context, id string) (domain.Document, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Document{}, ErrDocumentNotFound
	}
	return doc, err
}

func (s *DocumentService) Search(ctx context.Context, term string) ([]domain.Document, error) {
	return s.documents.Search(ctx, term)
}

type DocumentInput struct {
	Title           string
	Summary         string
	Keywords        []string
	FileURL         string
	FileType        string
	Theme           string
	PublicationDate *time.Time
	Author          *domain.AuthorRef
}

// Create registra un documento, resolviendo la referencia de autor si
// viene una. El título es único en todo el catálogo.
func (s *DocumentService) Create(ctx context.Context, input DocumentInput) (domain.Document, error) {
	exists, err := s.documents.TitleExists(ctx, input.Title, "")
	if err != nil {
		return domain.Document{}, err
	}
	if exists {
		s.logger.Warn("duplicate document title on create", zap.String("title", input.Title))
		return domain.Document{}, ErrDuplicateDocument
	}

	author, err := s.resolveAuthor(ctx, input.Author)
	if err != nil {
		return domain.Document{}, err
	}

	now := time.Now().UTC()
	publicationDate := input.PublicationDate
	if publicationDate == nil {
		publicationDate = &now
	}

	doc := domain.Document{
		ID:              uuid.NewString(),
		Title:           input.Title,
		Summary:         input.Summary,
		Keywords:        input.Keywords,
		FileURL:         input.FileURL,
		FileType:        input.FileType,
		Theme:           input.Theme,
		Author:          author,
		PublicationDate: publicationDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := validateDocumentFields(doc); err != nil {
		return domain.Document{}, err
	}

	if err := s.documents.Create(ctx, doc); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Document{}, ErrDuplicateDocument
		}
		return domain.Document{}, err
	}
	s.logger.Info("document created", zap.String("document_id", doc.ID))
	return doc, nil
}

// Update reemplaza los campos de un documento y re-resuelve la
// referencia de autor; la asociación anterior simplemente se sustituye.
func (s *DocumentService) Update(ctx context.Context, id string, input DocumentInput) (domain.Document, error) {
	existing, err := s.documents.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Document{}, ErrDocumentNotFound
	}
	if err != nil {
		return domain.Document{}, err
	}

	conflict, err := s.documents.TitleExists(ctx, input.Title, id)
	if err != nil {
		return domain.Document{}, err
	}
	if conflict {
		s.logger.Warn("duplicate document title on update", zap.String("title", input.Title))
		return domain.Document{}, ErrDuplicateDocument
	}

	author, err := s.resolveAuthor(ctx, input.Author)
	if err != nil {
		return domain.Document{}, err
	}

	existing.Title = input.Title
	existing.Summary = input.Summary
	existing.Keywords = input.Keywords
	existing.FileURL = input.FileURL
	existing.FileType = input.FileType
	existing.Theme = input.Theme
	existing.Author = author
	if input.PublicationDate != nil {
		existing.PublicationDate = input.PublicationDate
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := validateDocumentFields(existing); err != nil {
		return domain.Document{}, err
	}

	if err := s.documents.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Document{}, ErrDuplicateDocument
		}
		return domain.Document{}, err
	}
	return existing, nil
}

func (s *DocumentService) Delete(ctx context.Context, id string) error {
	err := s.documents.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrDocumentNotFound
	}
	return err
}

func (s *DocumentService) resolveAuthor(ctx context.Context, ref *domain.AuthorRef) (*domain.Author, error) {
	if ref == nil {
		return nil, nil
	}
	author, err := s.authors.Resolve(ctx, *ref)
	if err != nil {
		return nil, err
	}
	return &author, nil
}

func validateDocumentFields(doc domain.Document) error {
	var missing []string
	if strings.TrimSpace(doc.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(doc.Theme) == "" {
		missing = append(missing, "theme")
	}
	if strings.TrimSpace(doc.Summary) == "" {
		missing = append(missing, "summary")
	}
	if strings.TrimSpace(doc.FileType) == "" {
		missing = append(missing, "fileType")
	}
	if strings.TrimSpace(doc.FileURL) == "" {
		missing = append(missing, "fileUrl")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	return nil
}
