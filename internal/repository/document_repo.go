package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"doc-catalog/internal/domain"
)

// DocumentRepository define el contrato de persistencia para documentos.
type DocumentRepository interface {
	Create(ctx context.Context, doc domain.Document) error
	Update(ctx context.Context, doc domain.Document) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (domain.Document, error)
	GetAll(ctx context.Context) ([]domain.Document, error)
	Search(ctx context.Context, term string) ([]domain.Document, error)
	TitleExists(ctx context.Context, title, excludeID string) (bool, error)
}

// PgDocumentRepository implementa DocumentRepository usando pgxpool.
type PgDocumentRepository struct {
	pool *pgxpool.Pool
}

func NewPgDocumentRepository(pool *pgxpool.Pool) *PgDocumentRepository {
	return &PgDocumentRepository{pool: pool}
}

const documentSelect = `
	SELECT d.id, COALESCE(d.title, ''), COALESCE(d.summary, ''), d.keywords,
		COALESCE(d.file_url, ''), COALESCE(d.file_type, ''), COALESCE(d.theme, ''),
		d.publication_date, d.created_at, d.updated_at,
		a.id, COALESCE(a.name, ''), COALESCE(a.email, ''), COALESCE(a.bio, ''),
		COALESCE(a.specialization, ''), a.created_at, a.updated_at
	FROM documents d
	LEFT JOIN authors a ON a.id = d.author_id
`

func (r *PgDocumentRepository) Create(ctx context.Context, doc domain.Document) error {
	const query = `
		INSERT INTO documents (id, title, summary, keywords, file_url, file_type,
			theme, author_id, publication_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		doc.ID,
		doc.Title,
		doc.Summary,
		doc.Keywords,
		doc.FileURL,
		doc.FileType,
		doc.Theme,
		authorID(doc.Author),
		doc.PublicationDate,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return mapUniqueViolation(err)
}

func (r *PgDocumentRepository) Update(ctx context.Context, doc domain.Document) error {
	const query = `
		UPDATE documents
		SET title = $2, summary = $3, keywords = $4, file_url = $5, file_type = $6,
			theme = $7, author_id = $8, publication_date = $9, updated_at = $10
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		doc.ID,
		doc.Title,
		doc.Summary,
		doc.Keywords,
		doc.FileURL,
		doc.FileType,
		doc.Theme,
		authorID(doc.Author),
		doc.PublicationDate,
		doc.UpdatedAt,
	)
	return mapUniqueViolation(err)
}

func (r *PgDocumentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM documents WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgDocumentRepository) GetByID(ctx context.Context, id string) (domain.Document, error) {
	const query = documentSelect + ` WHERE d.id = $1`
	return r.scanDocument(r.pool.QueryRow(ctx, query, id))
}

func (r *PgDocumentRepository) GetAll(ctx context.Context) ([]domain.Document, error) {
	const query = documentSelect + ` ORDER BY d.created_at`
	return r.queryDocuments(ctx, query)
}

func (r *PgDocumentRepository) Search(ctx context.Context, term string) ([]domain.Document, error) {
	const query = documentSelect + `
		WHERE d.title ILIKE '%' || $1 || '%'
		   OR d.summary ILIKE '%' || $1 || '%'
		   OR d.theme ILIKE '%' || $1 || '%'
		   OR a.name ILIKE '%' || $1 || '%'
		   OR EXISTS (
				SELECT 1 FROM unnest(d.keywords) AS k
				WHERE k ILIKE '%' || $1 || '%'
		   )
		ORDER BY d.created_at
	`
	return r.queryDocuments(ctx, query, term)
}

func (r *PgDocumentRepository) TitleExists(ctx context.Context, title, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM documents WHERE title = $1 AND id <> $2)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, title, excludeID).Scan(&exists)
	return exists, err
}

func (r *PgDocumentRepository) queryDocuments(ctx context.Context, query string, args ...any) ([]domain.Document, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		d, err := r.scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *PgDocumentRepository) scanDocument(row pgx.Row) (domain.Document, error) {
	var (
		d domain.Document

		aID, aName, aEmail, aBio, aSpec *string
		aCreated, aUpdated              *time.Time
	)
	err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Summary,
		&d.Keywords,
		&d.FileURL,
		&d.FileType,
		&d.Theme,
		&d.PublicationDate,
		&d.CreatedAt,
		&d.UpdatedAt,
		&aID,
		&aName,
		&aEmail,
		&aBio,
		&aSpec,
		&aCreated,
		&aUpdated,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Document{}, err
	}
	if err != nil {
		return domain.Document{}, err
	}
	if aID != nil {
		d.Author = &domain.Author{
			ID:             *aID,
			Name:           deref(aName),
			Email:          deref(aEmail),
			Bio:            deref(aBio),
			Specialization: deref(aSpec),
		}
		if aCreated != nil {
			d.Author.CreatedAt = *aCreated
		}
		if aUpdated != nil {
			d.Author.UpdatedAt = *aUpdated
		}
	}
	return d, nil
}

func authorID(a *domain.Author) *string {
	if a == nil {
		return nil
	}
	return &a.ID
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
