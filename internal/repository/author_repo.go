package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"doc-catalog/internal/domain"
)

// AuthorRepository define el contrato de persistencia para autores.
type AuthorRepository interface {
	Create(ctx context.Context, author domain.Author) error
	Update(ctx context.Context, author domain.Author) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (domain.Author, error)
	GetByEmail(ctx context.Context, email string) (domain.Author, error)
	GetByName(ctx context.Context, name string) (domain.Author, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetAll(ctx context.Context) ([]domain.Author, error)
	Search(ctx context.Context, term string) ([]domain.Author, error)
}

// PgAuthorRepository implementa AuthorRepository usando pgxpool.
type PgAuthorRepository struct {
	pool *pgxpool.Pool
}

func NewPgAuthorRepository(pool *pgxpool.Pool) *PgAuthorRepository {
	return &PgAuthorRepository{pool: pool}
}

const authorColumns = `
	id, COALESCE(name, ''), COALESCE(email, ''), COALESCE(bio, ''),
	COALESCE(specialization, ''), created_at, updated_at
`

func (r *PgAuthorRepository) Create(ctx context.Context, author domain.Author) error {
	// email vacío se guarda como NULL: el unique constraint solo
	// aplica a emails reales.
	const query = `
		INSERT INTO authors (id, name, email, bio, specialization, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		author.ID,
		author.Name,
		author.Email,
		author.Bio,
		author.Specialization,
		author.CreatedAt,
		author.UpdatedAt,
	)
	return mapUniqueViolation(err)
}

func (r *PgAuthorRepository) Update(ctx context.Context, author domain.Author) error {
	const query = `
		UPDATE authors
		SET name = NULLIF($2, ''), email = NULLIF($3, ''), bio = NULLIF($4, ''),
			specialization = NULLIF($5, ''), updated_at = $6
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		author.ID,
		author.Name,
		author.Email,
		author.Bio,
		author.Specialization,
		author.UpdatedAt,
	)
	return mapUniqueViolation(err)
}

func (r *PgAuthorRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM authors WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgAuthorRepository) GetByID(ctx context.Context, id string) (domain.Author, error) {
	const query = `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`
	return r.scanAuthor(r.pool.QueryRow(ctx, query, id))
}

func (r *PgAuthorRepository) GetByEmail(ctx context.Context, email string) (domain.Author, error) {
	const query = `SELECT ` + authorColumns + ` FROM authors WHERE email = $1`
	return r.scanAuthor(r.pool.QueryRow(ctx, query, email))
}

func (r *PgAuthorRepository) GetByName(ctx context.Context, name string) (domain.Author, error) {
	const query = `SELECT ` + authorColumns + ` FROM authors WHERE name = $1`
	return r.scanAuthor(r.pool.QueryRow(ctx, query, name))
}

func (r *PgAuthorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM authors WHERE email = $1)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, email).Scan(&exists)
	return exists, err
}

func (r *PgAuthorRepository) GetAll(ctx context.Context) ([]domain.Author, error) {
	const query = `SELECT ` + authorColumns + ` FROM authors ORDER BY created_at`
	return r.queryAuthors(ctx, query)
}

func (r *PgAuthorRepository) Search(ctx context.Context, term string) ([]domain.Author, error) {
	const query = `
		SELECT ` + authorColumns + `
		FROM authors
		WHERE name ILIKE '%' || $1 || '%'
		   OR email ILIKE '%' || $1 || '%'
		   OR specialization ILIKE '%' || $1 || '%'
		ORDER BY created_at
	`
	return r.queryAuthors(ctx, query, term)
}

func (r *PgAuthorRepository) queryAuthors(ctx context.Context, query string, args ...any) ([]domain.Author, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []domain.Author
	for rows.Next() {
		a, err := r.scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func (r *PgAuthorRepository) scanAuthor(row pgx.Row) (domain.Author, error) {
	var a domain.Author
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.Bio,
		&a.Specialization,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Author{}, err
	}
	return a, err
}
