package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"doc-catalog/internal/domain"
)

// UserRepository define el contrato de persistencia para identidades.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	Update(ctx context.Context, user domain.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByProvider(ctx context.Context, provider, providerID string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const userColumns = `
	id, email, name, COALESCE(photo_url, ''), password_hash, is_admin,
	COALESCE(provider, ''), COALESCE(provider_id, ''), created_at, last_login
`

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, email, name, photo_url, password_hash, is_admin,
			provider, provider_id, created_at, last_login)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.PhotoURL,
		user.PasswordHash,
		user.IsAdmin,
		user.Provider,
		user.ProviderID,
		user.CreatedAt,
		user.LastLogin,
	)
	return mapUniqueViolation(err)
}

func (r *PgUserRepository) Update(ctx context.Context, user domain.User) error {
	const query = `
		UPDATE users
		SET email = $2, name = $3, photo_url = NULLIF($4, ''), password_hash = $5,
			is_admin = $6, provider = NULLIF($7, ''), provider_id = NULLIF($8, ''),
			last_login = $9
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.PhotoURL,
		user.PasswordHash,
		user.IsAdmin,
		user.Provider,
		user.ProviderID,
		user.LastLogin,
	)
	return mapUniqueViolation(err)
}

func (r *PgUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	const query = `UPDATE users SET last_login = $2 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, at)
	return err
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *PgUserRepository) GetByProvider(ctx context.Context, provider, providerID string) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE provider = $1 AND provider_id = $2`
	return r.scanUser(r.pool.QueryRow(ctx, query, provider, providerID))
}

func (r *PgUserRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PgUserRepository) scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PhotoURL,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.Provider,
		&u.ProviderID,
		&u.CreatedAt,
		&u.LastLogin,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}
	return u, err
}
