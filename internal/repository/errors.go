package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate señala una violación de unicidad (SQLSTATE 23505).
// Es la única coordinación de concurrencia: el constraint de la base
// decide quién gana y el perdedor recibe este error.
var ErrDuplicate = errors.New("duplicate row")

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
