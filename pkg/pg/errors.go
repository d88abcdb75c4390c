package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEmptyConnectionString = errors.New("pg: empty connection string, set PG_CONN_URL")
	ErrInvalidConfig         = errors.New("pg: failed to parse connection config")
	ErrConnectionFailed      = errors.New("pg: failed to open connection")
	ErrHealthcheckFailed     = errors.New("pg: healthcheck failed")
	ErrMigrationFailed       = errors.New("pg: failed to apply migrations")
	ErrMigrationsDirMissing  = errors.New("pg: migrations directory not found")
)

// IsNotFound detects pgx.ErrNoRows for consistent miss handling.
func IsNotFound(err error) bool {
	return err != nil && errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicateKey detects unique constraint violations (SQLSTATE 23505),
// e.g. a tenant slug that is already taken.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolation detects referential integrity violations
// (SQLSTATE 23503), e.g. a row referencing a tenant that does not exist.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
