package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation código SQLSTATE de violación de constraint único.
const pgUniqueViolation = "23505"

// isUniqueViolation detecta choques de unicidad para que los repositorios los
// traduzcan a domain.ErrDuplicate.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), pgUniqueViolation)
}
