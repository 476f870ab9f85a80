package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation is the SQLSTATE Postgres reports for unique index hits.
const pgUniqueViolation = "23505"

// isDuplicateError reports whether err is a unique constraint violation.
// GORM's TranslateError maps these to ErrDuplicatedKey; the pgconn check
// covers raw SQL paths that bypass the translator.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
