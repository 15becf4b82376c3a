package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// MapError translates database errors to domain errors.
// sql.ErrNoRows maps to notFoundErr and a PostgreSQL unique violation maps
// to duplicateErr. Other errors are returned unchanged.
func MapError(err error, notFoundErr, duplicateErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	if pgCode(err) == pgUniqueViolation {
		return duplicateErr
	}

	return err
}

// MapReference translates a PostgreSQL foreign key violation to missingErr,
// for inserts whose parent row does not exist. Other errors pass through MapError.
func MapReference(err error, missingErr, notFoundErr, duplicateErr error) error {
	if pgCode(err) == pgForeignKeyViolation {
		return missingErr
	}
	return MapError(err, notFoundErr, duplicateErr)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// MapConstraint translates a PostgreSQL foreign key violation to the error
// registered for the violated constraint. Unregistered constraints fall back
// to MapReference with missingErr.
func MapConstraint(err error, constraints map[string]error, missingErr, notFoundErr, duplicateErr error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		if mapped, ok := constraints[pgErr.ConstraintName]; ok {
			return mapped
		}
	}
	return MapReference(err, missingErr, notFoundErr, duplicateErr)
}
