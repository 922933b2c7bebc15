package postgres

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

// SQLSTATE codes translated into domain errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

var sqlStateErrors = map[string]error{
	codeUniqueViolation:     domain.ErrConflict,
	codeForeignKeyViolation: domain.ErrNotFound,
	codeCheckViolation:      domain.ErrValidation,
}

// MapError wraps err with the entity and id, translating no-rows and
// constraint violations into domain sentinels. Context cancellation and
// any other driver error are wrapped unchanged.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if sentinel, ok := sqlStateErrors[pgErr.Code]; ok {
			if pgErr.ConstraintName != "" {
				return fmt.Errorf("%s %s: constraint %s: %w", entity, id, pgErr.ConstraintName, sentinel)
			}
			return fmt.Errorf("%s %s: %w", entity, id, sentinel)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
