// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/taskscope-backend/internal/adapter/postgres"
	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

var userColumns = []string{
	"id", "email", "name", "role", "department_id", "additional_roles", "created_at",
}

type userRow struct {
	ID              uuid.UUID  `db:"id"`
	Email           string     `db:"email"`
	Name            string     `db:"name"`
	Role            string     `db:"role"`
	DepartmentID    *uuid.UUID `db:"department_id"`
	AdditionalRoles []byte     `db:"additional_roles"`
	CreatedAt       time.Time  `db:"created_at"`
}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns a non-deleted user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query, args, err := postgres.Builder.
		Select(userColumns...).
		From("users").
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return toDomainUser(row)
}

// ExistingIDs returns the subset of ids that name non-deleted users.
func (r *Repo) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return []uuid.UUID{}, nil
	}

	query, args, err := postgres.Builder.
		Select("id").
		From("users").
		Where(squirrel.Eq{"id": ids}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build existing users query: %w", err)
	}

	var found []uuid.UUID
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &found, query, args...); err != nil {
		return nil, fmt.Errorf("select existing users: %w", err)
	}
	return found, nil
}

// PromoteToAdmin sets the ADMIN base role on the non-deleted user with the
// given email. It reports false when no row changed.
func (r *Repo) PromoteToAdmin(ctx context.Context, email string) (bool, error) {
	query, args, err := postgres.Builder.
		Update("users").
		Set("role", string(domain.RoleAdmin)).
		Where(squirrel.Eq{"email": email}).
		Where(squirrel.NotEq{"role": string(domain.RoleAdmin)}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build promote query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("promote user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// toDomainUser converts a row into a domain.User. Role strings that do not
// name a known role are read as USER; unparsable grant entries are dropped.
func toDomainUser(row userRow) (*domain.User, error) {
	u := &domain.User{
		ID:              row.ID,
		Email:           row.Email,
		Name:            row.Name,
		Role:            domain.NormalizeRole(row.Role),
		DepartmentID:    row.DepartmentID,
		AdditionalRoles: make(map[uuid.UUID]domain.Role),
		CreatedAt:       row.CreatedAt,
	}

	if len(row.AdditionalRoles) == 0 {
		return u, nil
	}

	raw := make(map[string]string)
	if err := json.Unmarshal(row.AdditionalRoles, &raw); err != nil {
		return nil, fmt.Errorf("user %s unmarshal additional_roles: %w", row.ID, err)
	}
	for unit, role := range raw {
		unitID, err := uuid.Parse(unit)
		if err != nil {
			continue
		}
		if parsed, ok := domain.ParseRole(role); ok {
			u.AdditionalRoles[unitID] = parsed
		}
	}
	return u, nil
}
