// Package status implements read access to project status columns.
package status

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/taskscope-backend/internal/adapter/postgres"
	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

type statusRow struct {
	ID        uuid.UUID `db:"id"`
	ProjectID uuid.UUID `db:"project_id"`
	Name      string    `db:"name"`
	SortOrder int       `db:"sort_order"`
	Type      string    `db:"type"`
}

// Repo provides status reads backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new status repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns a non-deleted status.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Status, error) {
	query, args, err := postgres.Builder.
		Select("id", "project_id", "name", "sort_order", "type").
		From("statuses").
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build status query: %w", err)
	}

	var row statusRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "status", id)
	}

	return &domain.Status{
		ID:        row.ID,
		ProjectID: row.ProjectID,
		Name:      row.Name,
		Order:     row.SortOrder,
		Type:      domain.StatusType(row.Type),
	}, nil
}
