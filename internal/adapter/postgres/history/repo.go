// Package history implements the append-only task history repository.
package history

import (
	"context"
	"fmt"

	postgres "github.com/heartmarshall/taskscope-backend/internal/adapter/postgres"
	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

// Repo provides task history persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new history repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create appends a history entry.
func (r *Repo) Create(ctx context.Context, entry domain.HistoryEntry) error {
	query, args, err := postgres.Builder.
		Insert("task_history").
		Columns("id", "task_id", "user_id", "text", "created_at").
		Values(entry.ID, entry.TaskID, entry.UserID, entry.Text, entry.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build history insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "task_history", entry.ID)
	}
	return nil
}
