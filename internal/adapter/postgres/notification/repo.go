// Package notification implements the in-app notification repository.
package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/taskscope-backend/internal/adapter/postgres"
	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new notification repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// CreateMany inserts all notifications with a single multi-row INSERT.
func (r *Repo) CreateMany(ctx context.Context, items []domain.Notification) error {
	if len(items) == 0 {
		return nil
	}

	ins := postgres.Builder.
		Insert("notifications").
		Columns("id", "recipient_user_id", "triggered_by_user_id", "type", "message", "task_id", "is_read", "created_at")
	for _, n := range items {
		ins = ins.Values(n.ID, n.RecipientUserID, n.TriggeredByUserID, string(n.Type), n.Message, n.TaskID, n.IsRead, n.CreatedAt)
	}

	query, args, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("build notifications insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "notification", uuid.Nil)
	}
	return nil
}
