// Package checklist implements the ChecklistItem repository using PostgreSQL.
package checklist

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/taskscope-backend/internal/adapter/postgres"
	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

var itemColumns = []string{"id", "task_id", "name", "sort_order", "is_checked", "creator_user_id", "created_at"}

type itemRow struct {
	ID            uuid.UUID `db:"id"`
	TaskID        uuid.UUID `db:"task_id"`
	Name          string    `db:"name"`
	SortOrder     int       `db:"sort_order"`
	IsChecked     bool      `db:"is_checked"`
	CreatorUserID uuid.UUID `db:"creator_user_id"`
	CreatedAt     time.Time `db:"created_at"`
}

// Repo provides checklist item persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new checklist repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns a non-deleted checklist item.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ChecklistItem, error) {
	query, args, err := postgres.Builder.
		Select(itemColumns...).
		From("checklist_items").
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build checklist item query: %w", err)
	}

	var row itemRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "checklist_item", id)
	}
	return toDomainItem(row), nil
}

// SetChecked updates the checked flag of a live item.
func (r *Repo) SetChecked(ctx context.Context, id uuid.UUID, checked bool) error {
	query, args, err := postgres.Builder.
		Update("checklist_items").
		Set("is_checked", checked).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("build checklist update: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "checklist_item", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("checklist_item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// CountByTask returns the number of live items on a task.
func (r *Repo) CountByTask(ctx context.Context, taskID uuid.UUID) (int, error) {
	query, args, err := postgres.Builder.
		Select("count(*)").
		From("checklist_items").
		Where("task_id = ?", taskID).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build checklist count: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count checklist items of task %s: %w", taskID, err)
	}
	return n, nil
}

// Create inserts a new item and returns it as stored.
func (r *Repo) Create(ctx context.Context, item domain.ChecklistItem) (*domain.ChecklistItem, error) {
	query, args, err := postgres.Builder.
		Insert("checklist_items").
		Columns("id", "task_id", "name", "sort_order", "is_checked", "creator_user_id", "created_at").
		Values(item.ID, item.TaskID, item.Name, item.Order, item.IsChecked, item.CreatorUserID, item.CreatedAt).
		Suffix("RETURNING id, task_id, name, sort_order, is_checked, creator_user_id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build checklist insert: %w", err)
	}

	var row itemRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "checklist_item", item.ID)
	}
	return toDomainItem(row), nil
}

func toDomainItem(row itemRow) *domain.ChecklistItem {
	return &domain.ChecklistItem{
		ID:            row.ID,
		TaskID:        row.TaskID,
		Name:          row.Name,
		Order:         row.SortOrder,
		IsChecked:     row.IsChecked,
		CreatorUserID: row.CreatorUserID,
		CreatedAt:     row.CreatedAt,
	}
}
