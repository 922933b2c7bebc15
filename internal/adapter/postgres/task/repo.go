// Package task implements the Task and TaskAssignee repository using PostgreSQL.
package task

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/taskscope-backend/internal/adapter/postgres"
	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

var taskColumns = []string{
	"id", "project_id", "creator_user_id", "status_id", "name", "description",
	"priority", "difficulty", "due_date", "start_date",
	"is_closed", "close_type", "close_reason", "closed_at", "closed_by",
	"created_at", "updated_at",
}

type taskRow struct {
	ID            uuid.UUID  `db:"id"`
	ProjectID     uuid.UUID  `db:"project_id"`
	CreatorUserID uuid.UUID  `db:"creator_user_id"`
	StatusID      *uuid.UUID `db:"status_id"`
	Name          string     `db:"name"`
	Description   *string    `db:"description"`
	Priority      int        `db:"priority"`
	Difficulty    *int       `db:"difficulty"`
	DueDate       *time.Time `db:"due_date"`
	StartDate     *time.Time `db:"start_date"`
	IsClosed      bool       `db:"is_closed"`
	CloseType     *string    `db:"close_type"`
	CloseReason   *string    `db:"close_reason"`
	ClosedAt      *time.Time `db:"closed_at"`
	ClosedBy      *uuid.UUID `db:"closed_by"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// Repo provides task persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new task repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Tasks
// ---------------------------------------------------------------------------

// GetByID returns a non-deleted task. Soft-deleted tasks are reported as
// domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query, args, err := postgres.Builder.
		Select(taskColumns...).
		From("tasks").
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build task query: %w", err)
	}

	var row taskRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "task", id)
	}

	return toDomainTask(row), nil
}

// UpdateField writes a single allow-listed column.
func (r *Repo) UpdateField(ctx context.Context, id uuid.UUID, field domain.TaskField, value any) error {
	if !field.IsValid() {
		return domain.NewValidationError("field", fmt.Sprintf("%q is not editable", field))
	}
	return r.update(ctx, id, postgres.Builder.
		Update("tasks").
		Set(field.Column(), value).
		Set("updated_at", squirrel.Expr("now()")))
}

// SetStatus moves an open task to another status column. A task closed
// since it was read is reported as domain.ErrTaskClosed.
func (r *Repo) SetStatus(ctx context.Context, id, statusID uuid.UUID) error {
	query, args, err := postgres.Builder.
		Update("tasks").
		Set("status_id", statusID).
		Set("updated_at", squirrel.Expr("now()")).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Where("is_closed = false").
		ToSql()
	if err != nil {
		return fmt.Errorf("build set status query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "task", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, domain.ErrTaskClosed)
	}
	return nil
}

// Close marks an open task closed. A task that is already closed is
// reported as domain.ErrTaskClosed.
func (r *Repo) Close(ctx context.Context, id uuid.UUID, closeType domain.CloseType, reason *string, closedBy uuid.UUID, at time.Time) error {
	query, args, err := postgres.Builder.
		Update("tasks").
		Set("is_closed", true).
		Set("close_type", string(closeType)).
		Set("close_reason", reason).
		Set("closed_at", at).
		Set("closed_by", closedBy).
		Set("updated_at", at).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Where("is_closed = false").
		ToSql()
	if err != nil {
		return fmt.Errorf("build close task query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "task", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, domain.ErrTaskClosed)
	}
	return nil
}

func (r *Repo) update(ctx context.Context, id uuid.UUID, b squirrel.UpdateBuilder) error {
	query, args, err := b.
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("build task update: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "task", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Assignees
// ---------------------------------------------------------------------------

// ListAssigneeIDs returns the users assigned to a task in assignment order.
func (r *Repo) ListAssigneeIDs(ctx context.Context, taskID uuid.UUID) ([]uuid.UUID, error) {
	query, args, err := postgres.Builder.
		Select("user_id").
		From("task_assignees").
		Where("task_id = ?", taskID).
		OrderBy("assigned_at", "user_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build assignees query: %w", err)
	}

	var ids []uuid.UUID
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list assignees of task %s: %w", taskID, err)
	}
	return ids, nil
}

// IsAssignee reports whether userID is assigned to taskID.
func (r *Repo) IsAssignee(ctx context.Context, taskID, userID uuid.UUID) (bool, error) {
	query, args, err := postgres.Builder.
		Select("1").
		Prefix("SELECT EXISTS(").
		From("task_assignees").
		Where("task_id = ?", taskID).
		Where("user_id = ?", userID).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build is-assignee query: %w", err)
	}

	var exists bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check assignee of task %s: %w", taskID, err)
	}
	return exists, nil
}

// ReplaceAssignees deletes every assignee of the task and inserts userIDs,
// stamping each row with assignedBy. An empty userIDs clears the set.
func (r *Repo) ReplaceAssignees(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID, assignedBy uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := postgres.Builder.
		Delete("task_assignees").
		Where("task_id = ?", taskID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete assignees: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "task", taskID)
	}

	if len(userIDs) == 0 {
		return nil
	}

	ins := postgres.Builder.
		Insert("task_assignees").
		Columns("task_id", "user_id", "assigned_by")
	for _, uid := range userIDs {
		ins = ins.Values(taskID, uid, assignedBy)
	}
	query, args, err = ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert assignees: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "task", taskID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func toDomainTask(row taskRow) *domain.Task {
	t := &domain.Task{
		ID:            row.ID,
		ProjectID:     row.ProjectID,
		CreatorUserID: row.CreatorUserID,
		StatusID:      row.StatusID,
		Name:          row.Name,
		Description:   row.Description,
		Priority:      row.Priority,
		Difficulty:    row.Difficulty,
		DueDate:       row.DueDate,
		StartDate:     row.StartDate,
		IsClosed:      row.IsClosed,
		CloseReason:   row.CloseReason,
		ClosedAt:      row.ClosedAt,
		ClosedBy:      row.ClosedBy,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	if row.CloseType != nil {
		ct := domain.CloseType(*row.CloseType)
		t.CloseType = &ct
	}
	return t
}
