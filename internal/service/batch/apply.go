package batch

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
	"github.com/heartmarshall/taskscope-backend/internal/service/notify"
)

func (r *run) updateField(ctx context.Context, op UpdateField) (any, error) {
	task, err := r.loadTask(ctx, op.TaskID)
	if err != nil {
		return nil, err
	}
	if err := r.authorizeEdit(ctx, task.ID); err != nil {
		return nil, err
	}

	value, err := normalizeValue(op.Field, op.Value)
	if err != nil {
		return nil, err
	}
	old := currentValue(task, op.Field)

	if err := r.p.tasks.UpdateField(ctx, task.ID, op.Field, value); err != nil {
		return nil, fmt.Errorf("update %s: %w", op.Field, err)
	}
	text := fmt.Sprintf("%s changed %s→%s", op.Field, formatValue(old), formatValue(value))
	if err := r.record(ctx, task.ID, text); err != nil {
		return nil, err
	}

	return r.reload(ctx, task.ID)
}

func (r *run) updateStatus(ctx context.Context, op UpdateStatus) (any, error) {
	task, err := r.loadTask(ctx, op.TaskID)
	if err != nil {
		return nil, err
	}
	if err := r.authorizeEdit(ctx, task.ID); err != nil {
		return nil, err
	}
	if task.IsClosed {
		return nil, fmt.Errorf("task %s: %w", task.ID, domain.ErrTaskClosed)
	}

	status, err := r.p.statuses.GetByID(ctx, op.StatusID)
	if err != nil {
		return nil, notFound("status", err)
	}
	if r.p.cfg.EnforceStatusProject && status.ProjectID != task.ProjectID {
		return nil, domain.NewValidationError("statusId", "status belongs to another project")
	}

	if err := r.p.tasks.SetStatus(ctx, task.ID, status.ID); err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}
	if err := r.record(ctx, task.ID, "status changed to "+status.Name); err != nil {
		return nil, err
	}

	return r.reload(ctx, task.ID)
}

func (r *run) updateAssignees(ctx context.Context, op UpdateAssignees) (any, error) {
	task, err := r.loadTask(ctx, op.TaskID)
	if err != nil {
		return nil, err
	}
	if err := r.authorizeEdit(ctx, task.ID); err != nil {
		return nil, err
	}

	ids := dedupe(op.AssigneeUserIDs)
	if len(ids) > 0 {
		existing, err := r.p.users.ExistingIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("check assignees: %w", err)
		}
		if missing, ok := firstMissing(ids, existing); ok {
			return nil, notFound("assignee", fmt.Errorf("user %s: %w", missing, domain.ErrNotFound))
		}
	}

	if err := r.p.tasks.ReplaceAssignees(ctx, task.ID, ids, r.actor); err != nil {
		return nil, fmt.Errorf("replace assignees: %w", err)
	}

	text := "assignees cleared"
	if len(ids) > 0 {
		text = fmt.Sprintf("assignees set to %d user(s)", len(ids))
	}
	if err := r.record(ctx, task.ID, text); err != nil {
		return nil, err
	}

	r.dispatch(ctx, notify.Notice{
		Type:       domain.NotificationTaskAssigned,
		TaskID:     task.ID,
		Recipients: ids,
		Message:    fmt.Sprintf("You were assigned to task %q", task.Name),
	})

	return AssigneesData{TaskID: task.ID, AssigneeUserIDs: ids}, nil
}

func (r *run) toggleChecklistItem(ctx context.Context, op ToggleChecklistItem) (any, error) {
	item, err := r.p.checklist.GetByID(ctx, op.ItemID)
	if err != nil {
		return nil, notFound("checklist item", err)
	}
	task, err := r.loadTask(ctx, item.TaskID)
	if err != nil {
		return nil, err
	}
	if err := r.authorizeEdit(ctx, task.ID); err != nil {
		return nil, err
	}

	if err := r.p.checklist.SetChecked(ctx, item.ID, op.IsChecked); err != nil {
		return nil, fmt.Errorf("set checked: %w", err)
	}
	verb := "unchecked"
	if op.IsChecked {
		verb = "checked"
	}
	if err := r.record(ctx, task.ID, verb+" "+item.Name); err != nil {
		return nil, err
	}

	item.IsChecked = op.IsChecked
	return item, nil
}

func (r *run) addChecklistItem(ctx context.Context, op AddChecklistItem) (any, error) {
	task, err := r.loadTask(ctx, op.TaskID)
	if err != nil {
		return nil, err
	}
	if err := r.authorizeEdit(ctx, task.ID); err != nil {
		return nil, err
	}

	var order int
	if op.Order != nil {
		order = *op.Order
	} else {
		n, err := r.p.checklist.CountByTask(ctx, task.ID)
		if err != nil {
			return nil, fmt.Errorf("count checklist items: %w", err)
		}
		order = n + 1
	}

	name := strings.TrimSpace(op.Name)
	item, err := r.p.checklist.Create(ctx, domain.ChecklistItem{
		ID:            uuid.New(),
		TaskID:        task.ID,
		Name:          name,
		Order:         order,
		CreatorUserID: r.actor,
		CreatedAt:     r.p.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create checklist item: %w", err)
	}
	if err := r.record(ctx, task.ID, "added checklist item "+name); err != nil {
		return nil, err
	}

	return item, nil
}

func (r *run) closeTask(ctx context.Context, op CloseTask) (any, error) {
	task, err := r.loadTask(ctx, op.TaskID)
	if err != nil {
		return nil, err
	}
	if err := r.authorize(ctx, task.ID, domain.PermCloseTasks, domain.PermCloseOwnTasks); err != nil {
		return nil, err
	}
	if task.IsClosed {
		return nil, fmt.Errorf("task %s: %w", task.ID, domain.ErrTaskClosed)
	}

	var reason *string
	if op.Reason != nil {
		if s := strings.TrimSpace(*op.Reason); s != "" {
			reason = &s
		}
	}
	if err := r.p.tasks.Close(ctx, task.ID, op.CloseType, reason, r.actor, r.p.now()); err != nil {
		return nil, fmt.Errorf("close task: %w", err)
	}

	text := "task closed as " + strings.ToLower(op.CloseType.String())
	if reason != nil {
		text += ": " + truncate(*reason, maxAuditReason)
	}
	if err := r.record(ctx, task.ID, text); err != nil {
		return nil, err
	}

	assignees, err := r.p.tasks.ListAssigneeIDs(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("list assignees: %w", err)
	}
	r.dispatch(ctx, notify.Notice{
		Type:       domain.NotificationTaskClosed,
		TaskID:     task.ID,
		Recipients: append(assignees, task.CreatorUserID),
		Message:    fmt.Sprintf("Task %q was closed", task.Name),
	})

	return r.reload(ctx, task.ID)
}

func (r *run) reload(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := r.p.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload task: %w", err)
	}
	return task, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func firstMissing(want, have []uuid.UUID) (uuid.UUID, bool) {
	found := make(map[uuid.UUID]struct{}, len(have))
	for _, id := range have {
		found[id] = struct{}{}
	}
	for _, id := range want {
		if _, ok := found[id]; !ok {
			return id, true
		}
	}
	return uuid.Nil, false
}
