package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
	"github.com/heartmarshall/taskscope-backend/internal/service/history"
	"github.com/heartmarshall/taskscope-backend/internal/service/notify"
	"github.com/heartmarshall/taskscope-backend/internal/service/permission"
	"github.com/heartmarshall/taskscope-backend/internal/service/scope"
)

// Operation outcomes as reported to metrics.
const (
	outcomeSuccess  = "success"
	outcomeDenied   = "denied"
	outcomeNotFound = "not_found"
	outcomeInvalid  = "invalid"
	outcomeConflict = "conflict"
	outcomeError    = "error"
)

// ProcessBatch validates ops and applies them in submission order inside
// one transaction. Each operation runs in its own savepoint: a failing
// operation leaves no writes behind and does not stop the batch. Only
// shape validation and transaction-level failures are returned as errors.
func (p *Processor) ProcessBatch(ctx context.Context, userID uuid.UUID, ops []Operation) (*Result, error) {
	if err := Validate(ops, p.cfg.MaxOperations); err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([]OperationResult, len(ops))
	var committed []domain.Notification

	err := p.tx.RunInTx(ctx, func(ctx context.Context) error {
		subject, err := p.perms.Subject(ctx, userID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("resolve subject: %w", err)
		}
		if subject == nil {
			p.log.WarnContext(ctx, "batch from unknown user", slog.String("user_id", userID.String()))
		}

		committed = committed[:0]
		for i, op := range ops {
			r := &run{p: p, subject: subject, actor: userID}
			var data any
			opErr := p.tx.RunInSavepoint(ctx, func(ctx context.Context) error {
				var err error
				data, err = r.apply(ctx, op)
				return err
			})
			results[i] = p.result(ctx, i, op, data, opErr)
			if opErr == nil {
				committed = append(committed, r.notifications...)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch transaction: %w", err)
	}

	p.metrics.ObserveBatch(len(ops), time.Since(start))
	p.publish(ctx, committed)

	res := newResult(results)
	p.log.InfoContext(ctx, "batch processed",
		slog.String("user_id", userID.String()),
		slog.Int("total", res.Summary.Total),
		slog.Int("successful", res.Summary.Successful),
		slog.Int("failed", res.Summary.Failed),
	)
	return res, nil
}

func (p *Processor) result(ctx context.Context, i int, op Operation, data any, err error) OperationResult {
	r := OperationResult{Index: i, Operation: op.Kind()}
	if err == nil {
		r.Success = true
		r.Data = data
		p.metrics.ObserveOperation(op.Kind().String(), outcomeSuccess)
		return r
	}

	msg, outcome := describeFailure(err)
	r.Error = msg
	p.metrics.ObserveOperation(op.Kind().String(), outcome)

	if outcome == outcomeError {
		p.log.ErrorContext(ctx, "batch operation failed",
			slog.Int("index", i),
			slog.String("operation", op.Kind().String()),
			slog.String("error", err.Error()),
		)
	} else {
		p.log.DebugContext(ctx, "batch operation rejected",
			slog.Int("index", i),
			slog.String("operation", op.Kind().String()),
			slog.String("reason", msg),
		)
	}
	return r
}

// publish hands committed notifications to the publisher. Failures only
// cost live delivery; the rows are already stored.
func (p *Processor) publish(ctx context.Context, items []domain.Notification) {
	if p.publisher == nil || len(items) == 0 {
		return
	}
	if err := p.publisher.Publish(ctx, items); err != nil {
		p.log.WarnContext(ctx, "publish notifications",
			slog.Int("count", len(items)),
			slog.String("error", err.Error()),
		)
	}
}

// opError carries a caller-safe message for an expected failure.
type opError struct {
	msg string
	err error
}

func (e *opError) Error() string { return e.msg + ": " + e.err.Error() }
func (e *opError) Unwrap() error { return e.err }

func notFound(entity string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return &opError{msg: entity + " not found", err: err}
	}
	return fmt.Errorf("load %s: %w", entity, err)
}

func describeFailure(err error) (string, string) {
	var oe *opError
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &oe):
		if errors.Is(err, domain.ErrNotFound) {
			return oe.msg, outcomeNotFound
		}
		return oe.msg, outcomeInvalid
	case errors.Is(err, domain.ErrForbidden):
		return "permission denied", outcomeDenied
	case errors.As(err, &ve):
		return validationMessage(ve), outcomeInvalid
	case errors.Is(err, domain.ErrTaskClosed):
		return "task is closed", outcomeConflict
	case errors.Is(err, domain.ErrConflict):
		return "conflict", outcomeConflict
	case errors.Is(err, domain.ErrNotFound):
		return "not found", outcomeNotFound
	default:
		return "internal error", outcomeError
	}
}

func validationMessage(ve *domain.ValidationError) string {
	parts := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// run is the state of one operation: who acts and which notifications the
// operation produced.
type run struct {
	p             *Processor
	subject       *scope.Snapshot
	actor         uuid.UUID
	notifications []domain.Notification
}

func (r *run) apply(ctx context.Context, op Operation) (any, error) {
	switch op := op.(type) {
	case UpdateField:
		return r.updateField(ctx, op)
	case UpdateStatus:
		return r.updateStatus(ctx, op)
	case UpdateAssignees:
		return r.updateAssignees(ctx, op)
	case ToggleChecklistItem:
		return r.toggleChecklistItem(ctx, op)
	case AddChecklistItem:
		return r.addChecklistItem(ctx, op)
	case CloseTask:
		return r.closeTask(ctx, op)
	default:
		return nil, fmt.Errorf("unsupported operation %T", op)
	}
}

func (r *run) loadTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := r.p.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("task", err)
	}
	return task, nil
}

// authorize passes if the actor holds one of the task keys for the task.
func (r *run) authorize(ctx context.Context, taskID uuid.UUID, key, ownKey domain.Permission) error {
	if r.subject == nil {
		return domain.ErrForbidden
	}
	pctx := permission.TaskContext(taskID)
	for _, k := range taskKeys(r.subject.User, key, ownKey) {
		ok, err := r.p.perms.Check(ctx, r.subject, k, pctx)
		if err != nil {
			return fmt.Errorf("check %s: %w", k, err)
		}
		if ok {
			return nil
		}
	}
	return domain.ErrForbidden
}

// taskKeys picks the keys tried for a task mutation. HEAD and above act
// through key alone. MEMBER and USER act through ownKey, and also through
// key when a unit grant raises them to HEAD or above.
func taskKeys(u *domain.User, key, ownKey domain.Permission) []domain.Permission {
	if u.Role.Rank() >= domain.RoleHead.Rank() {
		return []domain.Permission{key}
	}
	for _, granted := range u.AdditionalRoles {
		if granted.Rank() >= domain.RoleHead.Rank() {
			return []domain.Permission{key, ownKey}
		}
	}
	return []domain.Permission{ownKey}
}

func (r *run) authorizeEdit(ctx context.Context, taskID uuid.UUID) error {
	return r.authorize(ctx, taskID, domain.PermEditTasks, domain.PermEditOwnTasks)
}

func (r *run) record(ctx context.Context, taskID uuid.UUID, text string) error {
	if _, err := r.p.audit.Append(ctx, history.AppendInput{TaskID: taskID, UserID: r.actor, Text: text}); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// dispatch stores notifications in a nested savepoint. A failure is logged
// and leaves the operation intact.
func (r *run) dispatch(ctx context.Context, n notify.Notice) {
	n.ActorID = r.actor
	var items []domain.Notification
	err := r.p.tx.RunInSavepoint(ctx, func(ctx context.Context) error {
		var err error
		items, err = r.p.notify.Dispatch(ctx, n)
		return err
	})
	if err != nil {
		r.p.log.WarnContext(ctx, "dispatch notifications",
			slog.String("type", n.Type.String()),
			slog.String("task_id", n.TaskID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	r.notifications = append(r.notifications, items...)
}
