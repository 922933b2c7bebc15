package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

// Notice describes one task event and who should hear about it.
type Notice struct {
	Type       domain.NotificationType
	TaskID     uuid.UUID
	ActorID    uuid.UUID
	Recipients []uuid.UUID
	Message    string
}

// Recipients drops the actor, nil ids and duplicates while keeping the
// first-seen order.
func Recipients(actorID uuid.UUID, ids ...uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || id == actorID {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Dispatch stores one notification per recipient in a single insert. An
// empty recipient set is a no-op.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notice) ([]domain.Notification, error) {
	if !n.Type.IsValid() {
		return nil, domain.NewValidationError("type", "invalid notification type")
	}

	recipients := Recipients(n.ActorID, n.Recipients...)
	if len(recipients) == 0 {
		return nil, nil
	}

	now := d.now()
	actor := n.ActorID
	taskID := n.TaskID
	items := make([]domain.Notification, 0, len(recipients))
	for _, r := range recipients {
		item := domain.Notification{
			ID:              uuid.New(),
			RecipientUserID: r,
			Type:            n.Type,
			Message:         n.Message,
			CreatedAt:       now,
		}
		if actor != uuid.Nil {
			item.TriggeredByUserID = &actor
		}
		if taskID != uuid.Nil {
			item.TaskID = &taskID
		}
		items = append(items, item)
	}

	if err := d.notifications.CreateMany(ctx, items); err != nil {
		return nil, fmt.Errorf("create notifications: %w", err)
	}

	d.log.DebugContext(ctx, "notifications dispatched",
		slog.String("type", n.Type.String()),
		slog.String("task_id", taskID.String()),
		slog.Int("recipients", len(items)),
	)
	return items, nil
}
