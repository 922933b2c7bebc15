package history

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

// AppendInput holds the parameters for a history entry.
type AppendInput struct {
	TaskID uuid.UUID
	UserID uuid.UUID
	Text   string
}

// Validate checks all fields and collects all errors.
func (i AppendInput) Validate() error {
	var ve domain.ValidationError
	if i.TaskID == uuid.Nil {
		ve.Add("task_id", "required")
	}
	if i.UserID == uuid.Nil {
		ve.Add("user_id", "required")
	}
	switch text := strings.TrimSpace(i.Text); {
	case text == "":
		ve.Add("text", "required")
	case utf8.RuneCountInString(text) > MaxEntryText:
		ve.Add("text", fmt.Sprintf("max %d characters", MaxEntryText))
	}
	return ve.Err()
}

// Append writes one entry in the caller's transaction. Entries are never
// updated or deleted afterwards.
func (l *Logger) Append(ctx context.Context, input AppendInput) (domain.HistoryEntry, error) {
	if err := input.Validate(); err != nil {
		return domain.HistoryEntry{}, err
	}

	entry := domain.HistoryEntry{
		ID:        uuid.New(),
		TaskID:    input.TaskID,
		UserID:    input.UserID,
		Text:      strings.TrimSpace(input.Text),
		CreatedAt: l.now(),
	}
	if err := l.history.Create(ctx, entry); err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("create history entry: %w", err)
	}

	l.log.DebugContext(ctx, "history appended",
		slog.String("task_id", entry.TaskID.String()),
		slog.String("user_id", entry.UserID.String()),
	)
	return entry, nil
}
