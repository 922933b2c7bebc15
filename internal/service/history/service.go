// Package history records the human-readable audit trail of task changes.
package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

// MaxEntryText bounds the length of a single history line.
const MaxEntryText = 2000

type historyRepo interface {
	Create(ctx context.Context, entry domain.HistoryEntry) error
}

// Logger appends task history entries.
type Logger struct {
	history historyRepo
	now     func() time.Time
	log     *slog.Logger
}

// NewLogger creates a new history Logger.
func NewLogger(log *slog.Logger, history historyRepo) *Logger {
	return &Logger{
		history: history,
		now:     func() time.Time { return time.Now().UTC() },
		log:     log.With("service", "history"),
	}
}
