// Package notify fans task events out to in-app notifications.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

type notificationRepo interface {
	CreateMany(ctx context.Context, items []domain.Notification) error
}

// Dispatcher creates notifications for task events.
type Dispatcher struct {
	notifications notificationRepo
	now           func() time.Time
	log           *slog.Logger
}

// NewDispatcher creates a new notification Dispatcher.
func NewDispatcher(log *slog.Logger, notifications notificationRepo) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		now:           func() time.Time { return time.Now().UTC() },
		log:           log.With("service", "notify"),
	}
}
