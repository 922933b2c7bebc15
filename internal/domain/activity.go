package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is an immutable audit record for a task.
type HistoryEntry struct {
	ID        uuid.UUID
	TaskID    uuid.UUID
	UserID    uuid.UUID
	Text      string
	CreatedAt time.Time
}

// Notification is an in-app message for a single recipient.
type Notification struct {
	ID                uuid.UUID
	RecipientUserID   uuid.UUID
	TriggeredByUserID *uuid.UUID
	Type              NotificationType
	Message           string
	TaskID            *uuid.UUID
	IsRead            bool
	CreatedAt         time.Time
}
