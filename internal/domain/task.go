package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task is a unit of work inside a project.
type Task struct {
	ID            uuid.UUID
	ProjectID     uuid.UUID
	CreatorUserID uuid.UUID
	StatusID      *uuid.UUID
	Name          string
	Description   *string
	Priority      int
	Difficulty    *int
	DueDate       *time.Time
	StartDate     *time.Time
	IsClosed      bool
	CloseType     *CloseType
	CloseReason   *string
	ClosedAt      *time.Time
	ClosedBy      *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// Priority and difficulty bounds.
const (
	MinPriority   = 1
	MaxPriority   = 4
	MinDifficulty = 1
	MaxDifficulty = 5
	MaxTaskName   = 255
)

// TaskAssignee links a user to a task.
type TaskAssignee struct {
	TaskID     uuid.UUID
	UserID     uuid.UUID
	AssignedBy uuid.UUID
	AssignedAt time.Time
}

// Status is a project-local workflow column.
type Status struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Name      string
	Order     int
	Type      StatusType
	DeletedAt *time.Time
}

// ChecklistItem is a sub-step of a task.
type ChecklistItem struct {
	ID            uuid.UUID
	TaskID        uuid.UUID
	Name          string
	Order         int
	IsChecked     bool
	CreatorUserID uuid.UUID
	CreatedAt     time.Time
	DeletedAt     *time.Time
}
