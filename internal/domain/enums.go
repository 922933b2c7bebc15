package domain

// StatusType classifies a project status for progress and close semantics.
type StatusType string

const (
	StatusTypeNotStarted StatusType = "NOT_STARTED"
	StatusTypeInProgress StatusType = "IN_PROGRESS"
	StatusTypeDone       StatusType = "DONE"
)

func (s StatusType) String() string { return string(s) }

func (s StatusType) IsValid() bool {
	switch s {
	case StatusTypeNotStarted, StatusTypeInProgress, StatusTypeDone:
		return true
	}
	return false
}

// CloseType records how a task was closed.
type CloseType string

const (
	CloseTypeCompleted CloseType = "COMPLETED"
	CloseTypeAborted   CloseType = "ABORTED"
)

func (c CloseType) String() string { return string(c) }

func (c CloseType) IsValid() bool {
	switch c {
	case CloseTypeCompleted, CloseTypeAborted:
		return true
	}
	return false
}

// NotificationType identifies the event a notification reports.
type NotificationType string

const (
	NotificationTaskAssigned NotificationType = "TASK_ASSIGNED"
	NotificationTaskUpdated  NotificationType = "TASK_UPDATED"
	NotificationTaskClosed   NotificationType = "TASK_CLOSED"
)

func (n NotificationType) String() string { return string(n) }

func (n NotificationType) IsValid() bool {
	switch n {
	case NotificationTaskAssigned, NotificationTaskUpdated, NotificationTaskClosed:
		return true
	}
	return false
}

// TaskField names a task attribute that may be edited through a field update.
type TaskField string

const (
	TaskFieldName        TaskField = "name"
	TaskFieldDescription TaskField = "description"
	TaskFieldPriority    TaskField = "priority"
	TaskFieldDifficulty  TaskField = "difficulty"
	TaskFieldDueDate     TaskField = "dueDate"
	TaskFieldStartDate   TaskField = "startDate"
)

func (f TaskField) String() string { return string(f) }

// IsValid reports whether the field is on the editable allow-list.
func (f TaskField) IsValid() bool {
	switch f {
	case TaskFieldName, TaskFieldDescription, TaskFieldPriority,
		TaskFieldDifficulty, TaskFieldDueDate, TaskFieldStartDate:
		return true
	}
	return false
}

// Column returns the tasks table column backing the field.
func (f TaskField) Column() string {
	switch f {
	case TaskFieldDueDate:
		return "due_date"
	case TaskFieldStartDate:
		return "start_date"
	default:
		return string(f)
	}
}
