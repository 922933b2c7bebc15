package batch

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

// Kind is the wire tag of an operation.
type Kind string

const (
	KindUpdateField     Kind = "UPDATE_TASK_FIELD"
	KindUpdateStatus    Kind = "UPDATE_TASK_STATUS"
	KindUpdateAssignees Kind = "UPDATE_TASK_ASSIGNEE"
	KindToggleChecklist Kind = "UPDATE_CHECKLIST_STATUS"
	KindAddChecklist    Kind = "ADD_CHECKLIST_ITEM"
	KindCloseTask       Kind = "CLOSE_TASK"
)

func (k Kind) String() string { return string(k) }

// IsValid reports whether k names a supported operation.
func (k Kind) IsValid() bool {
	switch k {
	case KindUpdateField, KindUpdateStatus, KindUpdateAssignees,
		KindToggleChecklist, KindAddChecklist, KindCloseTask:
		return true
	}
	return false
}

// MaxChecklistItemName bounds checklist item names.
const MaxChecklistItemName = 255

// Operation is one mutation of a batch. The set of implementations is
// closed; the processor switches over them exhaustively.
type Operation interface {
	Kind() Kind
	// validate checks the payload shape. Field names in the returned
	// errors are relative to the operation.
	validate() []domain.FieldError
	operation()
}

// UpdateField sets one allow-listed task attribute. Value is the decoded
// JSON value: string, number, nil or a date string.
type UpdateField struct {
	TaskID uuid.UUID
	Field  domain.TaskField
	Value  any
}

// UpdateStatus moves a task to another status.
type UpdateStatus struct {
	TaskID   uuid.UUID
	StatusID uuid.UUID
}

// UpdateAssignees replaces the whole assignee set of a task.
type UpdateAssignees struct {
	TaskID          uuid.UUID
	AssigneeUserIDs []uuid.UUID
}

// ToggleChecklistItem checks or unchecks a checklist item.
type ToggleChecklistItem struct {
	ItemID    uuid.UUID
	IsChecked bool
}

// AddChecklistItem appends an item to a task checklist. A nil Order puts
// the item after the existing ones.
type AddChecklistItem struct {
	TaskID uuid.UUID
	Name   string
	Order  *int
}

// CloseTask completes or aborts an open task.
type CloseTask struct {
	TaskID    uuid.UUID
	CloseType domain.CloseType
	Reason    *string
}

func (UpdateField) Kind() Kind         { return KindUpdateField }
func (UpdateStatus) Kind() Kind        { return KindUpdateStatus }
func (UpdateAssignees) Kind() Kind     { return KindUpdateAssignees }
func (ToggleChecklistItem) Kind() Kind { return KindToggleChecklist }
func (AddChecklistItem) Kind() Kind    { return KindAddChecklist }
func (CloseTask) Kind() Kind           { return KindCloseTask }

func (UpdateField) operation()         {}
func (UpdateStatus) operation()        {}
func (UpdateAssignees) operation()     {}
func (ToggleChecklistItem) operation() {}
func (AddChecklistItem) operation()    {}
func (CloseTask) operation()           {}

func requireID(errs []domain.FieldError, field string, id uuid.UUID) []domain.FieldError {
	if id == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: field, Message: "required"})
	}
	return errs
}

func (o UpdateField) validate() []domain.FieldError {
	errs := requireID(nil, "taskId", o.TaskID)
	if !o.Field.IsValid() {
		errs = append(errs, domain.FieldError{Field: "field", Message: fmt.Sprintf("%q is not editable", o.Field)})
	}
	return errs
}

func (o UpdateStatus) validate() []domain.FieldError {
	errs := requireID(nil, "taskId", o.TaskID)
	return requireID(errs, "statusId", o.StatusID)
}

func (o UpdateAssignees) validate() []domain.FieldError {
	errs := requireID(nil, "taskId", o.TaskID)
	for i, id := range o.AssigneeUserIDs {
		errs = requireID(errs, fmt.Sprintf("assigneeUserIds[%d]", i), id)
	}
	return errs
}

func (o ToggleChecklistItem) validate() []domain.FieldError {
	return requireID(nil, "itemId", o.ItemID)
}

func (o AddChecklistItem) validate() []domain.FieldError {
	errs := requireID(nil, "taskId", o.TaskID)
	name := strings.TrimSpace(o.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if utf8.RuneCountInString(name) > MaxChecklistItemName {
		errs = append(errs, domain.FieldError{Field: "name", Message: fmt.Sprintf("max %d characters", MaxChecklistItemName)})
	}
	if o.Order != nil && *o.Order < 0 {
		errs = append(errs, domain.FieldError{Field: "order", Message: "must be non-negative"})
	}
	return errs
}

func (o CloseTask) validate() []domain.FieldError {
	errs := requireID(nil, "taskId", o.TaskID)
	if !o.CloseType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "closeType", Message: "must be COMPLETED or ABORTED"})
	}
	return errs
}

// Validate checks the size bound and the shape of every operation. It
// runs before anything touches the store.
func Validate(ops []Operation, maxOps int) error {
	if len(ops) == 0 {
		return domain.NewValidationError("operations", "at least one operation is required")
	}
	if len(ops) > maxOps {
		return domain.NewValidationError("operations", fmt.Sprintf("at most %d operations allowed", maxOps))
	}

	var errs []domain.FieldError
	for i, op := range ops {
		if op == nil {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("operations[%d]", i), Message: "required"})
			continue
		}
		for _, fe := range op.validate() {
			fe.Field = fmt.Sprintf("operations[%d].%s", i, fe.Field)
			errs = append(errs, fe)
		}
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
