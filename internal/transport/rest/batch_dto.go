package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
	"github.com/heartmarshall/taskscope-backend/internal/service/batch"
)

// validate reports field names by their json tag.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type batchRequest struct {
	Operations []json.RawMessage `json:"operations"`
}

type opHeader struct {
	Type string `json:"type"`
}

type updateFieldDTO struct {
	TaskID string          `json:"taskId" validate:"required,uuid"`
	Field  string          `json:"field"  validate:"required,oneof=name description priority difficulty dueDate startDate"`
	Value  json.RawMessage `json:"value"`
}

type updateStatusDTO struct {
	TaskID   string `json:"taskId"   validate:"required,uuid"`
	StatusID string `json:"statusId" validate:"required,uuid"`
}

type updateAssigneesDTO struct {
	TaskID          string   `json:"taskId"          validate:"required,uuid"`
	AssigneeUserIDs []string `json:"assigneeUserIds" validate:"required,max=100,dive,uuid"`
}

type toggleChecklistDTO struct {
	ItemID    string `json:"itemId"    validate:"required,uuid"`
	IsChecked *bool  `json:"isChecked" validate:"required"`
}

type addChecklistDTO struct {
	TaskID string `json:"taskId" validate:"required,uuid"`
	Name   string `json:"name"   validate:"required,max=255"`
	Order  *int   `json:"order"  validate:"omitempty,gte=0"`
}

type closeTaskDTO struct {
	TaskID    string  `json:"taskId"    validate:"required,uuid"`
	CloseType string  `json:"closeType" validate:"required,oneof=COMPLETED ABORTED"`
	Reason    *string `json:"reason"    validate:"omitempty,max=2000"`
}

// decodeOperation decodes one tagged operation. Field errors carry names
// relative to the operation.
func decodeOperation(raw json.RawMessage) (batch.Operation, []domain.FieldError) {
	var head opHeader
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, []domain.FieldError{{Field: "", Message: "must be an object"}}
	}

	switch batch.Kind(head.Type) {
	case batch.KindUpdateField:
		var d updateFieldDTO
		if errs := decodeDTO(raw, &d); errs != nil {
			return nil, errs
		}
		value, err := decodeValue(d.Value)
		if err != nil {
			return nil, []domain.FieldError{{Field: "value", Message: "must be valid JSON"}}
		}
		return batch.UpdateField{
			TaskID: uuid.MustParse(d.TaskID),
			Field:  domain.TaskField(d.Field),
			Value:  value,
		}, nil

	case batch.KindUpdateStatus:
		var d updateStatusDTO
		if errs := decodeDTO(raw, &d); errs != nil {
			return nil, errs
		}
		return batch.UpdateStatus{
			TaskID:   uuid.MustParse(d.TaskID),
			StatusID: uuid.MustParse(d.StatusID),
		}, nil

	case batch.KindUpdateAssignees:
		var d updateAssigneesDTO
		if errs := decodeDTO(raw, &d); errs != nil {
			return nil, errs
		}
		ids := make([]uuid.UUID, len(d.AssigneeUserIDs))
		for i, s := range d.AssigneeUserIDs {
			ids[i] = uuid.MustParse(s)
		}
		return batch.UpdateAssignees{TaskID: uuid.MustParse(d.TaskID), AssigneeUserIDs: ids}, nil

	case batch.KindToggleChecklist:
		var d toggleChecklistDTO
		if errs := decodeDTO(raw, &d); errs != nil {
			return nil, errs
		}
		return batch.ToggleChecklistItem{ItemID: uuid.MustParse(d.ItemID), IsChecked: *d.IsChecked}, nil

	case batch.KindAddChecklist:
		var d addChecklistDTO
		if errs := decodeDTO(raw, &d); errs != nil {
			return nil, errs
		}
		return batch.AddChecklistItem{TaskID: uuid.MustParse(d.TaskID), Name: d.Name, Order: d.Order}, nil

	case batch.KindCloseTask:
		var d closeTaskDTO
		if errs := decodeDTO(raw, &d); errs != nil {
			return nil, errs
		}
		return batch.CloseTask{
			TaskID:    uuid.MustParse(d.TaskID),
			CloseType: domain.CloseType(d.CloseType),
			Reason:    d.Reason,
		}, nil

	case "":
		return nil, []domain.FieldError{{Field: "type", Message: "required"}}
	default:
		return nil, []domain.FieldError{{Field: "type", Message: fmt.Sprintf("unknown operation type %q", head.Type)}}
	}
}

// decodeDTO unmarshals raw into dst and runs the validate tags. Unknown
// fields are ignored, the type tag among them.
func decodeDTO(raw json.RawMessage, dst any) []domain.FieldError {
	if err := json.Unmarshal(raw, dst); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) && te.Field != "" {
			return []domain.FieldError{{Field: te.Field, Message: "must be " + jsonKind(te.Type)}}
		}
		return []domain.FieldError{{Field: "", Message: "malformed operation"}}
	}

	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []domain.FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, domain.FieldError{Field: fieldPath(fe), Message: tagMessage(fe)})
	}
	return out
}

// fieldPath turns "updateAssigneesDTO.assigneeUserIds[2]" into
// "assigneeUserIds[2]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "uuid":
		return "must be a UUID"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("at most %s entries", fe.Param())
		}
		return fmt.Sprintf("max %s characters", fe.Param())
	case "gte":
		return "must be >= " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int64:
		return "an integer"
	case reflect.Slice:
		return "an array"
	default:
		return "a " + t.Kind().String()
	}
}

// decodeValue decodes a field value keeping numbers as json.Number so
// integers survive exactly. An absent value is null.
func decodeValue(raw json.RawMessage) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Response DTOs.

type batchResponse struct {
	Results []operationResultDTO `json:"results"`
	Summary summaryDTO           `json:"summary"`
	Message string               `json:"message"`
}

type operationResultDTO struct {
	Index     int    `json:"index"`
	Success   bool   `json:"success"`
	Operation string `json:"operation"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
}

type summaryDTO struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

type taskDTO struct {
	ID            uuid.UUID  `json:"id"`
	ProjectID     uuid.UUID  `json:"projectId"`
	CreatorUserID uuid.UUID  `json:"creatorUserId"`
	StatusID      *uuid.UUID `json:"statusId"`
	Name          string     `json:"name"`
	Description   *string    `json:"description"`
	Priority      int        `json:"priority"`
	Difficulty    *int       `json:"difficulty"`
	DueDate       *time.Time `json:"dueDate"`
	StartDate     *time.Time `json:"startDate"`
	IsClosed      bool       `json:"isClosed"`
	CloseType     *string    `json:"closeType"`
	CloseReason   *string    `json:"closeReason"`
	ClosedAt      *time.Time `json:"closedAt"`
	ClosedBy      *uuid.UUID `json:"closedBy"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type checklistItemDTO struct {
	ID            uuid.UUID `json:"id"`
	TaskID        uuid.UUID `json:"taskId"`
	Name          string    `json:"name"`
	Order         int       `json:"order"`
	IsChecked     bool      `json:"isChecked"`
	CreatorUserID uuid.UUID `json:"creatorUserId"`
	CreatedAt     time.Time `json:"createdAt"`
}

type assigneesDTO struct {
	TaskID          uuid.UUID   `json:"taskId"`
	AssigneeUserIDs []uuid.UUID `json:"assigneeUserIds"`
}

func toBatchResponse(res *batch.Result) batchResponse {
	out := batchResponse{
		Results: make([]operationResultDTO, len(res.Results)),
		Summary: summaryDTO{
			Total:      res.Summary.Total,
			Successful: res.Summary.Successful,
			Failed:     res.Summary.Failed,
		},
		Message: res.Message,
	}
	for i, r := range res.Results {
		out.Results[i] = operationResultDTO{
			Index:     r.Index,
			Success:   r.Success,
			Operation: r.Operation.String(),
			Data:      toDataDTO(r.Data),
			Error:     r.Error,
		}
	}
	return out
}

func toDataDTO(data any) any {
	switch d := data.(type) {
	case *domain.Task:
		return toTaskDTO(d)
	case *domain.ChecklistItem:
		return checklistItemDTO{
			ID:            d.ID,
			TaskID:        d.TaskID,
			Name:          d.Name,
			Order:         d.Order,
			IsChecked:     d.IsChecked,
			CreatorUserID: d.CreatorUserID,
			CreatedAt:     d.CreatedAt,
		}
	case batch.AssigneesData:
		ids := d.AssigneeUserIDs
		if ids == nil {
			ids = []uuid.UUID{}
		}
		return assigneesDTO{TaskID: d.TaskID, AssigneeUserIDs: ids}
	default:
		return nil
	}
}

func toTaskDTO(t *domain.Task) taskDTO {
	dto := taskDTO{
		ID:            t.ID,
		ProjectID:     t.ProjectID,
		CreatorUserID: t.CreatorUserID,
		StatusID:      t.StatusID,
		Name:          t.Name,
		Description:   t.Description,
		Priority:      t.Priority,
		Difficulty:    t.Difficulty,
		DueDate:       t.DueDate,
		StartDate:     t.StartDate,
		IsClosed:      t.IsClosed,
		CloseReason:   t.CloseReason,
		ClosedAt:      t.ClosedAt,
		ClosedBy:      t.ClosedBy,
		UpdatedAt:     t.UpdatedAt,
	}
	if t.CloseType != nil {
		ct := t.CloseType.String()
		dto.CloseType = &ct
	}
	return dto
}
