package batch

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// maxAuditValue caps a value rendered into a history line so that any
// old→new pair fits history.MaxEntryText.
const maxAuditValue = 200

// maxAuditReason caps the close reason quoted in a history line.
const maxAuditReason = 1000

// normalizeValue converts a decoded JSON value into the Go value stored in
// the field's column. nil clears nullable fields.
func normalizeValue(field domain.TaskField, v any) (any, error) {
	switch field {
	case domain.TaskFieldName:
		s, ok := v.(string)
		s = strings.TrimSpace(s)
		if !ok || s == "" {
			return nil, domain.NewValidationError("name", "must be a non-empty string")
		}
		if utf8.RuneCountInString(s) > domain.MaxTaskName {
			return nil, domain.NewValidationError("name", fmt.Sprintf("max %d characters", domain.MaxTaskName))
		}
		return s, nil

	case domain.TaskFieldDescription:
		if v == nil {
			return nil, nil
		}
		s, ok := v.(string)
		if !ok {
			return nil, domain.NewValidationError("description", "must be a string or null")
		}
		if s = strings.TrimSpace(s); s == "" {
			return nil, nil
		}
		return s, nil

	case domain.TaskFieldPriority:
		n, ok := intValue(v)
		if !ok || n < domain.MinPriority || n > domain.MaxPriority {
			return nil, domain.NewValidationError("priority",
				fmt.Sprintf("must be an integer between %d and %d", domain.MinPriority, domain.MaxPriority))
		}
		return n, nil

	case domain.TaskFieldDifficulty:
		if v == nil {
			return nil, nil
		}
		n, ok := intValue(v)
		if !ok || n < domain.MinDifficulty || n > domain.MaxDifficulty {
			return nil, domain.NewValidationError("difficulty",
				fmt.Sprintf("must be an integer between %d and %d or null", domain.MinDifficulty, domain.MaxDifficulty))
		}
		return n, nil

	case domain.TaskFieldDueDate, domain.TaskFieldStartDate:
		if v == nil {
			return nil, nil
		}
		t, ok := timeValue(v)
		if !ok {
			return nil, domain.NewValidationError(field.String(), "must be an RFC 3339 timestamp, YYYY-MM-DD or null")
		}
		return t, nil
	}
	return nil, domain.NewValidationError("field", fmt.Sprintf("%q is not editable", field))
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	}
	return 0, false
}

func timeValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case string:
		s := strings.TrimSpace(t)
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			return ts.UTC(), true
		}
		if ts, err := time.Parse(dateLayout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// currentValue reads the field from a loaded task, dereferencing pointers.
func currentValue(t *domain.Task, field domain.TaskField) any {
	switch field {
	case domain.TaskFieldName:
		return t.Name
	case domain.TaskFieldDescription:
		if t.Description != nil {
			return *t.Description
		}
	case domain.TaskFieldPriority:
		return t.Priority
	case domain.TaskFieldDifficulty:
		if t.Difficulty != nil {
			return *t.Difficulty
		}
	case domain.TaskFieldDueDate:
		if t.DueDate != nil {
			return *t.DueDate
		}
	case domain.TaskFieldStartDate:
		if t.StartDate != nil {
			return *t.StartDate
		}
	}
	return nil
}

// formatValue renders a field value for history text.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "none"
	case string:
		return truncate(x, maxAuditValue)
	case int:
		return strconv.Itoa(x)
	case time.Time:
		if x.Equal(x.Truncate(24 * time.Hour)) {
			return x.Format(dateLayout)
		}
		return x.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}

// truncate cuts s to max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "…"
}
