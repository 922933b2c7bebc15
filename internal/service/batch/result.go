package batch

import (
	"fmt"

	"github.com/google/uuid"
)

// OperationResult is the outcome of the operation at Index.
type OperationResult struct {
	Index     int
	Operation Kind
	Success   bool
	// Data is the entity the operation produced, set on success.
	Data any
	// Error is a caller-safe message, set on failure.
	Error string
}

// Summary counts batch outcomes.
type Summary struct {
	Total      int
	Successful int
	Failed     int
}

// Result is the aggregated outcome of a batch. Results[i] always
// describes operation i.
type Result struct {
	Results []OperationResult
	Summary Summary
	Message string
}

func newResult(results []OperationResult) *Result {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Success {
			s.Successful++
		} else {
			s.Failed++
		}
	}
	return &Result{
		Results: results,
		Summary: s,
		Message: fmt.Sprintf("Processed %d operations: %d successful, %d failed", s.Total, s.Successful, s.Failed),
	}
}

// AssigneesData is returned by a successful UpdateAssignees.
type AssigneesData struct {
	TaskID          uuid.UUID
	AssigneeUserIDs []uuid.UUID
}
