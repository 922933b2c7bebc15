package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
	"github.com/heartmarshall/taskscope-backend/internal/service/batch"
	"github.com/heartmarshall/taskscope-backend/pkg/ctxutil"
)

// maxBatchBody bounds the request body; 100 operations fit comfortably.
const maxBatchBody = 1 << 20

type batchProcessor interface {
	ProcessBatch(ctx context.Context, userID uuid.UUID, ops []batch.Operation) (*batch.Result, error)
	MaxOperations() int
}

// BatchHandler serves POST /api/batch.
type BatchHandler struct {
	processor batchProcessor
	log       *slog.Logger
}

// NewBatchHandler creates a BatchHandler.
func NewBatchHandler(processor batchProcessor, logger *slog.Logger) *BatchHandler {
	return &BatchHandler{processor: processor, log: logger.With("handler", "batch")}
}

// Process decodes and shape-checks the operations, runs the batch and
// writes the per-operation results. A well-formed batch always yields 200.
func (h *BatchHandler) Process(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
		return
	}

	var req batchRequest
	body := http.MaxBytesReader(w, r.Body, maxBatchBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codeValidation, "request body too large")
			return
		}
		writeValidation(w, domain.NewValidationError("body", "invalid JSON"))
		return
	}

	ops, err := h.decode(req.Operations)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	res, err := h.processor.ProcessBatch(r.Context(), userID, ops)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeData(w, toBatchResponse(res))
}

// decode maps raw operations to batch operations. The size bound is
// checked first so an oversized batch is not decoded at all.
func (h *BatchHandler) decode(raws []json.RawMessage) ([]batch.Operation, error) {
	if n, limit := len(raws), h.processor.MaxOperations(); n > limit {
		return nil, domain.NewValidationError("operations", fmt.Sprintf("at most %d operations allowed", limit))
	}

	ops := make([]batch.Operation, len(raws))
	var errs []domain.FieldError
	for i, raw := range raws {
		op, fieldErrs := decodeOperation(raw)
		for _, fe := range fieldErrs {
			path := fmt.Sprintf("operations[%d]", i)
			if fe.Field != "" {
				path += "." + fe.Field
			}
			errs = append(errs, domain.FieldError{Field: path, Message: fe.Message})
		}
		ops[i] = op
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	return ops, nil
}
