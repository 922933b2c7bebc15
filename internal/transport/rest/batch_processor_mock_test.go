package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/taskscope-backend/internal/service/batch"
)

var _ batchProcessor = &batchProcessorMock{}

type batchProcessorMock struct {
	ProcessBatchFunc  func(ctx context.Context, userID uuid.UUID, ops []batch.Operation) (*batch.Result, error)
	MaxOperationsFunc func() int

	calls struct {
		ProcessBatch []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Ops    []batch.Operation
		}
		MaxOperations []struct{}
	}
	lockProcessBatch  sync.RWMutex
	lockMaxOperations sync.RWMutex
}

func (mock *batchProcessorMock) ProcessBatch(ctx context.Context, userID uuid.UUID, ops []batch.Operation) (*batch.Result, error) {
	if mock.ProcessBatchFunc == nil {
		panic("batchProcessorMock.ProcessBatchFunc: method is nil but batchProcessor.ProcessBatch was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Ops    []batch.Operation
	}{Ctx: ctx, UserID: userID, Ops: ops}
	mock.lockProcessBatch.Lock()
	mock.calls.ProcessBatch = append(mock.calls.ProcessBatch, callInfo)
	mock.lockProcessBatch.Unlock()
	return mock.ProcessBatchFunc(ctx, userID, ops)
}

func (mock *batchProcessorMock) ProcessBatchCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Ops    []batch.Operation
} {
	mock.lockProcessBatch.RLock()
	calls := mock.calls.ProcessBatch
	mock.lockProcessBatch.RUnlock()
	return calls
}

func (mock *batchProcessorMock) MaxOperations() int {
	if mock.MaxOperationsFunc == nil {
		panic("batchProcessorMock.MaxOperationsFunc: method is nil but batchProcessor.MaxOperations was just called")
	}
	mock.lockMaxOperations.Lock()
	mock.calls.MaxOperations = append(mock.calls.MaxOperations, struct{}{})
	mock.lockMaxOperations.Unlock()
	return mock.MaxOperationsFunc()
}

func (mock *batchProcessorMock) MaxOperationsCalls() []struct{} {
	mock.lockMaxOperations.RLock()
	calls := mock.calls.MaxOperations
	mock.lockMaxOperations.RUnlock()
	return calls
}
