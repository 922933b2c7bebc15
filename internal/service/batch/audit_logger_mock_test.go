package batch

import (
	"context"
	"sync"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
	"github.com/heartmarshall/taskscope-backend/internal/service/history"
)

var _ auditLogger = &auditLoggerMock{}

type auditLoggerMock struct {
	AppendFunc func(ctx context.Context, input history.AppendInput) (domain.HistoryEntry, error)

	calls struct {
		Append []struct {
			Ctx   context.Context
			Input history.AppendInput
		}
	}
	lockAppend sync.RWMutex
}

func (mock *auditLoggerMock) Append(ctx context.Context, input history.AppendInput) (domain.HistoryEntry, error) {
	if mock.AppendFunc == nil {
		panic("auditLoggerMock.AppendFunc: method is nil but auditLogger.Append was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input history.AppendInput
	}{Ctx: ctx, Input: input}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, input)
}

func (mock *auditLoggerMock) AppendCalls() []struct {
	Ctx   context.Context
	Input history.AppendInput
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}
