package batch

import (
	"context"
	"sync"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
	"github.com/heartmarshall/taskscope-backend/internal/service/notify"
)

var _ dispatcher = &dispatcherMock{}

type dispatcherMock struct {
	DispatchFunc func(ctx context.Context, n notify.Notice) ([]domain.Notification, error)

	calls struct {
		Dispatch []struct {
			Ctx context.Context
			N   notify.Notice
		}
	}
	lockDispatch sync.RWMutex
}

func (mock *dispatcherMock) Dispatch(ctx context.Context, n notify.Notice) ([]domain.Notification, error) {
	if mock.DispatchFunc == nil {
		panic("dispatcherMock.DispatchFunc: method is nil but dispatcher.Dispatch was just called")
	}
	callInfo := struct {
		Ctx context.Context
		N   notify.Notice
	}{Ctx: ctx, N: n}
	mock.lockDispatch.Lock()
	mock.calls.Dispatch = append(mock.calls.Dispatch, callInfo)
	mock.lockDispatch.Unlock()
	return mock.DispatchFunc(ctx, n)
}

func (mock *dispatcherMock) DispatchCalls() []struct {
	Ctx context.Context
	N   notify.Notice
} {
	mock.lockDispatch.RLock()
	calls := mock.calls.Dispatch
	mock.lockDispatch.RUnlock()
	return calls
}
