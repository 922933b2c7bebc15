package history

import (
	"context"
	"sync"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

var _ historyRepo = &historyRepoMock{}

type historyRepoMock struct {
	CreateFunc func(ctx context.Context, entry domain.HistoryEntry) error

	calls struct {
		Create []struct {
			Ctx   context.Context
			Entry domain.HistoryEntry
		}
	}
	lockCreate sync.RWMutex
}

func (mock *historyRepoMock) Create(ctx context.Context, entry domain.HistoryEntry) error {
	if mock.CreateFunc == nil {
		panic("historyRepoMock.CreateFunc: method is nil but historyRepo.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Entry domain.HistoryEntry
	}{Ctx: ctx, Entry: entry}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, entry)
}

func (mock *historyRepoMock) CreateCalls() []struct {
	Ctx   context.Context
	Entry domain.HistoryEntry
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
