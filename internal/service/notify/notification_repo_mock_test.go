package notify

import (
	"context"
	"sync"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

var _ notificationRepo = &notificationRepoMock{}

type notificationRepoMock struct {
	CreateManyFunc func(ctx context.Context, items []domain.Notification) error

	calls struct {
		CreateMany []struct {
			Ctx   context.Context
			Items []domain.Notification
		}
	}
	lockCreateMany sync.RWMutex
}

func (mock *notificationRepoMock) CreateMany(ctx context.Context, items []domain.Notification) error {
	if mock.CreateManyFunc == nil {
		panic("notificationRepoMock.CreateManyFunc: method is nil but notificationRepo.CreateMany was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Items []domain.Notification
	}{Ctx: ctx, Items: items}
	mock.lockCreateMany.Lock()
	mock.calls.CreateMany = append(mock.calls.CreateMany, callInfo)
	mock.lockCreateMany.Unlock()
	return mock.CreateManyFunc(ctx, items)
}

func (mock *notificationRepoMock) CreateManyCalls() []struct {
	Ctx   context.Context
	Items []domain.Notification
} {
	mock.lockCreateMany.RLock()
	calls := mock.calls.CreateMany
	mock.lockCreateMany.RUnlock()
	return calls
}
