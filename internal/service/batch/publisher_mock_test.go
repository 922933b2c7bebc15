package batch

import (
	"context"
	"sync"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

var _ Publisher = &PublisherMock{}

type PublisherMock struct {
	PublishFunc func(ctx context.Context, items []domain.Notification) error

	calls struct {
		Publish []struct {
			Ctx   context.Context
			Items []domain.Notification
		}
	}
	lockPublish sync.RWMutex
}

func (mock *PublisherMock) Publish(ctx context.Context, items []domain.Notification) error {
	if mock.PublishFunc == nil {
		panic("PublisherMock.PublishFunc: method is nil but Publisher.Publish was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Items []domain.Notification
	}{Ctx: ctx, Items: items}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, items)
}

func (mock *PublisherMock) PublishCalls() []struct {
	Ctx   context.Context
	Items []domain.Notification
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
