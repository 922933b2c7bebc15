package batch

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

var _ statusRepo = &statusRepoMock{}

type statusRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Status, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *statusRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Status, error) {
	if mock.GetByIDFunc == nil {
		panic("statusRepoMock.GetByIDFunc: method is nil but statusRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *statusRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}
