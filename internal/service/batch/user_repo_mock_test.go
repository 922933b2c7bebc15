package batch

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	ExistingIDsFunc func(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)

	calls struct {
		ExistingIDs []struct {
			Ctx context.Context
			IDs []uuid.UUID
		}
	}
	lockExistingIDs sync.RWMutex
}

func (mock *userRepoMock) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if mock.ExistingIDsFunc == nil {
		panic("userRepoMock.ExistingIDsFunc: method is nil but userRepo.ExistingIDs was just called")
	}
	callInfo := struct {
		Ctx context.Context
		IDs []uuid.UUID
	}{Ctx: ctx, IDs: ids}
	mock.lockExistingIDs.Lock()
	mock.calls.ExistingIDs = append(mock.calls.ExistingIDs, callInfo)
	mock.lockExistingIDs.Unlock()
	return mock.ExistingIDsFunc(ctx, ids)
}

func (mock *userRepoMock) ExistingIDsCalls() []struct {
	Ctx context.Context
	IDs []uuid.UUID
} {
	mock.lockExistingIDs.RLock()
	calls := mock.calls.ExistingIDs
	mock.lockExistingIDs.RUnlock()
	return calls
}
