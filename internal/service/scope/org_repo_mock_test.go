package scope

import (
	"context"
	"sync"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

var _ orgRepo = &orgRepoMock{}

type orgRepoMock struct {
	LoadTreeFunc func(ctx context.Context) (*domain.OrgTree, error)

	calls struct {
		LoadTree []struct {
			Ctx context.Context
		}
	}
	lockLoadTree sync.RWMutex
}

func (mock *orgRepoMock) LoadTree(ctx context.Context) (*domain.OrgTree, error) {
	if mock.LoadTreeFunc == nil {
		panic("orgRepoMock.LoadTreeFunc: method is nil but orgRepo.LoadTree was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockLoadTree.Lock()
	mock.calls.LoadTree = append(mock.calls.LoadTree, callInfo)
	mock.lockLoadTree.Unlock()
	return mock.LoadTreeFunc(ctx)
}

func (mock *orgRepoMock) LoadTreeCalls() []struct {
	Ctx context.Context
} {
	mock.lockLoadTree.RLock()
	calls := mock.calls.LoadTree
	mock.lockLoadTree.RUnlock()
	return calls
}
