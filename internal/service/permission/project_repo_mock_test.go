package permission

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

var _ projectRepo = &projectRepoMock{}

type projectRepoMock struct {
	GetProjectFunc func(ctx context.Context, id uuid.UUID) (*domain.Project, error)

	calls struct {
		GetProject []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetProject sync.RWMutex
}

func (mock *projectRepoMock) GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	if mock.GetProjectFunc == nil {
		panic("projectRepoMock.GetProjectFunc: method is nil but projectRepo.GetProject was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetProject.Lock()
	mock.calls.GetProject = append(mock.calls.GetProject, callInfo)
	mock.lockGetProject.Unlock()
	return mock.GetProjectFunc(ctx, id)
}

func (mock *projectRepoMock) GetProjectCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetProject.RLock()
	calls := mock.calls.GetProject
	mock.lockGetProject.RUnlock()
	return calls
}
