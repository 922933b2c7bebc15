package permission

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

var _ taskRepo = &taskRepoMock{}

type taskRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	IsAssigneeFunc func(ctx context.Context, taskID uuid.UUID, userID uuid.UUID) (bool, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		IsAssignee []struct {
			Ctx    context.Context
			TaskID uuid.UUID
			UserID uuid.UUID
		}
	}
	lockGetByID    sync.RWMutex
	lockIsAssignee sync.RWMutex
}

func (mock *taskRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if mock.GetByIDFunc == nil {
		panic("taskRepoMock.GetByIDFunc: method is nil but taskRepo.GetByID was just called")
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

func (mock *taskRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *taskRepoMock) IsAssignee(ctx context.Context, taskID uuid.UUID, userID uuid.UUID) (bool, error) {
	if mock.IsAssigneeFunc == nil {
		panic("taskRepoMock.IsAssigneeFunc: method is nil but taskRepo.IsAssignee was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		TaskID uuid.UUID
		UserID uuid.UUID
	}{Ctx: ctx, TaskID: taskID, UserID: userID}
	mock.lockIsAssignee.Lock()
	mock.calls.IsAssignee = append(mock.calls.IsAssignee, callInfo)
	mock.lockIsAssignee.Unlock()
	return mock.IsAssigneeFunc(ctx, taskID, userID)
}

func (mock *taskRepoMock) IsAssigneeCalls() []struct {
	Ctx    context.Context
	TaskID uuid.UUID
	UserID uuid.UUID
} {
	mock.lockIsAssignee.RLock()
	calls := mock.calls.IsAssignee
	mock.lockIsAssignee.RUnlock()
	return calls
}
