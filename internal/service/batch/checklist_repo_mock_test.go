package batch

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

var _ checklistRepo = &checklistRepoMock{}

type checklistRepoMock struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.ChecklistItem, error)
	SetCheckedFunc  func(ctx context.Context, id uuid.UUID, checked bool) error
	CountByTaskFunc func(ctx context.Context, taskID uuid.UUID) (int, error)
	CreateFunc      func(ctx context.Context, item domain.ChecklistItem) (*domain.ChecklistItem, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		SetChecked []struct {
			Ctx     context.Context
			ID      uuid.UUID
			Checked bool
		}
		CountByTask []struct {
			Ctx    context.Context
			TaskID uuid.UUID
		}
		Create []struct {
			Ctx  context.Context
			Item domain.ChecklistItem
		}
	}
	lockGetByID     sync.RWMutex
	lockSetChecked  sync.RWMutex
	lockCountByTask sync.RWMutex
	lockCreate      sync.RWMutex
}

func (mock *checklistRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.ChecklistItem, error) {
	if mock.GetByIDFunc == nil {
		panic("checklistRepoMock.GetByIDFunc: method is nil but checklistRepo.GetByID was just called")
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

func (mock *checklistRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *checklistRepoMock) SetChecked(ctx context.Context, id uuid.UUID, checked bool) error {
	if mock.SetCheckedFunc == nil {
		panic("checklistRepoMock.SetCheckedFunc: method is nil but checklistRepo.SetChecked was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ID      uuid.UUID
		Checked bool
	}{Ctx: ctx, ID: id, Checked: checked}
	mock.lockSetChecked.Lock()
	mock.calls.SetChecked = append(mock.calls.SetChecked, callInfo)
	mock.lockSetChecked.Unlock()
	return mock.SetCheckedFunc(ctx, id, checked)
}

func (mock *checklistRepoMock) SetCheckedCalls() []struct {
	Ctx     context.Context
	ID      uuid.UUID
	Checked bool
} {
	mock.lockSetChecked.RLock()
	calls := mock.calls.SetChecked
	mock.lockSetChecked.RUnlock()
	return calls
}

func (mock *checklistRepoMock) CountByTask(ctx context.Context, taskID uuid.UUID) (int, error) {
	if mock.CountByTaskFunc == nil {
		panic("checklistRepoMock.CountByTaskFunc: method is nil but checklistRepo.CountByTask was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		TaskID uuid.UUID
	}{Ctx: ctx, TaskID: taskID}
	mock.lockCountByTask.Lock()
	mock.calls.CountByTask = append(mock.calls.CountByTask, callInfo)
	mock.lockCountByTask.Unlock()
	return mock.CountByTaskFunc(ctx, taskID)
}

func (mock *checklistRepoMock) CountByTaskCalls() []struct {
	Ctx    context.Context
	TaskID uuid.UUID
} {
	mock.lockCountByTask.RLock()
	calls := mock.calls.CountByTask
	mock.lockCountByTask.RUnlock()
	return calls
}

func (mock *checklistRepoMock) Create(ctx context.Context, item domain.ChecklistItem) (*domain.ChecklistItem, error) {
	if mock.CreateFunc == nil {
		panic("checklistRepoMock.CreateFunc: method is nil but checklistRepo.Create was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Item domain.ChecklistItem
	}{Ctx: ctx, Item: item}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, item)
}

func (mock *checklistRepoMock) CreateCalls() []struct {
	Ctx  context.Context
	Item domain.ChecklistItem
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
