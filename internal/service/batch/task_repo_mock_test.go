package batch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

var _ taskRepo = &taskRepoMock{}

type taskRepoMock struct {
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	UpdateFieldFunc      func(ctx context.Context, id uuid.UUID, field domain.TaskField, value any) error
	SetStatusFunc        func(ctx context.Context, id uuid.UUID, statusID uuid.UUID) error
	CloseFunc            func(ctx context.Context, id uuid.UUID, closeType domain.CloseType, reason *string, closedBy uuid.UUID, at time.Time) error
	ListAssigneeIDsFunc  func(ctx context.Context, taskID uuid.UUID) ([]uuid.UUID, error)
	ReplaceAssigneesFunc func(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID, assignedBy uuid.UUID) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		UpdateField []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Field domain.TaskField
			Value any
		}
		SetStatus []struct {
			Ctx      context.Context
			ID       uuid.UUID
			StatusID uuid.UUID
		}
		Close []struct {
			Ctx       context.Context
			ID        uuid.UUID
			CloseType domain.CloseType
			Reason    *string
			ClosedBy  uuid.UUID
			At        time.Time
		}
		ListAssigneeIDs []struct {
			Ctx    context.Context
			TaskID uuid.UUID
		}
		ReplaceAssignees []struct {
			Ctx        context.Context
			TaskID     uuid.UUID
			UserIDs    []uuid.UUID
			AssignedBy uuid.UUID
		}
	}
	lockGetByID          sync.RWMutex
	lockUpdateField      sync.RWMutex
	lockSetStatus        sync.RWMutex
	lockClose            sync.RWMutex
	lockListAssigneeIDs  sync.RWMutex
	lockReplaceAssignees sync.RWMutex
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

func (mock *taskRepoMock) UpdateField(ctx context.Context, id uuid.UUID, field domain.TaskField, value any) error {
	if mock.UpdateFieldFunc == nil {
		panic("taskRepoMock.UpdateFieldFunc: method is nil but taskRepo.UpdateField was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Field domain.TaskField
		Value any
	}{Ctx: ctx, ID: id, Field: field, Value: value}
	mock.lockUpdateField.Lock()
	mock.calls.UpdateField = append(mock.calls.UpdateField, callInfo)
	mock.lockUpdateField.Unlock()
	return mock.UpdateFieldFunc(ctx, id, field, value)
}

func (mock *taskRepoMock) UpdateFieldCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Field domain.TaskField
	Value any
} {
	mock.lockUpdateField.RLock()
	calls := mock.calls.UpdateField
	mock.lockUpdateField.RUnlock()
	return calls
}

func (mock *taskRepoMock) SetStatus(ctx context.Context, id uuid.UUID, statusID uuid.UUID) error {
	if mock.SetStatusFunc == nil {
		panic("taskRepoMock.SetStatusFunc: method is nil but taskRepo.SetStatus was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       uuid.UUID
		StatusID uuid.UUID
	}{Ctx: ctx, ID: id, StatusID: statusID}
	mock.lockSetStatus.Lock()
	mock.calls.SetStatus = append(mock.calls.SetStatus, callInfo)
	mock.lockSetStatus.Unlock()
	return mock.SetStatusFunc(ctx, id, statusID)
}

func (mock *taskRepoMock) SetStatusCalls() []struct {
	Ctx      context.Context
	ID       uuid.UUID
	StatusID uuid.UUID
} {
	mock.lockSetStatus.RLock()
	calls := mock.calls.SetStatus
	mock.lockSetStatus.RUnlock()
	return calls
}

func (mock *taskRepoMock) Close(ctx context.Context, id uuid.UUID, closeType domain.CloseType, reason *string, closedBy uuid.UUID, at time.Time) error {
	if mock.CloseFunc == nil {
		panic("taskRepoMock.CloseFunc: method is nil but taskRepo.Close was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ID        uuid.UUID
		CloseType domain.CloseType
		Reason    *string
		ClosedBy  uuid.UUID
		At        time.Time
	}{Ctx: ctx, ID: id, CloseType: closeType, Reason: reason, ClosedBy: closedBy, At: at}
	mock.lockClose.Lock()
	mock.calls.Close = append(mock.calls.Close, callInfo)
	mock.lockClose.Unlock()
	return mock.CloseFunc(ctx, id, closeType, reason, closedBy, at)
}

func (mock *taskRepoMock) CloseCalls() []struct {
	Ctx       context.Context
	ID        uuid.UUID
	CloseType domain.CloseType
	Reason    *string
	ClosedBy  uuid.UUID
	At        time.Time
} {
	mock.lockClose.RLock()
	calls := mock.calls.Close
	mock.lockClose.RUnlock()
	return calls
}

func (mock *taskRepoMock) ListAssigneeIDs(ctx context.Context, taskID uuid.UUID) ([]uuid.UUID, error) {
	if mock.ListAssigneeIDsFunc == nil {
		panic("taskRepoMock.ListAssigneeIDsFunc: method is nil but taskRepo.ListAssigneeIDs was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		TaskID uuid.UUID
	}{Ctx: ctx, TaskID: taskID}
	mock.lockListAssigneeIDs.Lock()
	mock.calls.ListAssigneeIDs = append(mock.calls.ListAssigneeIDs, callInfo)
	mock.lockListAssigneeIDs.Unlock()
	return mock.ListAssigneeIDsFunc(ctx, taskID)
}

func (mock *taskRepoMock) ListAssigneeIDsCalls() []struct {
	Ctx    context.Context
	TaskID uuid.UUID
} {
	mock.lockListAssigneeIDs.RLock()
	calls := mock.calls.ListAssigneeIDs
	mock.lockListAssigneeIDs.RUnlock()
	return calls
}

func (mock *taskRepoMock) ReplaceAssignees(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID, assignedBy uuid.UUID) error {
	if mock.ReplaceAssigneesFunc == nil {
		panic("taskRepoMock.ReplaceAssigneesFunc: method is nil but taskRepo.ReplaceAssignees was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		TaskID     uuid.UUID
		UserIDs    []uuid.UUID
		AssignedBy uuid.UUID
	}{Ctx: ctx, TaskID: taskID, UserIDs: userIDs, AssignedBy: assignedBy}
	mock.lockReplaceAssignees.Lock()
	mock.calls.ReplaceAssignees = append(mock.calls.ReplaceAssignees, callInfo)
	mock.lockReplaceAssignees.Unlock()
	return mock.ReplaceAssigneesFunc(ctx, taskID, userIDs, assignedBy)
}

func (mock *taskRepoMock) ReplaceAssigneesCalls() []struct {
	Ctx        context.Context
	TaskID     uuid.UUID
	UserIDs    []uuid.UUID
	AssignedBy uuid.UUID
} {
	mock.lockReplaceAssignees.RLock()
	calls := mock.calls.ReplaceAssignees
	mock.lockReplaceAssignees.RUnlock()
	return calls
}
