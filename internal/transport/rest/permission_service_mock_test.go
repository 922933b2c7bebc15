package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/taskscope-backend/internal/service/permission"
)

var _ permissionService = &permissionServiceMock{}

type permissionServiceMock struct {
	EffectivePermissionsFunc func(ctx context.Context, callerID uuid.UUID, userID uuid.UUID, departmentID *uuid.UUID) (*permission.Effective, error)

	calls struct {
		EffectivePermissions []struct {
			Ctx          context.Context
			CallerID     uuid.UUID
			UserID       uuid.UUID
			DepartmentID *uuid.UUID
		}
	}
	lockEffectivePermissions sync.RWMutex
}

func (mock *permissionServiceMock) EffectivePermissions(ctx context.Context, callerID uuid.UUID, userID uuid.UUID, departmentID *uuid.UUID) (*permission.Effective, error) {
	if mock.EffectivePermissionsFunc == nil {
		panic("permissionServiceMock.EffectivePermissionsFunc: method is nil but permissionService.EffectivePermissions was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		CallerID     uuid.UUID
		UserID       uuid.UUID
		DepartmentID *uuid.UUID
	}{Ctx: ctx, CallerID: callerID, UserID: userID, DepartmentID: departmentID}
	mock.lockEffectivePermissions.Lock()
	mock.calls.EffectivePermissions = append(mock.calls.EffectivePermissions, callInfo)
	mock.lockEffectivePermissions.Unlock()
	return mock.EffectivePermissionsFunc(ctx, callerID, userID, departmentID)
}

func (mock *permissionServiceMock) EffectivePermissionsCalls() []struct {
	Ctx          context.Context
	CallerID     uuid.UUID
	UserID       uuid.UUID
	DepartmentID *uuid.UUID
} {
	mock.lockEffectivePermissions.RLock()
	calls := mock.calls.EffectivePermissions
	mock.lockEffectivePermissions.RUnlock()
	return calls
}
