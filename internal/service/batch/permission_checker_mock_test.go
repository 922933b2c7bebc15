package batch

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
	"github.com/heartmarshall/taskscope-backend/internal/service/permission"
	"github.com/heartmarshall/taskscope-backend/internal/service/scope"
)

var _ permissionChecker = &permissionCheckerMock{}

type permissionCheckerMock struct {
	SubjectFunc func(ctx context.Context, userID uuid.UUID) (*scope.Snapshot, error)
	CheckFunc   func(ctx context.Context, subject *scope.Snapshot, key domain.Permission, pctx *permission.Context) (bool, error)

	calls struct {
		Subject []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Check []struct {
			Ctx     context.Context
			Subject *scope.Snapshot
			Key     domain.Permission
			Pctx    *permission.Context
		}
	}
	lockSubject sync.RWMutex
	lockCheck   sync.RWMutex
}

func (mock *permissionCheckerMock) Subject(ctx context.Context, userID uuid.UUID) (*scope.Snapshot, error) {
	if mock.SubjectFunc == nil {
		panic("permissionCheckerMock.SubjectFunc: method is nil but permissionChecker.Subject was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockSubject.Lock()
	mock.calls.Subject = append(mock.calls.Subject, callInfo)
	mock.lockSubject.Unlock()
	return mock.SubjectFunc(ctx, userID)
}

func (mock *permissionCheckerMock) SubjectCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockSubject.RLock()
	calls := mock.calls.Subject
	mock.lockSubject.RUnlock()
	return calls
}

func (mock *permissionCheckerMock) Check(ctx context.Context, subject *scope.Snapshot, key domain.Permission, pctx *permission.Context) (bool, error) {
	if mock.CheckFunc == nil {
		panic("permissionCheckerMock.CheckFunc: method is nil but permissionChecker.Check was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Subject *scope.Snapshot
		Key     domain.Permission
		Pctx    *permission.Context
	}{Ctx: ctx, Subject: subject, Key: key, Pctx: pctx}
	mock.lockCheck.Lock()
	mock.calls.Check = append(mock.calls.Check, callInfo)
	mock.lockCheck.Unlock()
	return mock.CheckFunc(ctx, subject, key, pctx)
}

func (mock *permissionCheckerMock) CheckCalls() []struct {
	Ctx     context.Context
	Subject *scope.Snapshot
	Key     domain.Permission
	Pctx    *permission.Context
} {
	mock.lockCheck.RLock()
	calls := mock.calls.Check
	mock.lockCheck.RUnlock()
	return calls
}
