package permission

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/service/scope"
)

var _ snapshotter = &snapshotterMock{}

type snapshotterMock struct {
	SnapshotFunc func(ctx context.Context, userID uuid.UUID) (*scope.Snapshot, error)

	calls struct {
		Snapshot []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockSnapshot sync.RWMutex
}

func (mock *snapshotterMock) Snapshot(ctx context.Context, userID uuid.UUID) (*scope.Snapshot, error) {
	if mock.SnapshotFunc == nil {
		panic("snapshotterMock.SnapshotFunc: method is nil but snapshotter.Snapshot was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockSnapshot.Lock()
	mock.calls.Snapshot = append(mock.calls.Snapshot, callInfo)
	mock.lockSnapshot.Unlock()
	return mock.SnapshotFunc(ctx, userID)
}

func (mock *snapshotterMock) SnapshotCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockSnapshot.RLock()
	calls := mock.calls.Snapshot
	mock.lockSnapshot.RUnlock()
	return calls
}
