// Package ctxutil carries request-scoped identity through context.Context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const (
	callerKey ctxKey = iota
	roleKey
	requestKey
)

// WithUserID records the authenticated caller.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, callerKey, id)
}

// UserIDFromCtx returns the caller set by WithUserID. A nil UUID counts as
// absent.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, _ := ctx.Value(callerKey).(uuid.UUID)
	return id, id != uuid.Nil
}

// WithUserRole records the role claim of the token. Authorization never
// trusts it; the user is reloaded from the store.
func WithUserRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey, role)
}

func UserRoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestKey, id)
}

// RequestIDFromCtx returns "" outside a request.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestKey).(string)
	return id
}
