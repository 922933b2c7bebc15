package permission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
	"github.com/heartmarshall/taskscope-backend/internal/service/scope"
)

// Effective describes what a user may do, optionally inside one department.
type Effective struct {
	UserID          uuid.UUID
	BaseRole        domain.Role
	EffectiveRole   domain.Role
	Permissions     []domain.Permission
	AdditionalRoles map[uuid.UUID]domain.Role
	Scope           domain.Scope
}

// EffectivePermissions describes userID's permissions for callerID. The
// caller must be the user or hold view_users.
func (c *Checker) EffectivePermissions(ctx context.Context, callerID, userID uuid.UUID, departmentID *uuid.UUID) (*Effective, error) {
	if callerID != userID {
		ok, err := c.CheckPermission(ctx, callerID, domain.PermViewUsers, nil)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrForbidden
		}
	}

	subject, err := c.Subject(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve user %s: %w", userID, err)
	}

	role := subject.User.Role
	if departmentID != nil {
		role = scope.EffectiveRole(subject.User, subject.Tree, *departmentID)
	}

	c.log.DebugContext(ctx, "effective permissions",
		slog.String("caller_id", callerID.String()),
		slog.String("user_id", userID.String()),
		slog.String("effective_role", role.String()),
	)

	return &Effective{
		UserID:          userID,
		BaseRole:        subject.User.Role,
		EffectiveRole:   role,
		Permissions:     domain.RolePermissions(role),
		AdditionalRoles: subject.User.AdditionalRoles,
		Scope:           subject.Scope,
	}, nil
}
