// Package scope resolves the organizational units a user may act upon.
package scope

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type orgRepo interface {
	LoadTree(ctx context.Context) (*domain.OrgTree, error)
}

// Snapshot is a user together with the org tree and the scope computed
// from them. It is built once per request and passed around by value.
type Snapshot struct {
	User  *domain.User
	Tree  *domain.OrgTree
	Scope domain.Scope
}

// Resolver computes user scopes from the stored hierarchy.
type Resolver struct {
	users userRepo
	org   orgRepo
	log   *slog.Logger
}

// NewResolver creates a new scope Resolver.
func NewResolver(log *slog.Logger, users userRepo, org orgRepo) *Resolver {
	return &Resolver{
		users: users,
		org:   org,
		log:   log.With("service", "scope"),
	}
}

// Resolve returns the scope of userID. An unknown user yields an error
// wrapping domain.ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) (domain.Scope, error) {
	snap, err := r.Snapshot(ctx, userID)
	if err != nil {
		return domain.Scope{}, err
	}
	return snap.Scope, nil
}

// Snapshot loads the user and, for non-admins, the org tree, and computes
// the scope.
func (r *Resolver) Snapshot(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	if user.Role == domain.RoleAdmin {
		return &Snapshot{User: user, Scope: domain.AdminScope()}, nil
	}

	tree, err := r.org.LoadTree(ctx)
	if err != nil {
		return nil, fmt.Errorf("load org tree: %w", err)
	}

	s := Compute(user, tree)
	if s.IsEmpty() {
		r.log.DebugContext(ctx, "empty scope",
			slog.String("user_id", userID.String()),
			slog.String("role", user.Role.String()),
		)
	}

	return &Snapshot{User: user, Tree: tree, Scope: s}, nil
}

// Compute seeds the scope from the user's home department at the breadth
// of the base role, then unions the subtree of every grant strictly more
// senior than the base role.
func Compute(user *domain.User, tree *domain.OrgTree) domain.Scope {
	if user.Role == domain.RoleAdmin {
		return domain.AdminScope()
	}

	s := domain.NewScope()
	if user.DepartmentID != nil {
		s.Grant(tree, *user.DepartmentID, user.Role)
	}
	for unit, role := range user.UpgradingGrants() {
		s.Grant(tree, unit, role)
	}
	return s
}

// EffectiveRole returns the most senior of the base role and every
// upgrading grant whose subtree contains departmentID.
func EffectiveRole(user *domain.User, tree *domain.OrgTree, departmentID uuid.UUID) domain.Role {
	best := user.Role
	if best == domain.RoleAdmin || tree == nil {
		return best
	}
	for unit, role := range user.UpgradingGrants() {
		if !role.Outranks(best) {
			continue
		}
		s := domain.NewScope()
		if s.Grant(tree, unit, role) && s.HasDepartment(departmentID) {
			best = role
		}
	}
	return best
}
