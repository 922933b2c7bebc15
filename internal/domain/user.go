package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an application user with a base role and optional per-unit
// role overrides.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         Role
	DepartmentID *uuid.UUID
	// AdditionalRoles maps an organizational unit id (mission group,
	// division or department) to a role granted inside that unit.
	AdditionalRoles map[uuid.UUID]Role
	CreatedAt       time.Time
	DeletedAt       *time.Time
}

// UpgradingGrants returns the additional roles strictly more senior than
// the base role. Junior or equal grants never widen anything.
func (u *User) UpgradingGrants() map[uuid.UUID]Role {
	out := make(map[uuid.UUID]Role, len(u.AdditionalRoles))
	for unit, r := range u.AdditionalRoles {
		if r.Outranks(u.Role) {
			out[unit] = r
		}
	}
	return out
}

// InDepartment reports whether the user's home department is id.
func (u *User) InDepartment(id uuid.UUID) bool {
	return u.DepartmentID != nil && *u.DepartmentID == id
}
