package domain

import "strings"

// Role is a user's position in the privilege hierarchy
// USER < MEMBER < HEAD < LEADER < CHIEF < ADMIN.
type Role string

const (
	RoleUser   Role = "USER"
	RoleMember Role = "MEMBER"
	RoleHead   Role = "HEAD"
	RoleLeader Role = "LEADER"
	RoleChief  Role = "CHIEF"
	RoleAdmin  Role = "ADMIN"
)

func (r Role) String() string { return string(r) }

// Rank returns the role's position on the privilege order. Unknown roles
// rank 0, below USER.
func (r Role) Rank() int {
	switch r {
	case RoleUser:
		return 1
	case RoleMember:
		return 2
	case RoleHead:
		return 3
	case RoleLeader:
		return 4
	case RoleChief:
		return 5
	case RoleAdmin:
		return 6
	}
	return 0
}

func (r Role) IsValid() bool { return r.Rank() > 0 }

// Outranks reports whether r is strictly more senior than other.
func (r Role) Outranks(other Role) bool { return r.Rank() > other.Rank() }

// Level returns the organizational level a role's scope is anchored at.
// ADMIN as a base role is unrestricted; granted on a unit it reaches no
// further than the unit's mission group.
func (r Role) Level() UnitLevel {
	switch r {
	case RoleAdmin, RoleChief:
		return UnitLevelMissionGroup
	case RoleLeader:
		return UnitLevelDivision
	case RoleHead, RoleMember, RoleUser:
		return UnitLevelDepartment
	}
	return UnitLevelNone
}

// ParseRole normalizes a stored or claimed role string. Both "MEMBER" and
// "Member" are accepted.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", false
	}
	return r, true
}

// NormalizeRole is ParseRole with USER as the fallback for unknown values.
func NormalizeRole(s string) Role {
	if r, ok := ParseRole(s); ok {
		return r
	}
	return RoleUser
}
