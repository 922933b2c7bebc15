package domain

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
)

// Scope is the set of organizational units a user may act upon.
// An admin scope answers true to every membership test.
type Scope struct {
	IsAdmin       bool
	missionGroups map[uuid.UUID]struct{}
	divisions     map[uuid.UUID]struct{}
	departments   map[uuid.UUID]struct{}
}

// NewScope returns an empty, deny-everything scope.
func NewScope() Scope {
	return Scope{
		missionGroups: make(map[uuid.UUID]struct{}),
		divisions:     make(map[uuid.UUID]struct{}),
		departments:   make(map[uuid.UUID]struct{}),
	}
}

// AdminScope returns the unrestricted scope.
func AdminScope() Scope {
	s := NewScope()
	s.IsAdmin = true
	return s
}

// Grant unions into the scope the subtree reachable from unitID at the
// breadth of role. The anchor is the unit's ancestor-or-self at the role's
// level. It reports whether anything was added; unknown units, broken
// ancestor chains and units above the role's level contribute nothing.
func (s *Scope) Grant(tree *OrgTree, unitID uuid.UUID, role Role) bool {
	if s.missionGroups == nil {
		*s = NewScope()
	}
	level := role.Level()
	if level == UnitLevelNone {
		return false
	}
	anchor, ok := tree.Anchor(unitID, level)
	if !ok {
		return false
	}

	switch level {
	case UnitLevelMissionGroup:
		s.missionGroups[anchor] = struct{}{}
		for _, div := range tree.Divisions(anchor) {
			s.addDivision(tree, div)
		}
	case UnitLevelDivision:
		s.addDivision(tree, anchor)
	case UnitLevelDepartment:
		s.departments[anchor] = struct{}{}
	}
	return true
}

func (s *Scope) addDivision(tree *OrgTree, divisionID uuid.UUID) {
	s.divisions[divisionID] = struct{}{}
	for _, dept := range tree.Departments(divisionID) {
		s.departments[dept] = struct{}{}
	}
}

func (s Scope) HasDepartment(id uuid.UUID) bool {
	if s.IsAdmin {
		return true
	}
	_, ok := s.departments[id]
	return ok
}

func (s Scope) HasDivision(id uuid.UUID) bool {
	if s.IsAdmin {
		return true
	}
	_, ok := s.divisions[id]
	return ok
}

func (s Scope) HasMissionGroup(id uuid.UUID) bool {
	if s.IsAdmin {
		return true
	}
	_, ok := s.missionGroups[id]
	return ok
}

// IsEmpty reports whether a non-admin scope covers no unit at all.
func (s Scope) IsEmpty() bool {
	return !s.IsAdmin && len(s.missionGroups) == 0 && len(s.divisions) == 0 && len(s.departments) == 0
}

// Covers reports whether every unit in other is also in s.
func (s Scope) Covers(other Scope) bool {
	if s.IsAdmin {
		return true
	}
	if other.IsAdmin {
		return false
	}
	return subset(other.missionGroups, s.missionGroups) &&
		subset(other.divisions, s.divisions) &&
		subset(other.departments, s.departments)
}

func (s Scope) MissionGroupIDs() []uuid.UUID { return sortedIDs(s.missionGroups) }
func (s Scope) DivisionIDs() []uuid.UUID     { return sortedIDs(s.divisions) }
func (s Scope) DepartmentIDs() []uuid.UUID   { return sortedIDs(s.departments) }

func subset(a, b map[uuid.UUID]struct{}) bool {
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}

func sortedIDs(m map[uuid.UUID]struct{}) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })
	return ids
}
