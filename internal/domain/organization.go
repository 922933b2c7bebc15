package domain

import (
	"time"

	"github.com/google/uuid"
)

// UnitLevel is a tier of the organizational hierarchy.
type UnitLevel int

const (
	UnitLevelNone UnitLevel = iota
	UnitLevelDepartment
	UnitLevelDivision
	UnitLevelMissionGroup
)

func (l UnitLevel) String() string {
	switch l {
	case UnitLevelDepartment:
		return "department"
	case UnitLevelDivision:
		return "division"
	case UnitLevelMissionGroup:
		return "mission_group"
	}
	return "none"
}

// MissionGroup is the top organizational tier.
type MissionGroup struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// Division belongs to exactly one mission group.
type Division struct {
	ID             uuid.UUID
	MissionGroupID uuid.UUID
	Name           string
	CreatedAt      time.Time
}

// Department belongs to at most one division. A nil DivisionID marks an
// orphaned department.
type Department struct {
	ID         uuid.UUID
	DivisionID *uuid.UUID
	Name       string
	CreatedAt  time.Time
}

// Project is owned by a department and optionally a single user.
type Project struct {
	ID           uuid.UUID
	DepartmentID uuid.UUID
	OwnerUserID  *uuid.UUID
	Name         string
	CreatedAt    time.Time
	DeletedAt    *time.Time
}

// OrgTree indexes the three organizational tiers for ancestor and
// descendant lookups.
type OrgTree struct {
	missionGroups map[uuid.UUID]struct{}
	divisionMG    map[uuid.UUID]uuid.UUID
	deptDivision  map[uuid.UUID]*uuid.UUID
	mgDivisions   map[uuid.UUID][]uuid.UUID
	divisionDepts map[uuid.UUID][]uuid.UUID
}

// NewOrgTree builds the index. Divisions whose mission group is missing
// are kept but have no ancestor; departments pointing at a missing
// division are treated as orphaned.
func NewOrgTree(groups []MissionGroup, divisions []Division, departments []Department) *OrgTree {
	t := &OrgTree{
		missionGroups: make(map[uuid.UUID]struct{}, len(groups)),
		divisionMG:    make(map[uuid.UUID]uuid.UUID, len(divisions)),
		deptDivision:  make(map[uuid.UUID]*uuid.UUID, len(departments)),
		mgDivisions:   make(map[uuid.UUID][]uuid.UUID),
		divisionDepts: make(map[uuid.UUID][]uuid.UUID),
	}
	for _, g := range groups {
		t.missionGroups[g.ID] = struct{}{}
	}
	for _, d := range divisions {
		t.divisionMG[d.ID] = d.MissionGroupID
		if _, ok := t.missionGroups[d.MissionGroupID]; ok {
			t.mgDivisions[d.MissionGroupID] = append(t.mgDivisions[d.MissionGroupID], d.ID)
		}
	}
	for _, d := range departments {
		var div *uuid.UUID
		if d.DivisionID != nil {
			if _, ok := t.divisionMG[*d.DivisionID]; ok {
				id := *d.DivisionID
				div = &id
				t.divisionDepts[id] = append(t.divisionDepts[id], d.ID)
			}
		}
		t.deptDivision[d.ID] = div
	}
	return t
}

// LevelOf reports which tier the unit id belongs to.
func (t *OrgTree) LevelOf(id uuid.UUID) UnitLevel {
	if _, ok := t.deptDivision[id]; ok {
		return UnitLevelDepartment
	}
	if _, ok := t.divisionMG[id]; ok {
		return UnitLevelDivision
	}
	if _, ok := t.missionGroups[id]; ok {
		return UnitLevelMissionGroup
	}
	return UnitLevelNone
}

// DivisionOf returns the parent division of a department.
func (t *OrgTree) DivisionOf(departmentID uuid.UUID) (uuid.UUID, bool) {
	div, ok := t.deptDivision[departmentID]
	if !ok || div == nil {
		return uuid.Nil, false
	}
	return *div, true
}

// MissionGroupOf returns the parent mission group of a division.
func (t *OrgTree) MissionGroupOf(divisionID uuid.UUID) (uuid.UUID, bool) {
	mg, ok := t.divisionMG[divisionID]
	if !ok {
		return uuid.Nil, false
	}
	if _, known := t.missionGroups[mg]; !known {
		return uuid.Nil, false
	}
	return mg, true
}

// Anchor walks up from unitID to its ancestor-or-self at the given level.
// It fails when the unit is unknown, sits above the requested level, or
// the ancestor chain is broken.
func (t *OrgTree) Anchor(unitID uuid.UUID, level UnitLevel) (uuid.UUID, bool) {
	cur := unitID
	curLevel := t.LevelOf(unitID)
	if curLevel == UnitLevelNone || curLevel > level {
		return uuid.Nil, false
	}
	for curLevel < level {
		var ok bool
		switch curLevel {
		case UnitLevelDepartment:
			cur, ok = t.DivisionOf(cur)
		case UnitLevelDivision:
			cur, ok = t.MissionGroupOf(cur)
		}
		if !ok {
			return uuid.Nil, false
		}
		curLevel++
	}
	return cur, true
}

// Divisions returns the divisions under a mission group.
func (t *OrgTree) Divisions(missionGroupID uuid.UUID) []uuid.UUID {
	return t.mgDivisions[missionGroupID]
}

// Departments returns the departments under a division.
func (t *OrgTree) Departments(divisionID uuid.UUID) []uuid.UUID {
	return t.divisionDepts[divisionID]
}
