// Package org implements read access to the organizational hierarchy and
// projects using PostgreSQL.
package org

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/taskscope-backend/internal/adapter/postgres"
	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

type missionGroupRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type divisionRow struct {
	ID             uuid.UUID `db:"id"`
	MissionGroupID uuid.UUID `db:"mission_group_id"`
	Name           string    `db:"name"`
	CreatedAt      time.Time `db:"created_at"`
}

type departmentRow struct {
	ID         uuid.UUID  `db:"id"`
	DivisionID *uuid.UUID `db:"division_id"`
	Name       string     `db:"name"`
	CreatedAt  time.Time  `db:"created_at"`
}

type projectRow struct {
	ID           uuid.UUID  `db:"id"`
	DepartmentID uuid.UUID  `db:"department_id"`
	OwnerUserID  *uuid.UUID `db:"owner_user_id"`
	Name         string     `db:"name"`
	CreatedAt    time.Time  `db:"created_at"`
}

// Repo provides organization and project reads backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new org repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Hierarchy
// ---------------------------------------------------------------------------

// LoadTree reads every live mission group, division and department and
// indexes them into a domain.OrgTree.
func (r *Repo) LoadTree(ctx context.Context) (*domain.OrgTree, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var groups []missionGroupRow
	if err := r.selectLive(ctx, q, &groups, "mission_groups", "id", "name", "created_at"); err != nil {
		return nil, fmt.Errorf("load mission groups: %w", err)
	}
	var divisions []divisionRow
	if err := r.selectLive(ctx, q, &divisions, "divisions", "id", "mission_group_id", "name", "created_at"); err != nil {
		return nil, fmt.Errorf("load divisions: %w", err)
	}
	var departments []departmentRow
	if err := r.selectLive(ctx, q, &departments, "departments", "id", "division_id", "name", "created_at"); err != nil {
		return nil, fmt.Errorf("load departments: %w", err)
	}

	mgs := make([]domain.MissionGroup, len(groups))
	for i, g := range groups {
		mgs[i] = domain.MissionGroup{ID: g.ID, Name: g.Name, CreatedAt: g.CreatedAt}
	}
	divs := make([]domain.Division, len(divisions))
	for i, d := range divisions {
		divs[i] = domain.Division{ID: d.ID, MissionGroupID: d.MissionGroupID, Name: d.Name, CreatedAt: d.CreatedAt}
	}
	depts := make([]domain.Department, len(departments))
	for i, d := range departments {
		depts[i] = domain.Department{ID: d.ID, DivisionID: d.DivisionID, Name: d.Name, CreatedAt: d.CreatedAt}
	}

	return domain.NewOrgTree(mgs, divs, depts), nil
}

func (r *Repo) selectLive(ctx context.Context, q postgres.Querier, dst any, table string, cols ...string) error {
	query, args, err := postgres.Builder.
		Select(cols...).
		From(table).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("build %s query: %w", table, err)
	}
	return pgxscan.Select(ctx, q, dst, query, args...)
}

// ---------------------------------------------------------------------------
// Projects
// ---------------------------------------------------------------------------

// GetProject returns a non-deleted project by primary key.
func (r *Repo) GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	query, args, err := postgres.Builder.
		Select("id", "department_id", "owner_user_id", "name", "created_at").
		From("projects").
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build project query: %w", err)
	}

	var row projectRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "project", id)
	}

	return &domain.Project{
		ID:           row.ID,
		DepartmentID: row.DepartmentID,
		OwnerUserID:  row.OwnerUserID,
		Name:         row.Name,
		CreatedAt:    row.CreatedAt,
	}, nil
}
