package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Org is a seeded mission group with one division and one department.
type Org struct {
	MissionGroup domain.MissionGroup
	Division     domain.Division
	Department   domain.Department
}

// SeedOrg creates a mission group → division → department chain.
func SeedOrg(t *testing.T, pool *pgxpool.Pool) Org {
	t.Helper()
	ctx := context.Background()
	suffix := uniqueSuffix()

	org := Org{
		MissionGroup: domain.MissionGroup{ID: uuid.New(), Name: "MG " + suffix, CreatedAt: now()},
	}
	org.Division = domain.Division{ID: uuid.New(), MissionGroupID: org.MissionGroup.ID, Name: "Div " + suffix, CreatedAt: now()}
	divID := org.Division.ID
	org.Department = domain.Department{ID: uuid.New(), DivisionID: &divID, Name: "Dept " + suffix, CreatedAt: now()}

	if _, err := pool.Exec(ctx,
		`INSERT INTO mission_groups (id, name, created_at) VALUES ($1, $2, $3)`,
		org.MissionGroup.ID, org.MissionGroup.Name, org.MissionGroup.CreatedAt,
	); err != nil {
		t.Fatalf("testhelper: SeedOrg insert mission group: %v", err)
	}
	if _, err := pool.Exec(ctx,
		`INSERT INTO divisions (id, mission_group_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		org.Division.ID, org.Division.MissionGroupID, org.Division.Name, org.Division.CreatedAt,
	); err != nil {
		t.Fatalf("testhelper: SeedOrg insert division: %v", err)
	}
	SeedDepartment(t, pool, org.Department)

	return org
}

// SeedDepartment inserts a department row; a nil DivisionID makes it orphaned.
func SeedDepartment(t *testing.T, pool *pgxpool.Pool, dept domain.Department) {
	t.Helper()
	if _, err := pool.Exec(context.Background(),
		`INSERT INTO departments (id, division_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		dept.ID, dept.DivisionID, dept.Name, now(),
	); err != nil {
		t.Fatalf("testhelper: SeedDepartment: %v", err)
	}
}

// SeedUser creates a user with the given role in the given department
// (nil for none).
func SeedUser(t *testing.T, pool *pgxpool.Pool, role domain.Role, departmentID *uuid.UUID) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	user := domain.User{
		ID:              uuid.New(),
		Email:           "testuser-" + suffix + "@example.com",
		Name:            "Test User " + suffix,
		Role:            role,
		DepartmentID:    departmentID,
		AdditionalRoles: map[uuid.UUID]domain.Role{},
		CreatedAt:       now(),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, name, role, department_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Name, string(user.Role), user.DepartmentID, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// GrantRole stores an additional role for the user inside a unit.
func GrantRole(t *testing.T, pool *pgxpool.Pool, userID, unitID uuid.UUID, role domain.Role) {
	t.Helper()
	patch, err := json.Marshal(map[string]string{unitID.String(): string(role)})
	if err != nil {
		t.Fatalf("testhelper: GrantRole marshal: %v", err)
	}
	if _, err := pool.Exec(context.Background(),
		`UPDATE users SET additional_roles = additional_roles || $2::jsonb WHERE id = $1`,
		userID, patch,
	); err != nil {
		t.Fatalf("testhelper: GrantRole: %v", err)
	}
}

// SeedProject creates a project in a department with an optional owner.
func SeedProject(t *testing.T, pool *pgxpool.Pool, departmentID uuid.UUID, ownerID *uuid.UUID) domain.Project {
	t.Helper()
	p := domain.Project{
		ID:           uuid.New(),
		DepartmentID: departmentID,
		OwnerUserID:  ownerID,
		Name:         "Project " + uniqueSuffix(),
		CreatedAt:    now(),
	}
	if _, err := pool.Exec(context.Background(),
		`INSERT INTO projects (id, department_id, owner_user_id, name, created_at) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.DepartmentID, p.OwnerUserID, p.Name, p.CreatedAt,
	); err != nil {
		t.Fatalf("testhelper: SeedProject: %v", err)
	}
	return p
}

// SeedStatus creates a status column in a project.
func SeedStatus(t *testing.T, pool *pgxpool.Pool, projectID uuid.UUID, name string, st domain.StatusType) domain.Status {
	t.Helper()
	s := domain.Status{ID: uuid.New(), ProjectID: projectID, Name: name, Order: 1, Type: st}
	if _, err := pool.Exec(context.Background(),
		`INSERT INTO statuses (id, project_id, name, sort_order, type) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.ProjectID, s.Name, s.Order, string(s.Type),
	); err != nil {
		t.Fatalf("testhelper: SeedStatus: %v", err)
	}
	return s
}

// SeedTask creates an open task with priority 3.
func SeedTask(t *testing.T, pool *pgxpool.Pool, projectID, creatorID uuid.UUID) domain.Task {
	t.Helper()
	task := domain.Task{
		ID:            uuid.New(),
		ProjectID:     projectID,
		CreatorUserID: creatorID,
		Name:          "Task " + uniqueSuffix(),
		Priority:      3,
		CreatedAt:     now(),
		UpdatedAt:     now(),
	}
	if _, err := pool.Exec(context.Background(),
		`INSERT INTO tasks (id, project_id, creator_user_id, name, priority, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		task.ID, task.ProjectID, task.CreatorUserID, task.Name, task.Priority, task.CreatedAt, task.UpdatedAt,
	); err != nil {
		t.Fatalf("testhelper: SeedTask: %v", err)
	}
	return task
}

// SeedAssignee links a user to a task.
func SeedAssignee(t *testing.T, pool *pgxpool.Pool, taskID, userID, assignedBy uuid.UUID) {
	t.Helper()
	if _, err := pool.Exec(context.Background(),
		`INSERT INTO task_assignees (task_id, user_id, assigned_by) VALUES ($1, $2, $3)`,
		taskID, userID, assignedBy,
	); err != nil {
		t.Fatalf("testhelper: SeedAssignee: %v", err)
	}
}

// SeedChecklistItem creates an unchecked checklist item.
func SeedChecklistItem(t *testing.T, pool *pgxpool.Pool, taskID, creatorID uuid.UUID, order int) domain.ChecklistItem {
	t.Helper()
	item := domain.ChecklistItem{
		ID:            uuid.New(),
		TaskID:        taskID,
		Name:          "Item " + uniqueSuffix(),
		Order:         order,
		CreatorUserID: creatorID,
		CreatedAt:     now(),
	}
	if _, err := pool.Exec(context.Background(),
		`INSERT INTO checklist_items (id, task_id, name, sort_order, creator_user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID, item.TaskID, item.Name, item.Order, item.CreatorUserID, item.CreatedAt,
	); err != nil {
		t.Fatalf("testhelper: SeedChecklistItem: %v", err)
	}
	return item
}

// CountRows returns the number of rows in table matching the task id.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string, taskID uuid.UUID) int {
	t.Helper()
	var n int
	if err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM `+table+` WHERE task_id = $1`, taskID,
	).Scan(&n); err != nil {
		t.Fatalf("testhelper: CountRows %s: %v", table, err)
	}
	return n
}
