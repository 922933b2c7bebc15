// Package permission decides whether a user may perform an action, combining
// the static role table with ownership and organizational scope.
package permission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
	"github.com/heartmarshall/taskscope-backend/internal/service/scope"
)

type snapshotter interface {
	Snapshot(ctx context.Context, userID uuid.UUID) (*scope.Snapshot, error)
}

type taskRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	IsAssignee(ctx context.Context, taskID, userID uuid.UUID) (bool, error)
}

type projectRepo interface {
	GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error)
}

// Context narrows a check to a concrete object. TaskID takes precedence
// over ProjectID, which takes precedence over DepartmentID.
type Context struct {
	TaskID       *uuid.UUID
	ProjectID    *uuid.UUID
	DepartmentID *uuid.UUID
}

func (c *Context) empty() bool {
	return c == nil || (c.TaskID == nil && c.ProjectID == nil && c.DepartmentID == nil)
}

// TaskContext is a shorthand for a task-scoped check.
func TaskContext(taskID uuid.UUID) *Context {
	return &Context{TaskID: &taskID}
}

// Checker evaluates permission keys for users.
type Checker struct {
	scopes   snapshotter
	tasks    taskRepo
	projects projectRepo
	log      *slog.Logger
}

// NewChecker creates a new permission Checker.
func NewChecker(log *slog.Logger, scopes snapshotter, tasks taskRepo, projects projectRepo) *Checker {
	return &Checker{
		scopes:   scopes,
		tasks:    tasks,
		projects: projects,
		log:      log.With("service", "permission"),
	}
}

// Subject loads the user and their scope once so that several checks can
// share it.
func (c *Checker) Subject(ctx context.Context, userID uuid.UUID) (*scope.Snapshot, error) {
	return c.scopes.Snapshot(ctx, userID)
}

// CheckPermission reports whether userID holds key in pctx. Unknown users
// are denied without error; store failures are returned.
func (c *Checker) CheckPermission(ctx context.Context, userID uuid.UUID, key domain.Permission, pctx *Context) (bool, error) {
	subject, err := c.Subject(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("resolve subject: %w", err)
	}
	return c.Check(ctx, subject, key, pctx)
}

// Check evaluates key for a preloaded subject.
func (c *Checker) Check(ctx context.Context, subject *scope.Snapshot, key domain.Permission, pctx *Context) (bool, error) {
	u := subject.User
	if u.Role == domain.RoleAdmin {
		return true, nil
	}

	if key.IsOwnResource() {
		return c.ownsTask(ctx, u.ID, pctx)
	}

	if pctx.empty() {
		return domain.RoleGrants(u.Role, key), nil
	}

	projectID := pctx.ProjectID
	if pctx.TaskID != nil {
		task, err := c.tasks.GetByID(ctx, *pctx.TaskID)
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("load task: %w", err)
		}
		projectID = &task.ProjectID
	}

	if projectID != nil {
		project, err := c.projects.GetProject(ctx, *projectID)
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("load project: %w", err)
		}
		if !c.roleAllows(subject, key, project.DepartmentID) {
			return false, nil
		}
		if project.OwnerUserID != nil && *project.OwnerUserID == u.ID {
			return true, nil
		}
		if u.InDepartment(project.DepartmentID) {
			return true, nil
		}
		return subject.Scope.HasDepartment(project.DepartmentID), nil
	}

	dept := *pctx.DepartmentID
	if !c.roleAllows(subject, key, dept) {
		return false, nil
	}
	return subject.Scope.HasDepartment(dept), nil
}

// roleAllows consults the role table with the role the user holds inside
// the department.
func (c *Checker) roleAllows(subject *scope.Snapshot, key domain.Permission, departmentID uuid.UUID) bool {
	role := scope.EffectiveRole(subject.User, subject.Tree, departmentID)
	return domain.RoleGrants(role, key)
}

// ownsTask allows creators and assignees of the context task regardless of
// scope.
func (c *Checker) ownsTask(ctx context.Context, userID uuid.UUID, pctx *Context) (bool, error) {
	if pctx == nil || pctx.TaskID == nil {
		return false, nil
	}

	task, err := c.tasks.GetByID(ctx, *pctx.TaskID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load task: %w", err)
	}
	if task.CreatorUserID == userID {
		return true, nil
	}

	assigned, err := c.tasks.IsAssignee(ctx, task.ID, userID)
	if err != nil {
		return false, fmt.Errorf("check assignee: %w", err)
	}
	return assigned, nil
}
