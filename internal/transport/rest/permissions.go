package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
	"github.com/heartmarshall/taskscope-backend/internal/service/permission"
	"github.com/heartmarshall/taskscope-backend/pkg/ctxutil"
)

type permissionService interface {
	EffectivePermissions(ctx context.Context, callerID, userID uuid.UUID, departmentID *uuid.UUID) (*permission.Effective, error)
}

// PermissionsHandler serves GET /api/users/{userId}/permissions.
type PermissionsHandler struct {
	svc permissionService
	log *slog.Logger
}

// NewPermissionsHandler creates a PermissionsHandler.
func NewPermissionsHandler(svc permissionService, logger *slog.Logger) *PermissionsHandler {
	return &PermissionsHandler{svc: svc, log: logger.With("handler", "permissions")}
}

type scopeDTO struct {
	IsAdmin         bool        `json:"isAdmin"`
	MissionGroupIDs []uuid.UUID `json:"missionGroupIds"`
	DivisionIDs     []uuid.UUID `json:"divisionIds"`
	DepartmentIDs   []uuid.UUID `json:"departmentIds"`
}

type permissionsDTO struct {
	UserID          uuid.UUID         `json:"userId"`
	DepartmentID    *uuid.UUID        `json:"departmentId,omitempty"`
	BaseRole        string            `json:"baseRole"`
	EffectiveRole   string            `json:"effectiveRole"`
	Permissions     []string          `json:"permissions"`
	AdditionalRoles map[string]string `json:"additionalRoles"`
	Scope           scopeDTO          `json:"scope"`
}

// Get returns the effective permissions of a user, optionally inside the
// department given by ?departmentId.
func (h *PermissionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
		return
	}

	userID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil {
		writeValidation(w, domain.NewValidationError("userId", "must be a UUID"))
		return
	}

	var departmentID *uuid.UUID
	if raw := r.URL.Query().Get("departmentId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeValidation(w, domain.NewValidationError("departmentId", "must be a UUID"))
			return
		}
		departmentID = &id
	}

	eff, err := h.svc.EffectivePermissions(r.Context(), callerID, userID, departmentID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeData(w, toPermissionsDTO(eff, departmentID))
}

func toPermissionsDTO(eff *permission.Effective, departmentID *uuid.UUID) permissionsDTO {
	perms := make([]string, len(eff.Permissions))
	for i, p := range eff.Permissions {
		perms[i] = p.String()
	}
	extra := make(map[string]string, len(eff.AdditionalRoles))
	for unit, role := range eff.AdditionalRoles {
		extra[unit.String()] = role.String()
	}
	return permissionsDTO{
		UserID:          eff.UserID,
		DepartmentID:    departmentID,
		BaseRole:        eff.BaseRole.String(),
		EffectiveRole:   eff.EffectiveRole.String(),
		Permissions:     perms,
		AdditionalRoles: extra,
		Scope: scopeDTO{
			IsAdmin:         eff.Scope.IsAdmin,
			MissionGroupIDs: eff.Scope.MissionGroupIDs(),
			DivisionIDs:     eff.Scope.DivisionIDs(),
			DepartmentIDs:   eff.Scope.DepartmentIDs(),
		},
	}
}
