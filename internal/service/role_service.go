package service

import (
	"context"
	"fmt"

	"digiwave-backend/internal/model"
	"digiwave-backend/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"` // Permission UUIDs
}

type UpdateRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateRolePermissionsRequest struct {
	PermissionIDs []string `json:"permission_ids" binding:"required"`
}

type RoleResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	IsSystem    bool                 `json:"is_system"`
	Permissions []PermissionResponse `json:"permissions"`
	CreatedAt   string               `json:"created_at"`
}

type PermissionResponse struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

// --- Interface ---

type RoleService interface {
	ListRoles(ctx context.Context) ([]RoleResponse, error)
	GetRole(ctx context.Context, id string) (*RoleResponse, error)
	CreateRole(ctx context.Context, req CreateRoleRequest) (*RoleResponse, error)
	UpdateRole(ctx context.Context, id string, req UpdateRoleRequest) (*RoleResponse, error)
	DeleteRole(ctx context.Context, id string) error
	ListPermissions(ctx context.Context) ([]PermissionResponse, error)
	UpdateRolePermissions(ctx context.Context, roleID string, req UpdateRolePermissionsRequest) (*RoleResponse, error)
	GetPermissionsByRoleName(ctx context.Context, roleName string) ([]string, error)
	SeedDefaultRolesAndPermissions(ctx context.Context) error
}

type roleService struct {
	roleRepo  repository.RoleRepository
	txManager repository.TransactionManager
}

func NewRoleService(roleRepo repository.RoleRepository, txManager repository.TransactionManager) RoleService {
	return &roleService{roleRepo: roleRepo, txManager: txManager}
}

// --- Implementation ---

func (s *roleService) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.roleRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}

	res := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		res = append(res, toRoleResponse(r))
	}
	return res, nil
}

func (s *roleService) GetRole(ctx context.Context, id string) (*RoleResponse, error) {
	role, err := s.loadRole(ctx, id, true)
	if err != nil {
		return nil, err
	}
	resp := toRoleResponse(*role)
	return &resp, nil
}

func (s *roleService) CreateRole(ctx context.Context, req CreateRoleRequest) (*RoleResponse, error) {
	permIDs, err := parsePermissionIDs(req.Permissions)
	if err != nil {
		return nil, err
	}

	role := model.Role{
		Name:        req.Name,
		Description: req.Description,
		IsSystem:    false,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.roleRepo.Create(txCtx, &role); err != nil {
			return fmt.Errorf("failed to create role: %w", err)
		}
		if len(permIDs) == 0 {
			return nil
		}
		if err := s.roleRepo.UpdatePermissions(txCtx, role.ID, permIDs); err != nil {
			return fmt.Errorf("failed to assign permissions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetRole(ctx, role.ID.String())
}

func (s *roleService) UpdateRole(ctx context.Context, id string, req UpdateRoleRequest) (*RoleResponse, error) {
	role, err := s.loadRole(ctx, id, false)
	if err != nil {
		return nil, err
	}

	role.Name = req.Name
	role.Description = req.Description
	if err := s.roleRepo.Update(ctx, role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	return s.GetRole(ctx, id)
}

func (s *roleService) DeleteRole(ctx context.Context, id string) error {
	role, err := s.loadRole(ctx, id, false)
	if err != nil {
		return err
	}
	if role.IsSystem {
		return fmt.Errorf("cannot delete system role '%s'", role.Name)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		// Drop join rows first so no orphans remain
		if err := s.roleRepo.UpdatePermissions(txCtx, role.ID, nil); err != nil {
			return fmt.Errorf("failed to clear permissions: %w", err)
		}
		if err := s.roleRepo.Delete(txCtx, role.ID); err != nil {
			return fmt.Errorf("failed to delete role: %w", err)
		}
		return nil
	})
}

func (s *roleService) ListPermissions(ctx context.Context) ([]PermissionResponse, error) {
	perms, err := s.roleRepo.ListPermissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch permissions: %w", err)
	}

	res := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		res = append(res, toPermissionResponse(p))
	}
	return res, nil
}

func (s *roleService) UpdateRolePermissions(ctx context.Context, roleID string, req UpdateRolePermissionsRequest) (*RoleResponse, error) {
	role, err := s.loadRole(ctx, roleID, false)
	if err != nil {
		return nil, err
	}

	permIDs, err := parsePermissionIDs(req.PermissionIDs)
	if err != nil {
		return nil, err
	}

	if err := s.roleRepo.UpdatePermissions(ctx, role.ID, permIDs); err != nil {
		return nil, fmt.Errorf("failed to update permissions: %w", err)
	}

	return s.GetRole(ctx, roleID)
}

func (s *roleService) GetPermissionsByRoleName(ctx context.Context, roleName string) ([]string, error) {
	codes, err := s.roleRepo.GetPermissionsByRoleName(ctx, roleName)
	if err != nil {
		return nil, fmt.Errorf("role '%s' not found: %w", roleName, err)
	}
	return codes, nil
}

// loadRole fetches a role by its string id, optionally preloading the
// permission association.
func (s *roleService) loadRole(ctx context.Context, id string, withPerms bool) (*model.Role, error) {
	roleID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid role id: %w", err)
	}

	var role *model.Role
	if withPerms {
		role, err = s.roleRepo.FindByIDWithPermissions(ctx, roleID)
	} else {
		role, err = s.roleRepo.FindByID(ctx, roleID)
	}
	if err != nil {
		return nil, fmt.Errorf("role not found: %w", err)
	}
	return role, nil
}

// parsePermissionIDs parses string ids into UUIDs. An unparseable id is a
// hard error; unknown ids are skipped later by the repository's IN lookup.
func parsePermissionIDs(ids []string) ([]uuid.UUID, error) {
	permIDs := make([]uuid.UUID, 0, len(ids))
	for _, pid := range ids {
		parsed, err := uuid.Parse(pid)
		if err != nil {
			return nil, fmt.Errorf("invalid permission id '%s': %w", pid, err)
		}
		permIDs = append(permIDs, parsed)
	}
	return permIDs, nil
}

// --- Seeding ---

// SeedDefaultRolesAndPermissions upserts the permission catalog and the
// three system roles. Runs on every startup; existing custom roles and
// manual assignments on non-system roles are left untouched.
func (s *roleService) SeedDefaultRolesAndPermissions(ctx context.Context) error {
	defaultPermissions := []model.Permission{
		{Code: "dashboard.read", Name: "View dashboard & statistics", Group: "dashboard"},
		{Code: "quotations.read", Name: "View quotations", Group: "quotations"},
		{Code: "quotations.write", Name: "Create & edit quotations", Group: "quotations"},
		{Code: "quotations.delete", Name: "Delete quotations", Group: "quotations"},
		{Code: "quotations.export", Name: "Export quotation PDFs", Group: "quotations"},
		{Code: "projects.read", Name: "View projects", Group: "projects"},
		{Code: "projects.write", Name: "Manage projects", Group: "projects"},
		{Code: "payments.read", Name: "View payments", Group: "payments"},
		{Code: "payments.write", Name: "Record payments", Group: "payments"},
		{Code: "attendance.read", Name: "View attendance", Group: "attendance"},
		{Code: "attendance.write", Name: "Mark attendance", Group: "attendance"},
		{Code: "leaves.read", Name: "View leave requests", Group: "leaves"},
		{Code: "leaves.write", Name: "Apply for leave", Group: "leaves"},
		{Code: "leaves.approve", Name: "Approve / reject leave", Group: "leaves"},
		{Code: "hosting.read", Name: "View hosting & domains", Group: "hosting"},
		{Code: "hosting.write", Name: "Manage hosting & domains", Group: "hosting"},
		{Code: "tasks.read", Name: "View tasks", Group: "tasks"},
		{Code: "tasks.write", Name: "Manage tasks", Group: "tasks"},
		{Code: "documents.read", Name: "View documents", Group: "documents"},
		{Code: "documents.write", Name: "Upload documents", Group: "documents"},
		{Code: "users.read", Name: "View users", Group: "users"},
		{Code: "users.write", Name: "Manage users", Group: "users"},
		{Code: "users.delete", Name: "Delete users", Group: "users"},
		{Code: "lookups.write", Name: "Manage reference data", Group: "lookups"},
		{Code: "audit.read", Name: "View activity history", Group: "audit"},
		{Code: "roles.manage", Name: "Manage roles & permissions", Group: "roles"},
		{Code: "reports.read", Name: "Download reports", Group: "reports"},
	}

	permByCode := make(map[string]model.Permission, len(defaultPermissions))
	for i := range defaultPermissions {
		p := &defaultPermissions[i]
		if err := s.roleRepo.FindOrCreatePermission(ctx, p); err != nil {
			return fmt.Errorf("failed to seed permission '%s': %w", p.Code, err)
		}
		permByCode[p.Code] = *p
	}

	roleDefinitions := map[string]struct {
		Description string
		PermCodes   []string
	}{
		model.RoleAdmin: {
			Description: "Administrator with full system access",
			PermCodes: []string{
				"dashboard.read",
				"quotations.read", "quotations.write", "quotations.delete", "quotations.export",
				"projects.read", "projects.write",
				"payments.read", "payments.write",
				"attendance.read", "attendance.write",
				"leaves.read", "leaves.write", "leaves.approve",
				"hosting.read", "hosting.write",
				"tasks.read", "tasks.write",
				"documents.read", "documents.write",
				"users.read", "users.write", "users.delete",
				"lookups.write", "audit.read", "roles.manage", "reports.read",
			},
		},
		model.RoleManager: {
			Description: "Manager who approves leave and oversees delivery",
			PermCodes: []string{
				"dashboard.read",
				"quotations.read", "quotations.write", "quotations.export",
				"projects.read", "projects.write",
				"payments.read", "payments.write",
				"attendance.read", "attendance.write",
				"leaves.read", "leaves.write", "leaves.approve",
				"hosting.read", "hosting.write",
				"tasks.read", "tasks.write",
				"documents.read", "documents.write",
				"users.read",
				"audit.read", "reports.read",
			},
		},
		model.RoleStaff: {
			Description: "Staff member with day-to-day access",
			PermCodes: []string{
				"quotations.read", "quotations.write", "quotations.export",
				"projects.read",
				"attendance.read", "attendance.write",
				"leaves.read", "leaves.write",
				"hosting.read",
				"tasks.read", "tasks.write",
				"documents.read", "documents.write",
			},
		},
	}

	for roleName, def := range roleDefinitions {
		role, err := s.roleRepo.FindByName(ctx, roleName)
		if err != nil {
			role = &model.Role{Name: roleName, Description: def.Description, IsSystem: true}
			if err := s.roleRepo.Create(ctx, role); err != nil {
				return fmt.Errorf("failed to seed role '%s': %w", roleName, err)
			}
		}

		permIDs := make([]uuid.UUID, 0, len(def.PermCodes))
		for _, code := range def.PermCodes {
			if p, ok := permByCode[code]; ok {
				permIDs = append(permIDs, p.ID)
			}
		}
		if err := s.roleRepo.UpdatePermissions(ctx, role.ID, permIDs); err != nil {
			return fmt.Errorf("failed to assign permissions to role '%s': %w", roleName, err)
		}
	}

	return nil
}

// --- Helpers ---

func toRoleResponse(r model.Role) RoleResponse {
	perms := make([]PermissionResponse, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		perms = append(perms, toPermissionResponse(p))
	}

	return RoleResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		IsSystem:    r.IsSystem,
		Permissions: perms,
		CreatedAt:   r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toPermissionResponse(p model.Permission) PermissionResponse {
	return PermissionResponse{
		ID:    p.ID.String(),
		Code:  p.Code,
		Name:  p.Name,
		Group: p.Group,
	}
}
