package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"digiwave-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

type fakeRoleRepo struct {
	mu    sync.Mutex
	roles map[uuid.UUID]*model.Role
	perms map[uuid.UUID]*model.Permission
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{
		roles: make(map[uuid.UUID]*model.Role),
		perms: make(map[uuid.UUID]*model.Permission),
	}
}

func (r *fakeRoleRepo) Create(_ context.Context, role *model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	copied := *role
	r.roles[role.ID] = &copied
	return nil
}

func (r *fakeRoleRepo) Update(_ context.Context, role *model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.roles[role.ID]
	if !ok {
		return fmt.Errorf("record not found")
	}
	perms := existing.Permissions
	copied := *role
	copied.Permissions = perms
	r.roles[role.ID] = &copied
	return nil
}

func (r *fakeRoleRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.roles, id)
	return nil
}

func (r *fakeRoleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Role, error) {
	return r.find(func(role *model.Role) bool { return role.ID == id })
}

func (r *fakeRoleRepo) FindByIDWithPermissions(_ context.Context, id uuid.UUID) (*model.Role, error) {
	return r.find(func(role *model.Role) bool { return role.ID == id })
}

func (r *fakeRoleRepo) FindByName(_ context.Context, name string) (*model.Role, error) {
	return r.find(func(role *model.Role) bool { return role.Name == name })
}

func (r *fakeRoleRepo) find(match func(*model.Role) bool) (*model.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, role := range r.roles {
		if match(role) {
			copied := *role
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("record not found")
}

func (r *fakeRoleRepo) ListAll(_ context.Context) ([]model.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, *role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeRoleRepo) ListPermissions(_ context.Context) ([]model.Permission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Permission, 0, len(r.perms))
	for _, p := range r.perms {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

func (r *fakeRoleRepo) UpdatePermissions(_ context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[roleID]
	if !ok {
		return fmt.Errorf("record not found")
	}
	perms := make([]model.Permission, 0, len(permissionIDs))
	for _, id := range permissionIDs {
		if p, ok := r.perms[id]; ok {
			perms = append(perms, *p)
		}
	}
	role.Permissions = perms
	return nil
}

func (r *fakeRoleRepo) GetPermissionsByRoleName(_ context.Context, roleName string) ([]string, error) {
	role, err := r.find(func(role *model.Role) bool { return role.Name == roleName })
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(role.Permissions))
	for _, p := range role.Permissions {
		codes = append(codes, p.Code)
	}
	return codes, nil
}

func (r *fakeRoleRepo) FindOrCreatePermission(_ context.Context, perm *model.Permission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.perms {
		if existing.Code == perm.Code {
			existing.Name = perm.Name
			existing.Group = perm.Group
			perm.ID = existing.ID
			return nil
		}
	}
	if perm.ID == uuid.Nil {
		perm.ID = uuid.New()
	}
	copied := *perm
	r.perms[perm.ID] = &copied
	return nil
}

func (r *fakeRoleRepo) addPermission(code, name, group string) model.Permission {
	p := model.Permission{ID: uuid.New(), Code: code, Name: name, Group: group}
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := p
	r.perms[p.ID] = &copied
	return p
}

func newTestRoleService(repo *fakeRoleRepo) RoleService {
	return NewRoleService(repo, fakeTxManager{})
}

// --- Tests ---

func TestCreateRole_AssignsPermissions(t *testing.T) {
	repo := newFakeRoleRepo()
	read := repo.addPermission("quotations.read", "View quotations", "quotations")
	write := repo.addPermission("quotations.write", "Create & edit quotations", "quotations")
	svc := newTestRoleService(repo)

	got, err := svc.CreateRole(context.Background(), CreateRoleRequest{
		Name:        "sales",
		Description: "Sales team",
		Permissions: []string{read.ID.String(), write.ID.String()},
	})
	require.NoError(t, err)

	assert.Equal(t, "sales", got.Name)
	assert.False(t, got.IsSystem)
	require.Len(t, got.Permissions, 2)
}

func TestCreateRole_InvalidPermissionID(t *testing.T) {
	repo := newFakeRoleRepo()
	svc := newTestRoleService(repo)

	_, err := svc.CreateRole(context.Background(), CreateRoleRequest{
		Name:        "sales",
		Permissions: []string{"not-a-uuid"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid permission id")
	// Nothing persisted on a rejected request
	assert.Empty(t, repo.roles)
}

func TestUpdateRolePermissions_ReplacesSet(t *testing.T) {
	repo := newFakeRoleRepo()
	read := repo.addPermission("tasks.read", "View tasks", "tasks")
	write := repo.addPermission("tasks.write", "Manage tasks", "tasks")
	svc := newTestRoleService(repo)

	created, err := svc.CreateRole(context.Background(), CreateRoleRequest{
		Name:        "ops",
		Permissions: []string{read.ID.String()},
	})
	require.NoError(t, err)

	got, err := svc.UpdateRolePermissions(context.Background(), created.ID, UpdateRolePermissionsRequest{
		PermissionIDs: []string{write.ID.String()},
	})
	require.NoError(t, err)
	require.Len(t, got.Permissions, 1)
	assert.Equal(t, "tasks.write", got.Permissions[0].Code)
}

func TestDeleteRole_SystemRoleProtected(t *testing.T) {
	repo := newFakeRoleRepo()
	svc := newTestRoleService(repo)

	admin := &model.Role{Name: model.RoleAdmin, IsSystem: true}
	require.NoError(t, repo.Create(context.Background(), admin))

	err := svc.DeleteRole(context.Background(), admin.ID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "system role")

	custom := &model.Role{Name: "contractors"}
	require.NoError(t, repo.Create(context.Background(), custom))
	assert.NoError(t, svc.DeleteRole(context.Background(), custom.ID.String()))
	_, err = repo.FindByID(context.Background(), custom.ID)
	assert.Error(t, err)
}

func TestSeedDefaultRolesAndPermissions(t *testing.T) {
	repo := newFakeRoleRepo()
	svc := newTestRoleService(repo)

	require.NoError(t, svc.SeedDefaultRolesAndPermissions(context.Background()))

	for _, name := range []string{model.RoleAdmin, model.RoleManager, model.RoleStaff} {
		role, err := repo.FindByName(context.Background(), name)
		require.NoError(t, err, "role %s should be seeded", name)
		assert.True(t, role.IsSystem)
		assert.NotEmpty(t, role.Permissions)
	}

	adminCodes, err := svc.GetPermissionsByRoleName(context.Background(), model.RoleAdmin)
	require.NoError(t, err)
	assert.Contains(t, adminCodes, "roles.manage")

	staffCodes, err := svc.GetPermissionsByRoleName(context.Background(), model.RoleStaff)
	require.NoError(t, err)
	assert.NotContains(t, staffCodes, "roles.manage")

	// Seeding again must not duplicate catalog entries or roles
	require.NoError(t, svc.SeedDefaultRolesAndPermissions(context.Background()))
	perms, err := repo.ListPermissions(context.Background())
	require.NoError(t, err)
	assert.Len(t, perms, 27)
	roles, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, roles, 3)
}
