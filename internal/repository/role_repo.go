package repository

import (
	"context"

	"digiwave-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleRepository persists roles and the permission catalog. Permission
// assignment goes through the role_permissions join managed by gorm's
// many2many association.
type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	Update(ctx context.Context, role *model.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Role, error)
	FindByIDWithPermissions(ctx context.Context, id uuid.UUID) (*model.Role, error)
	FindByName(ctx context.Context, name string) (*model.Role, error)
	ListAll(ctx context.Context) ([]model.Role, error)
	ListPermissions(ctx context.Context) ([]model.Permission, error)
	UpdatePermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error
	GetPermissionsByRoleName(ctx context.Context, roleName string) ([]string, error)
	FindOrCreatePermission(ctx context.Context, perm *model.Permission) error
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(ctx context.Context, role *model.Role) error {
	return GetDB(ctx, r.db).Create(role).Error
}

func (r *roleRepository) Update(ctx context.Context, role *model.Role) error {
	return GetDB(ctx, r.db).Save(role).Error
}

func (r *roleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.Role{}, "id = ?", id).Error
}

func (r *roleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Role, error) {
	return r.findOne(ctx, false, "id = ?", id)
}

func (r *roleRepository) FindByIDWithPermissions(ctx context.Context, id uuid.UUID) (*model.Role, error) {
	return r.findOne(ctx, true, "id = ?", id)
}

func (r *roleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	return r.findOne(ctx, false, "name = ?", name)
}

func (r *roleRepository) findOne(ctx context.Context, withPerms bool, query string, arg interface{}) (*model.Role, error) {
	db := GetDB(ctx, r.db)
	if withPerms {
		db = db.Preload("Permissions")
	}
	var role model.Role
	if err := db.Where(query, arg).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) ListAll(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := GetDB(ctx, r.db).Preload("Permissions").Order("name asc").Find(&roles).Error
	return roles, err
}

func (r *roleRepository) ListPermissions(ctx context.Context) ([]model.Permission, error) {
	var perms []model.Permission
	// group is a reserved word in postgres, hence the quoting
	err := GetDB(ctx, r.db).Order("\"group\" asc, code asc").Find(&perms).Error
	return perms, err
}

// UpdatePermissions replaces the role's permission set with the given ids.
// Unknown ids are silently skipped by the IN lookup; an empty id list
// clears the set.
func (r *roleRepository) UpdatePermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	db := GetDB(ctx, r.db)

	var role model.Role
	if err := db.First(&role, "id = ?", roleID).Error; err != nil {
		return err
	}

	perms := make([]model.Permission, 0, len(permissionIDs))
	if len(permissionIDs) > 0 {
		if err := db.Find(&perms, "id IN ?", permissionIDs).Error; err != nil {
			return err
		}
	}

	return db.Model(&role).Association("Permissions").Replace(perms)
}

func (r *roleRepository) GetPermissionsByRoleName(ctx context.Context, roleName string) ([]string, error) {
	role, err := r.findOne(ctx, true, "name = ?", roleName)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(role.Permissions))
	for _, p := range role.Permissions {
		codes = append(codes, p.Code)
	}
	return codes, nil
}

// FindOrCreatePermission upserts a catalog entry by code. Used by the
// startup seeder so new permission codes appear after a deploy without a
// migration; Assign refreshes the display fields of existing entries in
// case the catalog renamed them.
func (r *roleRepository) FindOrCreatePermission(ctx context.Context, perm *model.Permission) error {
	return GetDB(ctx, r.db).
		Where(model.Permission{Code: perm.Code}).
		Assign(model.Permission{Name: perm.Name, Group: perm.Group}).
		FirstOrCreate(perm).Error
}
