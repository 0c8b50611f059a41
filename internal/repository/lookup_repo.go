package repository

import (
	"context"

	"digiwave-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LookupRepository covers the small reference tables that only need
// name-based CRUD: technologies, app modes and designations.
type LookupRepository interface {
	CreateTechnology(ctx context.Context, t *model.Technology) error
	ListTechnologies(ctx context.Context) ([]model.Technology, error)
	DeleteTechnology(ctx context.Context, id uuid.UUID) error

	CreateAppMode(ctx context.Context, m *model.AppMode) error
	ListAppModes(ctx context.Context) ([]model.AppMode, error)
	DeleteAppMode(ctx context.Context, id uuid.UUID) error

	CreateDesignation(ctx context.Context, d *model.Designation) error
	ListDesignations(ctx context.Context) ([]model.Designation, error)
	DeleteDesignation(ctx context.Context, id uuid.UUID) error
}

type lookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository(db *gorm.DB) LookupRepository {
	return &lookupRepository{db: db}
}

func (r *lookupRepository) CreateTechnology(ctx context.Context, t *model.Technology) error {
	return GetDB(ctx, r.db).Create(t).Error
}

func (r *lookupRepository) ListTechnologies(ctx context.Context) ([]model.Technology, error) {
	var items []model.Technology
	if err := GetDB(ctx, r.db).Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *lookupRepository) DeleteTechnology(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Technology{}).Error
}

func (r *lookupRepository) CreateAppMode(ctx context.Context, m *model.AppMode) error {
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *lookupRepository) ListAppModes(ctx context.Context) ([]model.AppMode, error) {
	var items []model.AppMode
	if err := GetDB(ctx, r.db).Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *lookupRepository) DeleteAppMode(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.AppMode{}).Error
}

func (r *lookupRepository) CreateDesignation(ctx context.Context, d *model.Designation) error {
	return GetDB(ctx, r.db).Create(d).Error
}

func (r *lookupRepository) ListDesignations(ctx context.Context) ([]model.Designation, error) {
	var items []model.Designation
	if err := GetDB(ctx, r.db).Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *lookupRepository) DeleteDesignation(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Designation{}).Error
}
