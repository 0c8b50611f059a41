package repository

import (
	"context"
	"time"

	"digiwave-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HostingListFilter narrows hosting list queries.
type HostingListFilter struct {
	ProjectID   *uuid.UUID
	ServiceType string
	Search      string // matched against provider and domain name
	Page        int
	Limit       int
}

type HostingRepository interface {
	Create(ctx context.Context, hosting *model.Hosting) error
	Update(ctx context.Context, hosting *model.Hosting) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Hosting, error)
	List(ctx context.Context, filter HostingListFilter) ([]model.Hosting, int64, error)
	ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]model.Hosting, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type hostingRepository struct {
	db *gorm.DB
}

func NewHostingRepository(db *gorm.DB) HostingRepository {
	return &hostingRepository{db: db}
}

func (r *hostingRepository) Create(ctx context.Context, hosting *model.Hosting) error {
	return GetDB(ctx, r.db).Create(hosting).Error
}

func (r *hostingRepository) Update(ctx context.Context, hosting *model.Hosting) error {
	return GetDB(ctx, r.db).Save(hosting).Error
}

func (r *hostingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Hosting, error) {
	var hosting model.Hosting
	if err := GetDB(ctx, r.db).Preload("Project").First(&hosting, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &hosting, nil
}

func (r *hostingRepository) List(ctx context.Context, filter HostingListFilter) ([]model.Hosting, int64, error) {
	var entries []model.Hosting
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Hosting{})
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.ServiceType != "" {
		query = query.Where("service_type = ?", filter.ServiceType)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("provider ILIKE ? OR domain_name ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := query.Preload("Project").Order("expiry_date asc").
		Offset(offset).Limit(filter.Limit).Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *hostingRepository) ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]model.Hosting, error) {
	var entries []model.Hosting
	err := GetDB(ctx, r.db).Preload("Project").
		Where("expiry_date <= ?", cutoff).
		Order("expiry_date asc").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *hostingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Hosting{}).Error
}
