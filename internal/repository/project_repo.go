package repository

import (
	"context"

	"digiwave-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectListFilter narrows project list queries.
type ProjectListFilter struct {
	Status string
	Search string // matched against name and client_name
	Page   int
	Limit  int
}

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context, filter ProjectListFilter) ([]model.Project, int64, error)
	Update(ctx context.Context, project *model.Project) error
	ReplaceTechnologies(ctx context.Context, project *model.Project, technologies []model.Technology) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return GetDB(ctx, r.db).Create(project).Error
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	err := GetDB(ctx, r.db).
		Preload("AppMode").Preload("Technologies").
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, filter ProjectListFilter) ([]model.Project, int64, error) {
	var projects []model.Project
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Project{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR client_name ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := query.
		Preload("AppMode").Preload("Technologies").
		Order("created_at desc").Offset(offset).Limit(filter.Limit).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	return GetDB(ctx, r.db).Omit("Technologies").Save(project).Error
}

func (r *projectRepository) ReplaceTechnologies(ctx context.Context, project *model.Project, technologies []model.Technology) error {
	return GetDB(ctx, r.db).Model(project).Association("Technologies").Replace(technologies)
}

func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Project{}).Error
}

func (r *projectRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := GetDB(ctx, r.db).Model(&model.Project{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}
