package repository

import (
	"context"

	"digiwave-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskListFilter narrows task list queries.
type TaskListFilter struct {
	ProjectID  *uuid.UUID
	AssigneeID *uuid.UUID
	Status     string
	Search     string // matched against title
	Page       int
	Limit      int
}

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, filter TaskListFilter) ([]model.Task, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return GetDB(ctx, r.db).Create(task).Error
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return GetDB(ctx, r.db).Save(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	err := GetDB(ctx, r.db).Preload("Project").Preload("Assignee").
		First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, filter TaskListFilter) ([]model.Task, int64, error) {
	var tasks []model.Task
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Task{})
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := query.Preload("Project").Preload("Assignee").
		Order("created_at desc").Offset(offset).Limit(filter.Limit).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Task{}).Error
}
