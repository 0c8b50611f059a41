package repository

import (
	"context"

	"digiwave-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveListFilter narrows leave list queries.
type LeaveListFilter struct {
	UserID *uuid.UUID
	Status string
	Page   int
	Limit  int
}

type LeaveRepository interface {
	Create(ctx context.Context, leave *model.Leave) error
	Update(ctx context.Context, leave *model.Leave) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Leave, error)
	List(ctx context.Context, filter LeaveListFilter) ([]model.Leave, int64, error)
	CountPending(ctx context.Context) (int64, error)
}

type leaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) Create(ctx context.Context, leave *model.Leave) error {
	return GetDB(ctx, r.db).Create(leave).Error
}

func (r *leaveRepository) Update(ctx context.Context, leave *model.Leave) error {
	return GetDB(ctx, r.db).Save(leave).Error
}

func (r *leaveRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Leave, error) {
	var leave model.Leave
	err := GetDB(ctx, r.db).Preload("User").Preload("Approver").
		First(&leave, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *leaveRepository) List(ctx context.Context, filter LeaveListFilter) ([]model.Leave, int64, error) {
	var leaves []model.Leave
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Leave{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := query.Preload("User").Preload("Approver").
		Order("created_at desc").Offset(offset).Limit(filter.Limit).
		Find(&leaves).Error
	if err != nil {
		return nil, 0, err
	}

	return leaves, total, nil
}

func (r *leaveRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Leave{}).
		Where("status = ?", model.LeavePending).
		Count(&count).Error
	return count, err
}
