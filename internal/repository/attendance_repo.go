package repository

import (
	"context"
	"time"

	"digiwave-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceListFilter narrows attendance list queries.
type AttendanceListFilter struct {
	UserID *uuid.UUID
	From   *time.Time
	To     *time.Time
	Status string
	Page   int
	Limit  int
}

type AttendanceRepository interface {
	// Upsert inserts or updates the row for (user_id, date).
	Upsert(ctx context.Context, att *model.Attendance) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Attendance, error)
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*model.Attendance, error)
	List(ctx context.Context, filter AttendanceListFilter) ([]model.Attendance, int64, error)
	ListInRange(ctx context.Context, from, to time.Time) ([]model.Attendance, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatusOnDate(ctx context.Context, date time.Time) (map[string]int64, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Upsert(ctx context.Context, att *model.Attendance) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "check_in", "check_out", "note", "updated_at"}),
	}).Create(att).Error
}

func (r *attendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Attendance, error) {
	var att model.Attendance
	if err := GetDB(ctx, r.db).Preload("User").First(&att, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*model.Attendance, error) {
	var att model.Attendance
	err := GetDB(ctx, r.db).
		Where("user_id = ? AND date = ?", userID, date).
		First(&att).Error
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepository) List(ctx context.Context, filter AttendanceListFilter) ([]model.Attendance, int64, error) {
	var records []model.Attendance
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Attendance{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := query.Preload("User").Order("date desc").Offset(offset).Limit(filter.Limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *attendanceRepository) ListInRange(ctx context.Context, from, to time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	err := GetDB(ctx, r.db).Preload("User").
		Where("date >= ? AND date <= ?", from, to).
		Order("date asc").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Attendance{}).Error
}

func (r *attendanceRepository) CountByStatusOnDate(ctx context.Context, date time.Time) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := GetDB(ctx, r.db).Model(&model.Attendance{}).
		Select("status, COUNT(*) as count").
		Where("date = ?", date).
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
