package repository

import (
	"context"
	"time"

	"digiwave-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentListFilter narrows payment list queries.
type PaymentListFilter struct {
	ProjectID *uuid.UUID
	From      *time.Time
	To        *time.Time
	Search    string // matched against reference and note
	Page      int
	Limit     int
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	List(ctx context.Context, filter PaymentListFilter) ([]model.Payment, int64, error)
	ListInRange(ctx context.Context, from, to time.Time) ([]model.Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SumInRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	TopProjectsByRevenue(ctx context.Context, from, to time.Time, limit int) ([]model.ProjectRevenue, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	return GetDB(ctx, r.db).Create(payment).Error
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	err := GetDB(ctx, r.db).Preload("Project").Preload("Receiver").
		First(&payment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) List(ctx context.Context, filter PaymentListFilter) ([]model.Payment, int64, error) {
	var payments []model.Payment
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Payment{})
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.From != nil {
		query = query.Where("payment_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("payment_date <= ?", *filter.To)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("reference ILIKE ? OR note ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := query.Preload("Project").Preload("Receiver").
		Order("payment_date desc").Offset(offset).Limit(filter.Limit).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

func (r *paymentRepository) ListInRange(ctx context.Context, from, to time.Time) ([]model.Payment, error) {
	var payments []model.Payment
	err := GetDB(ctx, r.db).Preload("Project").
		Where("payment_date >= ? AND payment_date <= ?", from, to).
		Order("payment_date asc").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Payment{}).Error
}

func (r *paymentRepository) SumInRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := GetDB(ctx, r.db).Model(&model.Payment{}).
		Select("SUM(amount)").
		Where("payment_date >= ? AND payment_date <= ?", from, to).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *paymentRepository) TopProjectsByRevenue(ctx context.Context, from, to time.Time, limit int) ([]model.ProjectRevenue, error) {
	var rows []model.ProjectRevenue
	err := GetDB(ctx, r.db).Raw(`
		SELECT p.id::text AS project_id, p.name AS project_name, p.client_name, SUM(pm.amount) AS total_paid
		FROM payments pm
		INNER JOIN projects p ON p.id = pm.project_id
		WHERE pm.payment_date >= ? AND pm.payment_date <= ?
		GROUP BY p.id, p.name, p.client_name
		ORDER BY total_paid DESC
		LIMIT ?
	`, from, to, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
