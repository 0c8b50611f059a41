package repository

import (
	"context"
	"time"

	"digiwave-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QuotationListFilter narrows quotation list queries.
type QuotationListFilter struct {
	Status string
	Search string // matched against quotation_no and client_name
	Page   int
	Limit  int
}

type QuotationRepository interface {
	Create(ctx context.Context, quotation *model.Quotation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Quotation, error)
	List(ctx context.Context, filter QuotationListFilter) ([]model.Quotation, int64, error)
	Update(ctx context.Context, quotation *model.Quotation) error
	ReplaceServices(ctx context.Context, quotationID uuid.UUID, services []model.QuotationService) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByPrefix(ctx context.Context, prefix string) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	SumGrandTotalInRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

type quotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) QuotationRepository {
	return &quotationRepository{db: db}
}

func (r *quotationRepository) Create(ctx context.Context, quotation *model.Quotation) error {
	return GetDB(ctx, r.db).Create(quotation).Error
}

func (r *quotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Quotation, error) {
	var quotation model.Quotation
	err := GetDB(ctx, r.db).
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&quotation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quotation, nil
}

func (r *quotationRepository) List(ctx context.Context, filter QuotationListFilter) ([]model.Quotation, int64, error) {
	var quotations []model.Quotation
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.Quotation{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("quotation_no ILIKE ? OR client_name ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := query.
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Order("created_at desc").Offset(offset).Limit(filter.Limit).
		Find(&quotations).Error
	if err != nil {
		return nil, 0, err
	}

	return quotations, total, nil
}

func (r *quotationRepository) Update(ctx context.Context, quotation *model.Quotation) error {
	// Save without touching Services; the line item set is replaced
	// explicitly via ReplaceServices inside the same transaction.
	return GetDB(ctx, r.db).Omit("Services").Save(quotation).Error
}

func (r *quotationRepository) ReplaceServices(ctx context.Context, quotationID uuid.UUID, services []model.QuotationService) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("quotation_id = ?", quotationID).Delete(&model.QuotationService{}).Error; err != nil {
		return err
	}
	for i := range services {
		services[i].QuotationID = quotationID
	}
	return db.Create(&services).Error
}

func (r *quotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Quotation{}).Error
}

func (r *quotationRepository) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Unscoped().Model(&model.Quotation{}).
		Where("quotation_no LIKE ?", prefix+"%").Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *quotationRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := GetDB(ctx, r.db).Model(&model.Quotation{}).
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

func (r *quotationRepository) SumGrandTotalInRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := GetDB(ctx, r.db).Model(&model.Quotation{}).
		Select("SUM(grand_total)").
		Where("quotation_date >= ? AND quotation_date <= ?", from, to).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
