package repository

import (
	"context"

	"digiwave-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentListFilter narrows stored-file list queries.
type DocumentListFilter struct {
	ProjectID *uuid.UUID
	Category  string
	Search    string // matched against name
	Page      int
	Limit     int
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *model.FileDocument) error
	Update(ctx context.Context, doc *model.FileDocument) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.FileDocument, error)
	List(ctx context.Context, filter DocumentListFilter) ([]model.FileDocument, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *model.FileDocument) error {
	return GetDB(ctx, r.db).Create(doc).Error
}

func (r *documentRepository) Update(ctx context.Context, doc *model.FileDocument) error {
	return GetDB(ctx, r.db).Save(doc).Error
}

func (r *documentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.FileDocument, error) {
	var doc model.FileDocument
	if err := GetDB(ctx, r.db).Preload("Uploader").First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) List(ctx context.Context, filter DocumentListFilter) ([]model.FileDocument, int64, error) {
	var docs []model.FileDocument
	var total int64

	query := GetDB(ctx, r.db).Model(&model.FileDocument{})
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := query.Preload("Uploader").Order("created_at desc").
		Offset(offset).Limit(filter.Limit).Find(&docs).Error
	if err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.FileDocument{}).Error
}
