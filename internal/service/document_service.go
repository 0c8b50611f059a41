package service

import (
	"context"
	"fmt"
	"time"

	"digiwave-backend/internal/model"
	"digiwave-backend/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateDocumentRequest struct {
	Name      string `json:"name" binding:"required"`
	Category  string `json:"category" binding:"omitempty,oneof=CONTRACT INVOICE IDENTITY OTHER"`
	FileURL   string `json:"file_url" binding:"required,url"`
	ProjectID string `json:"project_id"`
}

type DocumentFilter struct {
	ProjectID string
	Category  string
	Search    string
	Page      int
	Limit     int
}

type DocumentResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	FileURL    string  `json:"file_url"`
	ProjectID  *string `json:"project_id"`
	UploadedBy *string `json:"uploaded_by"`
	Uploader   string  `json:"uploader,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// --- Interface ---

type DocumentService interface {
	CreateDocument(ctx context.Context, req CreateDocumentRequest, userID string) (DocumentResponse, error)
	ListDocuments(ctx context.Context, filter DocumentFilter) ([]DocumentResponse, int64, error)
	GetDocument(ctx context.Context, id string) (DocumentResponse, error)
	DeleteDocument(ctx context.Context, id string) error
}

type documentService struct {
	documentRepo repository.DocumentRepository
	projectRepo  repository.ProjectRepository
}

func NewDocumentService(documentRepo repository.DocumentRepository, projectRepo repository.ProjectRepository) DocumentService {
	return &documentService{documentRepo: documentRepo, projectRepo: projectRepo}
}

// --- Implementation ---

func (s *documentService) CreateDocument(ctx context.Context, req CreateDocumentRequest, userID string) (DocumentResponse, error) {
	uploaderID, err := parseOptionalUUID(userID)
	if err != nil {
		return DocumentResponse{}, fmt.Errorf("invalid user id: %w", err)
	}

	category := req.Category
	if category == "" {
		category = model.DocCategoryOther
	}

	doc := &model.FileDocument{
		Name:       req.Name,
		Category:   category,
		FileURL:    req.FileURL,
		UploadedBy: uploaderID,
	}

	if req.ProjectID != "" {
		projectID, parseErr := uuid.Parse(req.ProjectID)
		if parseErr != nil {
			return DocumentResponse{}, fmt.Errorf("invalid project_id: %w", parseErr)
		}
		if _, findErr := s.projectRepo.FindByID(ctx, projectID); findErr != nil {
			return DocumentResponse{}, fmt.Errorf("referenced project not found: %w", findErr)
		}
		doc.ProjectID = &projectID
	}

	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return DocumentResponse{}, fmt.Errorf("failed to create document: %w", err)
	}

	reloaded, err := s.documentRepo.FindByID(ctx, doc.ID)
	if err != nil {
		return DocumentResponse{}, fmt.Errorf("failed to reload document: %w", err)
	}
	return toDocumentResponse(*reloaded), nil
}

func (s *documentService) ListDocuments(ctx context.Context, filter DocumentFilter) ([]DocumentResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	repoFilter := repository.DocumentListFilter{
		Category: filter.Category,
		Search:   filter.Search,
		Page:     filter.Page,
		Limit:    filter.Limit,
	}
	if filter.ProjectID != "" {
		parsed, err := uuid.Parse(filter.ProjectID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid project_id: %w", err)
		}
		repoFilter.ProjectID = &parsed
	}

	docs, total, err := s.documentRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch documents: %w", err)
	}

	result := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		result = append(result, toDocumentResponse(doc))
	}
	return result, total, nil
}

func (s *documentService) GetDocument(ctx context.Context, id string) (DocumentResponse, error) {
	docID, err := uuid.Parse(id)
	if err != nil {
		return DocumentResponse{}, fmt.Errorf("invalid document id: %w", err)
	}
	doc, err := s.documentRepo.FindByID(ctx, docID)
	if err != nil {
		return DocumentResponse{}, fmt.Errorf("document not found: %w", err)
	}
	return toDocumentResponse(*doc), nil
}

func (s *documentService) DeleteDocument(ctx context.Context, id string) error {
	docID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid document id: %w", err)
	}
	if _, err := s.documentRepo.FindByID(ctx, docID); err != nil {
		return fmt.Errorf("document not found: %w", err)
	}
	return s.documentRepo.Delete(ctx, docID)
}

// --- Mapping ---

func toDocumentResponse(d model.FileDocument) DocumentResponse {
	resp := DocumentResponse{
		ID:        d.ID.String(),
		Name:      d.Name,
		Category:  d.Category,
		FileURL:   d.FileURL,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
	}
	if d.ProjectID != nil {
		s := d.ProjectID.String()
		resp.ProjectID = &s
	}
	if d.UploadedBy != nil {
		s := d.UploadedBy.String()
		resp.UploadedBy = &s
	}
	if d.Uploader != nil {
		resp.Uploader = d.Uploader.Username
	}
	return resp
}
