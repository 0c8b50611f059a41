package service

import (
	"context"
	"fmt"
	"time"

	"digiwave-backend/internal/model"
	"digiwave-backend/internal/pricing"
	"digiwave-backend/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateHostingRequest struct {
	ProjectID     string `json:"project_id"`
	ServiceType   string `json:"service_type" binding:"required,oneof=DOMAIN SERVER SSL EMAIL"`
	Provider      string `json:"provider" binding:"required"`
	DomainName    string `json:"domain_name"`
	PurchaseDate  string `json:"purchase_date" binding:"required"` // YYYY-MM-DD
	ExpiryDate    string `json:"expiry_date" binding:"required"`
	RenewalAmount string `json:"renewal_amount"`
	Note          string `json:"note"`
}

type UpdateHostingRequest struct {
	Provider      *string `json:"provider"`
	DomainName    *string `json:"domain_name"`
	ExpiryDate    *string `json:"expiry_date"`
	RenewalAmount *string `json:"renewal_amount"`
	Note          *string `json:"note"`
}

type HostingFilter struct {
	ProjectID   string
	ServiceType string
	Search      string
	Page        int
	Limit       int
}

type HostingResponse struct {
	ID            string  `json:"id"`
	ProjectID     *string `json:"project_id"`
	ProjectName   string  `json:"project_name,omitempty"`
	ServiceType   string  `json:"service_type"`
	Provider      string  `json:"provider"`
	DomainName    string  `json:"domain_name"`
	PurchaseDate  string  `json:"purchase_date"`
	ExpiryDate    string  `json:"expiry_date"`
	RenewalAmount string  `json:"renewal_amount"`
	DaysToExpiry  int     `json:"days_to_expiry"`
	Note          string  `json:"note"`
}

// --- Interface ---

type HostingService interface {
	CreateHosting(ctx context.Context, req CreateHostingRequest) (HostingResponse, error)
	ListHosting(ctx context.Context, filter HostingFilter) ([]HostingResponse, int64, error)
	GetHosting(ctx context.Context, id string) (HostingResponse, error)
	UpdateHosting(ctx context.Context, id string, req UpdateHostingRequest) (HostingResponse, error)
	DeleteHosting(ctx context.Context, id string) error
	ListExpiring(ctx context.Context, withinDays int) ([]HostingResponse, error)
}

type hostingService struct {
	hostingRepo repository.HostingRepository
	projectRepo repository.ProjectRepository
}

func NewHostingService(hostingRepo repository.HostingRepository, projectRepo repository.ProjectRepository) HostingService {
	return &hostingService{hostingRepo: hostingRepo, projectRepo: projectRepo}
}

// --- Implementation ---

func (s *hostingService) CreateHosting(ctx context.Context, req CreateHostingRequest) (HostingResponse, error) {
	purchase, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return HostingResponse{}, fmt.Errorf("invalid purchase_date: %w", err)
	}
	expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return HostingResponse{}, fmt.Errorf("invalid expiry_date: %w", err)
	}
	if expiry.Before(purchase) {
		return HostingResponse{}, fmt.Errorf("expiry_date must not precede purchase_date")
	}

	hosting := &model.Hosting{
		ServiceType:   req.ServiceType,
		Provider:      req.Provider,
		DomainName:    req.DomainName,
		PurchaseDate:  purchase,
		ExpiryDate:    expiry,
		RenewalAmount: pricing.ParseAmount(req.RenewalAmount),
		Note:          req.Note,
	}

	if req.ProjectID != "" {
		projectID, parseErr := uuid.Parse(req.ProjectID)
		if parseErr != nil {
			return HostingResponse{}, fmt.Errorf("invalid project_id: %w", parseErr)
		}
		if _, findErr := s.projectRepo.FindByID(ctx, projectID); findErr != nil {
			return HostingResponse{}, fmt.Errorf("referenced project not found: %w", findErr)
		}
		hosting.ProjectID = &projectID
	}

	if err := s.hostingRepo.Create(ctx, hosting); err != nil {
		return HostingResponse{}, fmt.Errorf("failed to create hosting entry: %w", err)
	}

	reloaded, err := s.hostingRepo.FindByID(ctx, hosting.ID)
	if err != nil {
		return HostingResponse{}, fmt.Errorf("failed to reload hosting entry: %w", err)
	}
	return toHostingResponse(*reloaded), nil
}

func (s *hostingService) ListHosting(ctx context.Context, filter HostingFilter) ([]HostingResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	repoFilter := repository.HostingListFilter{
		ServiceType: filter.ServiceType,
		Search:      filter.Search,
		Page:        filter.Page,
		Limit:       filter.Limit,
	}
	if filter.ProjectID != "" {
		parsed, err := uuid.Parse(filter.ProjectID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid project_id: %w", err)
		}
		repoFilter.ProjectID = &parsed
	}

	entries, total, err := s.hostingRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch hosting entries: %w", err)
	}

	result := make([]HostingResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, toHostingResponse(entry))
	}
	return result, total, nil
}

func (s *hostingService) GetHosting(ctx context.Context, id string) (HostingResponse, error) {
	hostingID, err := uuid.Parse(id)
	if err != nil {
		return HostingResponse{}, fmt.Errorf("invalid hosting id: %w", err)
	}
	entry, err := s.hostingRepo.FindByID(ctx, hostingID)
	if err != nil {
		return HostingResponse{}, fmt.Errorf("hosting entry not found: %w", err)
	}
	return toHostingResponse(*entry), nil
}

func (s *hostingService) UpdateHosting(ctx context.Context, id string, req UpdateHostingRequest) (HostingResponse, error) {
	hostingID, err := uuid.Parse(id)
	if err != nil {
		return HostingResponse{}, fmt.Errorf("invalid hosting id: %w", err)
	}

	entry, err := s.hostingRepo.FindByID(ctx, hostingID)
	if err != nil {
		return HostingResponse{}, fmt.Errorf("hosting entry not found: %w", err)
	}

	if req.Provider != nil {
		entry.Provider = *req.Provider
	}
	if req.DomainName != nil {
		entry.DomainName = *req.DomainName
	}
	if req.ExpiryDate != nil {
		expiry, parseErr := time.Parse("2006-01-02", *req.ExpiryDate)
		if parseErr != nil {
			return HostingResponse{}, fmt.Errorf("invalid expiry_date: %w", parseErr)
		}
		entry.ExpiryDate = expiry
	}
	if req.RenewalAmount != nil {
		entry.RenewalAmount = pricing.ParseAmount(*req.RenewalAmount)
	}
	if req.Note != nil {
		entry.Note = *req.Note
	}

	if err := s.hostingRepo.Update(ctx, entry); err != nil {
		return HostingResponse{}, fmt.Errorf("failed to update hosting entry: %w", err)
	}
	return toHostingResponse(*entry), nil
}

func (s *hostingService) DeleteHosting(ctx context.Context, id string) error {
	hostingID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid hosting id: %w", err)
	}
	if _, err := s.hostingRepo.FindByID(ctx, hostingID); err != nil {
		return fmt.Errorf("hosting entry not found: %w", err)
	}
	return s.hostingRepo.Delete(ctx, hostingID)
}

func (s *hostingService) ListExpiring(ctx context.Context, withinDays int) ([]HostingResponse, error) {
	if withinDays <= 0 {
		withinDays = 30
	}
	cutoff := time.Now().AddDate(0, 0, withinDays)

	entries, err := s.hostingRepo.ListExpiringBefore(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expiring entries: %w", err)
	}

	result := make([]HostingResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, toHostingResponse(entry))
	}
	return result, nil
}

// --- Mapping ---

func toHostingResponse(h model.Hosting) HostingResponse {
	resp := HostingResponse{
		ID:            h.ID.String(),
		ServiceType:   h.ServiceType,
		Provider:      h.Provider,
		DomainName:    h.DomainName,
		PurchaseDate:  h.PurchaseDate.Format("2006-01-02"),
		ExpiryDate:    h.ExpiryDate.Format("2006-01-02"),
		RenewalAmount: h.RenewalAmount.StringFixed(2),
		DaysToExpiry:  int(time.Until(h.ExpiryDate).Hours() / 24),
		Note:          h.Note,
	}
	if h.ProjectID != nil {
		s := h.ProjectID.String()
		resp.ProjectID = &s
	}
	if h.Project != nil {
		resp.ProjectName = h.Project.Name
	}
	return resp
}
