package service

import (
	"context"
	"fmt"

	"digiwave-backend/internal/model"
	"digiwave-backend/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateLookupRequest struct {
	Name string `json:"name" binding:"required"`
}

type LookupResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// --- Interface ---

// LookupService manages the small reference tables backing project and
// staff forms.
type LookupService interface {
	CreateTechnology(ctx context.Context, req CreateLookupRequest) (LookupResponse, error)
	ListTechnologies(ctx context.Context) ([]LookupResponse, error)
	DeleteTechnology(ctx context.Context, id string) error

	CreateAppMode(ctx context.Context, req CreateLookupRequest) (LookupResponse, error)
	ListAppModes(ctx context.Context) ([]LookupResponse, error)
	DeleteAppMode(ctx context.Context, id string) error

	CreateDesignation(ctx context.Context, req CreateLookupRequest) (LookupResponse, error)
	ListDesignations(ctx context.Context) ([]LookupResponse, error)
	DeleteDesignation(ctx context.Context, id string) error
}

type lookupService struct {
	lookupRepo repository.LookupRepository
}

func NewLookupService(lookupRepo repository.LookupRepository) LookupService {
	return &lookupService{lookupRepo: lookupRepo}
}

// --- Implementation ---

func (s *lookupService) CreateTechnology(ctx context.Context, req CreateLookupRequest) (LookupResponse, error) {
	tech := &model.Technology{Name: req.Name}
	if err := s.lookupRepo.CreateTechnology(ctx, tech); err != nil {
		return LookupResponse{}, fmt.Errorf("failed to create technology: %w", err)
	}
	return LookupResponse{ID: tech.ID.String(), Name: tech.Name}, nil
}

func (s *lookupService) ListTechnologies(ctx context.Context) ([]LookupResponse, error) {
	items, err := s.lookupRepo.ListTechnologies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch technologies: %w", err)
	}
	result := make([]LookupResponse, 0, len(items))
	for _, item := range items {
		result = append(result, LookupResponse{ID: item.ID.String(), Name: item.Name})
	}
	return result, nil
}

func (s *lookupService) DeleteTechnology(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid technology id: %w", err)
	}
	return s.lookupRepo.DeleteTechnology(ctx, parsed)
}

func (s *lookupService) CreateAppMode(ctx context.Context, req CreateLookupRequest) (LookupResponse, error) {
	mode := &model.AppMode{Name: req.Name}
	if err := s.lookupRepo.CreateAppMode(ctx, mode); err != nil {
		return LookupResponse{}, fmt.Errorf("failed to create app mode: %w", err)
	}
	return LookupResponse{ID: mode.ID.String(), Name: mode.Name}, nil
}

func (s *lookupService) ListAppModes(ctx context.Context) ([]LookupResponse, error) {
	items, err := s.lookupRepo.ListAppModes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch app modes: %w", err)
	}
	result := make([]LookupResponse, 0, len(items))
	for _, item := range items {
		result = append(result, LookupResponse{ID: item.ID.String(), Name: item.Name})
	}
	return result, nil
}

func (s *lookupService) DeleteAppMode(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid app mode id: %w", err)
	}
	return s.lookupRepo.DeleteAppMode(ctx, parsed)
}

func (s *lookupService) CreateDesignation(ctx context.Context, req CreateLookupRequest) (LookupResponse, error) {
	designation := &model.Designation{Name: req.Name}
	if err := s.lookupRepo.CreateDesignation(ctx, designation); err != nil {
		return LookupResponse{}, fmt.Errorf("failed to create designation: %w", err)
	}
	return LookupResponse{ID: designation.ID.String(), Name: designation.Name}, nil
}

func (s *lookupService) ListDesignations(ctx context.Context) ([]LookupResponse, error) {
	items, err := s.lookupRepo.ListDesignations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch designations: %w", err)
	}
	result := make([]LookupResponse, 0, len(items))
	for _, item := range items {
		result = append(result, LookupResponse{ID: item.ID.String(), Name: item.Name})
	}
	return result, nil
}

func (s *lookupService) DeleteDesignation(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid designation id: %w", err)
	}
	return s.lookupRepo.DeleteDesignation(ctx, parsed)
}
