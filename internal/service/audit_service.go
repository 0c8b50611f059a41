package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"digiwave-backend/internal/model"
	"digiwave-backend/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type AuditFilter struct {
	UserID string
	Action string
	Page   int
	Limit  int
}

type AuditLogResponse struct {
	ID         string  `json:"id"`
	UserID     *string `json:"user_id"`
	Username   string  `json:"username"`
	Action     string  `json:"action"`
	EntityID   string  `json:"entity_id"`
	EntityName string  `json:"entity_name"`
	Details    string  `json:"details"`
	CreatedAt  string  `json:"created_at"`
}

// --- Interface ---

// AuditService records who did what to which entity. Record is best-effort:
// a failed audit write is logged, never propagated, so it cannot fail the
// business operation it annotates.
type AuditService interface {
	Record(ctx context.Context, userID *uuid.UUID, action, entityID, entityName string, details map[string]interface{})
	ListAuditLogs(ctx context.Context, filter AuditFilter) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// --- Implementation ---

func (s *auditService) Record(ctx context.Context, userID *uuid.UUID, action, entityID, entityName string, details map[string]interface{}) {
	payload := ""
	if details != nil {
		raw, err := json.Marshal(details)
		if err == nil {
			payload = string(raw)
		}
	}

	entry := model.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    payload,
	}
	if err := s.auditRepo.Log(ctx, &entry); err != nil {
		log.Printf("audit: failed to record %s for %s: %v", action, entityID, err)
	}
}

func (s *auditService) ListAuditLogs(ctx context.Context, filter AuditFilter) ([]AuditLogResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	repoFilter := repository.AuditListFilter{
		Action: filter.Action,
		Page:   filter.Page,
		Limit:  filter.Limit,
	}
	if filter.UserID != "" {
		parsed, err := uuid.Parse(filter.UserID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid user id: %w", err)
		}
		repoFilter.UserID = &parsed
	}

	logs, total, err := s.auditRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	result := make([]AuditLogResponse, 0, len(logs))
	for _, entry := range logs {
		result = append(result, toAuditResponse(entry))
	}
	return result, total, nil
}

// --- Mapping ---

func toAuditResponse(entry model.AuditLog) AuditLogResponse {
	resp := AuditLogResponse{
		ID:         entry.ID.String(),
		Action:     entry.Action,
		EntityID:   entry.EntityID,
		EntityName: entry.EntityName,
		Details:    entry.Details,
		CreatedAt:  entry.CreatedAt.Format(time.RFC3339),
	}
	if entry.UserID != nil {
		s := entry.UserID.String()
		resp.UserID = &s
	}
	if entry.User != nil {
		resp.Username = entry.User.Username
	}
	return resp
}
