package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"digiwave-backend/internal/model"
	"digiwave-backend/internal/repository"

	"github.com/google/uuid"
)

// ErrLeaveAlreadyDecided is returned when approving or rejecting a leave
// request that is no longer PENDING.
var ErrLeaveAlreadyDecided = errors.New("leave request has already been decided")

// --- DTOs ---

type ApplyLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=CASUAL SICK EARNED UNPAID"`
	FromDate  string `json:"from_date" binding:"required"` // YYYY-MM-DD
	ToDate    string `json:"to_date" binding:"required"`
	Reason    string `json:"reason"`
}

type RejectLeaveRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type LeaveFilter struct {
	UserID string
	Status string
	Page   int
	Limit  int
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	Username        string  `json:"username,omitempty"`
	LeaveType       string  `json:"leave_type"`
	FromDate        string  `json:"from_date"`
	ToDate          string  `json:"to_date"`
	Days            int     `json:"days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	DecidedBy       *string `json:"decided_by"`
	ApproverName    string  `json:"approver_name,omitempty"`
	DecidedAt       *string `json:"decided_at"`
	RejectionReason string  `json:"rejection_reason"`
	CreatedAt       string  `json:"created_at"`
}

// --- Interface ---

type LeaveService interface {
	ApplyLeave(ctx context.Context, req ApplyLeaveRequest, userID string) (LeaveResponse, error)
	ListLeaves(ctx context.Context, filter LeaveFilter) ([]LeaveResponse, int64, error)
	ApproveLeave(ctx context.Context, id string, approverID string) (LeaveResponse, error)
	RejectLeave(ctx context.Context, id string, approverID string, reason string) (LeaveResponse, error)
}

type leaveService struct {
	leaveRepo repository.LeaveRepository
	txManager repository.TransactionManager
	audit     AuditService
	notifier  Notifier
}

func NewLeaveService(
	leaveRepo repository.LeaveRepository,
	txManager repository.TransactionManager,
	audit AuditService,
	notifier Notifier,
) LeaveService {
	return &leaveService{
		leaveRepo: leaveRepo,
		txManager: txManager,
		audit:     audit,
		notifier:  notifier,
	}
}

// --- Implementation ---

func (s *leaveService) ApplyLeave(ctx context.Context, req ApplyLeaveRequest, userID string) (LeaveResponse, error) {
	applicantID, err := uuid.Parse(userID)
	if err != nil {
		return LeaveResponse{}, fmt.Errorf("invalid user id: %w", err)
	}

	fromDate, err := time.Parse("2006-01-02", req.FromDate)
	if err != nil {
		return LeaveResponse{}, fmt.Errorf("invalid from_date: %w", err)
	}
	toDate, err := time.Parse("2006-01-02", req.ToDate)
	if err != nil {
		return LeaveResponse{}, fmt.Errorf("invalid to_date: %w", err)
	}
	if toDate.Before(fromDate) {
		return LeaveResponse{}, fmt.Errorf("to_date must not precede from_date")
	}

	leave := &model.Leave{
		UserID:    applicantID,
		LeaveType: req.LeaveType,
		FromDate:  fromDate,
		ToDate:    toDate,
		Reason:    req.Reason,
		Status:    model.LeavePending,
	}

	if err := s.leaveRepo.Create(ctx, leave); err != nil {
		return LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	s.audit.Record(ctx, &applicantID, model.ActionApplyLeave, leave.ID.String(), req.LeaveType, map[string]interface{}{
		"from_date": req.FromDate,
		"to_date":   req.ToDate,
	})
	if s.notifier != nil {
		s.notifier.Publish("leave.applied", "leave", leave.ID.String(), req.LeaveType)
	}

	reloaded, err := s.leaveRepo.FindByID(ctx, leave.ID)
	if err != nil {
		return LeaveResponse{}, fmt.Errorf("failed to reload leave request: %w", err)
	}
	return toLeaveResponse(*reloaded), nil
}

func (s *leaveService) ListLeaves(ctx context.Context, filter LeaveFilter) ([]LeaveResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	repoFilter := repository.LeaveListFilter{
		Status: filter.Status,
		Page:   filter.Page,
		Limit:  filter.Limit,
	}
	if filter.UserID != "" {
		parsed, err := uuid.Parse(filter.UserID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid user_id: %w", err)
		}
		repoFilter.UserID = &parsed
	}

	leaves, total, err := s.leaveRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch leave requests: %w", err)
	}

	result := make([]LeaveResponse, 0, len(leaves))
	for _, leave := range leaves {
		result = append(result, toLeaveResponse(leave))
	}
	return result, total, nil
}

func (s *leaveService) ApproveLeave(ctx context.Context, id string, approverID string) (LeaveResponse, error) {
	return s.decideLeave(ctx, id, approverID, model.LeaveApproved, "")
}

func (s *leaveService) RejectLeave(ctx context.Context, id string, approverID string, reason string) (LeaveResponse, error) {
	return s.decideLeave(ctx, id, approverID, model.LeaveRejected, reason)
}

func (s *leaveService) decideLeave(ctx context.Context, id string, approverID string, status string, reason string) (LeaveResponse, error) {
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, fmt.Errorf("invalid leave id: %w", err)
	}
	deciderID, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveResponse{}, fmt.Errorf("invalid approver id: %w", err)
	}

	var leave *model.Leave
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		leave, findErr = s.leaveRepo.FindByID(txCtx, leaveID)
		if findErr != nil {
			return fmt.Errorf("leave request not found: %w", findErr)
		}

		if leave.Status != model.LeavePending {
			return ErrLeaveAlreadyDecided
		}

		now := time.Now()
		leave.Status = status
		leave.DecidedBy = &deciderID
		leave.DecidedAt = &now
		leave.RejectionReason = reason

		if updateErr := s.leaveRepo.Update(txCtx, leave); updateErr != nil {
			return fmt.Errorf("failed to update leave request: %w", updateErr)
		}
		return nil
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	action := model.ActionApproveLeave
	event := "leave.approved"
	if status == model.LeaveRejected {
		action = model.ActionRejectLeave
		event = "leave.rejected"
	}
	s.audit.Record(ctx, &deciderID, action, leave.ID.String(), leave.LeaveType, map[string]interface{}{
		"applicant": leave.UserID.String(),
	})
	if s.notifier != nil {
		s.notifier.Publish(event, "leave", leave.ID.String(), leave.LeaveType)
	}

	reloaded, err := s.leaveRepo.FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, fmt.Errorf("failed to reload leave request: %w", err)
	}
	return toLeaveResponse(*reloaded), nil
}

// --- Mapping ---

func toLeaveResponse(l model.Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		UserID:          l.UserID.String(),
		LeaveType:       l.LeaveType,
		FromDate:        l.FromDate.Format("2006-01-02"),
		ToDate:          l.ToDate.Format("2006-01-02"),
		Days:            int(l.ToDate.Sub(l.FromDate).Hours()/24) + 1,
		Reason:          l.Reason,
		Status:          l.Status,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
	}
	if l.User != nil {
		resp.Username = l.User.Username
	}
	if l.DecidedBy != nil {
		s := l.DecidedBy.String()
		resp.DecidedBy = &s
	}
	if l.Approver != nil {
		resp.ApproverName = l.Approver.Username
	}
	if l.DecidedAt != nil {
		s := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &s
	}
	return resp
}
