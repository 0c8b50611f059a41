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

type CreatePaymentRequest struct {
	ProjectID   string `json:"project_id" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	PaymentDate string `json:"payment_date"` // YYYY-MM-DD, defaults to today
	Method      string `json:"method" binding:"omitempty,oneof=CASH BANK_TRANSFER UPI CHEQUE"`
	Reference   string `json:"reference"`
	Note        string `json:"note"`
}

type PaymentFilter struct {
	ProjectID string
	From      string
	To        string
	Search    string
	Page      int
	Limit     int
}

type PaymentResponse struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name,omitempty"`
	Amount      string `json:"amount"`
	PaymentDate string `json:"payment_date"`
	Method      string `json:"method"`
	Reference   string `json:"reference"`
	Note        string `json:"note"`
	ReceivedBy  *string `json:"received_by"`
	Receiver    string  `json:"receiver,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// --- Interface ---

type PaymentService interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest, userID string) (PaymentResponse, error)
	ListPayments(ctx context.Context, filter PaymentFilter) ([]PaymentResponse, int64, error)
	GetPayment(ctx context.Context, id string) (PaymentResponse, error)
	DeletePayment(ctx context.Context, id string, userID string) error
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	projectRepo repository.ProjectRepository
	audit       AuditService
	notifier    Notifier
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	projectRepo repository.ProjectRepository,
	audit AuditService,
	notifier Notifier,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		projectRepo: projectRepo,
		audit:       audit,
		notifier:    notifier,
	}
}

// --- Implementation ---

func (s *paymentService) CreatePayment(ctx context.Context, req CreatePaymentRequest, userID string) (PaymentResponse, error) {
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("invalid project_id: %w", err)
	}
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return PaymentResponse{}, fmt.Errorf("referenced project not found: %w", err)
	}

	amount := pricing.ParseAmount(req.Amount)
	if amount.IsZero() {
		return PaymentResponse{}, fmt.Errorf("amount must be a positive number")
	}

	paymentDate := time.Now()
	if req.PaymentDate != "" {
		parsed, parseErr := time.Parse("2006-01-02", req.PaymentDate)
		if parseErr != nil {
			return PaymentResponse{}, fmt.Errorf("invalid payment_date: %w", parseErr)
		}
		paymentDate = parsed
	}

	method := req.Method
	if method == "" {
		method = model.PaymentBankTransfer
	}

	receiverID, err := parseOptionalUUID(userID)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("invalid user id: %w", err)
	}

	payment := &model.Payment{
		ProjectID:   projectID,
		Amount:      amount,
		PaymentDate: paymentDate,
		Method:      method,
		Reference:   req.Reference,
		Note:        req.Note,
		ReceivedBy:  receiverID,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return PaymentResponse{}, fmt.Errorf("failed to create payment: %w", err)
	}

	s.audit.Record(ctx, receiverID, model.ActionCreatePayment, payment.ID.String(), payment.Reference, map[string]interface{}{
		"project_id": projectID.String(),
		"amount":     amount.StringFixed(2),
		"method":     method,
	})
	if s.notifier != nil {
		s.notifier.Publish("payment.created", "payment", payment.ID.String(), amount.StringFixed(2))
	}

	reloaded, err := s.paymentRepo.FindByID(ctx, payment.ID)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("failed to reload payment: %w", err)
	}
	return toPaymentResponse(*reloaded), nil
}

func (s *paymentService) ListPayments(ctx context.Context, filter PaymentFilter) ([]PaymentResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	repoFilter := repository.PaymentListFilter{
		Search: filter.Search,
		Page:   filter.Page,
		Limit:  filter.Limit,
	}
	if filter.ProjectID != "" {
		parsed, err := uuid.Parse(filter.ProjectID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid project_id: %w", err)
		}
		repoFilter.ProjectID = &parsed
	}
	if filter.From != "" {
		from, err := time.Parse("2006-01-02", filter.From)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid from date: %w", err)
		}
		repoFilter.From = &from
	}
	if filter.To != "" {
		to, err := time.Parse("2006-01-02", filter.To)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid to date: %w", err)
		}
		repoFilter.To = &to
	}

	payments, total, err := s.paymentRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch payments: %w", err)
	}

	result := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		result = append(result, toPaymentResponse(p))
	}
	return result, total, nil
}

func (s *paymentService) GetPayment(ctx context.Context, id string) (PaymentResponse, error) {
	paymentID, err := uuid.Parse(id)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("invalid payment id: %w", err)
	}
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("payment not found: %w", err)
	}
	return toPaymentResponse(*payment), nil
}

func (s *paymentService) DeletePayment(ctx context.Context, id string, userID string) error {
	paymentID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid payment id: %w", err)
	}

	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("payment not found: %w", err)
	}

	if err := s.paymentRepo.Delete(ctx, paymentID); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	actorID, _ := parseOptionalUUID(userID)
	s.audit.Record(ctx, actorID, model.ActionDeletePayment, payment.ID.String(), payment.Reference, map[string]interface{}{
		"amount": payment.Amount.StringFixed(2),
	})
	return nil
}

// --- Mapping ---

func toPaymentResponse(p model.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:          p.ID.String(),
		ProjectID:   p.ProjectID.String(),
		Amount:      p.Amount.StringFixed(2),
		PaymentDate: p.PaymentDate.Format("2006-01-02"),
		Method:      p.Method,
		Reference:   p.Reference,
		Note:        p.Note,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
	if p.Project != nil {
		resp.ProjectName = p.Project.Name
	}
	if p.ReceivedBy != nil {
		s := p.ReceivedBy.String()
		resp.ReceivedBy = &s
	}
	if p.Receiver != nil {
		resp.Receiver = p.Receiver.Username
	}
	return resp
}
