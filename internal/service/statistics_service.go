package service

import (
	"context"
	"fmt"
	"time"

	"digiwave-backend/internal/model"
	"digiwave-backend/internal/repository"
)

// --- Interface ---

// StatisticsService aggregates the dashboard headline numbers and the
// revenue leaderboard from the underlying repositories.
type StatisticsService interface {
	GetDashboard(ctx context.Context, from, to time.Time) (*model.DashboardResponse, error)
	GetTopProjects(ctx context.Context, from, to time.Time, limit int) ([]model.ProjectRevenue, error)
}

type statisticsService struct {
	projectRepo   repository.ProjectRepository
	quotationRepo repository.QuotationRepository
	paymentRepo   repository.PaymentRepository
	leaveRepo     repository.LeaveRepository
	hostingRepo   repository.HostingRepository
}

func NewStatisticsService(
	projectRepo repository.ProjectRepository,
	quotationRepo repository.QuotationRepository,
	paymentRepo repository.PaymentRepository,
	leaveRepo repository.LeaveRepository,
	hostingRepo repository.HostingRepository,
) StatisticsService {
	return &statisticsService{
		projectRepo:   projectRepo,
		quotationRepo: quotationRepo,
		paymentRepo:   paymentRepo,
		leaveRepo:     leaveRepo,
		hostingRepo:   hostingRepo,
	}
}

// --- Implementation ---

func (s *statisticsService) GetDashboard(ctx context.Context, from, to time.Time) (*model.DashboardResponse, error) {
	projectCounts, err := s.projectRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	quotationCounts, err := s.quotationRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count quotations: %w", err)
	}

	quotationValue, err := s.quotationRepo.SumGrandTotalInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum quotation value: %w", err)
	}

	paymentTotal, err := s.paymentRepo.SumInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}

	pendingLeaves, err := s.leaveRepo.CountPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending leaves: %w", err)
	}

	expiring, err := s.hostingRepo.ListExpiringBefore(ctx, time.Now().AddDate(0, 0, 30))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expiring hosting: %w", err)
	}

	var totalProjects, activeProjects int64
	for _, count := range projectCounts {
		totalProjects += count
	}
	activeProjects = projectCounts[model.ProjectInProgress]

	var totalQuotations int64
	for _, count := range quotationCounts {
		totalQuotations += count
	}

	value, _ := quotationValue.Float64()
	payments, _ := paymentTotal.Float64()

	return &model.DashboardResponse{
		TotalProjects:      totalProjects,
		ActiveProjects:     activeProjects,
		CompletedProjects:  projectCounts[model.ProjectCompleted],
		TotalQuotations:    totalQuotations,
		QuotationValue:     value,
		TotalPayments:      payments,
		PendingLeaves:      pendingLeaves,
		ExpiringHosting:    int64(len(expiring)),
		TimeRangeStartDate: from,
		TimeRangeEndDate:   to,
	}, nil
}

func (s *statisticsService) GetTopProjects(ctx context.Context, from, to time.Time, limit int) ([]model.ProjectRevenue, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.paymentRepo.TopProjectsByRevenue(ctx, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top projects: %w", err)
	}
	return rows, nil
}
