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

type MarkAttendanceRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Date     string `json:"date"` // YYYY-MM-DD, defaults to today
	Status   string `json:"status" binding:"required,oneof=PRESENT ABSENT HALF_DAY LEAVE"`
	CheckIn  string `json:"check_in"`  // HH:MM, optional
	CheckOut string `json:"check_out"` // HH:MM, optional
	Note     string `json:"note"`
}

type AttendanceFilter struct {
	UserID string
	From   string
	To     string
	Status string
	Page   int
	Limit  int
}

type AttendanceResponse struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	Username string  `json:"username,omitempty"`
	Date     string  `json:"date"`
	Status   string  `json:"status"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	Note     string  `json:"note"`
}

// MonthlySummary aggregates one user's attendance for a calendar month.
type MonthlySummary struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Present  int    `json:"present"`
	Absent   int    `json:"absent"`
	HalfDay  int    `json:"half_day"`
	OnLeave  int    `json:"on_leave"`
}

// --- Interface ---

type AttendanceService interface {
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, int64, error)
	MonthlyReport(ctx context.Context, year int, month time.Month) ([]MonthlySummary, error)
}

type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
	userRepo       repository.UserRepository
}

func NewAttendanceService(attendanceRepo repository.AttendanceRepository, userRepo repository.UserRepository) AttendanceService {
	return &attendanceService{attendanceRepo: attendanceRepo, userRepo: userRepo}
}

// --- Implementation ---

func (s *attendanceService) MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return AttendanceResponse{}, fmt.Errorf("invalid user_id: %w", err)
	}
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return AttendanceResponse{}, fmt.Errorf("user not found: %w", err)
	}

	date := time.Now().Truncate(24 * time.Hour)
	if req.Date != "" {
		parsed, parseErr := time.Parse("2006-01-02", req.Date)
		if parseErr != nil {
			return AttendanceResponse{}, fmt.Errorf("invalid date: %w", parseErr)
		}
		date = parsed
	}

	att := &model.Attendance{
		UserID: userID,
		Date:   date,
		Status: req.Status,
		Note:   req.Note,
	}
	if att.CheckIn, err = parseClock(date, req.CheckIn, "check_in"); err != nil {
		return AttendanceResponse{}, err
	}
	if att.CheckOut, err = parseClock(date, req.CheckOut, "check_out"); err != nil {
		return AttendanceResponse{}, err
	}

	if err := s.attendanceRepo.Upsert(ctx, att); err != nil {
		return AttendanceResponse{}, fmt.Errorf("failed to mark attendance: %w", err)
	}

	saved, err := s.attendanceRepo.FindByUserAndDate(ctx, userID, date)
	if err != nil {
		return AttendanceResponse{}, fmt.Errorf("failed to reload attendance: %w", err)
	}
	return toAttendanceResponse(*saved), nil
}

func (s *attendanceService) ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	repoFilter := repository.AttendanceListFilter{
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

	records, total, err := s.attendanceRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch attendance: %w", err)
	}

	result := make([]AttendanceResponse, 0, len(records))
	for _, rec := range records {
		result = append(result, toAttendanceResponse(rec))
	}
	return result, total, nil
}

func (s *attendanceService) MonthlyReport(ctx context.Context, year int, month time.Month) ([]MonthlySummary, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	records, err := s.attendanceRepo.ListInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendance: %w", err)
	}

	byUser := make(map[uuid.UUID]*MonthlySummary)
	order := make([]uuid.UUID, 0)
	for _, rec := range records {
		summary, ok := byUser[rec.UserID]
		if !ok {
			summary = &MonthlySummary{UserID: rec.UserID.String()}
			if rec.User != nil {
				summary.Username = rec.User.Username
			}
			byUser[rec.UserID] = summary
			order = append(order, rec.UserID)
		}
		switch rec.Status {
		case model.AttendancePresent:
			summary.Present++
		case model.AttendanceAbsent:
			summary.Absent++
		case model.AttendanceHalfDay:
			summary.HalfDay++
		case model.AttendanceOnLeave:
			summary.OnLeave++
		}
	}

	result := make([]MonthlySummary, 0, len(order))
	for _, id := range order {
		result = append(result, *byUser[id])
	}
	return result, nil
}

// --- Helpers ---

func parseClock(date time.Time, clock, field string) (*time.Time, error) {
	if clock == "" {
		return nil, nil
	}
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", field, err)
	}
	at := time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, date.Location())
	return &at, nil
}

// --- Mapping ---

func toAttendanceResponse(a model.Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:     a.ID.String(),
		UserID: a.UserID.String(),
		Date:   a.Date.Format("2006-01-02"),
		Status: a.Status,
		Note:   a.Note,
	}
	if a.User != nil {
		resp.Username = a.User.Username
	}
	if a.CheckIn != nil {
		s := a.CheckIn.Format("15:04")
		resp.CheckIn = &s
	}
	if a.CheckOut != nil {
		s := a.CheckOut.Format("15:04")
		resp.CheckOut = &s
	}
	return resp
}
