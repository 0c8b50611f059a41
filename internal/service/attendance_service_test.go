package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"digiwave-backend/internal/model"
	"digiwave-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	mu    sync.Mutex
	store map[string]*model.Attendance // keyed by user_id|date
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{store: make(map[string]*model.Attendance)}
}

func attKey(userID uuid.UUID, date time.Time) string {
	return userID.String() + "|" + date.Format("2006-01-02")
}

func (r *fakeAttendanceRepo) Upsert(_ context.Context, att *model.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := attKey(att.UserID, att.Date)
	if existing, ok := r.store[key]; ok {
		att.ID = existing.ID
	} else if att.ID == uuid.Nil {
		att.ID = uuid.New()
	}
	copied := *att
	r.store[key] = &copied
	return nil
}

func (r *fakeAttendanceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, att := range r.store {
		if att.ID == id {
			copied := *att
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("record not found")
}

func (r *fakeAttendanceRepo) FindByUserAndDate(_ context.Context, userID uuid.UUID, date time.Time) (*model.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	att, ok := r.store[attKey(userID, date)]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	copied := *att
	return &copied, nil
}

func (r *fakeAttendanceRepo) List(_ context.Context, filter repository.AttendanceListFilter) ([]model.Attendance, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Attendance, 0, len(r.store))
	for _, att := range r.store {
		if filter.UserID != nil && att.UserID != *filter.UserID {
			continue
		}
		if filter.Status != "" && att.Status != filter.Status {
			continue
		}
		out = append(out, *att)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAttendanceRepo) ListInRange(_ context.Context, from, to time.Time) ([]model.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Attendance, 0, len(r.store))
	for _, att := range r.store {
		if att.Date.Before(from) || att.Date.After(to) {
			continue
		}
		out = append(out, *att)
	}
	return out, nil
}

func (r *fakeAttendanceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, att := range r.store {
		if att.ID == id {
			delete(r.store, key)
			return nil
		}
	}
	return fmt.Errorf("record not found")
}

func (r *fakeAttendanceRepo) CountByStatusOnDate(_ context.Context, date time.Time) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, att := range r.store {
		if att.Date.Equal(date) {
			counts[att.Status]++
		}
	}
	return counts, nil
}

// fakeUserRepo recognizes any ID and returns a stub user.
type fakeUserRepo struct{}

func (fakeUserRepo) Create(_ context.Context, _ *model.User) error { return nil }

func (fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return &model.User{ID: parsed, Username: "worker"}, nil
}

func (fakeUserRepo) GetByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, fmt.Errorf("record not found")
}

func (fakeUserRepo) GetByUsername(_ context.Context, _ string) (*model.User, error) {
	return nil, fmt.Errorf("record not found")
}

func (fakeUserRepo) List(_ context.Context, _ string, _, _ int) ([]model.User, int64, error) {
	return nil, 0, nil
}

func (fakeUserRepo) ListAll(_ context.Context) ([]model.User, error) { return nil, nil }

func (fakeUserRepo) Update(_ context.Context, _ *model.User) error { return nil }

func (fakeUserRepo) Delete(_ context.Context, _ string) error { return nil }

func (fakeUserRepo) SaveRefreshToken(_ context.Context, _ *model.RefreshToken) error { return nil }

func (fakeUserRepo) GetRefreshToken(_ context.Context, _ string) (*model.RefreshToken, error) {
	return nil, fmt.Errorf("record not found")
}

func (fakeUserRepo) DeleteRefreshToken(_ context.Context, _ string) error { return nil }

func TestMarkAttendance_UpsertOverwrites(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo, fakeUserRepo{})
	userID := uuid.New().String()

	first, err := svc.MarkAttendance(context.Background(), MarkAttendanceRequest{
		UserID:  userID,
		Date:    "2026-06-10",
		Status:  model.AttendancePresent,
		CheckIn: "09:15",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AttendancePresent, first.Status)
	require.NotNil(t, first.CheckIn)
	assert.Equal(t, "09:15", *first.CheckIn)

	second, err := svc.MarkAttendance(context.Background(), MarkAttendanceRequest{
		UserID: userID,
		Date:   "2026-06-10",
		Status: model.AttendanceHalfDay,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AttendanceHalfDay, second.Status)
	assert.Equal(t, first.ID, second.ID)
}

func TestMarkAttendance_RejectsBadClock(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceRepo(), fakeUserRepo{})

	_, err := svc.MarkAttendance(context.Background(), MarkAttendanceRequest{
		UserID:  uuid.New().String(),
		Date:    "2026-06-10",
		Status:  model.AttendancePresent,
		CheckIn: "quarter past nine",
	})
	assert.Error(t, err)
}

func TestMonthlyReport_AggregatesByUser(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo, fakeUserRepo{})
	userID := uuid.New().String()

	days := map[string]string{
		"2026-06-01": model.AttendancePresent,
		"2026-06-02": model.AttendancePresent,
		"2026-06-03": model.AttendanceHalfDay,
		"2026-06-04": model.AttendanceOnLeave,
		"2026-06-05": model.AttendanceAbsent,
		"2026-07-01": model.AttendancePresent, // outside the month
	}
	for date, status := range days {
		_, err := svc.MarkAttendance(context.Background(), MarkAttendanceRequest{
			UserID: userID,
			Date:   date,
			Status: status,
		})
		require.NoError(t, err)
	}

	summaries, err := svc.MonthlyReport(context.Background(), 2026, time.June)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	got := summaries[0]
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, 2, got.Present)
	assert.Equal(t, 1, got.HalfDay)
	assert.Equal(t, 1, got.OnLeave)
	assert.Equal(t, 1, got.Absent)
}
