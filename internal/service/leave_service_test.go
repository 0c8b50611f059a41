package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"digiwave-backend/internal/model"
	"digiwave-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveRepo struct {
	mu    sync.Mutex
	store map[uuid.UUID]*model.Leave
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{store: make(map[uuid.UUID]*model.Leave)}
}

func (r *fakeLeaveRepo) Create(_ context.Context, leave *model.Leave) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if leave.ID == uuid.Nil {
		leave.ID = uuid.New()
	}
	copied := *leave
	r.store[leave.ID] = &copied
	return nil
}

func (r *fakeLeaveRepo) Update(_ context.Context, leave *model.Leave) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store[leave.ID]; !ok {
		return fmt.Errorf("record not found")
	}
	copied := *leave
	r.store[leave.ID] = &copied
	return nil
}

func (r *fakeLeaveRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Leave, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	leave, ok := r.store[id]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	copied := *leave
	return &copied, nil
}

func (r *fakeLeaveRepo) List(_ context.Context, filter repository.LeaveListFilter) ([]model.Leave, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Leave, 0, len(r.store))
	for _, leave := range r.store {
		if filter.Status != "" && leave.Status != filter.Status {
			continue
		}
		if filter.UserID != nil && leave.UserID != *filter.UserID {
			continue
		}
		out = append(out, *leave)
	}
	return out, int64(len(out)), nil
}

func (r *fakeLeaveRepo) CountPending(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, leave := range r.store {
		if leave.Status == model.LeavePending {
			count++
		}
	}
	return count, nil
}

func newTestLeaveService(repo *fakeLeaveRepo) LeaveService {
	return NewLeaveService(repo, fakeTxManager{}, noopAudit{}, nil)
}

func TestApplyLeave_CountsInclusiveDays(t *testing.T) {
	svc := newTestLeaveService(newFakeLeaveRepo())

	got, err := svc.ApplyLeave(context.Background(), ApplyLeaveRequest{
		LeaveType: "CASUAL",
		FromDate:  "2026-03-02",
		ToDate:    "2026-03-06",
		Reason:    "family function",
	}, uuid.New().String())
	require.NoError(t, err)

	assert.Equal(t, model.LeavePending, got.Status)
	assert.Equal(t, 5, got.Days)
}

func TestApplyLeave_RejectsInvertedRange(t *testing.T) {
	svc := newTestLeaveService(newFakeLeaveRepo())

	_, err := svc.ApplyLeave(context.Background(), ApplyLeaveRequest{
		LeaveType: "SICK",
		FromDate:  "2026-03-06",
		ToDate:    "2026-03-02",
	}, uuid.New().String())
	assert.Error(t, err)
}

func TestApproveLeave_SetsDecisionFields(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := newTestLeaveService(repo)

	applied, err := svc.ApplyLeave(context.Background(), ApplyLeaveRequest{
		LeaveType: "EARNED",
		FromDate:  "2026-04-01",
		ToDate:    "2026-04-03",
	}, uuid.New().String())
	require.NoError(t, err)

	approver := uuid.New()
	got, err := svc.ApproveLeave(context.Background(), applied.ID, approver.String())
	require.NoError(t, err)

	assert.Equal(t, model.LeaveApproved, got.Status)
	require.NotNil(t, got.DecidedBy)
	assert.Equal(t, approver.String(), *got.DecidedBy)
	assert.NotNil(t, got.DecidedAt)
}

func TestRejectLeave_KeepsReason(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := newTestLeaveService(repo)

	applied, err := svc.ApplyLeave(context.Background(), ApplyLeaveRequest{
		LeaveType: "UNPAID",
		FromDate:  "2026-04-01",
		ToDate:    "2026-04-01",
	}, uuid.New().String())
	require.NoError(t, err)

	got, err := svc.RejectLeave(context.Background(), applied.ID, uuid.New().String(), "short staffed that week")
	require.NoError(t, err)

	assert.Equal(t, model.LeaveRejected, got.Status)
	assert.Equal(t, "short staffed that week", got.RejectionReason)
}

func TestDecideLeave_OnlyOnce(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := newTestLeaveService(repo)

	applied, err := svc.ApplyLeave(context.Background(), ApplyLeaveRequest{
		LeaveType: "CASUAL",
		FromDate:  "2026-05-01",
		ToDate:    "2026-05-02",
	}, uuid.New().String())
	require.NoError(t, err)

	_, err = svc.ApproveLeave(context.Background(), applied.ID, uuid.New().String())
	require.NoError(t, err)

	_, err = svc.RejectLeave(context.Background(), applied.ID, uuid.New().String(), "changed my mind")
	assert.ErrorIs(t, err, ErrLeaveAlreadyDecided)

	_, err = svc.ApproveLeave(context.Background(), applied.ID, uuid.New().String())
	assert.ErrorIs(t, err, ErrLeaveAlreadyDecided)
}
