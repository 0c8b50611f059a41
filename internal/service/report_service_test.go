package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"digiwave-backend/internal/model"
	"digiwave-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakePaymentRepo struct {
	payments []model.Payment
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *model.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	r.payments = append(r.payments, *payment)
	return nil
}

func (r *fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	for i := range r.payments {
		if r.payments[i].ID == id {
			copied := r.payments[i]
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("record not found")
}

func (r *fakePaymentRepo) List(_ context.Context, _ repository.PaymentListFilter) ([]model.Payment, int64, error) {
	return r.payments, int64(len(r.payments)), nil
}

func (r *fakePaymentRepo) ListInRange(_ context.Context, from, to time.Time) ([]model.Payment, error) {
	out := make([]model.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		if p.PaymentDate.Before(from) || p.PaymentDate.After(to) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePaymentRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (r *fakePaymentRepo) SumInRange(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.payments {
		if p.PaymentDate.Before(from) || p.PaymentDate.After(to) {
			continue
		}
		sum = sum.Add(p.Amount)
	}
	return sum, nil
}

func (r *fakePaymentRepo) TopProjectsByRevenue(_ context.Context, _, _ time.Time, _ int) ([]model.ProjectRevenue, error) {
	return nil, nil
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestPaymentReport_WorkbookContents(t *testing.T) {
	repo := &fakePaymentRepo{payments: []model.Payment{
		{
			ID:          uuid.New(),
			PaymentDate: day("2026-02-05"),
			Amount:      decimal.NewFromInt(25000),
			Method:      "BANK_TRANSFER",
			Reference:   "TXN-1001",
			Project:     &model.Project{Name: "Acme Website"},
		},
		{
			ID:          uuid.New(),
			PaymentDate: day("2026-02-18"),
			Amount:      decimal.NewFromFloat(7500.50),
			Method:      "UPI",
			Note:        "=HYPERLINK(evil)",
			Project:     &model.Project{Name: "Acme App"},
		},
	}}
	svc := NewReportService(newFakeAttendanceRepo(), repo)

	filename, data, err := svc.PaymentReport(context.Background(), day("2026-02-01"), day("2026-02-28"))
	require.NoError(t, err)
	assert.Equal(t, "payments-20260201-20260228.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Payments", "B4")
	require.NoError(t, err)
	assert.Equal(t, "Acme Website", name)

	amount, err := f.GetCellValue("Payments", "C4")
	require.NoError(t, err)
	assert.Equal(t, "25000.00", amount)

	// Formula injection guard
	note, err := f.GetCellValue("Payments", "F5")
	require.NoError(t, err)
	assert.Equal(t, "'=HYPERLINK(evil)", note)

	total, err := f.GetCellValue("Payments", "C7")
	require.NoError(t, err)
	assert.Equal(t, "32500.50", total)
}

func TestAttendanceReport_FilenameAndRows(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	userID := uuid.New()
	checkIn := day("2026-02-03").Add(9 * time.Hour)
	require.NoError(t, attRepo.Upsert(context.Background(), &model.Attendance{
		UserID:  userID,
		Date:    day("2026-02-03"),
		Status:  model.AttendancePresent,
		CheckIn: &checkIn,
	}))

	svc := NewReportService(attRepo, &fakePaymentRepo{})

	filename, data, err := svc.AttendanceReport(context.Background(), 2026, time.February)
	require.NoError(t, err)
	assert.Equal(t, "attendance-2026-02.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	date, err := f.GetCellValue("Attendance", "B4")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-03", date)

	status, err := f.GetCellValue("Attendance", "C4")
	require.NoError(t, err)
	assert.Equal(t, model.AttendancePresent, status)

	in, err := f.GetCellValue("Attendance", "D4")
	require.NoError(t, err)
	assert.Equal(t, "09:00", in)
}
