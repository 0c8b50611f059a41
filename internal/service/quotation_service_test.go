package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"digiwave-backend/internal/document"
	"digiwave-backend/internal/model"
	"digiwave-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

type fakeQuotationRepo struct {
	mu    sync.Mutex
	store map[uuid.UUID]*model.Quotation
}

func newFakeQuotationRepo() *fakeQuotationRepo {
	return &fakeQuotationRepo{store: make(map[uuid.UUID]*model.Quotation)}
}

func (r *fakeQuotationRepo) Create(_ context.Context, q *model.Quotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	for i := range q.Services {
		if q.Services[i].ID == uuid.Nil {
			q.Services[i].ID = uuid.New()
		}
		q.Services[i].QuotationID = q.ID
	}
	copied := *q
	r.store[q.ID] = &copied
	return nil
}

func (r *fakeQuotationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Quotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.store[id]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	copied := *q
	return &copied, nil
}

func (r *fakeQuotationRepo) List(_ context.Context, _ repository.QuotationListFilter) ([]model.Quotation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Quotation, 0, len(r.store))
	for _, q := range r.store {
		out = append(out, *q)
	}
	return out, int64(len(out)), nil
}

func (r *fakeQuotationRepo) Update(_ context.Context, q *model.Quotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.store[q.ID]
	if !ok {
		return fmt.Errorf("record not found")
	}
	services := existing.Services
	copied := *q
	copied.Services = services
	r.store[q.ID] = &copied
	return nil
}

func (r *fakeQuotationRepo) ReplaceServices(_ context.Context, quotationID uuid.UUID, services []model.QuotationService) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.store[quotationID]
	if !ok {
		return fmt.Errorf("record not found")
	}
	for i := range services {
		if services[i].ID == uuid.Nil {
			services[i].ID = uuid.New()
		}
		services[i].QuotationID = quotationID
	}
	q.Services = services
	return nil
}

func (r *fakeQuotationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.store, id)
	return nil
}

func (r *fakeQuotationRepo) CountByPrefix(_ context.Context, prefix string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, q := range r.store {
		if len(q.QuotationNo) >= len(prefix) && q.QuotationNo[:len(prefix)] == prefix {
			count++
		}
	}
	return count, nil
}

func (r *fakeQuotationRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, q := range r.store {
		counts[q.Status]++
	}
	return counts, nil
}

func (r *fakeQuotationRepo) SumGrandTotalInRange(_ context.Context, _, _ time.Time) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, q := range r.store {
		sum = sum.Add(q.GrandTotal)
	}
	return sum, nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type noopAudit struct{}

func (noopAudit) Record(_ context.Context, _ *uuid.UUID, _, _, _ string, _ map[string]interface{}) {}

func (noopAudit) ListAuditLogs(_ context.Context, _ AuditFilter) ([]AuditLogResponse, int64, error) {
	return nil, 0, nil
}

type stubRenderer struct {
	data      []byte
	err       error
	started   chan struct{}
	startOnce sync.Once
	release   chan struct{}
}

func (r *stubRenderer) Render(_ *document.Document) ([]byte, error) {
	if r.started != nil {
		r.startOnce.Do(func() { close(r.started) })
	}
	if r.release != nil {
		<-r.release
	}
	if r.err != nil {
		return nil, r.err
	}
	return r.data, nil
}

func (r *stubRenderer) ContentType() string { return "application/pdf" }

func newTestQuotationService(repo *fakeQuotationRepo, pdf document.Renderer) QuotationService {
	if pdf == nil {
		pdf = &stubRenderer{data: []byte("%PDF-fake")}
	}
	return NewQuotationService(repo, fakeTxManager{}, noopAudit{}, nil, pdf, &stubRenderer{data: []byte("<html></html>")})
}

func sampleRequest() CreateQuotationRequest {
	return CreateQuotationRequest{
		CompanyName: "DigiWave Solutions",
		ClientName:  "Acme Corp",
		Services: []ServiceLineInput{
			{Category: "web", Description: "Corporate website", Quantity: "1", UnitPrice: "50000"},
			{Category: "mobile", Description: "Companion app", Quantity: "2", UnitPrice: "30000"},
		},
		DomainRegistration: AddonInput{Included: true, Duration: "1 year", UnitPrice: "999"},
		ServerHosting:      AddonInput{Included: false, UnitPrice: "12000"},
		DiscountType:       "percent",
		DiscountValue:      "10",
		TaxRate:            "18",
	}
}

// --- Tests ---

func TestCreateQuotation_ComputesTotals(t *testing.T) {
	repo := newFakeQuotationRepo()
	svc := newTestQuotationService(repo, nil)

	got, err := svc.CreateQuotation(context.Background(), sampleRequest(), "")
	require.NoError(t, err)

	// 50000 + 2*30000 = 110000 services, 999 addons
	assert.Equal(t, "110000.00", got.TotalServiceCharge)
	assert.Equal(t, "999.00", got.TotalServerDomainCharge)
	// 10% of 110999 = 11099.90
	assert.Equal(t, "11099.90", got.DiscountAmount)
	assert.Equal(t, "99899.10", got.AfterDiscountTotal)
	// 18% tax on the discounted base
	assert.Equal(t, "17981.84", got.TaxAmount)
	assert.Equal(t, "117880.94", got.GrandTotal)

	assert.Equal(t, 1, got.Revision)
	assert.Equal(t, model.QuotationDraft, got.Status)
	assert.Len(t, got.Services, 2)
}

func TestCreateQuotation_NumberSequence(t *testing.T) {
	repo := newFakeQuotationRepo()
	svc := newTestQuotationService(repo, nil)

	first, err := svc.CreateQuotation(context.Background(), sampleRequest(), "")
	require.NoError(t, err)
	second, err := svc.CreateQuotation(context.Background(), sampleRequest(), "")
	require.NoError(t, err)

	prefix := "QT-" + time.Now().Format("200601") + "-"
	assert.Equal(t, prefix+"0001", first.QuotationNo)
	assert.Equal(t, prefix+"0002", second.QuotationNo)
}

func TestUpdateQuotation_BumpsRevisionAndRecomputes(t *testing.T) {
	repo := newFakeQuotationRepo()
	svc := newTestQuotationService(repo, nil)

	created, err := svc.CreateQuotation(context.Background(), sampleRequest(), "")
	require.NoError(t, err)

	update := UpdateQuotationRequest{CreateQuotationRequest: sampleRequest()}
	update.Services = []ServiceLineInput{
		{Category: "cloud", Description: "Migration", Quantity: "1", UnitPrice: "20000"},
	}
	update.DiscountType = "none"
	update.DiscountValue = ""
	update.TaxRate = ""

	got, err := svc.UpdateQuotation(context.Background(), created.ID, update, "")
	require.NoError(t, err)

	assert.Equal(t, created.QuotationNo, got.QuotationNo)
	assert.Equal(t, 2, got.Revision)
	assert.Equal(t, created.Status, got.Status)
	require.Len(t, got.Services, 1)
	assert.Equal(t, "cloud", got.Services[0].Category)
	// 20000 services + 999 addon, no discount, no tax
	assert.Equal(t, "20999.00", got.GrandTotal)
}

func TestUpdateQuotation_StatusTransition(t *testing.T) {
	repo := newFakeQuotationRepo()
	svc := newTestQuotationService(repo, nil)

	created, err := svc.CreateQuotation(context.Background(), sampleRequest(), "")
	require.NoError(t, err)

	update := UpdateQuotationRequest{CreateQuotationRequest: sampleRequest(), Status: model.QuotationSent}
	got, err := svc.UpdateQuotation(context.Background(), created.ID, update, "")
	require.NoError(t, err)

	assert.Equal(t, model.QuotationSent, got.Status)
}

func TestDeleteQuotation_OwnershipRules(t *testing.T) {
	repo := newFakeQuotationRepo()
	svc := newTestQuotationService(repo, nil)

	owner := uuid.New()
	created, err := svc.CreateQuotation(context.Background(), sampleRequest(), owner.String())
	require.NoError(t, err)

	// A different staff user cannot delete it
	err = svc.DeleteQuotation(context.Background(), created.ID, uuid.New().String(), model.RoleStaff)
	assert.ErrorIs(t, err, ErrNotOwner)

	// The creator can
	err = svc.DeleteQuotation(context.Background(), created.ID, owner.String(), model.RoleStaff)
	assert.NoError(t, err)
}

func TestDeleteQuotation_AdminOverride(t *testing.T) {
	repo := newFakeQuotationRepo()
	svc := newTestQuotationService(repo, nil)

	created, err := svc.CreateQuotation(context.Background(), sampleRequest(), uuid.New().String())
	require.NoError(t, err)

	err = svc.DeleteQuotation(context.Background(), created.ID, uuid.New().String(), model.RoleAdmin)
	assert.NoError(t, err)
}

func TestExportPDF_FilenameAndContent(t *testing.T) {
	repo := newFakeQuotationRepo()
	svc := newTestQuotationService(repo, nil)

	created, err := svc.CreateQuotation(context.Background(), sampleRequest(), "")
	require.NoError(t, err)

	filename, data, err := svc.ExportPDF(context.Background(), created.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "quotation-"+created.QuotationNo+".pdf", filename)
	assert.Equal(t, []byte("%PDF-fake"), data)
}

func TestExportPDF_RejectsConcurrentExport(t *testing.T) {
	repo := newFakeQuotationRepo()
	slow := &stubRenderer{
		data:    []byte("%PDF-fake"),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := newTestQuotationService(repo, slow)

	created, err := svc.CreateQuotation(context.Background(), sampleRequest(), "")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, _, exportErr := svc.ExportPDF(context.Background(), created.ID, "")
		done <- exportErr
	}()

	<-slow.started
	_, _, err = svc.ExportPDF(context.Background(), created.ID, "")
	assert.ErrorIs(t, err, ErrExportInProgress)

	close(slow.release)
	require.NoError(t, <-done)

	// Once the first export finishes the guard is released
	_, _, err = svc.ExportPDF(context.Background(), created.ID, "")
	assert.NoError(t, err)
}

func TestExportPDF_MissingQuotation(t *testing.T) {
	repo := newFakeQuotationRepo()
	svc := newTestQuotationService(repo, nil)

	_, _, err := svc.ExportPDF(context.Background(), uuid.New().String(), "")
	assert.ErrorIs(t, err, ErrQuotationNotFound)

	_, _, err = svc.ExportPDF(context.Background(), "not-a-uuid", "")
	assert.ErrorIs(t, err, ErrQuotationNotFound)
}

func TestExportPDF_RenderFailureReleasesGuard(t *testing.T) {
	repo := newFakeQuotationRepo()
	broken := &stubRenderer{err: fmt.Errorf("maroto blew up")}
	svc := newTestQuotationService(repo, broken)

	created, err := svc.CreateQuotation(context.Background(), sampleRequest(), "")
	require.NoError(t, err)

	_, _, err = svc.ExportPDF(context.Background(), created.ID, "")
	require.Error(t, err)
	// A renderer error is not a lookup failure and not a busy export
	assert.NotErrorIs(t, err, ErrQuotationNotFound)
	assert.NotErrorIs(t, err, ErrExportInProgress)

	// The guard must be released after the failed attempt
	broken.err = nil
	broken.data = []byte("%PDF-fake")
	_, _, err = svc.ExportPDF(context.Background(), created.ID, "")
	assert.NoError(t, err)
}

func TestCreateQuotation_CoercesMalformedNumbers(t *testing.T) {
	repo := newFakeQuotationRepo()
	svc := newTestQuotationService(repo, nil)

	req := sampleRequest()
	req.Services = []ServiceLineInput{
		{Category: "web", Quantity: "not-a-number", UnitPrice: "abc"},
	}
	req.DiscountType = ""
	req.DiscountValue = ""
	req.TaxRate = ""
	req.DomainRegistration = AddonInput{}
	req.ServerHosting = AddonInput{}

	got, err := svc.CreateQuotation(context.Background(), req, "")
	require.NoError(t, err)

	// Quantity falls back to 1, prices to zero
	assert.Equal(t, 1, got.Services[0].Quantity)
	assert.Equal(t, "0.00", got.GrandTotal)
}
