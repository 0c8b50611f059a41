package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"digiwave-backend/internal/document"
	"digiwave-backend/internal/model"
	"digiwave-backend/internal/pricing"
	"digiwave-backend/internal/repository"

	"github.com/google/uuid"
)

// ErrExportInProgress is returned when a PDF export is requested for a
// quotation that already has one running. Handlers map it to 409.
var ErrExportInProgress = errors.New("an export for this quotation is already in progress")

// ErrNotOwner is returned when a non-admin tries to delete a quotation
// they did not create. Handlers map it to 403.
var ErrNotOwner = errors.New("only the creator or an admin can delete this quotation")

// ErrQuotationNotFound is returned when the id does not resolve to a
// quotation. Handlers map it to 404; anything else from the export
// pipeline is a 500.
var ErrQuotationNotFound = errors.New("quotation not found")

// --- DTOs ---

// ServiceLineInput carries quantity and unit price as strings so that
// free-form client input never fails binding; out-of-range values are
// coerced during pricing instead.
type ServiceLineInput struct {
	Category    string `json:"category" binding:"required,oneof=web mobile cloud ai_ml"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

type AddonInput struct {
	Included  bool   `json:"included"`
	Duration  string `json:"duration"`
	UnitPrice string `json:"unit_price"`
}

type CreateQuotationRequest struct {
	QuotationDate string `json:"quotation_date"` // YYYY-MM-DD, defaults to today
	ValidUntil    string `json:"valid_until"`    // YYYY-MM-DD, optional

	CompanyName    string `json:"company_name" binding:"required"`
	CompanyAddress string `json:"company_address"`
	CompanyEmail   string `json:"company_email"`
	CompanyPhone   string `json:"company_phone"`
	CompanyWebsite string `json:"company_website"`

	ClientName    string `json:"client_name" binding:"required"`
	ClientCompany string `json:"client_company"`
	ClientAddress string `json:"client_address"`
	ClientEmail   string `json:"client_email"`
	ClientPhone   string `json:"client_phone"`

	Services []ServiceLineInput `json:"services" binding:"required,min=1,dive"`

	DomainRegistration AddonInput `json:"domain_registration"`
	ServerHosting      AddonInput `json:"server_hosting"`
	SSLCertificate     AddonInput `json:"ssl_certificate"`
	EmailHosting       AddonInput `json:"email_hosting"`

	DiscountType  string `json:"discount_type" binding:"omitempty,oneof=none flat percent"`
	DiscountValue string `json:"discount_value"`
	TaxRate       string `json:"tax_rate"`

	PaymentTerms    string `json:"payment_terms"`
	AdditionalNotes string `json:"additional_notes"`

	SignatoryName        string `json:"signatory_name"`
	SignatoryDesignation string `json:"signatory_designation"`
	Signature            string `json:"signature"`
}

// UpdateQuotationRequest replaces the full editable payload of a quotation.
// The services slice replaces the existing rows wholesale; totals and the
// revision counter are recomputed server-side.
type UpdateQuotationRequest struct {
	CreateQuotationRequest
	Status string `json:"status" binding:"omitempty,oneof=DRAFT SENT ACCEPTED REJECTED"`
}

type QuotationFilter struct {
	Status string
	Search string
	Page   int
	Limit  int
}

type QuotationServiceResponse struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Amount      string `json:"amount"`
}

type AddonResponse struct {
	Included  bool   `json:"included"`
	Duration  string `json:"duration"`
	UnitPrice string `json:"unit_price"`
}

type QuotationResponse struct {
	ID            string  `json:"id"`
	QuotationNo   string  `json:"quotation_no"`
	Revision      int     `json:"revision"`
	Status        string  `json:"status"`
	QuotationDate string  `json:"quotation_date"`
	ValidUntil    *string `json:"valid_until"`

	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	CompanyEmail   string `json:"company_email"`
	CompanyPhone   string `json:"company_phone"`
	CompanyWebsite string `json:"company_website"`

	ClientName    string `json:"client_name"`
	ClientCompany string `json:"client_company"`
	ClientAddress string `json:"client_address"`
	ClientEmail   string `json:"client_email"`
	ClientPhone   string `json:"client_phone"`

	Services []QuotationServiceResponse `json:"services"`

	DomainRegistration AddonResponse `json:"domain_registration"`
	ServerHosting      AddonResponse `json:"server_hosting"`
	SSLCertificate     AddonResponse `json:"ssl_certificate"`
	EmailHosting       AddonResponse `json:"email_hosting"`

	DiscountType  string `json:"discount_type"`
	DiscountValue string `json:"discount_value"`
	TaxRate       string `json:"tax_rate"`

	TotalServiceCharge      string `json:"total_service_charge"`
	TotalServerDomainCharge string `json:"total_server_domain_charge"`
	DiscountAmount          string `json:"discount_amount"`
	AfterDiscountTotal      string `json:"after_discount_total"`
	TaxAmount               string `json:"tax_amount"`
	GrandTotal              string `json:"grand_total"`

	PaymentTerms    string `json:"payment_terms"`
	AdditionalNotes string `json:"additional_notes"`

	SignatoryName        string `json:"signatory_name"`
	SignatoryDesignation string `json:"signatory_designation"`
	Signature            string `json:"signature"`

	CreatedBy   *string `json:"created_by"`
	CreatorName string  `json:"creator_name,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// --- Interface ---

type QuotationService interface {
	CreateQuotation(ctx context.Context, req CreateQuotationRequest, userID string) (QuotationResponse, error)
	ListQuotations(ctx context.Context, filter QuotationFilter) ([]QuotationResponse, int64, error)
	GetQuotation(ctx context.Context, id string) (QuotationResponse, error)
	UpdateQuotation(ctx context.Context, id string, req UpdateQuotationRequest, userID string) (QuotationResponse, error)
	DeleteQuotation(ctx context.Context, id string, userID string, role string) error
	ExportPDF(ctx context.Context, id string, userID string) (string, []byte, error)
	RenderPrint(ctx context.Context, id string) ([]byte, error)
}

type quotationService struct {
	quotationRepo repository.QuotationRepository
	txManager     repository.TransactionManager
	audit         AuditService
	notifier      Notifier
	pdfRenderer   document.Renderer
	printRenderer document.Renderer

	// one in-flight PDF export per quotation
	exports sync.Map
}

func NewQuotationService(
	quotationRepo repository.QuotationRepository,
	txManager repository.TransactionManager,
	audit AuditService,
	notifier Notifier,
	pdfRenderer document.Renderer,
	printRenderer document.Renderer,
) QuotationService {
	return &quotationService{
		quotationRepo: quotationRepo,
		txManager:     txManager,
		audit:         audit,
		notifier:      notifier,
		pdfRenderer:   pdfRenderer,
		printRenderer: printRenderer,
	}
}

// --- Implementation ---

func (s *quotationService) CreateQuotation(ctx context.Context, req CreateQuotationRequest, userID string) (QuotationResponse, error) {
	creatorID, err := parseOptionalUUID(userID)
	if err != nil {
		return QuotationResponse{}, fmt.Errorf("invalid user id: %w", err)
	}

	quotation, err := buildQuotation(req)
	if err != nil {
		return QuotationResponse{}, err
	}
	quotation.CreatedBy = creatorID
	quotation.Revision = 1
	quotation.Status = model.QuotationDraft

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		no, genErr := s.generateQuotationNo(txCtx)
		if genErr != nil {
			return fmt.Errorf("failed to generate quotation number: %w", genErr)
		}
		quotation.QuotationNo = no

		if createErr := s.quotationRepo.Create(txCtx, quotation); createErr != nil {
			return fmt.Errorf("failed to create quotation: %w", createErr)
		}
		return nil
	})
	if err != nil {
		return QuotationResponse{}, err
	}

	s.audit.Record(ctx, creatorID, model.ActionCreateQuotation, quotation.ID.String(), quotation.QuotationNo, map[string]interface{}{
		"client_name": quotation.ClientName,
		"grand_total": quotation.GrandTotal.StringFixed(2),
	})
	s.publish("quotation.created", quotation)

	reloaded, err := s.quotationRepo.FindByID(ctx, quotation.ID)
	if err != nil {
		return QuotationResponse{}, fmt.Errorf("failed to reload quotation: %w", err)
	}
	return toQuotationResponse(*reloaded), nil
}

func (s *quotationService) ListQuotations(ctx context.Context, filter QuotationFilter) ([]QuotationResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	quotations, total, err := s.quotationRepo.List(ctx, repository.QuotationListFilter{
		Status: filter.Status,
		Search: filter.Search,
		Page:   filter.Page,
		Limit:  filter.Limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch quotations: %w", err)
	}

	result := make([]QuotationResponse, 0, len(quotations))
	for _, q := range quotations {
		result = append(result, toQuotationResponse(q))
	}
	return result, total, nil
}

func (s *quotationService) GetQuotation(ctx context.Context, id string) (QuotationResponse, error) {
	quotation, err := s.findByStringID(ctx, id)
	if err != nil {
		return QuotationResponse{}, err
	}
	return toQuotationResponse(*quotation), nil
}

func (s *quotationService) UpdateQuotation(ctx context.Context, id string, req UpdateQuotationRequest, userID string) (QuotationResponse, error) {
	quotationID, err := uuid.Parse(id)
	if err != nil {
		return QuotationResponse{}, fmt.Errorf("invalid quotation id: %w", err)
	}
	actorID, err := parseOptionalUUID(userID)
	if err != nil {
		return QuotationResponse{}, fmt.Errorf("invalid user id: %w", err)
	}

	replacement, err := buildQuotation(req.CreateQuotationRequest)
	if err != nil {
		return QuotationResponse{}, err
	}

	var updated *model.Quotation
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		existing, findErr := s.quotationRepo.FindByID(txCtx, quotationID)
		if findErr != nil {
			return fmt.Errorf("%w: %v", ErrQuotationNotFound, findErr)
		}

		// Identity and provenance survive the edit; everything else is
		// replaced and the revision counter advances.
		replacement.ID = existing.ID
		replacement.QuotationNo = existing.QuotationNo
		replacement.Revision = existing.Revision + 1
		replacement.Status = existing.Status
		replacement.CreatedBy = existing.CreatedBy
		replacement.CreatedAt = existing.CreatedAt
		if req.Status != "" {
			replacement.Status = req.Status
		}

		for i := range replacement.Services {
			replacement.Services[i].QuotationID = existing.ID
		}

		if updateErr := s.quotationRepo.Update(txCtx, replacement); updateErr != nil {
			return fmt.Errorf("failed to update quotation: %w", updateErr)
		}
		if svcErr := s.quotationRepo.ReplaceServices(txCtx, existing.ID, replacement.Services); svcErr != nil {
			return fmt.Errorf("failed to replace quotation services: %w", svcErr)
		}

		updated = replacement
		return nil
	})
	if err != nil {
		return QuotationResponse{}, err
	}

	s.audit.Record(ctx, actorID, model.ActionUpdateQuotation, updated.ID.String(), updated.QuotationNo, map[string]interface{}{
		"revision":    updated.Revision,
		"grand_total": updated.GrandTotal.StringFixed(2),
	})
	s.publish("quotation.updated", updated)

	reloaded, err := s.quotationRepo.FindByID(ctx, quotationID)
	if err != nil {
		return QuotationResponse{}, fmt.Errorf("failed to reload quotation: %w", err)
	}
	return toQuotationResponse(*reloaded), nil
}

func (s *quotationService) DeleteQuotation(ctx context.Context, id string, userID string, role string) error {
	quotation, err := s.findByStringID(ctx, id)
	if err != nil {
		return err
	}

	if role != model.RoleAdmin {
		actorID, parseErr := uuid.Parse(userID)
		if parseErr != nil {
			return fmt.Errorf("invalid user id: %w", parseErr)
		}
		if quotation.CreatedBy == nil || *quotation.CreatedBy != actorID {
			return ErrNotOwner
		}
	}

	if err := s.quotationRepo.Delete(ctx, quotation.ID); err != nil {
		return fmt.Errorf("failed to delete quotation: %w", err)
	}

	actorID, _ := parseOptionalUUID(userID)
	s.audit.Record(ctx, actorID, model.ActionDeleteQuotation, quotation.ID.String(), quotation.QuotationNo, nil)
	s.publish("quotation.deleted", quotation)
	return nil
}

func (s *quotationService) ExportPDF(ctx context.Context, id string, userID string) (string, []byte, error) {
	quotation, err := s.findByStringID(ctx, id)
	if err != nil {
		return "", nil, err
	}

	key := quotation.ID.String()
	if _, busy := s.exports.LoadOrStore(key, struct{}{}); busy {
		return "", nil, ErrExportInProgress
	}
	defer s.exports.Delete(key)

	data, err := s.pdfRenderer.Render(document.Build(quotation))
	if err != nil {
		return "", nil, fmt.Errorf("failed to render quotation pdf: %w", err)
	}

	actorID, _ := parseOptionalUUID(userID)
	s.audit.Record(ctx, actorID, model.ActionExportQuotation, key, quotation.QuotationNo, map[string]interface{}{
		"filename": document.Filename(quotation.QuotationNo),
	})

	return document.Filename(quotation.QuotationNo), data, nil
}

func (s *quotationService) RenderPrint(ctx context.Context, id string) ([]byte, error) {
	quotation, err := s.findByStringID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := s.printRenderer.Render(document.Build(quotation))
	if err != nil {
		return nil, fmt.Errorf("failed to render print view: %w", err)
	}
	return data, nil
}

// --- Helpers ---

func (s *quotationService) findByStringID(ctx context.Context, id string) (*model.Quotation, error) {
	quotationID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %q", ErrQuotationNotFound, id)
	}
	quotation, err := s.quotationRepo.FindByID(ctx, quotationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuotationNotFound, err)
	}
	return quotation, nil
}

func (s *quotationService) generateQuotationNo(ctx context.Context) (string, error) {
	prefix := "QT-" + time.Now().Format("200601") + "-"

	count, err := s.quotationRepo.CountByPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

func (s *quotationService) publish(eventType string, q *model.Quotation) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(eventType, "quotation", q.ID.String(), q.QuotationNo)
}

// buildQuotation maps the request payload to a model with freshly computed
// totals. Status, numbering and provenance fields are left for the caller.
func buildQuotation(req CreateQuotationRequest) (*model.Quotation, error) {
	quotationDate := time.Now()
	if req.QuotationDate != "" {
		parsed, err := time.Parse("2006-01-02", req.QuotationDate)
		if err != nil {
			return nil, fmt.Errorf("invalid quotation_date: %w", err)
		}
		quotationDate = parsed
	}

	var validUntil *time.Time
	if req.ValidUntil != "" {
		parsed, err := time.Parse("2006-01-02", req.ValidUntil)
		if err != nil {
			return nil, fmt.Errorf("invalid valid_until: %w", err)
		}
		validUntil = &parsed
	}

	services := make([]model.QuotationService, 0, len(req.Services))
	items := make([]pricing.LineItem, 0, len(req.Services))
	for i, line := range req.Services {
		qty := pricing.ParseQuantity(line.Quantity)
		price := pricing.ParseAmount(line.UnitPrice)
		services = append(services, model.QuotationService{
			Category:    line.Category,
			Description: line.Description,
			Quantity:    qty,
			UnitPrice:   price,
			Position:    i,
		})
		items = append(items, pricing.LineItem{Quantity: qty, UnitPrice: price})
	}

	discountType := req.DiscountType
	if discountType == "" {
		discountType = model.DiscountNone
	}
	discountValue := pricing.ParseAmount(req.DiscountValue)
	taxRate := pricing.ParseRate(req.TaxRate)

	quotation := &model.Quotation{
		QuotationDate: quotationDate,
		ValidUntil:    validUntil,

		CompanyName:    req.CompanyName,
		CompanyAddress: req.CompanyAddress,
		CompanyEmail:   req.CompanyEmail,
		CompanyPhone:   req.CompanyPhone,
		CompanyWebsite: req.CompanyWebsite,

		ClientName:    req.ClientName,
		ClientCompany: req.ClientCompany,
		ClientAddress: req.ClientAddress,
		ClientEmail:   req.ClientEmail,
		ClientPhone:   req.ClientPhone,

		Services: services,

		DomainRegistration: toAddonCharge(req.DomainRegistration),
		ServerHosting:      toAddonCharge(req.ServerHosting),
		SSLCertificate:     toAddonCharge(req.SSLCertificate),
		EmailHosting:       toAddonCharge(req.EmailHosting),

		DiscountType:  discountType,
		DiscountValue: discountValue,
		TaxRate:       taxRate,

		PaymentTerms:    req.PaymentTerms,
		AdditionalNotes: req.AdditionalNotes,

		SignatoryName:        req.SignatoryName,
		SignatoryDesignation: req.SignatoryDesignation,
		Signature:            req.Signature,
	}

	addons := make([]pricing.Addon, 0, 4)
	for _, a := range quotation.Addons() {
		addons = append(addons, pricing.Addon{Included: a.Included, UnitPrice: a.UnitPrice})
	}

	totals := pricing.Compute(pricing.Inputs{
		Items:         items,
		Addons:        addons,
		DiscountType:  discountType,
		DiscountValue: discountValue,
		TaxRate:       taxRate,
	})
	quotation.TotalServiceCharge = totals.ServiceCharge
	quotation.TotalServerDomainCharge = totals.ServerDomainCharge
	quotation.DiscountAmount = totals.DiscountAmount
	quotation.AfterDiscountTotal = totals.AfterDiscount
	quotation.TaxAmount = totals.TaxAmount
	quotation.GrandTotal = totals.GrandTotal

	return quotation, nil
}

func toAddonCharge(in AddonInput) model.AddonCharge {
	return model.AddonCharge{
		Included:  in.Included,
		Duration:  in.Duration,
		UnitPrice: pricing.ParseAmount(in.UnitPrice),
	}
}

func parseOptionalUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// --- Mapping ---

func toQuotationResponse(q model.Quotation) QuotationResponse {
	services := make([]QuotationServiceResponse, 0, len(q.Services))
	for _, line := range q.Services {
		amount := line.UnitPrice.Mul(decimalFromInt(line.Quantity))
		services = append(services, QuotationServiceResponse{
			ID:          line.ID.String(),
			Category:    line.Category,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice.StringFixed(2),
			Amount:      amount.StringFixed(2),
		})
	}

	resp := QuotationResponse{
		ID:            q.ID.String(),
		QuotationNo:   q.QuotationNo,
		Revision:      q.Revision,
		Status:        q.Status,
		QuotationDate: q.QuotationDate.Format("2006-01-02"),

		CompanyName:    q.CompanyName,
		CompanyAddress: q.CompanyAddress,
		CompanyEmail:   q.CompanyEmail,
		CompanyPhone:   q.CompanyPhone,
		CompanyWebsite: q.CompanyWebsite,

		ClientName:    q.ClientName,
		ClientCompany: q.ClientCompany,
		ClientAddress: q.ClientAddress,
		ClientEmail:   q.ClientEmail,
		ClientPhone:   q.ClientPhone,

		Services: services,

		DomainRegistration: toAddonResponse(q.DomainRegistration),
		ServerHosting:      toAddonResponse(q.ServerHosting),
		SSLCertificate:     toAddonResponse(q.SSLCertificate),
		EmailHosting:       toAddonResponse(q.EmailHosting),

		DiscountType:  q.DiscountType,
		DiscountValue: q.DiscountValue.StringFixed(2),
		TaxRate:       q.TaxRate.StringFixed(2),

		TotalServiceCharge:      q.TotalServiceCharge.StringFixed(2),
		TotalServerDomainCharge: q.TotalServerDomainCharge.StringFixed(2),
		DiscountAmount:          q.DiscountAmount.StringFixed(2),
		AfterDiscountTotal:      q.AfterDiscountTotal.StringFixed(2),
		TaxAmount:               q.TaxAmount.StringFixed(2),
		GrandTotal:              q.GrandTotal.StringFixed(2),

		PaymentTerms:    q.PaymentTerms,
		AdditionalNotes: q.AdditionalNotes,

		SignatoryName:        q.SignatoryName,
		SignatoryDesignation: q.SignatoryDesignation,
		Signature:            q.Signature,

		CreatedAt: q.CreatedAt.Format(time.RFC3339),
		UpdatedAt: q.UpdatedAt.Format(time.RFC3339),
	}

	if q.ValidUntil != nil {
		s := q.ValidUntil.Format("2006-01-02")
		resp.ValidUntil = &s
	}
	if q.CreatedBy != nil {
		s := q.CreatedBy.String()
		resp.CreatedBy = &s
	}
	if q.Creator != nil {
		resp.CreatorName = q.Creator.Username
	}

	return resp
}

func toAddonResponse(a model.AddonCharge) AddonResponse {
	return AddonResponse{
		Included:  a.Included,
		Duration:  a.Duration,
		UnitPrice: a.UnitPrice.StringFixed(2),
	}
}
