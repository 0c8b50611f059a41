package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"digiwave-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubQuotationService lets handler tests drive the error paths directly.
type stubQuotationService struct {
	exportErr error
	printErr  error
}

func (s *stubQuotationService) CreateQuotation(_ context.Context, _ service.CreateQuotationRequest, _ string) (service.QuotationResponse, error) {
	return service.QuotationResponse{}, nil
}

func (s *stubQuotationService) ListQuotations(_ context.Context, _ service.QuotationFilter) ([]service.QuotationResponse, int64, error) {
	return nil, 0, nil
}

func (s *stubQuotationService) GetQuotation(_ context.Context, _ string) (service.QuotationResponse, error) {
	return service.QuotationResponse{}, nil
}

func (s *stubQuotationService) UpdateQuotation(_ context.Context, _ string, _ service.UpdateQuotationRequest, _ string) (service.QuotationResponse, error) {
	return service.QuotationResponse{}, nil
}

func (s *stubQuotationService) DeleteQuotation(_ context.Context, _ string, _ string, _ string) error {
	return nil
}

func (s *stubQuotationService) ExportPDF(_ context.Context, _ string, _ string) (string, []byte, error) {
	if s.exportErr != nil {
		return "", nil, s.exportErr
	}
	return "quotation-QT-202608-0001.pdf", []byte("%PDF-fake"), nil
}

func (s *stubQuotationService) RenderPrint(_ context.Context, _ string) ([]byte, error) {
	if s.printErr != nil {
		return nil, s.printErr
	}
	return []byte("<html></html>"), nil
}

func exportRequest(t *testing.T, svc service.QuotationService) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/quotations/some-id/pdf", nil)
	c.Params = gin.Params{{Key: "id", Value: "some-id"}}

	NewQuotationHandler(svc).ExportPDF(c)
	return w
}

func TestExportPDF_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, http.StatusOK},
		{"missing quotation", fmt.Errorf("%w: gone", service.ErrQuotationNotFound), http.StatusNotFound},
		{"export already running", service.ErrExportInProgress, http.StatusConflict},
		{"renderer failure", fmt.Errorf("failed to render quotation pdf: boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := exportRequest(t, &stubQuotationService{exportErr: tc.err})
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRenderPrint_RenderFailureIs500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/quotations/some-id/print", nil)
	c.Params = gin.Params{{Key: "id", Value: "some-id"}}

	svc := &stubQuotationService{printErr: fmt.Errorf("failed to render print view: boom")}
	NewQuotationHandler(svc).RenderPrint(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCreateQuotation_EmptyServicesRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"company_name":"DigiWave Solutions","client_name":"Acme Corp","services":[]}`
	c.Request = httptest.NewRequest(http.MethodPost, "/api/quotations", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	NewQuotationHandler(&stubQuotationService{}).CreateQuotation(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Services")
}
