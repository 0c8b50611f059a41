package document

import (
	"strings"
	"testing"

	"digiwave-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFRenderer_Complete(t *testing.T) {
	doc := Build(sampleQuotation())

	out, err := NewPDFRenderer().Render(doc)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF-", string(out[:5]), "output must start with the PDF header")
}

func TestPDFRenderer_MinimalQuotation(t *testing.T) {
	q := sampleQuotation()
	q.Services = q.Services[:1]
	q.DomainRegistration.Included = false
	q.SSLCertificate.Included = false
	q.DiscountType = model.DiscountNone
	q.PaymentTerms = ""
	q.AdditionalNotes = ""
	q.SignatoryName = ""

	out, err := NewPDFRenderer().Render(Build(q))
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestPDFRenderer_ContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", NewPDFRenderer().ContentType())
}

func TestPrintRenderer_SharesLayoutData(t *testing.T) {
	doc := Build(sampleQuotation())

	out, err := NewPrintRenderer().Render(doc)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "QT-202501-0001")
	assert.Contains(t, html, "DigiWave Technologies")
	assert.Contains(t, html, "Asha Patel")
	assert.Contains(t, html, "Landing page")
	assert.Contains(t, html, "Domain Registration")
	assert.NotContains(t, html, "Server Hosting", "excluded addon must not be printed")
	assert.Contains(t, html, "Rs. 59,471") // grand total, display rounding
	assert.Contains(t, html, "window.print()")
}

func TestPrintRenderer_EscapesClientInput(t *testing.T) {
	q := sampleQuotation()
	q.ClientName = `<script>alert("x")</script>`

	out, err := NewPrintRenderer().Render(Build(q))
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(out), "<script>alert"), "client input must be escaped")
}

func TestPrintRenderer_ContentType(t *testing.T) {
	assert.Equal(t, "text/html; charset=utf-8", NewPrintRenderer().ContentType())
}
