// Package document turns a persisted quotation into a printable document.
// The layout model is deliberately independent of the HTTP layer and of the
// GORM aggregate's editing lifecycle: renderers consume an immutable
// Document snapshot and are polymorphic over the output format (PDF
// download or browser print markup) while sharing one layout contract.
package document

import (
	"fmt"
	"strings"

	"digiwave-backend/internal/model"

	"github.com/shopspring/decimal"
)

// Renderer produces one output format from a laid-out Document.
type Renderer interface {
	Render(doc *Document) ([]byte, error)
	ContentType() string
}

// DocumentLine is one service row with its derived row amount.
type DocumentLine struct {
	No          int
	Category    string // display label, not the enum value
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal // quantity × unit price
}

// DocumentAddon is one included infrastructure charge. Excluded charges
// never reach the document.
type DocumentAddon struct {
	Label     string
	Duration  string
	UnitPrice decimal.Decimal
}

// Document is the full layout snapshot for one quotation.
type Document struct {
	CompanyName    string
	CompanyAddress string
	CompanyEmail   string
	CompanyPhone   string
	CompanyWebsite string

	QuotationNo   string
	Revision      int
	QuotationDate string
	ValidUntil    string

	ClientName    string
	ClientCompany string
	ClientAddress string
	ClientEmail   string
	ClientPhone   string

	Lines  []DocumentLine
	Addons []DocumentAddon

	TotalServiceCharge      decimal.Decimal
	TotalServerDomainCharge decimal.Decimal
	DiscountLabel           string // empty when no discount applies
	DiscountAmount          decimal.Decimal
	AfterDiscountTotal      decimal.Decimal
	TaxRate                 decimal.Decimal
	TaxAmount               decimal.Decimal
	GrandTotal              decimal.Decimal

	PaymentTerms    string
	AdditionalNotes string

	SignatoryName        string
	SignatoryDesignation string
	SignaturePath        string
}

const dateLayout = "02 Jan 2006"

// Build maps a quotation aggregate onto the layout model: line items keep
// their order, addon charges are filtered to included entries only, and the
// stored derived totals are carried over untouched.
func Build(q *model.Quotation) *Document {
	doc := &Document{
		CompanyName:    q.CompanyName,
		CompanyAddress: q.CompanyAddress,
		CompanyEmail:   q.CompanyEmail,
		CompanyPhone:   q.CompanyPhone,
		CompanyWebsite: q.CompanyWebsite,

		QuotationNo:   q.QuotationNo,
		Revision:      q.Revision,
		QuotationDate: q.QuotationDate.Format(dateLayout),

		ClientName:    q.ClientName,
		ClientCompany: q.ClientCompany,
		ClientAddress: q.ClientAddress,
		ClientEmail:   q.ClientEmail,
		ClientPhone:   q.ClientPhone,

		TotalServiceCharge:      q.TotalServiceCharge,
		TotalServerDomainCharge: q.TotalServerDomainCharge,
		DiscountAmount:          q.DiscountAmount,
		AfterDiscountTotal:      q.AfterDiscountTotal,
		TaxRate:                 q.TaxRate,
		TaxAmount:               q.TaxAmount,
		GrandTotal:              q.GrandTotal,

		PaymentTerms:    q.PaymentTerms,
		AdditionalNotes: q.AdditionalNotes,

		SignatoryName:        q.SignatoryName,
		SignatoryDesignation: q.SignatoryDesignation,
		SignaturePath:        q.Signature,
	}

	if q.ValidUntil != nil {
		doc.ValidUntil = q.ValidUntil.Format(dateLayout)
	}

	for i, svc := range q.Services {
		doc.Lines = append(doc.Lines, DocumentLine{
			No:          i + 1,
			Category:    CategoryLabel(svc.Category),
			Description: svc.Description,
			Quantity:    svc.Quantity,
			UnitPrice:   svc.UnitPrice,
			Amount:      svc.UnitPrice.Mul(decimal.NewFromInt(int64(svc.Quantity))),
		})
	}

	addonLabels := []struct {
		label  string
		charge model.AddonCharge
	}{
		{"Domain Registration", q.DomainRegistration},
		{"Server Hosting", q.ServerHosting},
		{"SSL Certificate", q.SSLCertificate},
		{"Email Hosting", q.EmailHosting},
	}
	for _, a := range addonLabels {
		if !a.charge.Included {
			continue
		}
		doc.Addons = append(doc.Addons, DocumentAddon{
			Label:     a.label,
			Duration:  a.charge.Duration,
			UnitPrice: a.charge.UnitPrice,
		})
	}

	switch q.DiscountType {
	case model.DiscountFlat:
		doc.DiscountLabel = "Discount"
	case model.DiscountPercent:
		doc.DiscountLabel = fmt.Sprintf("Discount (%s%%)", q.DiscountValue.String())
	}

	return doc
}

// Filename derives the deterministic download name for a quotation number.
func Filename(quotationNo string) string {
	return fmt.Sprintf("quotation-%s.pdf", quotationNo)
}

// FormatMoney renders an amount for display: fixed currency prefix,
// Indian thousands grouping, no decimals. Storage keeps full precision;
// rounding here is display-only.
func FormatMoney(amount decimal.Decimal) string {
	rounded := amount.Round(0)

	negative := rounded.IsNegative()
	digits := rounded.Abs().String()

	formatted := applyIndianGrouping(digits)
	if negative {
		return "-Rs. " + formatted
	}
	return "Rs. " + formatted
}

// applyIndianGrouping inserts commas using the Indian numbering system:
// the rightmost 3 digits form the first group, then pairs.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}

// CategoryLabel maps a service category enum value to its display label.
func CategoryLabel(category string) string {
	switch category {
	case model.ServiceCategoryWeb:
		return "Web Development"
	case model.ServiceCategoryMobile:
		return "Mobile Development"
	case model.ServiceCategoryCloud:
		return "Cloud Services"
	case model.ServiceCategoryAIML:
		return "AI / ML"
	default:
		if category == "" {
			return ""
		}
		return strings.ToUpper(category[:1]) + category[1:]
	}
}
