package document

import (
	"testing"
	"time"

	"digiwave-backend/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleQuotation() *model.Quotation {
	return &model.Quotation{
		QuotationNo:    "QT-202501-0001",
		Revision:       1,
		QuotationDate:  time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		CompanyName:    "DigiWave Technologies",
		CompanyAddress: "Ahmedabad, Gujarat",
		CompanyEmail:   "hello@digiwave.example",
		ClientName:     "Asha Patel",
		ClientCompany:  "Patel Traders",
		Services: []model.QuotationService{
			{Category: model.ServiceCategoryWeb, Description: "Landing page", Quantity: 2, UnitPrice: dec("5000")},
			{Category: model.ServiceCategoryMobile, Description: "Android app", Quantity: 1, UnitPrice: dec("45000")},
		},
		DomainRegistration: model.AddonCharge{Included: true, Duration: "1 year", UnitPrice: dec("999")},
		ServerHosting:      model.AddonCharge{Included: false, UnitPrice: dec("5000")},
		SSLCertificate:     model.AddonCharge{Included: true, Duration: "1 year", UnitPrice: dec("0")},
		EmailHosting:       model.AddonCharge{Included: false},
		DiscountType:       model.DiscountPercent,
		DiscountValue:      dec("10"),
		TaxRate:            dec("18"),

		TotalServiceCharge:      dec("55000"),
		TotalServerDomainCharge: dec("999"),
		DiscountAmount:          dec("5599.90"),
		AfterDiscountTotal:      dec("50399.10"),
		TaxAmount:               dec("9071.84"),
		GrandTotal:              dec("59470.94"),

		PaymentTerms:         "50% advance, 50% on delivery",
		SignatoryName:        "R. Mehta",
		SignatoryDesignation: "Director",
	}
}

func TestBuild_FiltersExcludedAddons(t *testing.T) {
	doc := Build(sampleQuotation())

	require.Len(t, doc.Addons, 2)
	assert.Equal(t, "Domain Registration", doc.Addons[0].Label)
	assert.Equal(t, "SSL Certificate", doc.Addons[1].Label)
}

func TestBuild_LineAmounts(t *testing.T) {
	doc := Build(sampleQuotation())

	require.Len(t, doc.Lines, 2)
	assert.Equal(t, 1, doc.Lines[0].No)
	assert.Equal(t, "Web Development", doc.Lines[0].Category)
	assert.True(t, doc.Lines[0].Amount.Equal(dec("10000")))
	assert.True(t, doc.Lines[1].Amount.Equal(dec("45000")))
}

func TestBuild_DiscountLabel(t *testing.T) {
	q := sampleQuotation()
	doc := Build(q)
	assert.Equal(t, "Discount (10%)", doc.DiscountLabel)

	q.DiscountType = model.DiscountFlat
	assert.Equal(t, "Discount", Build(q).DiscountLabel)

	q.DiscountType = model.DiscountNone
	assert.Empty(t, Build(q).DiscountLabel)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "quotation-QT-202501-0001.pdf", Filename("QT-202501-0001"))
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"small", "500", "Rs. 500"},
		{"thousands", "12345", "Rs. 12,345"},
		{"lakhs", "1234567", "Rs. 12,34,567"},
		{"crores", "12345678", "Rs. 1,23,45,678"},
		{"rounds_display_only", "999.60", "Rs. 1,000"},
		{"negative", "-150", "-Rs. 150"},
		{"zero", "0", "Rs. 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(dec(tt.amount)))
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Web Development", CategoryLabel(model.ServiceCategoryWeb))
	assert.Equal(t, "AI / ML", CategoryLabel(model.ServiceCategoryAIML))
	assert.Equal(t, "Custom", CategoryLabel("custom"))
	assert.Equal(t, "", CategoryLabel(""))
}
