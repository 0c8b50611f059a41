package pricing

import (
	"testing"

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

func TestCompute_NoDiscountNoTax(t *testing.T) {
	got := Compute(Inputs{
		Items: []LineItem{
			{Quantity: 2, UnitPrice: dec("5000")},
			{Quantity: 1, UnitPrice: dec("1500.50")},
		},
		Addons: []Addon{
			{Included: true, UnitPrice: dec("999")},
			{Included: false, UnitPrice: dec("5000")},
		},
		DiscountType: DiscountNone,
	})

	assert.True(t, got.ServiceCharge.Equal(dec("11500.50")), "service charge = %s", got.ServiceCharge)
	assert.True(t, got.ServerDomainCharge.Equal(dec("999")), "addon charge = %s", got.ServerDomainCharge)
	assert.True(t, got.GrandTotal.Equal(dec("12499.50")), "grand total = %s", got.GrandTotal)
}

func TestCompute_DiscountCorrectness(t *testing.T) {
	base := Inputs{
		Items: []LineItem{{Quantity: 1, UnitPrice: dec("1000")}},
	}

	percent := base
	percent.DiscountType = DiscountPercent
	percent.DiscountValue = dec("10")
	got := Compute(percent)
	assert.True(t, got.DiscountAmount.Equal(dec("100")))
	assert.True(t, got.AfterDiscount.Equal(dec("900")))

	flat := base
	flat.DiscountType = DiscountFlat
	flat.DiscountValue = dec("150")
	got = Compute(flat)
	assert.True(t, got.DiscountAmount.Equal(dec("150")))
	assert.True(t, got.AfterDiscount.Equal(dec("850")))
}

func TestCompute_TaxCorrectness(t *testing.T) {
	got := Compute(Inputs{
		Items:         []LineItem{{Quantity: 1, UnitPrice: dec("1000")}},
		DiscountType:  DiscountPercent,
		DiscountValue: dec("10"),
		TaxRate:       dec("18"),
	})

	require.True(t, got.AfterDiscount.Equal(dec("900")))
	assert.True(t, got.TaxAmount.Equal(dec("162")), "tax = %s", got.TaxAmount)
	assert.True(t, got.GrandTotal.Equal(dec("1062")), "grand total = %s", got.GrandTotal)
}

func TestCompute_ExcludedAddonNeverCounts(t *testing.T) {
	got := Compute(Inputs{
		Items:  []LineItem{{Quantity: 1, UnitPrice: dec("100")}},
		Addons: []Addon{{Included: false, UnitPrice: dec("99999")}},
	})

	assert.True(t, got.ServerDomainCharge.IsZero())
	assert.True(t, got.GrandTotal.Equal(dec("100")))
}

func TestCompute_Idempotent(t *testing.T) {
	in := Inputs{
		Items: []LineItem{
			{Quantity: 3, UnitPrice: dec("250")},
			{Quantity: 2, UnitPrice: dec("125.25")},
		},
		Addons:        []Addon{{Included: true, UnitPrice: dec("450")}},
		DiscountType:  DiscountPercent,
		DiscountValue: dec("5"),
		TaxRate:       dec("18"),
	}

	first := Compute(in)
	second := Compute(in)
	assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
	assert.True(t, first.DiscountAmount.Equal(second.DiscountAmount))
	assert.True(t, first.TaxAmount.Equal(second.TaxAmount))
}

func TestCompute_Monotonic(t *testing.T) {
	in := Inputs{
		Items:         []LineItem{{Quantity: 2, UnitPrice: dec("500")}},
		Addons:        []Addon{{Included: true, UnitPrice: dec("100")}},
		DiscountType:  DiscountPercent,
		DiscountValue: dec("10"),
		TaxRate:       dec("18"),
	}
	base := Compute(in)

	bumpedQty := in
	bumpedQty.Items = []LineItem{{Quantity: 3, UnitPrice: dec("500")}}
	assert.True(t, Compute(bumpedQty).GrandTotal.GreaterThanOrEqual(base.GrandTotal))

	bumpedPrice := in
	bumpedPrice.Items = []LineItem{{Quantity: 2, UnitPrice: dec("600")}}
	assert.True(t, Compute(bumpedPrice).GrandTotal.GreaterThanOrEqual(base.GrandTotal))
}

func TestCompute_NegativeAfterDiscountNotClamped(t *testing.T) {
	got := Compute(Inputs{
		Items:         []LineItem{{Quantity: 1, UnitPrice: dec("100")}},
		DiscountType:  DiscountFlat,
		DiscountValue: dec("250"),
	})

	assert.True(t, got.AfterDiscount.Equal(dec("-150")), "after discount = %s", got.AfterDiscount)
	assert.True(t, got.GrandTotal.Equal(dec("-150")))
}

func TestCompute_CoercesInvalidRanges(t *testing.T) {
	got := Compute(Inputs{
		Items: []LineItem{
			{Quantity: 0, UnitPrice: dec("100")},  // quantity floors at 1
			{Quantity: 2, UnitPrice: dec("-500")}, // negative price counts as 0
		},
		DiscountType:  DiscountFlat,
		DiscountValue: dec("-10"), // negative discount counts as 0
		TaxRate:       dec("-5"),  // negative rate counts as 0
	})

	assert.True(t, got.ServiceCharge.Equal(dec("100")))
	assert.True(t, got.GrandTotal.Equal(dec("100")))
}

func TestCompute_EndToEndScenario(t *testing.T) {
	// One landing page row, no addons, no discount, no tax.
	got := Compute(Inputs{
		Items: []LineItem{{Quantity: 2, UnitPrice: dec("5000")}},
		Addons: []Addon{
			{Included: false}, {Included: false}, {Included: false}, {Included: false},
		},
		DiscountType: DiscountNone,
	})

	assert.True(t, got.ServiceCharge.Equal(dec("10000")))
	assert.True(t, got.GrandTotal.Equal(dec("10000")))
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain", "3", 3},
		{"padded", " 12 ", 12},
		{"fractional", "2.9", 2},
		{"zero", "0", 1},
		{"negative", "-4", 1},
		{"empty", "", 1},
		{"garbage", "abc", 1},
		{"scientific overflow", "1e19", MaxQuantity},
		{"huge integer", "99999999999999999999", MaxQuantity},
		{"above cap", "1000001", MaxQuantity},
		{"at cap", "1000000", MaxQuantity},
		{"nan", "nan", 1},
		{"negative infinity", "-inf", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuantity(tt.input))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "1500", "1500"},
		{"decimal", "99.95", "99.95"},
		{"padded", " 10 ", "10"},
		{"empty", "", "0"},
		{"garbage", "12x", "0"},
		{"negative", "-5", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, ParseAmount(tt.input).Equal(dec(tt.want)),
				"ParseAmount(%q) = %s, want %s", tt.input, ParseAmount(tt.input), tt.want)
		})
	}
}

func TestParseRate(t *testing.T) {
	assert.True(t, ParseRate("18").Equal(dec("18")))
	assert.True(t, ParseRate("150").Equal(dec("100")))
	assert.True(t, ParseRate("").IsZero())
}
