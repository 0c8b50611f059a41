// Package pricing computes the derived totals of a quotation from its line
// items, addon charges and discount/tax configuration. Compute is a pure
// function: the same inputs always yield the same totals and nothing is
// accumulated between calls.
package pricing

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Discount type values accepted by Compute. Any other value behaves as "none".
const (
	DiscountNone    = "none"
	DiscountFlat    = "flat"
	DiscountPercent = "percent"
)

var hundred = decimal.NewFromInt(100)

// LineItem is one billable service row.
type LineItem struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// Addon is one of the fixed infrastructure charges. Only included addons
// count toward the server/domain total, whatever their price.
type Addon struct {
	Included  bool
	UnitPrice decimal.Decimal
}

// Inputs carries everything the totals are derived from.
type Inputs struct {
	Items         []LineItem
	Addons        []Addon
	DiscountType  string
	DiscountValue decimal.Decimal
	TaxRate       decimal.Decimal // percent, 0-100
}

// Totals is the derived snapshot. It is never edited by hand; every field
// is recomputed from Inputs on each call.
type Totals struct {
	ServiceCharge      decimal.Decimal // Σ quantity × unit_price over line items
	ServerDomainCharge decimal.Decimal // Σ unit_price over included addons
	Subtotal           decimal.Decimal // service + server/domain
	DiscountAmount     decimal.Decimal
	AfterDiscount      decimal.Decimal // may go negative when the discount exceeds the subtotal
	TaxAmount          decimal.Decimal
	GrandTotal         decimal.Decimal
}

// Compute derives the full totals snapshot from in. Out-of-range inputs are
// coerced rather than rejected: quantities below 1 count as 1, negative
// prices, discount values and tax rates count as 0.
func Compute(in Inputs) Totals {
	service := decimal.Zero
	for _, item := range in.Items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		price := item.UnitPrice
		if price.IsNegative() {
			price = decimal.Zero
		}
		service = service.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}

	addons := decimal.Zero
	for _, addon := range in.Addons {
		if !addon.Included {
			continue
		}
		price := addon.UnitPrice
		if price.IsNegative() {
			price = decimal.Zero
		}
		addons = addons.Add(price)
	}

	subtotal := service.Add(addons)

	discountValue := in.DiscountValue
	if discountValue.IsNegative() {
		discountValue = decimal.Zero
	}

	var discount decimal.Decimal
	switch in.DiscountType {
	case DiscountFlat:
		discount = discountValue
	case DiscountPercent:
		discount = subtotal.Mul(discountValue).Div(hundred)
	default:
		discount = decimal.Zero
	}

	// No clamp at zero: a discount larger than the subtotal yields a
	// negative after-discount total, matching the stored document history.
	afterDiscount := subtotal.Sub(discount)

	taxRate := in.TaxRate
	if taxRate.IsNegative() {
		taxRate = decimal.Zero
	}
	tax := afterDiscount.Mul(taxRate).Div(hundred)

	return Totals{
		ServiceCharge:      service,
		ServerDomainCharge: addons,
		Subtotal:           subtotal,
		DiscountAmount:     discount,
		AfterDiscount:      afterDiscount,
		TaxAmount:          tax,
		GrandTotal:         afterDiscount.Add(tax),
	}
}

// MaxQuantity caps a single line item's quantity. Inputs beyond it are
// clamped rather than rejected, like every other coercion here.
const MaxQuantity = 1_000_000

// ParseQuantity coerces free-form quantity input to a positive integer in
// [1, MaxQuantity]. Anything unparseable, NaN, zero or negative falls back
// to 1; fractional input is truncated.
func ParseQuantity(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 {
			return 1
		}
		if n > MaxQuantity {
			return MaxQuantity
		}
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(f) || f < 1 {
			return 1
		}
		if f > MaxQuantity {
			return MaxQuantity
		}
		return int(f)
	}
	return 1
}

// ParseAmount coerces free-form money input to a non-negative decimal.
// Anything unparseable or negative falls back to zero.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseRate coerces free-form percentage input to the 0-100 range.
func ParseRate(s string) decimal.Decimal {
	d := ParseAmount(s)
	if d.GreaterThan(hundred) {
		return hundred
	}
	return d
}
