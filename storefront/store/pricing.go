package store

import (
	"github.com/harikrishnagadicharla/unicart/pkg/config"
	"github.com/shopspring/decimal"
)

// Pricing holds the constants behind the cart's derived totals. Amounts are
// currency values, not cents.
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFlatFee       decimal.Decimal
	TaxRate               decimal.Decimal
}

// DefaultPricing returns the storefront defaults: free shipping from 100.00,
// a 9.99 flat fee below that, and an 8% tax rate.
func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: decimal.NewFromInt(100),
		ShippingFlatFee:       decimal.RequireFromString("9.99"),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

// PricingFromConfig converts the service's cent and basis-point knobs into
// decimal amounts so both sides compute the same totals.
func PricingFromConfig(cfg config.StorefrontConfig) Pricing {
	hundred := decimal.NewFromInt(100)
	return Pricing{
		FreeShippingThreshold: decimal.NewFromInt(cfg.FreeShippingThresholdCents).Div(hundred),
		ShippingFlatFee:       decimal.NewFromInt(cfg.ShippingFlatFeeCents).Div(hundred),
		TaxRate:               decimal.NewFromInt(cfg.TaxRateBps).Div(decimal.NewFromInt(10000)),
	}
}

// Shipping applies the threshold rule to a subtotal.
func (p Pricing) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.ShippingFlatFee
}

// Tax computes the tax on a subtotal, rounded to cents.
func (p Pricing) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(p.TaxRate).Round(2)
}
