package service

import (
	"github.com/shopspring/decimal"
	taxdomain "github.com/smallbiznis/khata/internal/tax/domain"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// FromInclusive splits a tax-inclusive total into base and tax.
// Rounding happens at the minor unit, half-up, so base + tax == total exactly.
func FromInclusive(total, ratePercent decimal.Decimal) (taxdomain.TaxBreakdown, error) {
	if err := validateAmounts("total_amount", total, ratePercent); err != nil {
		return taxdomain.TaxBreakdown{}, err
	}

	totalAmount := roundMinor(total)
	divisor := decimal.NewFromInt(1).Add(ratePercent.Div(hundred))
	base := roundMinor(totalAmount.Div(divisor))
	tax := roundMinor(totalAmount.Sub(base))

	return split(taxdomain.TaxBreakdown{
		BaseAmount:  base,
		TaxAmount:   tax,
		TotalAmount: totalAmount,
		Rate:        ratePercent,
	}), nil
}

// FromExclusive adds tax on top of a base amount.
func FromExclusive(base, ratePercent decimal.Decimal) (taxdomain.TaxBreakdown, error) {
	if err := validateAmounts("base_amount", base, ratePercent); err != nil {
		return taxdomain.TaxBreakdown{}, err
	}

	baseAmount := roundMinor(base)
	tax := roundMinor(baseAmount.Mul(ratePercent).Div(hundred))

	return split(taxdomain.TaxBreakdown{
		BaseAmount:  baseAmount,
		TaxAmount:   tax,
		TotalAmount: baseAmount.Add(tax),
		Rate:        ratePercent,
	}), nil
}

// Compute dispatches on the amount direction.
func Compute(direction taxdomain.Direction, amount, ratePercent decimal.Decimal) (taxdomain.TaxBreakdown, error) {
	switch direction {
	case taxdomain.DirectionInclusive:
		return FromInclusive(amount, ratePercent)
	case taxdomain.DirectionExclusive, "":
		return FromExclusive(amount, ratePercent)
	default:
		return taxdomain.TaxBreakdown{}, taxdomain.NewValidationError(taxdomain.ErrInvalidInput, "direction", "direction must be inclusive or exclusive")
	}
}

// split assigns the tax either to the two domestic components or to the
// inter-state component, based on the rate threshold. Each half is rounded
// on its own, so the halves may differ from the tax by one minor unit.
func split(b taxdomain.TaxBreakdown) taxdomain.TaxBreakdown {
	b.SplitA = decimal.Zero
	b.SplitB = decimal.Zero
	b.InterStateAmount = decimal.Zero

	if b.Rate.GreaterThan(taxdomain.InterStateRateThreshold) {
		b.InterStateAmount = b.TaxAmount
		return b
	}

	half := roundMinor(b.TaxAmount.Div(two))
	b.SplitA = half
	b.SplitB = half
	return b
}

func validateAmounts(field string, amount, ratePercent decimal.Decimal) error {
	if amount.IsNegative() {
		return taxdomain.NewValidationError(taxdomain.ErrInvalidInput, field, "amount cannot be negative")
	}
	if ratePercent.IsNegative() {
		return taxdomain.NewValidationError(taxdomain.ErrInvalidInput, "rate", "rate cannot be negative")
	}
	return nil
}

func roundMinor(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}
