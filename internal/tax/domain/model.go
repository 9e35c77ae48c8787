package domain

import "github.com/shopspring/decimal"

// InterStateRateThreshold separates domestic from inter-state treatment.
// Rates above it are booked entirely as inter-state tax. The real rule compares
// supplier and place-of-supply states; callers only hand us a rate.
var InterStateRateThreshold = decimal.NewFromInt(18)

// Direction tells whether an amount already contains tax.
type Direction string

const (
	DirectionInclusive Direction = "inclusive" // amount already includes tax
	DirectionExclusive Direction = "exclusive" // tax is added on top
)

// TaxBreakdown is the computed split of an amount into base and tax.
// SplitA and SplitB are the central and state components; InterStateAmount is
// the integrated component. Only one side is non-zero.
type TaxBreakdown struct {
	BaseAmount       decimal.Decimal `json:"base_amount"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Rate             decimal.Decimal `json:"rate"`
	SplitA           decimal.Decimal `json:"cgst_amount"`
	SplitB           decimal.Decimal `json:"sgst_amount"`
	InterStateAmount decimal.Decimal `json:"igst_amount"`
}

// IsInterState reports whether the breakdown was booked as inter-state tax.
func (b TaxBreakdown) IsInterState() bool {
	return b.Rate.GreaterThan(InterStateRateThreshold)
}

// Registration is the parsed form of a valid registration identifier.
type Registration struct {
	ID               string `json:"id"`
	JurisdictionCode int    `json:"jurisdiction_code"`
	JurisdictionName string `json:"jurisdiction_name,omitempty"`
	PAN              string `json:"pan"`
	// ChecksumValid is advisory; a mismatch does not fail validation.
	ChecksumValid bool `json:"checksum_valid"`
}

// Category is a goods/services classification with its usual rate.
type Category struct {
	Code          string          `json:"code"`
	Description   string          `json:"description"`
	Keywords      []string        `json:"-"`
	SuggestedRate decimal.Decimal `json:"suggested_rate"`
}
