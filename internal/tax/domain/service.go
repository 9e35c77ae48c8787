package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Service exposes the tax engine to the rest of the application.
type Service interface {
	Compute(ctx context.Context, req ComputeRequest) (TaxBreakdown, error)
	ValidateRegistrationID(ctx context.Context, id string) (Registration, error)
	SuggestCategory(ctx context.Context, description string) []Category
}

type ComputeRequest struct {
	Direction Direction       `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	Rate      decimal.Decimal `json:"rate"`
}
