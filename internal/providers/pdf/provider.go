package pdf

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// Provider renders already-computed figures. It owns currency formatting
// and layout only.
type Provider interface {
	RenderPayslip(ctx context.Context, data PayslipData) ([]byte, error)
	RenderTaxSummary(ctx context.Context, data TaxSummaryData) ([]byte, error)
}

type Line struct {
	Label  string
	Amount decimal.Decimal
}

type PayslipData struct {
	PayslipNumber   string
	EmployeeName    string
	EmployeeCode    string
	Period          string
	ProcessedAt     time.Time
	WorkingDays     int
	LeaveDays       int
	Earnings        []Line
	Deductions      []Line
	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
}

type TaxSummaryData struct {
	DocumentNumber string
	Kind           string
	Description    string
	IssuedAt       time.Time
	Rate           decimal.Decimal
	BaseAmount     decimal.Decimal
	SplitA         decimal.Decimal
	SplitB         decimal.Decimal
	InterState     decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
}

type PDFProvider struct {
	currencySymbol string
}

func New() Provider {
	return &PDFProvider{currencySymbol: "Rs."}
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)

var decimalTwo = decimal.NewFromInt(2)

// money rounds half-up to the minor unit and groups thousands.
func (p *PDFProvider) money(v decimal.Decimal) string {
	fixed := v.Round(2).StringFixed(2)

	sign := ""
	if fixed[0] == '-' {
		sign = "-"
		fixed = fixed[1:]
	}
	intPart, frac := fixed[:len(fixed)-3], fixed[len(fixed)-3:]

	grouped := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, intPart[i])
	}

	return p.currencySymbol + " " + sign + string(grouped) + frac
}
