package service

import (
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/khata/internal/config"
	payrolldomain "github.com/smallbiznis/khata/internal/payroll/domain"
	taxdomain "github.com/smallbiznis/khata/internal/tax/domain"
)

// Compute derives the payroll breakdown using the default statutory rates.
func Compute(baseSalary, otherAllowances, otherDeductions decimal.Decimal) (payrolldomain.Record, error) {
	return ComputeWithRates(payrolldomain.DefaultRates(), payrolldomain.Input{
		BaseSalary:      baseSalary,
		OtherAllowances: otherAllowances,
		OtherDeductions: otherDeductions,
	})
}

// ComputeWithRates derives the payroll breakdown with exact decimal
// arithmetic, so net + total deductions always equals gross.
func ComputeWithRates(rates payrolldomain.Rates, in payrolldomain.Input) (payrolldomain.Record, error) {
	if err := validateInput(in); err != nil {
		return payrolldomain.Record{}, err
	}

	base := in.BaseSalary
	allowances := payrolldomain.Allowances{
		Housing:  base.Mul(rates.HousingAllowance),
		Dearness: base.Mul(rates.DearnessAllowance),
		Other:    in.OtherAllowances,
	}
	gross := base.Add(allowances.Total())

	withholding := decimal.Zero
	if base.GreaterThan(rates.IncomeTaxThreshold) {
		withholding = base.Mul(rates.IncomeTax)
	}
	deductions := payrolldomain.Deductions{
		ProvidentFund:        base.Mul(rates.ProvidentFund),
		StateInsurance:       base.Mul(rates.StateInsurance),
		IncomeTaxWithholding: withholding,
		Other:                in.OtherDeductions,
	}
	totalDeductions := deductions.Total()

	if totalDeductions.GreaterThan(gross) {
		return payrolldomain.Record{}, taxdomain.NewValidationError(
			taxdomain.ErrInvalidInput, "other_deductions", "deductions exceed gross salary",
		)
	}

	return payrolldomain.Record{
		BaseSalary:      base,
		Allowances:      allowances,
		GrossSalary:     gross,
		Deductions:      deductions,
		TotalDeductions: totalDeductions,
		NetSalary:       gross.Sub(totalDeductions),
		WorkingDays:     in.WorkingDays,
		LeaveDays:       in.LeaveDays,
	}, nil
}

func validateInput(in payrolldomain.Input) error {
	switch {
	case !in.BaseSalary.IsPositive():
		return taxdomain.NewValidationError(taxdomain.ErrInvalidInput, "base_salary", "must be greater than zero")
	case in.OtherAllowances.IsNegative():
		return taxdomain.NewValidationError(taxdomain.ErrInvalidInput, "other_allowances", "must not be negative")
	case in.OtherDeductions.IsNegative():
		return taxdomain.NewValidationError(taxdomain.ErrInvalidInput, "other_deductions", "must not be negative")
	case in.WorkingDays < 0:
		return taxdomain.NewValidationError(taxdomain.ErrInvalidInput, "working_days", "must not be negative")
	case in.LeaveDays < 0:
		return taxdomain.NewValidationError(taxdomain.ErrInvalidInput, "leave_days", "must not be negative")
	case in.LeaveDays > in.WorkingDays:
		return taxdomain.NewValidationError(taxdomain.ErrInvalidInput, "leave_days", "must not exceed working days")
	}
	return nil
}

// RatesFromConfig converts the configured statutory fractions.
func RatesFromConfig(cfg config.StatutoryConfig) payrolldomain.Rates {
	return payrolldomain.Rates{
		HousingAllowance:   decimal.NewFromFloat(cfg.HousingAllowanceRate),
		DearnessAllowance:  decimal.NewFromFloat(cfg.DearnessAllowanceRate),
		ProvidentFund:      decimal.NewFromFloat(cfg.ProvidentFundRate),
		StateInsurance:     decimal.NewFromFloat(cfg.StateInsuranceRate),
		IncomeTax:          decimal.NewFromFloat(cfg.IncomeTaxRate),
		IncomeTaxThreshold: decimal.NewFromFloat(cfg.IncomeTaxThreshold),
	}
}
