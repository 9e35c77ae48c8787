package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// PayslipPrefix scopes payslip numbers, e.g. PAY-202603-001.
const PayslipPrefix = "PAY"

const StatusProcessed = "processed"

// Rates are the statutory fractions applied to the base salary.
type Rates struct {
	HousingAllowance   decimal.Decimal
	DearnessAllowance  decimal.Decimal
	ProvidentFund      decimal.Decimal
	StateInsurance     decimal.Decimal
	IncomeTax          decimal.Decimal
	IncomeTaxThreshold decimal.Decimal
}

func DefaultRates() Rates {
	return Rates{
		HousingAllowance:   decimal.RequireFromString("0.40"),
		DearnessAllowance:  decimal.RequireFromString("0.10"),
		ProvidentFund:      decimal.RequireFromString("0.12"),
		StateInsurance:     decimal.RequireFromString("0.0175"),
		IncomeTax:          decimal.RequireFromString("0.10"),
		IncomeTaxThreshold: decimal.NewFromInt(25000),
	}
}

// Input carries the manually entered figures for one pay period.
type Input struct {
	BaseSalary      decimal.Decimal
	OtherAllowances decimal.Decimal
	OtherDeductions decimal.Decimal
	WorkingDays     int
	LeaveDays       int
}

type Allowances struct {
	Housing  decimal.Decimal `json:"housing"`
	Dearness decimal.Decimal `json:"dearness"`
	Other    decimal.Decimal `json:"other"`
}

func (a Allowances) Total() decimal.Decimal {
	return a.Housing.Add(a.Dearness).Add(a.Other)
}

type Deductions struct {
	ProvidentFund        decimal.Decimal `json:"provident_fund"`
	StateInsurance       decimal.Decimal `json:"state_insurance"`
	IncomeTaxWithholding decimal.Decimal `json:"income_tax_withholding"`
	Other                decimal.Decimal `json:"other"`
}

func (d Deductions) Total() decimal.Decimal {
	return d.ProvidentFund.Add(d.StateInsurance).Add(d.IncomeTaxWithholding).Add(d.Other)
}

// Record is a computed payroll breakdown. Figures are exact; rounding is
// left to the renderer.
type Record struct {
	BaseSalary      decimal.Decimal `json:"base_salary"`
	Allowances      Allowances      `json:"allowances"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	Deductions      Deductions      `json:"deductions"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	WorkingDays     int             `json:"working_days"`
	LeaveDays       int             `json:"leave_days"`
}

// PayrollRecord is a processed, persisted payroll run for one employee and
// period. It has no update path.
type PayrollRecord struct {
	ID                   snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrgID                snowflake.ID    `gorm:"not null;uniqueIndex:ux_payroll_records_employee_period,priority:1;uniqueIndex:ux_payroll_records_number,priority:1" json:"organization_id"`
	EmployeeCode         string          `gorm:"type:text;not null;uniqueIndex:ux_payroll_records_employee_period,priority:2" json:"employee_code"`
	EmployeeName         string          `gorm:"type:text;not null" json:"employee_name"`
	Period               string          `gorm:"type:text;not null;uniqueIndex:ux_payroll_records_employee_period,priority:3" json:"period"`
	PayslipNumber        string          `gorm:"type:text;not null;uniqueIndex:ux_payroll_records_number,priority:2" json:"payslip_number"`
	Status               string          `gorm:"type:text;not null" json:"status"`
	BaseSalary           decimal.Decimal `gorm:"type:numeric(28,10);not null" json:"base_salary"`
	HousingAllowance     decimal.Decimal `gorm:"type:numeric(28,10);not null" json:"housing_allowance"`
	DearnessAllowance    decimal.Decimal `gorm:"type:numeric(28,10);not null" json:"dearness_allowance"`
	OtherAllowances      decimal.Decimal `gorm:"type:numeric(28,10);not null" json:"other_allowances"`
	GrossSalary          decimal.Decimal `gorm:"type:numeric(28,10);not null" json:"gross_salary"`
	ProvidentFund        decimal.Decimal `gorm:"type:numeric(28,10);not null" json:"provident_fund"`
	StateInsurance       decimal.Decimal `gorm:"type:numeric(28,10);not null" json:"state_insurance"`
	IncomeTaxWithholding decimal.Decimal `gorm:"type:numeric(28,10);not null" json:"income_tax_withholding"`
	OtherDeductions      decimal.Decimal `gorm:"type:numeric(28,10);not null" json:"other_deductions"`
	TotalDeductions      decimal.Decimal `gorm:"type:numeric(28,10);not null" json:"total_deductions"`
	NetSalary            decimal.Decimal `gorm:"type:numeric(28,10);not null" json:"net_salary"`
	WorkingDays          int             `gorm:"not null" json:"working_days"`
	LeaveDays            int             `gorm:"not null" json:"leave_days"`
	ProcessedAt          time.Time       `gorm:"not null;index" json:"processed_at"`
	CreatedAt            time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (PayrollRecord) TableName() string { return "payroll_records" }

// Breakdown rebuilds the computed view of a stored record.
func (r PayrollRecord) Breakdown() Record {
	return Record{
		BaseSalary: r.BaseSalary,
		Allowances: Allowances{
			Housing:  r.HousingAllowance,
			Dearness: r.DearnessAllowance,
			Other:    r.OtherAllowances,
		},
		GrossSalary: r.GrossSalary,
		Deductions: Deductions{
			ProvidentFund:        r.ProvidentFund,
			StateInsurance:       r.StateInsurance,
			IncomeTaxWithholding: r.IncomeTaxWithholding,
			Other:                r.OtherDeductions,
		},
		TotalDeductions: r.TotalDeductions,
		NetSalary:       r.NetSalary,
		WorkingDays:     r.WorkingDays,
		LeaveDays:       r.LeaveDays,
	}
}
