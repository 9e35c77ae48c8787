package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidEmployee     = errors.New("invalid_employee")
	ErrInvalidPeriod       = errors.New("invalid_period")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
	ErrAlreadyProcessed    = errors.New("payroll_already_processed")
	ErrInvalidAmountScale  = errors.New("invalid_amount_scale")
)

// StoredScale is the number of decimal places kept for every persisted
// payroll amount. Computed components must fit it exactly.
const StoredScale int32 = 10

type ComputeRequest struct {
	BaseSalary      decimal.Decimal `json:"base_salary"`
	OtherAllowances decimal.Decimal `json:"other_allowances"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	WorkingDays     int             `json:"working_days"`
	LeaveDays       int             `json:"leave_days"`
}

func (r ComputeRequest) Input() Input {
	return Input{
		BaseSalary:      r.BaseSalary,
		OtherAllowances: r.OtherAllowances,
		OtherDeductions: r.OtherDeductions,
		WorkingDays:     r.WorkingDays,
		LeaveDays:       r.LeaveDays,
	}
}

type ProcessRequest struct {
	ComputeRequest
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	// Period is the pay month as YYYY-MM.
	Period string `json:"period"`
}

type Service interface {
	Compute(ctx context.Context, req ComputeRequest) (Record, error)
	Process(ctx context.Context, req ProcessRequest) (PayrollRecord, error)
	Get(ctx context.Context, id string) (PayrollRecord, error)
	Payslip(ctx context.Context, id string) ([]byte, error)
}

// PeriodStart parses a YYYY-MM pay period into the first instant of the month.
func PeriodStart(period string) (time.Time, error) {
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, ErrInvalidPeriod
	}
	return t.UTC(), nil
}
