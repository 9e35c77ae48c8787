package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/khata/internal/clock"
	"github.com/smallbiznis/khata/internal/config"
	numberingdomain "github.com/smallbiznis/khata/internal/numbering/domain"
	numberingservice "github.com/smallbiznis/khata/internal/numbering/service"
	obsmetrics "github.com/smallbiznis/khata/internal/observability/metrics"
	"github.com/smallbiznis/khata/internal/orgcontext"
	"github.com/smallbiznis/khata/internal/payroll/domain"
	"github.com/smallbiznis/khata/internal/providers/pdf"
	"github.com/smallbiznis/khata/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParams struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	Statutory  *config.StatutoryConfigHolder
	Numberer   numberingdomain.Service
	PDF        pdf.Provider
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	statutory  *config.StatutoryConfigHolder
	numberer   numberingdomain.Service
	pdf        pdf.Provider
	obsMetrics *obsmetrics.Metrics
}

func NewService(p ServiceParams) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("payroll.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		statutory:  p.Statutory,
		numberer:   p.Numberer,
		pdf:        p.PDF,
		obsMetrics: p.ObsMetrics,
	}
}

func (s *Service) rates() domain.Rates {
	if s.statutory == nil {
		return domain.DefaultRates()
	}
	return RatesFromConfig(s.statutory.Get())
}

func (s *Service) Compute(ctx context.Context, req domain.ComputeRequest) (domain.Record, error) {
	record, err := ComputeWithRates(s.rates(), req.Input())
	if err != nil {
		return domain.Record{}, err
	}
	s.obsMetrics.RecordPayrollComputation(ctx)
	return record, nil
}

func (s *Service) Process(ctx context.Context, req domain.ProcessRequest) (domain.PayrollRecord, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.PayrollRecord{}, domain.ErrInvalidOrganization
	}

	code := strings.TrimSpace(req.EmployeeCode)
	name := strings.TrimSpace(req.EmployeeName)
	if code == "" || name == "" {
		return domain.PayrollRecord{}, domain.ErrInvalidEmployee
	}

	periodStart, err := domain.PeriodStart(strings.TrimSpace(req.Period))
	if err != nil {
		return domain.PayrollRecord{}, err
	}

	computed, err := s.Compute(ctx, req.ComputeRequest)
	if err != nil {
		return domain.PayrollRecord{}, err
	}

	if !fitsStoredScale(computed) {
		return domain.PayrollRecord{}, fmt.Errorf("%w: amounts need more than %d decimal places", domain.ErrInvalidAmountScale, domain.StoredScale)
	}

	now := s.clock.Now().UTC()
	record := domain.PayrollRecord{
		ID:                   s.genID.Generate(),
		OrgID:                orgID,
		EmployeeCode:         code,
		EmployeeName:         name,
		Period:               periodStart.Format("2006-01"),
		Status:               domain.StatusProcessed,
		BaseSalary:           computed.BaseSalary,
		HousingAllowance:     computed.Allowances.Housing,
		DearnessAllowance:    computed.Allowances.Dearness,
		OtherAllowances:      computed.Allowances.Other,
		GrossSalary:          computed.GrossSalary,
		ProvidentFund:        computed.Deductions.ProvidentFund,
		StateInsurance:       computed.Deductions.StateInsurance,
		IncomeTaxWithholding: computed.Deductions.IncomeTaxWithholding,
		OtherDeductions:      computed.Deductions.Other,
		TotalDeductions:      computed.TotalDeductions,
		NetSalary:            computed.NetSalary,
		WorkingDays:          computed.WorkingDays,
		LeaveDays:            computed.LeaveDays,
		ProcessedAt:          now,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	policy := numberingservice.RetryPolicy{Conflict: db.IsDuplicateKeyErr}

	_, err = numberingservice.IssueWithRetry(ctx, s.numberer, orgID, domain.PayslipPrefix, now, policy, func(ctx context.Context, number string) error {
		exists, err := s.repo.ExistsForPeriod(ctx, s.db, orgID, code, record.Period)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrAlreadyProcessed
		}

		record.PayslipNumber = number
		return s.repo.Insert(ctx, s.db, &record)
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyProcessed) {
			return domain.PayrollRecord{}, err
		}
		s.log.Error("failed to persist payroll record",
			zap.String("org_id", orgID.String()),
			zap.String("employee_code", code),
			zap.String("period", record.Period),
			zap.Error(err),
		)
		return domain.PayrollRecord{}, err
	}

	s.log.Info("payroll processed",
		zap.String("org_id", orgID.String()),
		zap.String("payroll_id", record.ID.String()),
		zap.String("payslip_number", record.PayslipNumber),
	)
	return record, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.PayrollRecord, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.PayrollRecord{}, domain.ErrInvalidOrganization
	}

	recordID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || recordID == 0 {
		return domain.PayrollRecord{}, domain.ErrInvalidID
	}

	record, err := s.repo.FindByID(ctx, s.db, orgID, recordID)
	if err != nil {
		return domain.PayrollRecord{}, err
	}
	if record == nil {
		return domain.PayrollRecord{}, domain.ErrNotFound
	}
	return *record, nil
}

func (s *Service) Payslip(ctx context.Context, id string) ([]byte, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.pdf.RenderPayslip(ctx, pdf.PayslipData{
		PayslipNumber: record.PayslipNumber,
		EmployeeName:  record.EmployeeName,
		EmployeeCode:  record.EmployeeCode,
		Period:        record.Period,
		ProcessedAt:   record.ProcessedAt,
		WorkingDays:   record.WorkingDays,
		LeaveDays:     record.LeaveDays,
		Earnings: []pdf.Line{
			{Label: "Basic salary", Amount: record.BaseSalary},
			{Label: "Housing allowance", Amount: record.HousingAllowance},
			{Label: "Dearness allowance", Amount: record.DearnessAllowance},
			{Label: "Other allowances", Amount: record.OtherAllowances},
		},
		Deductions: []pdf.Line{
			{Label: "Provident fund", Amount: record.ProvidentFund},
			{Label: "State insurance", Amount: record.StateInsurance},
			{Label: "Income tax withholding", Amount: record.IncomeTaxWithholding},
			{Label: "Other deductions", Amount: record.OtherDeductions},
		},
		GrossSalary:     record.GrossSalary,
		TotalDeductions: record.TotalDeductions,
		NetSalary:       record.NetSalary,
	})
}


// fitsStoredScale reports whether every component survives storage unrounded,
// which keeps net + total deductions equal to gross after a round trip.
func fitsStoredScale(r domain.Record) bool {
	for _, v := range []decimal.Decimal{
		r.BaseSalary,
		r.Allowances.Housing,
		r.Allowances.Dearness,
		r.Allowances.Other,
		r.GrossSalary,
		r.Deductions.ProvidentFund,
		r.Deductions.StateInsurance,
		r.Deductions.IncomeTaxWithholding,
		r.Deductions.Other,
		r.TotalDeductions,
		r.NetSalary,
	} {
		if !v.Equal(v.Truncate(domain.StoredScale)) {
			return false
		}
	}
	return true
}
