package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

func (p *PDFProvider) RenderPayslip(ctx context.Context, data PayslipData) ([]byte, error) {
	if data.PayslipNumber == "" {
		return nil, fmt.Errorf("payslip number is required")
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Payslip", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(24,
		col.New(6).Add(
			text.New("Payslip number: "+data.PayslipNumber, props.Text{Top: 0}),
			text.New("Pay period: "+data.Period, props.Text{Top: 4}),
			text.New("Processed: "+data.ProcessedAt.Format("02 Jan 2006"), props.Text{Top: 8}),
		),
		col.New(6).Add(
			text.New(data.EmployeeName, props.Text{Style: fontstyle.Bold, Align: align.Right}),
			text.New("Employee code: "+data.EmployeeCode, props.Text{Top: 4, Align: align.Right}),
			text.New(fmt.Sprintf("Working days: %d  Leave days: %d", data.WorkingDays, data.LeaveDays), props.Text{Top: 8, Align: align.Right}),
		),
	)

	p.addSection(m, "Earnings", data.Earnings, "Gross salary", data.GrossSalary)
	p.addSection(m, "Deductions", data.Deductions, "Total deductions", data.TotalDeductions)

	m.AddRow(12,
		col.New(6),
		text.NewCol(3, "Net salary", props.Text{Style: fontstyle.Bold, Size: 11, Top: 3}),
		text.NewCol(3, p.money(data.NetSalary), props.Text{Style: fontstyle.Bold, Size: 11, Top: 3, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func (p *PDFProvider) addSection(m core.Maroto, title string, lines []Line, totalLabel string, total decimal.Decimal) {
	m.AddRow(10,
		text.NewCol(12, title, props.Text{Style: fontstyle.Bold, Size: 10, Top: 3}),
	)
	m.AddRow(1, line.NewCol(12))

	for _, l := range lines {
		m.AddRow(7,
			text.NewCol(8, l.Label, props.Text{Size: 9}),
			text.NewCol(4, p.money(l.Amount), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(8,
		col.New(6),
		text.NewCol(3, totalLabel, props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(3, p.money(total), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
}
