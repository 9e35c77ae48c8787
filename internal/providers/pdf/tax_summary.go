package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

func (p *PDFProvider) RenderTaxSummary(ctx context.Context, data TaxSummaryData) ([]byte, error) {
	if data.DocumentNumber == "" {
		return nil, fmt.Errorf("document number is required")
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	title := "Tax invoice"
	if data.Kind == "expense" {
		title = "Expense voucher"
	}
	m.AddRow(12,
		text.NewCol(12, title, props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(16,
		col.New(6).Add(
			text.New("Number: "+data.DocumentNumber, props.Text{Top: 0}),
			text.New("Date: "+data.IssuedAt.Format("02 Jan 2006"), props.Text{Top: 4}),
		),
		col.New(6).Add(
			text.New(data.Description, props.Text{Align: align.Right}),
		),
	)

	lines := []Line{{Label: "Taxable value", Amount: data.BaseAmount}}
	if data.InterState.IsZero() {
		half := data.Rate.Div(decimalTwo)
		lines = append(lines,
			Line{Label: fmt.Sprintf("CGST @ %s%%", half.String()), Amount: data.SplitA},
			Line{Label: fmt.Sprintf("SGST @ %s%%", half.String()), Amount: data.SplitB},
		)
	} else {
		lines = append(lines, Line{Label: fmt.Sprintf("IGST @ %s%%", data.Rate.String()), Amount: data.InterState})
	}

	p.addSection(m, "Summary", lines, "Total tax", data.TaxAmount)

	m.AddRow(12,
		col.New(6),
		text.NewCol(3, "Total", props.Text{Style: fontstyle.Bold, Size: 11, Top: 3}),
		text.NewCol(3, p.money(data.TotalAmount), props.Text{Style: fontstyle.Bold, Size: 11, Top: 3, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
