package report

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"drivelog/internal/core"
)

// MonthSummary is the fixed four-line monthly report.
type MonthSummary struct {
	Month    string
	Gross    string
	Expenses string
	Net      string
}

// MonthSummary formats the totals of one month.
func (r *Reporter) MonthSummary(month string, revenue, expenses, net core.Money) MonthSummary {
	return MonthSummary{
		Month:    month,
		Gross:    r.Currency(revenue),
		Expenses: r.Currency(expenses),
		Net:      r.Currency(net),
	}
}

// Lines returns the report body, one line per entry.
func (s MonthSummary) Lines() []string {
	return []string{
		"Monthly summary " + s.Month,
		"Gross revenue: " + s.Gross,
		"Expenses: " + s.Expenses,
		"Net profit: " + s.Net,
	}
}

// FileName is the download name of the generated document.
func (s MonthSummary) FileName() string {
	return fmt.Sprintf("summary_%s.pdf", s.Month)
}

// RenderPDF lays the summary lines out on a single A4 page.
func RenderPDF(s MonthSummary) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	lines := s.Lines()
	m.AddRow(14,
		text.NewCol(12, lines[0], props.Text{
			Size:  16,
			Style: fontstyle.Bold,
		}),
	)
	for _, line := range lines[1:] {
		m.AddRow(10, text.NewCol(12, line, props.Text{Size: 12}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}
