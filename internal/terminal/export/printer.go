// Package export prints journal views as plain-text tables.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"drivelog/internal/report"
)

type TableConfig struct {
	LabelWidth int
	ValueWidth int
	BarWidth   int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		LabelWidth: 24,
		ValueWidth: 16,
		BarWidth:   30,
	}
}

// Section is a titled group of metrics.
type Section struct {
	Title   string
	Metrics []report.Metric
}

// Summary is a complete view: metric sections plus optional charts. Empty,
// when set, replaces everything else with a no data message.
type Summary struct {
	Title    string
	Empty    string
	Options  []string
	Sections []Section
	Bars     *report.BarChart
	Pie      *report.PieChart
}

// HistoryRow is one line of the history listing.
type HistoryRow struct {
	Date     string
	Worked   string
	Revenue  string
	Expenses string
	Net      string
	Km       string
	Hours    string
	Notes    string
}

type Printer struct {
	writer io.Writer
	config TableConfig
	tmpl   *template.Template
}

func NewPrinter(writer io.Writer) *Printer {
	if writer == nil {
		writer = os.Stdout
	}
	p := &Printer{writer: writer, config: DefaultTableConfig()}
	p.tmpl = template.Must(template.New("summary").Funcs(p.funcs()).Parse(summaryTmpl))
	template.Must(p.tmpl.New("history").Parse(historyTmpl))
	return p
}

func (p *Printer) funcs() template.FuncMap {
	c := p.config
	return template.FuncMap{
		"formatRow": func(label, value string) string {
			return fmt.Sprintf("| %-*s | %*s |", c.LabelWidth, label, c.ValueWidth, value)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+", strings.Repeat("-", c.LabelWidth+2), strings.Repeat("-", c.ValueWidth+2))
		},
		"bar": func(width float64, negative bool) string {
			n := int(width / 100 * float64(c.BarWidth))
			if width > 0 && n == 0 {
				n = 1
			}
			ch := "#"
			if negative {
				ch = "-"
			}
			return fmt.Sprintf("%-*s", c.BarWidth, strings.Repeat(ch, n))
		},
		"historyRow":    historyLine,
		"historyHeader": historyHeader,
		"join":          strings.Join,
	}
}

const summaryTmpl = `{{.Title}}
{{if .Options}}Available: {{join .Options ", "}}
{{end}}{{if .Empty}}
{{.Empty}}
{{else}}{{range .Sections}}
=== {{.Title}} ===
{{separator}}
{{range .Metrics}}{{formatRow .Label .Value}}
{{end}}{{separator}}
{{end}}{{with .Bars}}
=== Net profit by month ===
{{if .Bars}}{{range .Bars}}{{.Label}}  {{bar .Width .Negative}}  {{.Value}}
{{end}}{{else}}no data
{{end}}{{end}}{{with .Pie}}
=== Expenses by category ===
{{range .Slices}}{{formatRow .Label .Amount}} {{if $.Pie.Degenerate}}-{{else}}{{.PercentLabel}}{{end}}
{{end}}{{formatRow "Total" .Total}}
{{end}}{{end}}`

const historyTmpl = `{{if .}}{{historyHeader}}
{{range .}}{{historyRow .}}
{{end}}{{else}}No records yet: no data.
{{end}}`

func historyLine(r HistoryRow) string {
	return strings.TrimRight(fmt.Sprintf("%-10s  %-6s  %14s  %14s  %14s  %8s  %6s  %s",
		r.Date, r.Worked, r.Revenue, r.Expenses, r.Net, r.Km, r.Hours, r.Notes), " ")
}

func historyHeader() string {
	return historyLine(HistoryRow{"Date", "Worked", "Revenue", "Expenses", "Net", "Km", "Hours", "Notes"})
}

// Summary writes a summary view.
func (p *Printer) Summary(s Summary) error {
	if err := p.tmpl.ExecuteTemplate(p.writer, "summary", s); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	return nil
}

// History writes records one per line under a header.
func (p *Printer) History(rows []HistoryRow) error {
	if err := p.tmpl.ExecuteTemplate(p.writer, "history", rows); err != nil {
		return fmt.Errorf("render history: %w", err)
	}
	return nil
}

// Line writes a single message.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.writer, format+"\n", args...)
}
