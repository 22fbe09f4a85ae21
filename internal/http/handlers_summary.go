package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"drivelog/internal/core"
	ilog "drivelog/internal/log"
	"drivelog/internal/report"
)

type historyRow struct {
	Date      string
	Worked    bool
	Revenue   string
	Expenses  string
	Net       string
	Distance  string
	Hours     string
	Target    string
	TargetMet bool
	Notes     string
}

type historyView struct {
	Rows []historyRow
}

type monthView struct {
	Month      string
	Options    []string
	Totals     []report.Metric
	Indicators []report.Metric
	Efficiency []report.Metric
	Pie        report.PieChart
	PDFURL     string
}

type yearView struct {
	Year       string
	Options    []string
	Totals     []report.Metric
	Indicators []report.Metric
	Pie        report.PieChart
	Bars       report.BarChart
}

type compareView struct {
	Indicators []report.Metric
	Bars       report.BarChart
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.journal.History(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, ilog.OpHistory, "could not load history", err)
		return
	}
	v := historyView{Rows: make([]historyRow, 0, len(records))}
	for _, rec := range records {
		v.Rows = append(v.Rows, s.historyRow(rec))
	}
	s.render(w, r, http.StatusOK, "history.html", page{Title: "History", Active: "history", Body: v})
}

func (s *Server) historyRow(rec core.DailyRecord) historyRow {
	row := historyRow{
		Date:      rec.Date.String(),
		Worked:    rec.Worked,
		Revenue:   s.reporter.Currency(rec.Revenue),
		Expenses:  s.reporter.Currency(rec.TotalExpenses()),
		Net:       s.reporter.Currency(rec.NetProfit()),
		Distance:  strconv.FormatFloat(rec.DistanceKm, 'f', -1, 64),
		Hours:     strconv.FormatFloat(rec.HoursWorked, 'f', -1, 64),
		Target:    s.reporter.Currency(rec.DailyTarget),
		TargetMet: rec.Worked && rec.TargetMet(),
		Notes:     rec.Notes,
	}
	if rec.OtherCostDescription != "" {
		if row.Notes != "" {
			row.Notes += " · "
		}
		row.Notes += "other: " + rec.OtherCostDescription
	}
	return row
}

// handleMonthlySummary shows one month; without ?month= the latest recorded
// month is used. An empty journal renders the no data state.
func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	options, err := s.journal.Months(ctx)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, ilog.OpSummary, "could not load months", err)
		return
	}
	v := monthView{Options: options, Month: pickKey(queryKey(r, "month", ""), options)}
	if v.Month == "" {
		s.render(w, r, http.StatusOK, "month.html", page{Title: "Monthly summary", Active: "month", Body: v})
		return
	}

	sum, err := s.journal.MonthlySummary(ctx, v.Month)
	if err != nil {
		s.fail(w, r, statusFor(err), ilog.OpSummary, "could not build monthly summary", err)
		return
	}
	v.Totals = s.reporter.Totals(sum.Revenue, sum.Expenses, sum.Net)
	v.Indicators = s.reporter.Indicators(sum.Indicators)
	v.Efficiency = s.reporter.Efficiency(sum.Efficiency, sum.DistanceKm, sum.Hours)
	v.Pie = s.reporter.Pie(sum.Breakdown)
	v.PDFURL = "/summary/month/pdf?" + url.Values{"month": {sum.Month}}.Encode()

	s.render(w, r, http.StatusOK, "month.html", page{Title: "Monthly summary " + sum.Month, Active: "month", Body: v})
}

// handleMonthlyPDF streams the four-line report as a download.
func (s *Server) handleMonthlyPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	month := queryKey(r, "month", "")
	if month == "" {
		options, err := s.journal.Months(ctx)
		if err != nil {
			s.fail(w, r, http.StatusInternalServerError, ilog.OpExport, "could not load months", err)
			return
		}
		if month = pickKey("", options); month == "" {
			s.fail(w, r, http.StatusNotFound, ilog.OpExport, "no records to report yet", nil)
			return
		}
	}

	doc, err := s.journal.MonthlyReportPDF(ctx, month)
	if err != nil {
		s.fail(w, r, statusFor(err), ilog.OpExport, "could not build the report", err)
		return
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Content)
}

func (s *Server) handleAnnualSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	options, err := s.journal.Years(ctx)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, ilog.OpSummary, "could not load years", err)
		return
	}
	v := yearView{Options: options, Year: pickKey(queryKey(r, "year", ""), options)}
	if v.Year == "" {
		s.render(w, r, http.StatusOK, "year.html", page{Title: "Annual summary", Active: "year", Body: v})
		return
	}

	sum, err := s.journal.AnnualSummary(ctx, v.Year)
	if err != nil {
		s.fail(w, r, statusFor(err), ilog.OpSummary, "could not build annual summary", err)
		return
	}
	v.Totals = s.reporter.Totals(sum.Revenue, sum.Expenses, sum.Net)
	v.Indicators = s.reporter.Indicators(sum.Indicators)
	v.Pie = s.reporter.Pie(sum.Breakdown)
	v.Bars = s.reporter.Bars(sum.Series)

	s.render(w, r, http.StatusOK, "year.html", page{Title: "Annual summary " + sum.Year, Active: "year", Body: v})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	cmp, err := s.journal.CompareMonths(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, ilog.OpCompare, "could not compare months", err)
		return
	}
	v := compareView{
		Indicators: s.reporter.Indicators(cmp.Indicators),
		Bars:       s.reporter.Bars(cmp.Series),
	}
	s.render(w, r, http.StatusOK, "compare.html", page{Title: "Compare months", Active: "compare", Body: v})
}
