package http

import (
	"fmt"
	"net/http"
	"net/url"

	"drivelog/internal/core"
	ilog "drivelog/internal/log"
)

type registerView struct {
	Form  core.RecordInput
	Saved string
}

// WorkedChecked drives the checkbox; unreadable values render unchecked.
func (v registerView) WorkedChecked() bool {
	ok, _ := core.ParseBool(v.Form.Worked)
	return ok
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	v := registerView{Form: core.RecordInput{
		Date:   today(s.now()).String(),
		Worked: "true",
	}}
	if saved := r.URL.Query().Get("saved"); saved != "" {
		if _, err := core.ParseDate(saved); err == nil {
			if r.URL.Query().Get("off") == "1" {
				v.Saved = "Day off on " + saved + " recorded."
			} else {
				v.Saved = "Day " + saved + " saved."
			}
		}
	}
	s.render(w, r, http.StatusOK, "register.html", page{Title: "Register day", Active: "register", Body: v})
}

// handleRegister appends one day. Form posts are redirected back to the form;
// JSON posts get the stored record back.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		if p.IsJSON() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed body"})
			return
		}
		s.fail(w, r, http.StatusBadRequest, ilog.OpParse, "malformed body", nil)
		return
	}
	in := recordInput(p)

	var rec core.DailyRecord
	var err error
	if p.Has("worked") {
		rec, err = in.Record(today(s.now()))
	} else {
		err = fmt.Errorf("worked: %w", core.ErrMissingField)
	}
	if err == nil {
		rec, err = s.journal.RegisterDay(r.Context(), rec)
	}
	if err != nil {
		status := statusFor(err)
		if p.IsJSON() {
			if status >= 500 {
				ilog.NewStructuredLogger(ilog.FromContext(r.Context())).
					LogError(r.Context(), "Register day failed", err, ilog.ComponentHTTP, ilog.OpRegister, nil)
			}
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}
		if status >= 500 {
			s.fail(w, r, status, ilog.OpRegister, "could not save the day", err)
			return
		}
		s.render(w, r, status, "register.html", page{
			Title:  "Register day",
			Active: "register",
			Error:  err.Error(),
			Body:   registerView{Form: in},
		})
		return
	}

	ilog.NewStructuredLogger(ilog.FromContext(r.Context())).
		LogRecordRegistered(r.Context(), rec.Date.String(), rec.Worked, rec.NetProfit().Cents)

	if p.IsJSON() {
		writeJSON(w, http.StatusCreated, map[string]any{
			"date":      rec.Date.String(),
			"worked":    rec.Worked,
			"revenue":   s.reporter.Currency(rec.Revenue),
			"expenses":  s.reporter.Currency(rec.TotalExpenses()),
			"netProfit": s.reporter.Currency(rec.NetProfit()),
		})
		return
	}

	q := url.Values{"saved": {rec.Date.String()}}
	if !rec.Worked {
		q.Set("off", "1")
	}
	http.Redirect(w, r, "/register?"+q.Encode(), http.StatusSeeOther)
}
