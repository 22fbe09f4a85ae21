package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	ilog "drivelog/internal/log"
)

// page is the data every template receives. Body holds the view of the
// current flow.
type page struct {
	Title  string
	Active string
	Error  string
	Body   any
}

// render executes the page into a buffer first so a template failure still
// produces a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	t, ok := s.templates[name]
	if !ok {
		s.fail(w, r, http.StatusInternalServerError, ilog.OpRender, "template "+name+" not loaded", nil)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		ilog.FromContext(r.Context()).ErrorContext(r.Context(), "Template execution failed",
			ilog.FieldOperation, ilog.OpRender, "template", name, ilog.FieldError, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// fail renders the error page. 5xx errors are logged with their cause.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, op, msg string, err error) {
	if status >= 500 {
		ilog.NewStructuredLogger(ilog.FromContext(r.Context())).
			LogError(r.Context(), msg, err, ilog.ComponentHTTP, op, nil)
	}
	text := msg
	if err != nil {
		text = msg + ": " + err.Error()
	}
	t, ok := s.templates["error.html"]
	if !ok {
		http.Error(w, text, status)
		return
	}
	var buf bytes.Buffer
	if t.ExecuteTemplate(&buf, "layout", page{Title: http.StatusText(status), Error: text}) != nil {
		http.Error(w, text, status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": s.now().Format(time.RFC3339),
		"uptime":    s.now().Sub(s.started).Round(time.Second).String(),
	})
}

// handleReady reports whether the journal can be read.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	status, code := "ready", http.StatusOK
	checks := map[string]any{
		"templates":    len(s.templates),
		"requests":     s.trace.GetMetrics(),
		"rate_limiter": map[string]any{"active_clients": s.limiter.ActiveClients(), "rejected": s.limiter.Rejected()},
	}
	if err := s.journal.Ping(ctx); err != nil {
		checks["store"] = "failed: " + err.Error()
		status, code = "not_ready", http.StatusServiceUnavailable
	} else {
		checks["store"] = "ok"
	}

	writeJSON(w, code, map[string]any{
		"status":    status,
		"timestamp": s.now().Format(time.RFC3339),
		"checks":    checks,
	})
}
