// Package http serves the journal's five flows as server-rendered pages.
package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"drivelog/internal/cache"
	ilog "drivelog/internal/log"
	"drivelog/internal/middleware/ratelimit"
	"drivelog/internal/middleware/security"
	"drivelog/internal/middleware/trace"
	"drivelog/internal/report"
	"drivelog/internal/services"
	appweb "drivelog/web"
)

// pages are rendered inside templates/layout.html.
var pages = []string{"register.html", "history.html", "month.html", "year.html", "compare.html", "error.html"}

type Server struct {
	http.Server
	templates map[string]*template.Template
	journal   *services.Journal
	reporter  *report.Reporter
	logger    *ilog.Logger

	trace   *trace.Middleware
	limiter *ratelimit.Limiter
	caches  *cache.Manager

	limit        ratelimit.Config
	cacheCleanup time.Duration
	now          func() time.Time
	started      time.Time
	shutdownOnce sync.Once
}

type Option func(*Server)

func WithLogger(l *ilog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithClock replaces time.Now; the register form defaults its date from it.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithWriteLimit caps POST requests per client.
func WithWriteLimit(cfg ratelimit.Config) Option {
	return func(s *Server) { s.limit = cfg }
}

// WithCacheCleanup sets how often expired summaries are evicted.
func WithCacheCleanup(every time.Duration) Option {
	return func(s *Server) { s.cacheCleanup = every }
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, journal *services.Journal, opts ...Option) (*Server, error) {
	s := &Server{
		journal:      journal,
		reporter:     journal.Reporter(),
		limit:        ratelimit.DefaultConfig(),
		cacheCleanup: 5 * time.Minute,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = ilog.New(ilog.DefaultConfig())
	}
	s.logger = s.logger.WithComponent(ilog.ComponentHTTP)
	s.started = s.now()

	t, err := parseTemplates(appweb.TemplatesFS)
	if err != nil {
		return nil, err
	}
	s.templates = t

	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("mount static assets: %w", err)
	}

	s.caches = cache.NewManager()
	for _, c := range journal.Caches() {
		s.caches.Register(c)
	}
	s.caches.StartCleanup(s.cacheCleanup)

	s.limiter = ratelimit.NewLimiter(s.limit)
	s.trace = trace.NewMiddleware(extractClientIP)

	mux := http.NewServeMux()
	mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(
		http.StripPrefix("/static/", http.FileServer(http.FS(static)))))

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /{$}", s.handleRegisterForm)
	mux.HandleFunc("GET /register", s.handleRegisterForm)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("GET /history", s.handleHistory)
	mux.HandleFunc("GET /summary/month", s.handleMonthlySummary)
	mux.HandleFunc("GET /summary/month/pdf", s.handleMonthlyPDF)
	mux.HandleFunc("GET /summary/year", s.handleAnnualSummary)
	mux.HandleFunc("GET /compare", s.handleCompare)

	var h http.Handler = mux
	h = s.limiter.Middleware(extractClientIP)(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	h = s.trace.Middleware(h)
	h = ilog.Middleware(s.logger)(h)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	return s, nil
}

func parseTemplates(fsys fs.FS) (map[string]*template.Template, error) {
	base, err := template.New("layout.html").ParseFS(fsys, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	out := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout: %w", err)
		}
		if _, err := t.ParseFS(fsys, "templates/"+name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

// Shutdown stops the background cleanups and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.caches.Stop()
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
