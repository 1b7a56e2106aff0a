// Package web serves the portfolio over HTTP. Each visitor drives their own
// command console through a small JSON API and HTMX partials.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/spotlight/internal/config"
	"github.com/Zachkp/spotlight/internal/console"
	"github.com/Zachkp/spotlight/internal/logging"
	"github.com/Zachkp/spotlight/internal/panels"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	sweepInterval     = time.Minute
	retentionInterval = 24 * time.Hour
)

// Server is the portfolio web server.
type Server struct {
	cfg      config.Config
	engine   *gin.Engine
	catalog  *console.Catalog
	panels   *panels.Registry
	sessions *sessionStore
	tracker  *tracker
	admin    *admin
	db       Analytics
}

// New builds the server and registers every route. db may be nil, in which
// case analytics and the admin statistics are disabled.
func New(cfg config.Config, catalog *console.Catalog, registry *panels.Registry, db Analytics) (*Server, error) {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	s := &Server{
		cfg:     cfg,
		catalog: catalog,
		panels:  registry,
		tracker: newTracker(db, cfg.Analytics.Buffer),
		db:      db,
	}
	s.sessions = newSessionStore(cfg.Console.SessionTTL, s.newConsole)
	s.admin = newAdmin(cfg.Admin, cfg.Analytics.Retention, db, s.tracker)

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), s.tracker.trackVisitors())
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(static))

	r.GET("/", s.handleIndex)
	r.GET("/healthz", s.handleHealth)
	r.GET("/panels/:view", s.handlePanel)
	r.GET("/stage", s.handleStage)

	api := r.Group("/console")
	api.GET("", s.handleSnapshot)
	api.POST("/key", s.handleKey)
	api.POST("/query", s.handleQuery)
	api.POST("/focus", s.handleFocus)
	api.POST("/activate/:id", s.handleActivate)
	api.POST("/close", s.handleClose)

	s.admin.routes(r)

	s.engine = r
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) newConsole(id string) *console.Console {
	return console.New(s.catalog,
		console.WithInitialFocus(s.cfg.Console.InitialFocus),
		console.WithTransitionHook(func(t console.Transition) {
			observeTransition(t)
			s.tracker.viewChanged(id, t)
		}),
	)
}

// Run serves on the configured port until ctx is cancelled, then shuts down
// gracefully and waits for the background workers.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Server.Port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.tracker.run(ctx) })
	g.Go(func() error {
		s.sessions.run(ctx, sweepInterval)
		return nil
	})
	g.Go(func() error {
		s.retention(ctx)
		return nil
	})
	g.Go(func() error {
		logging.L().Infow("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// retention removes analytics older than the configured window, once at
// startup and then daily.
func (s *Server) retention(ctx context.Context) {
	if s.db == nil || s.admin.retention <= 0 {
		return
	}
	ticker := time.NewTicker(retentionInterval)
	defer ticker.Stop()
	for {
		s.admin.cleanup(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.db != nil {
		if err := s.db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
