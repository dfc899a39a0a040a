package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/op/go-logging"

	"distviz/domain/distribution"
	"distviz/internal/engine"
	"distviz/internal/view"
	"distviz/ports"
	sessionmw "distviz/ui/middleware"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App serves the explorer page, its HTMX fragments, the chart frames and the JSON API
type App struct {
	router      *chi.Mux
	templates   *template.Template
	catalog     ports.Catalog
	engine      *engine.Engine
	coordinator *view.Coordinator
	sessions    *view.Store
	config      Config
	log         *logging.Logger
}

// Config holds UI application configuration
type Config struct {
	// SourceURL is linked from the page footer when set
	SourceURL string
}

// NewApp creates a new UI application
func NewApp(config Config, catalog ports.Catalog, eng *engine.Engine, sessions *view.Store, log *logging.Logger) (*App, error) {
	if log == nil {
		log = logging.MustGetLogger("UI")
	}

	funcMap := template.FuncMap{
		"num": distribution.FormatNumber,
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:      chi.NewRouter(),
		templates:   templates,
		catalog:     catalog,
		engine:      eng,
		coordinator: view.NewCoordinator(catalog, eng, log),
		sessions:    sessions,
		config:      config,
		log:         log,
	}

	if err := app.setupMiddleware(); err != nil {
		return nil, err
	}
	app.setupRoutes()

	return app, nil
}

// Handler exposes the router for http.Server and tests
func (a *App) Handler() http.Handler {
	return a.router
}

// setupMiddleware configures HTTP middleware and the embedded static files
func (a *App) setupMiddleware() error {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to open static files: %w", err)
	}
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	return nil
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)

	// Session-bound pages and fragments
	a.router.Group(func(r chi.Router) {
		r.Use(sessionmw.EnsureSession(a.sessions, a.log))

		r.Get("/", a.handleIndex)
		r.Post("/select", a.handleSelect)
		r.Post("/param", a.handleParam)
		r.Post("/resample", a.handleResample)
		r.Get("/charts/{kind}", a.handleChart)
		r.Get("/export.xlsx", a.handleExport)
	})

	// Stateless JSON API
	a.router.Route("/api/distributions", func(r chi.Router) {
		r.Get("/", a.handleListDistributions)
		r.Get("/{class}/{name}", a.handleDescribeDistribution)
		r.Post("/{class}/{name}/sample", a.handleSampleDistribution)
	})
}
