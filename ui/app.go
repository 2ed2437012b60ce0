package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"probcalc/app"
	"probcalc/domain/distribution"
	"probcalc/internal"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.html static/*
var embeddedFiles embed.FS

// App represents the form pages of the calculator
type App struct {
	router    *chi.Mux
	service   *app.CalculatorService
	logger    *internal.Logger
	templates *template.Template
	config    Config
}

// Config holds UI application configuration
type Config struct {
	// ShowSteps pre-ticks the "show steps" checkbox
	ShowSteps    bool
	HistoryLimit int
}

// NewApp creates a new UI application
func NewApp(service *app.CalculatorService, logger *internal.Logger, config Config) (*App, error) {
	funcMap := template.FuncMap{
		"fixed": func(v float64, decimals int) string { return distribution.FormatValue(v, decimals) },
		"add":   func(a, b int) int { return a + b },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		service:   service,
		logger:    logger,
		templates: templates,
		config:    config,
	}

	if err := a.setupMiddleware(); err != nil {
		return nil, err
	}
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware and static assets
func (a *App) setupMiddleware() error {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to open static assets: %w", err)
	}
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	return nil
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/"+string(distribution.KindBinomial), http.StatusFound)
	})
	a.router.Get("/history", a.handleHistory)
	a.router.Get("/{kind}", a.handleForm)
	a.router.Post("/{kind}", a.handleCalculate)
}

// ServeHTTP implements http.Handler interface
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *App) renderTemplate(w http.ResponseWriter, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		a.logger.Error("template %s failed: %v", templateName, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
