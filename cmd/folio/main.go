// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/folio-admin/internal/apiclient"
	"github.com/olegiv/folio-admin/internal/config"
	"github.com/olegiv/folio-admin/internal/entity"
	"github.com/olegiv/folio-admin/internal/handler"
	"github.com/olegiv/folio-admin/internal/logging"
	"github.com/olegiv/folio-admin/internal/middleware"
	"github.com/olegiv/folio-admin/internal/render"
	"github.com/olegiv/folio-admin/internal/session"
	"github.com/olegiv/folio-admin/internal/store"
	"github.com/olegiv/folio-admin/internal/validation"
	"github.com/olegiv/folio-admin/internal/version"
	"github.com/olegiv/folio-admin/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// formHandlers are the routes of a collection with create and edit forms.
type formHandlers struct {
	List     http.HandlerFunc
	NewForm  http.HandlerFunc
	Create   http.HandlerFunc
	EditForm http.HandlerFunc
	Update   http.HandlerFunc
}

// registerForms registers: GET base, GET/POST base/new, GET/POST base/{id}/edit.
func registerForms(r chi.Router, base string, h formHandlers) {
	r.Get(base, h.List)
	r.Get(base+handler.RouteSuffixNew, h.NewForm)
	r.Post(base+handler.RouteSuffixNew, h.Create)
	r.Get(base+handler.RouteSuffixEdit, h.EditForm)
	r.Post(base+handler.RouteSuffixEdit, h.Update)
}

// registerCategories registers a list page with its inline add form.
func registerCategories(r chi.Router, h *handler.CategoriesHandler, base string) {
	r.Get(base, h.List)
	r.Post(base, h.Create)
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "folio-admin - admin dashboard for blogs and portfolios\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SESSION_SECRET    Session and CSRF key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_API_BASE_URL      Content backend base URL\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_IMAGE_BASE_URL    Origin serving uploaded images\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_API_TIMEOUT       Backend timeout in seconds (default: 0, none)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_DB_PATH           SQLite session database (default: ./data/folio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SERVER_HOST       Listen host (default: localhost)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SERVER_PORT       Listen port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ENV               development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_LOG_LEVEL         debug|info|warn|error (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_MAX_UPLOAD_MB     Form upload limit (default: 32)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing session database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	sessionManager := session.New(db, cfg.IsDevelopment())

	backend := apiclient.New(cfg.APIBaseURL,
		apiclient.WithTimeout(cfg.BackendTimeout()),
		apiclient.WithLogger(logger),
	)
	stores := entity.NewStores(backend, logger)
	slog.Info("backend client initialized", "base_url", backend.BaseURL(), "timeout", cfg.BackendTimeout())

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		ImageBaseURL:   cfg.ImageBaseURL,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	validator := validation.New()
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	maxUpload := cfg.MaxUploadBytes()

	authHandler := handler.NewAuthHandler(backend, renderer, sessionManager, validator, loginProtection)
	dashboardHandler := handler.NewDashboardHandler(renderer, stores)
	blogsHandler := handler.NewBlogsHandler(renderer, stores, validator, maxUpload)
	portfoliosHandler := handler.NewPortfoliosHandler(renderer, stores, validator, maxUpload)
	projectsHandler := handler.NewProjectsHandler(renderer, stores, validator, maxUpload)
	blogCategoriesHandler := handler.NewCategoriesHandler(handler.BlogCategoriesKind, stores.BlogCategories, renderer, validator, maxUpload)
	portfolioCategoriesHandler := handler.NewCategoriesHandler(handler.PortfolioCategoriesKind, stores.PortfolioCategories, renderer, validator, maxUpload)
	technologiesHandler := handler.NewCategoriesHandler(handler.TechnologiesKind, stores.Technologies, renderer, validator, maxUpload)
	profileHandler := handler.NewProfileHandler(renderer)
	healthHandler := handler.NewHealthHandler(db, stores, info)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestPath)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment(), cfg.ImageBaseURL)))

	// Static assets: cache for 1 year
	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle(handler.RouteStatic, middleware.StaticCache(365*24*time.Hour)(
		http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))))

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerPort))

	r.Group(func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)
		r.Use(middleware.LoadAuth(session.NewKeyStore(sessionManager)))

		// Probes: details only for signed-in callers
		r.Get(handler.RouteHealth, healthHandler.Health)
		r.Get(handler.RouteHealth+handler.RouteSuffixLive, healthHandler.Liveness)
		r.Get(handler.RouteHealth+handler.RouteSuffixReady, healthHandler.Readiness)

		r.Group(func(r chi.Router) {
			r.Use(csrfMiddleware)
			r.Use(middleware.NoStore)

			// Login is only for signed-out visitors
			r.Group(func(r chi.Router) {
				r.Use(middleware.RedirectIfAuth)
				r.Get(handler.RouteLogin, authHandler.LoginForm)
				r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)

				r.Post(handler.RouteLogout, authHandler.Logout)
				r.Get(handler.RouteRoot, dashboardHandler.Dashboard)
				r.Get(handler.RouteProfile, profileHandler.Profile)

				registerForms(r, handler.RouteBlogs, formHandlers{
					List: blogsHandler.List, NewForm: blogsHandler.NewForm, Create: blogsHandler.Create,
					EditForm: blogsHandler.EditForm, Update: blogsHandler.Update,
				})
				registerForms(r, handler.RoutePortfolios, formHandlers{
					List: portfoliosHandler.List, NewForm: portfoliosHandler.NewForm, Create: portfoliosHandler.Create,
					EditForm: portfoliosHandler.EditForm, Update: portfoliosHandler.Update,
				})
				registerForms(r, handler.RouteProjects, formHandlers{
					List: projectsHandler.List, NewForm: projectsHandler.NewForm, Create: projectsHandler.Create,
					EditForm: projectsHandler.EditForm, Update: projectsHandler.Update,
				})

				registerCategories(r, blogCategoriesHandler, handler.RouteBlogCategories)
				registerCategories(r, portfolioCategoriesHandler, handler.RoutePortfolioCategories)
				registerCategories(r, technologiesHandler, handler.RouteTechnologyCategories)
			})
		})
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      120 * time.Second, // Uploads are relayed to the backend within the request
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.Label())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
