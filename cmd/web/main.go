package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/humor-web/internal/catalog"
	"finitefield.org/humor-web/internal/config"
	mw "finitefield.org/humor-web/internal/middleware"
	"finitefield.org/humor-web/public"
	"finitefield.org/humor-web/templates"
)

var (
	templatesDir = "templates"
	// devMode reparses templates from templatesDir on every request.
	devMode   bool
	tmplCache *template.Template

	appConfig    config.Config
	humorCatalog *catalog.Catalog
	logger       = zap.NewNop()

	addr string
)

var rootCmd = &cobra.Command{
	Use:   "humor-web",
	Short: "Encyclopedia of humor types (web)",
	Long: `humor-web serves a single catalog page of humor categories.

Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		appConfig = cfg
		if !cmd.Flags().Changed("dev") {
			devMode = cfg.Dev
		}
		if !cmd.Flags().Changed("templates") {
			templatesDir = cfg.TemplatesDir
		}
		if !cmd.Flags().Changed("addr") {
			addr = cfg.Addr()
		}

		l, err := loggerConfig(cfg, devMode).Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&addr, "addr", ":8080", "HTTP listen address")
	rootCmd.PersistentFlags().StringVar(&templatesDir, "templates", templatesDir, "templates directory (dev mode)")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "reparse templates from disk on each request")
	rootCmd.AddCommand(serveCmd, catalogCmd)
}

// loggerConfig picks development logging for local dev runs. The prod
// environment always logs JSON, even with --dev.
func loggerConfig(cfg config.Config, dev bool) zap.Config {
	if dev && !cfg.IsProd() {
		return zap.NewDevelopmentConfig()
	}
	zcfg := zap.NewProductionConfig()
	zcfg.InitialFields = map[string]any{"env": cfg.Env}
	return zcfg
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	humorCatalog = cat

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			return fmt.Errorf("parse templates: %w", err)
		}
		tmplCache = tc
	}

	handler, err := newRouter()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening", zap.String("addr", addr), zap.Bool("devMode", devMode), zap.Int("categories", cat.Len()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("web stopped")
	return nil
}

// newRouter wires middleware and routes. humorCatalog must be set.
func newRouter() (http.Handler, error) {
	assetsFS, err := public.AssetsFS()
	if err != nil {
		return nil, fmt.Errorf("embed assets: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(middleware.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Logger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(assetsFS)))

	r.Get("/", CatalogHandler)
	r.Get("/humor/{id}", CategoryHandler)
	r.Get("/api/catalog", CatalogAPIHandler)

	r.Route("/fragments/catalog", func(r chi.Router) {
		r.Use(mw.RequireHTMX)
		r.Get("/{id}/activate", CatalogActivateFrag)
		r.Get("/dismiss", CatalogDismissFrag)
	})
	return r, nil
}

func templateFS() fs.FS {
	if devMode {
		return os.DirFS(templatesDir)
	}
	return templates.FS
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now":    time.Now,
		"jsonld": func(s string) template.JS { return template.JS(s) },
	}
	fsys := templateFS()
	var files []string
	if err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFS(fsys, files...)
}

// renderTemplate executes a named template. In dev mode, templates are reparsed on each request.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	var t *template.Template
	if devMode {
		tc, err := parseTemplates()
		if err != nil {
			mw.WriteError(w, r, http.StatusInternalServerError, fmt.Sprintf("template parse error: %v", err))
			return
		}
		t = tc
	} else {
		t = tmplCache
	}
	if t == nil {
		mw.WriteError(w, r, http.StatusInternalServerError, "template not initialized")
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		rid, _ := mw.RequestID(r.Context())
		logger.Error("template exec", zap.String("template", name), zap.String("request_id", rid), zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "template exec error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
