package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"nexadev.com/landing-web/internal/config"
	"nexadev.com/landing-web/internal/contact"
	"nexadev.com/landing-web/internal/content"
	"nexadev.com/landing-web/internal/emailjs"
	handlersPkg "nexadev.com/landing-web/internal/handlers"
	"nexadev.com/landing-web/internal/i18n"
	mw "nexadev.com/landing-web/internal/middleware"
	"nexadev.com/landing-web/internal/observability"
	"nexadev.com/landing-web/locales"
)

// contentTTL is how long the site file is cached outside dev mode.
const contentTTL = 5 * time.Minute

var (
	templatesDir = "templates"
	publicDir    = "public"
	// devMode reparses templates and re-reads the site file on every request.
	devMode   bool
	tmplCache *template.Template

	logger      = zap.NewNop()
	i18nBundle  *i18n.Bundle
	siteSource  *content.Source
	contactDesk *contact.Desk
	analytics   handlersPkg.Analytics
	siteURL     string
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var (
		addr        string
		tmplPath    string
		pubPath     string
		localesPath string
		contentPath string
	)
	flag.StringVar(&addr, "addr", cfg.Server.Addr(), "HTTP listen address")
	flag.StringVar(&tmplPath, "templates", cfg.Paths.Templates, "templates directory")
	flag.StringVar(&pubPath, "public", cfg.Paths.Public, "public assets directory")
	flag.StringVar(&localesPath, "locales", cfg.Paths.Locales, "translation tables directory (empty: embedded)")
	flag.StringVar(&contentPath, "content", cfg.Paths.Content, "site content file")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	lg, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()
	logger = lg

	templatesDir = tmplPath
	publicDir = pubPath
	devMode = cfg.Server.Dev
	analytics = handlersPkg.AnalyticsFromConfig(cfg.Analytics)
	siteURL = cfg.Site.URL

	if !mw.ConfigureSessions(cfg.Server.SessionSigningKey, cfg.Server.Prod()) {
		logger.Warn("session signing key not set; sessions reset on restart")
	}

	i18nBundle, err = loadBundle(localesPath)
	if err != nil {
		logger.Fatal("load translations", zap.Error(err))
	}
	for loc, keys := range i18nBundle.Missing() {
		logger.Warn("translation keys missing", zap.String("locale", loc.String()), zap.Strings("keys", keys))
	}

	ttl := contentTTL
	if devMode {
		ttl = 0
	}
	siteSource = content.NewSource(contentPath, ttl)
	if _, err := siteSource.Site(); err != nil {
		logger.Fatal("load site content", zap.String("path", siteSource.Path()), zap.Error(err))
	}

	mailer := emailjs.NewClient(emailjs.Config{
		BaseURL:    cfg.EmailJS.BaseURL,
		ServiceID:  cfg.EmailJS.ServiceID,
		TemplateID: cfg.EmailJS.TemplateID,
		PublicKey:  cfg.EmailJS.PublicKey,
		PrivateKey: cfg.EmailJS.PrivateKey,
		Timeout:    cfg.EmailJS.Timeout,
	}, logger.Named("emailjs"))
	if !mailer.Configured() {
		logger.Warn("emailjs not configured; contact submissions are logged only")
	}
	contactDesk = newDesk(mailer, cfg.Contact.DeskTTL)

	if !devMode {
		tc, err := parseTemplates()
		if err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
		tmplCache = tc
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", addr), zap.Bool("dev", devMode))
	go func() {
		serverLogger.Info("nexadev web listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newRouter wires the middleware stack and routes. The package globals must
// be initialised first.
func newRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
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

	assets := http.StripPrefix("/assets", mw.Assets(os.DirFS(filepath.Join(publicDir, "assets"))))
	r.Handle("/assets/*", assets)

	r.Group(func(r chi.Router) {
		r.Use(mw.Session)
		r.Use(mw.Locale(i18nBundle))
		r.Use(mw.Theme)
		r.Use(mw.CSRF)
		r.Get("/", HomeHandler)
		r.Get("/contact", ContactFormHandler)
		r.Post("/contact", ContactHandler)
	})
	return r
}

func loadBundle(dir string) (*i18n.Bundle, error) {
	var fsys fs.FS = locales.FS
	if strings.TrimSpace(dir) != "" {
		fsys = os.DirFS(dir)
	}
	return i18n.Load(fsys, i18n.Locales...)
}

func newDesk(d contact.Delivery, ttl time.Duration) *contact.Desk {
	l := logger.Named("contact")
	return contact.NewDesk(func() *contact.Form {
		return contact.NewForm(d, contact.WithLogger(l))
	}, ttl)
}

func parseTemplates() (*template.Template, error) {
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
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
	return template.New("_root").ParseFiles(files...)
}

// render executes the named template with status. In dev mode, templates are
// reparsed on each request. Output is buffered so a failing template still
// yields a clean 500.
func render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	t := tmplCache
	if devMode {
		tc, err := parseTemplates()
		if err != nil {
			serverError(w, r, "template parse error", err)
			return
		}
		t = tc
	}
	if t == nil {
		serverError(w, r, "template not initialized", nil)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		serverError(w, r, "template exec error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	observability.FromContext(r.Context()).Error(msg, zap.Error(err))
	http.Error(w, msg, http.StatusInternalServerError)
}
