package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/csrf"
	"github.com/rahul4469/phisher-ai/internal/analyzer"
	"github.com/rahul4469/phisher-ai/internal/config"
	"github.com/rahul4469/phisher-ai/internal/controllers"
	"github.com/rahul4469/phisher-ai/internal/logging"
	"github.com/rahul4469/phisher-ai/internal/middleware"
	"github.com/rahul4469/phisher-ai/internal/services"
	"github.com/rahul4469/phisher-ai/internal/views"
	"github.com/rahul4469/phisher-ai/static"
	"github.com/rahul4469/phisher-ai/templates"
	"go.uber.org/zap"
)

func main() {
	cfg := config.MustLoad()

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("config loaded",
		zap.String("env", cfg.Server.Environment),
		zap.String("addr", cfg.Server.Address),
		zap.String("base_url", cfg.Server.BaseURL),
		zap.String("scoring_url", cfg.Scoring.URL),
	)

	handler, err := newRouter(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newRouter wires services, controllers and middleware.
func newRouter(cfg *config.Config, logger *zap.Logger) (http.Handler, error) {
	// Setup Templates ---------------
	views.TemplateFS = templates.FS
	pageTpl, err := views.ParseFS("pages/home.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	// Setup Services ---------------
	scoringService := services.NewScoringService(cfg.Scoring.URL, cfg.Scoring.Timeout, logger)
	proxyClient := analyzer.NewClient(cfg.Server.BaseURL, nil)

	// Setup Controllers ---------------
	analyzeCtrl := controllers.NewAnalyzeController(proxyClient, controllers.AnalyzeTemplates{
		Page: pageTpl,
	})
	proxyCtrl := controllers.NewProxyController(scoringService)

	// CSRF middleware
	csrfMw := csrf.Protect(
		[]byte(cfg.Security.CSRFSecret),
		csrf.Secure(cfg.Security.SecureCookies),
		csrf.Path("/"),
		csrf.TrustedOrigins(cfg.Security.CSRFTrustedOrigins),
	)

	// Setup router and routes
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))

	r.Get("/healthz", controllers.HealthCheck)
	r.Handle("/static/*", http.StripPrefix("/static/", controllers.StaticHandler(static.FS)))

	// ---- Pages ----
	r.Group(func(r chi.Router) {
		r.Use(chimw.Recoverer)
		if !cfg.Security.SecureCookies {
			r.Use(plaintextHTTP)
		}
		r.Use(csrfMw)

		r.Get("/", analyzeCtrl.GetAnalyze)
		r.Post("/analyze", analyzeCtrl.PostAnalyze)
	})

	// ---- JSON API ----
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.Security.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Use(middleware.RecoverJSON)

		r.Post("/analyze", proxyCtrl.PostAnalyze)
	})

	return r, nil
}

// plaintextHTTP lets the CSRF origin checks accept plain HTTP during local
// development.
func plaintextHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
