package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ems/internal/domain/analytics"
	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
	"ems/internal/platform/config"
	"ems/internal/platform/db"
	analyticshandler "ems/internal/transport/http/handlers/analytics"
	authhandler "ems/internal/transport/http/handlers/auth"
	employeeshandler "ems/internal/transport/http/handlers/employees"
	"ems/internal/transport/http/middleware"
)

const version = "1.0.0"

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Router http.Handler
}

// New connects, migrates, seeds, and wires the router. Close releases the
// pool; the caller owns the listening socket.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	app := &App{Config: cfg, DB: pool}
	app.Router = app.buildRouter()
	return app, nil
}

func (a *App) Close() {
	a.DB.Close()
}

func (a *App) buildRouter() http.Handler {
	cfg := a.Config
	pool := a.DB

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recover(!cfg.IsProduction()))
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.Metrics)

	router.Get("/health", a.handleHealth)
	router.Get("/api/health", a.handleHealth)

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Handle("/metrics", promhttp.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		authHandler := authhandler.NewHandler(auth.NewStore(pool), cfg.JWTSecret, cfg.TokenLifetime)
		authHandler.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(cfg.JWTSecret))

			employeesHandler := employeeshandler.NewHandler(employee.NewStore(pool))
			employeesHandler.RegisterRoutes(r)

			analyticsHandler := analyticshandler.NewHandler(analytics.NewStore(pool))
			analyticsHandler.RegisterRoutes(r)
		})
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return router
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w,
		`{"status":"OK","message":"Server is running","environment":%q,"timestamp":%q,"version":%q}`,
		a.Config.Environment, time.Now().UTC().Format(time.RFC3339), version)
}

// Run brings the whole server up and blocks until it exits.
func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("EMS server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// spaHandler serves the built frontend, falling back to index.html for
// client-side routes.
type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
