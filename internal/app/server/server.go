package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"staffrecords/internal/domain/attendance"
	"staffrecords/internal/domain/audit"
	"staffrecords/internal/domain/auth"
	"staffrecords/internal/domain/core"
	"staffrecords/internal/domain/leave"
	"staffrecords/internal/domain/performance"
	"staffrecords/internal/domain/reports"
	"staffrecords/internal/platform/config"
	"staffrecords/internal/platform/db"
	"staffrecords/internal/platform/logging"
	"staffrecords/internal/platform/metrics"
	"staffrecords/internal/transport/http/api"
	attendancehandler "staffrecords/internal/transport/http/handlers/attendance"
	audithandler "staffrecords/internal/transport/http/handlers/audit"
	authhandler "staffrecords/internal/transport/http/handlers/auth"
	corehandler "staffrecords/internal/transport/http/handlers/core"
	leavehandler "staffrecords/internal/transport/http/handlers/leave"
	performancehandler "staffrecords/internal/transport/http/handlers/performance"
	reportshandler "staffrecords/internal/transport/http/handlers/reports"
	"staffrecords/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Pinger is the readiness probe's view of the database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// New connects to the database, applies migrations and seed data when
// enabled, and builds the HTTP router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	collector := metrics.New()
	return &App{
		Config:  cfg,
		DB:      pool,
		Router:  NewRouter(cfg, pool, collector),
		Metrics: collector,
	}, nil
}

// NewRouter wires stores, services and handlers over pool.
func NewRouter(cfg config.Config, pool *pgxpool.Pool, collector *metrics.Collector) http.Handler {
	tokens := auth.NewIssuer(signingSecret(cfg), cfg.TokenTTL)
	perms := auth.NewStaticPermissions()
	auditSvc := audit.New(pool)

	coreSvc := core.NewService(core.NewStore(pool), cfg.EmployeeCodePrefix)
	authSvc := auth.NewService(auth.NewStore(pool), tokens)
	leaveSvc := leave.NewService(leave.NewStore(pool))
	attendanceSvc := attendance.NewService(attendance.NewStore(pool))
	performanceSvc := performance.NewService(performance.NewStore(pool))
	reportsSvc := reports.NewService(reports.NewStore(pool))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Authenticate(tokens))
	router.Use(middleware.Logger(collector))
	router.Use(chimw.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, map[string]any{
			"status":  "ok",
			"metrics": collector.Snapshot(),
		}, middleware.GetRequestID(r.Context()))
	})
	router.Get("/readyz", readyHandler(pool))

	router.Route("/api", func(r chi.Router) {
		authhandler.NewHandler(authSvc, auditSvc).RegisterRoutes(r)
		corehandler.NewHandler(coreSvc, perms, auditSvc).RegisterRoutes(r)
		leavehandler.NewHandler(leaveSvc, perms, auditSvc).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceSvc, coreSvc, perms, auditSvc).RegisterRoutes(r)
		performancehandler.NewHandler(performanceSvc, coreSvc, perms, auditSvc).RegisterRoutes(r)
		reportshandler.NewHandler(reportsSvc, perms).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc, perms).RegisterRoutes(r)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			api.Fail(w, http.StatusNotFound, "not_found", "route not found", middleware.GetRequestID(r.Context()))
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			api.Fail(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", middleware.GetRequestID(r.Context()))
		})
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})
	return router
}

func readyHandler(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			slog.Warn("readiness check failed", "err", err)
			api.Fail(w, http.StatusServiceUnavailable, "not_ready", "database not ready", middleware.GetRequestID(r.Context()))
			return
		}
		api.Success(w, map[string]string{"status": "ready"}, middleware.GetRequestID(r.Context()))
	}
}

// signingSecret falls back to a per-process random key outside production;
// tokens then do not survive a restart.
func signingSecret(cfg config.Config) string {
	if cfg.JWTSecret != "" {
		return cfg.JWTSecret
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	slog.Warn("JWT_SECRET not set; using an ephemeral signing key")
	return hex.EncodeToString(buf)
}

// Run loads configuration, serves until SIGINT/SIGTERM and shuts down
// gracefully.
func Run() error {
	cfg := config.Load()
	logging.Setup(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, filepath.Clean("/"+r.URL.Path))
	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if err == nil || os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
