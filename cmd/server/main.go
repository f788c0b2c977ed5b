// cmd/server/main.go
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"propcheck/internal/auth"
	"propcheck/internal/config"
	"propcheck/internal/handlers"
	"propcheck/internal/inspection"
	"propcheck/internal/logging"
	"propcheck/internal/middleware"
	"propcheck/internal/migrations"
	"propcheck/internal/photos"
	"propcheck/internal/repo"
	"propcheck/internal/session"
)

func main() {
	// --- Load config (config.yaml + env overrides) ---
	cfg := config.Load()

	// --- Logger ---
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format == "json")

	// Session cookie policy (dev often needs Secure=false)
	auth.SetCookieSecurity(cfg.Security.Session.CookieSecure)
	auth.SetCookieSameSite(cfg.Security.Session.SameSite)

	// --- Background session sweeper ---
	interval := cfg.Security.Session.SweeperInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go session.DefaultStore.StartSweeper(context.Background(), interval)

	// --- Connect to Postgres ---
	ctx := context.Background()
	slog.Debug("connecting to database")
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		slog.Error("db connect error", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("db ping error", "err", err)
		os.Exit(1)
	}
	slog.Debug("database connection ready")

	// --- Schema migrations ---
	if err := migrations.Up(pool); err != nil {
		slog.Error("migration error", "err", err)
		os.Exit(1)
	}

	r := repo.New(pool)

	// --- Photo storage backend (local disk or S3) ---
	store, err := photos.NewFromConfig(cfg)
	if err != nil {
		slog.Error("photo store error", "err", err)
		os.Exit(1)
	}

	svc := inspection.NewService(r)

	// --- Router ---
	mux := chi.NewRouter()

	// Ensure request ID then log requests with slog
	mux.Use(middleware.RequestID(cfg.Security.RequestID.TrustHeader))
	mux.Use(middleware.EnrichLogger)
	mux.Use(middleware.SlogRequestLogger)
	if cfg.Security.RateLimit.Enabled {
		mux.Use(middleware.RateLimitWith(cfg.Security.RateLimit.RequestsPerMinute, cfg.Security.RateLimit.Burst, cfg.Security.RateLimit.TTL))
	}

	// --- CORS middleware ---
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by browsers
	}))

	// Local auth routes
	mux.Post("/auth/signup", auth.SignupHandler(r))
	mux.Post("/auth/login", auth.LoginHandler(r))
	mux.Post("/auth/logout", auth.LogoutHandler())
	mux.Get("/auth/me", auth.ProfileHandler(r))
	mux.Put("/auth/profile", auth.UpdateProfileHandler(r))

	// Inspection, property, inspector and notification routes
	handlers.RegisterRoutes(mux, r, svc, store)

	// Locally stored photos are served straight off disk
	if cfg.Photos.Backend == "local" {
		mux.Handle(cfg.Photos.BaseURL+"/*",
			http.StripPrefix(cfg.Photos.BaseURL+"/", http.FileServer(http.Dir(cfg.Photos.Dir))))
	}

	// Health root
	mux.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("OK"))
	})

	// --- Start server ---
	addr := cfg.Listen
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}
	slog.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
