package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/georgemunganga/ims-backend/internal/config"
	"github.com/georgemunganga/ims-backend/internal/database"
	"github.com/georgemunganga/ims-backend/internal/httpx"
	"github.com/georgemunganga/ims-backend/internal/logger"
	"github.com/georgemunganga/ims-backend/internal/modules/auth"
	"github.com/georgemunganga/ims-backend/internal/modules/catalog"
	"github.com/georgemunganga/ims-backend/internal/modules/order"
	"github.com/georgemunganga/ims-backend/internal/modules/receiving"
	"github.com/georgemunganga/ims-backend/internal/modules/user"
	"github.com/georgemunganga/ims-backend/internal/modules/vendor"
	"github.com/georgemunganga/ims-backend/internal/modules/vms"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	appLogger := logger.New(cfg.Server, cfg.Logger)
	defer appLogger.Sync()
	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.Open(ctx, cfg.Database)
	cancel()
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to database", zap.String("driver", cfg.Database.Driver), zap.String("name", cfg.Database.Name))

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logger.RequestLogger(appLogger))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.Respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewSQLRepository(db)
	userService := user.NewService(userRepo)
	authService := auth.NewService(userRepo, cfg.JWT)
	authHandler := auth.NewHandler(authService, userService)
	requireAdmin := auth.RequireRole(authService, user.RoleAdmin)

	router.Route("/auth", authHandler.RegisterRoutes)
	router.Route("/users", func(r chi.Router) {
		r.Use(requireAdmin)
		user.NewHandler(userService).RegisterRoutes(r)
	})

	// ── Purchase orders ─────────────────────────────────────
	vmsClient := vms.NewClient(cfg.VMS, appLogger)
	vendorService := vendor.NewService(vendor.NewSQLRepository(db))
	catalogHandler := catalog.NewHandler(catalog.NewService(catalog.NewSQLRepository(db)))
	orderHandler := order.NewHandler(
		order.NewService(order.NewSQLRepository(db), vendorService, vmsClient, appLogger),
		appLogger,
	)

	router.Route("/purchase-order", func(r chi.Router) {
		r.Use(requireAdmin)
		orderHandler.RegisterRoutes(r)
		catalogHandler.RegisterRoutes(r)
		vendor.NewHandler(vendorService).RegisterRoutes(r)
		authHandler.RegisterCurrentUserRoute(r)
	})

	// ── Receiving ───────────────────────────────────────────
	// Called by the VMS and the warehouse frontend; these routes carry no user token.
	receivingHandler := receiving.NewHandler(receiving.NewService(receiving.NewSQLRepository(db), appLogger))
	router.Route("/receive-orders", func(r chi.Router) {
		orderHandler.RegisterStatusRoutes(r)
		receivingHandler.RegisterRoutes(r)
	})

	// ── Start Server ─────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("IMS API server starting", zap.String("port", cfg.Server.Port), zap.String("vms", cfg.VMS.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shut down", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
