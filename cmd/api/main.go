package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/georgemunganga/pizza-pos/internal/bootstrap"
	"github.com/georgemunganga/pizza-pos/internal/modules/auth"
	"github.com/georgemunganga/pizza-pos/internal/modules/config"
	"github.com/georgemunganga/pizza-pos/internal/modules/inventory"
	"github.com/georgemunganga/pizza-pos/internal/modules/menu"
	"github.com/georgemunganga/pizza-pos/internal/modules/order"
	"github.com/georgemunganga/pizza-pos/internal/modules/permission"
	"github.com/georgemunganga/pizza-pos/internal/modules/pos"
	"github.com/georgemunganga/pizza-pos/internal/modules/pricing"
	"github.com/georgemunganga/pizza-pos/pkg/env"
)

func main() {
	if !env.LoadDotenv() {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := env.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	zcfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		zcfg.Level = lvl
	}
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer storage.Close()

	// ── Configuration ───────────────────────────────────────
	store := config.NewStore(storage.Blobs, logger)
	if !store.Load(ctx) {
		logger.Info("Starting from default configuration")
	}

	node, err := snowflake.NewNode(cfg.NodeID)
	if err != nil {
		logger.Fatal("Invalid NODE_ID", zap.Int64("node_id", cfg.NodeID), zap.Error(err))
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Config-Version"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// ── Manager auth ────────────────────────────────────────
	authService := auth.NewService(store, []byte(cfg.JWTSecret), logger)
	auth.NewHandler(authService).RegisterRoutes(router)
	guard := func(p permission.Permission) func(http.Handler) http.Handler {
		return auth.RequirePermission(authService, p)
	}

	config.NewHandler(store, guard(permission.SystemSettings), logger).RegisterRoutes(router)

	// ── Menu & Pricing ──────────────────────────────────────
	menuCache := menu.NewCache(store, logger)
	defer menuCache.Close()
	menu.NewHandler(menuCache, store).RegisterRoutes(router)

	engine := pricing.NewEngine(store)

	// ── Orders ──────────────────────────────────────────────
	orderService := order.NewService(storage.OrderRepository(), store, logger)
	order.NewHandler(orderService).RegisterRoutes(router)

	posService := pos.NewService(menuCache, engine, node, orderService, logger)
	pos.NewHandler(posService, guard(permission.POSVoidOrder)).RegisterRoutes(router)

	// ── Inventory ───────────────────────────────────────────
	inventoryService := inventory.NewService(storage.InventoryRepository(), store, logger)
	inventory.NewHandler(inventoryService,
		guard(permission.InventoryView), guard(permission.InventoryModify)).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		logger.Info("Pizza POS API server starting", zap.String("port", cfg.Port), zap.String("store_driver", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
