package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/naman03malhotra/vercel-commerce/internal/cache"
	"github.com/naman03malhotra/vercel-commerce/internal/config"
	"github.com/naman03malhotra/vercel-commerce/internal/db"
	"github.com/naman03malhotra/vercel-commerce/internal/fourthwall"
	"github.com/naman03malhotra/vercel-commerce/internal/httpserver"
	sessionrepo "github.com/naman03malhotra/vercel-commerce/internal/repository/session"
	cartsvc "github.com/naman03malhotra/vercel-commerce/internal/service/cart"
	catalogsvc "github.com/naman03malhotra/vercel-commerce/internal/service/catalog"
	sessionsvc "github.com/naman03malhotra/vercel-commerce/internal/service/session"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	// Session persistence is optional; without a reachable database the
	// storefront still serves carts, it just cannot remember which remote
	// cart a session owns across restarts.
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Printf("db unavailable, continuing without session persistence: %v", err)
		dbpool = nil
	} else {
		defer dbpool.Close()
	}

	var productCache *cache.ProductCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Printf("redis unavailable, continuing without catalog cache: %v", err)
		} else {
			productCache = cache.NewProductCache(rdb, cfg.CatalogCacheTTL, logger)
		}
	}

	client := fourthwall.NewClient(cfg.BackendURL, cfg.ServiceToken, cfg.ClientSite, logger)
	catalogService := catalogsvc.New(client, productCache, logger)
	cartService := cartsvc.New(client, logger)

	deps := httpserver.Deps{
		Catalog: catalogService,
		Cart:    cartService,
	}
	if dbpool != nil {
		deps.Sessions = sessionsvc.New(sessionrepo.NewPostgres(dbpool), cfg.ServiceToken)
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, deps, cfg.DefaultCurrency)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
