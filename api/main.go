package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/product-store/internal/auth"
	"github.com/rogerio-castellano/product-store/internal/catalog"
	"github.com/rogerio-castellano/product-store/internal/config"
	"github.com/rogerio-castellano/product-store/internal/db"
	"github.com/rogerio-castellano/product-store/internal/http/handlers"
	rl "github.com/rogerio-castellano/product-store/internal/http/rate_limiter"
	"github.com/rogerio-castellano/product-store/internal/http/router"
	"github.com/rogerio-castellano/product-store/internal/redissvc"
	"github.com/rogerio-castellano/product-store/internal/repo"
	"github.com/spf13/pflag"
)

// @title Product Store API
// @version 1.0
// @description REST API for adding, searching, listing and deleting products.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configFile := pflag.StringP("config", "c", "", "config file (yaml, json or toml)")
	inMemory := pflag.Bool("memory", false, "keep products in memory instead of Postgres")
	pflag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("❌ Could not load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var productRepo repo.ProductRepository
	if *inMemory {
		log.Println("⚠️ Products are kept in memory and lost on exit")
		productRepo = repo.NewInMemoryProductRepository()
	} else {
		applied, err := db.Migrate(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("❌ Could not migrate database:", err)
		}
		if applied {
			log.Println("Database schema migrated")
		}

		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("❌ Could not connect to database:", err)
		}
		defer database.Close()
		productRepo = repo.NewPostgresProductRepository(database)
	}

	var notifier catalog.Notifier
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Could not connect to Redis: %v", err)
		}
		defer rdb.Close()
		notifier = redissvc.NewRedisService(rdb)
	}

	service := catalog.NewService(productRepo, notifier)
	if err := service.Refresh(ctx); err != nil {
		log.Fatalf("Could not load products: %v", err)
	}
	if err := service.Listen(ctx); err != nil {
		log.Fatalf("Could not subscribe to product changes: %v", err)
	}
	handlers.SetProductService(service)

	var authenticator *auth.Authenticator
	if cfg.Auth.Enabled {
		authenticator = auth.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash)
		handlers.SetAuthenticator(authenticator)
	}

	limiter := rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.StartVisitorCleanupLoop(ctx, time.Minute)

	srv := &http.Server{
		Addr:        cfg.HTTPAddr,
		Handler:     router.NewRouter(authenticator, limiter),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		log.Printf("✅ Server running on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	service.Wait()
}
