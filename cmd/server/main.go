package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/ndemidov/storefront/internal/config"
	"github.com/ndemidov/storefront/internal/es"
	"github.com/ndemidov/storefront/internal/httpserver"
	"github.com/ndemidov/storefront/internal/logging"
	"github.com/ndemidov/storefront/internal/middleware"
	"github.com/ndemidov/storefront/internal/mykafka"
	"github.com/ndemidov/storefront/internal/repo"
	"github.com/ndemidov/storefront/internal/seed"
	"github.com/ndemidov/storefront/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := cfg.InitDB(initCtx)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	seedCtx := logging.IntoContext(context.Background(), logger)
	seeded, err := seed.Run(seedCtx, db)
	if err != nil {
		log.Fatalf("seed error: %v", err)
	}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = mykafka.NewProducer(cfg.KafkaBrokers)
	}

	gormRepo := &repo.GormRepo{DB: db}

	authSvc := &service.AuthService{Repo: gormRepo, JWTSecret: cfg.JWTSecret}
	catalogSvc := &service.CatalogService{Repo: gormRepo}
	cartSvc := &service.CartService{Repo: gormRepo, Catalog: catalogSvc}
	if producer != nil {
		authSvc.Producer = producer
		cartSvc.Producer = producer
	}

	deps := &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc},
		CartHandler:    &httpserver.CartHTTP{Svc: cartSvc},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc},
		AuthMW:         middleware.NewAuth(authSvc),
	}

	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		deps.SearchHandler = &httpserver.SearchHTTP{ES: esClient, Index: cfg.ESIndex}

		if len(seeded) > 0 {
			if err := service.IndexItems(seedCtx, esClient, cfg.ESIndex, seeded); err != nil {
				logger.Warn("indexing seeded items failed", "error", err)
			}
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), echomw.CORS())
	e.Use(middleware.RequestLogger(logger))

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
