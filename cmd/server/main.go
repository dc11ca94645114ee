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
	"github.com/labstack/echo/v4/middleware"

	"github.com/ovsinka/online_store/internal/config"
	"github.com/ovsinka/online_store/internal/es"
	"github.com/ovsinka/online_store/internal/httpserver"
	"github.com/ovsinka/online_store/internal/logging"
	loggingmw "github.com/ovsinka/online_store/internal/middleware/logging"
	"github.com/ovsinka/online_store/internal/mykafka"
	"github.com/ovsinka/online_store/internal/pricing"
	"github.com/ovsinka/online_store/internal/repo"
	"github.com/ovsinka/online_store/internal/service"
)

func main() {
	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka init error: %v", err)
		}
	} else {
		logger.Warn("KAFKA_BROKERS not set, event publishing disabled")
	}

	searchHandler := &httpserver.SearchHTTP{Index: cfg.ESIndex}
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		searchHandler.ES = esClient
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	gormRepo := &repo.GormRepo{DB: db}

	cartService := &service.CartService{
		Repo: gormRepo,
		Calc: pricing.NewCartCalculator(),
	}
	catalogService := &service.CatalogService{Repo: gormRepo}

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		CartHandler:    &httpserver.CartHTTP{Svc: cartService, Producer: producer},
		ProductHandler: &httpserver.ProductHTTP{Svc: catalogService, Producer: producer},
		SearchHandler:  searchHandler,
		JWTSecret:      cfg.JWTSecret,
	})

	go func() {
		logger.Info("starting server", "port", cfg.ServerPort)
		if err := e.Start(fmt.Sprintf(":%d", cfg.ServerPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close", "error", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
