package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/storefront/internal/catalog"
	"github.com/Skotchmaster/storefront/internal/checkout"
	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/es"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/handlers"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/middleware/csrf"
	loggingmw "github.com/Skotchmaster/storefront/internal/middleware/logging"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service/order"
	"github.com/Skotchmaster/storefront/internal/service/search"
	"github.com/Skotchmaster/storefront/internal/storefront"
	httpserver "github.com/Skotchmaster/storefront/internal/transport/http"
)

const sweepInterval = time.Minute

func main() {
	cfg := config.Load()
	l := logging.New(cfg.LogLevel)
	slog.SetDefault(l)

	strictness, err := checkout.ParseStrictness(cfg.CheckoutValidation)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Open(ctx, cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	r := &repo.GormRepo{DB: gdb}

	seeded, err := r.SeedProducts(ctx, catalog.SeedProducts())
	if err != nil {
		log.Fatalf("seed products: %v", err)
	}
	if seeded > 0 {
		l.Info("products_seeded", "count", seeded)
	}

	cat := catalog.New(r, cfg.CatalogCacheTTL)

	var engine search.Engine = &search.Local{Catalog: cat}
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(ctx, es.Config{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword}, l)
		if err != nil {
			log.Fatal(err)
		}
		elastic := &search.Elastic{ES: esClient, Index: cfg.ESIndex}
		products, err := cat.Products(ctx)
		if err == nil {
			err = elastic.IndexProducts(ctx, products)
		}
		if err != nil {
			l.Error("es_index_error", "error", err)
		}
		engine = elastic
	}

	var publisher events.Publisher = events.Nop{}
	var prod *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatal(err)
		}
		publisher = prod
	}

	orders := &order.Service{
		Repo:        r,
		Publisher:   publisher,
		Topic:       cfg.KafkaOrderTopic,
		Log:         l.With("component", "order_service"),
		Delay:       cfg.PlacementDelay,
		FailureRate: cfg.PlacementFailureRate,
	}

	registry := storefront.NewRegistry(storefront.Deps{
		Products:         cat,
		Placer:           orders,
		Validator:        checkout.NewValidator(strictness),
		PlacementTimeout: cfg.PlacementTimeout,
	}, cfg.SessionIdleTTL)
	go registry.Run(ctx, sweepInterval, func(n int) {
		l.Info("sessions_evicted", "count", n, "remaining", registry.Len())
	})

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(l))

	var guard *csrf.Config
	if cfg.CSRFEnabled {
		c := csrf.DefaultConfig()
		c.Secure = cfg.CSRFSecureCookie
		guard = &c
	}

	httpserver.Register(e, &httpserver.Deps{
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		CSRF:            guard,
		CatalogHandler:  &handlers.CatalogHandler{Catalog: cat},
		SearchHandler:   &handlers.SearchHandler{Engine: engine},
		CartHandler:     &handlers.CartHandler{Sessions: registry, Publisher: publisher},
		CheckoutHandler: &handlers.CheckoutHandler{Sessions: registry},
		OrderHandler:    &handlers.OrderHandler{Orders: orders},
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.PlacementTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		l.Info("http_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("http_server_error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	stop()
	l.Info("shutting_down")

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		l.Warn("force_exit")
		os.Exit(1)
	}()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("server_shutdown_error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		l.Error("db_close_error", "error", err)
	}
	if prod != nil {
		if err := prod.Close(); err != nil {
			l.Error("kafka_close_error", "error", err)
		}
	}

	l.Info("shutdown_complete")
}
