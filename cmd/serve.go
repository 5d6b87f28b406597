package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nayanishant/vegetable-wholesaler/internal/auth"
	"github.com/nayanishant/vegetable-wholesaler/internal/cache"
	"github.com/nayanishant/vegetable-wholesaler/internal/cart"
	"github.com/nayanishant/vegetable-wholesaler/internal/catalog"
	"github.com/nayanishant/vegetable-wholesaler/internal/checkout"
	"github.com/nayanishant/vegetable-wholesaler/internal/guard"
	h "github.com/nayanishant/vegetable-wholesaler/internal/http"
	"github.com/nayanishant/vegetable-wholesaler/internal/publisher"
	"github.com/nayanishant/vegetable-wholesaler/internal/repository"
	"github.com/nayanishant/vegetable-wholesaler/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Set up MongoDB connection
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		return err
	}
	defer mongoDB.Client().Disconnect(context.Background())
	log.Info("connected to MongoDB", zap.String("db", cfg.MongoDBName))

	inventoryRepo := repository.NewInventoryRepository(mongoDB)
	orderRepo := repository.NewOrderRepository(mongoDB)
	userRepo := repository.NewUserRepository(mongoDB)
	if err := repository.EnsureIndexes(ctx, inventoryRepo, orderRepo, userRepo); err != nil {
		return err
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return err
	}
	log.Info("redis ping succeeded", zap.String("addr", cfg.RedisAddr))

	carts := cart.NewRegistry(cache.NewRedisCache(redisClient, cfg.CartTTL), log, cfg.CartIdleTimeout)
	// Closing the registry flushes every live cart before Redis goes away.
	defer carts.Close()
	go carts.Run(ctx)

	reader := catalog.NewReader(inventoryRepo, log)
	orders := service.NewOrderService(orderRepo, userRepo, inventoryRepo, log)
	profiles := service.NewProfileService(userRepo)
	inventory := service.NewInventoryService(inventoryRepo, log)
	orchestrator := checkout.NewOrchestrator(reader, profiles, orders, log)

	if len(cfg.KafkaBrokers) > 0 {
		poller := publisher.NewOutboxPoller(orderRepo, log, cfg.OrdersTopic, cfg.KafkaBrokers...)
		defer poller.Close()
		go poller.Run(ctx)
		log.Info("order outbox poller started", zap.Strings("brokers", cfg.KafkaBrokers))
	} else {
		log.Warn("KAFKA_BROKERS not set, order events are not published")
	}

	tokens := auth.NewAuthToken(cfg.SessionSecret).WithTTL(cfg.SessionTTL)
	router := h.NewRouter(h.RouterConfig{
		Logger:         log,
		Sessions:       tokens,
		Routes:         guard.DefaultTable(),
		RequestTimeout: cfg.RequestTimeout,
		Products:       h.NewProductHandler(reader, cfg.RequestTimeout),
		Cart:           h.NewCartHandler(carts, reader, cfg.RequestTimeout),
		Checkout:       h.NewCheckoutHandler(orchestrator, carts, cfg.RequestTimeout),
		Orders:         h.NewOrdersHandler(orders, cfg.RequestTimeout),
		Profile:        h.NewProfileHandler(profiles, cfg.RequestTimeout),
		Inventory:      h.NewAdminInventoryHandler(inventory, cfg.RequestTimeout),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("storefront listening", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	log.Info("server exited")
	return nil
}
