package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/soheilhy/cmux"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	logger_lib "github.com/s21platform/logger-lib"
	"github.com/s21platform/metrics-lib/pkg"

	"github.com/s21platform/conversation-service/internal/client/centrifugo"
	"github.com/s21platform/conversation-service/internal/config"
	"github.com/s21platform/conversation-service/internal/databus/user"
	"github.com/s21platform/conversation-service/internal/infra"
	"github.com/s21platform/conversation-service/internal/infra/redisbus"
	"github.com/s21platform/conversation-service/internal/model"
	"github.com/s21platform/conversation-service/internal/notifier"
	"github.com/s21platform/conversation-service/internal/pkg/jwt"
	"github.com/s21platform/conversation-service/internal/pkg/validator"
	"github.com/s21platform/conversation-service/internal/realtime"
	"github.com/s21platform/conversation-service/internal/repository/memory"
	db "github.com/s21platform/conversation-service/internal/repository/postgres"
	"github.com/s21platform/conversation-service/internal/rest"
	"github.com/s21platform/conversation-service/internal/service"
)

const shutdownTimeout = 10 * time.Second

type store interface {
	service.DBRepo
	Close()
}

func main() {
	cfg := config.MustLoad()
	logger := logger_lib.New(cfg.Logger.Host, cfg.Logger.Port, cfg.Service.Name, cfg.Platform.Env)

	metrics, err := pkg.NewMetrics(cfg.Metrics.Host, cfg.Metrics.Port, cfg.Service.Name, cfg.Platform.Env)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to connect graphite: %v", err))
		return
	}
	defer metrics.Disconnect()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	var dbRepo store
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store, data will not survive a restart")
		memRepo := memory.New()
		for _, id := range cfg.Store.SeedUsers {
			_ = memRepo.UpsertUser(ctx, &model.User{ID: id})
		}
		// the user-sync worker can't reach this process's memory, so consume here
		if cfg.Kafka.Host != "" {
			consumer, err := user.NewConsumer(cfg.Kafka, metrics)
			if err != nil {
				logger.Error(fmt.Sprintf("failed to create consumer: %v", err))
				return
			}

			consumerCtx := context.WithValue(ctx, config.KeyMetrics, metrics)
			consumerCtx = context.WithValue(consumerCtx, config.KeyLogger, logger)
			consumer.RegisterHandler(consumerCtx, user.Retrying(user.New(memRepo).Handler, user.DefaultRetryDelay))
		}
		dbRepo = memRepo
	default:
		dbRepo = db.New(cfg)
	}
	defer dbRepo.Close()

	hub := realtime.NewHub(logger)
	defer hub.Close()

	// With Redis every node publishes to the bus and the bus feeds each node's hub.
	var sinks []notifier.Sink
	if cfg.Redis.Addr != "" {
		bus := redisbus.New(cfg.Redis, hub, logger)
		defer bus.Close() //nolint:errcheck // .

		if err := bus.Ping(ctx); err != nil {
			logger.Error(fmt.Sprintf("failed to reach redis: %v", err))
		}
		g.Go(func() error {
			return bus.Run(ctx)
		})
		sinks = append(sinks, bus)
	} else {
		sinks = append(sinks, hub)
	}

	if cfg.Centrifuge.BaseURL != "" {
		centrifugeClient := centrifugo.New(cfg)
		defer centrifugeClient.Close()
		sinks = append(sinks, centrifugeClient)
	}

	pushNotifier := notifier.New(cfg.Notifier, logger, metrics, sinks...)
	g.Go(func() error {
		return pushNotifier.Run(ctx)
	})

	vldtr := validator.New()
	jwtGenerator := jwt.New(cfg.Realtime.TokenSecret, cfg.Realtime.TokenTTL)

	chatService := service.New(dbRepo, vldtr, pushNotifier)
	handler := rest.New(chatService, jwtGenerator)
	wsHandler := realtime.NewHandler(hub, jwtGenerator, realtime.OptionsFromConfig(cfg.Realtime), logger)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return infra.LoggerHTTP(next, logger)
	})

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/ws", wsHandler)

	router.Group(func(r chi.Router) {
		r.Use(infra.AuthInterceptorHTTP)
		handler.Register(r)
	})

	httpServer := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(cfg.Service.Name, grpc_health_v1.HealthCheckResponse_SERVING)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Service.Port))
	if err != nil {
		logger.Error(fmt.Sprintf("failed to start TCP listener: %v", err))
		return
	}

	m := cmux.New(listener)

	grpcListener := m.MatchWithWriters(cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc"))
	httpListener := m.Match(cmux.HTTP1Fast())

	g.Go(func() error {
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) && !errors.Is(err, cmux.ErrServerClosed) && !errors.Is(err, cmux.ErrListenerClosed) {
			return fmt.Errorf("gRPC server error: %v", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, cmux.ErrServerClosed) && !errors.Is(err, cmux.ErrListenerClosed) {
			return fmt.Errorf("HTTP server error: %v", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := m.Serve(); err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("cannot start service: %v", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		healthServer.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		hub.Close()
		_ = httpServer.Shutdown(shutdownCtx)
		grpcServer.GracefulStop()
		m.Close()
		return nil
	})

	logger.Info(fmt.Sprintf("%s listening on :%s", cfg.Service.Name, cfg.Service.Port))

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("server error: %v", err))
	}
}
