package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/finddoctor/scheduling-api/internal/config"
	appointmentHandler "github.com/finddoctor/scheduling-api/internal/handler/appointment"
	availabilityHandler "github.com/finddoctor/scheduling-api/internal/handler/availability"
	doctorHandler "github.com/finddoctor/scheduling-api/internal/handler/doctor"
	healthHandler "github.com/finddoctor/scheduling-api/internal/handler/health"
	"github.com/finddoctor/scheduling-api/internal/middleware"
	"github.com/finddoctor/scheduling-api/internal/repository/postgres"
	"github.com/finddoctor/scheduling-api/internal/router"
	appointmentService "github.com/finddoctor/scheduling-api/internal/service/appointment"
	availabilityService "github.com/finddoctor/scheduling-api/internal/service/availability"
	dashboardService "github.com/finddoctor/scheduling-api/internal/service/dashboard"
	doctorService "github.com/finddoctor/scheduling-api/internal/service/doctor"
	"github.com/finddoctor/scheduling-api/pkg/logger"
	redisbroker "github.com/finddoctor/scheduling-api/pkg/messaging/redis"
	"github.com/finddoctor/scheduling-api/pkg/metrics"
	"github.com/finddoctor/scheduling-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	doctorRepo := postgres.NewDoctorRepository(db)
	availabilityRepo := postgres.NewAvailabilityRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Services
	doctorSvc := doctorService.NewService(doctorRepo)
	availabilitySvc := availabilityService.NewService(availabilityRepo, doctorRepo)
	dashboardSvc := dashboardService.NewService(appointmentRepo, doctorRepo)

	bookingOpts := appointmentService.Options{
		StrictTransitions: cfg.Booking.StrictTransitions,
	}
	if cfg.Booking.EnforceAvailability {
		bookingOpts.AvailabilityPolicy = availabilitySvc
	}
	appointmentSvc := appointmentService.NewService(appointmentRepo, doctorRepo, bookingOpts)

	m := metrics.NewMetrics("scheduling")

	// Handlers
	r := router.NewRouter(
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RPS,
			RateLimitBurst: cfg.RateLimit.Burst,
			Timeout:        time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORS:           middleware.DefaultCORSConfig(),
		},
		doctorHandler.NewHandler(doctorSvc, dashboardSvc),
		availabilityHandler.NewHandler(availabilitySvc),
		appointmentHandler.NewHandler(appointmentSvc, m),
		healthHandler.NewHandler(db),
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The outbox processor runs in-process too, so a single binary
	// deployment still publishes events. The dedicated worker binary
	// does the same polling plus email delivery.
	broker, err := redisbroker.NewRedisBroker(redisbroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	outboxProcessor := worker.NewOutboxProcessor(
		outboxRepo,
		broker,
		worker.OutboxProcessorConfig{
			BatchSize:     cfg.Outbox.BatchSize,
			PollInterval:  cfg.Outbox.PollInterval,
			RetryAttempts: cfg.Outbox.RetryAttempts,
			RetryDelay:    cfg.Outbox.RetryDelay,
		},
		logger.NewLogger(nil),
		m,
	)
	go outboxProcessor.Start(ctx)

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
