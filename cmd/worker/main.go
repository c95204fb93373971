package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/finddoctor/scheduling-api/internal/config"
	"github.com/finddoctor/scheduling-api/internal/email"
	"github.com/finddoctor/scheduling-api/internal/model"
	"github.com/finddoctor/scheduling-api/internal/repository/postgres"
	"github.com/finddoctor/scheduling-api/pkg/logger"
	"github.com/finddoctor/scheduling-api/pkg/messaging"
	redisbroker "github.com/finddoctor/scheduling-api/pkg/messaging/redis"
	"github.com/finddoctor/scheduling-api/pkg/metrics"
	"github.com/finddoctor/scheduling-api/pkg/worker"
)

// The worker drains the outbox to Redis and turns appointment events
// into patient emails. It shares no state with the API beyond the
// database and the broker.
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lg := logger.NewLogger(nil)
	outboxProcessor := worker.NewOutboxProcessor(
		postgres.NewOutboxRepository(db),
		broker,
		worker.OutboxProcessorConfig{
			BatchSize:     cfg.Outbox.BatchSize,
			PollInterval:  cfg.Outbox.PollInterval,
			RetryAttempts: cfg.Outbox.RetryAttempts,
			RetryDelay:    cfg.Outbox.RetryDelay,
		},
		lg,
		metrics.NewMetrics("scheduling_worker"),
	)
	go outboxProcessor.Start(ctx)

	emailSvc := email.NewSMTPService(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	go consumeAppointmentEvents(ctx, broker, emailSvc, lg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down worker")
	cancel()
}

func consumeAppointmentEvents(ctx context.Context, broker messaging.Broker, emailSvc email.Service, lg *logger.Logger) {
	events, err := broker.Subscribe(ctx, "appointment.*")
	if err != nil {
		lg.Error(err, "failed to subscribe to appointment events")
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-events:
			if !ok {
				return
			}
			handleEvent(ctx, payload, emailSvc, lg)
		}
	}
}

func handleEvent(ctx context.Context, payload []byte, emailSvc email.Service, lg *logger.Logger) {
	// The outbox publishes the appointment snapshot as the payload;
	// the event type is recoverable from the status.
	var apt model.Appointment
	if err := json.Unmarshal(payload, &apt); err != nil {
		lg.Error(err, "failed to decode appointment event")
		return
	}

	var err error
	switch apt.Status {
	case model.AppointmentStatusScheduled, model.AppointmentStatusConfirmed:
		err = emailSvc.SendBookingConfirmation(ctx, &apt)
	case model.AppointmentStatusCancelled:
		err = emailSvc.SendCancellationNotice(ctx, &apt)
	default:
		return
	}
	if err != nil {
		lg.Error(err, "failed to send appointment email",
			"appointment_id", apt.ID,
			"status", string(apt.Status))
	}
}
