package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/finddoctor/scheduling-api/internal/model"
)

func insertOutboxEvent(ctx context.Context, tx *sqlx.Tx, event *model.OutboxEvent) error {
	query := `
		INSERT INTO outbox_events (
			id, event_type, payload, status, retry_count, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.ExecContext(ctx, query,
		event.ID,
		event.EventType,
		event.Payload,
		event.Status,
		event.RetryCount,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}
	return nil
}

// ProcessPending drains a batch of pending events inside one transaction.
// SKIP LOCKED row locks are held until commit, which is what keeps two
// concurrent pollers from publishing the same event: the second poller
// skips the locked rows instead of re-reading them.
func (r *outboxRepository) ProcessPending(ctx context.Context, limit int, publish func(*model.OutboxEvent) error) (int, error) {
	var processed int

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			SELECT id, event_type, payload, status, error_message, retry_count,
				   created_at, processed_at
			FROM outbox_events
			WHERE status = $1
			ORDER BY created_at ASC
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		`
		var events []*model.OutboxEvent
		if err := tx.SelectContext(ctx, &events, query, model.OutboxStatusPending, limit); err != nil {
			return fmt.Errorf("failed to get pending events: %w", err)
		}

		for _, event := range events {
			if err := publish(event); err != nil {
				if markErr := markFailed(ctx, tx, event, err.Error()); markErr != nil {
					return markErr
				}
				continue
			}
			if err := markProcessed(ctx, tx, event); err != nil {
				return err
			}
			processed++
		}
		return nil
	})

	return processed, err
}

func markProcessed(ctx context.Context, tx *sqlx.Tx, event *model.OutboxEvent) error {
	query := `
		UPDATE outbox_events
		SET status = $1, processed_at = now(), error_message = NULL
		WHERE id = $2
	`
	if _, err := tx.ExecContext(ctx, query, model.OutboxStatusProcessed, event.ID); err != nil {
		return fmt.Errorf("failed to mark event processed: %w", err)
	}
	return nil
}

func markFailed(ctx context.Context, tx *sqlx.Tx, event *model.OutboxEvent, errMsg string) error {
	query := `
		UPDATE outbox_events
		SET status = $1, error_message = $2, retry_count = retry_count + 1
		WHERE id = $3
	`
	if _, err := tx.ExecContext(ctx, query, model.OutboxStatusFailed, errMsg, event.ID); err != nil {
		return fmt.Errorf("failed to mark event failed: %w", err)
	}
	return nil
}
