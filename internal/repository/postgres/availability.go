package postgres

import (
	"context"
	"fmt"

	"github.com/finddoctor/scheduling-api/internal/model"
	apperrors "github.com/finddoctor/scheduling-api/pkg/errors"
)

func (r *availabilityRepository) Create(ctx context.Context, window *model.AvailabilityWindow) error {
	query := `
		INSERT INTO doctor_availabilities (
			doctor_id, day_of_week, start_time, end_time, is_available
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		window.DoctorID,
		window.DayOfWeek,
		window.StartTime,
		window.EndTime,
		window.IsAvailable,
	).Scan(&window.ID)
	if err != nil {
		if isUniqueViolation(err, "doctor_availabilities_slot_key") {
			return apperrors.Conflict("availability window already exists for this time", err)
		}
		return fmt.Errorf("failed to create availability window: %w", err)
	}
	return nil
}

func (r *availabilityRepository) List(ctx context.Context, doctorID int64, dayOfWeek *int) ([]*model.AvailabilityWindow, error) {
	query := `
		SELECT id, doctor_id, day_of_week, start_time, end_time, is_available
		FROM doctor_availabilities
		WHERE doctor_id = $1
	`
	args := []interface{}{doctorID}

	if dayOfWeek != nil {
		query += " AND day_of_week = $2"
		args = append(args, *dayOfWeek)
	}

	query += " ORDER BY day_of_week ASC, start_time ASC"

	var windows []*model.AvailabilityWindow
	err := r.db.SelectContext(ctx, &windows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability windows: %w", err)
	}
	return windows, nil
}

func (r *availabilityRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM doctor_availabilities
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete availability window: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("availability window", nil)
	}

	return nil
}
