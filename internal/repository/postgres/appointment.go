package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/finddoctor/scheduling-api/internal/model"
	apperrors "github.com/finddoctor/scheduling-api/pkg/errors"
)

const appointmentColumns = `
	id, doctor_id, patient_name, patient_email, patient_phone,
	appointment_date, appointment_time, notes, status,
	created_at, updated_at
`

// Create claims the slot and records the outbox event in one transaction.
// The partial unique index appointments_active_slot_idx is the conflict
// arbiter: of two concurrent creates for the same slot, the loser gets a
// unique_violation which surfaces as a Conflict error. The event is built
// after the insert so its payload carries the assigned ID.
func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment, eventType string) error {
	query := `
		INSERT INTO appointments (
			doctor_id, patient_name, patient_email, patient_phone,
			appointment_date, appointment_time, notes, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	now := time.Now()
	apt.CreatedAt = now
	apt.UpdatedAt = now

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowContext(ctx, query,
			apt.DoctorID,
			apt.PatientName,
			apt.PatientEmail,
			apt.PatientPhone,
			apt.AppointmentDate,
			apt.AppointmentTime,
			apt.Notes,
			apt.Status,
			apt.CreatedAt,
			apt.UpdatedAt,
		).Scan(&apt.ID)
		if err != nil {
			if isUniqueViolation(err, "appointments_active_slot_idx") {
				return apperrors.Conflict("time slot already booked", err)
			}
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		if eventType != "" {
			event, err := model.NewAppointmentEvent(eventType, apt)
			if err != nil {
				return fmt.Errorf("failed to build event: %w", err)
			}
			if err := insertOutboxEvent(ctx, tx, event); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE id = $1
	`
	var apt model.Appointment
	err := r.db.GetContext(ctx, &apt, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment, eventType string) error {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, apt.Status, apt.UpdatedAt, apt.ID)
		if err != nil {
			return fmt.Errorf("failed to update appointment: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return apperrors.NotFound("appointment", nil)
		}

		if eventType != "" {
			event, err := model.NewAppointmentEvent(eventType, apt)
			if err != nil {
				return fmt.Errorf("failed to build event: %w", err)
			}
			if err := insertOutboxEvent(ctx, tx, event); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters.DoctorID != 0 {
		query += fmt.Sprintf(" AND doctor_id = $%d", argCount)
		args = append(args, filters.DoctorID)
		argCount++
	}

	if filters.AppointmentDate != nil {
		query += fmt.Sprintf(" AND appointment_date = $%d", argCount)
		args = append(args, *filters.AppointmentDate)
		argCount++
	}

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	if filters.PatientEmail != "" {
		query += fmt.Sprintf(" AND patient_email = $%d", argCount)
		args = append(args, filters.PatientEmail)
		argCount++
	}

	// General listing is newest-first; the doctor dashboard uses the
	// opposite ordering (see ListForDoctor).
	query += fmt.Sprintf(" ORDER BY appointment_date DESC, appointment_time DESC LIMIT $%d OFFSET $%d",
		argCount, argCount+1)
	args = append(args, filters.Pagination.Limit, filters.Pagination.Offset)

	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) HasActiveSlot(ctx context.Context, doctorID int64, date model.Date, t model.TimeOfDay) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE doctor_id = $1
			AND appointment_date = $2
			AND appointment_time = $3
			AND status IN ('scheduled', 'confirmed')
		)
	`
	var taken bool
	err := r.db.GetContext(ctx, &taken, query, doctorID, date, t)
	if err != nil {
		return false, fmt.Errorf("failed to check slot: %w", err)
	}
	return taken, nil
}

func (r *appointmentRepository) ListForDoctor(ctx context.Context, doctorID int64, startDate, endDate *model.Date) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE doctor_id = $1
	`
	args := []interface{}{doctorID}
	argCount := 2

	if startDate != nil {
		query += fmt.Sprintf(" AND appointment_date >= $%d", argCount)
		args = append(args, *startDate)
		argCount++
	}

	if endDate != nil {
		query += fmt.Sprintf(" AND appointment_date <= $%d", argCount)
		args = append(args, *endDate)
		argCount++
	}

	query += " ORDER BY appointment_date ASC, appointment_time ASC"

	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	return appointments, nil
}
