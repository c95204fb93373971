package repository

import (
	"context"

	"github.com/finddoctor/scheduling-api/internal/model"
)

// All repository interfaces in one file
type (
	// DoctorRepository handles doctor registry persistence.
	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id int64) (*model.Doctor, error)
		List(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, error)
		// Delete removes the doctor and, through the schema's cascade
		// rules, every availability window and appointment it owns.
		Delete(ctx context.Context, id int64) error
	}

	AvailabilityRepository interface {
		Create(ctx context.Context, window *model.AvailabilityWindow) error
		List(ctx context.Context, doctorID int64, dayOfWeek *int) ([]*model.AvailabilityWindow, error)
		Delete(ctx context.Context, id int64) error
	}

	// AppointmentRepository is the appointment ledger. When eventType is
	// non-empty, Create and Update persist an outbox event in the same
	// transaction as the mutation; the payload snapshots the appointment
	// after the write, so it carries the assigned ID and timestamps.
	//
	// Create is the atomic slot claim: implementations must guarantee that
	// of two concurrent creates for the same (doctor, date, time) with an
	// active status, exactly one succeeds and the other fails with a
	// Conflict error.
	AppointmentRepository interface {
		Create(ctx context.Context, apt *model.Appointment, eventType string) error
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		Update(ctx context.Context, apt *model.Appointment, eventType string) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		HasActiveSlot(ctx context.Context, doctorID int64, date model.Date, t model.TimeOfDay) (bool, error)
		ListForDoctor(ctx context.Context, doctorID int64, startDate, endDate *model.Date) ([]*model.Appointment, error)
	}

	// OutboxRepository drains pending events. ProcessPending must lock the
	// batch for the whole publish cycle: implementations select, invoke
	// publish per event, record the outcome, and only then release the
	// locks, so two concurrent pollers never hand the same event to their
	// publish callbacks.
	OutboxRepository interface {
		ProcessPending(ctx context.Context, limit int, publish func(*model.OutboxEvent) error) (int, error)
	}
)
