package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/finddoctor/scheduling-api/internal/model"
	"github.com/finddoctor/scheduling-api/internal/repository"
	apperrors "github.com/finddoctor/scheduling-api/pkg/errors"
)

// AvailabilityPolicy is the optional strict-mode gate: when set, bookings
// outside a doctor's declared windows are rejected. Default wiring leaves
// it nil, matching the advisory-only calendar semantics.
type AvailabilityPolicy interface {
	IsWithinDeclaredAvailability(ctx context.Context, doctorID int64, date model.Date, t model.TimeOfDay) (bool, error)
}

// Options toggles the documented design options. Zero value preserves
// observed behavior: no availability gate, permissive status transitions.
type Options struct {
	AvailabilityPolicy AvailabilityPolicy
	StrictTransitions  bool
}

// Service is the booking engine. It validates booking requests against
// the registry and the ledger and drives the appointment state machine.
// The ledger's own uniqueness guarantee makes the slot claim atomic; the
// pre-check here only produces the precise error ordering.
type Service struct {
	repo       repository.AppointmentRepository
	doctorRepo repository.DoctorRepository
	opts       Options
	now        func() time.Time
}

func NewService(repo repository.AppointmentRepository, doctorRepo repository.DoctorRepository, opts Options) *Service {
	return &Service{
		repo:       repo,
		doctorRepo: doctorRepo,
		opts:       opts,
		now:        time.Now,
	}
}

// Create books an appointment. Checks run in order and short-circuit:
// doctor existence (active flag is not consulted), no past date, free
// slot. On success the appointment is stored as scheduled and a created
// event is queued in the same transaction.
func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if _, err := s.doctorRepo.Get(ctx, req.DoctorID); err != nil {
		return nil, err
	}

	date, err := model.ParseDate(req.AppointmentDate)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid appointment_date", err)
	}
	timeOfDay, err := model.ParseTimeOfDay(req.AppointmentTime)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid appointment_time", err)
	}

	if date.Before(model.DateOf(s.now())) {
		return nil, apperrors.InvalidInput("cannot schedule appointments in the past", nil)
	}

	taken, err := s.repo.HasActiveSlot(ctx, req.DoctorID, date, timeOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot: %w", err)
	}
	if taken {
		return nil, apperrors.Conflict("time slot already booked", nil)
	}

	if s.opts.AvailabilityPolicy != nil {
		ok, err := s.opts.AvailabilityPolicy.IsWithinDeclaredAvailability(ctx, req.DoctorID, date, timeOfDay)
		if err != nil {
			return nil, fmt.Errorf("failed to check availability: %w", err)
		}
		if !ok {
			return nil, apperrors.Conflict("doctor has no declared availability for this time", nil)
		}
	}

	apt := &model.Appointment{
		DoctorID:        req.DoctorID,
		PatientName:     req.PatientName,
		PatientEmail:    req.PatientEmail,
		PatientPhone:    req.PatientPhone,
		AppointmentDate: date,
		AppointmentTime: timeOfDay,
		Notes:           req.Notes,
		Status:          model.AppointmentStatusScheduled,
	}

	if err := s.repo.Create(ctx, apt, model.EventAppointmentCreated); err != nil {
		return nil, err
	}
	return apt, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	filters.Pagination.Normalize()

	if filters.Status != "" && !filters.Status.Valid() {
		return nil, apperrors.InvalidInput("invalid status filter", nil)
	}

	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// UpdateStatus moves an appointment to any of the four statuses. The
// permissive transition function is deliberate; strict mode narrows it to
// forward transitions out of non-terminal states.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) (*model.Appointment, error) {
	if !status.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid status %q", status), nil)
	}

	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.opts.StrictTransitions && !transitionAllowed(apt.Status, status) {
		return nil, apperrors.InvalidInput(
			fmt.Sprintf("transition from %q to %q is not allowed", apt.Status, status), nil)
	}

	if err := apt.SetStatus(status, s.now()); err != nil {
		return nil, apperrors.InvalidInput(err.Error(), err)
	}

	if err := s.repo.Update(ctx, apt, eventTypeFor(status)); err != nil {
		return nil, err
	}
	return apt, nil
}

// Cancel sets the appointment to cancelled. Cancelling an already
// cancelled appointment succeeds: the status is re-written and only
// updated_at moves. Strict mode applies the same transition table here
// as in UpdateStatus, so the delete verb cannot bypass it.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if s.opts.StrictTransitions && !transitionAllowed(apt.Status, model.AppointmentStatusCancelled) {
		return apperrors.InvalidInput(
			fmt.Sprintf("transition from %q to %q is not allowed", apt.Status, model.AppointmentStatusCancelled), nil)
	}

	if err := apt.SetStatus(model.AppointmentStatusCancelled, s.now()); err != nil {
		return apperrors.InvalidInput(err.Error(), err)
	}

	return s.repo.Update(ctx, apt, model.EventAppointmentCancelled)
}

func eventTypeFor(status model.AppointmentStatus) string {
	if status == model.AppointmentStatusCancelled {
		return model.EventAppointmentCancelled
	}
	return model.EventAppointmentUpdated
}

var strictTransitions = map[model.AppointmentStatus][]model.AppointmentStatus{
	model.AppointmentStatusScheduled: {
		model.AppointmentStatusConfirmed,
		model.AppointmentStatusCancelled,
		model.AppointmentStatusCompleted,
	},
	model.AppointmentStatusConfirmed: {
		model.AppointmentStatusCancelled,
		model.AppointmentStatusCompleted,
	},
}

func transitionAllowed(from, to model.AppointmentStatus) bool {
	if from == to {
		return true
	}
	for _, allowed := range strictTransitions[from] {
		if to == allowed {
			return true
		}
	}
	return false
}
