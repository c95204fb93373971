package dashboard

import (
	"context"
	"fmt"

	"github.com/finddoctor/scheduling-api/internal/model"
	"github.com/finddoctor/scheduling-api/internal/repository"
)

// Service projects read-only doctor views over the appointment ledger.
// It reads the ledger directly on every call; bookings are conflict
// sensitive, so no staleness is tolerated here.
type Service struct {
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
}

func NewService(appointmentRepo repository.AppointmentRepository, doctorRepo repository.DoctorRepository) *Service {
	return &Service{appointmentRepo: appointmentRepo, doctorRepo: doctorRepo}
}

// DoctorDashboard lists a doctor's appointments in chronological order,
// optionally bounded by an inclusive date range.
func (s *Service) DoctorDashboard(ctx context.Context, doctorID int64, startDate, endDate *model.Date) ([]*model.Appointment, error) {
	if _, err := s.doctorRepo.Get(ctx, doctorID); err != nil {
		return nil, err
	}

	appointments, err := s.appointmentRepo.ListForDoctor(ctx, doctorID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load doctor dashboard: %w", err)
	}
	return appointments, nil
}
