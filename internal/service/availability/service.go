package availability

import (
	"context"
	"fmt"

	"github.com/finddoctor/scheduling-api/internal/model"
	"github.com/finddoctor/scheduling-api/internal/repository"
	apperrors "github.com/finddoctor/scheduling-api/pkg/errors"
)

// Service maintains per-doctor recurring weekly availability windows.
// Windows are declarative bookkeeping for calendar rendering; the booking
// path only consults them when strict mode wires this service in as the
// booking policy.
type Service struct {
	repo       repository.AvailabilityRepository
	doctorRepo repository.DoctorRepository
}

func NewService(repo repository.AvailabilityRepository, doctorRepo repository.DoctorRepository) *Service {
	return &Service{repo: repo, doctorRepo: doctorRepo}
}

func (s *Service) AddWindow(ctx context.Context, doctorID int64, dayOfWeek int, startTime, endTime model.TimeOfDay, isAvailable bool) (*model.AvailabilityWindow, error) {
	if _, err := s.doctorRepo.Get(ctx, doctorID); err != nil {
		return nil, err
	}

	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, apperrors.InvalidInput("day_of_week must be between 0 and 6", nil)
	}
	if startTime >= endTime {
		return nil, apperrors.InvalidInput("start_time must be before end_time", nil)
	}

	window := &model.AvailabilityWindow{
		DoctorID:    doctorID,
		DayOfWeek:   dayOfWeek,
		StartTime:   startTime,
		EndTime:     endTime,
		IsAvailable: isAvailable,
	}

	if err := s.repo.Create(ctx, window); err != nil {
		return nil, fmt.Errorf("failed to add availability window: %w", err)
	}
	return window, nil
}

func (s *Service) ListWindows(ctx context.Context, doctorID int64, dayOfWeek *int) ([]*model.AvailabilityWindow, error) {
	if dayOfWeek != nil && (*dayOfWeek < 0 || *dayOfWeek > 6) {
		return nil, apperrors.InvalidInput("day_of_week must be between 0 and 6", nil)
	}

	windows, err := s.repo.List(ctx, doctorID, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability windows: %w", err)
	}
	return windows, nil
}

func (s *Service) RemoveWindow(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// IsWithinDeclaredAvailability reports whether some available window for
// the doctor's weekday covers the given time. It satisfies the booking
// engine's AvailabilityPolicy seam for strict mode.
func (s *Service) IsWithinDeclaredAvailability(ctx context.Context, doctorID int64, date model.Date, t model.TimeOfDay) (bool, error) {
	day := date.Weekday()
	windows, err := s.repo.List(ctx, doctorID, &day)
	if err != nil {
		return false, err
	}

	for _, w := range windows {
		if w.IsAvailable && w.StartTime <= t && t < w.EndTime {
			return true, nil
		}
	}
	return false, nil
}
