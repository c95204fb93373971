package dashboard

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finddoctor/scheduling-api/internal/model"
	apperrors "github.com/finddoctor/scheduling-api/pkg/errors"
)

type fakeDoctorRepo struct {
	doctors map[int64]*model.Doctor
}

func (r *fakeDoctorRepo) Create(_ context.Context, d *model.Doctor) error {
	r.doctors[d.ID] = d
	return nil
}

func (r *fakeDoctorRepo) Get(_ context.Context, id int64) (*model.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, apperrors.NotFound("doctor", nil)
	}
	return d, nil
}

func (r *fakeDoctorRepo) List(_ context.Context, _ *model.DoctorFilters) ([]*model.Doctor, error) {
	return nil, nil
}

func (r *fakeDoctorRepo) Delete(_ context.Context, id int64) error {
	delete(r.doctors, id)
	return nil
}

type fakeAppointmentRepo struct {
	items []*model.Appointment
}

func (r *fakeAppointmentRepo) Create(_ context.Context, apt *model.Appointment, _ string) error {
	r.items = append(r.items, apt)
	return nil
}

func (r *fakeAppointmentRepo) Get(_ context.Context, _ int64) (*model.Appointment, error) {
	return nil, apperrors.NotFound("appointment", nil)
}

func (r *fakeAppointmentRepo) Update(_ context.Context, _ *model.Appointment, _ string) error {
	return nil
}

func (r *fakeAppointmentRepo) List(_ context.Context, _ *model.AppointmentFilters) ([]*model.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) HasActiveSlot(_ context.Context, _ int64, _ model.Date, _ model.TimeOfDay) (bool, error) {
	return false, nil
}

func (r *fakeAppointmentRepo) ListForDoctor(_ context.Context, doctorID int64, startDate, endDate *model.Date) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range r.items {
		if apt.DoctorID != doctorID {
			continue
		}
		if startDate != nil && apt.AppointmentDate.Before(*startDate) {
			continue
		}
		if endDate != nil && apt.AppointmentDate.After(*endDate) {
			continue
		}
		out = append(out, apt)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AppointmentDate.Equal(out[j].AppointmentDate) {
			return out[i].AppointmentDate.Before(out[j].AppointmentDate)
		}
		return out[i].AppointmentTime < out[j].AppointmentTime
	})
	return out, nil
}

func seed(repo *fakeAppointmentRepo, doctorID int64, patient string, date model.Date, t model.TimeOfDay) {
	repo.items = append(repo.items, &model.Appointment{
		DoctorID:        doctorID,
		PatientName:     patient,
		AppointmentDate: date,
		AppointmentTime: t,
		Status:          model.AppointmentStatusScheduled,
	})
}

func datePtr(d model.Date) *model.Date { return &d }

func TestDoctorDashboard(t *testing.T) {
	doctors := &fakeDoctorRepo{doctors: map[int64]*model.Doctor{1: {ID: 1}, 2: {ID: 2}}}
	repo := &fakeAppointmentRepo{}
	svc := NewService(repo, doctors)

	dec1 := model.NewDate(2025, time.December, 1)
	dec2 := model.NewDate(2025, time.December, 2)
	dec5 := model.NewDate(2025, time.December, 5)

	seed(repo, 1, "C", dec5, model.NewTimeOfDay(8, 0))
	seed(repo, 1, "B", dec2, model.NewTimeOfDay(10, 0))
	seed(repo, 1, "A", dec2, model.NewTimeOfDay(9, 0))
	seed(repo, 2, "other", dec1, model.NewTimeOfDay(9, 0))

	listed, err := svc.DoctorDashboard(context.Background(), 1, nil, nil)
	require.NoError(t, err)
	require.Len(t, listed, 3)

	// Chronological order, oldest first.
	assert.Equal(t, "A", listed[0].PatientName)
	assert.Equal(t, "B", listed[1].PatientName)
	assert.Equal(t, "C", listed[2].PatientName)
}

func TestDoctorDashboardInclusiveBounds(t *testing.T) {
	doctors := &fakeDoctorRepo{doctors: map[int64]*model.Doctor{1: {ID: 1}}}
	repo := &fakeAppointmentRepo{}
	svc := NewService(repo, doctors)

	dec1 := model.NewDate(2025, time.December, 1)
	dec2 := model.NewDate(2025, time.December, 2)
	dec3 := model.NewDate(2025, time.December, 3)

	seed(repo, 1, "first", dec1, model.NewTimeOfDay(9, 0))
	seed(repo, 1, "second", dec2, model.NewTimeOfDay(9, 0))
	seed(repo, 1, "third", dec3, model.NewTimeOfDay(9, 0))

	listed, err := svc.DoctorDashboard(context.Background(), 1, datePtr(dec1), datePtr(dec2))
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "first", listed[0].PatientName)
	assert.Equal(t, "second", listed[1].PatientName)

	listed, err = svc.DoctorDashboard(context.Background(), 1, datePtr(dec3), nil)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "third", listed[0].PatientName)
}

func TestDoctorDashboardDoctorNotFound(t *testing.T) {
	svc := NewService(&fakeAppointmentRepo{}, &fakeDoctorRepo{doctors: map[int64]*model.Doctor{}})

	_, err := svc.DoctorDashboard(context.Background(), 42, nil, nil)
	assert.True(t, apperrors.IsNotFound(err))
}
