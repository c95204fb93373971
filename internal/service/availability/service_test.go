package availability

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

func newFakeDoctorRepo(ids ...int64) *fakeDoctorRepo {
	r := &fakeDoctorRepo{doctors: make(map[int64]*model.Doctor)}
	for _, id := range ids {
		r.doctors[id] = &model.Doctor{ID: id, Name: "Dr. Test"}
	}
	return r
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

type fakeAvailabilityRepo struct {
	nextID  int64
	windows map[int64]*model.AvailabilityWindow
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{windows: make(map[int64]*model.AvailabilityWindow)}
}

func (r *fakeAvailabilityRepo) Create(_ context.Context, w *model.AvailabilityWindow) error {
	for _, existing := range r.windows {
		if existing.DoctorID == w.DoctorID && existing.DayOfWeek == w.DayOfWeek && existing.StartTime == w.StartTime {
			return apperrors.Conflict("availability window already exists", nil)
		}
	}
	r.nextID++
	w.ID = r.nextID
	cp := *w
	r.windows[w.ID] = &cp
	return nil
}

func (r *fakeAvailabilityRepo) List(_ context.Context, doctorID int64, dayOfWeek *int) ([]*model.AvailabilityWindow, error) {
	var out []*model.AvailabilityWindow
	for _, w := range r.windows {
		if w.DoctorID != doctorID {
			continue
		}
		if dayOfWeek != nil && w.DayOfWeek != *dayOfWeek {
			continue
		}
		cp := *w
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (r *fakeAvailabilityRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.windows[id]; !ok {
		return apperrors.NotFound("availability window", nil)
	}
	delete(r.windows, id)
	return nil
}

func newTestService(ids ...int64) (*Service, *fakeAvailabilityRepo) {
	repo := newFakeAvailabilityRepo()
	return NewService(repo, newFakeDoctorRepo(ids...)), repo
}

func TestAddWindow(t *testing.T) {
	svc, _ := newTestService(1)

	w, err := svc.AddWindow(context.Background(), 1, 0, model.NewTimeOfDay(9, 0), model.NewTimeOfDay(12, 0), true)
	require.NoError(t, err)

	assert.NotZero(t, w.ID)
	assert.Equal(t, 0, w.DayOfWeek)
	assert.Equal(t, "09:00", w.StartTime.String())
	assert.Equal(t, "12:00", w.EndTime.String())
	assert.True(t, w.IsAvailable)
}

func TestAddWindowDoctorNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddWindow(context.Background(), 99, 0, model.NewTimeOfDay(9, 0), model.NewTimeOfDay(12, 0), true)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAddWindowValidation(t *testing.T) {
	svc, _ := newTestService(1)
	ctx := context.Background()

	_, err := svc.AddWindow(ctx, 1, 7, model.NewTimeOfDay(9, 0), model.NewTimeOfDay(12, 0), true)
	assert.True(t, apperrors.IsInvalidInput(err))

	_, err = svc.AddWindow(ctx, 1, -1, model.NewTimeOfDay(9, 0), model.NewTimeOfDay(12, 0), true)
	assert.True(t, apperrors.IsInvalidInput(err))

	_, err = svc.AddWindow(ctx, 1, 0, model.NewTimeOfDay(12, 0), model.NewTimeOfDay(9, 0), true)
	assert.True(t, apperrors.IsInvalidInput(err))

	// Zero-length windows are rejected too.
	_, err = svc.AddWindow(ctx, 1, 0, model.NewTimeOfDay(9, 0), model.NewTimeOfDay(9, 0), true)
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestAddWindowDuplicate(t *testing.T) {
	svc, _ := newTestService(1)
	ctx := context.Background()

	_, err := svc.AddWindow(ctx, 1, 0, model.NewTimeOfDay(9, 0), model.NewTimeOfDay(12, 0), true)
	require.NoError(t, err)

	_, err = svc.AddWindow(ctx, 1, 0, model.NewTimeOfDay(9, 0), model.NewTimeOfDay(11, 0), true)
	assert.True(t, apperrors.IsConflict(err))

	// Same start on another day is a distinct window.
	_, err = svc.AddWindow(ctx, 1, 1, model.NewTimeOfDay(9, 0), model.NewTimeOfDay(12, 0), true)
	assert.NoError(t, err)
}

func TestListWindows(t *testing.T) {
	svc, _ := newTestService(1)
	ctx := context.Background()

	_, err := svc.AddWindow(ctx, 1, 2, model.NewTimeOfDay(14, 0), model.NewTimeOfDay(18, 0), true)
	require.NoError(t, err)
	_, err = svc.AddWindow(ctx, 1, 0, model.NewTimeOfDay(9, 0), model.NewTimeOfDay(12, 0), true)
	require.NoError(t, err)

	windows, err := svc.ListWindows(ctx, 1, nil)
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, 0, windows[0].DayOfWeek)
	assert.Equal(t, 2, windows[1].DayOfWeek)

	day := 2
	windows, err = svc.ListWindows(ctx, 1, &day)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, "14:00", windows[0].StartTime.String())

	bad := 9
	_, err = svc.ListWindows(ctx, 1, &bad)
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestRemoveWindow(t *testing.T) {
	svc, _ := newTestService(1)
	ctx := context.Background()

	w, err := svc.AddWindow(ctx, 1, 0, model.NewTimeOfDay(9, 0), model.NewTimeOfDay(12, 0), true)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveWindow(ctx, w.ID))
	assert.True(t, apperrors.IsNotFound(svc.RemoveWindow(ctx, w.ID)))
}

func TestIsWithinDeclaredAvailability(t *testing.T) {
	svc, _ := newTestService(1)
	ctx := context.Background()

	// Monday 09:00-12:00.
	_, err := svc.AddWindow(ctx, 1, 0, model.NewTimeOfDay(9, 0), model.NewTimeOfDay(12, 0), true)
	require.NoError(t, err)
	// Monday 14:00-16:00, flagged unavailable.
	_, err = svc.AddWindow(ctx, 1, 0, model.NewTimeOfDay(14, 0), model.NewTimeOfDay(16, 0), false)
	require.NoError(t, err)

	monday := model.NewDate(2025, time.December, 1)
	require.Equal(t, 0, monday.Weekday())
	tuesday := model.NewDate(2025, time.December, 2)

	cases := []struct {
		name string
		date model.Date
		time model.TimeOfDay
		want bool
	}{
		{"inside window", monday, model.NewTimeOfDay(10, 30), true},
		{"start is inclusive", monday, model.NewTimeOfDay(9, 0), true},
		{"end is exclusive", monday, model.NewTimeOfDay(12, 0), false},
		{"before window", monday, model.NewTimeOfDay(8, 59), false},
		{"unavailable window does not count", monday, model.NewTimeOfDay(15, 0), false},
		{"wrong weekday", tuesday, model.NewTimeOfDay(10, 30), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.IsWithinDeclaredAvailability(ctx, 1, tc.date, tc.time)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
