package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateNormalization(t *testing.T) {
	late := time.Date(2025, time.December, 1, 23, 59, 59, 0, time.UTC)
	early := time.Date(2025, time.December, 1, 0, 0, 1, 0, time.UTC)

	assert.True(t, DateOf(late).Equal(DateOf(early)))
	assert.True(t, DateOf(late).Equal(NewDate(2025, time.December, 1)))
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2025, time.December, 1)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-12-01"`, string(b))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-12-01"`), &parsed))
	assert.True(t, d.Equal(parsed))

	assert.Error(t, json.Unmarshal([]byte(`"12/01/2025"`), &parsed))
}

func TestDateWeekday(t *testing.T) {
	// 2025-12-01 is a Monday.
	for offset, want := range []int{0, 1, 2, 3, 4, 5, 6} {
		d := NewDate(2025, time.December, 1+offset)
		assert.Equal(t, want, d.Weekday(), d.String())
	}
}

func TestDateScan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-12-01", d.String())

	require.NoError(t, d.Scan([]byte("2025-12-02")))
	assert.Equal(t, "2025-12-02", d.String())

	assert.Error(t, d.Scan(42))
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, NewTimeOfDay(9, 30), got)

	// Seconds are accepted and truncated.
	got, err = ParseTimeOfDay("14:05:59")
	require.NoError(t, err)
	assert.Equal(t, NewTimeOfDay(14, 5), got)

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("9am")
	assert.Error(t, err)
}

func TestTimeOfDayJSON(t *testing.T) {
	b, err := json.Marshal(NewTimeOfDay(9, 5))
	require.NoError(t, err)
	assert.Equal(t, `"09:05"`, string(b))

	var parsed TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"16:45"`), &parsed))
	assert.Equal(t, NewTimeOfDay(16, 45), parsed)
}

func TestTimeOfDayValue(t *testing.T) {
	v, err := NewTimeOfDay(9, 5).Value()
	require.NoError(t, err)
	assert.Equal(t, "09:05:00", v)
}

func TestTimeOfDayScan(t *testing.T) {
	var tod TimeOfDay

	require.NoError(t, tod.Scan([]byte("09:30:00")))
	assert.Equal(t, NewTimeOfDay(9, 30), tod)

	require.NoError(t, tod.Scan(time.Date(0, 1, 1, 16, 45, 0, 0, time.UTC)))
	assert.Equal(t, NewTimeOfDay(16, 45), tod)

	assert.Error(t, tod.Scan(42))
}

func TestAppointmentStatus(t *testing.T) {
	assert.True(t, AppointmentStatusScheduled.Valid())
	assert.False(t, AppointmentStatus("rescheduled").Valid())

	assert.True(t, AppointmentStatusScheduled.Blocks())
	assert.True(t, AppointmentStatusConfirmed.Blocks())
	assert.False(t, AppointmentStatusCancelled.Blocks())
	assert.False(t, AppointmentStatusCompleted.Blocks())
}

func TestPaginationNormalize(t *testing.T) {
	p := Pagination{}
	p.Normalize()
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = Pagination{Limit: 10000, Offset: -5}
	p.Normalize()
	assert.Equal(t, 500, p.Limit)
	assert.Equal(t, 0, p.Offset)
}
