package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"midnight", "00:00", 0, false},
		{"morning", "08:30", 510, false},
		{"last minute", "23:59", 1439, false},
		{"no padding", "8:30", 0, true},
		{"out of range", "24:00", 0, true},
		{"garbage", "abc", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClockMinutes(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrBadClockFormat)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-15")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, 15, d.Day())

	_, err = ParseDate("15/09/2026")
	require.ErrorIs(t, err, ErrBadDateFormat)

	_, err = ParseDate("2026-13-01")
	require.ErrorIs(t, err, ErrBadDateFormat)
}

func TestDurationMinutes(t *testing.T) {
	r := Reservation{StartTime: "10:00", EndTime: "12:30"}
	got, err := r.DurationMinutes()
	require.NoError(t, err)
	assert.Equal(t, 150, got)
}

func TestReservationState_Terminal(t *testing.T) {
	assert.False(t, ReservationPending.Terminal())
	assert.True(t, ReservationApproved.Terminal())
	assert.True(t, ReservationRejected.Terminal())
	assert.True(t, ReservationCancelled.Terminal())
}

func TestOverlaps(t *testing.T) {
	base := Reservation{LaboratoryID: 1, Date: "2026-09-15", StartTime: "10:00", EndTime: "12:00"}

	tests := []struct {
		name  string
		other Reservation
		want  bool
	}{
		{
			"identical slot",
			Reservation{LaboratoryID: 1, Date: "2026-09-15", StartTime: "10:00", EndTime: "12:00"},
			true,
		},
		{
			"partial overlap at end",
			Reservation{LaboratoryID: 1, Date: "2026-09-15", StartTime: "11:00", EndTime: "13:00"},
			true,
		},
		{
			"fully contained",
			Reservation{LaboratoryID: 1, Date: "2026-09-15", StartTime: "10:30", EndTime: "11:30"},
			true,
		},
		{
			"containing",
			Reservation{LaboratoryID: 1, Date: "2026-09-15", StartTime: "09:00", EndTime: "13:00"},
			true,
		},
		{
			"back to back after",
			Reservation{LaboratoryID: 1, Date: "2026-09-15", StartTime: "12:00", EndTime: "13:00"},
			false,
		},
		{
			"back to back before",
			Reservation{LaboratoryID: 1, Date: "2026-09-15", StartTime: "08:00", EndTime: "10:00"},
			false,
		},
		{
			"different laboratory",
			Reservation{LaboratoryID: 2, Date: "2026-09-15", StartTime: "10:00", EndTime: "12:00"},
			false,
		},
		{
			"different date",
			Reservation{LaboratoryID: 1, Date: "2026-09-16", StartTime: "10:00", EndTime: "12:00"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(base, tt.other))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.other, base))
		})
	}
}
