package domain

import (
	"errors"
	"fmt"
	"time"
)

// ReservationState is the booking state machine. Pending is the only
// non-terminal state: pending -> approved | rejected (admin decision)
// and pending -> cancelled (owner). Terminal states never change again.
type ReservationState string

const (
	ReservationPending   ReservationState = "pending"
	ReservationApproved  ReservationState = "approved"
	ReservationRejected  ReservationState = "rejected"
	ReservationCancelled ReservationState = "cancelled"
)

func (s ReservationState) Terminal() bool {
	return s == ReservationApproved || s == ReservationRejected || s == ReservationCancelled
}

const (
	// DateLayout is the calendar-date wire format.
	DateLayout = "2006-01-02"
	// ClockLayout is the 24h zero-padded time-of-day wire format.
	ClockLayout = "15:04"

	MinReservationMinutes = 30
	MaxReservationMinutes = 480

	// MinLeadTime is the shortest allowed gap between "now" and the
	// reservation's starting instant.
	MinLeadTime = 24 * time.Hour
)

var (
	ErrBadDateFormat  = errors.New("invalid date format (use YYYY-MM-DD)")
	ErrBadClockFormat = errors.New("invalid time format (use HH:MM)")
)

type Reservation struct {
	ID              uint             `json:"id"`
	TeacherID       uint             `json:"teacher_id"`
	LaboratoryID    uint             `json:"laboratory_id"`
	Date            string           `json:"date"`
	StartTime       string           `json:"start_time"`
	EndTime         string           `json:"end_time"`
	Subject         string           `json:"subject"`
	Description     string           `json:"description,omitempty"`
	State           ReservationState `json:"state"`
	RejectionReason string           `json:"rejection_reason,omitempty"`
	ApprovedBy      *uint            `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time       `json:"approved_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	// Joined display data, populated on reads.
	Teacher    *User       `json:"teacher,omitempty"`
	Laboratory *Laboratory `json:"laboratory,omitempty"`
}

// ClockMinutes parses a zero-padded 24h "HH:MM" string into minutes
// since midnight. time.Parse alone accepts single-digit hours, so the
// result is re-rendered to enforce the padded grammar.
func ClockMinutes(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil || t.Format(ClockLayout) != s {
		return 0, ErrBadClockFormat
	}

	return t.Hour()*60 + t.Minute(), nil
}

// ParseDate validates the "YYYY-MM-DD" grammar and returns the calendar
// date at midnight local time.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, ErrBadDateFormat
	}

	return d, nil
}

// StartsAt combines the reservation's date and start time into a single
// instant in local time.
func (r Reservation) StartsAt() (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+"T"+ClockLayout, r.Date+"T"+r.StartTime, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("time.ParseInLocation -> %w", err)
	}

	return t, nil
}

// DurationMinutes is the slot length. Both times must already be valid.
func (r Reservation) DurationMinutes() (int, error) {
	start, err := ClockMinutes(r.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := ClockMinutes(r.EndTime)
	if err != nil {
		return 0, err
	}

	return end - start, nil
}

// Overlaps reports whether two reservations on the same laboratory and
// date share at least one instant. Intervals are half-open [start, end),
// so a slot ending exactly when another begins does not overlap.
func Overlaps(a, b Reservation) bool {
	if a.LaboratoryID != b.LaboratoryID || a.Date != b.Date {
		return false
	}

	return a.StartTime < b.EndTime && b.StartTime < a.EndTime
}
