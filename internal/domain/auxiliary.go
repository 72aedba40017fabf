package domain

import "time"

// Weekday is the day-of-week enum for recurring auxiliary schedules.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

func ValidWeekday(d Weekday) bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}

	return false
}

// AuxiliaryAssignment links an auxiliary to a laboratory they support.
type AuxiliaryAssignment struct {
	ID           uint      `json:"id"`
	AuxiliaryID  uint      `json:"auxiliary_id"`
	LaboratoryID uint      `json:"laboratory_id"`
	CreatedBy    uint      `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// ScheduleWindow is a weekly recurring working window for an auxiliary.
type ScheduleWindow struct {
	ID          uint      `json:"id"`
	AuxiliaryID uint      `json:"auxiliary_id"`
	Day         Weekday   `json:"day"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	CreatedBy   uint      `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}
