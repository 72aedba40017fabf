package domain

import (
	"errors"
	"time"
)

// Role is the closed set of account roles. Every authorization decision
// in the API is made against this enum, never against raw strings.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleAuxiliary Role = "auxiliary"
	RoleTeacher   Role = "teacher"
)

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleAuxiliary, RoleTeacher:
		return Role(s), nil
	}

	return "", ErrUnknownRole
}

func (r Role) String() string {
	return string(r)
}

// UserStatus is the administrative availability of an account,
// orthogonal to the Active flag that gates login.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
	UserVacation UserStatus = "vacation"
	UserOnLeave  UserStatus = "leave"
)

func ValidUserStatus(s UserStatus) bool {
	switch s {
	case UserActive, UserInactive, UserVacation, UserOnLeave:
		return true
	}

	return false
}

type User struct {
	ID        uint       `json:"id"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	Name      string     `json:"name"`
	Role      Role       `json:"role"`
	Code      string     `json:"code,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Status    UserStatus `json:"status"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TeacherProfile is created atomically with its User row; Code mirrors
// the unique teacher code on the user record.
type TeacherProfile struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Code      string    `json:"code"`
	CreatedBy uint      `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ReservationStats summarizes a teacher's booking history per state.
type ReservationStats struct {
	Total     int64 `json:"total_reservations"`
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Cancelled int64 `json:"cancelled"`
}
