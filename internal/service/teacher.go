package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/repository"
)

var ErrUserCodeExists = repository.ErrUserCodeExists

type TeacherUserRepository interface {
	CreateTeacher(ctx context.Context, user domain.User, createdBy uint) (domain.User, error)
	FindByIDAndRole(ctx context.Context, id uint, role domain.Role) (domain.User, error)
	FindByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	Update(ctx context.Context, id uint, updates map[string]any) (domain.User, error)
	DeleteTeacher(ctx context.Context, userID uint) error
}

type ReservationStatsReader interface {
	CountActiveByTeacher(ctx context.Context, teacherID uint) (int64, error)
	StatsByTeacher(ctx context.Context, teacherID uint) (domain.ReservationStats, error)
	FindByTeacherID(ctx context.Context, teacherID uint) ([]domain.Reservation, error)
}

// TeacherWithStats pairs a teacher account with their reservation
// counters for listing and detail views.
type TeacherWithStats struct {
	User         domain.User             `json:"user"`
	Stats        domain.ReservationStats `json:"stats"`
	Reservations []domain.Reservation    `json:"reservations,omitempty"`
}

type TeacherService struct {
	users        TeacherUserRepository
	reservations ReservationStatsReader
}

func NewTeacherService(users TeacherUserRepository, reservations ReservationStatsReader) *TeacherService {
	return &TeacherService{
		users:        users,
		reservations: reservations,
	}
}

// Create provisions a teacher account together with its profile row in
// one transaction. Teachers never self-register.
func (s *TeacherService) Create(ctx context.Context, adminID uint, user domain.User) (domain.User, error) {
	user.Email = strings.TrimSpace(user.Email)
	user.Name = strings.TrimSpace(user.Name)
	user.Code = strings.TrimSpace(user.Code)

	if user.Email == "" || user.Password == "" || user.Name == "" || user.Code == "" {
		return domain.User{}, NewValidationError("email, password, name and code are required")
	}

	hashed, err := hashPassword(user.Password)
	if err != nil {
		return domain.User{}, err
	}

	user.Password = hashed
	user.Role = domain.RoleTeacher
	user.Status = domain.UserActive
	user.Active = true

	created, err := s.users.CreateTeacher(ctx, user, adminID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserEmailExists):
			return domain.User{}, ErrUserEmailExists
		case errors.Is(err, repository.ErrUserCodeExists):
			return domain.User{}, ErrUserCodeExists
		}

		return domain.User{}, fmt.Errorf("s.users.CreateTeacher -> %w", err)
	}

	return created, nil
}

func (s *TeacherService) List(ctx context.Context) ([]TeacherWithStats, error) {
	teachers, err := s.users.FindByRole(ctx, domain.RoleTeacher)
	if err != nil {
		return nil, fmt.Errorf("s.users.FindByRole -> %w", err)
	}

	out := make([]TeacherWithStats, 0, len(teachers))
	for _, t := range teachers {
		stats, err := s.reservations.StatsByTeacher(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("s.reservations.StatsByTeacher -> %w", err)
		}
		t.Password = ""
		out = append(out, TeacherWithStats{User: t, Stats: stats})
	}

	return out, nil
}

// Get returns the teacher together with stats and reservation history.
func (s *TeacherService) Get(ctx context.Context, id uint) (TeacherWithStats, error) {
	teacher, err := s.users.FindByIDAndRole(ctx, id, domain.RoleTeacher)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TeacherWithStats{}, ErrUserNotFound
		}

		return TeacherWithStats{}, fmt.Errorf("s.users.FindByIDAndRole -> %w", err)
	}

	stats, err := s.reservations.StatsByTeacher(ctx, id)
	if err != nil {
		return TeacherWithStats{}, fmt.Errorf("s.reservations.StatsByTeacher -> %w", err)
	}

	history, err := s.reservations.FindByTeacherID(ctx, id)
	if err != nil {
		return TeacherWithStats{}, fmt.Errorf("s.reservations.FindByTeacherID -> %w", err)
	}

	teacher.Password = ""

	return TeacherWithStats{User: teacher, Stats: stats, Reservations: history}, nil
}

// TeacherUpdate carries the editable teacher fields; nil leaves a field
// untouched.
type TeacherUpdate struct {
	Name     *string
	Email    *string
	Code     *string
	Phone    *string
	Password *string
}

func (s *TeacherService) Update(ctx context.Context, id uint, update TeacherUpdate) (domain.User, error) {
	if _, err := s.users.FindByIDAndRole(ctx, id, domain.RoleTeacher); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.users.FindByIDAndRole -> %w", err)
	}

	updates := map[string]any{}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return domain.User{}, NewValidationError("name cannot be empty")
		}
		updates["name"] = name
	}
	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		if email == "" {
			return domain.User{}, NewValidationError("email cannot be empty")
		}
		updates["email"] = email
	}
	if update.Code != nil {
		code := strings.TrimSpace(*update.Code)
		if code == "" {
			return domain.User{}, NewValidationError("code cannot be empty")
		}
		updates["code"] = code
	}
	if update.Phone != nil {
		updates["phone"] = *update.Phone
	}
	if update.Password != nil {
		hashed, err := hashPassword(*update.Password)
		if err != nil {
			return domain.User{}, err
		}
		updates["password"] = hashed
	}

	if len(updates) == 0 {
		return domain.User{}, NewValidationError("no fields to update")
	}

	updated, err := s.users.Update(ctx, id, updates)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserEmailExists):
			return domain.User{}, ErrUserEmailExists
		case errors.Is(err, repository.ErrUserCodeExists):
			return domain.User{}, ErrUserCodeExists
		}

		return domain.User{}, fmt.Errorf("s.users.Update -> %w", err)
	}

	updated.Password = ""

	return updated, nil
}

// SetStatus changes the administrative status. An inactive status also
// revokes login; any other status restores it.
func (s *TeacherService) SetStatus(ctx context.Context, id uint, status domain.UserStatus) (domain.User, error) {
	if !domain.ValidUserStatus(status) {
		return domain.User{}, NewValidationError("invalid status '%s'", status)
	}

	if _, err := s.users.FindByIDAndRole(ctx, id, domain.RoleTeacher); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.users.FindByIDAndRole -> %w", err)
	}

	updated, err := s.users.Update(ctx, id, map[string]any{
		"status": string(status),
		"active": status != domain.UserInactive,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("s.users.Update -> %w", err)
	}

	updated.Password = ""

	return updated, nil
}

// Delete removes a teacher and their settled reservation history.
// Teachers with pending or approved reservations cannot be deleted.
func (s *TeacherService) Delete(ctx context.Context, id uint) error {
	if _, err := s.users.FindByIDAndRole(ctx, id, domain.RoleTeacher); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.users.FindByIDAndRole -> %w", err)
	}

	active, err := s.reservations.CountActiveByTeacher(ctx, id)
	if err != nil {
		return fmt.Errorf("s.reservations.CountActiveByTeacher -> %w", err)
	}
	if active > 0 {
		return NewValidationError("teacher has pending or approved reservations and cannot be deleted")
	}

	if err := s.users.DeleteTeacher(ctx, id); err != nil {
		return fmt.Errorf("s.users.DeleteTeacher -> %w", err)
	}

	return nil
}
