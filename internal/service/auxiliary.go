package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/repository"
)

type AuxiliaryUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByIDAndRole(ctx context.Context, id uint, role domain.Role) (domain.User, error)
	FindByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	Update(ctx context.Context, id uint, updates map[string]any) (domain.User, error)
	DeleteAuxiliary(ctx context.Context, userID uint) error
}

type AuxiliaryScheduleRepository interface {
	ReplaceAssignments(ctx context.Context, auxiliaryID uint, labIDs []uint, createdBy uint) error
	ReplaceSchedules(ctx context.Context, auxiliaryID uint, windows []domain.ScheduleWindow, createdBy uint) error
	FindAssignments(ctx context.Context, auxiliaryID uint) ([]domain.AuxiliaryAssignment, error)
	FindSchedules(ctx context.Context, auxiliaryID uint) ([]domain.ScheduleWindow, error)
}

type LaboratoryBatchReader interface {
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Laboratory, error)
}

// AuxiliaryDetail is the full picture of an auxiliary account: the user
// row plus lab assignments and the weekly schedule.
type AuxiliaryDetail struct {
	User        domain.User                  `json:"user"`
	Assignments []domain.AuxiliaryAssignment `json:"assignments"`
	Schedules   []domain.ScheduleWindow      `json:"schedules"`
}

type AuxiliaryService struct {
	users     AuxiliaryUserRepository
	schedules AuxiliaryScheduleRepository
	labs      LaboratoryBatchReader
}

func NewAuxiliaryService(users AuxiliaryUserRepository, schedules AuxiliaryScheduleRepository, labs LaboratoryBatchReader) *AuxiliaryService {
	return &AuxiliaryService{
		users:     users,
		schedules: schedules,
		labs:      labs,
	}
}

func (s *AuxiliaryService) Create(ctx context.Context, user domain.User) (domain.User, error) {
	user.Email = strings.TrimSpace(user.Email)
	user.Name = strings.TrimSpace(user.Name)

	if user.Email == "" || user.Password == "" || user.Name == "" {
		return domain.User{}, NewValidationError("email, password and name are required")
	}

	hashed, err := hashPassword(user.Password)
	if err != nil {
		return domain.User{}, err
	}

	user.Password = hashed
	user.Role = domain.RoleAuxiliary
	user.Status = domain.UserActive
	user.Active = true

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserEmailExists) {
			return domain.User{}, ErrUserEmailExists
		}

		return domain.User{}, fmt.Errorf("s.users.Create -> %w", err)
	}

	return created, nil
}

func (s *AuxiliaryService) List(ctx context.Context) ([]domain.User, error) {
	auxiliaries, err := s.users.FindByRole(ctx, domain.RoleAuxiliary)
	if err != nil {
		return nil, fmt.Errorf("s.users.FindByRole -> %w", err)
	}

	for i := range auxiliaries {
		auxiliaries[i].Password = ""
	}

	return auxiliaries, nil
}

func (s *AuxiliaryService) Get(ctx context.Context, id uint) (AuxiliaryDetail, error) {
	user, err := s.users.FindByIDAndRole(ctx, id, domain.RoleAuxiliary)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuxiliaryDetail{}, ErrUserNotFound
		}

		return AuxiliaryDetail{}, fmt.Errorf("s.users.FindByIDAndRole -> %w", err)
	}

	assignments, err := s.schedules.FindAssignments(ctx, id)
	if err != nil {
		return AuxiliaryDetail{}, fmt.Errorf("s.schedules.FindAssignments -> %w", err)
	}

	windows, err := s.schedules.FindSchedules(ctx, id)
	if err != nil {
		return AuxiliaryDetail{}, fmt.Errorf("s.schedules.FindSchedules -> %w", err)
	}

	user.Password = ""

	return AuxiliaryDetail{User: user, Assignments: assignments, Schedules: windows}, nil
}

// AuxiliaryUpdate carries the editable auxiliary fields; nil leaves a
// field untouched.
type AuxiliaryUpdate struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
}

func (s *AuxiliaryService) Update(ctx context.Context, id uint, update AuxiliaryUpdate) (domain.User, error) {
	if _, err := s.users.FindByIDAndRole(ctx, id, domain.RoleAuxiliary); err != nil {
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
		if errors.Is(err, repository.ErrUserEmailExists) {
			return domain.User{}, ErrUserEmailExists
		}

		return domain.User{}, fmt.Errorf("s.users.Update -> %w", err)
	}

	updated.Password = ""

	return updated, nil
}

func (s *AuxiliaryService) SetStatus(ctx context.Context, id uint, status domain.UserStatus) (domain.User, error) {
	if !domain.ValidUserStatus(status) {
		return domain.User{}, NewValidationError("invalid status '%s'", status)
	}

	if _, err := s.users.FindByIDAndRole(ctx, id, domain.RoleAuxiliary); err != nil {
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

func (s *AuxiliaryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.users.FindByIDAndRole(ctx, id, domain.RoleAuxiliary); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.users.FindByIDAndRole -> %w", err)
	}

	if err := s.users.DeleteAuxiliary(ctx, id); err != nil {
		return fmt.Errorf("s.users.DeleteAuxiliary -> %w", err)
	}

	return nil
}

// AssignLaboratories replaces the auxiliary's lab assignments with the
// given set. Every id must reference an existing laboratory.
func (s *AuxiliaryService) AssignLaboratories(ctx context.Context, adminID, auxiliaryID uint, labIDs []uint) ([]domain.AuxiliaryAssignment, error) {
	if _, err := s.users.FindByIDAndRole(ctx, auxiliaryID, domain.RoleAuxiliary); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("s.users.FindByIDAndRole -> %w", err)
	}

	labIDs = dedupeIDs(labIDs)

	if len(labIDs) > 0 {
		labs, err := s.labs.FindByIDs(ctx, labIDs)
		if err != nil {
			return nil, fmt.Errorf("s.labs.FindByIDs -> %w", err)
		}
		if len(labs) != len(labIDs) {
			return nil, NewValidationError("one or more laboratories do not exist")
		}
	}

	if err := s.schedules.ReplaceAssignments(ctx, auxiliaryID, labIDs, adminID); err != nil {
		return nil, fmt.Errorf("s.schedules.ReplaceAssignments -> %w", err)
	}

	assignments, err := s.schedules.FindAssignments(ctx, auxiliaryID)
	if err != nil {
		return nil, fmt.Errorf("s.schedules.FindAssignments -> %w", err)
	}

	return assignments, nil
}

// SetSchedule replaces the auxiliary's weekly working windows.
func (s *AuxiliaryService) SetSchedule(ctx context.Context, adminID, auxiliaryID uint, windows []domain.ScheduleWindow) ([]domain.ScheduleWindow, error) {
	if _, err := s.users.FindByIDAndRole(ctx, auxiliaryID, domain.RoleAuxiliary); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("s.users.FindByIDAndRole -> %w", err)
	}

	for _, w := range windows {
		if !domain.ValidWeekday(w.Day) {
			return nil, NewValidationError("invalid day '%s'", w.Day)
		}

		start, err := domain.ClockMinutes(w.StartTime)
		if err != nil {
			return nil, NewValidationError("invalid time format (use HH:MM)")
		}
		end, err := domain.ClockMinutes(w.EndTime)
		if err != nil {
			return nil, NewValidationError("invalid time format (use HH:MM)")
		}
		if start >= end {
			return nil, NewValidationError("start time must be before end time")
		}
	}

	if err := s.schedules.ReplaceSchedules(ctx, auxiliaryID, windows, adminID); err != nil {
		return nil, fmt.Errorf("s.schedules.ReplaceSchedules -> %w", err)
	}

	saved, err := s.schedules.FindSchedules(ctx, auxiliaryID)
	if err != nil {
		return nil, fmt.Errorf("s.schedules.FindSchedules -> %w", err)
	}

	return saved, nil
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
