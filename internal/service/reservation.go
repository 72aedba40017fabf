package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/repository"
)

var (
	ErrReservationNotFound = repository.ErrReservationNotFound
	ErrLaboratoryNotFound  = repository.ErrLaboratoryNotFound

	// ErrLaboratoryUnavailable is an existing but inactive room.
	ErrLaboratoryUnavailable = errors.New("laboratory is not available")

	// ErrReservationConflict is an overlap with an approved reservation
	// for the same laboratory and date.
	ErrReservationConflict = errors.New("an approved reservation already occupies that time slot")

	// ErrReservationAccessDenied hides rows from roles that must not
	// see them.
	ErrReservationAccessDenied = errors.New("no access to this reservation")
)

type ReservationRepository interface {
	Create(ctx context.Context, r domain.Reservation) (domain.Reservation, error)
	FindByID(ctx context.Context, id uint) (domain.Reservation, error)
	FindByIDAndTeacher(ctx context.Context, id, teacherID uint) (domain.Reservation, error)
	FindAll(ctx context.Context) ([]domain.Reservation, error)
	FindByTeacherID(ctx context.Context, teacherID uint) ([]domain.Reservation, error)
	FindByState(ctx context.Context, state domain.ReservationState) ([]domain.Reservation, error)
	HasApprovedOverlap(ctx context.Context, r domain.Reservation, excludeID uint) (bool, error)
	TransitionFromPending(ctx context.Context, id uint, updates map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type LaboratoryReader interface {
	FindByID(ctx context.Context, id uint) (domain.Laboratory, error)
}

type AssignmentChecker interface {
	HasAssignment(ctx context.Context, auxiliaryID, labID uint) (bool, error)
}

// ReservationService owns the booking state machine and the overlap
// check. All writes that leave pending go through conditional updates so
// concurrent decisions cannot both win.
type ReservationService struct {
	repo        ReservationRepository
	labs        LaboratoryReader
	assignments AssignmentChecker

	now func() time.Time
}

func NewReservationService(repo ReservationRepository, labs LaboratoryReader, assignments AssignmentChecker) *ReservationService {
	return &ReservationService{
		repo:        repo,
		labs:        labs,
		assignments: assignments,
		now:         time.Now,
	}
}

// Create validates and inserts a pending reservation for the teacher.
// The overlap check here is best-effort only: two overlapping pending
// requests may both be accepted, and Approve is the authoritative gate.
func (s *ReservationService) Create(ctx context.Context, teacherID uint, r domain.Reservation) (domain.Reservation, error) {
	r.TeacherID = teacherID
	r.Subject = strings.TrimSpace(r.Subject)
	r.Description = strings.TrimSpace(r.Description)

	if r.LaboratoryID == 0 || r.Date == "" || r.StartTime == "" || r.EndTime == "" || r.Subject == "" {
		return domain.Reservation{}, NewValidationError("laboratory, date, start time, end time and subject are required")
	}

	lab, err := s.labs.FindByID(ctx, r.LaboratoryID)
	if err != nil {
		if errors.Is(err, repository.ErrLaboratoryNotFound) {
			return domain.Reservation{}, ErrLaboratoryNotFound
		}

		return domain.Reservation{}, fmt.Errorf("s.labs.FindByID -> %w", err)
	}
	if !lab.IsActive() {
		return domain.Reservation{}, ErrLaboratoryUnavailable
	}

	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return domain.Reservation{}, NewValidationError("invalid date format (use YYYY-MM-DD)")
	}
	startMinutes, err := domain.ClockMinutes(r.StartTime)
	if err != nil {
		return domain.Reservation{}, NewValidationError("invalid time format (use HH:MM)")
	}
	endMinutes, err := domain.ClockMinutes(r.EndTime)
	if err != nil {
		return domain.Reservation{}, NewValidationError("invalid time format (use HH:MM)")
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return domain.Reservation{}, NewValidationError("reservations cannot be made for past dates")
	}

	if startMinutes >= endMinutes {
		return domain.Reservation{}, NewValidationError("start time must be before end time")
	}

	duration := endMinutes - startMinutes
	if duration < domain.MinReservationMinutes {
		return domain.Reservation{}, NewValidationError("minimum reservation length is %d minutes", domain.MinReservationMinutes)
	}
	if duration > domain.MaxReservationMinutes {
		return domain.Reservation{}, NewValidationError("maximum reservation length is %d minutes", domain.MaxReservationMinutes)
	}

	startsAt, err := r.StartsAt()
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.StartsAt -> %w", err)
	}
	if startsAt.Sub(now) < domain.MinLeadTime {
		return domain.Reservation{}, NewValidationError("reservations require at least 24 hours notice")
	}

	overlap, err := s.repo.HasApprovedOverlap(ctx, r, 0)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.HasApprovedOverlap -> %w", err)
	}
	if overlap {
		return domain.Reservation{}, ErrReservationConflict
	}

	r.State = domain.ReservationPending
	created, err := s.repo.Create(ctx, r)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Approve re-validates the overlap and flips pending -> approved with a
// conditional update. Losing a race surfaces as InvalidStateError, not
// a silent overwrite.
func (s *ReservationService) Approve(ctx context.Context, adminID, id uint) (domain.Reservation, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return domain.Reservation{}, ErrReservationNotFound
		}

		return domain.Reservation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if r.State != domain.ReservationPending {
		return domain.Reservation{}, &InvalidStateError{Op: "approve", State: r.State}
	}

	overlap, err := s.repo.HasApprovedOverlap(ctx, r, r.ID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.HasApprovedOverlap -> %w", err)
	}
	if overlap {
		return domain.Reservation{}, ErrReservationConflict
	}

	now := s.now()
	err = s.repo.TransitionFromPending(ctx, id, map[string]any{
		"state":       string(domain.ReservationApproved),
		"approved_by": adminID,
		"approved_at": now,
	})
	if err != nil {
		return domain.Reservation{}, s.mapTransitionErr(ctx, id, "approve", err)
	}

	return s.repo.FindByID(ctx, id)
}

// Reject flips pending -> rejected, storing the reason and the deciding
// admin. approved_by/approved_at double as "decided by/at".
func (s *ReservationService) Reject(ctx context.Context, adminID, id uint, reason string) (domain.Reservation, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.Reservation{}, NewValidationError("rejection reason is required")
	}

	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return domain.Reservation{}, ErrReservationNotFound
		}

		return domain.Reservation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if r.State != domain.ReservationPending {
		return domain.Reservation{}, &InvalidStateError{Op: "reject", State: r.State}
	}

	now := s.now()
	err = s.repo.TransitionFromPending(ctx, id, map[string]any{
		"state":            string(domain.ReservationRejected),
		"rejection_reason": reason,
		"approved_by":      adminID,
		"approved_at":      now,
	})
	if err != nil {
		return domain.Reservation{}, s.mapTransitionErr(ctx, id, "reject", err)
	}

	return s.repo.FindByID(ctx, id)
}

// Cancel lets the owning teacher withdraw a still-pending reservation.
// The lookup is scoped by owner so non-owners get a plain not-found.
func (s *ReservationService) Cancel(ctx context.Context, teacherID, id uint) (domain.Reservation, error) {
	r, err := s.repo.FindByIDAndTeacher(ctx, id, teacherID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return domain.Reservation{}, ErrReservationNotFound
		}

		return domain.Reservation{}, fmt.Errorf("s.repo.FindByIDAndTeacher -> %w", err)
	}

	switch r.State {
	case domain.ReservationCancelled:
		return domain.Reservation{}, NewValidationError("reservation is already cancelled")
	case domain.ReservationApproved:
		return domain.Reservation{}, NewValidationError("approved reservations cannot be cancelled; contact the administrator")
	case domain.ReservationRejected:
		return domain.Reservation{}, NewValidationError("rejected reservations cannot be cancelled")
	}

	err = s.repo.TransitionFromPending(ctx, id, map[string]any{
		"state": string(domain.ReservationCancelled),
	})
	if err != nil {
		return domain.Reservation{}, s.mapTransitionErr(ctx, id, "cancel", err)
	}

	return s.repo.FindByID(ctx, id)
}

// Delete is the admin-only hard delete, independent of state.
func (s *ReservationService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return ErrReservationNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// List scopes results by role: admin sees everything, a teacher their
// own rows, an auxiliary every approved reservation system-wide.
func (s *ReservationService) List(ctx context.Context, user domain.User) ([]domain.Reservation, error) {
	var (
		rs  []domain.Reservation
		err error
	)

	switch user.Role {
	case domain.RoleAdmin:
		rs, err = s.repo.FindAll(ctx)
	case domain.RoleTeacher:
		rs, err = s.repo.FindByTeacherID(ctx, user.ID)
	case domain.RoleAuxiliary:
		rs, err = s.repo.FindByState(ctx, domain.ReservationApproved)
	default:
		return nil, ErrReservationAccessDenied
	}
	if err != nil {
		return nil, fmt.Errorf("reservation list -> %w", err)
	}

	return rs, nil
}

// Get applies per-row visibility: teachers only their own, auxiliaries
// only approved reservations in laboratories assigned to them.
func (s *ReservationService) Get(ctx context.Context, user domain.User, id uint) (domain.Reservation, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return domain.Reservation{}, ErrReservationNotFound
		}

		return domain.Reservation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	switch user.Role {
	case domain.RoleAdmin:
		return r, nil
	case domain.RoleTeacher:
		if r.TeacherID != user.ID {
			return domain.Reservation{}, ErrReservationAccessDenied
		}

		return r, nil
	case domain.RoleAuxiliary:
		if r.State != domain.ReservationApproved {
			return domain.Reservation{}, ErrReservationAccessDenied
		}

		assigned, err := s.assignments.HasAssignment(ctx, user.ID, r.LaboratoryID)
		if err != nil {
			return domain.Reservation{}, fmt.Errorf("s.assignments.HasAssignment -> %w", err)
		}
		if !assigned {
			return domain.Reservation{}, ErrReservationAccessDenied
		}

		return r, nil
	}

	return domain.Reservation{}, ErrReservationAccessDenied
}

// mapTransitionErr resolves a failed conditional update: the row either
// disappeared or was decided concurrently. Re-reading tells which.
func (s *ReservationService) mapTransitionErr(ctx context.Context, id uint, op string, err error) error {
	if !errors.Is(err, repository.ErrStateNotPending) {
		return fmt.Errorf("s.repo.TransitionFromPending -> %w", err)
	}

	current, readErr := s.repo.FindByID(ctx, id)
	if readErr != nil {
		if errors.Is(readErr, repository.ErrReservationNotFound) {
			return ErrReservationNotFound
		}

		return fmt.Errorf("s.repo.FindByID -> %w", readErr)
	}

	return &InvalidStateError{Op: op, State: current.State}
}
