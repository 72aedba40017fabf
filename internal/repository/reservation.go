package repository

import (
	"context"
	"fmt"

	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/repository/dao"
)

var (
	ErrReservationNotFound = dao.ErrReservationNotFound
	ErrStateNotPending     = dao.ErrStateNotPending
)

type ReservationDAO interface {
	Insert(ctx context.Context, r dao.Reservation) (dao.Reservation, error)
	FindByID(ctx context.Context, id uint) (dao.Reservation, error)
	FindByIDAndTeacher(ctx context.Context, id, teacherID uint) (dao.Reservation, error)
	FindAll(ctx context.Context) ([]dao.Reservation, error)
	FindByTeacherID(ctx context.Context, teacherID uint) ([]dao.Reservation, error)
	FindByState(ctx context.Context, state string) ([]dao.Reservation, error)
	CountApprovedOverlapping(ctx context.Context, labID uint, date, startTime, endTime string, excludeID uint) (int64, error)
	UpdateStateFromPending(ctx context.Context, id uint, updates map[string]any) error
	Delete(ctx context.Context, id uint) error
	CountActiveByTeacher(ctx context.Context, teacherID uint) (int64, error)
	CountStatesByTeacher(ctx context.Context, teacherID uint) (map[string]int64, error)
}

type ReservationRepository struct {
	dao ReservationDAO
}

func NewReservationRepository(dao ReservationDAO) *ReservationRepository {
	return &ReservationRepository{
		dao: dao,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error) {
	created, err := r.dao.Insert(ctx, reservationToDAO(res))
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return reservationToDomain(created), nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uint) (domain.Reservation, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return reservationToDomain(found), nil
}

func (r *ReservationRepository) FindByIDAndTeacher(ctx context.Context, id, teacherID uint) (domain.Reservation, error) {
	found, err := r.dao.FindByIDAndTeacher(ctx, id, teacherID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.FindByIDAndTeacher -> %w", err)
	}

	return reservationToDomain(found), nil
}

func (r *ReservationRepository) FindAll(ctx context.Context) ([]domain.Reservation, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return reservationsToDomain(found), nil
}

func (r *ReservationRepository) FindByTeacherID(ctx context.Context, teacherID uint) ([]domain.Reservation, error) {
	found, err := r.dao.FindByTeacherID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByTeacherID -> %w", err)
	}

	return reservationsToDomain(found), nil
}

func (r *ReservationRepository) FindByState(ctx context.Context, state domain.ReservationState) ([]domain.Reservation, error) {
	found, err := r.dao.FindByState(ctx, string(state))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByState -> %w", err)
	}

	return reservationsToDomain(found), nil
}

// HasApprovedOverlap reports whether any approved reservation for the
// same laboratory and date intersects the candidate's half-open
// interval, skipping excludeID.
func (r *ReservationRepository) HasApprovedOverlap(ctx context.Context, res domain.Reservation, excludeID uint) (bool, error) {
	count, err := r.dao.CountApprovedOverlapping(ctx, res.LaboratoryID, res.Date, res.StartTime, res.EndTime, excludeID)
	if err != nil {
		return false, fmt.Errorf("r.dao.CountApprovedOverlapping -> %w", err)
	}

	return count > 0, nil
}

// TransitionFromPending performs the conditional state update; callers
// get ErrStateNotPending when the row already left pending.
func (r *ReservationRepository) TransitionFromPending(ctx context.Context, id uint, updates map[string]any) error {
	if err := r.dao.UpdateStateFromPending(ctx, id, updates); err != nil {
		return fmt.Errorf("r.dao.UpdateStateFromPending -> %w", err)
	}

	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ReservationRepository) CountActiveByTeacher(ctx context.Context, teacherID uint) (int64, error) {
	count, err := r.dao.CountActiveByTeacher(ctx, teacherID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountActiveByTeacher -> %w", err)
	}

	return count, nil
}

func (r *ReservationRepository) StatsByTeacher(ctx context.Context, teacherID uint) (domain.ReservationStats, error) {
	counts, err := r.dao.CountStatesByTeacher(ctx, teacherID)
	if err != nil {
		return domain.ReservationStats{}, fmt.Errorf("r.dao.CountStatesByTeacher -> %w", err)
	}

	stats := domain.ReservationStats{
		Pending:   counts[string(domain.ReservationPending)],
		Approved:  counts[string(domain.ReservationApproved)],
		Rejected:  counts[string(domain.ReservationRejected)],
		Cancelled: counts[string(domain.ReservationCancelled)],
	}
	stats.Total = stats.Pending + stats.Approved + stats.Rejected + stats.Cancelled

	return stats, nil
}

func reservationToDAO(r domain.Reservation) dao.Reservation {
	state := r.State
	if state == "" {
		state = domain.ReservationPending
	}

	return dao.Reservation{
		ID:              r.ID,
		TeacherID:       r.TeacherID,
		LaboratoryID:    r.LaboratoryID,
		Date:            r.Date,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		Subject:         r.Subject,
		Description:     r.Description,
		State:           string(state),
		RejectionReason: r.RejectionReason,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
	}
}

func reservationToDomain(r dao.Reservation) domain.Reservation {
	res := domain.Reservation{
		ID:              r.ID,
		TeacherID:       r.TeacherID,
		LaboratoryID:    r.LaboratoryID,
		Date:            r.Date,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		Subject:         r.Subject,
		Description:     r.Description,
		State:           domain.ReservationState(r.State),
		RejectionReason: r.RejectionReason,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	if r.Teacher.ID != 0 {
		teacher := userToDomain(r.Teacher)
		teacher.Password = ""
		res.Teacher = &teacher
	}
	if r.Laboratory.ID != 0 {
		lab := labToDomain(r.Laboratory)
		res.Laboratory = &lab
	}

	return res
}

func reservationsToDomain(rs []dao.Reservation) []domain.Reservation {
	out := make([]domain.Reservation, 0, len(rs))
	for _, r := range rs {
		out = append(out, reservationToDomain(r))
	}

	return out
}
