package repository

import (
	"context"
	"fmt"

	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/repository/dao"
)

type AuxiliaryDAO interface {
	ReplaceAssignments(ctx context.Context, auxiliaryID uint, labIDs []uint, createdBy uint) error
	ReplaceSchedules(ctx context.Context, auxiliaryID uint, windows []dao.ScheduleWindow, createdBy uint) error
	FindAssignments(ctx context.Context, auxiliaryID uint) ([]dao.AuxiliaryAssignment, error)
	FindSchedules(ctx context.Context, auxiliaryID uint) ([]dao.ScheduleWindow, error)
	HasAssignment(ctx context.Context, auxiliaryID, labID uint) (bool, error)
	AssignedLaboratoryIDs(ctx context.Context, auxiliaryID uint) ([]uint, error)
}

type AuxiliaryRepository struct {
	dao AuxiliaryDAO
}

func NewAuxiliaryRepository(dao AuxiliaryDAO) *AuxiliaryRepository {
	return &AuxiliaryRepository{
		dao: dao,
	}
}

func (r *AuxiliaryRepository) ReplaceAssignments(ctx context.Context, auxiliaryID uint, labIDs []uint, createdBy uint) error {
	if err := r.dao.ReplaceAssignments(ctx, auxiliaryID, labIDs, createdBy); err != nil {
		return fmt.Errorf("r.dao.ReplaceAssignments -> %w", err)
	}

	return nil
}

func (r *AuxiliaryRepository) ReplaceSchedules(ctx context.Context, auxiliaryID uint, windows []domain.ScheduleWindow, createdBy uint) error {
	daoWindows := make([]dao.ScheduleWindow, 0, len(windows))
	for _, w := range windows {
		daoWindows = append(daoWindows, dao.ScheduleWindow{
			Day:       string(w.Day),
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}

	if err := r.dao.ReplaceSchedules(ctx, auxiliaryID, daoWindows, createdBy); err != nil {
		return fmt.Errorf("r.dao.ReplaceSchedules -> %w", err)
	}

	return nil
}

func (r *AuxiliaryRepository) FindAssignments(ctx context.Context, auxiliaryID uint) ([]domain.AuxiliaryAssignment, error) {
	found, err := r.dao.FindAssignments(ctx, auxiliaryID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAssignments -> %w", err)
	}

	assignments := make([]domain.AuxiliaryAssignment, 0, len(found))
	for _, a := range found {
		assignments = append(assignments, domain.AuxiliaryAssignment{
			ID:           a.ID,
			AuxiliaryID:  a.AuxiliaryID,
			LaboratoryID: a.LaboratoryID,
			CreatedBy:    a.CreatedBy,
			CreatedAt:    a.CreatedAt,
		})
	}

	return assignments, nil
}

func (r *AuxiliaryRepository) FindSchedules(ctx context.Context, auxiliaryID uint) ([]domain.ScheduleWindow, error) {
	found, err := r.dao.FindSchedules(ctx, auxiliaryID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindSchedules -> %w", err)
	}

	windows := make([]domain.ScheduleWindow, 0, len(found))
	for _, w := range found {
		windows = append(windows, domain.ScheduleWindow{
			ID:          w.ID,
			AuxiliaryID: w.AuxiliaryID,
			Day:         domain.Weekday(w.Day),
			StartTime:   w.StartTime,
			EndTime:     w.EndTime,
			CreatedBy:   w.CreatedBy,
			CreatedAt:   w.CreatedAt,
		})
	}

	return windows, nil
}

func (r *AuxiliaryRepository) HasAssignment(ctx context.Context, auxiliaryID, labID uint) (bool, error) {
	ok, err := r.dao.HasAssignment(ctx, auxiliaryID, labID)
	if err != nil {
		return false, fmt.Errorf("r.dao.HasAssignment -> %w", err)
	}

	return ok, nil
}

func (r *AuxiliaryRepository) AssignedLaboratoryIDs(ctx context.Context, auxiliaryID uint) ([]uint, error) {
	ids, err := r.dao.AssignedLaboratoryIDs(ctx, auxiliaryID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.AssignedLaboratoryIDs -> %w", err)
	}

	return ids, nil
}
