package repository

import (
	"context"
	"fmt"

	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/repository/dao"
)

var ErrTaskNotFound = dao.ErrTaskNotFound

type TaskDAO interface {
	Insert(ctx context.Context, task dao.Task) (dao.Task, error)
	FindByID(ctx context.Context, id uint) (dao.Task, error)
	FindAll(ctx context.Context) ([]dao.Task, error)
	FindByAuxiliaryID(ctx context.Context, auxiliaryID uint) ([]dao.Task, error)
	Update(ctx context.Context, id uint, updates map[string]any) (dao.Task, error)
	Delete(ctx context.Context, id uint) error
}

type TaskRepository struct {
	dao TaskDAO
}

func NewTaskRepository(dao TaskDAO) *TaskRepository {
	return &TaskRepository{
		dao: dao,
	}
}

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	created, err := r.dao.Insert(ctx, taskToDAO(task))
	if err != nil {
		return domain.Task{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return taskToDomain(created), nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (domain.Task, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Task{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return taskToDomain(found), nil
}

func (r *TaskRepository) FindAll(ctx context.Context) ([]domain.Task, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return tasksToDomain(found), nil
}

func (r *TaskRepository) FindByAuxiliaryID(ctx context.Context, auxiliaryID uint) ([]domain.Task, error) {
	found, err := r.dao.FindByAuxiliaryID(ctx, auxiliaryID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByAuxiliaryID -> %w", err)
	}

	return tasksToDomain(found), nil
}

func (r *TaskRepository) Update(ctx context.Context, id uint, updates map[string]any) (domain.Task, error) {
	updated, err := r.dao.Update(ctx, id, updates)
	if err != nil {
		return domain.Task{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return taskToDomain(updated), nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func taskToDAO(t domain.Task) dao.Task {
	priority := t.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	state := t.State
	if state == "" {
		state = domain.TaskPending
	}

	return dao.Task{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		LaboratoryID: t.LaboratoryID,
		AuxiliaryID:  t.AuxiliaryID,
		Priority:     string(priority),
		DueDate:      t.DueDate,
		Tags:         t.Tags,
		Evidence:     t.Evidence,
		State:        string(state),
		CreatedBy:    t.CreatedBy,
		CompletedAt:  t.CompletedAt,
	}
}

func taskToDomain(t dao.Task) domain.Task {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	evidence := t.Evidence
	if evidence == nil {
		evidence = []string{}
	}

	return domain.Task{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		LaboratoryID: t.LaboratoryID,
		AuxiliaryID:  t.AuxiliaryID,
		Priority:     domain.TaskPriority(t.Priority),
		DueDate:      t.DueDate,
		Tags:         tags,
		Evidence:     evidence,
		State:        domain.TaskState(t.State),
		CreatedBy:    t.CreatedBy,
		CompletedAt:  t.CompletedAt,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func tasksToDomain(ts []dao.Task) []domain.Task {
	out := make([]domain.Task, 0, len(ts))
	for _, t := range ts {
		out = append(out, taskToDomain(t))
	}

	return out
}
