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
	ErrTaskNotFound = repository.ErrTaskNotFound

	ErrTaskAccessDenied = errors.New("no access to this task")
)

type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	FindByID(ctx context.Context, id uint) (domain.Task, error)
	FindAll(ctx context.Context) ([]domain.Task, error)
	FindByAuxiliaryID(ctx context.Context, auxiliaryID uint) ([]domain.Task, error)
	Update(ctx context.Context, id uint, updates map[string]any) (domain.Task, error)
	Delete(ctx context.Context, id uint) error
}

type UserRoleReader interface {
	FindByIDAndRole(ctx context.Context, id uint, role domain.Role) (domain.User, error)
}

type TaskService struct {
	repo  TaskRepository
	labs  LaboratoryReader
	users UserRoleReader

	now func() time.Time
}

func NewTaskService(repo TaskRepository, labs LaboratoryReader, users UserRoleReader) *TaskService {
	return &TaskService{
		repo:  repo,
		labs:  labs,
		users: users,
		now:   time.Now,
	}
}

// Create assigns a new task to an auxiliary. Laboratory and assignee
// must both exist.
func (s *TaskService) Create(ctx context.Context, adminID uint, task domain.Task) (domain.Task, error) {
	task.Title = strings.TrimSpace(task.Title)

	if task.Title == "" || task.LaboratoryID == 0 || task.AuxiliaryID == 0 {
		return domain.Task{}, NewValidationError("title, laboratory and auxiliary are required")
	}
	if task.Priority != "" && !domain.ValidTaskPriority(task.Priority) {
		return domain.Task{}, NewValidationError("priority must be 'low', 'medium' or 'high'")
	}
	if task.DueDate != "" {
		if _, err := domain.ParseDate(task.DueDate); err != nil {
			return domain.Task{}, NewValidationError("invalid due date format (use YYYY-MM-DD)")
		}
	}

	if _, err := s.labs.FindByID(ctx, task.LaboratoryID); err != nil {
		if errors.Is(err, repository.ErrLaboratoryNotFound) {
			return domain.Task{}, ErrLaboratoryNotFound
		}

		return domain.Task{}, fmt.Errorf("s.labs.FindByID -> %w", err)
	}

	if _, err := s.users.FindByIDAndRole(ctx, task.AuxiliaryID, domain.RoleAuxiliary); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.Task{}, NewValidationError("assigned auxiliary does not exist")
		}

		return domain.Task{}, fmt.Errorf("s.users.FindByIDAndRole -> %w", err)
	}

	task.State = domain.TaskPending
	task.CreatedBy = adminID
	task.CompletedAt = nil

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return domain.Task{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// List scopes by role: admin sees all tasks, an auxiliary only their
// own.
func (s *TaskService) List(ctx context.Context, user domain.User) ([]domain.Task, error) {
	switch user.Role {
	case domain.RoleAdmin:
		tasks, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
		}

		return tasks, nil
	case domain.RoleAuxiliary:
		tasks, err := s.repo.FindByAuxiliaryID(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindByAuxiliaryID -> %w", err)
		}

		return tasks, nil
	}

	return nil, ErrTaskAccessDenied
}

func (s *TaskService) Get(ctx context.Context, user domain.User, id uint) (domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return domain.Task{}, ErrTaskNotFound
		}

		return domain.Task{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if user.Role != domain.RoleAdmin && task.AuxiliaryID != user.ID {
		return domain.Task{}, ErrTaskAccessDenied
	}

	return task, nil
}

// TaskUpdate carries the editable task fields; nil leaves a field
// untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	AuxiliaryID *uint
	Priority    *domain.TaskPriority
	DueDate     *string
	Tags        *[]string
}

func (s *TaskService) Update(ctx context.Context, id uint, update TaskUpdate) (domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return domain.Task{}, ErrTaskNotFound
		}

		return domain.Task{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if task.State == domain.TaskCompleted {
		return domain.Task{}, NewValidationError("completed tasks cannot be modified")
	}

	updates := map[string]any{}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return domain.Task{}, NewValidationError("title cannot be empty")
		}
		updates["title"] = title
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.AuxiliaryID != nil {
		if _, err := s.users.FindByIDAndRole(ctx, *update.AuxiliaryID, domain.RoleAuxiliary); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domain.Task{}, NewValidationError("assigned auxiliary does not exist")
			}

			return domain.Task{}, fmt.Errorf("s.users.FindByIDAndRole -> %w", err)
		}
		updates["auxiliary_id"] = *update.AuxiliaryID
	}
	if update.Priority != nil {
		if !domain.ValidTaskPriority(*update.Priority) {
			return domain.Task{}, NewValidationError("priority must be 'low', 'medium' or 'high'")
		}
		updates["priority"] = string(*update.Priority)
	}
	if update.DueDate != nil {
		if *update.DueDate != "" {
			if _, err := domain.ParseDate(*update.DueDate); err != nil {
				return domain.Task{}, NewValidationError("invalid due date format (use YYYY-MM-DD)")
			}
		}
		updates["due_date"] = *update.DueDate
	}
	if update.Tags != nil {
		updates["tags"] = *update.Tags
	}

	if len(updates) == 0 {
		return domain.Task{}, NewValidationError("no fields to update")
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return domain.Task{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Complete marks a task done, recording the completion instant and any
// evidence. Only the assigned auxiliary or an admin may complete it.
func (s *TaskService) Complete(ctx context.Context, user domain.User, id uint, evidence []string) (domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return domain.Task{}, ErrTaskNotFound
		}

		return domain.Task{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if user.Role != domain.RoleAdmin && task.AuxiliaryID != user.ID {
		return domain.Task{}, ErrTaskAccessDenied
	}
	if task.State == domain.TaskCompleted {
		return domain.Task{}, NewValidationError("task is already completed")
	}

	updates := map[string]any{
		"state":        string(domain.TaskCompleted),
		"completed_at": s.now(),
	}
	if len(evidence) > 0 {
		updates["evidence"] = evidence
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return domain.Task{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrTaskNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
