package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/repository"
)

var ErrLaboratoryCodeExists = repository.ErrLaboratoryCodeExists

type LaboratoryRepository interface {
	Create(ctx context.Context, lab domain.Laboratory) (domain.Laboratory, error)
	FindByID(ctx context.Context, id uint) (domain.Laboratory, error)
	FindAll(ctx context.Context) ([]domain.Laboratory, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Laboratory, error)
	Update(ctx context.Context, id uint, updates map[string]any) (domain.Laboratory, error)
	Delete(ctx context.Context, id uint) error
}

type AssignmentLister interface {
	AssignedLaboratoryIDs(ctx context.Context, auxiliaryID uint) ([]uint, error)
}

type LaboratoryService struct {
	repo        LaboratoryRepository
	assignments AssignmentLister
}

func NewLaboratoryService(repo LaboratoryRepository, assignments AssignmentLister) *LaboratoryService {
	return &LaboratoryService{
		repo:        repo,
		assignments: assignments,
	}
}

func (s *LaboratoryService) Create(ctx context.Context, adminID uint, lab domain.Laboratory) (domain.Laboratory, error) {
	lab.Name = strings.TrimSpace(lab.Name)
	lab.Code = strings.TrimSpace(lab.Code)

	if lab.Name == "" || lab.Code == "" {
		return domain.Laboratory{}, NewValidationError("name and code are required")
	}
	if lab.State != "" && lab.State != domain.LaboratoryActive && lab.State != domain.LaboratoryInactive {
		return domain.Laboratory{}, NewValidationError("state must be 'active' or 'inactive'")
	}
	if lab.Capacity < 0 {
		return domain.Laboratory{}, NewValidationError("capacity cannot be negative")
	}

	lab.ModifiedBy = adminID

	created, err := s.repo.Create(ctx, lab)
	if err != nil {
		if errors.Is(err, repository.ErrLaboratoryCodeExists) {
			return domain.Laboratory{}, ErrLaboratoryCodeExists
		}

		return domain.Laboratory{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// List scopes by role: auxiliaries only see the laboratories assigned to
// them, everyone else sees the full catalog.
func (s *LaboratoryService) List(ctx context.Context, user domain.User) ([]domain.Laboratory, error) {
	if user.Role == domain.RoleAuxiliary {
		ids, err := s.assignments.AssignedLaboratoryIDs(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("s.assignments.AssignedLaboratoryIDs -> %w", err)
		}

		labs, err := s.repo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindByIDs -> %w", err)
		}

		return labs, nil
	}

	labs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return labs, nil
}

func (s *LaboratoryService) Get(ctx context.Context, id uint) (domain.Laboratory, error) {
	lab, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLaboratoryNotFound) {
			return domain.Laboratory{}, ErrLaboratoryNotFound
		}

		return domain.Laboratory{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return lab, nil
}

// LaboratoryUpdate carries the fields an admin may change. Nil means
// "leave untouched".
type LaboratoryUpdate struct {
	Name         *string
	Code         *string
	Location     *string
	Capacity     *int
	State        *domain.LaboratoryState
	Equipment    *[]string
	OpeningHours *map[string]string
	Images       *[]string
}

func (s *LaboratoryService) Update(ctx context.Context, adminID, id uint, update LaboratoryUpdate) (domain.Laboratory, error) {
	updates := map[string]any{"modified_by": adminID}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return domain.Laboratory{}, NewValidationError("name cannot be empty")
		}
		updates["name"] = name
	}
	if update.Code != nil {
		code := strings.TrimSpace(*update.Code)
		if code == "" {
			return domain.Laboratory{}, NewValidationError("code cannot be empty")
		}
		updates["code"] = code
	}
	if update.Location != nil {
		updates["location"] = *update.Location
	}
	if update.Capacity != nil {
		if *update.Capacity < 0 {
			return domain.Laboratory{}, NewValidationError("capacity cannot be negative")
		}
		updates["capacity"] = *update.Capacity
	}
	if update.State != nil {
		if *update.State != domain.LaboratoryActive && *update.State != domain.LaboratoryInactive {
			return domain.Laboratory{}, NewValidationError("state must be 'active' or 'inactive'")
		}
		updates["state"] = string(*update.State)
	}
	if update.Equipment != nil {
		updates["equipment"] = *update.Equipment
	}
	if update.OpeningHours != nil {
		updates["opening_hours"] = *update.OpeningHours
	}
	if update.Images != nil {
		updates["images"] = *update.Images
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrLaboratoryNotFound):
			return domain.Laboratory{}, ErrLaboratoryNotFound
		case errors.Is(err, repository.ErrLaboratoryCodeExists):
			return domain.Laboratory{}, ErrLaboratoryCodeExists
		}

		return domain.Laboratory{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *LaboratoryService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrLaboratoryNotFound) {
			return ErrLaboratoryNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
