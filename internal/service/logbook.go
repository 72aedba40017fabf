package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/repository"
)

var (
	ErrTemplateNotFound = repository.ErrTemplateNotFound
	ErrLogbookNotFound  = repository.ErrLogbookNotFound

	ErrLogbookAccessDenied = errors.New("no access to this logbook")
)

type LogbookRepository interface {
	CreateTemplate(ctx context.Context, t domain.Template) (domain.Template, error)
	FindTemplateByID(ctx context.Context, id uint) (domain.Template, error)
	FindActiveTemplates(ctx context.Context) ([]domain.Template, error)
	UpdateTemplate(ctx context.Context, id uint, updates map[string]any) (domain.Template, error)
	DeactivateTemplate(ctx context.Context, id uint) error
	Create(ctx context.Context, lb domain.Logbook) (domain.Logbook, error)
	FindByID(ctx context.Context, id uint) (domain.Logbook, error)
	FindAll(ctx context.Context) ([]domain.Logbook, error)
	FindByAuxiliaryID(ctx context.Context, auxiliaryID uint) ([]domain.Logbook, error)
	Update(ctx context.Context, id uint, updates map[string]any) (domain.Logbook, error)
	Delete(ctx context.Context, id uint) error
}

type LogbookService struct {
	repo LogbookRepository
	labs LaboratoryReader
}

func NewLogbookService(repo LogbookRepository, labs LaboratoryReader) *LogbookService {
	return &LogbookService{
		repo: repo,
		labs: labs,
	}
}

func (s *LogbookService) CreateTemplate(ctx context.Context, adminID uint, t domain.Template) (domain.Template, error) {
	t.Name = strings.TrimSpace(t.Name)

	if t.Name == "" {
		return domain.Template{}, NewValidationError("template name is required")
	}
	if len(t.Attributes) == 0 {
		return domain.Template{}, NewValidationError("template needs at least one attribute")
	}

	t.CreatedBy = adminID

	created, err := s.repo.CreateTemplate(ctx, t)
	if err != nil {
		return domain.Template{}, fmt.Errorf("s.repo.CreateTemplate -> %w", err)
	}

	return created, nil
}

func (s *LogbookService) ListTemplates(ctx context.Context) ([]domain.Template, error) {
	templates, err := s.repo.FindActiveTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindActiveTemplates -> %w", err)
	}

	return templates, nil
}

func (s *LogbookService) GetTemplate(ctx context.Context, id uint) (domain.Template, error) {
	t, err := s.repo.FindTemplateByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return domain.Template{}, ErrTemplateNotFound
		}

		return domain.Template{}, fmt.Errorf("s.repo.FindTemplateByID -> %w", err)
	}

	return t, nil
}

// TemplateUpdate carries the editable template fields; nil leaves a
// field untouched.
type TemplateUpdate struct {
	Name       *string
	Attributes *[]string
}

func (s *LogbookService) UpdateTemplate(ctx context.Context, id uint, update TemplateUpdate) (domain.Template, error) {
	updates := map[string]any{}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return domain.Template{}, NewValidationError("template name cannot be empty")
		}
		updates["name"] = name
	}
	if update.Attributes != nil {
		if len(*update.Attributes) == 0 {
			return domain.Template{}, NewValidationError("template needs at least one attribute")
		}
		updates["attributes"] = *update.Attributes
	}

	if len(updates) == 0 {
		return domain.Template{}, NewValidationError("no fields to update")
	}

	updated, err := s.repo.UpdateTemplate(ctx, id, updates)
	if err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return domain.Template{}, ErrTemplateNotFound
		}

		return domain.Template{}, fmt.Errorf("s.repo.UpdateTemplate -> %w", err)
	}

	return updated, nil
}

// DeleteTemplate deactivates instead of removing so existing logbooks
// keep a valid template reference.
func (s *LogbookService) DeleteTemplate(ctx context.Context, id uint) error {
	if err := s.repo.DeactivateTemplate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return ErrTemplateNotFound
		}

		return fmt.Errorf("s.repo.DeactivateTemplate -> %w", err)
	}

	return nil
}

// Create opens a new logbook for the auxiliary from an active template.
// The template's attributes are copied so later template edits do not
// change the shape of existing logbooks.
func (s *LogbookService) Create(ctx context.Context, auxiliaryID uint, lb domain.Logbook) (domain.Logbook, error) {
	lb.Name = strings.TrimSpace(lb.Name)

	if lb.Name == "" || lb.TemplateID == 0 || lb.LaboratoryID == 0 {
		return domain.Logbook{}, NewValidationError("name, template and laboratory are required")
	}

	template, err := s.repo.FindTemplateByID(ctx, lb.TemplateID)
	if err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return domain.Logbook{}, ErrTemplateNotFound
		}

		return domain.Logbook{}, fmt.Errorf("s.repo.FindTemplateByID -> %w", err)
	}
	if !template.Active {
		return domain.Logbook{}, NewValidationError("template is no longer active")
	}

	if _, err := s.labs.FindByID(ctx, lb.LaboratoryID); err != nil {
		if errors.Is(err, repository.ErrLaboratoryNotFound) {
			return domain.Logbook{}, ErrLaboratoryNotFound
		}

		return domain.Logbook{}, fmt.Errorf("s.labs.FindByID -> %w", err)
	}

	lb.AuxiliaryID = auxiliaryID
	lb.Attributes = template.Attributes
	lb.State = domain.LogbookOpen

	created, err := s.repo.Create(ctx, lb)
	if err != nil {
		return domain.Logbook{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// List scopes by role: admin sees all logbooks, an auxiliary only their
// own.
func (s *LogbookService) List(ctx context.Context, user domain.User) ([]domain.Logbook, error) {
	switch user.Role {
	case domain.RoleAdmin:
		logbooks, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
		}

		return logbooks, nil
	case domain.RoleAuxiliary:
		logbooks, err := s.repo.FindByAuxiliaryID(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("s.repo.FindByAuxiliaryID -> %w", err)
		}

		return logbooks, nil
	}

	return nil, ErrLogbookAccessDenied
}

func (s *LogbookService) Get(ctx context.Context, user domain.User, id uint) (domain.Logbook, error) {
	lb, err := s.findVisible(ctx, user, id)
	if err != nil {
		return domain.Logbook{}, err
	}

	return lb, nil
}

// LogbookUpdate carries the editable logbook fields; nil leaves a field
// untouched.
type LogbookUpdate struct {
	Name    *string
	Grid    *[]map[string]string
	Summary *string
}

func (s *LogbookService) Update(ctx context.Context, user domain.User, id uint, update LogbookUpdate) (domain.Logbook, error) {
	lb, err := s.findVisible(ctx, user, id)
	if err != nil {
		return domain.Logbook{}, err
	}
	if lb.State == domain.LogbookCompleted {
		return domain.Logbook{}, NewValidationError("completed logbooks cannot be modified")
	}

	updates := map[string]any{}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return domain.Logbook{}, NewValidationError("name cannot be empty")
		}
		updates["name"] = name
	}
	if update.Grid != nil {
		updates["grid"] = *update.Grid
	}
	if update.Summary != nil {
		updates["summary"] = *update.Summary
	}

	if len(updates) == 0 {
		return domain.Logbook{}, NewValidationError("no fields to update")
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return domain.Logbook{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Complete closes a logbook. Completed logbooks become read-only.
func (s *LogbookService) Complete(ctx context.Context, user domain.User, id uint) (domain.Logbook, error) {
	lb, err := s.findVisible(ctx, user, id)
	if err != nil {
		return domain.Logbook{}, err
	}
	if lb.State == domain.LogbookCompleted {
		return domain.Logbook{}, NewValidationError("logbook is already completed")
	}

	updated, err := s.repo.Update(ctx, id, map[string]any{
		"state": string(domain.LogbookCompleted),
	})
	if err != nil {
		return domain.Logbook{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *LogbookService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrLogbookNotFound) {
			return ErrLogbookNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *LogbookService) findVisible(ctx context.Context, user domain.User, id uint) (domain.Logbook, error) {
	lb, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLogbookNotFound) {
			return domain.Logbook{}, ErrLogbookNotFound
		}

		return domain.Logbook{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if user.Role != domain.RoleAdmin && lb.AuxiliaryID != user.ID {
		return domain.Logbook{}, ErrLogbookAccessDenied
	}

	return lb, nil
}
