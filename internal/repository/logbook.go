package repository

import (
	"context"
	"fmt"

	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/repository/dao"
)

var (
	ErrTemplateNotFound = dao.ErrTemplateNotFound
	ErrLogbookNotFound  = dao.ErrLogbookNotFound
)

type LogbookDAO interface {
	InsertTemplate(ctx context.Context, t dao.Template) (dao.Template, error)
	FindTemplateByID(ctx context.Context, id uint) (dao.Template, error)
	FindActiveTemplates(ctx context.Context) ([]dao.Template, error)
	UpdateTemplate(ctx context.Context, id uint, updates map[string]any) (dao.Template, error)
	DeactivateTemplate(ctx context.Context, id uint) error
	Insert(ctx context.Context, lb dao.Logbook) (dao.Logbook, error)
	FindByID(ctx context.Context, id uint) (dao.Logbook, error)
	FindAll(ctx context.Context) ([]dao.Logbook, error)
	FindByAuxiliaryID(ctx context.Context, auxiliaryID uint) ([]dao.Logbook, error)
	Update(ctx context.Context, id uint, updates map[string]any) (dao.Logbook, error)
	Delete(ctx context.Context, id uint) error
}

type LogbookRepository struct {
	dao LogbookDAO
}

func NewLogbookRepository(dao LogbookDAO) *LogbookRepository {
	return &LogbookRepository{
		dao: dao,
	}
}

func (r *LogbookRepository) CreateTemplate(ctx context.Context, t domain.Template) (domain.Template, error) {
	created, err := r.dao.InsertTemplate(ctx, dao.Template{
		Name:       t.Name,
		Attributes: t.Attributes,
		Active:     true,
		CreatedBy:  t.CreatedBy,
	})
	if err != nil {
		return domain.Template{}, fmt.Errorf("r.dao.InsertTemplate -> %w", err)
	}

	return templateToDomain(created), nil
}

func (r *LogbookRepository) FindTemplateByID(ctx context.Context, id uint) (domain.Template, error) {
	found, err := r.dao.FindTemplateByID(ctx, id)
	if err != nil {
		return domain.Template{}, fmt.Errorf("r.dao.FindTemplateByID -> %w", err)
	}

	return templateToDomain(found), nil
}

func (r *LogbookRepository) FindActiveTemplates(ctx context.Context) ([]domain.Template, error) {
	found, err := r.dao.FindActiveTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveTemplates -> %w", err)
	}

	templates := make([]domain.Template, 0, len(found))
	for _, t := range found {
		templates = append(templates, templateToDomain(t))
	}

	return templates, nil
}

func (r *LogbookRepository) UpdateTemplate(ctx context.Context, id uint, updates map[string]any) (domain.Template, error) {
	updated, err := r.dao.UpdateTemplate(ctx, id, updates)
	if err != nil {
		return domain.Template{}, fmt.Errorf("r.dao.UpdateTemplate -> %w", err)
	}

	return templateToDomain(updated), nil
}

func (r *LogbookRepository) DeactivateTemplate(ctx context.Context, id uint) error {
	if err := r.dao.DeactivateTemplate(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeactivateTemplate -> %w", err)
	}

	return nil
}

func (r *LogbookRepository) Create(ctx context.Context, lb domain.Logbook) (domain.Logbook, error) {
	created, err := r.dao.Insert(ctx, logbookToDAO(lb))
	if err != nil {
		return domain.Logbook{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return logbookToDomain(created), nil
}

func (r *LogbookRepository) FindByID(ctx context.Context, id uint) (domain.Logbook, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Logbook{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return logbookToDomain(found), nil
}

func (r *LogbookRepository) FindAll(ctx context.Context) ([]domain.Logbook, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return logbooksToDomain(found), nil
}

func (r *LogbookRepository) FindByAuxiliaryID(ctx context.Context, auxiliaryID uint) ([]domain.Logbook, error) {
	found, err := r.dao.FindByAuxiliaryID(ctx, auxiliaryID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByAuxiliaryID -> %w", err)
	}

	return logbooksToDomain(found), nil
}

func (r *LogbookRepository) Update(ctx context.Context, id uint, updates map[string]any) (domain.Logbook, error) {
	updated, err := r.dao.Update(ctx, id, updates)
	if err != nil {
		return domain.Logbook{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return logbookToDomain(updated), nil
}

func (r *LogbookRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func templateToDomain(t dao.Template) domain.Template {
	attrs := t.Attributes
	if attrs == nil {
		attrs = []string{}
	}

	return domain.Template{
		ID:         t.ID,
		Name:       t.Name,
		Attributes: attrs,
		Active:     t.Active,
		CreatedBy:  t.CreatedBy,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func logbookToDAO(lb domain.Logbook) dao.Logbook {
	state := lb.State
	if state == "" {
		state = domain.LogbookOpen
	}

	return dao.Logbook{
		ID:           lb.ID,
		Name:         lb.Name,
		TemplateID:   lb.TemplateID,
		LaboratoryID: lb.LaboratoryID,
		AuxiliaryID:  lb.AuxiliaryID,
		Attributes:   lb.Attributes,
		Grid:         lb.Grid,
		Summary:      lb.Summary,
		State:        string(state),
	}
}

func logbookToDomain(lb dao.Logbook) domain.Logbook {
	attrs := lb.Attributes
	if attrs == nil {
		attrs = []string{}
	}
	grid := lb.Grid
	if grid == nil {
		grid = []map[string]string{}
	}

	return domain.Logbook{
		ID:           lb.ID,
		Name:         lb.Name,
		TemplateID:   lb.TemplateID,
		LaboratoryID: lb.LaboratoryID,
		AuxiliaryID:  lb.AuxiliaryID,
		Attributes:   attrs,
		Grid:         grid,
		Summary:      lb.Summary,
		State:        domain.LogbookState(lb.State),
		CreatedAt:    lb.CreatedAt,
		UpdatedAt:    lb.UpdatedAt,
	}
}

func logbooksToDomain(lbs []dao.Logbook) []domain.Logbook {
	out := make([]domain.Logbook, 0, len(lbs))
	for _, lb := range lbs {
		out = append(out, logbookToDomain(lb))
	}

	return out
}
