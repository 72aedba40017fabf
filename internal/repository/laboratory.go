package repository

import (
	"context"
	"fmt"

	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/repository/dao"
)

var (
	ErrLaboratoryNotFound   = dao.ErrLaboratoryNotFound
	ErrLaboratoryCodeExists = dao.ErrLaboratoryCodeExists
)

type LaboratoryDAO interface {
	Insert(ctx context.Context, lab dao.Laboratory) (dao.Laboratory, error)
	FindByID(ctx context.Context, id uint) (dao.Laboratory, error)
	FindAll(ctx context.Context) ([]dao.Laboratory, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dao.Laboratory, error)
	Update(ctx context.Context, id uint, updates map[string]any) (dao.Laboratory, error)
	Delete(ctx context.Context, id uint) error
}

type LaboratoryRepository struct {
	dao LaboratoryDAO
}

func NewLaboratoryRepository(dao LaboratoryDAO) *LaboratoryRepository {
	return &LaboratoryRepository{
		dao: dao,
	}
}

func (r *LaboratoryRepository) Create(ctx context.Context, lab domain.Laboratory) (domain.Laboratory, error) {
	created, err := r.dao.Insert(ctx, labToDAO(lab))
	if err != nil {
		return domain.Laboratory{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return labToDomain(created), nil
}

func (r *LaboratoryRepository) FindByID(ctx context.Context, id uint) (domain.Laboratory, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Laboratory{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return labToDomain(found), nil
}

func (r *LaboratoryRepository) FindAll(ctx context.Context) ([]domain.Laboratory, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return labsToDomain(found), nil
}

func (r *LaboratoryRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Laboratory, error) {
	if len(ids) == 0 {
		return []domain.Laboratory{}, nil
	}

	found, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	return labsToDomain(found), nil
}

func (r *LaboratoryRepository) Update(ctx context.Context, id uint, updates map[string]any) (domain.Laboratory, error) {
	updated, err := r.dao.Update(ctx, id, updates)
	if err != nil {
		return domain.Laboratory{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return labToDomain(updated), nil
}

func (r *LaboratoryRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func labToDAO(l domain.Laboratory) dao.Laboratory {
	state := l.State
	if state == "" {
		state = domain.LaboratoryActive
	}

	return dao.Laboratory{
		ID:           l.ID,
		Name:         l.Name,
		Code:         l.Code,
		Location:     l.Location,
		Capacity:     l.Capacity,
		State:        string(state),
		Equipment:    l.Equipment,
		OpeningHours: l.OpeningHours,
		Images:       l.Images,
		ModifiedBy:   l.ModifiedBy,
	}
}

func labToDomain(l dao.Laboratory) domain.Laboratory {
	equipment := l.Equipment
	if equipment == nil {
		equipment = []string{}
	}
	images := l.Images
	if images == nil {
		images = []string{}
	}
	hours := l.OpeningHours
	if hours == nil {
		hours = map[string]string{}
	}

	return domain.Laboratory{
		ID:           l.ID,
		Name:         l.Name,
		Code:         l.Code,
		Location:     l.Location,
		Capacity:     l.Capacity,
		State:        domain.LaboratoryState(l.State),
		Equipment:    equipment,
		OpeningHours: hours,
		Images:       images,
		ModifiedBy:   l.ModifiedBy,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func labsToDomain(ls []dao.Laboratory) []domain.Laboratory {
	labs := make([]domain.Laboratory, 0, len(ls))
	for _, l := range ls {
		labs = append(labs, labToDomain(l))
	}

	return labs
}
