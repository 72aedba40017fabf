package repository

import (
	"context"
	"fmt"

	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/repository/dao"
)

var ErrLostItemNotFound = dao.ErrLostItemNotFound

type LostItemDAO interface {
	Insert(ctx context.Context, item dao.LostItem) (dao.LostItem, error)
	FindByID(ctx context.Context, id uint) (dao.LostItem, error)
	Find(ctx context.Context, state string, labID uint) ([]dao.LostItem, error)
	Update(ctx context.Context, id uint, updates map[string]any) (dao.LostItem, error)
	Delete(ctx context.Context, id uint) error
}

type LostItemRepository struct {
	dao LostItemDAO
}

func NewLostItemRepository(dao LostItemDAO) *LostItemRepository {
	return &LostItemRepository{
		dao: dao,
	}
}

func (r *LostItemRepository) Create(ctx context.Context, item domain.LostItem) (domain.LostItem, error) {
	state := item.State
	if state == "" {
		state = domain.LostItemStored
	}

	created, err := r.dao.Insert(ctx, dao.LostItem{
		Description:  item.Description,
		LaboratoryID: item.LaboratoryID,
		FoundBy:      item.FoundBy,
		FoundAt:      item.FoundAt,
		State:        string(state),
		Notes:        item.Notes,
	})
	if err != nil {
		return domain.LostItem{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return lostItemToDomain(created), nil
}

func (r *LostItemRepository) FindByID(ctx context.Context, id uint) (domain.LostItem, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.LostItem{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return lostItemToDomain(found), nil
}

func (r *LostItemRepository) Find(ctx context.Context, state domain.LostItemState, labID uint) ([]domain.LostItem, error) {
	found, err := r.dao.Find(ctx, string(state), labID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	items := make([]domain.LostItem, 0, len(found))
	for _, item := range found {
		items = append(items, lostItemToDomain(item))
	}

	return items, nil
}

func (r *LostItemRepository) Update(ctx context.Context, id uint, updates map[string]any) (domain.LostItem, error) {
	updated, err := r.dao.Update(ctx, id, updates)
	if err != nil {
		return domain.LostItem{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return lostItemToDomain(updated), nil
}

func (r *LostItemRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func lostItemToDomain(item dao.LostItem) domain.LostItem {
	return domain.LostItem{
		ID:           item.ID,
		Description:  item.Description,
		LaboratoryID: item.LaboratoryID,
		FoundBy:      item.FoundBy,
		FoundAt:      item.FoundAt,
		State:        domain.LostItemState(item.State),
		DeliveredTo:  item.DeliveredTo,
		DeliveredAt:  item.DeliveredAt,
		Notes:        item.Notes,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}
