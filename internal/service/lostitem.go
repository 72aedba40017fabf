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

var ErrLostItemNotFound = repository.ErrLostItemNotFound

type LostItemRepository interface {
	Create(ctx context.Context, item domain.LostItem) (domain.LostItem, error)
	FindByID(ctx context.Context, id uint) (domain.LostItem, error)
	Find(ctx context.Context, state domain.LostItemState, labID uint) ([]domain.LostItem, error)
	Update(ctx context.Context, id uint, updates map[string]any) (domain.LostItem, error)
	Delete(ctx context.Context, id uint) error
}

type LostItemService struct {
	repo LostItemRepository
	labs LaboratoryReader

	now func() time.Time
}

func NewLostItemService(repo LostItemRepository, labs LaboratoryReader) *LostItemService {
	return &LostItemService{
		repo: repo,
		labs: labs,
		now:  time.Now,
	}
}

// Create registers a found object. New items always start stored.
func (s *LostItemService) Create(ctx context.Context, userID uint, item domain.LostItem) (domain.LostItem, error) {
	item.Description = strings.TrimSpace(item.Description)

	if item.Description == "" || item.LaboratoryID == 0 || item.FoundAt == "" {
		return domain.LostItem{}, NewValidationError("description, laboratory and found date are required")
	}
	if _, err := domain.ParseDate(item.FoundAt); err != nil {
		return domain.LostItem{}, NewValidationError("invalid found date format (use YYYY-MM-DD)")
	}

	if _, err := s.labs.FindByID(ctx, item.LaboratoryID); err != nil {
		if errors.Is(err, repository.ErrLaboratoryNotFound) {
			return domain.LostItem{}, ErrLaboratoryNotFound
		}

		return domain.LostItem{}, fmt.Errorf("s.labs.FindByID -> %w", err)
	}

	item.FoundBy = userID
	item.State = domain.LostItemStored
	item.DeliveredTo = ""
	item.DeliveredAt = nil

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return domain.LostItem{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// List filters by state and laboratory; zero values mean no filter.
func (s *LostItemService) List(ctx context.Context, state domain.LostItemState, labID uint) ([]domain.LostItem, error) {
	if state != "" && state != domain.LostItemStored && state != domain.LostItemDelivered {
		return nil, NewValidationError("state must be 'stored' or 'delivered'")
	}

	items, err := s.repo.Find(ctx, state, labID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return items, nil
}

func (s *LostItemService) Get(ctx context.Context, id uint) (domain.LostItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLostItemNotFound) {
			return domain.LostItem{}, ErrLostItemNotFound
		}

		return domain.LostItem{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return item, nil
}

// LostItemUpdate carries the editable item fields; nil leaves a field
// untouched.
type LostItemUpdate struct {
	Description *string
	FoundAt     *string
	Notes       *string
}

func (s *LostItemService) Update(ctx context.Context, id uint, update LostItemUpdate) (domain.LostItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLostItemNotFound) {
			return domain.LostItem{}, ErrLostItemNotFound
		}

		return domain.LostItem{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if item.State == domain.LostItemDelivered {
		return domain.LostItem{}, NewValidationError("delivered items cannot be modified")
	}

	updates := map[string]any{}

	if update.Description != nil {
		description := strings.TrimSpace(*update.Description)
		if description == "" {
			return domain.LostItem{}, NewValidationError("description cannot be empty")
		}
		updates["description"] = description
	}
	if update.FoundAt != nil {
		if _, err := domain.ParseDate(*update.FoundAt); err != nil {
			return domain.LostItem{}, NewValidationError("invalid found date format (use YYYY-MM-DD)")
		}
		updates["found_at"] = *update.FoundAt
	}
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}

	if len(updates) == 0 {
		return domain.LostItem{}, NewValidationError("no fields to update")
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return domain.LostItem{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Deliver hands the item back and records who received it. Delivered is
// terminal.
func (s *LostItemService) Deliver(ctx context.Context, id uint, deliveredTo string) (domain.LostItem, error) {
	deliveredTo = strings.TrimSpace(deliveredTo)
	if deliveredTo == "" {
		return domain.LostItem{}, NewValidationError("recipient is required")
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLostItemNotFound) {
			return domain.LostItem{}, ErrLostItemNotFound
		}

		return domain.LostItem{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if item.State == domain.LostItemDelivered {
		return domain.LostItem{}, NewValidationError("item was already delivered")
	}

	updated, err := s.repo.Update(ctx, id, map[string]any{
		"state":        string(domain.LostItemDelivered),
		"delivered_to": deliveredTo,
		"delivered_at": s.now(),
	})
	if err != nil {
		return domain.LostItem{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *LostItemService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrLostItemNotFound) {
			return ErrLostItemNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
