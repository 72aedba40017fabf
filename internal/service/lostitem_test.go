package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/repository"
)

type fakeLostItemRepo struct {
	byID   map[uint]domain.LostItem
	nextID uint
}

func newFakeLostItemRepo() *fakeLostItemRepo {
	return &fakeLostItemRepo{byID: map[uint]domain.LostItem{}, nextID: 1}
}

func (f *fakeLostItemRepo) seed(item domain.LostItem) domain.LostItem {
	if item.ID == 0 {
		item.ID = f.nextID
		f.nextID++
	}
	f.byID[item.ID] = item

	return item
}

func (f *fakeLostItemRepo) Create(_ context.Context, item domain.LostItem) (domain.LostItem, error) {
	return f.seed(item), nil
}

func (f *fakeLostItemRepo) FindByID(_ context.Context, id uint) (domain.LostItem, error) {
	item, ok := f.byID[id]
	if !ok {
		return domain.LostItem{}, repository.ErrLostItemNotFound
	}

	return item, nil
}

func (f *fakeLostItemRepo) Find(_ context.Context, state domain.LostItemState, labID uint) ([]domain.LostItem, error) {
	var out []domain.LostItem
	for _, item := range f.byID {
		if state != "" && item.State != state {
			continue
		}
		if labID != 0 && item.LaboratoryID != labID {
			continue
		}
		out = append(out, item)
	}

	return out, nil
}

func (f *fakeLostItemRepo) Update(_ context.Context, id uint, updates map[string]any) (domain.LostItem, error) {
	item, ok := f.byID[id]
	if !ok {
		return domain.LostItem{}, repository.ErrLostItemNotFound
	}

	if description, ok := updates["description"].(string); ok {
		item.Description = description
	}
	if state, ok := updates["state"].(string); ok {
		item.State = domain.LostItemState(state)
	}
	if to, ok := updates["delivered_to"].(string); ok {
		item.DeliveredTo = to
	}
	if at, ok := updates["delivered_at"].(time.Time); ok {
		item.DeliveredAt = &at
	}
	f.byID[id] = item

	return item, nil
}

func (f *fakeLostItemRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrLostItemNotFound
	}
	delete(f.byID, id)

	return nil
}

func newTestLostItemService(repo *fakeLostItemRepo) *LostItemService {
	labs := &fakeLabReader{labs: map[uint]domain.Laboratory{
		1: {ID: 1, Name: "Chemistry Lab", Code: "CHEM-1", State: domain.LaboratoryActive},
	}}

	svc := NewLostItemService(repo, labs)
	svc.now = func() time.Time { return testNow }

	return svc
}

func TestLostItemService_Create(t *testing.T) {
	repo := newFakeLostItemRepo()
	svc := newTestLostItemService(repo)

	t.Run("new items start stored", func(t *testing.T) {
		created, err := svc.Create(context.Background(), 5, domain.LostItem{
			Description:  "blue backpack",
			LaboratoryID: 1,
			FoundAt:      "2026-09-10",
			State:        domain.LostItemDelivered, // must be ignored
			DeliveredTo:  "someone",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.LostItemStored, created.State)
		assert.Equal(t, uint(5), created.FoundBy)
		assert.Empty(t, created.DeliveredTo)
		assert.Nil(t, created.DeliveredAt)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Create(context.Background(), 5, domain.LostItem{LaboratoryID: 1, FoundAt: "2026-09-10"})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("bad found date", func(t *testing.T) {
		_, err := svc.Create(context.Background(), 5, domain.LostItem{
			Description: "x", LaboratoryID: 1, FoundAt: "10/09/2026",
		})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("unknown laboratory", func(t *testing.T) {
		_, err := svc.Create(context.Background(), 5, domain.LostItem{
			Description: "x", LaboratoryID: 99, FoundAt: "2026-09-10",
		})
		require.ErrorIs(t, err, ErrLaboratoryNotFound)
	})
}

func TestLostItemService_Deliver(t *testing.T) {
	repo := newFakeLostItemRepo()
	svc := newTestLostItemService(repo)

	seeded := repo.seed(domain.LostItem{
		Description: "blue backpack", LaboratoryID: 1, FoundAt: "2026-09-10",
		State: domain.LostItemStored,
	})

	t.Run("requires a recipient", func(t *testing.T) {
		_, err := svc.Deliver(context.Background(), seeded.ID, "  ")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("records recipient and time", func(t *testing.T) {
		delivered, err := svc.Deliver(context.Background(), seeded.ID, "Jordan Student")
		require.NoError(t, err)
		assert.Equal(t, domain.LostItemDelivered, delivered.State)
		assert.Equal(t, "Jordan Student", delivered.DeliveredTo)
		require.NotNil(t, delivered.DeliveredAt)
		assert.Equal(t, testNow, *delivered.DeliveredAt)
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		_, err := svc.Deliver(context.Background(), seeded.ID, "Someone Else")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Message, "already delivered")

		description := "updated"
		_, err = svc.Update(context.Background(), seeded.ID, LostItemUpdate{Description: &description})
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Message, "cannot be modified")
	})
}

func TestLostItemService_List(t *testing.T) {
	repo := newFakeLostItemRepo()
	svc := newTestLostItemService(repo)

	repo.seed(domain.LostItem{Description: "backpack", LaboratoryID: 1, State: domain.LostItemStored})
	repo.seed(domain.LostItem{Description: "umbrella", LaboratoryID: 2, State: domain.LostItemDelivered})

	t.Run("state filter", func(t *testing.T) {
		items, err := svc.List(context.Background(), domain.LostItemStored, 0)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "backpack", items[0].Description)
	})

	t.Run("laboratory filter", func(t *testing.T) {
		items, err := svc.List(context.Background(), "", 2)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "umbrella", items[0].Description)
	})

	t.Run("unknown state filter", func(t *testing.T) {
		_, err := svc.List(context.Background(), domain.LostItemState("misplaced"), 0)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})
}
