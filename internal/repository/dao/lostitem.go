package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrLostItemNotFound = errors.New("lost item not found")

type LostItem struct {
	ID uint `gorm:"primaryKey"`

	Description  string `gorm:"not null"`
	LaboratoryID uint   `gorm:"not null;index"`
	FoundBy      uint   `gorm:"not null"`
	FoundAt      string `gorm:"type:varchar(10);not null"`

	State       string `gorm:"not null;default:stored;index"`
	DeliveredTo string
	DeliveredAt *time.Time
	Notes       string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type LostItemDAO struct {
	db *gorm.DB
}

func NewLostItemDAO(db *gorm.DB) *LostItemDAO {
	return &LostItemDAO{
		db: db,
	}
}

func (d *LostItemDAO) Insert(ctx context.Context, item LostItem) (LostItem, error) {
	result := d.db.WithContext(ctx).Create(&item)
	if result.Error != nil {
		return LostItem{}, result.Error
	}

	return item, nil
}

func (d *LostItemDAO) FindByID(ctx context.Context, id uint) (LostItem, error) {
	var item LostItem

	result := d.db.WithContext(ctx).First(&item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return LostItem{}, ErrLostItemNotFound
		}

		return LostItem{}, result.Error
	}

	return item, nil
}

// Find lists items newest first, optionally filtered by state and/or
// laboratory.
func (d *LostItemDAO) Find(ctx context.Context, state string, labID uint) ([]LostItem, error) {
	query := d.db.WithContext(ctx).Order("created_at DESC")
	if state != "" {
		query = query.Where("state = ?", state)
	}
	if labID != 0 {
		query = query.Where("laboratory_id = ?", labID)
	}

	var items []LostItem
	result := query.Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

func (d *LostItemDAO) Update(ctx context.Context, id uint, updates map[string]any) (LostItem, error) {
	result := d.db.WithContext(ctx).Model(&LostItem{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return LostItem{}, result.Error
	}
	if result.RowsAffected == 0 {
		return LostItem{}, ErrLostItemNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *LostItemDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&LostItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLostItemNotFound
	}

	return nil
}
