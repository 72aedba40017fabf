package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type AuxiliaryAssignment struct {
	ID uint `gorm:"primaryKey"`

	AuxiliaryID  uint       `gorm:"not null;uniqueIndex:idx_aux_lab"`
	LaboratoryID uint       `gorm:"not null;uniqueIndex:idx_aux_lab"`
	Laboratory   Laboratory `gorm:"foreignKey:LaboratoryID"`

	CreatedBy uint      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type ScheduleWindow struct {
	ID uint `gorm:"primaryKey"`

	AuxiliaryID uint   `gorm:"not null;index"`
	Day         string `gorm:"not null"`
	StartTime   string `gorm:"type:varchar(5);not null"`
	EndTime     string `gorm:"type:varchar(5);not null"`

	CreatedBy uint      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type AuxiliaryDAO struct {
	db *gorm.DB
}

func NewAuxiliaryDAO(db *gorm.DB) *AuxiliaryDAO {
	return &AuxiliaryDAO{
		db: db,
	}
}

// ReplaceAssignments swaps the auxiliary's full laboratory assignment
// set atomically: drop the old links, insert the new ones.
func (d *AuxiliaryDAO) ReplaceAssignments(ctx context.Context, auxiliaryID uint, labIDs []uint, createdBy uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("auxiliary_id = ?", auxiliaryID).Delete(&AuxiliaryAssignment{}).Error; err != nil {
			return err
		}

		for _, labID := range labIDs {
			assignment := AuxiliaryAssignment{
				AuxiliaryID:  auxiliaryID,
				LaboratoryID: labID,
				CreatedBy:    createdBy,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (d *AuxiliaryDAO) ReplaceSchedules(ctx context.Context, auxiliaryID uint, windows []ScheduleWindow, createdBy uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("auxiliary_id = ?", auxiliaryID).Delete(&ScheduleWindow{}).Error; err != nil {
			return err
		}

		for i := range windows {
			windows[i].ID = 0
			windows[i].AuxiliaryID = auxiliaryID
			windows[i].CreatedBy = createdBy
			if err := tx.Create(&windows[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (d *AuxiliaryDAO) FindAssignments(ctx context.Context, auxiliaryID uint) ([]AuxiliaryAssignment, error) {
	var assignments []AuxiliaryAssignment

	result := d.db.WithContext(ctx).
		Preload("Laboratory").
		Where("auxiliary_id = ?", auxiliaryID).
		Find(&assignments)
	if result.Error != nil {
		return nil, result.Error
	}

	return assignments, nil
}

func (d *AuxiliaryDAO) FindSchedules(ctx context.Context, auxiliaryID uint) ([]ScheduleWindow, error) {
	var windows []ScheduleWindow

	result := d.db.WithContext(ctx).
		Where("auxiliary_id = ?", auxiliaryID).
		Order("id ASC").
		Find(&windows)
	if result.Error != nil {
		return nil, result.Error
	}

	return windows, nil
}

// HasAssignment reports whether the auxiliary is linked to the given
// laboratory; used to scope reservation detail reads.
func (d *AuxiliaryDAO) HasAssignment(ctx context.Context, auxiliaryID, labID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&AuxiliaryAssignment{}).
		Where("auxiliary_id = ? AND laboratory_id = ?", auxiliaryID, labID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *AuxiliaryDAO) AssignedLaboratoryIDs(ctx context.Context, auxiliaryID uint) ([]uint, error) {
	var ids []uint

	result := d.db.WithContext(ctx).
		Model(&AuxiliaryAssignment{}).
		Where("auxiliary_id = ?", auxiliaryID).
		Pluck("laboratory_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}
