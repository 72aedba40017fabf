package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrLogbookNotFound  = errors.New("logbook not found")
)

type Template struct {
	ID uint `gorm:"primaryKey"`

	Name       string   `gorm:"not null"`
	Attributes []string `gorm:"serializer:json"`
	Active     bool     `gorm:"not null;default:true"`
	CreatedBy  uint     `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Logbook struct {
	ID uint `gorm:"primaryKey"`

	Name         string   `gorm:"not null"`
	TemplateID   uint     `gorm:"not null;index"`
	Template     Template `gorm:"foreignKey:TemplateID"`
	LaboratoryID uint     `gorm:"not null;index"`
	AuxiliaryID  uint     `gorm:"not null;index"`

	Attributes []string            `gorm:"serializer:json"`
	Grid       []map[string]string `gorm:"serializer:json"`
	Summary    string

	State string `gorm:"not null;default:open"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type LogbookDAO struct {
	db *gorm.DB
}

func NewLogbookDAO(db *gorm.DB) *LogbookDAO {
	return &LogbookDAO{
		db: db,
	}
}

func (d *LogbookDAO) InsertTemplate(ctx context.Context, t Template) (Template, error) {
	result := d.db.WithContext(ctx).Create(&t)
	if result.Error != nil {
		return Template{}, result.Error
	}

	return t, nil
}

func (d *LogbookDAO) FindTemplateByID(ctx context.Context, id uint) (Template, error) {
	var t Template

	result := d.db.WithContext(ctx).First(&t, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Template{}, ErrTemplateNotFound
		}

		return Template{}, result.Error
	}

	return t, nil
}

func (d *LogbookDAO) FindActiveTemplates(ctx context.Context) ([]Template, error) {
	var ts []Template

	result := d.db.WithContext(ctx).Where("active = ?", true).Order("name ASC").Find(&ts)
	if result.Error != nil {
		return nil, result.Error
	}

	return ts, nil
}

func (d *LogbookDAO) UpdateTemplate(ctx context.Context, id uint, updates map[string]any) (Template, error) {
	result := d.db.WithContext(ctx).Model(&Template{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return Template{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Template{}, ErrTemplateNotFound
	}

	return d.FindTemplateByID(ctx, id)
}

// DeactivateTemplate is the soft delete: the row stays so existing
// logbooks keep their template reference.
func (d *LogbookDAO) DeactivateTemplate(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).
		Model(&Template{}).
		Where("id = ?", id).
		Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

func (d *LogbookDAO) Insert(ctx context.Context, lb Logbook) (Logbook, error) {
	result := d.db.WithContext(ctx).Create(&lb)
	if result.Error != nil {
		return Logbook{}, result.Error
	}

	return lb, nil
}

func (d *LogbookDAO) FindByID(ctx context.Context, id uint) (Logbook, error) {
	var lb Logbook

	result := d.db.WithContext(ctx).First(&lb, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Logbook{}, ErrLogbookNotFound
		}

		return Logbook{}, result.Error
	}

	return lb, nil
}

func (d *LogbookDAO) FindAll(ctx context.Context) ([]Logbook, error) {
	var lbs []Logbook

	result := d.db.WithContext(ctx).Order("created_at DESC").Find(&lbs)
	if result.Error != nil {
		return nil, result.Error
	}

	return lbs, nil
}

func (d *LogbookDAO) FindByAuxiliaryID(ctx context.Context, auxiliaryID uint) ([]Logbook, error) {
	var lbs []Logbook

	result := d.db.WithContext(ctx).
		Where("auxiliary_id = ?", auxiliaryID).
		Order("created_at DESC").
		Find(&lbs)
	if result.Error != nil {
		return nil, result.Error
	}

	return lbs, nil
}

func (d *LogbookDAO) Update(ctx context.Context, id uint, updates map[string]any) (Logbook, error) {
	result := d.db.WithContext(ctx).Model(&Logbook{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return Logbook{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Logbook{}, ErrLogbookNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *LogbookDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Logbook{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLogbookNotFound
	}

	return nil
}
