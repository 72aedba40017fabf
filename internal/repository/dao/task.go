package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("task not found")

type Task struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string

	LaboratoryID uint `gorm:"not null;index"`
	AuxiliaryID  uint `gorm:"not null;index"`

	Priority string `gorm:"not null;default:medium"`
	DueDate  string `gorm:"type:varchar(10)"`

	Tags     []string `gorm:"serializer:json"`
	Evidence []string `gorm:"serializer:json"`

	State       string `gorm:"not null;default:pending"`
	CreatedBy   uint   `gorm:"not null"`
	CompletedAt *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TaskDAO struct {
	db *gorm.DB
}

func NewTaskDAO(db *gorm.DB) *TaskDAO {
	return &TaskDAO{
		db: db,
	}
}

func (d *TaskDAO) Insert(ctx context.Context, task Task) (Task, error) {
	result := d.db.WithContext(ctx).Create(&task)
	if result.Error != nil {
		return Task{}, result.Error
	}

	return task, nil
}

func (d *TaskDAO) FindByID(ctx context.Context, id uint) (Task, error) {
	var task Task

	result := d.db.WithContext(ctx).First(&task, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Task{}, ErrTaskNotFound
		}

		return Task{}, result.Error
	}

	return task, nil
}

func (d *TaskDAO) FindAll(ctx context.Context) ([]Task, error) {
	var tasks []Task

	result := d.db.WithContext(ctx).Order("created_at DESC").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}

	return tasks, nil
}

func (d *TaskDAO) FindByAuxiliaryID(ctx context.Context, auxiliaryID uint) ([]Task, error) {
	var tasks []Task

	result := d.db.WithContext(ctx).
		Where("auxiliary_id = ?", auxiliaryID).
		Order("due_date ASC").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}

	return tasks, nil
}

func (d *TaskDAO) Update(ctx context.Context, id uint, updates map[string]any) (Task, error) {
	result := d.db.WithContext(ctx).Model(&Task{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return Task{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Task{}, ErrTaskNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *TaskDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}
