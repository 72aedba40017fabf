package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrLaboratoryNotFound   = errors.New("laboratory not found")
	ErrLaboratoryCodeExists = errors.New("laboratory code already exists")
)

type Laboratory struct {
	ID uint `gorm:"primaryKey"`

	Name     string `gorm:"not null"`
	Code     string `gorm:"unique;not null"`
	Location string
	Capacity int
	State    string `gorm:"not null;default:active"`

	// Structured in the domain, JSON text in the column.
	Equipment    []string          `gorm:"serializer:json"`
	OpeningHours map[string]string `gorm:"serializer:json"`
	Images       []string          `gorm:"serializer:json"`

	ModifiedBy uint

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type LaboratoryDAO struct {
	db *gorm.DB
}

func NewLaboratoryDAO(db *gorm.DB) *LaboratoryDAO {
	return &LaboratoryDAO{
		db: db,
	}
}

func (d *LaboratoryDAO) Insert(ctx context.Context, lab Laboratory) (Laboratory, error) {
	result := d.db.WithContext(ctx).Create(&lab)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) &&
			pgErr.Code == pgerrcode.UniqueViolation &&
			strings.Contains(pgErr.ConstraintName, "code") {
			return Laboratory{}, ErrLaboratoryCodeExists
		}

		return Laboratory{}, result.Error
	}

	return lab, nil
}

func (d *LaboratoryDAO) FindByID(ctx context.Context, id uint) (Laboratory, error) {
	var lab Laboratory

	result := d.db.WithContext(ctx).First(&lab, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Laboratory{}, ErrLaboratoryNotFound
		}

		return Laboratory{}, result.Error
	}

	return lab, nil
}

func (d *LaboratoryDAO) FindAll(ctx context.Context) ([]Laboratory, error) {
	var labs []Laboratory

	result := d.db.WithContext(ctx).Order("created_at DESC").Find(&labs)
	if result.Error != nil {
		return nil, result.Error
	}

	return labs, nil
}

func (d *LaboratoryDAO) FindByIDs(ctx context.Context, ids []uint) ([]Laboratory, error) {
	var labs []Laboratory

	result := d.db.WithContext(ctx).Where("id IN ?", ids).Order("created_at DESC").Find(&labs)
	if result.Error != nil {
		return nil, result.Error
	}

	return labs, nil
}

func (d *LaboratoryDAO) Update(ctx context.Context, id uint, updates map[string]any) (Laboratory, error) {
	result := d.db.WithContext(ctx).Model(&Laboratory{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) &&
			pgErr.Code == pgerrcode.UniqueViolation &&
			strings.Contains(pgErr.ConstraintName, "code") {
			return Laboratory{}, ErrLaboratoryCodeExists
		}

		return Laboratory{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Laboratory{}, ErrLaboratoryNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *LaboratoryDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Laboratory{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLaboratoryNotFound
	}

	return nil
}
