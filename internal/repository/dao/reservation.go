package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrStateNotPending is returned when a conditional state
	// transition finds zero matching rows: the reservation either
	// never existed or has already left pending.
	ErrStateNotPending = errors.New("reservation is not pending")
)

const reservationPending = "pending"

type Reservation struct {
	ID uint `gorm:"primaryKey"`

	TeacherID uint `gorm:"not null;index"`
	Teacher   User `gorm:"foreignKey:TeacherID"`

	LaboratoryID uint       `gorm:"not null;index:idx_reservations_lab_date"`
	Laboratory   Laboratory `gorm:"foreignKey:LaboratoryID"`

	Date      string `gorm:"type:varchar(10);not null;index:idx_reservations_lab_date"`
	StartTime string `gorm:"type:varchar(5);not null"`
	EndTime   string `gorm:"type:varchar(5);not null"`

	Subject     string `gorm:"not null"`
	Description string

	State           string `gorm:"not null;default:pending;index"`
	RejectionReason string
	ApprovedBy      *uint
	ApprovedAt      *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ReservationDAO struct {
	db *gorm.DB
}

func NewReservationDAO(db *gorm.DB) *ReservationDAO {
	return &ReservationDAO{
		db: db,
	}
}

func (d *ReservationDAO) Insert(ctx context.Context, r Reservation) (Reservation, error) {
	result := d.db.WithContext(ctx).Create(&r)
	if result.Error != nil {
		return Reservation{}, result.Error
	}

	return r, nil
}

func (d *ReservationDAO) FindByID(ctx context.Context, id uint) (Reservation, error) {
	var r Reservation

	result := d.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Laboratory").
		First(&r, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Reservation{}, ErrReservationNotFound
		}

		return Reservation{}, result.Error
	}

	return r, nil
}

// FindByIDAndTeacher scopes the lookup to the owning teacher; a miss is
// indistinguishable from a missing row on purpose.
func (d *ReservationDAO) FindByIDAndTeacher(ctx context.Context, id, teacherID uint) (Reservation, error) {
	var r Reservation

	result := d.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Laboratory").
		First(&r, "id = ? AND teacher_id = ?", id, teacherID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Reservation{}, ErrReservationNotFound
		}

		return Reservation{}, result.Error
	}

	return r, nil
}

func (d *ReservationDAO) listQuery(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Laboratory").
		Order("date DESC").
		Order("start_time DESC")
}

func (d *ReservationDAO) FindAll(ctx context.Context) ([]Reservation, error) {
	var rs []Reservation

	result := d.listQuery(ctx).Find(&rs)
	if result.Error != nil {
		return nil, result.Error
	}

	return rs, nil
}

func (d *ReservationDAO) FindByTeacherID(ctx context.Context, teacherID uint) ([]Reservation, error) {
	var rs []Reservation

	result := d.listQuery(ctx).Where("teacher_id = ?", teacherID).Find(&rs)
	if result.Error != nil {
		return nil, result.Error
	}

	return rs, nil
}

func (d *ReservationDAO) FindByState(ctx context.Context, state string) ([]Reservation, error) {
	var rs []Reservation

	result := d.listQuery(ctx).Where("state = ?", state).Find(&rs)
	if result.Error != nil {
		return nil, result.Error
	}

	return rs, nil
}

// CountApprovedOverlapping counts approved reservations for the same
// laboratory and date whose [start_time, end_time) interval intersects
// the given one. Half-open semantics: touching slots do not collide.
// excludeID skips the reservation under decision itself.
func (d *ReservationDAO) CountApprovedOverlapping(ctx context.Context, labID uint, date, startTime, endTime string, excludeID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Reservation{}).
		Where("laboratory_id = ? AND date = ? AND state = ?", labID, date, "approved").
		Where("id <> ?", excludeID).
		Where("start_time < ? AND end_time > ?", endTime, startTime).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// UpdateStateFromPending performs the compare-and-swap transition: the
// UPDATE only matches while the row is still pending, so two concurrent
// decisions cannot both win.
func (d *ReservationDAO) UpdateStateFromPending(ctx context.Context, id uint, updates map[string]any) error {
	result := d.db.WithContext(ctx).
		Model(&Reservation{}).
		Where("id = ? AND state = ?", id, reservationPending).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStateNotPending
	}

	return nil
}

func (d *ReservationDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Reservation{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func (d *ReservationDAO) CountActiveByTeacher(ctx context.Context, teacherID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Reservation{}).
		Where("teacher_id = ? AND state IN ?", teacherID, []string{"pending", "approved"}).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

type stateCount struct {
	State string
	Total int64
}

// CountStatesByTeacher aggregates the teacher's reservation history per
// state in a single query.
func (d *ReservationDAO) CountStatesByTeacher(ctx context.Context, teacherID uint) (map[string]int64, error) {
	var rows []stateCount

	result := d.db.WithContext(ctx).
		Model(&Reservation{}).
		Select("state, COUNT(*) as total").
		Where("teacher_id = ?", teacherID).
		Group("state").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.State] = row.Total
	}

	return counts, nil
}
