package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserEmailExists = errors.New("email already registered")
	ErrUserCodeExists  = errors.New("code already registered")
	ErrUserNotFound    = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`
	Name     string `gorm:"not null"`
	Role     string `gorm:"not null;index"`

	// Code is the institutional teacher code; null for other roles so
	// the unique constraint only bites where a code exists.
	Code  *string `gorm:"unique"`
	Phone string

	Status string `gorm:"not null;default:active"`
	Active bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TeacherProfile struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex;not null"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Code      string    `gorm:"unique;not null"`
	CreatedBy uint      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

// mapUniqueViolation turns postgres unique-constraint failures into the
// package sentinels so upper layers never inspect driver errors.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return ErrUserEmailExists
		}
		if strings.Contains(pgErr.ConstraintName, "code") {
			return ErrUserCodeExists
		}
	}

	return err
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		return User{}, mapUniqueViolation(result.Error)
	}

	return user, nil
}

// InsertTeacher creates the user row and its teacher profile in one
// transaction so a half-created teacher can never be observed.
func (d *UserDAO) InsertTeacher(ctx context.Context, user User, profile TeacherProfile) (User, TeacherProfile, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		profile.UserID = user.ID
		return tx.Create(&profile).Error
	})
	if err != nil {
		return User{}, TeacherProfile{}, mapUniqueViolation(err)
	}

	return user, profile, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByIDAndRole(ctx context.Context, id uint, role string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "id = ? AND role = ?", id, role)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByRole(ctx context.Context, role string) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Where("role = ?", role).Order("name ASC").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// Update applies a sparse column map; Touch of updated_at is left to gorm.
func (d *UserDAO) Update(ctx context.Context, id uint, updates map[string]any) (User, error) {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return User{}, mapUniqueViolation(result.Error)
	}
	if result.RowsAffected == 0 {
		return User{}, ErrUserNotFound
	}

	return d.FindByID(ctx, id)
}

// DeleteTeacher removes a teacher user with its profile and reservation
// rows in one transaction. The caller is responsible for the
// active-reservations guard.
func (d *UserDAO) DeleteTeacher(ctx context.Context, userID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("teacher_id = ?", userID).Delete(&Reservation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&TeacherProfile{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&User{}, userID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
}

// DeleteAuxiliary removes an auxiliary user along with its laboratory
// assignments and schedule windows.
func (d *UserDAO) DeleteAuxiliary(ctx context.Context, userID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("auxiliary_id = ?", userID).Delete(&AuxiliaryAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("auxiliary_id = ?", userID).Delete(&ScheduleWindow{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&User{}, userID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
}
