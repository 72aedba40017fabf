package repository

import (
	"context"
	"fmt"

	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserCodeExists  = dao.ErrUserCodeExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	InsertTeacher(ctx context.Context, user dao.User, profile dao.TeacherProfile) (dao.User, dao.TeacherProfile, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindByIDAndRole(ctx context.Context, id uint, role string) (dao.User, error)
	FindByRole(ctx context.Context, role string) ([]dao.User, error)
	Update(ctx context.Context, id uint, updates map[string]any) (dao.User, error)
	DeleteTeacher(ctx context.Context, userID uint) error
	DeleteAuxiliary(ctx context.Context, userID uint) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, userToDAO(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return userToDomain(created), nil
}

// CreateTeacher inserts the user row and teacher profile atomically.
func (r *UserRepository) CreateTeacher(ctx context.Context, user domain.User, createdBy uint) (domain.User, error) {
	profile := dao.TeacherProfile{
		Code:      user.Code,
		CreatedBy: createdBy,
	}

	created, _, err := r.dao.InsertTeacher(ctx, userToDAO(user), profile)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.InsertTeacher -> %w", err)
	}

	return userToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return userToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return userToDomain(found), nil
}

func (r *UserRepository) FindByIDAndRole(ctx context.Context, id uint, role domain.Role) (domain.User, error) {
	found, err := r.dao.FindByIDAndRole(ctx, id, role.String())
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByIDAndRole -> %w", err)
	}

	return userToDomain(found), nil
}

func (r *UserRepository) FindByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	found, err := r.dao.FindByRole(ctx, role.String())
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByRole -> %w", err)
	}

	users := make([]domain.User, 0, len(found))
	for _, u := range found {
		users = append(users, userToDomain(u))
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, id uint, updates map[string]any) (domain.User, error) {
	updated, err := r.dao.Update(ctx, id, updates)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return userToDomain(updated), nil
}

func (r *UserRepository) DeleteTeacher(ctx context.Context, userID uint) error {
	if err := r.dao.DeleteTeacher(ctx, userID); err != nil {
		return fmt.Errorf("r.dao.DeleteTeacher -> %w", err)
	}

	return nil
}

func (r *UserRepository) DeleteAuxiliary(ctx context.Context, userID uint) error {
	if err := r.dao.DeleteAuxiliary(ctx, userID); err != nil {
		return fmt.Errorf("r.dao.DeleteAuxiliary -> %w", err)
	}

	return nil
}

func userToDAO(u domain.User) dao.User {
	var code *string
	if u.Code != "" {
		c := u.Code
		code = &c
	}

	status := u.Status
	if status == "" {
		status = domain.UserActive
	}

	return dao.User{
		ID:       u.ID,
		Email:    u.Email,
		Password: u.Password,
		Name:     u.Name,
		Role:     u.Role.String(),
		Code:     code,
		Phone:    u.Phone,
		Status:   string(status),
		Active:   u.Active,
	}
}

func userToDomain(u dao.User) domain.User {
	var code string
	if u.Code != nil {
		code = *u.Code
	}

	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		Role:      domain.Role(u.Role),
		Code:      code,
		Phone:     u.Phone,
		Status:    domain.UserStatus(u.Status),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
