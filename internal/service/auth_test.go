package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/repository"
)

type fakeAuthUserRepo struct {
	byEmail map[string]domain.User
	nextID  uint
}

func newFakeAuthUserRepo() *fakeAuthUserRepo {
	return &fakeAuthUserRepo{byEmail: map[string]domain.User{}, nextID: 1}
}

func (f *fakeAuthUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, exists := f.byEmail[user.Email]; exists {
		return domain.User{}, repository.ErrUserEmailExists
	}

	user.ID = f.nextID
	f.nextID++
	f.byEmail[user.Email] = user

	return user, nil
}

func (f *fakeAuthUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeAuthUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeAuthUserRepo()
	repo.byEmail["teacher@university.edu"] = domain.User{
		ID:       7,
		Email:    "teacher@university.edu",
		Password: mustHash(t, "passw0rd"),
		Role:     domain.RoleTeacher,
		Active:   true,
	}
	repo.byEmail["gone@university.edu"] = domain.User{
		ID:       8,
		Email:    "gone@university.edu",
		Password: mustHash(t, "passw0rd"),
		Role:     domain.RoleTeacher,
		Active:   false,
	}

	svc := NewAuthService(repo)

	t.Run("happy path", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "teacher@university.edu", "passw0rd")
		require.NoError(t, err)
		assert.Equal(t, uint(7), user.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@university.edu", "passw0rd")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "teacher@university.edu", "wrong")
		require.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("deactivated account with correct password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "gone@university.edu", "passw0rd")
		require.ErrorIs(t, err, ErrUserDeactivated)
	})
}

func TestAuthService_RegisterAuxiliary(t *testing.T) {
	repo := newFakeAuthUserRepo()
	svc := NewAuthService(repo)

	created, err := svc.RegisterAuxiliary(context.Background(), domain.User{
		Email:    "aux@university.edu",
		Password: "passw0rd",
		Name:     "Alex Auxiliary",
		Role:     domain.RoleAdmin, // must be ignored
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleAuxiliary, created.Role)
	assert.Equal(t, domain.UserActive, created.Status)
	assert.True(t, created.Active)
	assert.NotEqual(t, "passw0rd", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("passw0rd")))

	_, err = svc.RegisterAuxiliary(context.Background(), domain.User{
		Email:    "aux@university.edu",
		Password: "passw0rd",
		Name:     "Duplicate",
	})
	require.ErrorIs(t, err, ErrUserEmailExists)
}
