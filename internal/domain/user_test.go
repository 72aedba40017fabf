package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "auxiliary", "teacher"} {
		role, err := ParseRole(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, role.String())
	}

	_, err := ParseRole("superuser")
	require.ErrorIs(t, err, ErrUnknownRole)

	_, err = ParseRole("")
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestValidUserStatus(t *testing.T) {
	assert.True(t, ValidUserStatus(UserActive))
	assert.True(t, ValidUserStatus(UserVacation))
	assert.True(t, ValidUserStatus(UserOnLeave))
	assert.False(t, ValidUserStatus("retired"))
}

func TestValidWeekday(t *testing.T) {
	assert.True(t, ValidWeekday(Monday))
	assert.True(t, ValidWeekday(Sunday))
	assert.False(t, ValidWeekday("someday"))
}
