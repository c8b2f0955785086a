package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-foodorder/models"
)

func TestStateStartsLoading(t *testing.T) {
	s := NewState()

	assert.True(t, s.IsLoading())
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())

	s.SetLoading(false)
	assert.False(t, s.IsLoading())
}

func TestLoginAndLogout(t *testing.T) {
	s := NewState()

	s.Login(models.User{ID: "u1", Name: "Ada"}, "access-1", "refresh-1")

	assert.True(t, s.IsAuthenticated())
	assert.False(t, s.IsLoading())
	assert.Equal(t, "access-1", s.AccessToken())
	assert.Equal(t, "refresh-1", s.RefreshToken())
	require.NotNil(t, s.User())
	assert.Equal(t, "Ada", s.User().Name)

	s.Logout()

	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
	assert.Empty(t, s.AccessToken())
	assert.Empty(t, s.RefreshToken())
}

func TestUserReturnsCopy(t *testing.T) {
	s := NewState()
	s.Login(models.User{ID: "u1", Name: "Ada"}, "access-1", "refresh-1")

	u := s.User()
	u.Name = "mutated"

	assert.Equal(t, "Ada", s.User().Name)
}

func TestUpdateUserOnlyWhenAuthenticated(t *testing.T) {
	s := NewState()

	s.UpdateUser(models.User{ID: "u1", Name: "Ada"})
	assert.Nil(t, s.User())

	s.Login(models.User{ID: "u1", Name: "Ada"}, "access-1", "refresh-1")
	s.UpdateUser(models.User{ID: "u1", Name: "Ada", Phone: "0700000000"})
	assert.Equal(t, "0700000000", s.User().Phone)
}

func TestInvalidateLogsOut(t *testing.T) {
	s := NewState()
	s.Login(models.User{ID: "u1"}, "access-1", "refresh-1")

	s.Invalidate()

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.AccessToken())
}

func TestSetAccessTokenReplacesCredential(t *testing.T) {
	s := NewState()
	s.Login(models.User{ID: "u1"}, "access-1", "refresh-1")

	s.SetAccessToken("access-2")

	assert.Equal(t, "access-2", s.AccessToken())
	assert.True(t, s.IsAuthenticated())
}
