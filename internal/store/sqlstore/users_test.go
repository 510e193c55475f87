package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maelvns/featherpost-be/internal/models"
)

func TestSaveAndGetUser(t *testing.T) {
	s := newTestStore(t)

	u := mustCreateUser(t, s, "user1")

	got, err := s.GetUser(u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "user1", got.Login)
	require.Equal(t, "user1@yopmail.com", got.Email)
	require.Equal(t, "hash-user1", got.PasswordHash)
}

func TestGetUserAbsent(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetUser(12345)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGetUserByUniqueField(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "user1")

	byLogin, err := s.GetUserByLogin("user1")
	require.NoError(t, err)
	require.NotNil(t, byLogin)
	require.Equal(t, u.ID, byLogin.ID)

	byEmail, err := s.GetUserByEmail("user1@yopmail.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	require.Equal(t, u.ID, byEmail.ID)

	missing, err := s.GetUserByLogin("nobody")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestSaveUserOverwrites(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "user1")

	u.Email = "new@yopmail.com"
	u.Avatar = "http://img.example/a.png"
	require.NoError(t, s.SaveUser(u))

	got, err := s.GetUser(u.ID)
	require.NoError(t, err)
	require.Equal(t, "new@yopmail.com", got.Email)
	require.Equal(t, "http://img.example/a.png", got.Avatar)

	n, err := s.CountUsers()
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestListUsersPaging(t *testing.T) {
	s := newTestStore(t)
	var created []models.User
	for _, login := range []string{"user1", "user2", "user3"} {
		created = append(created, *mustCreateUser(t, s, login))
	}

	page, err := s.ListUsers(2, "")
	require.NoError(t, err)
	require.Len(t, page.Users, 2)
	require.NotEmpty(t, page.Cursor)
	require.Equal(t, created[0].ID, page.Users[0].ID)
	require.Equal(t, created[1].ID, page.Users[1].ID)

	rest, err := s.ListUsers(2, page.Cursor)
	require.NoError(t, err)
	require.Len(t, rest.Users, 1)
	require.Empty(t, rest.Cursor)
	require.Equal(t, created[2].ID, rest.Users[0].ID)
}

func TestDeleteUser(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "user1")

	require.NoError(t, s.DeleteUser(u.ID))

	got, err := s.GetUser(u.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	// Deleting again is a no-op, not an error.
	require.NoError(t, s.DeleteUser(u.ID))
}
