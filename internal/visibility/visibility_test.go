package visibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maelvns/featherpost-be/internal/models"
	"github.com/maelvns/featherpost-be/internal/store"
)

func sampleUser() *models.User {
	return &models.User{
		ID:           7,
		Login:        "user7",
		Email:        "user7@yopmail.com",
		PasswordHash: "secret-hash",
	}
}

func TestMaskUserForSelf(t *testing.T) {
	masked := MaskUser(sampleUser(), 7)

	require.Equal(t, "user7@yopmail.com", masked.Email)
	require.Equal(t, Mask, masked.Password)
	require.Empty(t, masked.PasswordHash)
}

func TestMaskUserForOther(t *testing.T) {
	masked := MaskUser(sampleUser(), 8)

	require.Equal(t, Mask, masked.Email)
	require.Equal(t, Mask, masked.Password)
	require.Empty(t, masked.PasswordHash)
}

func TestMaskUserDoesNotMutateOriginal(t *testing.T) {
	u := sampleUser()
	MaskUser(u, 8)

	require.Equal(t, "user7@yopmail.com", u.Email)
	require.Equal(t, "secret-hash", u.PasswordHash)
}

func TestMaskMessage(t *testing.T) {
	m := &models.Message{ID: 1, Text: "hello", Date: time.Now(), User: sampleUser()}

	masked := MaskMessage(m, 8)
	require.Equal(t, "hello", masked.Text)
	require.Equal(t, Mask, masked.User.Email)

	own := MaskMessage(m, 7)
	require.Equal(t, "user7@yopmail.com", own.User.Email)

	require.Nil(t, MaskMessage(nil, 7))
}

func TestCanEditProfile(t *testing.T) {
	require.True(t, CanEditProfile(1, 1))
	require.False(t, CanEditProfile(1, 2))
}

func TestCanModifyMessage(t *testing.T) {
	m := &models.Message{User: &models.User{ID: 3}}

	require.True(t, CanModifyMessage(m, 3))
	require.False(t, CanModifyMessage(m, 4))
	require.False(t, CanModifyMessage(&models.Message{}, 3))
	require.False(t, CanModifyMessage(nil, 3))
}

type fakeFollows struct {
	edges map[[2]int64]bool
}

func (f *fakeFollows) SetFollow(followerID, followedID int64, followed bool) error {
	if f.edges == nil {
		f.edges = map[[2]int64]bool{}
	}
	f.edges[[2]int64{followerID, followedID}] = followed
	return nil
}

func (f *fakeFollows) IsFollowing(followerID, followedID int64) (bool, error) {
	return f.edges[[2]int64{followerID, followedID}], nil
}

func (f *fakeFollows) ListFollowed(int64, int, string) (*store.UserPage, error)  { return nil, nil }
func (f *fakeFollows) ListFollowers(int64, int, string) (*store.UserPage, error) { return nil, nil }

func TestCanViewMessagesOf(t *testing.T) {
	follows := &fakeFollows{}
	require.NoError(t, follows.SetFollow(1, 2, true))

	own, err := CanViewMessagesOf(follows, 5, 5)
	require.NoError(t, err)
	require.True(t, own)

	followed, err := CanViewMessagesOf(follows, 1, 2)
	require.NoError(t, err)
	require.True(t, followed)

	stranger, err := CanViewMessagesOf(follows, 2, 1)
	require.NoError(t, err)
	require.False(t, stranger)
}
