package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/maelvns/featherpost-be/internal/models"
)

func TestCreateUserIssuesToken(t *testing.T) {
	ts := newTestServices(t)

	u := &models.User{Login: "user1", Password: "pass1", Email: "user1@yopmail.com"}
	token, err := ts.users.Create(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := ts.tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, u.ID, id)

	stored, err := ts.store.GetUser(u.ID)
	require.NoError(t, err)
	require.Equal(t, "user1", stored.Login)
	require.Contains(t, stored.Avatar, "gravatar.com/avatar/")
	require.Empty(t, stored.Password)
	require.NotEmpty(t, stored.PasswordHash)

	// The id salts the hash input.
	require.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(stored.PasswordHash),
		[]byte(fmt.Sprintf("%d:pass1", u.ID)),
	))
}

func TestCreateUserFieldValidation(t *testing.T) {
	ts := newTestServices(t)

	cases := []struct {
		name string
		user models.User
		code string
	}{
		{"short login", models.User{Login: "ab", Password: "pass1", Email: "a@b.com"}, "invalidLogin"},
		{"login with spaces", models.User{Login: "user one", Password: "pass1", Email: "a@b.com"}, "invalidLogin"},
		{"long password", models.User{Login: "user1", Password: "waytoolongpassword", Email: "a@b.com"}, "invalidPassword"},
		{"bad email", models.User{Login: "user1", Password: "pass1", Email: "not-an-email"}, "invalidEmail"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := tc.user
			_, err := ts.users.Create(&u)
			requireAPIError(t, err, 400, tc.code)
		})
	}
}

func TestCreateUserDuplicateLogin(t *testing.T) {
	ts := newTestServices(t)
	ts.mustCreateUser(t, "user1")

	dup := &models.User{Login: "user1", Password: "pass1", Email: "other@yopmail.com"}
	_, err := ts.users.Create(dup)
	requireAPIError(t, err, 400, "duplicateLogin")

	// The failed creation must not mutate the store.
	n, err := ts.store.CountUsers()
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ts := newTestServices(t)
	ts.mustCreateUser(t, "user1")

	dup := &models.User{Login: "user2", Password: "pass1", Email: "user1@yopmail.com"}
	_, err := ts.users.Create(dup)
	requireAPIError(t, err, 400, "duplicateEmail")
}

func TestUpdateMergesValidatedFields(t *testing.T) {
	ts := newTestServices(t)
	u := ts.mustCreateUser(t, "user1")

	login := "renamed"
	avatar := "http://pics.example/img/a.png"
	updated, err := ts.users.Update(u, &UserPatch{Login: &login, Avatar: &avatar})
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Login)
	require.Equal(t, avatar, updated.Avatar)

	stored, err := ts.store.GetUser(u.ID)
	require.NoError(t, err)
	require.Equal(t, "renamed", stored.Login)
	require.Equal(t, avatar, stored.Avatar)
}

func TestUpdateFailingFieldAbortsWholeWrite(t *testing.T) {
	ts := newTestServices(t)
	u := ts.mustCreateUser(t, "user1")

	// Login is valid, the email is not: nothing may be persisted.
	login := "renamed"
	email := "not-an-email"
	_, err := ts.users.Update(u, &UserPatch{Login: &login, Email: &email})
	requireAPIError(t, err, 400, "invalidEmail")

	stored, err := ts.store.GetUser(u.ID)
	require.NoError(t, err)
	require.Equal(t, "user1", stored.Login)
	require.Equal(t, "user1@yopmail.com", stored.Email)
}

func TestUpdateRejectsTakenLogin(t *testing.T) {
	ts := newTestServices(t)
	u := ts.mustCreateUser(t, "user1")
	ts.mustCreateUser(t, "user2")

	login := "user2"
	_, err := ts.users.Update(u, &UserPatch{Login: &login})
	requireAPIError(t, err, 400, "duplicateLogin")

	// Re-submitting one's own login is not a duplicate.
	own := "user1"
	_, err = ts.users.Update(u, &UserPatch{Login: &own})
	require.NoError(t, err)
}

func TestUpdateRejectsUnreachableImage(t *testing.T) {
	ts := newTestServices(t)
	u := ts.mustCreateUser(t, "user1")

	avatar := "http://pics.example/not-an-image.txt"
	_, err := ts.users.Update(u, &UserPatch{Avatar: &avatar})
	requireAPIError(t, err, 400, "invalidAvatar")

	cover := "http://pics.example/not-an-image.txt"
	_, err = ts.users.Update(u, &UserPatch{CoverPicture: &cover})
	requireAPIError(t, err, 400, "invalidCoverPicture")
}

func TestUpdatePasswordRehashes(t *testing.T) {
	ts := newTestServices(t)
	u := ts.mustCreateUser(t, "user1")
	oldHash := u.PasswordHash

	password := "pass2"
	updated, err := ts.users.Update(u, &UserPatch{Password: &password})
	require.NoError(t, err)
	require.NotEqual(t, oldHash, updated.PasswordHash)
}

func TestSetFollowedRequiresTarget(t *testing.T) {
	ts := newTestServices(t)
	u := ts.mustCreateUser(t, "user1")

	err := ts.users.SetFollowed(u.ID, 9999, true)
	requireAPIError(t, err, 400, "userNotFound")
}

func TestUploadAvatar(t *testing.T) {
	ts := newTestServices(t)
	u := ts.mustCreateUser(t, "user1")

	url, err := ts.users.UploadAvatar(context.Background(), u, "image/jpeg", []byte("jpeg-bytes"))
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("http://blobs.local/avatar-%d.jpg", u.ID), url)

	stored, err := ts.store.GetUser(u.ID)
	require.NoError(t, err)
	require.Equal(t, url, stored.Avatar)
	require.Equal(t, []byte("jpeg-bytes"), ts.blobs.saved[fmt.Sprintf("avatar-%d.jpg", u.ID)])
}

func TestUploadAvatarUnknownContentType(t *testing.T) {
	ts := newTestServices(t)
	u := ts.mustCreateUser(t, "user1")

	_, err := ts.users.UploadAvatar(context.Background(), u, "application/pdf", []byte("nope"))
	requireAPIError(t, err, 415, "mimetypeError")
}

func TestUploadAvatarWrapsStorageFailure(t *testing.T) {
	ts := newTestServices(t)
	u := ts.mustCreateUser(t, "user1")
	ts.blobs.putErr = models.NewAPIError(502, "cannotSaveImage", "bucket unavailable")

	_, err := ts.users.UploadAvatar(context.Background(), u, "image/png", []byte("png-bytes"))
	requireAPIError(t, err, 502, "cannotSaveImage")
}

func TestDeleteCascades(t *testing.T) {
	ts := newTestServices(t)
	u := ts.mustCreateUser(t, "user1")
	other := ts.mustCreateUser(t, "user2")

	_, err := ts.users.UploadAvatar(context.Background(), u, "image/jpeg", []byte("jpeg-bytes"))
	require.NoError(t, err)
	stored, err := ts.store.GetUser(u.ID)
	require.NoError(t, err)

	_, err = ts.messages.Create(stored, &models.Message{Text: "mine"})
	require.NoError(t, err)
	kept, err := ts.messages.Create(other, &models.Message{Text: "theirs"})
	require.NoError(t, err)

	require.NoError(t, ts.users.Delete(context.Background(), stored))

	gone, err := ts.store.GetUser(u.ID)
	require.NoError(t, err)
	require.Nil(t, gone)

	mine, err := ts.store.ListMessagesByOwner(u.ID)
	require.NoError(t, err)
	require.Empty(t, mine)

	still, err := ts.store.GetMessage(kept.ID)
	require.NoError(t, err)
	require.NotNil(t, still)

	require.Contains(t, ts.blobs.deleted, fmt.Sprintf("avatar-%d.jpg", u.ID))
}
