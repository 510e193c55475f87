package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maelvns/featherpost-be/internal/auth"
	"github.com/maelvns/featherpost-be/internal/database"
	"github.com/maelvns/featherpost-be/internal/models"
	"github.com/maelvns/featherpost-be/internal/store/sqlstore"
)

// fakeBlob stores blobs in memory and serves them from a fixed base URL.
type fakeBlob struct {
	saved   map[string][]byte
	deleted []string
	putErr  error
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{saved: map[string][]byte{}}
}

func (f *fakeBlob) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	f.saved[key] = data
	return "http://blobs.local/" + key, nil
}

func (f *fakeBlob) Delete(_ context.Context, key string) error {
	delete(f.saved, key)
	f.deleted = append(f.deleted, key)
	return nil
}

// checkerFunc adapts a function to the imagecheck.Checker interface.
type checkerFunc func(url string) bool

func (f checkerFunc) IsImageURL(url string) bool { return f(url) }

// acceptBlobURLs treats anything under the fake blob host or an /img/ path
// as a real image.
func acceptBlobURLs(url string) bool {
	return strings.HasPrefix(url, "http://blobs.local/") || strings.Contains(url, "/img/")
}

type testServices struct {
	store    *sqlstore.SQLStore
	blobs    *fakeBlob
	tokens   *auth.TokenService
	users    *UserService
	messages *MessageService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	st := sqlstore.New(db)
	blobs := newFakeBlob()
	tokens := auth.NewTokenService("service-test-secret")
	return &testServices{
		store:    st,
		blobs:    blobs,
		tokens:   tokens,
		users:    NewUserService(st, blobs, checkerFunc(acceptBlobURLs), tokens),
		messages: NewMessageService(st, nil),
	}
}

func (ts *testServices) mustCreateUser(t *testing.T, login string) *models.User {
	t.Helper()
	u := &models.User{Login: login, Password: "pass1", Email: login + "@yopmail.com"}
	_, err := ts.users.Create(u)
	require.NoError(t, err)
	stored, err := ts.store.GetUser(u.ID)
	require.NoError(t, err)
	return stored
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var apiErr *models.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, code, apiErr.Code)
	require.Equal(t, status, apiErr.Status)
}
