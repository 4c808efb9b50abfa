package admin

import (
	"context"
	"testing"

	"daily-planner-go/internal/apierr"
	"daily-planner-go/internal/repository/inmemory"
	"daily-planner-go/internal/tokenstore"
	"daily-planner-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminAPI struct {
	tokens *tokenstore.Store
	hooks  []func()
	users  []UserRow
	err    error
	calls  int

	noToken bool
}

func (f *fakeAdminAPI) OnUnauthorized(fn func()) { f.hooks = append(f.hooks, fn) }

func (f *fakeAdminAPI) AdminLogin(_ context.Context, username, password string) (LoginResponse, error) {
	f.calls++
	if password != "pw" {
		return LoginResponse{}, &apierr.ServerError{Status: 401, Message: "invalid credentials"}
	}
	if f.noToken {
		return LoginResponse{Admin: Identity{Username: username}}, nil
	}
	return LoginResponse{Token: "adm", Admin: Identity{Username: username}}, nil
}

func (f *fakeAdminAPI) AdminListUsers(ctx context.Context) ([]UserRow, error) {
	f.calls++
	if f.err == apierr.ErrUnauthorized {
		_ = f.tokens.Clear(ctx)
		for _, hook := range f.hooks {
			hook()
		}
	}
	return f.users, f.err
}

func (f *fakeAdminAPI) AdminCreateUser(_ context.Context, input CreateUserInput) (UserRow, error) {
	f.calls++
	return UserRow{ID: 9, Username: input.Username, PhoneNumber: input.PhoneNumber}, f.err
}

func (f *fakeAdminAPI) AdminResetPassword(context.Context, int64, string) error {
	f.calls++
	return f.err
}

func newConsole(t *testing.T) (*Console, *fakeAdminAPI, *inmemory.PrefsStore) {
	t.Helper()
	store := inmemory.NewPrefsStore()
	tokens := tokenstore.New(store, "admin_token")
	api := &fakeAdminAPI{tokens: tokens}
	return NewConsole(api, tokens, store, logger.Nop()), api, store
}

func TestLoginPersistsTokenAndIdentity(t *testing.T) {
	c, _, store := newConsole(t)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, "root", "pw"))

	assert.True(t, c.IsLoggedIn(ctx))
	assert.ElementsMatch(t, []string{"admin_token", KeyIdentity}, store.Keys())

	restored := NewConsole(&fakeAdminAPI{}, tokenstore.New(store, "admin_token"), store, logger.Nop())
	require.True(t, restored.Restore(ctx))
	snap := restored.Snapshot(ctx)
	require.NotNil(t, snap.Admin)
	assert.Equal(t, "root", snap.Admin.Username)
}

func TestLoginFailure(t *testing.T) {
	c, api, store := newConsole(t)
	ctx := context.Background()

	require.Error(t, c.Login(ctx, "root", "nope"))
	assert.False(t, c.IsLoggedIn(ctx))
	assert.Empty(t, store.Keys())
	assert.Equal(t, "invalid credentials", c.Snapshot(ctx).Error)

	require.ErrorIs(t, c.Login(ctx, "", ""), apierr.ErrInvalidInput)
	assert.Equal(t, 1, api.calls)
}

func TestUnauthorizedClearsBothKeys(t *testing.T) {
	c, api, store := newConsole(t)
	ctx := context.Background()
	require.NoError(t, c.Login(ctx, "root", "pw"))

	api.err = apierr.ErrUnauthorized
	require.ErrorIs(t, c.LoadUsers(ctx), apierr.ErrUnauthorized)

	assert.Empty(t, store.Keys())
	assert.False(t, c.IsLoggedIn(ctx))
	assert.Nil(t, c.Snapshot(ctx).Admin)
}

func TestUserManagement(t *testing.T) {
	c, api, _ := newConsole(t)
	ctx := context.Background()
	require.NoError(t, c.Login(ctx, "root", "pw"))

	api.users = []UserRow{{ID: 1, Username: "alice"}}
	require.NoError(t, c.LoadUsers(ctx))

	_, err := c.CreateUser(ctx, CreateUserInput{Username: "bo", PhoneNumber: "139", Password: "secret1"})
	require.ErrorIs(t, err, apierr.ErrInvalidInput)

	created, err := c.CreateUser(ctx, CreateUserInput{Username: " bob ", PhoneNumber: "139", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "bob", created.Username)
	assert.Equal(t, []int64{9, 1}, []int64{c.Users()[0].ID, c.Users()[1].ID})

	require.ErrorIs(t, c.ResetPassword(ctx, 1, "123"), apierr.ErrInvalidInput)
	require.NoError(t, c.ResetPassword(ctx, 1, "secret2"))
}

func TestLogoutForgetsEverything(t *testing.T) {
	c, api, store := newConsole(t)
	ctx := context.Background()
	require.NoError(t, c.Login(ctx, "root", "pw"))
	api.users = []UserRow{{ID: 1}}
	require.NoError(t, c.LoadUsers(ctx))

	c.Logout(ctx)

	assert.Empty(t, store.Keys())
	assert.Empty(t, c.Users())
	assert.False(t, c.Restore(ctx))
}

func TestLoginRejectsResponseWithoutToken(t *testing.T) {
	c, api, store := newConsole(t)
	ctx := context.Background()
	api.noToken = true

	err := c.Login(ctx, "root", "pw")

	var decodeErr *apierr.DecodingError
	require.ErrorAs(t, err, &decodeErr)
	assert.False(t, c.IsLoggedIn(ctx))
	assert.Nil(t, c.Snapshot(ctx).Admin)
	assert.Empty(t, store.Keys())
	assert.NotEmpty(t, c.Snapshot(ctx).Error)
}
