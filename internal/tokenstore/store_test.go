package tokenstore

import (
	"context"
	"errors"
	"testing"

	"daily-planner-go/internal/domain/prefs"
	"daily-planner-go/internal/repository/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetClear(t *testing.T) {
	ctx := context.Background()
	store := New(inmemory.NewPrefsStore(), "jwt_token")

	assert.Equal(t, "", store.Get(ctx))
	assert.False(t, store.HasToken(ctx))

	require.NoError(t, store.Set(ctx, "t1"))
	assert.Equal(t, "t1", store.Get(ctx))
	assert.True(t, store.HasToken(ctx))

	require.NoError(t, store.Clear(ctx))
	assert.Equal(t, "", store.Get(ctx))
}

func TestTokenSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	backing := inmemory.NewPrefsStore()

	require.NoError(t, New(backing, "jwt_token").Set(ctx, "persisted"))

	reopened := New(backing, "jwt_token")
	assert.Equal(t, "persisted", reopened.Get(ctx))
}

func TestSetEmptyClears(t *testing.T) {
	ctx := context.Background()
	backing := inmemory.NewPrefsStore()
	store := New(backing, "jwt_token")

	require.NoError(t, store.Set(ctx, "t1"))
	require.NoError(t, store.Set(ctx, ""))

	_, err := backing.Get(ctx, "jwt_token")
	assert.ErrorIs(t, err, prefs.ErrNotFound)
}

func TestSealedTokenIsNotStoredInPlaintext(t *testing.T) {
	ctx := context.Background()
	backing := inmemory.NewPrefsStore()
	sealer, err := NewSealer("device-secret")
	require.NoError(t, err)

	require.NoError(t, New(backing, "jwt_token", WithSealer(sealer)).Set(ctx, "t1"))

	raw, err := backing.Get(ctx, "jwt_token")
	require.NoError(t, err)
	assert.NotEqual(t, "t1", raw)

	reopened := New(backing, "jwt_token", WithSealer(sealer))
	assert.Equal(t, "t1", reopened.Get(ctx))
}

func TestSealedTokenWithWrongSecretReadsEmpty(t *testing.T) {
	ctx := context.Background()
	backing := inmemory.NewPrefsStore()
	sealer, err := NewSealer("device-secret")
	require.NoError(t, err)
	other, err := NewSealer("other-secret")
	require.NoError(t, err)

	require.NoError(t, New(backing, "jwt_token", WithSealer(sealer)).Set(ctx, "t1"))

	assert.Equal(t, "", New(backing, "jwt_token", WithSealer(other)).Get(ctx))
}

func TestSealerRejectsGarbage(t *testing.T) {
	sealer, err := NewSealer("device-secret")
	require.NoError(t, err)

	_, err = sealer.Open("not base64 !!")
	assert.ErrorIs(t, err, ErrSealedValueInvalid)

	_, err = sealer.Open("c2hvcnQ")
	assert.ErrorIs(t, err, ErrSealedValueInvalid)
}

func TestNewSealerRequiresSecret(t *testing.T) {
	_, err := NewSealer("")
	assert.Error(t, err)
}

type failingPrefs struct{}

func (failingPrefs) Get(context.Context, string) (string, error) { return "", errors.New("disk gone") }
func (failingPrefs) Set(context.Context, string, string) error   { return errors.New("disk gone") }
func (failingPrefs) Delete(context.Context, ...string) error     { return errors.New("disk gone") }

func TestStorageFailureReadsAsNoToken(t *testing.T) {
	store := New(failingPrefs{}, "jwt_token")
	assert.Equal(t, "", store.Get(context.Background()))
	assert.Error(t, store.Set(context.Background(), "t1"))
}
