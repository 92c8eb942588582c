package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/strandplatform/strand-go/pkg/auth"
	"github.com/strandplatform/strand-go/pkg/storage"
	storagemock "github.com/strandplatform/strand-go/pkg/storage/mock"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := auth.NewStore(storage.NewMemoryStorage())

	_, ok, err := store.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	session := auth.Session{
		AccessToken:  "someAccessToken",
		RefreshToken: "someRefreshToken",
		UserID:       "someUser",
	}
	require.NoError(t, store.Set(ctx, session))

	stored, ok, err := store.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, session, stored)

	require.NoError(t, store.Clear(ctx))

	_, ok, err = store.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_SetAccessToken_ReplacesAccessTokenOnly(t *testing.T) {
	ctx := context.Background()
	store := auth.NewStore(storage.NewMemoryStorage())

	require.NoError(t, store.Set(ctx, auth.Session{
		AccessToken:  "oldAccessToken",
		RefreshToken: "someRefreshToken",
		UserID:       "someUser",
	}))

	require.NoError(t, store.SetAccessToken(ctx, "newAccessToken"))

	session, ok, err := store.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "newAccessToken", session.AccessToken)
	assert.Equal(t, "someRefreshToken", session.RefreshToken)
	assert.Equal(t, "someUser", session.UserID)
}

func TestStore_SetAccessToken_WithoutSession(t *testing.T) {
	store := auth.NewStore(storage.NewMemoryStorage())

	err := store.SetAccessToken(context.Background(), "someAccessToken")
	assert.ErrorIs(t, err, auth.ErrNoSession)
}

func TestStore_Set_RejectsRefreshTokenWithoutIdentity(t *testing.T) {
	store := auth.NewStore(storage.NewMemoryStorage())

	err := store.Set(context.Background(), auth.Session{
		RefreshToken: "someRefreshToken",
	})
	assert.Error(t, err)
}

func TestStore_Get_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)

	storageErr := errors.New("unexpected")
	storageMock := storagemock.NewStorage(ctrl)
	storageMock.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, storageErr)

	store := auth.NewStore(storageMock)

	_, _, err := store.Get(context.Background())
	assert.ErrorIs(t, err, storageErr)
}

func TestStore_CustomStorageKey(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStorage()

	first := auth.NewStore(backing, auth.WithStorageKey("first"))
	second := auth.NewStore(backing, auth.WithStorageKey("second"))

	require.NoError(t, first.Set(ctx, auth.Session{UserID: "someUser", AccessToken: "someAccessToken"}))

	_, ok, err := second.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
