package strand_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandplatform/strand-go/pkg/auth"
	"github.com/strandplatform/strand-go/pkg/storage"
	"github.com/strandplatform/strand-go/pkg/strand"
)

func TestAuthenticate_StoresSession(t *testing.T) {
	store := auth.NewStore(storage.NewMemoryStorage())
	accessToken := freshAccessToken(t)

	router := mux.NewRouter()
	router.HandleFunc("/auth/providers/local-userpass/login", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))

		var credentials strand.UserPasswordCredentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&credentials))
		assert.Equal(t, "someUser@example.com", credentials.Username)
		assert.Equal(t, "somePassword", credentials.Password)

		writeJSON(t, w, http.StatusOK, map[string]string{
			"access_token":  accessToken,
			"refresh_token": testRefreshToken,
			"user_id":       testUserID,
		})
	}).Methods(http.MethodPost)

	client := newTestClient(t, router, store)

	session, err := client.Authenticate(context.Background(), strand.ProviderUserPassword, strand.UserPasswordCredentials{
		Username: "someUser@example.com",
		Password: "somePassword",
	})
	require.NoError(t, err)
	assert.Equal(t, testUserID, session.UserID)

	stored, ok, err := store.Get(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, session, stored)
}

func TestAuthenticate_BadCredentials(t *testing.T) {
	store := auth.NewStore(storage.NewMemoryStorage())

	router := mux.NewRouter()
	router.HandleFunc("/auth/providers/local-userpass/login", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{
			"error":      "invalid username/password",
			"error_code": "InvalidPassword",
		})
	}).Methods(http.MethodPost)

	client := newTestClient(t, router, store)

	_, err := client.Authenticate(context.Background(), strand.ProviderUserPassword, strand.UserPasswordCredentials{})

	var svcErr *strand.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "InvalidPassword", svcErr.Code)

	_, ok, getErr := store.Get(context.Background())
	require.NoError(t, getErr)
	assert.False(t, ok)
}

func TestLogout_RevokesAndClears(t *testing.T) {
	store := seededStore(t, freshAccessToken(t))

	var revokeCalls atomic.Int64
	router := mux.NewRouter()
	router.HandleFunc("/auth/session", func(w http.ResponseWriter, r *http.Request) {
		revokeCalls.Add(1)
		assert.Equal(t, "Bearer "+testRefreshToken, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)

	client := newTestClient(t, router, store)

	require.NoError(t, client.Logout(context.Background()))
	assert.Equal(t, int64(1), revokeCalls.Load())

	_, ok, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogout_ClearsSessionWhenRevocationFails(t *testing.T) {
	store := seededStore(t, freshAccessToken(t))

	router := mux.NewRouter()
	router.HandleFunc("/auth/session", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, map[string]string{
			"error":      "something went wrong",
			"error_code": "InternalError",
		})
	}).Methods(http.MethodDelete)

	client := newTestClient(t, router, store)

	err := client.Logout(context.Background())
	require.Error(t, err)

	_, ok, getErr := store.Get(context.Background())
	require.NoError(t, getErr)
	assert.False(t, ok)
}

func TestLogout_SessionAlreadyInvalid(t *testing.T) {
	store := seededStore(t, freshAccessToken(t))

	router := mux.NewRouter()
	router.HandleFunc("/auth/session", func(w http.ResponseWriter, _ *http.Request) {
		writeInvalidSession(t, w, "InvalidSession")
	}).Methods(http.MethodDelete)

	client := newTestClient(t, router, store)

	require.NoError(t, client.Logout(context.Background()))

	_, ok, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProfile(t *testing.T) {
	store := seededStore(t, freshAccessToken(t))

	router := mux.NewRouter()
	router.HandleFunc("/auth/me", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"_id":  testUserID,
			"type": "normal",
			"data": map[string]any{"email": "someUser@example.com"},
		})
	}).Methods(http.MethodGet)

	client := newTestClient(t, router, store)

	profile, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testUserID, profile.ID)
	assert.Equal(t, "normal", profile.Type)
	assert.Equal(t, "someUser@example.com", profile.Data["email"])
}
