package strand_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandplatform/strand-go/pkg/auth"
	"github.com/strandplatform/strand-go/pkg/storage"
	"github.com/strandplatform/strand-go/pkg/strand"
)

func TestNewClient_RequiresBaseURL(t *testing.T) {
	store := auth.NewStore(storage.NewMemoryStorage())

	_, err := strand.NewClient(strand.Config{}, store)
	assert.Error(t, err)
}

func TestNewClient_RequiresTokenStore(t *testing.T) {
	_, err := strand.NewClient(strand.Config{BaseURL: "https://strand.example.com"}, nil)
	assert.Error(t, err)
}

func TestNewClient_DefaultsToAppGeneration(t *testing.T) {
	// the renewal route of the app generation proves the default took hold
	store := seededStore(t, "A1")

	router := mux.NewRouter()
	router.HandleFunc("/auth/session", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"access_token": "A2"})
	}).Methods(http.MethodPost)
	router.HandleFunc("/things", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	client := newTestClient(t, router, store)

	_, err := client.Do(context.Background(), http.MethodGet, "/things", strand.NewRequestOptions())
	require.NoError(t, err)
}
