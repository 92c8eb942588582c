package strand_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandplatform/strand-go/pkg/strand"
)

func TestExecutePipeline(t *testing.T) {
	store := seededStore(t, freshAccessToken(t))

	router := mux.NewRouter()
	router.HandleFunc("/pipeline", func(w http.ResponseWriter, r *http.Request) {
		var stages []strand.Stage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&stages))
		require.Len(t, stages, 2)
		assert.Equal(t, "mdb1", stages[0].Service)
		assert.Equal(t, "find", stages[0].Action)
		assert.Equal(t, "expand", stages[1].Action)

		writeJSON(t, w, http.StatusOK, map[string]any{
			"result": []any{map[string]any{"_id": "someDocument"}},
		})
	}).Methods(http.MethodPost)

	client := newTestClient(t, router, store)

	result, err := client.ExecutePipeline(context.Background(),
		strand.Stage{
			Service: "mdb1",
			Action:  "find",
			Args:    map[string]any{"database": "db", "collection": "items"},
		},
		strand.Stage{
			Action: "expand",
		},
	)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(result, &body))
	assert.Contains(t, body, "result")
}

func TestExecutePipeline_NoStages(t *testing.T) {
	store := seededStore(t, freshAccessToken(t))
	client := newTestClient(t, mux.NewRouter(), store)

	_, err := client.ExecutePipeline(context.Background())
	assert.Error(t, err)
}

func TestCallFunction(t *testing.T) {
	store := seededStore(t, freshAccessToken(t))

	router := mux.NewRouter()
	router.HandleFunc("/pipeline", func(w http.ResponseWriter, r *http.Request) {
		var stages []strand.Stage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&stages))
		require.Len(t, stages, 1)
		assert.Equal(t, "callFunction", stages[0].Action)
		assert.Equal(t, "sumValues", stages[0].Args["name"])

		writeJSON(t, w, http.StatusOK, map[string]any{"sum": 42})
	}).Methods(http.MethodPost)

	client := newTestClient(t, router, store)

	result, err := client.CallFunction(context.Background(), "sumValues", map[string]any{"values": []int{40, 2}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sum": 42}`, string(result))
}
