package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathenaangeles/socialite/internal/models"
	"github.com/mathenaangeles/socialite/internal/state"
	"github.com/mathenaangeles/socialite/internal/state/persist"
)

// seedSession persists a logged-in user so guarded commands pass the gate.
func seedSession(t *testing.T, dir string) {
	t.Helper()
	store, err := persist.NewFileStore(dir)
	require.NoError(t, err)

	var seeded state.State
	seeded.User.User = &models.User{ID: "u1", Email: "a@x.com"}
	require.NoError(t, store.Save(seeded))
}

// The server commits every key present in an update payload, so a
// single-flag update must carry the stored values for everything else.

func TestOrgUpdateKeepsUnsetFields(t *testing.T) {
	var captured map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("GET /organization/o1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.Organization{ID: "o1", Name: "Acme", Description: "Original"})
	})
	mux.HandleFunc("PUT /organization/o1", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(models.Organization{ID: "o1", Name: "Acme", Description: "Updated"})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	seedSession(t, dir)

	cmd := OrgUpdateCmd{ID: "o1", Description: "Updated"}
	require.NoError(t, cmd.Run(context.Background(), &Globals{Server: server.URL, StateDir: dir}))

	assert.Equal(t, "Acme", captured["name"])
	assert.Equal(t, "Updated", captured["description"])
}

func TestProductUpdateKeepsUnsetFields(t *testing.T) {
	var captured map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("GET /product/p1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.Product{
			ID: "p1", Name: "Mug", Price: 12.5, Currency: "USD", Category: "kitchen", Stocks: 7,
		})
	})
	mux.HandleFunc("PUT /product/p1", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(models.Product{ID: "p1", Name: "Renamed", Price: 12.5})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	seedSession(t, dir)

	cmd := ProductUpdateCmd{ID: "p1", Name: "Renamed"}
	require.NoError(t, cmd.Run(context.Background(), &Globals{Server: server.URL, StateDir: dir}))

	assert.Equal(t, "Renamed", captured["name"])
	assert.Equal(t, 12.5, captured["price"])
	assert.Equal(t, "USD", captured["currency"])
	assert.Equal(t, "kitchen", captured["category"])
	assert.Equal(t, float64(7), captured["stocks"])
}

func TestContentUpdateKeepsUnsetFields(t *testing.T) {
	captured := map[string]string{}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /content/c1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.Content{
			ID: "c1", Title: "Launch", Channel: "instagram", Type: "post",
			Status: "draft", Text: "hello world",
		})
	})
	mux.HandleFunc("PUT /content/c1", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		for _, key := range []string{"title", "channel", "type", "status", "caption"} {
			captured[key] = r.FormValue(key)
		}
		_ = json.NewEncoder(w).Encode(models.Content{ID: "c1", Title: "Launch", Status: "published"})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	dir := t.TempDir()
	seedSession(t, dir)

	cmd := ContentUpdateCmd{ID: "c1", contentFlags: contentFlags{Status: "published"}}
	require.NoError(t, cmd.Run(context.Background(), &Globals{Server: server.URL, StateDir: dir}))

	assert.Equal(t, "Launch", captured["title"])
	assert.Equal(t, "instagram", captured["channel"])
	assert.Equal(t, "post", captured["type"])
	assert.Equal(t, "published", captured["status"])
	assert.Equal(t, "hello world", captured["caption"])
}
