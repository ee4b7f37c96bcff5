package state

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathenaangeles/socialite/internal/api"
	"github.com/mathenaangeles/socialite/internal/models"
)

type memPersister struct {
	mu     sync.Mutex
	saves  int
	last   State
	purged bool
}

func (m *memPersister) Save(s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.last = s
	return nil
}

func (m *memPersister) Purge() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purged = true
	return nil
}

// fakeBackend is a minimal in-memory rendition of the API the store drives.
type fakeBackend struct {
	mu       sync.Mutex
	users    map[string]string // email -> password
	orgs     map[string]*models.Organization
	orgOrder []string
	nextID   int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		users: make(map[string]string),
		orgs:  make(map[string]*models.Organization),
	}
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /register", func(w http.ResponseWriter, r *http.Request) {
		var creds struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&creds)
		f.mu.Lock()
		f.users[creds.Email] = creds.Password
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.User{ID: "u1", Email: creds.Email})
	})

	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&creds)
		f.mu.Lock()
		password, ok := f.users[creds.Email]
		f.mu.Unlock()
		if !ok || password != creds.Password {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error": "The password entered is incorrect."}`))
			return
		}
		_ = json.NewEncoder(w).Encode(models.User{ID: "u1", Email: creds.Email})
	})

	mux.HandleFunc("POST /logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("POST /organization/create", func(w http.ResponseWriter, r *http.Request) {
		var params struct{ Name, Description string }
		_ = json.NewDecoder(r.Body).Decode(&params)
		f.mu.Lock()
		f.nextID++
		org := &models.Organization{ID: fmt.Sprintf("o%d", f.nextID), Name: params.Name, Description: params.Description}
		f.orgs[org.ID] = org
		f.orgOrder = append(f.orgOrder, org.ID)
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(org)
	})

	mux.HandleFunc("GET /organizations", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		orgs := make([]models.Organization, 0, len(f.orgOrder))
		for _, id := range f.orgOrder {
			orgs = append(orgs, *f.orgs[id])
		}
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(orgs)
	})

	mux.HandleFunc("GET /organization/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		org, ok := f.orgs[r.PathValue("id")]
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": "Organization could not be found."}`))
			return
		}
		_ = json.NewEncoder(w).Encode(org)
	})

	mux.HandleFunc("PUT /organization/members/{id}", func(w http.ResponseWriter, r *http.Request) {
		var payload struct{ Emails []string }
		_ = json.NewDecoder(r.Body).Decode(&payload)
		f.mu.Lock()
		org := f.orgs[r.PathValue("id")]
		for i, email := range payload.Emails {
			org.Members = append(org.Members, models.Member{ID: fmt.Sprintf("m%d", i), Email: email})
		}
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(org)
	})

	return mux
}

func newTestStore(t *testing.T, handler http.Handler, opts ...Option) (*Store, *memPersister) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := api.New(api.Config{BaseURL: server.URL, StateDir: t.TempDir()})
	require.NoError(t, err)

	persister := &memPersister{}
	opts = append([]Option{WithPersister(persister)}, opts...)
	return New(client, opts...), persister
}

func TestRegisterScenario(t *testing.T) {
	store, _ := newTestStore(t, newFakeBackend().handler())

	user, err := store.Register(context.Background(), "a@x.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)

	snapshot := store.State()
	require.NotNil(t, snapshot.User.User)
	assert.Equal(t, "a@x.com", snapshot.User.User.Email)
	assert.True(t, snapshot.LoggedIn())
	assert.False(t, snapshot.User.Loading)
}

func TestLoginWrongPassword(t *testing.T) {
	backend := newFakeBackend()
	backend.users["a@x.com"] = "p1"
	store, _ := newTestStore(t, backend.handler())

	_, err := store.Login(context.Background(), "a@x.com", "wrong")
	require.Error(t, err)

	snapshot := store.State()
	assert.Nil(t, snapshot.User.User)
	assert.NotEmpty(t, snapshot.User.Error)
	assert.False(t, snapshot.User.Loading)
}

func TestCreateThenListNoDuplication(t *testing.T) {
	store, _ := newTestStore(t, newFakeBackend().handler())

	_, err := store.CreateOrganization(context.Background(), api.OrganizationParams{Name: "Acme"})
	require.NoError(t, err)

	snapshot := store.State()
	require.Len(t, snapshot.Organization.Organizations, 1)
	assert.Equal(t, "Acme", snapshot.Organization.Organizations[0].Name)

	_, err = store.ListOrganizations(context.Background())
	require.NoError(t, err)

	snapshot = store.State()
	count := 0
	for _, org := range snapshot.Organization.Organizations {
		if org.Name == "Acme" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAddMemberThenFetch(t *testing.T) {
	store, _ := newTestStore(t, newFakeBackend().handler())

	org, err := store.CreateOrganization(context.Background(), api.OrganizationParams{Name: "Acme"})
	require.NoError(t, err)

	_, err = store.AddMembers(context.Background(), org.ID, []string{"b@x.com"})
	require.NoError(t, err)

	fetched, err := store.GetOrganization(context.Background(), org.ID)
	require.NoError(t, err)
	assert.True(t, fetched.HasMember("b@x.com"))

	snapshot := store.State()
	require.NotNil(t, snapshot.Organization.Organization)
	assert.True(t, snapshot.Organization.Organization.HasMember("b@x.com"))
}

func TestLogoutPurges(t *testing.T) {
	store, persister := newTestStore(t, newFakeBackend().handler())

	_, err := store.Register(context.Background(), "a@x.com", "p1")
	require.NoError(t, err)
	require.True(t, store.State().LoggedIn())

	require.NoError(t, store.Logout(context.Background()))

	snapshot := store.State()
	assert.Nil(t, snapshot.User.User)
	assert.True(t, persister.purged)
}

func TestRejectedLeavesCacheIntact(t *testing.T) {
	var failing bool
	backend := newFakeBackend()
	inner := backend.handler()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing && strings.HasPrefix(r.URL.Path, "/organizations") {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": "temporary failure"}`))
			return
		}
		inner.ServeHTTP(w, r)
	})
	store, _ := newTestStore(t, handler)

	_, err := store.CreateOrganization(context.Background(), api.OrganizationParams{Name: "Acme"})
	require.NoError(t, err)
	before := store.State().Organization

	failing = true
	_, err = store.ListOrganizations(context.Background())
	require.Error(t, err)

	after := store.State().Organization
	assert.Equal(t, before.Organizations, after.Organizations)
	assert.Equal(t, before.Organization, after.Organization)
	assert.Equal(t, "temporary failure", after.Error)
	assert.False(t, after.Loading)
}

func TestErrorClearedOnNextOperation(t *testing.T) {
	backend := newFakeBackend()
	store, _ := newTestStore(t, backend.handler())

	_, err := store.Login(context.Background(), "a@x.com", "nope")
	require.Error(t, err)
	require.NotEmpty(t, store.State().User.Error)

	_, err = store.Register(context.Background(), "a@x.com", "p1")
	require.NoError(t, err)
	assert.Empty(t, store.State().User.Error)
}

func TestStaleSettlementIgnored(t *testing.T) {
	store, _ := newTestStore(t, newFakeBackend().handler())

	// Two list dispatches race; the older response arrives last and must not
	// overwrite the newer one.
	seqOld := store.dispatchOrgPending(opOrgList)
	seqNew := store.dispatchOrgPending(opOrgList)

	store.dispatchOrg(orgAction{
		op:    opOrgList,
		phase: Fulfilled,
		seq:   seqNew,
		orgs:  []models.Organization{{ID: "fresh"}},
	})
	store.dispatchOrg(orgAction{
		op:    opOrgList,
		phase: Fulfilled,
		seq:   seqOld,
		orgs:  []models.Organization{{ID: "stale"}},
	})

	snapshot := store.State()
	require.Len(t, snapshot.Organization.Organizations, 1)
	assert.Equal(t, "fresh", snapshot.Organization.Organizations[0].ID)
}

func TestSubscribersNotifiedPerTransition(t *testing.T) {
	store, persister := newTestStore(t, newFakeBackend().handler())

	var phases []bool
	store.Subscribe(func(s State) {
		phases = append(phases, s.User.Loading)
	})

	_, err := store.Register(context.Background(), "a@x.com", "p1")
	require.NoError(t, err)

	// One pending (loading) then one fulfilled (settled) notification.
	require.Equal(t, []bool{true, false}, phases)
	assert.Equal(t, 2, persister.saves)
}

func TestWithInitialSeedsState(t *testing.T) {
	user := &models.User{ID: "u1", Email: "a@x.com"}
	store, _ := newTestStore(t, newFakeBackend().handler(), WithInitial(State{User: UserCache{User: user}}))
	assert.True(t, store.State().LoggedIn())
}
