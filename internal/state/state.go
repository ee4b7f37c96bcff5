// Package state is the client-side cache of server resources: one typed
// sub-tree per resource, mutated only by pure reducer transitions driven by
// operation settlement. Operations are three-phase (pending, fulfilled,
// rejected); rejected settlements never touch cached data, and each
// (slice, operation) pair carries a monotonic sequence number so a stale
// settlement can never overwrite a newer one.
package state

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mathenaangeles/socialite/internal/api"
	"github.com/mathenaangeles/socialite/internal/models"
)

// Phase is the lifecycle stage of an operation settlement.
type Phase int

const (
	Pending Phase = iota
	Fulfilled
	Rejected
)

// UserCache is the session sub-tree. User is nil when logged out.
type UserCache struct {
	User    *models.User
	Loading bool
	Error   string
}

// OrganizationCache caches the organization list and the currently viewed
// organization.
type OrganizationCache struct {
	Organizations []models.Organization
	Organization  *models.Organization
	Loading       bool
	Error         string
}

// ProductCache caches the product list and the currently viewed product.
type ProductCache struct {
	Products []models.Product
	Product  *models.Product
	Loading  bool
	Error    string
}

// ContentCache caches the content list and the currently viewed item.
type ContentCache struct {
	Contents []models.Content
	Content  *models.Content
	Loading  bool
	Error    string
}

// State is the full client state tree. Values returned by Store.State are
// snapshots: reducers copy on write, so slices inside a snapshot are never
// mutated after it is handed out.
type State struct {
	User         UserCache
	Organization OrganizationCache
	Product      ProductCache
	Content      ContentCache
}

// LoggedIn reports whether a session user is present.
func (s State) LoggedIn() bool {
	return s.User.User != nil
}

// Persister saves the whitelisted subset of state durably and erases it on
// logout.
type Persister interface {
	Save(State) error
	Purge() error
}

// Store is the injectable state container. All mutation flows through
// reducer application; views subscribe for change notification.
type Store struct {
	mu        sync.Mutex
	state     State
	api       *api.Client
	persister Persister
	seq       map[string]uint64
	subs      []func(State)
}

// Option configures a Store.
type Option func(*Store)

// WithPersister wires durable persistence: Save after every reducer
// application, Purge on logout.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithInitial seeds the store, typically with state restored from the
// persister before the first observer attaches.
func WithInitial(initial State) Option {
	return func(s *Store) { s.state = initial }
}

// New creates a store around the given API client.
func New(client *api.Client, opts ...Option) *Store {
	s := &Store{
		api: client,
		seq: make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a snapshot of the current state tree.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called with a state snapshot after every
// reducer application. Callbacks run on the dispatching goroutine.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// begin stamps a new sequence number for the op and marks it as the latest
// issued. Callers must hold s.mu.
func (s *Store) beginLocked(op string) uint64 {
	s.seq[op]++
	return s.seq[op]
}

// staleLocked reports whether a settlement lost the race to a newer dispatch
// of the same op. Callers must hold s.mu.
func (s *Store) staleLocked(op string, seq uint64) bool {
	return seq != s.seq[op]
}

// finish captures a snapshot under the lock the caller holds, releases it,
// then persists and notifies. Persistence failures are logged, not
// surfaced: the in-memory cache is already correct.
func (s *Store) finishLocked() {
	snapshot := s.state
	subs := make([]func(State), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if s.persister != nil {
		if err := s.persister.Save(snapshot); err != nil {
			log.Warn().Err(err).Msg("failed to persist state")
		}
	}
	for _, fn := range subs {
		fn(snapshot)
	}
}

// purgeSession erases all durable session material: the persisted state
// subset and the session cookies. Runs synchronously inside the logout and
// delete-account fulfilled paths.
func (s *Store) purgeSession() {
	if s.persister != nil {
		if err := s.persister.Purge(); err != nil {
			log.Warn().Err(err).Msg("failed to purge persisted state")
		}
	}
	if err := s.api.ClearSession(); err != nil {
		log.Warn().Err(err).Msg("failed to clear session cookies")
	}
}

func dropStale(op string) {
	log.Debug().Str("op", op).Msg("ignoring stale settlement")
}
