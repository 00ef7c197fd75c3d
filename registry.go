package minibank

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Registry is the authoritative in-memory view of every account for the
// lifetime of the process, loaded once from the Store. Mutations persist a
// full snapshot before they are committed to the map, so in-memory state
// and durable state never observably diverge after an operation completes.
//
// A single mutex guards the whole read-modify-persist sequence. The session
// loop is single-threaded, but interleaved updates sharing full-snapshot
// persistence would lose writes, so the boundary is kept here.
type Registry struct {
	mu    sync.Mutex
	accts map[string]Account
	store Store
	log   *zerolog.Logger
}

func NewRegistry(store Store, log *zerolog.Logger) (*Registry, error) {
	accts, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Registry{
		accts: accts,
		store: store,
		log:   log,
	}, nil
}

func (r *Registry) Exists(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.accts[name]
	return ok
}

// Get returns a copy of the named account.
func (r *Registry) Get(name string) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accts[name]
	if !ok {
		return Account{}, ErrNotFound{Name: name}
	}
	return a, nil
}

// Register creates a zero-balance account and persists the snapshot. The
// registry is left untouched when the name is taken or the save fails.
func (r *Registry) Register(name, pinDigest string, age int, vip bool) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accts[name]; ok {
		return Account{}, ErrDuplicateAccount{Name: name}
	}
	a := Account{
		Name:      name,
		PINDigest: pinDigest,
		Balance:   decimal.Zero,
		Age:       age,
		VIP:       vip,
	}
	if err := r.saveWith(name, a); err != nil {
		return Account{}, err
	}
	r.accts[name] = a
	r.log.Info().Str("account", name).Msg("account registered")
	return a, nil
}

// Update applies fn to a copy of the named account, persists the snapshot
// with the result, and only then commits it to the map. Mutation and
// persistence are one unit: an error from fn or from the save leaves the
// registry as it was.
func (r *Registry) Update(name string, fn func(*Account) error) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accts[name]
	if !ok {
		return Account{}, ErrNotFound{Name: name}
	}
	if err := fn(&a); err != nil {
		return Account{}, err
	}
	if err := r.saveWith(name, a); err != nil {
		return Account{}, err
	}
	r.accts[name] = a
	return a, nil
}

// saveWith persists the current map with one entry replaced. Callers hold mu.
func (r *Registry) saveWith(name string, a Account) error {
	snap := make(map[string]Account, len(r.accts)+1)
	for n, acct := range r.accts {
		snap[n] = acct
	}
	snap[name] = a
	return r.store.Save(snap)
}
