package registry

import (
	"cmp"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"propmap/maperr"
)

// Registry stores mapping configurations keyed by a generated identifier, with
// a reverse index by type pair. At most one configuration exists per pair.
//
// All methods are safe for concurrent use. Readers get snapshots; writers
// replace a configuration as a whole, so a reader never sees a half-applied
// change.
type Registry struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Configuration
	byPair map[Pair]uuid.UUID

	newID  func() uuid.UUID
	logger *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// withIDGenerator replaces the identifier source (uuid.New by default).
func withIDGenerator(gen func() uuid.UUID) Option {
	return func(r *Registry) {
		if gen != nil {
			r.newID = gen
		}
	}
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		byID:   make(map[uuid.UUID]*Configuration),
		byPair: make(map[Pair]uuid.UUID),
		newID:  uuid.New,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.logger = r.logger.Named("registry")

	return r
}

// Create returns the identifier of the configuration for pair, creating an
// empty one if none exists. Calling Create again for the same pair returns the
// same identifier and leaves the configuration untouched.
func (r *Registry) Create(pair Pair) (uuid.UUID, error) {
	if !pair.Valid() {
		return uuid.Nil, maperr.New(maperr.ErrNullArgument, "create", "source and destination types are required").
			WithPair(pair.String())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byPair[pair]; ok {
		return id, nil
	}

	id := r.newID()
	for r.taken(id) {
		id = r.newID()
	}

	r.byID[id] = newConfiguration(id, pair)
	r.byPair[pair] = id

	r.logger.Debug("configuration created", zap.Stringer("pair", pair), zap.Stringer("id", id))

	return id, nil
}

// Lookup returns a snapshot of the configuration for pair. Absence means
// plain name matching applies.
func (r *Registry) Lookup(pair Pair) (Configuration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPair[pair]
	if !ok {
		return Configuration{}, false
	}

	return *r.byID[id].clone(), true
}

// LookupByID returns a snapshot of the configuration with the given id.
func (r *Registry) LookupByID(id uuid.UUID) (Configuration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return Configuration{}, notFound("lookup", id)
	}

	return *c.clone(), nil
}

// Update applies fn to a copy of the configuration with the given id and
// stores the copy if fn succeeds. The registry write lock is held while fn
// runs; fn must not call back into the registry.
func (r *Registry) Update(id uuid.UUID, fn func(*Configuration) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return notFound("update", id)
	}

	next := c.clone()
	if err := fn(next); err != nil {
		return err
	}

	next.ID = c.ID
	next.Pair = c.Pair
	r.byID[id] = next

	return nil
}

// Remove deletes the configuration with the given id. Mapping its type pair
// falls back to plain name matching afterwards.
func (r *Registry) Remove(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return notFound("remove", id)
	}

	delete(r.byID, id)
	delete(r.byPair, c.Pair)

	r.logger.Debug("configuration removed", zap.Stringer("pair", c.Pair), zap.Stringer("id", id))

	return nil
}

// List returns snapshots of all configurations ordered by source, then
// destination type name.
func (r *Registry) List() []Configuration {
	r.mu.RLock()

	out := make([]Configuration, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, *c.clone())
	}

	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b Configuration) int {
		return cmp.Or(
			cmp.Compare(typeString(a.Pair.Source), typeString(b.Pair.Source)),
			cmp.Compare(typeString(a.Pair.Destination), typeString(b.Pair.Destination)),
		)
	})

	return out
}

// Len returns the number of configurations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byID)
}

// Reset removes every configuration.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID = make(map[uuid.UUID]*Configuration)
	r.byPair = make(map[Pair]uuid.UUID)

	r.logger.Debug("registry reset")
}

// taken reports whether id cannot be handed out. Caller holds r.mu.
func (r *Registry) taken(id uuid.UUID) bool {
	if id == uuid.Nil {
		return true
	}

	_, ok := r.byID[id]

	return ok
}

func notFound(op string, id uuid.UUID) error {
	return maperr.New(maperr.ErrConfigurationNotFound, op, "no configuration with id "+id.String())
}
