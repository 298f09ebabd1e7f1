package services

import (
	"math/rand"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vytor/kanaflash/internal/errors"
	"github.com/vytor/kanaflash/internal/session"
)

// DefaultSessionCapacity bounds a registry created with a non-positive size.
const DefaultSessionCapacity = 256

type slot[T any] struct {
	mu    sync.Mutex
	value T
}

// Registry holds live sessions under random handles. The least recently
// used session is evicted once capacity is reached.
type Registry[T any] struct {
	kind  string
	cache *lru.Cache[string, *slot[T]]
}

// NewRegistry creates a registry for sessions of the given kind ("flashcard
// session", "quiz session"); kind only shows up in not-found errors.
func NewRegistry[T any](kind string, capacity int) *Registry[T] {
	if capacity <= 0 {
		capacity = DefaultSessionCapacity
	}
	cache, err := lru.New[string, *slot[T]](capacity)
	if err != nil {
		// Only returned for a non-positive size.
		panic(err)
	}
	return &Registry[T]{kind: kind, cache: cache}
}

// Add registers v and returns its handle.
func (r *Registry[T]) Add(v T) string {
	id := uuid.NewString()
	r.cache.Add(id, &slot[T]{value: v})
	return id
}

// With runs fn with exclusive access to the session behind id.
func (r *Registry[T]) With(id string, fn func(T) error) error {
	s, ok := r.cache.Get(id)
	if !ok {
		return errors.NewNotFoundError(r.kind, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.value)
}

// Remove drops id; it reports whether the handle was live.
func (r *Registry[T]) Remove(id string) bool {
	return r.cache.Remove(id)
}

// Len is the number of live sessions.
func (r *Registry[T]) Len() int {
	return r.cache.Len()
}

// RandFactory hands out one *rand.Rand per session. A non-zero seed makes
// the sequence of generators reproducible.
type RandFactory struct {
	mu   sync.Mutex
	base *rand.Rand
}

func NewRandFactory(seed int64) *RandFactory {
	return &RandFactory{base: session.NewRand(seed)}
}

func (f *RandFactory) New() *rand.Rand {
	f.mu.Lock()
	seed := f.base.Int63()
	f.mu.Unlock()
	return rand.New(rand.NewSource(seed))
}
