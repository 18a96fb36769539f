package events

import "sync"

// State is a current-value broadcast stream: it holds the latest value and
// pushes every update synchronously to all registered listeners. A listener
// registered after updates have happened receives the current value
// immediately, so late subscribers always observe the terminal value.
//
// Delivery is synchronous and in commit order as long as writers are
// serialized, which the stores guarantee with their single-writer discipline.
type State[T any] struct {
	mu        sync.Mutex
	value     T
	listeners map[int]func(T)
	nextID    int
}

// NewState creates a stream seeded with an initial value.
func NewState[T any](initial T) *State[T] {
	return &State[T]{
		value:     initial,
		listeners: make(map[int]func(T)),
	}
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores a new value and delivers it to every listener before returning.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	fns := make([]func(T), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Listen registers fn and invokes it once with the current value. The
// returned cancel func removes the registration; it is safe to call twice.
func (s *State[T]) Listen(fn func(T)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	current := s.value
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Derive produces a read-only stream whose value is f applied to every value
// of src. The derived stream updates synchronously with its source until the
// returned cancel func is called.
func Derive[T, U any](src *State[T], f func(T) U) (*State[U], func()) {
	derived := NewState(f(src.Get()))
	cancel := src.Listen(func(v T) {
		derived.Set(f(v))
	})
	return derived, cancel
}
