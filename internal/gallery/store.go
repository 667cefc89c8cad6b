package gallery

import (
	"sync"

	"github.com/ytget/cat-gallery/internal/model"
)

// Listener receives the sequence after each replacement
type Listener func(model.GallerySequence)

// Store is an observable holder for the gallery sequence. The sequence is only
// ever replaced wholesale through Update, and listeners see replacements in
// the order they were applied.
type Store struct {
	// notifyMu serializes update+notify so listeners never observe an older
	// sequence after a newer one
	notifyMu sync.Mutex

	mu        sync.RWMutex
	seq       model.GallerySequence
	listeners map[int]Listener
	nextID    int
	version   uint64
}

// NewStore creates a store holding an empty sequence
func NewStore() *Store {
	return &Store{
		seq:       model.GallerySequence{},
		listeners: make(map[int]Listener),
	}
}

// Snapshot returns a copy of the current sequence
func (s *Store) Snapshot() model.GallerySequence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq.Clone()
}

// Len returns the current sequence length
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seq)
}

// Version counts replacements since creation. It does not change while
// listeners are being notified.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Update applies fn to the latest sequence, stores the result and notifies
// listeners. Listeners may read the store but must not call Update.
func (s *Store) Update(fn func(model.GallerySequence) model.GallerySequence) model.GallerySequence {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	next := fn(s.seq.Clone())
	if next == nil {
		next = model.GallerySequence{}
	}
	s.seq = next
	s.version++
	listeners := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if l, ok := s.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next.Clone())
	}
	return next.Clone()
}

// Subscribe registers a listener and returns a function removing it
func (s *Store) Subscribe(l Listener) func() {
	if l == nil {
		return func() {}
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}
