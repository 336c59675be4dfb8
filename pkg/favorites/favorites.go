// Package favorites keeps the user's saved listings in durable client
// storage, independent of the app store. Uniqueness is on (ID, Type):
// the same numeric id under different kinds is two distinct favorites.
package favorites

import (
	"encoding/json"
	"sync"

	"github.com/AymanChabbaki/safaria-sub000/pkg/catalog"
	"github.com/AymanChabbaki/safaria-sub000/pkg/localstore"
)

// Key is the durable storage key holding the JSON array of entries.
const Key = "safaria_favorites"

// Entry is a favorited listing. Display fields are a snapshot taken at
// toggle time, not a live reference: later edits to the listing do not
// update an existing favorite.
type Entry struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"`
	Name      string  `json:"name"`
	Location  string  `json:"location,omitempty"`
	Price     float64 `json:"price"`
	MainImage string  `json:"main_image,omitempty"`
}

// Store is the favorites set. Every toggle rewrites the full durable
// array; there is no cross-tab notification, last writer wins.
type Store struct {
	mu      sync.Mutex
	storage localstore.Store
	entries []Entry
}

// New loads the persisted favorites. A corrupt array is treated as
// empty, never as an error.
func New(storage localstore.Store) *Store {
	s := &Store{storage: storage}
	s.Load()
	return s
}

// Load re-reads the durable array, replacing the in-memory set.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	raw, ok := s.storage.Get(Key)
	if !ok {
		return
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return
	}
	s.entries = entries
}

// Toggle adds the listing when absent and removes it when present.
// Returns true when the listing is a favorite after the call.
func (s *Store) Toggle(listing catalog.Listing, typ string, lang string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.ID == listing.ID && e.Type == typ {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.flushLocked()
			return false
		}
	}

	s.entries = append(s.entries, Entry{
		ID:        listing.ID,
		Type:      typ,
		Name:      listing.DisplayName(lang),
		Location:  listing.Location,
		Price:     listing.Price,
		MainImage: listing.MainImage,
	})
	s.flushLocked()
	return true
}

// IsFavorite reports membership on the compound key.
func (s *Store) IsFavorite(id int64, typ string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id && e.Type == typ {
			return true
		}
	}
	return false
}

// Entries returns a copy of the current set, in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Count returns the number of favorites.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) flushLocked() {
	raw, err := json.Marshal(s.entries)
	if err != nil {
		return
	}
	if s.entries == nil {
		raw = []byte("[]")
	}
	s.storage.Set(Key, string(raw))
}
