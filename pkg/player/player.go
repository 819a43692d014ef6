// Package player implements the shared "now playing" slot. Independent UI
// surfaces (the background audio embed and the insights view) read the same
// value; selecting a new track replaces it wholesale. Consumers that need to
// react to changes subscribe for notifications instead of polling.
package player

import "sync"

// State describes the currently selected track. All three fields are empty
// when nothing is playing; Set always replaces the full triple, there is no
// merge semantic.
type State struct {
	TrackURI   string `json:"trackUri"`
	TrackName  string `json:"trackName"`
	ArtistName string `json:"artistName"`
}

// Empty reports whether no track is selected.
func (s State) Empty() bool { return s.TrackURI == "" }

// Store is the single source of truth for the player state. Subscribers
// receive the new state after every Set; notifications are dropped rather
// than blocking a slow consumer.
type Store struct {
	mu    sync.RWMutex
	state State
	subs  map[chan State]struct{}
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{subs: make(map[chan State]struct{})}
}

// Get returns the current state.
func (s *Store) Get() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Set replaces the state and notifies subscribers.
func (s *Store) Set(st State) {
	s.mu.Lock()
	s.state = st
	for ch := range s.subs {
		select {
		case ch <- st:
		default:
		}
	}
	s.mu.Unlock()
}

// Subscribe registers a listener for state changes. The returned cancel
// function removes the subscription and closes the channel.
func (s *Store) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}
