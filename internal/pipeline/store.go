package pipeline

import "sync/atomic"

// Store publishes the latest completed Result. A stored Result is never
// modified, so readers may hold it while a newer run is published.
type Store struct {
	latest atomic.Pointer[Result]
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Set publishes r
func (s *Store) Set(r *Result) {
	s.latest.Store(r)
}

// Latest returns the most recent Result, or nil before the first run
func (s *Store) Latest() *Result {
	return s.latest.Load()
}
