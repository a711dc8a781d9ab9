package random

import (
	"math/rand"
	"sync"
)

// NewLockedSource returns a seeded rand.Source that is safe for use from
// multiple goroutines. math/rand sources are not; a rng built on one of
// these can be shared across concurrent sessions.
func NewLockedSource(seed int64) rand.Source {
	return &lockedSource{src: rand.NewSource(seed)}
}

type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}
