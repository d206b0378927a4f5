package store

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/i474232898/temperature-converter/internal/weather"
)

var (
	// ErrNotFound is returned when no observation is available for a zip code.
	ErrNotFound = errors.New("no weather data for zip code")
)

// history holds a time-ordered list of observations for one zip code.
type history struct {
	observations []weather.Observation
}

// MemoryStore is a concurrency-safe in-memory store of zip observations.
type MemoryStore struct {
	mu sync.RWMutex

	// key: normalized zip code
	data map[string]*history

	// retention configuration
	maxHistory int           // max number of observations per zip
	maxAge     time.Duration // optional max age for observations
	clock      clockwork.Clock
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory or maxAge is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration, clock clockwork.Clock) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore{
		data:       make(map[string]*history),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		clock:      clock,
	}
}

// Save appends an observation and enforces retention. Saving the same
// observation twice in a row (a cached lookup) keeps a single copy.
func (s *MemoryStore) Save(obs weather.Observation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.data[obs.Zip]
	if !ok {
		h = &history{}
		s.data[obs.Zip] = h
	}

	if n := len(h.observations); n > 0 && obs.ID != "" && h.observations[n-1].ID == obs.ID {
		return
	}
	h.observations = append(h.observations, obs)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(h.observations) > s.maxHistory {
		over := len(h.observations) - s.maxHistory
		h.observations = h.observations[over:]
	}

	// Enforce retention by age; the newest observation is always kept.
	if s.maxAge > 0 {
		cutoff := s.clock.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(h.observations)-1; i++ {
			if !h.observations[i].Timestamp.Before(cutoff) {
				break
			}
		}
		h.observations = h.observations[i:]
	}
}

// Latest returns the most recent observation for zip.
func (s *MemoryStore) Latest(zip string) (weather.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.data[zip]
	if !ok || len(h.observations) == 0 {
		return weather.Observation{}, ErrNotFound
	}
	return h.observations[len(h.observations)-1], nil
}

// Range returns all observations for zip between from and to (inclusive).
func (s *MemoryStore) Range(zip string, from, to time.Time) ([]weather.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.data[zip]
	if !ok || len(h.observations) == 0 {
		return nil, ErrNotFound
	}

	var result []weather.Observation
	for _, obs := range h.observations {
		if !obs.Timestamp.Before(from) && !obs.Timestamp.After(to) {
			result = append(result, obs)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}
