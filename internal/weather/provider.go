package weather

import (
	"context"
	"errors"
	"time"
)

// ErrEmptyZip is returned when a lookup is attempted without a zip code.
var ErrEmptyZip = errors.New("zip code is required")

// Provider resolves a postal/zip code to its current weather.
type Provider interface {
	Name() string
	Current(ctx context.Context, zip string) (Observation, error)
}

// Store is the contract the in-memory store (and any future persistent store) must satisfy.
type Store interface {
	Save(obs Observation)
	Latest(zip string) (Observation, error)
	Range(zip string, from, to time.Time) ([]Observation, error)
}
