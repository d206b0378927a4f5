package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/i474232898/temperature-converter/internal/observability"
)

// Service resolves zip codes through a provider and keeps the results in a store.
type Service struct {
	provider Provider
	store    Store
	log      *logrus.Logger
	metrics  *observability.Metrics
}

// NewService creates a new Service.
func NewService(provider Provider, store Store, log *logrus.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		provider: provider,
		store:    store,
		log:      log,
		metrics:  metrics,
	}
}

// Current performs one lookup for zip and records the observation. There is
// no automatic retry here; the provider decides whether a failure is retried.
func (s *Service) Current(ctx context.Context, zip string) (Observation, error) {
	zip = NormalizeZip(zip)
	if zip == "" {
		return Observation{}, ErrEmptyZip
	}

	entry := s.log.WithFields(logrus.Fields{"zip": zip, "provider": s.provider.Name()})
	start := time.Now()
	obs, err := s.provider.Current(ctx, zip)
	s.metrics.LookupDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.Lookups.WithLabelValues("error").Inc()
		entry.WithError(err).Warn("zip lookup failed")
		return Observation{}, fmt.Errorf("lookup %s: %w", zip, err)
	}
	s.metrics.Lookups.WithLabelValues("success").Inc()

	if obs.Zip == "" {
		obs.Zip = zip
	}
	if obs.Timestamp.IsZero() {
		obs.Timestamp = time.Now().UTC()
	}
	if s.store != nil {
		s.store.Save(obs)
	}
	entry.WithField("temp_c", obs.TempC).Debug("zip lookup succeeded")
	return obs, nil
}

// FetchAndStore refreshes zip in the store, discarding the observation.
func (s *Service) FetchAndStore(ctx context.Context, zip string) error {
	_, err := s.Current(ctx, zip)
	return err
}

// Latest delegates to the underlying store.
func (s *Service) Latest(zip string) (Observation, error) {
	return s.store.Latest(NormalizeZip(zip))
}

// Range delegates to the underlying store.
func (s *Service) Range(zip string, from, to time.Time) ([]Observation, error) {
	return s.store.Range(NormalizeZip(zip), from, to)
}
