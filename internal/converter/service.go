// Package converter is the front-end-neutral layer shared by the CLI and the HTTP
// server: it runs conversions and zip lookups through the temperature core,
// renders reports, and records every user-facing action in the usage log.
package converter

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/i474232898/temperature-converter/internal/observability"
	"github.com/i474232898/temperature-converter/internal/temperature"
	"github.com/i474232898/temperature-converter/internal/usagelog"
	"github.com/i474232898/temperature-converter/internal/weather"
)

// ErrHistoryUnavailable is returned when the usage history cannot be read.
var ErrHistoryUnavailable = errors.New("File read error")

// Resolver looks up the current weather for a zip code.
type Resolver interface {
	Current(ctx context.Context, zip string) (weather.Observation, error)
}

// History records and reads usage entries.
type History interface {
	Record(ctx context.Context, origin usagelog.Origin, description string) error
	ReadAll(ctx context.Context) (string, error)
}

// ZipReport is the result of a zip lookup: where it is and its temperature in
// all three scales.
type ZipReport struct {
	Observation weather.Observation    `json:"observation"`
	Conversion  temperature.Conversion `json:"conversion"`
}

// Service implements the user-facing actions.
type Service struct {
	resolver Resolver
	history  History
	log      *logrus.Logger
	metrics  *observability.Metrics
}

// NewService creates a Service. resolver may be nil when zip lookups are not wired.
func NewService(resolver Resolver, history History, log *logrus.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		resolver: resolver,
		history:  history,
		log:      log,
		metrics:  metrics,
	}
}

// Convert parses input and returns its three-scale conversion.
func (s *Service) Convert(ctx context.Context, origin usagelog.Origin, input string) (temperature.Conversion, error) {
	c, err := s.convert(input)

	var text string
	if err != nil {
		text = err.Error()
	} else {
		text = FormatConversion(c)
	}
	s.record(ctx, origin, fmt.Sprintf("Temperature converted (\n%s\n)", text))

	return c, err
}

// Lookup resolves zip to its current Celsius temperature and converts it.
// The temperature is rendered as "<value>C" and fed through the same parser
// as typed input.
func (s *Service) Lookup(ctx context.Context, origin usagelog.Origin, zip string) (ZipReport, error) {
	report, err := s.lookup(ctx, zip)

	var text string
	if err != nil {
		text = err.Error()
	} else {
		text = FormatZipReport(report)
	}
	s.record(ctx, origin, fmt.Sprintf("Temperature retrieved by ZIP code (\n%s\n)", text))

	return report, err
}

func (s *Service) lookup(ctx context.Context, zip string) (ZipReport, error) {
	if s.resolver == nil {
		return ZipReport{}, errors.New("zip lookup is not configured")
	}

	obs, err := s.resolver.Current(ctx, zip)
	if err != nil {
		return ZipReport{}, err
	}

	c, err := s.convert(temperature.FormatValue(obs.TempC) + temperature.Celsius.Symbol())
	if err != nil {
		return ZipReport{}, err
	}
	return ZipReport{Observation: obs, Conversion: c}, nil
}

func (s *Service) convert(input string) (temperature.Conversion, error) {
	c, err := temperature.ParseAndConvert(input)
	if err != nil {
		var perr *temperature.ParseError
		if errors.As(err, &perr) {
			s.metrics.ParseErrors.WithLabelValues(perr.Kind.String()).Inc()
		}
		return temperature.Conversion{}, err
	}
	s.metrics.Conversions.WithLabelValues(c.Original.Scale.String()).Inc()
	return c, nil
}

// History returns the raw usage history.
func (s *Service) History(ctx context.Context, origin usagelog.Origin) (string, error) {
	text, err := s.history.ReadAll(ctx)
	s.record(ctx, origin, "History accessed")
	if err != nil {
		s.log.WithError(err).Debug("usage history unavailable")
		return "", ErrHistoryUnavailable
	}
	return text, nil
}

// Help returns the command summary.
func (s *Service) Help(ctx context.Context, origin usagelog.Origin) string {
	s.record(ctx, origin, "Help requested")
	return HelpText
}

// Invalid handles an invocation with no recognised action.
func (s *Service) Invalid(ctx context.Context, origin usagelog.Origin) string {
	s.record(ctx, origin, "Invalid entry")
	return InvalidPrompt
}

// record appends to the usage history on a best-effort basis.
func (s *Service) record(ctx context.Context, origin usagelog.Origin, description string) {
	if err := s.history.Record(ctx, origin, description); err != nil {
		s.metrics.UsageWrites.WithLabelValues("error").Inc()
		s.log.WithError(err).Warn("failed to record usage")
		return
	}
	s.metrics.UsageWrites.WithLabelValues("success").Inc()
}
