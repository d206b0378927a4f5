package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/temperature-converter/internal/converter"
	"github.com/i474232898/temperature-converter/internal/observability"
	"github.com/i474232898/temperature-converter/internal/store"
	"github.com/i474232898/temperature-converter/internal/usagelog"
	"github.com/i474232898/temperature-converter/internal/weather"
	"github.com/i474232898/temperature-converter/internal/weather/providers"
)

type stubProvider struct {
	obs weather.Observation
	err error
}

func (p stubProvider) Name() string { return "stub" }

func (p stubProvider) Current(_ context.Context, zip string) (weather.Observation, error) {
	if p.err != nil {
		return weather.Observation{}, p.err
	}
	obs := p.obs
	obs.Zip = zip
	return obs, nil
}

func newTestApp(t *testing.T, p weather.Provider) *fiber.App {
	t.Helper()
	log := observability.NewDiscardLogger()
	m := observability.NewMetricsForTesting()

	weatherSvc := weather.NewService(p, store.NewMemoryStore(10, time.Hour, nil), log, m)
	rec := usagelog.NewRecorder(usagelog.NewMemoryLog(), nil)
	conv := converter.NewService(weatherSvc, rec, log, m)
	return NewApp(conv, weatherSvc, log)
}

func doGet(t *testing.T, app *fiber.App, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

type readingJSON struct {
	Scale string  `json:"scale"`
	Value float64 `json:"value"`
}

type conversionJSON struct {
	Original readingJSON `json:"original"`
	DerivedA readingJSON `json:"derived_a"`
	DerivedB readingJSON `json:"derived_b"`
}

func TestConvert_Success(t *testing.T) {
	app := newTestApp(t, stubProvider{})

	resp, body := doGet(t, app, "/api/v1/convert?temp=10F")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got conversionJSON
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Fahrenheit", got.Original.Scale)
	assert.Equal(t, 10.0, got.Original.Value)
	assert.Equal(t, "Kelvin", got.DerivedA.Scale)
	assert.InDelta(t, 260.9278, got.DerivedA.Value, 1e-4)
	assert.Equal(t, "Celsius", got.DerivedB.Scale)
	assert.InDelta(t, -12.22222, got.DerivedB.Value, 1e-4)
}

func TestConvert_ParseErrors(t *testing.T) {
	app := newTestApp(t, stubProvider{})

	tests := []struct {
		query string
		kind  string
	}{
		{"temp=10t", "unknown_scale"},
		{"temp=10%20k", "contains_space"},
		{"temp=10qwes", "invalid_number"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, body := doGet(t, app, "/api/v1/convert?"+tt.query)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var got map[string]any
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, tt.kind, got["kind"])
		})
	}
}

func TestConvert_MissingTemp(t *testing.T) {
	app := newTestApp(t, stubProvider{})
	resp, _ := doGet(t, app, "/api/v1/convert")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWeatherCurrent_AndLatest(t *testing.T) {
	app := newTestApp(t, stubProvider{obs: weather.Observation{
		ID: "obs-1", Name: "Seattle", Region: "Washington", TempC: 10,
		Timestamp: time.Now().UTC(),
	}})

	resp, _ := doGet(t, app, "/api/v1/weather/latest?zip=98101")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := doGet(t, app, "/api/v1/weather/current?zip=98101")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report struct {
		Observation weather.Observation `json:"observation"`
		Conversion  conversionJSON      `json:"conversion"`
	}
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, "Seattle", report.Observation.Name)
	assert.Equal(t, "Celsius", report.Conversion.Original.Scale)
	assert.InDelta(t, 283.15, report.Conversion.DerivedA.Value, 1e-4)
	assert.InDelta(t, 50.0, report.Conversion.DerivedB.Value, 1e-4)

	resp, body = doGet(t, app, "/api/v1/weather/latest?zip=98101")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var obs weather.Observation
	require.NoError(t, json.Unmarshal(body, &obs))
	assert.Equal(t, "obs-1", obs.ID)
}

func TestWeatherCurrent_LookupFailure(t *testing.T) {
	app := newTestApp(t, stubProvider{err: errors.New("No matching location found.")})

	resp, body := doGet(t, app, "/api/v1/weather/current?zip=00000")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, string(body), "No matching location found.")
}

func TestWeatherCurrent_UnknownZipIsNotFound(t *testing.T) {
	app := newTestApp(t, stubProvider{err: &providers.APIError{
		StatusCode: http.StatusBadRequest, Code: 1006, Message: "No matching location found.",
	}})

	resp, body := doGet(t, app, "/api/v1/weather/current?zip=00000")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "No matching location found.")
}

func TestWeatherCurrent_UpstreamFailureIsBadGateway(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"server error", &providers.APIError{StatusCode: http.StatusInternalServerError}},
		{"rate limited", &providers.APIError{StatusCode: http.StatusTooManyRequests}},
		{"bad api key", &providers.APIError{StatusCode: http.StatusForbidden, Code: 2008}},
		{"circuit open", providers.ErrCircuitOpen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, stubProvider{err: tt.err})
			resp, _ := doGet(t, app, "/api/v1/weather/current?zip=10001")
			assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		})
	}
}

func TestWeatherCurrent_MissingZip(t *testing.T) {
	app := newTestApp(t, stubProvider{})
	resp, _ := doGet(t, app, "/api/v1/weather/current?zip=%20")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWeatherHistory_Validation(t *testing.T) {
	app := newTestApp(t, stubProvider{})

	// Missing from/to should return 400.
	resp, _ := doGet(t, app, "/api/v1/weather/history?zip=10001")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// to before from should also return 400.
	resp, _ = doGet(t, app, "/api/v1/weather/history?zip=10001&from=2000&to=1000")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doGet(t, app, "/api/v1/weather/history?zip=10001&from=yesterday&to=1000")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWeatherHistory_Range(t *testing.T) {
	ts := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	app := newTestApp(t, stubProvider{obs: weather.Observation{ID: "a", TempC: 3, Timestamp: ts}})

	resp, _ := doGet(t, app, "/api/v1/weather/current?zip=10001")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doGet(t, app, "/api/v1/weather/history?zip=10001&from=2026-10-19T11:00:00Z&to=2026-10-19T13:00:00Z")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Zip          string                `json:"zip"`
		Observations []weather.Observation `json:"observations"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "10001", got.Zip)
	require.Len(t, got.Observations, 1)
	assert.Equal(t, "a", got.Observations[0].ID)

	resp, _ = doGet(t, app, "/api/v1/weather/history?zip=10001&from=2026-10-18T00:00:00Z&to=2026-10-18T01:00:00Z")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUsage(t *testing.T) {
	app := newTestApp(t, stubProvider{})

	resp, body := doGet(t, app, "/api/v1/usage")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "File read error")

	doGet(t, app, "/api/v1/convert?temp=0K")

	resp, body = doGet(t, app, "/api/v1/usage")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "History accessed on ")
	assert.Contains(t, string(body), "    Kelvin: 0\n")
	assert.Contains(t, string(body), "[http]")
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t, stubProvider{})

	resp, body := doGet(t, app, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)

	resp, _ = doGet(t, app, "/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
