package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/i474232898/temperature-converter/internal/weather"
)

// WeatherAPIProvider implements weather.Provider for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewWeatherAPIProvider creates a provider for the current.json endpoint under
// baseURL (e.g. https://api.weatherapi.com/v1). retries is the number of extra
// attempts on transient failures; 0 disables retrying.
func NewWeatherAPIProvider(client *http.Client, baseURL, apiKey string, retries int) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: baseURL + "/current.json",
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      retries,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: newCircuitBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

// Current fetches the current conditions for zip. Air-quality data is not requested.
func (p *WeatherAPIProvider) Current(ctx context.Context, zip string) (weather.Observation, error) {
	if p.apiKey == "" {
		return weather.Observation{}, ErrNoAPIKey
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("q", zip)
		values.Set("aqi", "no")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Observation{}, err
	}
	defer resp.Body.Close()

	var payload currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Observation{}, fmt.Errorf("decode response: %w", err)
	}

	ts := time.Unix(payload.Current.LastUpdatedEpoch, 0).UTC()
	if payload.Current.LastUpdatedEpoch == 0 {
		ts = time.Now().UTC()
	}

	return weather.Observation{
		ID:        uuid.NewString(),
		Zip:       zip,
		Name:      payload.Location.Name,
		Region:    payload.Location.Region,
		Country:   payload.Location.Country,
		Lat:       payload.Location.Lat,
		Lon:       payload.Location.Lon,
		TZID:      payload.Location.TZID,
		LocalTime: payload.Location.LocalTime,
		TempC:     payload.Current.TempC,
		TempF:     payload.Current.TempF,
		Condition: payload.Current.Condition.Text,
		Humidity:  payload.Current.Humidity,
		WindKph:   payload.Current.WindKph,
		Provider:  p.name,
		Timestamp: ts,
	}, nil
}

// WeatherAPI.com current.json response types.

type currentResponse struct {
	Location struct {
		Name           string  `json:"name"`
		Region         string  `json:"region"`
		Country        string  `json:"country"`
		Lat            float64 `json:"lat"`
		Lon            float64 `json:"lon"`
		TZID           string  `json:"tz_id"`
		LocaltimeEpoch int64   `json:"localtime_epoch"`
		LocalTime      string  `json:"localtime"`
	} `json:"location"`
	Current struct {
		LastUpdatedEpoch int64   `json:"last_updated_epoch"`
		LastUpdated      string  `json:"last_updated"`
		TempC            float32 `json:"temp_c"`
		TempF            float32 `json:"temp_f"`
		IsDay            int     `json:"is_day"`
		Condition        struct {
			Text string `json:"text"`
			Icon string `json:"icon"`
			Code int    `json:"code"`
		} `json:"condition"`
		WindKph    float64 `json:"wind_kph"`
		WindDir    string  `json:"wind_dir"`
		PressureMb float64 `json:"pressure_mb"`
		PrecipMm   float64 `json:"precip_mm"`
		Humidity   int     `json:"humidity"`
		Cloud      int     `json:"cloud"`
		FeelslikeC float64 `json:"feelslike_c"`
		UV         float64 `json:"uv"`
	} `json:"current"`
}
