package weather

import (
	"strings"
	"time"
)

// Observation is the current weather reported for one postal/zip code.
// Only TempC feeds the converter; the rest is carried for display.
type Observation struct {
	ID        string    `json:"id"`
	Zip       string    `json:"zip"`
	Name      string    `json:"name"`
	Region    string    `json:"region"`
	Country   string    `json:"country"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	TZID      string    `json:"tz_id"`
	LocalTime string    `json:"localtime"`
	TempC     float32   `json:"temp_c"`
	TempF     float32   `json:"temp_f"`
	Condition string    `json:"condition"`
	Humidity  int       `json:"humidity"`
	WindKph   float64   `json:"wind_kph"`
	Provider  string    `json:"provider"`
	Timestamp time.Time `json:"timestamp"` // always UTC
}

// NormalizeZip trims surrounding whitespace and upper-cases the code so
// "sw1a 1aa" and "SW1A 1AA" share cache and store entries.
func NormalizeZip(zip string) string {
	return strings.ToUpper(strings.TrimSpace(zip))
}
