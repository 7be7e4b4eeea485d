package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Rostov-on-Don.
const (
	weatherLat = 47.2357
	weatherLon = 39.7015
)

// Weather is one current-conditions snapshot.
type Weather struct {
	Temperature float64
	FeelsLike   float64
	Humidity    float64
	WindSpeed   float64
	Code        int
	Condition   string
}

// Summary renders the snapshot the way the mood analyzer expects it.
func (w Weather) Summary() string {
	return fmt.Sprintf("Temperature: %.1f°C, condition: %s", w.Temperature, w.Condition)
}

var (
	sunnyCodes = map[int]bool{0: true, 1: true}
	rainCodes  = map[int]bool{
		51: true, 53: true, 55: true,
		61: true, 63: true, 65: true,
		80: true, 81: true, 82: true,
		95: true,
	}
)

func conditionFor(code int) string {
	switch {
	case sunnyCodes[code]:
		return "sunny"
	case rainCodes[code]:
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 45 && code <= 48:
		return "fog"
	default:
		return "cloudy"
	}
}

// WeatherClient fetches current conditions from Open-Meteo. No API key
// required.
type WeatherClient struct {
	client *http.Client
	url    string
}

// NewWeatherClient creates a client with a sensible request timeout.
func NewWeatherClient() *WeatherClient {
	return &WeatherClient{
		client: &http.Client{Timeout: 15 * time.Second},
		url: fmt.Sprintf(
			"https://api.open-meteo.com/v1/forecast?latitude=%.4f&longitude=%.4f"+
				"&current=temperature_2m,apparent_temperature,relative_humidity_2m,wind_speed_10m,weather_code"+
				"&timezone=Europe%%2FMoscow",
			weatherLat, weatherLon),
	}
}

// Current returns the current conditions.
func (w *WeatherClient) Current(ctx context.Context) (Weather, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.url, nil)
	if err != nil {
		return Weather{}, err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return Weather{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Weather{}, fmt.Errorf("weather request: status %d", resp.StatusCode)
	}

	var payload struct {
		Current struct {
			Temperature float64 `json:"temperature_2m"`
			FeelsLike   float64 `json:"apparent_temperature"`
			Humidity    float64 `json:"relative_humidity_2m"`
			WindSpeed   float64 `json:"wind_speed_10m"`
			WeatherCode int     `json:"weather_code"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Weather{}, fmt.Errorf("weather decode: %w", err)
	}

	c := payload.Current
	return Weather{
		Temperature: c.Temperature,
		FeelsLike:   c.FeelsLike,
		Humidity:    c.Humidity,
		WindSpeed:   c.WindSpeed,
		Code:        c.WeatherCode,
		Condition:   conditionFor(c.WeatherCode),
	}, nil
}
