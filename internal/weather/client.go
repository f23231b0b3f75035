// Package weather implements the OpenWeatherMap collaborator.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"echo/internal/config"
)

// ErrNoAPIKey indicates that no OpenWeatherMap credential was configured.
var ErrNoAPIKey = errors.New("weather: api key not configured")

// Report holds the subset of the OpenWeatherMap response the assistant
// reports on.
type Report struct {
	City        string
	Temperature float64
	Description string
	Humidity    int
	Pressure    int
	WindSpeed   float64
}

// Client fetches current conditions for a city.
type Client struct {
	httpClient *http.Client
	log        *slog.Logger
	baseURL    string
	apiKey     string
}

// NewClient creates a weather client. Returns ErrNoAPIKey when the
// configuration carries no credential so the caller can degrade gracefully.
func NewClient(cfg config.WeatherConfig, log *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.With("component", "weather_client"),
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
	}, nil
}

type owmResponse struct {
	Cod  json.Number `json:"cod"`
	Main struct {
		Temp     float64 `json:"temp"`
		Pressure int     `json:"pressure"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Message string `json:"message"`
}

// Current fetches the current conditions for city in metric units.
func (c *Client) Current(ctx context.Context, city string) (Report, error) {
	endpoint := fmt.Sprintf("%s?q=%s&appid=%s&units=metric", c.baseURL, url.QueryEscape(city), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Report{}, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	var data owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Report{}, fmt.Errorf("failed to decode weather response: %w", err)
	}

	if cod, _ := data.Cod.Int64(); cod != http.StatusOK {
		c.log.WarnContext(ctx, "Weather service returned error", "city", city, "code", data.Cod, "message", data.Message)
		return Report{}, fmt.Errorf("weather service error: %s", data.Message)
	}
	if len(data.Weather) == 0 {
		return Report{}, fmt.Errorf("weather response missing conditions")
	}

	return Report{
		City:        city,
		Temperature: data.Main.Temp,
		Description: data.Weather[0].Description,
		Humidity:    data.Main.Humidity,
		Pressure:    data.Main.Pressure,
		WindSpeed:   data.Wind.Speed,
	}, nil
}
