package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jmartens/go-logistics/internal/models"
)

// OpenWeatherProvider is the backup weather source. Requires an API key.
type OpenWeatherProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewOpenWeatherProvider(baseURL, apiKey string, timeout time.Duration) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *OpenWeatherProvider) Name() string { return "OpenWeatherMap" }

type owmResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Visibility int `json:"visibility"` // meters
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (p *OpenWeatherProvider) Weather(ctx context.Context, location string) (*models.WeatherReport, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("OpenWeatherMap API key not configured")
	}

	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", p.apiKey)
	q.Set("units", "imperial")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/weather?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}
	if len(data.Weather) == 0 {
		return nil, fmt.Errorf("OpenWeatherMap response for %s has no weather entries", location)
	}

	alerts := []string{}
	switch strings.ToLower(data.Weather[0].Main) {
	case "thunderstorm", "snow", "drizzle":
		alerts = append(alerts, "Weather alert: "+data.Weather[0].Main)
	}

	visibilityKm := 10.0
	if data.Visibility > 0 {
		visibilityKm = float64(data.Visibility) / 1000
	}
	visibility := "Good"
	if visibilityKm < 5 {
		visibility = "Poor"
		alerts = append(alerts, "Reduced visibility")
	}

	return &models.WeatherReport{
		Location:    location,
		Temperature: data.Main.Temp,
		Conditions:  capitalize(data.Weather[0].Description),
		WindSpeed:   data.Wind.Speed,
		Visibility:  visibility,
		Alerts:      alerts,
	}, nil
}
