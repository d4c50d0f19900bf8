package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jmartens/go-logistics/internal/models"
)

// NWSProvider fetches forecasts from the National Weather Service
// (api.weather.gov). No API key required.
type NWSProvider struct {
	baseURL string
	client  *http.Client

	// api.weather.gov is keyed by coordinates, not city names
	coords map[string][2]float64
}

func NewNWSProvider(baseURL string, timeout time.Duration) *NWSProvider {
	return &NWSProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		coords: map[string][2]float64{
			"Chicago": {41.8781, -87.6298},
			"Denver":  {39.7392, -104.9903},
			"Atlanta": {33.7490, -84.3880},
			"Phoenix": {33.4484, -112.0740},
			"Seattle": {47.6062, -122.3321},
			"Miami":   {25.7617, -80.1918},
		},
	}
}

func (p *NWSProvider) Name() string { return "National Weather Service" }

type nwsPointsResponse struct {
	Properties struct {
		Forecast string `json:"forecast"`
	} `json:"properties"`
}

type nwsForecastResponse struct {
	Properties struct {
		Periods []nwsPeriod `json:"periods"`
	} `json:"properties"`
}

type nwsPeriod struct {
	Temperature      float64 `json:"temperature"`
	WindSpeed        string  `json:"windSpeed"`
	ShortForecast    string  `json:"shortForecast"`
	DetailedForecast string  `json:"detailedForecast"`
}

func (p *NWSProvider) Weather(ctx context.Context, location string) (*models.WeatherReport, error) {
	coord, ok := p.coords[location]
	if !ok {
		return nil, fmt.Errorf("no coordinates for location %q", location)
	}

	pointsURL := fmt.Sprintf("%s/points/%.4f,%.4f", p.baseURL, coord[0], coord[1])
	var points nwsPointsResponse
	if err := p.getJSON(ctx, pointsURL, &points); err != nil {
		return nil, fmt.Errorf("NWS points lookup: %w", err)
	}

	var forecast nwsForecastResponse
	if err := p.getJSON(ctx, points.Properties.Forecast, &forecast); err != nil {
		return nil, fmt.Errorf("NWS forecast fetch: %w", err)
	}
	if len(forecast.Properties.Periods) == 0 {
		return nil, fmt.Errorf("NWS forecast for %s has no periods", location)
	}

	current := forecast.Properties.Periods[0]

	alerts := []string{}
	detail := strings.ToLower(current.DetailedForecast)
	if strings.Contains(detail, "snow") || strings.Contains(detail, "storm") || strings.Contains(detail, "severe") {
		alerts = append(alerts, "Weather advisory in effect")
	}
	if strings.Contains(detail, "fog") || strings.Contains(detail, "visibility") {
		alerts = append(alerts, "Reduced visibility conditions")
	}

	visibility := "Good"
	if len(alerts) > 0 {
		visibility = "Reduced"
	}

	return &models.WeatherReport{
		Location:    location,
		Temperature: current.Temperature,
		Conditions:  current.ShortForecast,
		WindSpeed:   parseWindSpeed(current.WindSpeed),
		Visibility:  visibility,
		Alerts:      alerts,
	}, nil
}

func (p *NWSProvider) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("User-Agent", "go-logistics/1.0 (ops@example.com)")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding resp.Body: %w", err)
	}
	return nil
}

var windSpeedRe = regexp.MustCompile(`\d+`)

// parseWindSpeed handles NWS wind strings like "10 mph" or "5 to 15 mph",
// averaging ranges.
func parseWindSpeed(s string) float64 {
	nums := windSpeedRe.FindAllString(s, -1)
	if len(nums) == 0 {
		return 0
	}
	if len(nums) >= 2 {
		lo, _ := strconv.Atoi(nums[0])
		hi, _ := strconv.Atoi(nums[1])
		return float64(lo+hi) / 2
	}
	v, _ := strconv.ParseFloat(nums[0], 64)
	return v
}
