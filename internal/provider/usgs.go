package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jmartens/go-logistics/internal/models"
)

// USGSProvider pulls the significant-earthquake feed for routing advisories.
// Public API, no authentication.
type USGSProvider struct {
	url          string
	client       *http.Client
	minMagnitude float64
}

func NewUSGSProvider(url string, timeout time.Duration) *USGSProvider {
	return &USGSProvider{
		url:          url,
		client:       &http.Client{Timeout: timeout},
		minMagnitude: 4.0,
	}
}

type usgsResponse struct {
	Features []usgsFeature `json:"features"`
}

type usgsFeature struct {
	Properties usgsProperties `json:"properties"`
}

type usgsProperties struct {
	Mag   float64 `json:"mag"`
	Place string  `json:"place"`
	Time  int64   `json:"time"` // unix millis
	Alert string  `json:"alert"`
}

func (p *USGSProvider) Quakes(ctx context.Context) ([]models.QuakeEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
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

	var data usgsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	quakes := make([]models.QuakeEvent, 0, len(data.Features))
	for _, f := range data.Features {
		if f.Properties.Mag < p.minMagnitude {
			continue
		}
		level := f.Properties.Alert
		if level == "" {
			level = "green"
		}
		quakes = append(quakes, models.QuakeEvent{
			Magnitude: f.Properties.Mag,
			Location:  f.Properties.Place,
			Time:      f.Properties.Time,
			Level:     level,
		})
	}

	return quakes, nil
}
