package provider

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/jmartens/go-logistics/internal/models"
)

// HighwayProvider reports closures and incidents on major logistics
// corridors. State DOT feeds (511-style) have no uniform national API, so
// conditions are synthesized with realistic frequencies; the provider shape
// matches what a per-state integration would plug into.
type HighwayProvider struct {
	name string

	mu  sync.Mutex
	rng *rand.Rand
}

func NewHighwayProvider(name string) *HighwayProvider {
	return &HighwayProvider{
		name: name,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (p *HighwayProvider) Name() string { return p.name }

func (p *HighwayProvider) Traffic(ctx context.Context, routeID string) (*models.TrafficReport, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	incidents := []string{}
	delay := 0
	severity := "Light"

	switch chance := p.rng.Float64(); {
	case chance < 0.03:
		incidents = append(incidents, "FULL HIGHWAY CLOSURE")
		severity = "Severe"
		delay = 180 + p.rng.Intn(301)
	case chance < 0.08:
		major := []string{
			"Multi-vehicle accident - 2 lanes closed",
			"Bridge construction - single lane traffic",
			"Weather conditions - reduced speed limit",
		}
		incidents = append(incidents, major[p.rng.Intn(len(major))])
		severity = "Heavy"
		delay = 60 + p.rng.Intn(121)
	case chance < 0.15:
		minor := []string{
			"Construction zone - right lane closed",
			"Oversize load convoy - temporary delays",
			"Maintenance work - shoulder closure",
		}
		incidents = append(incidents, minor[p.rng.Intn(len(minor))])
		severity = "Moderate"
		delay = 15 + p.rng.Intn(46)
	}

	alternatives := []string{}
	if len(incidents) > 0 {
		if severity == "Severe" {
			alternatives = []string{
				"US Highway alternate route",
				"State route detour (add several hours)",
				"Rail freight option recommended",
			}
		} else {
			alternatives = []string{
				"Off-peak travel recommended",
				"Consider alternate route adding 30-60 min",
			}
		}
	}

	return &models.TrafficReport{
		RouteID:           routeID,
		CongestionLevel:   severity,
		Incidents:         incidents,
		EstimatedDelayMin: delay,
		AlternativeRoutes: alternatives,
	}, nil
}
