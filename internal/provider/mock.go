package provider

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/jmartens/go-logistics/internal/models"
)

// Simulated providers mirror the behavior of the real upstreams, including
// intermittent failures, so fallback paths get exercised outside production.

type MockWeatherProvider struct {
	name        string
	failureRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewMockWeatherProvider(name string, failureRate float64) *MockWeatherProvider {
	return &MockWeatherProvider{
		name:        name,
		failureRate: failureRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetSeed makes the provider deterministic. For tests.
func (p *MockWeatherProvider) SetSeed(seed int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rng = rand.New(rand.NewSource(seed))
}

func (p *MockWeatherProvider) Name() string { return p.name }

func (p *MockWeatherProvider) Weather(ctx context.Context, location string) (*models.WeatherReport, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rng.Float64() < p.failureRate {
		return nil, fmt.Errorf("%s: simulated outage", p.name)
	}

	conditions := []string{"Clear", "Cloudy", "Rain", "Snow", "Fog", "Storm"}
	condition := conditions[p.rng.Intn(len(conditions))]

	alerts := []string{}
	if condition == "Snow" || condition == "Storm" {
		alerts = append(alerts, "Severe weather warning: "+condition)
	}
	if condition == "Fog" {
		alerts = append(alerts, "Visibility reduced due to fog")
	}

	visibility := "Good"
	if condition == "Fog" || condition == "Storm" {
		visibility = "Poor"
	}

	return &models.WeatherReport{
		Location:    location,
		Temperature: -10 + p.rng.Float64()*45,
		Conditions:  condition,
		WindSpeed:   p.rng.Float64() * 25,
		Visibility:  visibility,
		Alerts:      alerts,
	}, nil
}

type MockTrafficProvider struct {
	name        string
	failureRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewMockTrafficProvider(name string, failureRate float64) *MockTrafficProvider {
	return &MockTrafficProvider{
		name:        name,
		failureRate: failureRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetSeed makes the provider deterministic. For tests.
func (p *MockTrafficProvider) SetSeed(seed int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rng = rand.New(rand.NewSource(seed))
}

func (p *MockTrafficProvider) Name() string { return p.name }

// Corridor-specific incident and detour tables for the three critical
// logistics routes.
var corridorIncidents = map[string][]string{
	"I-80-Chicago-Denver": {
		"Winter weather closure near Des Moines",
		"Bridge construction in Nebraska - single lane",
		"High wind restrictions for high-profile vehicles",
	},
	"I-75-Chicago-Atlanta": {
		"Construction in Kentucky - lane restrictions",
		"Fog conditions in Tennessee valleys",
		"Multi-vehicle accident near Cincinnati",
	},
	"I-10-Phoenix-Miami": {
		"Dust storm warnings in Arizona",
		"Bridge maintenance in Louisiana",
		"Flooding concerns in Texas panhandle",
	},
}

var corridorAlternatives = map[string][]string{
	"I-80-Chicago-Denver": {
		"I-76 through Pennsylvania/Ohio (longer)",
		"I-70 through Kansas (southern route)",
		"Rail freight via BNSF recommended",
	},
	"I-75-Chicago-Atlanta": {
		"I-65 through Alabama (western route)",
		"I-77 through West Virginia (eastern route)",
		"CSX rail service available",
	},
	"I-10-Phoenix-Miami": {
		"I-40 to I-75 (northern route)",
		"I-20 through Texas/Louisiana",
		"Consider air freight for urgent shipments",
	},
}

var genericIncidents = []string{
	"Construction zone delays",
	"Weather-related restrictions",
	"Accident with lane closures",
}

var minorIncidents = []string{
	"Lane restrictions - maintain speed",
	"Temporary speed reduction",
	"Shoulder work - no truck restrictions",
}

func (p *MockTrafficProvider) Traffic(ctx context.Context, routeID string) (*models.TrafficReport, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rng.Float64() < p.failureRate {
		return nil, fmt.Errorf("%s: simulated outage", p.name)
	}

	incidents := []string{}
	delay := 0
	severity := "Clear"

	switch chance := p.rng.Float64(); {
	case chance < 0.05:
		incidents = append(incidents, "FULL HIGHWAY CLOSURE - Both directions closed")
		severity = "Severe"
		delay = 240 + p.rng.Intn(241)
	case chance < 0.12:
		pool := corridorIncidents[routeID]
		if len(pool) == 0 {
			pool = genericIncidents
		}
		incidents = append(incidents, pool[p.rng.Intn(len(pool))])
		severity = "Heavy"
		delay = 30 + p.rng.Intn(91)
	case chance < 0.25:
		incidents = append(incidents, minorIncidents[p.rng.Intn(len(minorIncidents))])
		severity = "Moderate"
		delay = 5 + p.rng.Intn(26)
	}

	alternatives := []string{}
	if len(incidents) > 0 {
		if severity == "Severe" || severity == "Heavy" {
			if alts, ok := corridorAlternatives[routeID]; ok {
				alternatives = alts
			} else {
				alternatives = []string{
					"State route alternate available",
					"Off-peak travel recommended",
				}
			}
		} else {
			alternatives = []string{
				"Monitor conditions hourly",
				"Allow extra 30-60 minutes",
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

// MockMetricsProvider simulates the internal telemetry feed for facilities.
type MockMetricsProvider struct {
	failureRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewMockMetricsProvider() *MockMetricsProvider {
	return &MockMetricsProvider{
		failureRate: 0.05,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetSeed makes the provider deterministic. For tests.
func (p *MockMetricsProvider) SetSeed(seed int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rng = rand.New(rand.NewSource(seed))
}

func (p *MockMetricsProvider) FacilityMetrics(ctx context.Context, facilityID string) (*models.FacilityMetrics, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rng.Float64() < p.failureRate {
		return nil, fmt.Errorf("facility telemetry unavailable for %s", facilityID)
	}

	// Weighted equipment status: mostly operational
	statuses := []models.EquipmentStatus{
		models.EquipmentOperational,
		models.EquipmentMaintenance,
		models.EquipmentDown,
		models.EquipmentReducedCapacity,
	}
	weights := []float64{0.70, 0.15, 0.05, 0.10}
	roll := p.rng.Float64()
	status := statuses[len(statuses)-1]
	for i, w := range weights {
		if roll < w {
			status = statuses[i]
			break
		}
		roll -= w
	}

	downtime := 0
	if p.rng.Float64() < 0.3 {
		downtime = p.rng.Intn(61)
	}

	return &models.FacilityMetrics{
		FacilityID:       facilityID,
		StaffingLevel:    5 + p.rng.Intn(21),
		ProductivityRate: 0.6 + p.rng.Float64()*0.6,
		EquipmentStatus:  status,
		DowntimeMinutes:  downtime,
		Timestamp:        time.Now(),
	}, nil
}
