package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/jmartens/go-logistics/internal/config"
	"github.com/jmartens/go-logistics/internal/models"
)

// stub providers with scripted outcomes
type stubWeather struct {
	name string
	fail bool
}

func (s *stubWeather) Name() string { return s.name }

func (s *stubWeather) Weather(ctx context.Context, location string) (*models.WeatherReport, error) {
	if s.fail {
		return nil, errors.New("scripted failure")
	}
	return &models.WeatherReport{Location: location, Conditions: "Clear"}, nil
}

type stubTraffic struct {
	name string
	fail bool
}

func (s *stubTraffic) Name() string { return s.name }

func (s *stubTraffic) Traffic(ctx context.Context, routeID string) (*models.TrafficReport, error) {
	if s.fail {
		return nil, errors.New("scripted failure")
	}
	return &models.TrafficReport{RouteID: routeID, CongestionLevel: "Clear"}, nil
}

func newStubService(weatherPrimaryFails, weatherSecondaryFails, trafficPrimaryFails, trafficSecondaryFails bool) *DataService {
	s := &DataService{
		mode:             config.ProviderModeMock,
		weatherPrimary:   &stubWeather{name: "wp", fail: weatherPrimaryFails},
		weatherSecondary: &stubWeather{name: "ws", fail: weatherSecondaryFails},
		trafficPrimary:   &stubTraffic{name: "tp", fail: trafficPrimaryFails},
		trafficSecondary: &stubTraffic{name: "ts", fail: trafficSecondaryFails},
		breakers:         make(map[string]*circuitBreaker),
	}
	for _, name := range []string{"wp", "ws", "tp", "ts"} {
		s.breakers[name] = newCircuitBreaker(name)
	}
	return s
}

func TestDataService_WeatherPrimary(t *testing.T) {
	svc := newStubService(false, false, false, false)

	report, err := svc.Weather(context.Background(), "Chicago")
	if err != nil {
		t.Fatalf("Weather failed: %v", err)
	}
	if report.Location != "Chicago" {
		t.Errorf("expected location Chicago, got %q", report.Location)
	}
}

func TestDataService_WeatherFallsBackToSecondary(t *testing.T) {
	svc := newStubService(true, false, false, false)

	report, err := svc.Weather(context.Background(), "Denver")
	if err != nil {
		t.Fatalf("Weather with failing primary should fall back: %v", err)
	}
	if report == nil {
		t.Fatal("expected report from secondary provider")
	}
}

func TestDataService_WeatherAllProvidersFail(t *testing.T) {
	svc := newStubService(true, true, false, false)

	report, err := svc.Weather(context.Background(), "Atlanta")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if report != nil {
		t.Errorf("expected nil report on total failure, got %+v", report)
	}
}

func TestDataService_TrafficFallsBackToSecondary(t *testing.T) {
	svc := newStubService(false, false, true, false)

	report, err := svc.Traffic(context.Background(), "route-1")
	if err != nil {
		t.Fatalf("Traffic with failing primary should fall back: %v", err)
	}
	if report.RouteID != "route-1" {
		t.Errorf("expected route-1, got %q", report.RouteID)
	}
}

func TestDataService_TrafficAllProvidersFail(t *testing.T) {
	svc := newStubService(false, false, true, true)

	_, err := svc.Traffic(context.Background(), "route-1")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestDataService_QuakesEmptyInMockMode(t *testing.T) {
	svc := NewDataService(config.ProvidersConfig{Mode: config.ProviderModeMock})

	quakes, err := svc.Quakes(context.Background())
	if err != nil {
		t.Fatalf("Quakes failed: %v", err)
	}
	if len(quakes) != 0 {
		t.Errorf("expected no quakes in mock mode, got %d", len(quakes))
	}
}

func TestDataService_MockModeSurvivesForcedFailures(t *testing.T) {
	// Force every simulated provider to fail on each call. Calls must return
	// errors, never panic.
	svc := &DataService{
		mode:             config.ProviderModeMock,
		weatherPrimary:   NewMockWeatherProvider("p", 1.0),
		weatherSecondary: NewMockWeatherProvider("s", 1.0),
		trafficPrimary:   NewMockTrafficProvider("tp2", 1.0),
		trafficSecondary: NewMockTrafficProvider("ts2", 1.0),
		breakers:         make(map[string]*circuitBreaker),
	}
	for _, name := range []string{"p", "s", "tp2", "ts2"} {
		svc.breakers[name] = newCircuitBreaker(name)
	}

	ctx := context.Background()
	for i := 0; i < 20; i++ {
		if _, err := svc.Weather(ctx, "Chicago"); err == nil {
			t.Error("expected weather error with 100% failure rate")
		}
		if _, err := svc.Traffic(ctx, "route-1"); err == nil {
			t.Error("expected traffic error with 100% failure rate")
		}
	}
}
