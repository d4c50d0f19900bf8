package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmartens/go-logistics/internal/config"
	"github.com/jmartens/go-logistics/internal/models"
)

// ErrUnavailable is returned when every provider for a data kind failed.
// Callers treat it as a degraded condition, not a crash.
var ErrUnavailable = errors.New("all providers unavailable")

type WeatherProvider interface {
	Name() string
	Weather(ctx context.Context, location string) (*models.WeatherReport, error)
}

type TrafficProvider interface {
	Name() string
	Traffic(ctx context.Context, routeID string) (*models.TrafficReport, error)
}

type QuakeProvider interface {
	Quakes(ctx context.Context) ([]models.QuakeEvent, error)
}

// MetricsProvider supplies operational readings for a facility. Only the
// simulated internal feed implements it; there is no real upstream for
// facility telemetry.
type MetricsProvider interface {
	FacilityMetrics(ctx context.Context, facilityID string) (*models.FacilityMetrics, error)
}

// Service is the fallback-aware data surface handlers and background services
// consume.
type Service interface {
	Weather(ctx context.Context, location string) (*models.WeatherReport, error)
	Traffic(ctx context.Context, routeID string) (*models.TrafficReport, error)
	Quakes(ctx context.Context) ([]models.QuakeEvent, error)
	Mode() config.ProviderMode
}

// DataService tries the primary provider first and falls back to the
// secondary. Each provider sits behind its own circuit breaker. Provider
// errors never propagate as panics; the worst case is ErrUnavailable.
type DataService struct {
	mode config.ProviderMode

	weatherPrimary   WeatherProvider
	weatherSecondary WeatherProvider
	trafficPrimary   TrafficProvider
	trafficSecondary TrafficProvider
	quakes           QuakeProvider

	breakers map[string]*circuitBreaker
}

func NewDataService(cfg config.ProvidersConfig) *DataService {
	s := &DataService{
		mode:     cfg.Mode,
		breakers: make(map[string]*circuitBreaker),
	}

	if cfg.Mode == config.ProviderModeReal {
		s.weatherPrimary = NewNWSProvider(cfg.NWSURL, cfg.RequestTimeout)
		s.weatherSecondary = NewOpenWeatherProvider(cfg.OpenWeatherURL, cfg.OpenWeatherAPIKey, cfg.RequestTimeout)
		s.trafficPrimary = NewHighwayProvider("Highway Closure API")
		s.trafficSecondary = NewHighwayProvider("State DOT API")
		s.quakes = NewUSGSProvider(cfg.USGSURL, cfg.RequestTimeout)
	} else {
		s.weatherPrimary = NewMockWeatherProvider("Primary Weather API", 0.10)
		s.weatherSecondary = NewMockWeatherProvider("Secondary Weather API", 0.05)
		s.trafficPrimary = NewMockTrafficProvider("Primary Highway API", 0.15)
		s.trafficSecondary = NewMockTrafficProvider("Secondary Highway API", 0.08)
	}

	for _, name := range []string{
		s.weatherPrimary.Name(), s.weatherSecondary.Name(),
		s.trafficPrimary.Name(), s.trafficSecondary.Name(),
	} {
		s.breakers[name] = newCircuitBreaker(name)
	}

	return s
}

func (s *DataService) Mode() config.ProviderMode {
	return s.mode
}

func (s *DataService) Weather(ctx context.Context, location string) (*models.WeatherReport, error) {
	report, err := s.callWeather(ctx, s.weatherPrimary, location)
	if err == nil {
		return report, nil
	}

	report, err2 := s.callWeather(ctx, s.weatherSecondary, location)
	if err2 == nil {
		slog.Warn("using secondary weather provider", "location", location, "primary_error", err.Error())
		return report, nil
	}

	slog.Error("all weather providers failed", "location", location, "primary_error", err.Error(), "secondary_error", err2.Error())
	return nil, fmt.Errorf("weather for %s: %w", location, ErrUnavailable)
}

func (s *DataService) Traffic(ctx context.Context, routeID string) (*models.TrafficReport, error) {
	report, err := s.callTraffic(ctx, s.trafficPrimary, routeID)
	if err == nil {
		return report, nil
	}

	report, err2 := s.callTraffic(ctx, s.trafficSecondary, routeID)
	if err2 == nil {
		slog.Warn("using secondary traffic provider", "route_id", routeID, "primary_error", err.Error())
		return report, nil
	}

	slog.Error("all traffic providers failed", "route_id", routeID, "primary_error", err.Error(), "secondary_error", err2.Error())
	return nil, fmt.Errorf("traffic for %s: %w", routeID, ErrUnavailable)
}

// Quakes returns an empty list in mock mode; the simulated providers carry no
// earthquake feed.
func (s *DataService) Quakes(ctx context.Context) ([]models.QuakeEvent, error) {
	if s.quakes == nil {
		return []models.QuakeEvent{}, nil
	}
	return s.quakes.Quakes(ctx)
}

func (s *DataService) callWeather(ctx context.Context, p WeatherProvider, location string) (*models.WeatherReport, error) {
	var report *models.WeatherReport
	err := s.breakers[p.Name()].call(func() error {
		var err error
		report, err = p.Weather(ctx, location)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *DataService) callTraffic(ctx context.Context, p TrafficProvider, routeID string) (*models.TrafficReport, error) {
	var report *models.TrafficReport
	err := s.breakers[p.Name()].call(func() error {
		var err error
		report, err = p.Traffic(ctx, routeID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
