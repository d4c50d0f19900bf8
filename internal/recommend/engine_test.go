package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmartens/go-logistics/internal/config"
	"github.com/jmartens/go-logistics/internal/models"
)

type fakeStore struct {
	active   []models.Facility
	problems []models.Facility
	listErr  error
}

func (s *fakeStore) ListActive(ctx context.Context) ([]models.Facility, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.active, nil
}

func (s *fakeStore) ListProblem(ctx context.Context, window time.Duration) ([]models.Facility, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.problems, nil
}

type fakeService struct {
	weather    map[string]*models.WeatherReport
	traffic    map[string]*models.TrafficReport
	quakes     []models.QuakeEvent
	weatherErr error
	trafficErr error
	quakesErr  error
}

func (s *fakeService) Weather(ctx context.Context, location string) (*models.WeatherReport, error) {
	if s.weatherErr != nil {
		return nil, s.weatherErr
	}
	if r, ok := s.weather[location]; ok {
		return r, nil
	}
	return &models.WeatherReport{Location: location, Conditions: "Clear", Alerts: []string{}}, nil
}

func (s *fakeService) Traffic(ctx context.Context, routeID string) (*models.TrafficReport, error) {
	if s.trafficErr != nil {
		return nil, s.trafficErr
	}
	if r, ok := s.traffic[routeID]; ok {
		return r, nil
	}
	return &models.TrafficReport{RouteID: routeID, CongestionLevel: "Clear", Incidents: []string{}}, nil
}

func (s *fakeService) Quakes(ctx context.Context) ([]models.QuakeEvent, error) {
	if s.quakesErr != nil {
		return nil, s.quakesErr
	}
	return s.quakes, nil
}

func (s *fakeService) Mode() config.ProviderMode {
	return config.ProviderModeMock
}

func facility(id, name string, load, capacity int) models.Facility {
	f := models.NewFacility(id, name, "Somewhere", models.FacilityTypeStation)
	f.CurrentLoad = load
	f.MaxCapacity = capacity
	return *f
}

func equipPtr(s models.EquipmentStatus) *models.EquipmentStatus { return &s }

func byType(recs []models.Recommendation, t string) []models.Recommendation {
	var out []models.Recommendation
	for _, r := range recs {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

func TestEngine_RerouteSuggestsLeastUtilizedAlternatives(t *testing.T) {
	down := facility("chicago-hub", "Chicago Hub", 900, 1000)
	down.EquipmentStatus = equipPtr(models.EquipmentDown)

	store := &fakeStore{
		problems: []models.Facility{down},
		active: []models.Facility{
			down,
			facility("denver-station", "Denver Station", 700, 1000),
			facility("atlanta-hub", "Atlanta Hub", 100, 1000),
			facility("phoenix-station", "Phoenix Station", 400, 1000),
			facility("miami-receiving", "Miami Receiving", 950, 1000), // over 80%, excluded
		},
	}

	e := NewEngine(store, &fakeService{})
	recs := byType(e.Recommendations(context.Background()), "reroute")

	if len(recs) != 1 {
		t.Fatalf("expected 1 reroute, got %d", len(recs))
	}

	r := recs[0]
	if r.Priority != "high" {
		t.Errorf("priority = %s, want high for equipment down", r.Priority)
	}
	if r.SourceFacility != "Chicago Hub" {
		t.Errorf("source = %s, want Chicago Hub", r.SourceFacility)
	}

	want := []string{"Atlanta Hub", "Phoenix Station", "Denver Station"}
	if len(r.SuggestedAlternatives) != len(want) {
		t.Fatalf("alternatives = %v, want %v", r.SuggestedAlternatives, want)
	}
	for i, name := range want {
		if r.SuggestedAlternatives[i] != name {
			t.Errorf("alternative[%d] = %s, want %s", i, r.SuggestedAlternatives[i], name)
		}
	}
}

func TestEngine_RerouteMediumPriorityForLowProductivity(t *testing.T) {
	slow := facility("denver-station", "Denver Station", 300, 1000)
	prod := 0.55
	slow.ProductivityRate = &prod
	slow.EquipmentStatus = equipPtr(models.EquipmentOperational)

	store := &fakeStore{
		problems: []models.Facility{slow},
		active:   []models.Facility{slow, facility("atlanta-hub", "Atlanta Hub", 100, 1000)},
	}

	e := NewEngine(store, &fakeService{})
	recs := byType(e.Recommendations(context.Background()), "reroute")

	if len(recs) != 1 {
		t.Fatalf("expected 1 reroute, got %d", len(recs))
	}
	if recs[0].Priority != "medium" {
		t.Errorf("priority = %s, want medium", recs[0].Priority)
	}
}

func TestEngine_NoReroutesWhenAllHealthy(t *testing.T) {
	store := &fakeStore{
		active: []models.Facility{facility("chicago-hub", "Chicago Hub", 400, 1000)},
	}

	e := NewEngine(store, &fakeService{})
	if recs := byType(e.Recommendations(context.Background()), "reroute"); len(recs) != 0 {
		t.Errorf("expected no reroutes, got %d", len(recs))
	}
}

func TestEngine_WeatherAdvisoryForActiveAlerts(t *testing.T) {
	svc := &fakeService{
		weather: map[string]*models.WeatherReport{
			"Denver": {
				Location:   "Denver",
				Conditions: "Snow",
				Alerts:     []string{"Severe weather warning - expect delays"},
			},
		},
	}

	e := NewEngine(&fakeStore{}, svc)
	recs := byType(e.Recommendations(context.Background()), "weather_advisory")

	if len(recs) != 1 {
		t.Fatalf("expected 1 weather advisory, got %d", len(recs))
	}
	if recs[0].Location != "Denver" {
		t.Errorf("location = %s, want Denver", recs[0].Location)
	}
	if recs[0].Priority != "medium" {
		t.Errorf("priority = %s, want medium", recs[0].Priority)
	}
}

func TestEngine_HighwayClosureAdvisory(t *testing.T) {
	svc := &fakeService{
		traffic: map[string]*models.TrafficReport{
			"I-80-Chicago-Denver": {
				RouteID:           "I-80-Chicago-Denver",
				CongestionLevel:   "Severe",
				Incidents:         []string{"FULL HIGHWAY CLOSURE - Both directions closed"},
				EstimatedDelayMin: 300,
				AlternativeRoutes: []string{"I-70 through Kansas (southern route)"},
			},
		},
	}

	e := NewEngine(&fakeStore{}, svc)
	recs := byType(e.Recommendations(context.Background()), "highway_closure")

	if len(recs) != 1 {
		t.Fatalf("expected 1 closure advisory, got %d", len(recs))
	}
	if recs[0].Priority != "high" {
		t.Errorf("priority = %s, want high for 300 minute delay", recs[0].Priority)
	}
	if len(recs[0].SuggestedAlternatives) != 1 {
		t.Errorf("expected detour suggestions carried through, got %v", recs[0].SuggestedAlternatives)
	}
}

func TestEngine_HighwayIncidentAdvisory(t *testing.T) {
	svc := &fakeService{
		traffic: map[string]*models.TrafficReport{
			"I-75-Chicago-Atlanta": {
				RouteID:           "I-75-Chicago-Atlanta",
				CongestionLevel:   "Heavy",
				Incidents:         []string{"Construction in Kentucky - lane restrictions"},
				EstimatedDelayMin: 45,
			},
		},
	}

	e := NewEngine(&fakeStore{}, svc)
	recs := byType(e.Recommendations(context.Background()), "highway_incident")

	if len(recs) != 1 {
		t.Fatalf("expected 1 incident advisory, got %d", len(recs))
	}
	if recs[0].Priority != "medium" {
		t.Errorf("priority = %s, want medium for 45 minute delay", recs[0].Priority)
	}
}

func TestEngine_ShortDelaysProduceNoAdvisory(t *testing.T) {
	svc := &fakeService{
		traffic: map[string]*models.TrafficReport{
			"I-80-Chicago-Denver": {
				RouteID:           "I-80-Chicago-Denver",
				CongestionLevel:   "Moderate",
				EstimatedDelayMin: 20,
			},
		},
	}

	e := NewEngine(&fakeStore{}, svc)
	recs := e.Recommendations(context.Background())

	if got := len(byType(recs, "highway_incident")) + len(byType(recs, "highway_closure")); got != 0 {
		t.Errorf("expected no highway advisories for a 20 minute delay, got %d", got)
	}
}

func TestEngine_QuakeAdvisoryThresholds(t *testing.T) {
	svc := &fakeService{
		quakes: []models.QuakeEvent{
			{Magnitude: 4.8, Location: "Nevada"},
			{Magnitude: 5.4, Location: "Southern California"},
			{Magnitude: 6.7, Location: "Alaska Peninsula"},
		},
	}

	e := NewEngine(&fakeStore{}, svc)
	recs := byType(e.Recommendations(context.Background()), "earthquake_advisory")

	if len(recs) != 2 {
		t.Fatalf("expected 2 earthquake advisories, got %d", len(recs))
	}
	if recs[0].Priority != "medium" || recs[0].Location != "Southern California" {
		t.Errorf("first advisory = %s/%s, want medium/Southern California", recs[0].Priority, recs[0].Location)
	}
	if recs[1].Priority != "high" || recs[1].Location != "Alaska Peninsula" {
		t.Errorf("second advisory = %s/%s, want high/Alaska Peninsula", recs[1].Priority, recs[1].Location)
	}
}

func TestEngine_DegradedProvidersStillReturn(t *testing.T) {
	down := facility("chicago-hub", "Chicago Hub", 900, 1000)
	down.EquipmentStatus = equipPtr(models.EquipmentDown)

	store := &fakeStore{
		problems: []models.Facility{down},
		active:   []models.Facility{down, facility("atlanta-hub", "Atlanta Hub", 100, 1000)},
	}
	svc := &fakeService{
		weatherErr: errors.New("all providers unavailable"),
		trafficErr: errors.New("all providers unavailable"),
		quakesErr:  errors.New("feed offline"),
	}

	e := NewEngine(store, svc)
	recs := e.Recommendations(context.Background())

	if len(byType(recs, "reroute")) != 1 {
		t.Errorf("expected reroute recommendations despite provider outage, got %v", recs)
	}
}

func TestEngine_StoreFailureYieldsEmptySlice(t *testing.T) {
	e := NewEngine(&fakeStore{listErr: errors.New("database locked")}, &fakeService{})

	recs := e.Recommendations(context.Background())
	if recs == nil {
		t.Fatal("expected non-nil slice")
	}
	if len(byType(recs, "reroute")) != 0 {
		t.Errorf("expected no reroutes on store failure, got %v", recs)
	}
}
