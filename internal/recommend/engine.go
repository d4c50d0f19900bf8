package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jmartens/go-logistics/internal/logging"
	"github.com/jmartens/go-logistics/internal/models"
	"github.com/jmartens/go-logistics/internal/provider"
)

// Store is the slice of the repository the engine reads from.
type Store interface {
	ListActive(ctx context.Context) ([]models.Facility, error)
	ListProblem(ctx context.Context, window time.Duration) ([]models.Facility, error)
}

// problemWindow bounds how stale a reading may be and still mark a facility
// as needing rerouting.
const problemWindow = 10 * time.Minute

// Key locations and corridors the advisory checks cover. These match the
// seeded network.
var (
	keyLocations = []string{"Chicago", "Denver", "Atlanta"}
	keyCorridors = []string{"I-80-Chicago-Denver", "I-75-Chicago-Atlanta", "I-10-Phoenix-Miami"}
)

// Engine produces routing and advisory recommendations from facility state
// and external conditions. Provider failures degrade the output, never fail
// the call.
type Engine struct {
	store Store
	svc   provider.Service
	log   *slog.Logger
}

func NewEngine(store Store, svc provider.Service) *Engine {
	return &Engine{
		store: store,
		svc:   svc,
		log:   logging.Component("recommend"),
	}
}

func (e *Engine) Recommendations(ctx context.Context) []models.Recommendation {
	recs := []models.Recommendation{}
	recs = append(recs, e.reroutes(ctx)...)
	recs = append(recs, e.weatherAdvisories(ctx)...)
	recs = append(recs, e.trafficAdvisories(ctx)...)
	recs = append(recs, e.quakeAdvisories(ctx)...)
	return recs
}

// reroutes suggests moving load away from facilities whose latest readings
// show trouble, toward the least utilized healthy facilities.
func (e *Engine) reroutes(ctx context.Context) []models.Recommendation {
	problems, err := e.store.ListProblem(ctx, problemWindow)
	if err != nil {
		e.log.Error("problem facility query failed", "error", err)
		return nil
	}
	if len(problems) == 0 {
		return nil
	}

	active, err := e.store.ListActive(ctx)
	if err != nil {
		e.log.Error("facility query failed", "error", err)
		return nil
	}

	problemIDs := make(map[string]bool, len(problems))
	for _, p := range problems {
		problemIDs[p.ID] = true
	}

	candidates := make([]models.Facility, 0, len(active))
	for _, f := range active {
		if problemIDs[f.ID] {
			continue
		}
		if float64(f.CurrentLoad) < 0.8*float64(f.MaxCapacity) {
			candidates = append(candidates, f)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Utilization() < candidates[j].Utilization()
	})

	var recs []models.Recommendation
	for _, p := range problems {
		alternatives := make([]string, 0, 3)
		for _, c := range candidates {
			if len(alternatives) == 3 {
				break
			}
			alternatives = append(alternatives, c.Name)
		}

		priority := "medium"
		reason := "Reduced productivity at facility"
		if p.EquipmentStatus != nil && *p.EquipmentStatus == models.EquipmentDown {
			priority = "high"
			reason = "Equipment down at facility"
		}

		recs = append(recs, models.Recommendation{
			Type:                  "reroute",
			Priority:              priority,
			SourceFacility:        p.Name,
			Reason:                reason,
			SuggestedAlternatives: alternatives,
			EstimatedImpact:       fmt.Sprintf("Divert inbound volume from %s until readings recover", p.Name),
		})
	}
	return recs
}

func (e *Engine) weatherAdvisories(ctx context.Context) []models.Recommendation {
	var recs []models.Recommendation
	for _, location := range keyLocations {
		report, err := e.svc.Weather(ctx, location)
		if err != nil {
			e.log.Warn("weather advisory check skipped", "location", location, "error", err)
			continue
		}
		if len(report.Alerts) == 0 {
			continue
		}

		recs = append(recs, models.Recommendation{
			Type:            "weather_advisory",
			Priority:        "medium",
			Location:        location,
			Reason:          strings.Join(report.Alerts, "; "),
			SuggestedAction: "Allow extra transit time and brief drivers on conditions",
			EstimatedImpact: fmt.Sprintf("Weather may slow shipments through %s", location),
		})
	}
	return recs
}

func (e *Engine) trafficAdvisories(ctx context.Context) []models.Recommendation {
	var recs []models.Recommendation
	for _, corridor := range keyCorridors {
		report, err := e.svc.Traffic(ctx, corridor)
		if err != nil {
			e.log.Warn("traffic advisory check skipped", "route", corridor, "error", err)
			continue
		}
		if report.EstimatedDelayMin <= 30 {
			continue
		}

		advisoryType := "highway_incident"
		for _, incident := range report.Incidents {
			if strings.Contains(incident, "CLOSURE") {
				advisoryType = "highway_closure"
				break
			}
		}

		priority := "medium"
		if report.EstimatedDelayMin > 120 {
			priority = "high"
		}

		reason := report.CongestionLevel + " congestion"
		if len(report.Incidents) > 0 {
			reason = report.Incidents[0]
		}

		recs = append(recs, models.Recommendation{
			Type:                  advisoryType,
			Priority:              priority,
			Location:              corridor,
			Reason:                reason,
			SuggestedAlternatives: report.AlternativeRoutes,
			EstimatedImpact:       fmt.Sprintf("Approximately %d minutes of added transit time", report.EstimatedDelayMin),
		})
	}
	return recs
}

func (e *Engine) quakeAdvisories(ctx context.Context) []models.Recommendation {
	quakes, err := e.svc.Quakes(ctx)
	if err != nil {
		e.log.Warn("earthquake advisory check skipped", "error", err)
		return nil
	}

	var recs []models.Recommendation
	for _, q := range quakes {
		if q.Magnitude <= 5 {
			continue
		}
		priority := "medium"
		if q.Magnitude > 6 {
			priority = "high"
		}
		recs = append(recs, models.Recommendation{
			Type:            "earthquake_advisory",
			Priority:        priority,
			Location:        q.Location,
			Reason:          fmt.Sprintf("Magnitude %.1f earthquake reported", q.Magnitude),
			SuggestedAction: "Verify facility and route integrity near the epicenter",
			EstimatedImpact: "Possible road and facility damage in the affected region",
		})
	}
	return recs
}
