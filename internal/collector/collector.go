package collector

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jmartens/go-logistics/internal/broadcast"
	"github.com/jmartens/go-logistics/internal/config"
	"github.com/jmartens/go-logistics/internal/logging"
	"github.com/jmartens/go-logistics/internal/models"
	"github.com/jmartens/go-logistics/internal/provider"
	"github.com/jmartens/go-logistics/internal/worker"
)

// Store is the slice of the repository the collector needs.
type Store interface {
	ListActive(ctx context.Context) ([]models.Facility, error)
	InsertMetrics(ctx context.Context, m *models.FacilityMetrics) error
	InsertAlert(ctx context.Context, a *models.Alert) error
	HasRecentAlert(ctx context.Context, facilityID, alertType string, window time.Duration) (bool, error)
}

// Collector periodically pulls telemetry for every active facility, persists
// it through a worker pool, and raises alerts when readings cross thresholds.
type Collector struct {
	cfg         *config.Config
	store       Store
	metrics     provider.MetricsProvider
	broadcaster *broadcast.Broadcaster
	pool        *worker.Pool
	log         *slog.Logger
	wg          sync.WaitGroup
}

func New(cfg *config.Config, store Store, metrics provider.MetricsProvider, broadcaster *broadcast.Broadcaster) *Collector {
	return &Collector{
		cfg:         cfg,
		store:       store,
		metrics:     metrics,
		broadcaster: broadcaster,
		log:         logging.Component("collector"),
	}
}

func (c *Collector) Start(ctx context.Context) {
	process := func(ctx context.Context, job worker.Job) error {
		m := job.(*models.FacilityMetrics)
		if err := c.store.InsertMetrics(ctx, m); err != nil {
			return fmt.Errorf("persisting metrics for %s: %w", m.FacilityID, err)
		}
		return nil
	}

	c.pool = worker.NewPool(c.cfg.Worker.Count, c.cfg.Worker.BufferSize, process)
	c.pool.Start(ctx)

	c.wg.Add(1)
	go c.run(ctx)
}

func (c *Collector) run(ctx context.Context) {
	defer c.wg.Done()
	c.log.Info("collector starting", "interval", c.cfg.Collector.CollectInterval)

	ticker := time.NewTicker(c.cfg.Collector.CollectInterval)
	defer ticker.Stop()

	c.collect(ctx)

	for {
		select {
		case <-ctx.Done():
			c.log.Info("collector shutting down")
			return
		case <-ticker.C:
			c.collect(ctx)
		}
	}
}

func (c *Collector) collect(ctx context.Context) {
	facilities, err := c.store.ListActive(ctx)
	if err != nil {
		c.log.Error("listing facilities failed", "error", err)
		return
	}

	for _, f := range facilities {
		m, err := c.metrics.FacilityMetrics(ctx, f.ID)
		if err != nil {
			c.log.Warn("no metrics available", "facility", f.ID, "error", err)
			continue
		}
		c.pool.Submit(m)
	}

	c.checkAlerts(ctx)

	c.log.Debug("collection cycle complete", "facilities", len(facilities))
}

// checkAlerts evaluates alert rules against the latest persisted readings.
func (c *Collector) checkAlerts(ctx context.Context) {
	facilities, err := c.store.ListActive(ctx)
	if err != nil {
		c.log.Error("listing facilities for alert checks failed", "error", err)
		return
	}

	for _, f := range facilities {
		if f.ProductivityRate != nil && *f.ProductivityRate < 0.7 {
			c.raise(ctx, f.ID, "low_productivity",
				fmt.Sprintf("Facility %s productivity at %.0f%%", f.Name, *f.ProductivityRate*100),
				models.AlertSeverityWarning)
		}

		if f.EquipmentStatus != nil {
			switch *f.EquipmentStatus {
			case models.EquipmentDown:
				c.raise(ctx, f.ID, "equipment_down",
					fmt.Sprintf("Equipment down at %s", f.Name),
					models.AlertSeverityCritical)
			case models.EquipmentMaintenance:
				c.raise(ctx, f.ID, "equipment_maintenance",
					fmt.Sprintf("Equipment under maintenance at %s", f.Name),
					models.AlertSeverityWarning)
			}
		}

		if f.Utilization() > 0.9 {
			c.raise(ctx, f.ID, "high_capacity",
				fmt.Sprintf("Facility %s at %.0f%% capacity", f.Name, f.Utilization()*100),
				models.AlertSeverityWarning)
		}
	}
}

func (c *Collector) raise(ctx context.Context, facilityID, alertType, message string, severity models.AlertSeverity) {
	exists, err := c.store.HasRecentAlert(ctx, facilityID, alertType, c.cfg.Collector.AlertDedupe)
	if err != nil {
		c.log.Error("alert dedup check failed", "facility", facilityID, "type", alertType, "error", err)
		return
	}
	if exists {
		return
	}

	alert := models.NewAlert(facilityID, alertType, message, severity)
	if err := c.store.InsertAlert(ctx, alert); err != nil {
		c.log.Error("inserting alert failed", "facility", facilityID, "type", alertType, "error", err)
		return
	}

	if c.broadcaster != nil {
		c.broadcaster.Broadcast(alert)
	}

	c.log.Info("alert raised", "facility", facilityID, "type", alertType, "severity", severity)
}

// Stop waits for the collection loop and drains the worker pool.
func (c *Collector) Stop() {
	c.wg.Wait()
	c.pool.Stop()
	c.log.Info("collector stopped")
}
