package collector

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jmartens/go-logistics/internal/config"
	"github.com/jmartens/go-logistics/internal/logging"
	"github.com/jmartens/go-logistics/internal/models"
	"github.com/jmartens/go-logistics/internal/provider"
)

// HealthStore is the slice of the repository the monitor probes.
type HealthStore interface {
	Ping(ctx context.Context) error
	ListActive(ctx context.Context) ([]models.Facility, error)
}

// Monitor periodically probes the database and the external data providers
// and logs degradations. It never takes the service down; a failing provider
// is a warning, not an outage.
type Monitor struct {
	cfg   *config.Config
	store HealthStore
	svc   provider.Service
	log   *slog.Logger
	wg    sync.WaitGroup
}

func NewMonitor(cfg *config.Config, store HealthStore, svc provider.Service) *Monitor {
	return &Monitor{
		cfg:   cfg,
		store: store,
		svc:   svc,
		log:   logging.Component("monitor"),
	}
}

func (m *Monitor) Start(ctx context.Context) {
	m.wg.Add(1)
	go m.run(ctx)
}

func (m *Monitor) run(ctx context.Context) {
	defer m.wg.Done()
	m.log.Info("system monitor starting", "interval", m.cfg.Collector.MonitorInterval)

	ticker := time.NewTicker(m.cfg.Collector.MonitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Info("system monitor shutting down")
			return
		case <-ticker.C:
			m.checkProviders(ctx)
			m.checkDatabase(ctx)
		}
	}
}

func (m *Monitor) checkProviders(ctx context.Context) {
	if _, err := m.svc.Weather(ctx, "Chicago"); err != nil {
		m.log.Warn("weather providers degraded", "error", err)
	}
	if _, err := m.svc.Traffic(ctx, "Chicago-Denver"); err != nil {
		m.log.Warn("traffic providers degraded", "error", err)
	}
}

func (m *Monitor) checkDatabase(ctx context.Context) {
	if err := m.store.Ping(ctx); err != nil {
		m.log.Error("database unreachable", "error", err)
		return
	}

	facilities, err := m.store.ListActive(ctx)
	if err != nil {
		m.log.Error("facility query failed", "error", err)
		return
	}
	if len(facilities) == 0 {
		m.log.Warn("no active facilities found")
	}
}

func (m *Monitor) Stop() {
	m.wg.Wait()
	m.log.Info("system monitor stopped")
}
