package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"vet-appointments/internal/metrics"
)

// PoolProbe is the part of the database pool the monitor needs.
type PoolProbe interface {
	Healthcheck(ctx context.Context) bool
	Stats() sql.DBStats
}

// MonitorService periodically checks the database and publishes its state.
type MonitorService struct {
	pool     PoolProbe
	log      *logrus.Logger
	schedule string
	timeout  time.Duration

	cron *cron.Cron

	mu     sync.Mutex
	status *bool
}

func NewMonitorService(pool PoolProbe, schedule string, log *logrus.Logger) *MonitorService {
	return &MonitorService{
		pool:     pool,
		log:      log,
		schedule: schedule,
		timeout:  5 * time.Second,
	}
}

// Start runs the healthcheck on the configured schedule. Checks use ctx,
// so cancelling it aborts a check in flight. It returns an error only when
// the schedule cannot be parsed.
func (m *MonitorService) Start(ctx context.Context) error {
	cronLog := cron.PrintfLogger(m.log)
	c := cron.New(cron.WithLogger(cronLog), cron.WithChain(cron.Recover(cronLog)))
	if _, err := c.AddFunc(m.schedule, func() { m.Check(ctx) }); err != nil {
		return fmt.Errorf("invalid healthcheck schedule %q: %w", m.schedule, err)
	}

	m.cron = c
	c.Start()
	m.log.WithField("schedule", m.schedule).Info("Database monitor started")
	return nil
}

// Stop halts the schedule and waits for a running check to finish.
func (m *MonitorService) Stop() {
	if m.cron == nil {
		return
	}
	<-m.cron.Stop().Done()
	m.log.Info("Database monitor stopped")
}

// Check runs one healthcheck, records it and logs state transitions.
func (m *MonitorService) Check(ctx context.Context) bool {
	checkCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	up := m.pool.Healthcheck(checkCtx)
	metrics.SetDatabaseUp(up)
	metrics.ObservePool(m.pool.Stats())

	m.mu.Lock()
	changed := m.status == nil || *m.status != up
	m.status = &up
	m.mu.Unlock()

	if changed {
		if up {
			m.log.Info("Database is reachable")
		} else {
			m.log.Warn("Database is unreachable")
		}
	}
	return up
}
