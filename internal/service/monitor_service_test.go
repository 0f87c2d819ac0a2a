package service

import (
	"bytes"
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-appointments/internal/config"
	"vet-appointments/internal/logger"
)

type fakeProbe struct {
	up     bool
	checks int
}

func (f *fakeProbe) Healthcheck(context.Context) bool {
	f.checks++
	return f.up
}

func (f *fakeProbe) Stats() sql.DBStats {
	return sql.DBStats{OpenConnections: 2, InUse: 1}
}

func TestMonitorLogsOnlyTransitions(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithOutput(config.LogConfig{Level: "info"}, &buf)
	probe := &fakeProbe{up: true}
	m := NewMonitorService(probe, "@every 1m", log)

	assert.True(t, m.Check(context.Background()))
	assert.True(t, m.Check(context.Background()))
	probe.up = false
	assert.False(t, m.Check(context.Background()))
	probe.up = true
	assert.True(t, m.Check(context.Background()))

	assert.Equal(t, 4, probe.checks)
	assert.Equal(t, 2, strings.Count(buf.String(), "Database is reachable"))
	assert.Equal(t, 1, strings.Count(buf.String(), "Database is unreachable"))
}

func TestMonitorStartRejectsBadSchedule(t *testing.T) {
	m := NewMonitorService(&fakeProbe{}, "every now and then", logger.Discard())

	err := m.Start(context.Background())
	require.Error(t, err)
	m.Stop()
}

func TestMonitorStartStop(t *testing.T) {
	m := NewMonitorService(&fakeProbe{up: true}, "@every 1h", logger.Discard())

	require.NoError(t, m.Start(context.Background()))
	m.Stop()
}
