package app

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/gridmodel/config"
	"github.com/kilianp07/gridmodel/core/factory"
	coremetrics "github.com/kilianp07/gridmodel/core/metrics"
	"github.com/kilianp07/gridmodel/core/model"
)

var threeBus = filepath.Join("..", "pkg", "casefile", "testdata", "three_bus.yaml")

type recorder struct {
	mu        sync.Mutex
	stats     []coremetrics.NetworkStats
	snapshots int
	bounds    [][]coremetrics.BusBound
	closed    bool
}

func (r *recorder) RecordNetworkStats(s coremetrics.NetworkStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = append(r.stats, s)
	return nil
}

func (r *recorder) RecordSnapshots(points []coremetrics.SnapshotPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots += len(points)
	return nil
}

func (r *recorder) RecordBusBounds(b []coremetrics.BusBound) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bounds = append(r.bounds, b)
	return nil
}

func (r *recorder) Close() { r.closed = true }

func (r *recorder) records() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stats)
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Network.Case = threeBus
	return cfg
}

func TestNewAppliesOverrides(t *testing.T) {
	cfg := testConfig()
	cfg.Network.Name = "renamed"
	cfg.Network.BaseMVA = 10
	cfg.Network.GeneratorBound = "exact"
	cfg.Network.LoadBound = "exact"

	svc, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "renamed", svc.Grid.Name())
	assert.Equal(t, 10.0, svc.Grid.BaseMVA())
	assert.Equal(t, model.BoundExact, svc.Grid.NetworkBoundType())
	assert.Equal(t, 3, svc.Admittance.Dims())
	assert.IsType(t, coremetrics.NopSink{}, svc.Sink)
}

func TestNewKeepsCasePolicies(t *testing.T) {
	svc, err := New(testConfig())
	require.NoError(t, err)
	assert.True(t, svc.Grid.IsBounded())
	assert.Equal(t, "three-bus", svc.Grid.Name())
}

func TestNewErrors(t *testing.T) {
	cfg := config.Default()
	_, err := New(cfg)
	assert.ErrorContains(t, err, "network.case")

	cfg.Network.Case = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = New(cfg)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "unregistered"}}
	_, err = New(cfg)
	assert.ErrorContains(t, err, "metrics sink")
}

func TestRecord(t *testing.T) {
	rec := &recorder{}
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc, err := New(testConfig(), WithSink(rec), WithClock(func() time.Time { return at }))
	require.NoError(t, err)

	require.NoError(t, svc.Record())
	require.Len(t, rec.stats, 1)
	assert.Equal(t, at, rec.stats[0].Time)
	assert.Equal(t, 3, rec.stats[0].Vertices)
	assert.Equal(t, 5, rec.snapshots)
	require.Len(t, rec.bounds, 2)
	assert.Len(t, rec.bounds[1], 3)
	assert.Equal(t, 1, rec.bounds[1][0].Position)

	svc.Close()
	assert.True(t, rec.closed)
}

func TestRunRecordsUntilCancelled(t *testing.T) {
	rec := &recorder{}
	svc, err := New(testConfig(), WithSink(rec))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx, 5*time.Millisecond) }()

	assert.Eventually(t, func() bool { return rec.records() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
