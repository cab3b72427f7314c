// Package app wires configuration, logging, metrics sinks and the case file
// into a running grid model service.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kilianp07/gridmodel/config"
	"github.com/kilianp07/gridmodel/core/admittance"
	coremetrics "github.com/kilianp07/gridmodel/core/metrics"
	"github.com/kilianp07/gridmodel/core/model"
	"github.com/kilianp07/gridmodel/core/powergrid"
	"github.com/kilianp07/gridmodel/infra/logger"
	"github.com/kilianp07/gridmodel/infra/metrics"
	"github.com/kilianp07/gridmodel/pkg/casefile"
)

// Service holds a loaded grid and the sinks its summaries are recorded to.
type Service struct {
	Grid       *powergrid.PowerGrid
	Admittance *admittance.Matrix
	Sink       coremetrics.MetricsSink

	cfg *config.Config
	log logger.Logger
	now func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithSink replaces the sinks built from the configuration.
func WithSink(s coremetrics.MetricsSink) Option {
	return func(svc *Service) { svc.Sink = s }
}

// WithClock sets the time source of recorded summaries.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) { svc.now = now }
}

// New loads the case named by the configuration and prepares the sinks.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	logg, err := logger.NewWithOptions("service", cfg.Logging.Options())
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	svc := &Service{cfg: cfg, log: logg, now: time.Now}
	for _, o := range opts {
		o(svc)
	}

	grid, err := LoadGrid(cfg, logg.With("scope", "powergrid"))
	if err != nil {
		return nil, err
	}
	svc.Grid = grid

	carrier := cfg.Network.ParsedCarrier()
	if svc.Admittance, err = admittance.Build(grid, carrier); err != nil {
		return nil, fmt.Errorf("admittance: %w", err)
	}
	logg.Debugw("admittance built", map[string]any{"carrier": carrier.String(), "order": svc.Admittance.Dims()})

	if svc.Sink == nil {
		if svc.Sink, err = coremetrics.NewMetricsSink(cfg.Metrics.Sinks); err != nil {
			return nil, fmt.Errorf("metrics sink: %w", err)
		}
	}
	return svc, nil
}

// LoadGrid reads the case file and applies the network overrides of cfg.
func LoadGrid(cfg *config.Config, log logger.Logger) (*powergrid.PowerGrid, error) {
	if cfg.Network.Case == "" {
		return nil, fmt.Errorf("network.case is required")
	}
	grid, err := casefile.Load(cfg.Network.Case, powergrid.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("load case %s: %w", cfg.Network.Case, err)
	}
	if cfg.Network.Name != "" {
		grid.SetName(cfg.Network.Name)
	}
	if cfg.Network.BaseMVA > 0 {
		grid.SetBaseMVA(cfg.Network.BaseMVA)
	}
	gen, load := cfg.Network.Policies()
	if gen != model.BoundUnknown {
		grid.SetGeneratorBoundType(gen)
	}
	if load != model.BoundUnknown {
		grid.SetLoadBoundType(load)
	}
	return grid, nil
}

// Record sends the network summary, the snapshot series and the bus bounds
// of every timestamp to the sinks supporting them.
func (s *Service) Record() error {
	stats := coremetrics.CollectNetworkStats(s.Grid, s.now())
	if err := s.Sink.RecordNetworkStats(stats); err != nil {
		return fmt.Errorf("record stats: %w", err)
	}
	if rec, ok := s.Sink.(coremetrics.SnapshotRecorder); ok {
		if err := rec.RecordSnapshots(coremetrics.CollectSnapshots(s.Grid)); err != nil {
			return fmt.Errorf("record snapshots: %w", err)
		}
	}
	if rec, ok := s.Sink.(coremetrics.BoundRecorder); ok {
		positions := max(s.Grid.NumberOfTimestamps(), 1)
		for pos := range positions {
			if err := rec.RecordBusBounds(coremetrics.CollectBusBounds(s.Grid, pos)); err != nil {
				return fmt.Errorf("record bounds at %d: %w", pos, err)
			}
		}
	}
	s.log.Infof("recorded %s: %d buses, %d generators, %d loads", stats.Network, stats.Vertices, stats.Generators, stats.Loads)
	return nil
}

// Run records the grid, serves /metrics when a prometheus sink is configured
// and re-records every interval until ctx is cancelled. A zero interval
// records once.
func (s *Service) Run(ctx context.Context, interval time.Duration) error {
	if s.promEnabled() {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if err := s.Record(); err != nil {
		return err
	}
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.Record(); err != nil {
				s.log.Errorf("record: %v", err)
			}
		}
	}
}

func (s *Service) promEnabled() bool {
	for _, c := range s.cfg.Metrics.Sinks {
		if c.Type == "prometheus" {
			return true
		}
	}
	return false
}

// Close releases connections held by the sinks.
func (s *Service) Close() {
	if c, ok := s.Sink.(coremetrics.Closer); ok {
		c.Close()
	}
}
