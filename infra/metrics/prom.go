package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/gridmodel/core/metrics"
)

// PromSink exposes grid summaries as Prometheus gauges labelled by network.
type PromSink struct {
	size     *prometheus.GaugeVec
	islands  *prometheus.GaugeVec
	snapshot *prometheus.GaugeVec
	bounds   *prometheus.GaugeVec
}

// NewPromSink registers grid metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	size := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "grid_elements",
		Help: "Number of live elements in the network by kind",
	}, []string{"network", "kind"})
	islands := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "grid_islands",
		Help: "Number of connected components formed by switched-on branches",
	}, []string{"network"})
	snapshot := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "grid_snapshot_last_value",
		Help: "Last recorded snapshot value per generator or load in per unit",
	}, []string{"network", "kind", "id", "name"})
	bounds := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "grid_bus_bound",
		Help: "Derived per bus power bound in per unit",
	}, []string{"network", "bus", "quantity", "side"})

	var err error
	if size, err = register(reg, size); err != nil {
		return nil, err
	}
	if islands, err = register(reg, islands); err != nil {
		return nil, err
	}
	if snapshot, err = register(reg, snapshot); err != nil {
		return nil, err
	}
	if bounds, err = register(reg, bounds); err != nil {
		return nil, err
	}
	return &PromSink{size: size, islands: islands, snapshot: snapshot, bounds: bounds}, nil
}

// register reuses an identical collector that is already registered.
func register(reg prometheus.Registerer, g *prometheus.GaugeVec) (*prometheus.GaugeVec, error) {
	if err := reg.Register(g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.GaugeVec), nil
		}
		return nil, err
	}
	return g, nil
}

// RecordNetworkStats sets the size gauges of the network.
func (s *PromSink) RecordNetworkStats(st coremetrics.NetworkStats) error {
	set := func(kind string, v int) { s.size.WithLabelValues(st.Network, kind).Set(float64(v)) }
	set("vertices", st.Vertices)
	set("edges", st.Edges)
	set("generators", st.Generators)
	set("loads", st.Loads)
	set("timestamps", st.Timestamps)
	s.islands.WithLabelValues(st.Network).Set(float64(st.Islands))
	return nil
}

// RecordSnapshots keeps the value of the latest position of every series.
func (s *PromSink) RecordSnapshots(points []coremetrics.SnapshotPoint) error {
	for _, p := range points {
		s.snapshot.WithLabelValues(p.Network, string(p.Kind), strconv.Itoa(p.ID), p.Name).Set(p.Value)
	}
	return nil
}

// RecordBusBounds sets the four bound gauges of every bus.
func (s *PromSink) RecordBusBounds(bounds []coremetrics.BusBound) error {
	for _, b := range bounds {
		s.bounds.WithLabelValues(b.Network, b.Bus, "generation", "min").Set(b.GenerationMin)
		s.bounds.WithLabelValues(b.Network, b.Bus, "generation", "max").Set(b.GenerationMax)
		s.bounds.WithLabelValues(b.Network, b.Bus, "load", "min").Set(b.LoadMin)
		s.bounds.WithLabelValues(b.Network, b.Bus, "load", "max").Set(b.LoadMax)
	}
	return nil
}
