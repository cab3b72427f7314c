package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/gridmodel/core/metrics"
	"github.com/kilianp07/gridmodel/infra/logger"
)

// InfluxSink writes grid records to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
	now      func() time.Time
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
		now:      time.Now,
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// Close releases the client resources.
func (s *InfluxSink) Close() { s.client.Close() }

// RecordNetworkStats writes one grid_stats point.
func (s *InfluxSink) RecordNetworkStats(st coremetrics.NetworkStats) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("grid_stats").
		AddTag("network", st.Network).
		AddTag("network_id", st.ID).
		AddTag("bound_type", st.BoundType).
		AddField("vertices", st.Vertices).
		AddField("edges", st.Edges).
		AddField("generators", st.Generators).
		AddField("loads", st.Loads).
		AddField("timestamps", st.Timestamps).
		AddField("islands", st.Islands).
		SetTime(st.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordSnapshots writes one grid_snapshot point per value. Labels that are
// not dates are written at the current time with the label as a tag.
func (s *InfluxSink) RecordSnapshots(points []coremetrics.SnapshotPoint) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, sp := range points {
		if math.IsInf(sp.Value, 0) {
			continue
		}
		ts := sp.Time
		if ts.IsZero() {
			ts = s.now()
		}
		p := write.NewPointWithMeasurement("grid_snapshot").
			AddTag("network", sp.Network).
			AddTag("kind", string(sp.Kind)).
			AddTag("id", strconv.Itoa(sp.ID)).
			AddTag("name", sp.Name).
			AddTag("bus", sp.Bus).
			AddTag("timestamp", sp.Timestamp).
			AddField("value", round3(sp.Value)).
			SetTime(ts)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordBusBounds writes one grid_bus_bound point per bus. Infinite limits are
// left out because line protocol cannot carry them.
func (s *InfluxSink) RecordBusBounds(bounds []coremetrics.BusBound) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	now := s.now()
	for _, b := range bounds {
		p := write.NewPointWithMeasurement("grid_bus_bound").
			AddTag("network", b.Network).
			AddTag("bus", b.Bus).
			AddTag("position", strconv.Itoa(b.Position))
		addFinite(p, "generation_min", b.GenerationMin)
		addFinite(p, "generation_max", b.GenerationMax)
		addFinite(p, "load_min", b.LoadMin)
		addFinite(p, "load_max", b.LoadMax)
		p.SetTime(now)
		if len(p.FieldList()) == 0 {
			continue
		}
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func addFinite(p *write.Point, key string, v float64) {
	if !math.IsInf(v, 0) && !math.IsNaN(v) {
		p.AddField(key, round3(v))
	}
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
