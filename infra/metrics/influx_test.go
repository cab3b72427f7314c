package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/gridmodel/core/consts"
	coremetrics "github.com/kilianp07/gridmodel/core/metrics"
)

type lineServer struct {
	mu     sync.Mutex
	bodies []string
	srv    *httptest.Server
}

func newLineServer(t *testing.T) *lineServer {
	ls := &lineServer{}
	ls.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		ls.mu.Lock()
		ls.bodies = append(ls.bodies, strings.TrimSpace(string(data)))
		ls.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(ls.srv.Close)
	return ls
}

func TestInfluxSink_RecordNetworkStats(t *testing.T) {
	ls := newLineServer(t)
	sink := NewInfluxSink(ls.srv.URL, "token", "org", "bucket")
	defer sink.Close()

	now := time.Unix(1700000000, 0)
	st := coremetrics.NetworkStats{
		Network: "ieee14", ID: "id-1", Vertices: 14, Edges: 20,
		Generators: 5, Loads: 11, Timestamps: 24, Islands: 1,
		BoundType: "bounded", Time: now,
	}
	require.NoError(t, sink.RecordNetworkStats(st))

	p := write.NewPointWithMeasurement("grid_stats").
		AddTag("network", "ieee14").
		AddTag("network_id", "id-1").
		AddTag("bound_type", "bounded").
		AddField("vertices", 14).
		AddField("edges", 20).
		AddField("generators", 5).
		AddField("loads", 11).
		AddField("timestamps", 24).
		AddField("islands", 1).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	require.Len(t, ls.bodies, 1)
	assert.Equal(t, expected, ls.bodies[0])
}

func TestInfluxSink_RecordSnapshotsSkipsMissing(t *testing.T) {
	ls := newLineServer(t)
	sink := NewInfluxSink(ls.srv.URL, "token", "org", "bucket")
	defer sink.Close()
	fixed := time.Unix(1700000100, 0)
	sink.now = func() time.Time { return fixed }

	pts := []coremetrics.SnapshotPoint{
		{Network: "n", Kind: coremetrics.KindLoad, ID: 2, Name: "l2", Bus: "b", Timestamp: "peak", Value: 0.12345},
		{Network: "n", Kind: coremetrics.KindLoad, ID: 3, Name: "l3", Bus: "b", Timestamp: "peak", Value: consts.NoneReal},
	}
	require.NoError(t, sink.RecordSnapshots(pts))

	p := write.NewPointWithMeasurement("grid_snapshot").
		AddTag("network", "n").
		AddTag("kind", "load").
		AddTag("id", "2").
		AddTag("name", "l2").
		AddTag("bus", "b").
		AddTag("timestamp", "peak").
		AddField("value", 0.123).
		SetTime(fixed)
	require.Len(t, ls.bodies, 1)
	assert.Equal(t, strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond)), ls.bodies[0])
}

func TestInfluxSink_RecordBusBoundsDropsInfinity(t *testing.T) {
	ls := newLineServer(t)
	sink := NewInfluxSink(ls.srv.URL, "token", "org", "bucket")
	defer sink.Close()

	require.NoError(t, sink.RecordBusBounds([]coremetrics.BusBound{
		{Network: "n", Bus: "a", GenerationMin: 0, GenerationMax: consts.Infinity, LoadMin: 0, LoadMax: 2},
	}))
	require.Len(t, ls.bodies, 1)
	assert.Contains(t, ls.bodies[0], "generation_min=0")
	assert.NotContains(t, ls.bodies[0], "generation_max")
	assert.Contains(t, ls.bodies[0], "load_max=2")
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(srv.URL+"/api/v2/write", "tok", "org", "bucket")
	assert.IsType(t, coremetrics.NopSink{}, sink)
	assert.True(t, called, "health endpoint not called")
}
