package metrics

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/kilianp07/gridmodel/core/broker"
	coremetrics "github.com/kilianp07/gridmodel/core/metrics"
)

// BrokerSink publishes grid records as JSON under <prefix>/<network>/<kind>.
type BrokerSink struct {
	pub    broker.Publisher
	prefix string
}

// NewBrokerSink wraps pub. An empty prefix publishes under "gridmodel".
func NewBrokerSink(pub broker.Publisher, prefix string) *BrokerSink {
	if prefix == "" {
		prefix = "gridmodel"
	}
	return &BrokerSink{pub: pub, prefix: strings.TrimSuffix(prefix, "/")}
}

// Close disconnects the publisher.
func (s *BrokerSink) Close() { s.pub.Disconnect() }

func (s *BrokerSink) topic(network, kind string) string {
	return fmt.Sprintf("%s/%s/%s", s.prefix, network, kind)
}

type statsMessage struct {
	Network               string    `json:"network"`
	ID                    string    `json:"id"`
	Vertices              int       `json:"vertices"`
	Edges                 int       `json:"edges"`
	Generators            int       `json:"generators"`
	Loads                 int       `json:"loads"`
	VerticesWithGenerator int       `json:"vertices_with_generator"`
	VerticesWithLoad      int       `json:"vertices_with_load"`
	Timestamps            int       `json:"timestamps"`
	Islands               int       `json:"islands"`
	BoundType             string    `json:"bound_type"`
	Time                  time.Time `json:"time"`
}

// RecordNetworkStats publishes the summary on the stats topic.
func (s *BrokerSink) RecordNetworkStats(st coremetrics.NetworkStats) error {
	payload, err := json.Marshal(statsMessage(st))
	if err != nil {
		return err
	}
	return s.pub.Publish(s.topic(st.Network, "stats"), payload)
}

// snapshotMessage carries a nil value for a missing snapshot since JSON has
// no infinity.
type snapshotMessage struct {
	Kind      string   `json:"kind"`
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Bus       string   `json:"bus"`
	Position  int      `json:"position"`
	Timestamp string   `json:"timestamp"`
	Value     *float64 `json:"value"`
}

// RecordSnapshots publishes the series of each network as one message.
func (s *BrokerSink) RecordSnapshots(points []coremetrics.SnapshotPoint) error {
	byNetwork := map[string][]snapshotMessage{}
	var order []string
	for _, p := range points {
		if _, ok := byNetwork[p.Network]; !ok {
			order = append(order, p.Network)
		}
		byNetwork[p.Network] = append(byNetwork[p.Network], snapshotMessage{
			Kind:      string(p.Kind),
			ID:        p.ID,
			Name:      p.Name,
			Bus:       p.Bus,
			Position:  p.Position,
			Timestamp: p.Timestamp,
			Value:     finitePtr(p.Value),
		})
	}
	for _, network := range order {
		payload, err := json.Marshal(byNetwork[network])
		if err != nil {
			return err
		}
		if err := s.pub.Publish(s.topic(network, "snapshots"), payload); err != nil {
			return err
		}
	}
	return nil
}

type boundMessage struct {
	VertexID      int      `json:"vertex_id"`
	Bus           string   `json:"bus"`
	Position      int      `json:"position"`
	GenerationMin *float64 `json:"generation_min"`
	GenerationMax *float64 `json:"generation_max"`
	LoadMin       *float64 `json:"load_min"`
	LoadMax       *float64 `json:"load_max"`
}

// RecordBusBounds publishes the bounds of each network as one message.
// Infinite limits are sent as null.
func (s *BrokerSink) RecordBusBounds(bounds []coremetrics.BusBound) error {
	byNetwork := map[string][]boundMessage{}
	var order []string
	for _, b := range bounds {
		if _, ok := byNetwork[b.Network]; !ok {
			order = append(order, b.Network)
		}
		byNetwork[b.Network] = append(byNetwork[b.Network], boundMessage{
			VertexID:      b.VertexID,
			Bus:           b.Bus,
			Position:      b.Position,
			GenerationMin: finitePtr(b.GenerationMin),
			GenerationMax: finitePtr(b.GenerationMax),
			LoadMin:       finitePtr(b.LoadMin),
			LoadMax:       finitePtr(b.LoadMax),
		})
	}
	for _, network := range order {
		payload, err := json.Marshal(byNetwork[network])
		if err != nil {
			return err
		}
		if err := s.pub.Publish(s.topic(network, "bounds"), payload); err != nil {
			return err
		}
	}
	return nil
}

func finitePtr(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
