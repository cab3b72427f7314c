package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/gridmodel/core/factory"
	coremetrics "github.com/kilianp07/gridmodel/core/metrics"
	"github.com/kilianp07/gridmodel/infra/mqtt"
	"github.com/kilianp07/gridmodel/infra/nats"
)

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterMetricsSink("nop", func(map[string]any) (coremetrics.MetricsSink, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = coremetrics.RegisterMetricsSink("prometheus", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c coremetrics.Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		// Port is used by the HTTP server only; PromSink itself doesn't use it.
		return NewPromSinkWithRegistry(c, prometheus.DefaultRegisterer)
	})

	_ = coremetrics.RegisterMetricsSink("influx", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c struct {
			URL    string `json:"url"`
			Token  string `json:"token"`
			Org    string `json:"org"`
			Bucket string `json:"bucket"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	})

	_ = coremetrics.RegisterMetricsSink("mqtt", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c mqtt.Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		pub, err := mqtt.NewPahoPublisher(c)
		if err != nil {
			return nil, err
		}
		c.SetDefaults()
		return NewBrokerSink(pub, c.TopicPrefix), nil
	})

	_ = coremetrics.RegisterMetricsSink("nats", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c nats.Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		pub, err := nats.NewPublisher(c)
		if err != nil {
			return nil, err
		}
		c.SetDefaults()
		return NewBrokerSink(pub, c.TopicPrefix), nil
	})
}
