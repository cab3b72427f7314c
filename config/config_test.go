package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/gridmodel/core/model"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.yaml", `network:
  name: "north"
  case: "cases/three_bus.yaml"
  base_mva: 100
  generator_bound: "bounded"
  load_bound: "pure_unbounded"
  carrier: "dc"
logging:
  level: "debug"
  format: "console"
  path: "grid.log"
metrics:
  prometheus_port: ":9191"
  sinks:
    - type: "nop"
    - type: "influx"
      conf:
        url: "http://localhost:8086"
export:
  format: "geojson"
  dir: "exports"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"network.name", cfg.Network.Name, "north"},
		{"network.case", cfg.Network.Case, "cases/three_bus.yaml"},
		{"network.base_mva", cfg.Network.BaseMVA, 100.0},
		{"network.carrier", cfg.Network.ParsedCarrier(), model.CarrierDC},
		{"logging.level", cfg.Logging.Level, "debug"},
		{"logging.max_size_mb", cfg.Logging.MaxSizeMB, 100},
		{"metrics.prometheus_port", cfg.Metrics.PrometheusPort, ":9191"},
		{"metrics.sinks", len(cfg.Metrics.Sinks), 2},
		{"metrics.sinks.1.url", cfg.Metrics.Sinks[1].Conf["url"], "http://localhost:8086"},
		{"export.format", cfg.Export.Format, "geojson"},
		{"export.dir", cfg.Export.Dir, "exports"},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}

	gen, load := cfg.Network.Policies()
	assert.Equal(t, model.BoundBounded, gen)
	assert.Equal(t, model.BoundPureUnbounded, load)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.json", `{"network": {"case": "grid.yaml"}}`))
	require.NoError(t, err)
	assert.Equal(t, "ac", cfg.Network.Carrier)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Zero(t, cfg.Logging.MaxSizeMB)
	assert.Equal(t, ":9090", cfg.Metrics.PrometheusPort)
	assert.Equal(t, "csv", cfg.Export.Format)
	assert.Equal(t, "out", cfg.Export.Dir)

	want := Default()
	want.Network.Case = "grid.yaml"
	assert.Equal(t, want, cfg)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("K_NETWORK__CARRIER", "asgiven")
	t.Setenv("K_EXPORT__DIR", "/tmp/grid")
	cfg, err := Load(writeConfig(t, "config.yaml", "network:\n  carrier: ac\n"))
	require.NoError(t, err)
	assert.Equal(t, model.CarrierAsGiven, cfg.Network.ParsedCarrier())
	assert.Equal(t, "/tmp/grid", cfg.Export.Dir)
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]struct {
		name string
		data string
	}{
		"format":    {"config.toml", ""},
		"bound":     {"config.yaml", "network:\n  generator_bound: loose\n"},
		"carrier":   {"config.yaml", "network:\n  carrier: hvdc\n"},
		"level":     {"config.yaml", "logging:\n  level: loud\n"},
		"log fmt":   {"config.yaml", "logging:\n  format: xml\n"},
		"sink type": {"config.yaml", "metrics:\n  sinks:\n    - conf: {}\n"},
		"export":    {"config.yaml", "export:\n  format: xml\n"},
		"base":      {"config.yaml", "network:\n  base_mva: -1\n"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, c.name, c.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoggingOptions(t *testing.T) {
	c := LoggingConfig{Level: "warn", Format: "console", Path: "x.log", MaxBackups: 2}
	c.SetDefaults()
	opts := c.Options()
	assert.Equal(t, "warn", opts.Level)
	assert.Equal(t, 100, opts.MaxSizeMB)
	assert.Equal(t, 2, opts.MaxBackups)
}
