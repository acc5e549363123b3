package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dd0wney/sdfv-volume/pkg/heatmap"
	"github.com/dd0wney/sdfv-volume/pkg/logging"
	"github.com/dd0wney/sdfv-volume/pkg/overlay"
	"github.com/dd0wney/sdfv-volume/pkg/symbolic"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "volume.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvStateLOD, EnvNodeLOD, EnvHeatmapMethod, EnvHistBuckets,
		EnvSymbols, EnvCacheSize, EnvLogLevel, EnvMetricsAddr,
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LOD != overlay.DefaultLOD() {
		t.Errorf("unexpected LOD %+v", cfg.LOD)
	}
	if cfg.Heatmap.Method != heatmap.MethodMedian {
		t.Errorf("unexpected method %s", cfg.Heatmap.Method)
	}
	if cfg.Resolver.CacheSize != symbolic.DefaultCacheSize {
		t.Errorf("unexpected cache size %d", cfg.Resolver.CacheSize)
	}
	if cfg.LogLevel() != logging.InfoLevel {
		t.Errorf("unexpected log level %v", cfg.LogLevel())
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
lod:
  state: 8
  node: 3
heatmap:
  method: hist
  hist_buckets: 4
symbols:
  N: 64
  M: 2.5
resolver:
  cache_size: 32
logging:
  level: debug
metrics:
  addr: "localhost:9100"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LOD.StateLOD != 8 || cfg.LOD.NodeLOD != 3 {
		t.Errorf("unexpected LOD %+v", cfg.LOD)
	}
	if cfg.Heatmap.Method != heatmap.MethodHistogram || cfg.Heatmap.HistBuckets != 4 {
		t.Errorf("unexpected heatmap %+v", cfg.Heatmap)
	}
	if cfg.Heatmap.ExpBase != heatmap.DefaultExpBase {
		t.Errorf("unset fields should keep their defaults, got exp_base %v", cfg.Heatmap.ExpBase)
	}
	if cfg.Symbols["N"] != 64 || cfg.Symbols["M"] != 2.5 {
		t.Errorf("unexpected symbols %v", cfg.Symbols)
	}
	if cfg.Resolver.CacheSize != 32 {
		t.Errorf("unexpected cache size %d", cfg.Resolver.CacheSize)
	}
	if cfg.LogLevel() != logging.DebugLevel {
		t.Errorf("unexpected log level %v", cfg.LogLevel())
	}
	if cfg.Metrics.Addr != "localhost:9100" {
		t.Errorf("unexpected metrics addr %q", cfg.Metrics.Addr)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "lod:\n  state: 8\n  node: 3\nsymbols:\n  N: 1\n")

	t.Setenv(EnvStateLOD, "12")
	t.Setenv(EnvHeatmapMethod, "mean")
	t.Setenv(EnvSymbols, "N=5, K=2")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvMetricsAddr, ":9200")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LOD.StateLOD != 12 || cfg.LOD.NodeLOD != 3 {
		t.Errorf("unexpected LOD %+v", cfg.LOD)
	}
	if cfg.Heatmap.Method != heatmap.MethodMean {
		t.Errorf("unexpected method %s", cfg.Heatmap.Method)
	}
	if cfg.Symbols["N"] != 5 || cfg.Symbols["K"] != 2 {
		t.Errorf("unexpected symbols %v", cfg.Symbols)
	}
	if cfg.LogLevel() != logging.WarnLevel {
		t.Errorf("unexpected log level %v", cfg.LogLevel())
	}
	if cfg.Metrics.Addr != ":9200" {
		t.Errorf("unexpected metrics addr %q", cfg.Metrics.Addr)
	}

	scope := cfg.SymbolMap()
	if v, ok := scope.Lookup("K"); !ok || v != 2 {
		t.Errorf("SymbolMap lost K: %v", scope)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		wantErr string
	}{
		{"missing file", "", nil, "failed to read config"},
		{"bad yaml", "lod: [", nil, "failed to parse config"},
		{"zero lod", "lod:\n  state: 0\n  node: 5\n", nil, "StateLOD"},
		{"unknown method", "heatmap:\n  method: log\n", nil, "Method"},
		{"bad symbol name", "symbols:\n  1N: 3\n", nil, "invalid"},
		{"bad cache size", "resolver:\n  cache_size: 0\n", nil, "CacheSize"},
		{"bad exp base", "heatmap:\n  method: exponential_interpolation\n  exp_base: 0.5\n", nil, "exp_base"},
		{"hist without buckets", "heatmap:\n  method: hist\n  hist_buckets: 0\n", nil, "hist_buckets"},
		{"bad env float", "", map[string]string{EnvNodeLOD: "fast"}, EnvNodeLOD},
		{"bad env symbols", "", map[string]string{EnvSymbols: "N"}, EnvSymbols},
		{"bad metrics addr", "metrics:\n  addr: nowhere\n", nil, "host:port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			switch tt.name {
			case "missing file":
				path = filepath.Join(t.TempDir(), "absent.yaml")
			default:
				if tt.yaml != "" {
					path = writeConfig(t, tt.yaml)
				}
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseSymbols(t *testing.T) {
	got, err := ParseSymbols(" N = 3 ,M=0.5,, ")
	if err != nil {
		t.Fatalf("ParseSymbols failed: %v", err)
	}
	if len(got) != 2 || got["N"] != 3 || got["M"] != 0.5 {
		t.Errorf("unexpected result %v", got)
	}

	for _, bad := range []string{"N", "N=x", "=3", "2N=1"} {
		if _, err := ParseSymbols(bad); err == nil {
			t.Errorf("ParseSymbols(%q): expected error", bad)
		}
	}
}
