package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"diagnosd/internal/config"
)

func TestSplitCSV(t *testing.T) {
	cases := []struct{ in string; want []string }{
		{"https://a.example,https://b.example", []string{"https://a.example", "https://b.example"}},
		{" a , b ", []string{"a", "b"}},
		{"a,,c", []string{"a", "c"}},
		{"", nil},
	}
	for _, c := range cases {
		got := splitCSV(c.in)
		if len(got) != len(c.want) { t.Fatalf("%q -> %v, want %v", c.in, got, c.want) }
		for i := range got {
			if got[i] != c.want[i] { t.Fatalf("%q -> %v, want %v", c.in, got, c.want) }
		}
	}
}

func TestResolveConfig_EnvOverridesFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "diagnosd.yaml")
	if err := os.WriteFile(p, []byte("port: 9100\nmodel_path: /file.json\n"), 0o644); err != nil { t.Fatalf("write: %v", err) }
	env := map[string]string{"DIAGNOSD_MODEL": "/env.json"}
	cfg, err := resolveConfig(p, func(k string) string { return env[k] })
	if err != nil { t.Fatalf("resolve: %v", err) }
	if cfg.Port != 9100 || cfg.ModelPath != "/env.json" { t.Fatalf("cfg=%+v", cfg) }

	if _, err := resolveConfig(filepath.Join(t.TempDir(), "missing.toml"), func(string) string { return "" }); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestResolveConfig_PortDefault(t *testing.T) {
	cfg, err := resolveConfig("", func(string) string { return "" })
	if err != nil { t.Fatalf("resolve: %v", err) }
	config.ApplyDefaults(&cfg)
	if cfg.ListenAddr() != ":8000" { t.Fatalf("addr=%q", cfg.ListenAddr()) }
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, closeFn, err := newLogger(config.Config{LogLevel: "warn", LogFormat: "json"}, &buf)
	if err != nil { t.Fatalf("logger: %v", err) }
	defer closeFn()
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"service":"diagnosd"`) { t.Fatalf("out=%s", out) }

	if _, _, err := newLogger(config.Config{LogLevel: "loud"}, &buf); err == nil { t.Fatalf("expected level error") }
	if _, _, err := newLogger(config.Config{LogFormat: "xml"}, &buf); err == nil { t.Fatalf("expected format error") }
}

func TestNewLogger_File(t *testing.T) {
	p := filepath.Join(t.TempDir(), "diagnosd.log")
	var buf bytes.Buffer
	l, closeFn, err := newLogger(config.Config{LogLevel: "info", LogFile: p}, &buf)
	if err != nil { t.Fatalf("logger: %v", err) }
	l.Info().Msg("to file")
	closeFn()
	b, err := os.ReadFile(p)
	if err != nil { t.Fatalf("read: %v", err) }
	if !strings.Contains(string(b), "to file") || !strings.Contains(buf.String(), "to file") { t.Fatalf("file=%s stderr=%s", b, buf.String()) }
}
