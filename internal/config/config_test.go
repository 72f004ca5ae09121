package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"symname/internal/trace"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := DefaultConfig()
	if *cfg != *def {
		t.Fatalf("got %+v, want %+v", cfg, def)
	}
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "locale = \"ru\"\njobs = 3\n\n[trace]\nlevel = \"query\"\nmode = \"ring\"\n")
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Locale != "ru" || cfg.Jobs != 3 || cfg.Trace.Level != "query" || cfg.Trace.Mode != "ring" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Color != "auto" {
		t.Fatalf("unset keys must keep defaults, color=%q", cfg.Color)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[trace]\nlevel = \"stage\"\n")
	t.Setenv("SYMNAME_TRACE_LEVEL", "debug")
	t.Setenv("SYMNAME_COLOR", "off")
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Trace.Level != "debug" || cfg.Color != "off" {
		t.Fatalf("environment ignored: %+v", cfg)
	}
}

func TestLoadFileRequiresFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected an error for a missing explicit file")
	}
	path := writeConfig(t, t.TempDir(), "color = \"on\"\n")
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if cfg.Color != "on" {
		t.Fatalf("color=%q", cfg.Color)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Color = "sometimes"
	cfg.Jobs = -1
	cfg.Trace.Level = "loud"
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	for _, want := range []string{"color", "jobs", "loud"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}
	dir := t.TempDir()
	writeConfig(t, dir, "color = \"sometimes\"\n")
	if _, err := Load(dir); err == nil {
		t.Fatalf("invalid file must fail to load")
	}
}

func TestTracerConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trace = TraceConfig{Level: "query", Mode: "both", Format: "ndjson", Output: "t.ndjson"}
	tc, err := cfg.TracerConfig()
	if err != nil {
		t.Fatalf("tracer config: %v", err)
	}
	if tc.Level != trace.LevelQuery || tc.Mode != trace.ModeBoth || tc.Format != trace.FormatNDJSON || tc.OutputPath != "t.ndjson" {
		t.Fatalf("unexpected %+v", tc)
	}
}
