package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "timeline.yaml")
	body := "item_width: 64\narrows:\n  style: elbow\ngraph:\n  smoothing_window: 5\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ItemWidth != 64 || cfg.Arrows.Style != "elbow" || cfg.Graph.SmoothingWindow != 5 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Overscan != Default().Overscan || cfg.Graph.Width != Default().Graph.Width || !cfg.Arrows.Enabled {
		t.Fatalf("missing keys should keep defaults: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file => %v", err)
	}
	p := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(p, []byte("item_width: [1, 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(p); !errors.Is(err, ErrInvalid) {
		t.Fatalf("bad yaml => %v want ErrInvalid", err)
	}
	if cfg, err := Load(""); err != nil || cfg != Default() {
		t.Fatalf("empty path should yield defaults")
	}
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, "test.env")
	if err := os.WriteFile(env, []byte("FRAMETIMELINE_OVERSCAN=9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FRAMETIMELINE_ITEM_WIDTH", "32.5")
	t.Setenv("FRAMETIMELINE_ARROWS", "false")
	t.Setenv("FRAMETIMELINE_LOG_LEVEL", "debug")
	t.Setenv("FRAMETIMELINE_OVERSCAN", "")
	os.Unsetenv("FRAMETIMELINE_OVERSCAN")

	cfg := Default()
	applied, err := cfg.ApplyEnv(env, filepath.Join(dir, "absent.env"))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.ItemWidth != 32.5 || cfg.Arrows.Enabled || cfg.LogLevel != "debug" || cfg.Overscan != 9 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if len(applied) != 4 {
		t.Fatalf("applied => %v", applied)
	}
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	t.Setenv("FRAMETIMELINE_ZOOM_MAX", "lots")
	cfg := Default()
	if _, err := cfg.ApplyEnv(filepath.Join(t.TempDir(), "none.env")); !errors.Is(err, ErrInvalid) {
		t.Fatalf("garbage value => %v want ErrInvalid", err)
	}
	if cfg.Zoom.Max != Default().Zoom.Max {
		t.Fatalf("garbage value overwrote zoom max")
	}
}

func TestValidateCollectsProblems(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"item width", func(c *Config) { c.ItemWidth = 0 }},
		{"overscan", func(c *Config) { c.Overscan = -1 }},
		{"zoom range", func(c *Config) { c.Zoom.Min, c.Zoom.Max = 2, 1 }},
		{"style", func(c *Config) { c.Arrows.Style = "zigzag" }},
		{"graph area", func(c *Config) { c.Graph.Height = 20 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, c := range cases {
		cfg := Default()
		c.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: expected ErrInvalid, got %v", c.name, err)
		}
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()
	z := cfg.ZoomConfig()
	if z.Min != 0.25 || z.Max != 4 || !z.RequireModifier {
		t.Fatalf("zoom conversion => %+v", z)
	}
	s := cfg.ScaleConfig()
	if s.Width != 800 || s.Padding.Left != 48 || s.XDomain != nil {
		t.Fatalf("scale conversion => %+v", s)
	}
}
