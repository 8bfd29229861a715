package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCatcherEmbeddedDefault(t *testing.T) {
	// No custom path and no user/local configs in the test environment
	// means the embedded default wins.
	cfg, err := LoadCatcher("")
	if err != nil {
		t.Fatalf("LoadCatcher failed: %v", err)
	}

	want := DefaultCatcherConfig()
	if cfg != want {
		t.Errorf("Embedded default = %+v, expected %+v", cfg, want)
	}
}

func TestLoadCatcherCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catcher.yaml")

	custom := `
round:
  time_limit_seconds: 90
field:
  spawn_y: -50
  catch_band_top: 500
  catch_band_bottom: 560
  despawn_y: 650
scoring:
  apple: 150
  grape: 300
levels:
  level2_at_seconds: 10
  level3_at_seconds: 20
spawn:
  base_interval_ticks: 30
  step_ticks: 5
  min_interval_ticks: 10
  grape_threshold: 0.5
  bomb_threshold: 0.9
  bomb_min_level: 3
speed:
  base: 4
  per_level: 1
`
	if err := os.WriteFile(path, []byte(custom), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadCatcher(path)
	if err != nil {
		t.Fatalf("LoadCatcher failed: %v", err)
	}

	if cfg.Round.TimeLimitSeconds != 90 {
		t.Errorf("TimeLimitSeconds = %d, expected 90", cfg.Round.TimeLimitSeconds)
	}
	if cfg.Scoring.Apple != 150 || cfg.Scoring.Grape != 300 {
		t.Errorf("Scoring = %+v, expected apple 150, grape 300", cfg.Scoring)
	}
	if cfg.Spawn.BombMinLevel != 3 {
		t.Errorf("BombMinLevel = %d, expected 3", cfg.Spawn.BombMinLevel)
	}
}

func TestLoadCatcherMissingCustomPath(t *testing.T) {
	if _, err := LoadCatcher("/nonexistent/catcher.yaml"); err == nil {
		t.Error("Expected error for missing custom config path")
	}
}

func TestLoadCatcherMalformedCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("round: [not: a: mapping"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadCatcher(path); err == nil {
		t.Error("Expected error for malformed custom config")
	}
}
