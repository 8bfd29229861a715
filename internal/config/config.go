// Package config provides YAML-based game configuration loading for the
// fruit catcher. All gameplay tunables live here so the round logic stays
// free of magic numbers.
package config

// CatcherConfig contains all configuration for the fruit catcher game.
type CatcherConfig struct {
	Round   RoundConfig   `yaml:"round"`
	Field   FieldConfig   `yaml:"field"`
	Scoring ScoringConfig `yaml:"scoring"`
	Levels  LevelsConfig  `yaml:"levels"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Speed   SpeedConfig   `yaml:"speed"`
}

// RoundConfig defines round lifecycle parameters.
type RoundConfig struct {
	TimeLimitSeconds int `yaml:"time_limit_seconds"`
}

// FieldConfig defines the play-field geometry in game units.
// Items spawn above the visible field and despawn below it; the catch band
// is the vertical slice where the basket can intercept an item.
type FieldConfig struct {
	SpawnY          float64 `yaml:"spawn_y"`
	CatchBandTop    float64 `yaml:"catch_band_top"`
	CatchBandBottom float64 `yaml:"catch_band_bottom"`
	DespawnY        float64 `yaml:"despawn_y"`
}

// ScoringConfig defines per-kind point values.
type ScoringConfig struct {
	Apple int `yaml:"apple"`
	Grape int `yaml:"grape"`
}

// LevelsConfig defines the elapsed-time thresholds for level progression.
// Level is 1 below Level2AtSeconds, 2 below Level3AtSeconds, 3 after.
type LevelsConfig struct {
	Level2AtSeconds float64 `yaml:"level2_at_seconds"`
	Level3AtSeconds float64 `yaml:"level3_at_seconds"`
}

// SpawnConfig defines spawn pacing and weighted kind selection.
// Interval in ticks is max(MinIntervalTicks, BaseIntervalTicks − level·StepTicks).
// A roll above BombThreshold spawns a bomb (only at BombMinLevel or higher);
// otherwise a roll above GrapeThreshold spawns a grape, else an apple.
type SpawnConfig struct {
	BaseIntervalTicks int     `yaml:"base_interval_ticks"`
	StepTicks         int     `yaml:"step_ticks"`
	MinIntervalTicks  int     `yaml:"min_interval_ticks"`
	GrapeThreshold    float64 `yaml:"grape_threshold"`
	BombThreshold     float64 `yaml:"bomb_threshold"`
	BombMinLevel      int     `yaml:"bomb_min_level"`
}

// SpeedConfig defines fall speed in game units per tick:
// Base + level·PerLevel.
type SpeedConfig struct {
	Base     float64 `yaml:"base"`
	PerLevel float64 `yaml:"per_level"`
}
