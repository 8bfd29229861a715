package config

import (
	_ "embed"
)

//go:embed defaults/catcher.yaml
var defaultCatcherYAML []byte

// DefaultCatcherConfig returns the default fruit catcher configuration.
// Kept in sync with defaults/catcher.yaml as a last-resort fallback.
func DefaultCatcherConfig() CatcherConfig {
	return CatcherConfig{
		Round: RoundConfig{
			TimeLimitSeconds: 60,
		},
		Field: FieldConfig{
			SpawnY:          -50,
			CatchBandTop:    500,
			CatchBandBottom: 560,
			DespawnY:        650,
		},
		Scoring: ScoringConfig{
			Apple: 100,
			Grape: 200,
		},
		Levels: LevelsConfig{
			Level2AtSeconds: 20,
			Level3AtSeconds: 40,
		},
		Spawn: SpawnConfig{
			BaseIntervalTicks: 60,
			StepTicks:         10,
			MinIntervalTicks:  20,
			GrapeThreshold:    0.6,
			BombThreshold:     0.8,
			BombMinLevel:      2,
		},
		Speed: SpeedConfig{
			Base:     3,
			PerLevel: 2,
		},
	}
}
