package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Physics: BreakoutPhysics{
			Engine:        "builtin",
			Gravity:       0,
			PushMagnitude: 0.6,
			ImpulseScale:  500, // 0.6 push -> 300 units/s on a unit mass
			BallMass:      1,
			SubstepTravel: 0.5,
		},
		Layout: BreakoutLayout{
			Columns:           5,
			Spacing:           10,
			BrickHeightRatio:  0.03,
			TopOffset:         50,
			TopOffsetRatio:    0.125,
			PaddleWidthRatio:  1.5,
			PaddleHeightRatio: 0.5,
			PaddleBottomRatio: 0.15,
			WallInset:         10,
			PaddleSegments:    16,
		},
		Gameplay: BreakoutGameplay{
			BrickVanish: 0.5,
			MaxBalls:    3,
			MaxBricks:   40,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
