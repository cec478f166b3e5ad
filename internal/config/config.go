// Package config provides YAML-based tuning for the Breakout game:
// physics engine parameters, layout proportions and gameplay timings.
package config

// BreakoutConfig contains all tunables for Breakout.
type BreakoutConfig struct {
	Physics  BreakoutPhysics  `yaml:"physics"`
	Layout   BreakoutLayout   `yaml:"layout"`
	Gameplay BreakoutGameplay `yaml:"gameplay"`
}

// BreakoutPhysics defines the physics world parameters.
type BreakoutPhysics struct {
	Engine        string  `yaml:"engine"`         // "builtin" or "chipmunk"
	Gravity       float64 `yaml:"gravity"`        // Downward acceleration, world units/s²
	PushMagnitude float64 `yaml:"push_magnitude"` // Launch push strength
	ImpulseScale  float64 `yaml:"impulse_scale"`  // Velocity gained per unit of push on a unit mass
	BallMass      float64 `yaml:"ball_mass"`
	SubstepTravel float64 `yaml:"substep_travel"` // Max travel per substep, in ball radii
}

// BreakoutLayout defines how the field is derived from the viewport.
type BreakoutLayout struct {
	Columns           int     `yaml:"columns"`
	Spacing           float64 `yaml:"spacing"`
	BrickHeightRatio  float64 `yaml:"brick_height_ratio"`  // Of viewport height
	TopOffset         float64 `yaml:"top_offset"`          // Minimum y of the first row
	TopOffsetRatio    float64 `yaml:"top_offset_ratio"`    // Of viewport height
	PaddleWidthRatio  float64 `yaml:"paddle_width_ratio"`  // Of brick width
	PaddleHeightRatio float64 `yaml:"paddle_height_ratio"` // Of brick height
	PaddleBottomRatio float64 `yaml:"paddle_bottom_ratio"` // Of viewport height, measured from the bottom
	WallInset         float64 `yaml:"wall_inset"`
	PaddleSegments    int     `yaml:"paddle_segments"` // Edges approximating the paddle oval
}

// BreakoutGameplay defines rules and timings.
type BreakoutGameplay struct {
	BrickVanish float64 `yaml:"brick_vanish"` // Seconds between a hit and the brick counting as removed
	MaxBalls    int     `yaml:"max_balls"`
	MaxBricks   int     `yaml:"max_bricks"`
}

// Validate replaces missing or non-positive values with defaults.
// A zero gravity is valid and kept.
func (c *BreakoutConfig) Validate() {
	d := DefaultBreakoutConfig()

	if c.Physics.Engine == "" {
		c.Physics.Engine = d.Physics.Engine
	}
	if c.Physics.Gravity < 0 {
		c.Physics.Gravity = d.Physics.Gravity
	}
	fillF(&c.Physics.PushMagnitude, d.Physics.PushMagnitude)
	fillF(&c.Physics.ImpulseScale, d.Physics.ImpulseScale)
	fillF(&c.Physics.BallMass, d.Physics.BallMass)
	fillF(&c.Physics.SubstepTravel, d.Physics.SubstepTravel)

	fillI(&c.Layout.Columns, d.Layout.Columns)
	fillF(&c.Layout.Spacing, d.Layout.Spacing)
	fillF(&c.Layout.BrickHeightRatio, d.Layout.BrickHeightRatio)
	fillF(&c.Layout.TopOffset, d.Layout.TopOffset)
	fillF(&c.Layout.TopOffsetRatio, d.Layout.TopOffsetRatio)
	fillF(&c.Layout.PaddleWidthRatio, d.Layout.PaddleWidthRatio)
	fillF(&c.Layout.PaddleHeightRatio, d.Layout.PaddleHeightRatio)
	fillF(&c.Layout.PaddleBottomRatio, d.Layout.PaddleBottomRatio)
	fillF(&c.Layout.WallInset, d.Layout.WallInset)
	fillI(&c.Layout.PaddleSegments, d.Layout.PaddleSegments)

	fillF(&c.Gameplay.BrickVanish, d.Gameplay.BrickVanish)
	fillI(&c.Gameplay.MaxBalls, d.Gameplay.MaxBalls)
	fillI(&c.Gameplay.MaxBricks, d.Gameplay.MaxBricks)
}

func fillF(v *float64, def float64) {
	if *v <= 0 {
		*v = def
	}
}

func fillI(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}
