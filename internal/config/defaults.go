package config

import (
	_ "embed"
)

//go:embed defaults/tightrope.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded configuration.
// It mirrors defaults/tightrope.yaml and is the last fallback of Load.
func DefaultConfig() Config {
	return Config{
		Physics: PhysicsConfig{
			FixedDT:         1.0 / 60.0,
			MaxFrameDelta:   0.1,
			Gravity:         3.0,
			GravityScale:    1.0,
			InputForce:      5.0,
			AngularDamping:  0.985,
			MaxAngle:        0.9,
			InitialSpeed:    150,
			MaxSpeed:        360,
			SpeedIncrement:  2.0,
			DangerThreshold: 0.65,
			ZeroGravAngle:   0.92,
			ZeroGravVel:     0.85,
		},
		Difficulty: DifficultyConfig{
			Enabled:          true,
			Threshold:        40,
			BandA:            Band{Start: 40, End: 240, Gravity: 0.30, Damping: 0.006},
			BandB:            Band{Start: 180, End: 600, Gravity: 0.35, Damping: 0.006},
			RankPenaltyScale: 0.045,
			MinDamping:       0.5,
			MaxEffectiveDamp: 0.999,
			Backgrounds: []Label{
				{Until: 150, Name: "dawn"},
				{Until: 400, Name: "day"},
				{Until: 800, Name: "dusk"},
				{Until: 0, Name: "night"},
			},
		},
		Events: EventsConfig{
			Bump: EventKindConfig{
				GapMin: 25, GapMax: 60,
				MagnitudeMin: 0.6, MagnitudeMax: 1.2,
				IntensityCap: 3.0,
			},
			Wind: EventKindConfig{
				GapMin: 40, GapMax: 90,
				MagnitudeMin: 0.8, MagnitudeMax: 1.6,
				DurationMin: 2, DurationMax: 4,
				IntensityCap: 3.0,
			},
			Slope: EventKindConfig{
				GapMin: 50, GapMax: 110,
				MagnitudeMin: 0.05, MagnitudeMax: 0.12,
				DurationMin: 3, DurationMax: 6,
				IntensityCap: 4.0,
			},
		},
		Rig: RigConfig{
			LegUpper:        37,
			LegLower:        37,
			HipHeight:       70,
			StrideForward:   26,
			StepHeight:      14,
			SwingDuration:   0.25,
			SwingTiltFactor: 0.8,
			StrideTiltScale: 0.6,
			FootSpacing:     6,
			TorsoLength:     58,
			HeadRadius:      11,
			SwayAmplitude:   3,
			BobAmplitude:    2.5,
			ClampSlack:      8,
			ReachFactor:     0.85,
			SwingLerp:       0.72,
			PlantedLerp:     0.82,
			FallDuration:    0.55,
			WarmUpFrames:    45,
			Leg:             ChainConfig{Nodes: 4, SegmentLength: 24.7, Gravity: 0.35, Damping: 0.93, GravityDir: 1, Iterations: 3},
			Arm:             ChainConfig{Nodes: 4, SegmentLength: 14, Gravity: 0.3, Damping: 0.9, GravityDir: 1, Iterations: 3},
			Tail:            ChainConfig{Nodes: 6, SegmentLength: 9, Gravity: 0.12, Damping: 0.88, GravityDir: -1, Iterations: 2},
		},
		Loop: LoopConfig{
			MaxDelta: 0.05,
		},
		Progression: ProgressionConfig{
			StageLength:       200,
			StartRank:         0,
			EntryWalkSeconds:  1.6,
			EntryFadeSeconds:  0.8,
			IntensityBase:     1.5,
			StageMultiplierUp: 0.1,
			EndlessUnlockAt:   100,
		},
		Shield: ShieldConfig{
			Distance:     30,
			StageCharges: 1,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
