// Package config provides YAML-based configuration loading and the
// distance-driven difficulty modulator for tightrope.
package config

// Config contains every tunable of a run.
type Config struct {
	Physics     PhysicsConfig     `yaml:"physics"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
	Events      EventsConfig      `yaml:"events"`
	Rig         RigConfig         `yaml:"rig"`
	Loop        LoopConfig        `yaml:"loop"`
	Progression ProgressionConfig `yaml:"progression"`
	Shield      ShieldConfig      `yaml:"shield"`
}

// PhysicsConfig defines the balance pendulum constants.
type PhysicsConfig struct {
	FixedDT         float64 `yaml:"fixed_dt"`           // Simulation step (seconds)
	MaxFrameDelta   float64 `yaml:"max_frame_delta"`    // Largest real delta accepted per update
	Gravity         float64 `yaml:"gravity"`            // Destabilizing torque scale
	GravityScale    float64 `yaml:"gravity_scale"`      // Preset multiplier on Gravity
	InputForce      float64 `yaml:"input_force"`        // Torque per unit of input
	AngularDamping  float64 `yaml:"angular_damping"`    // Per-step velocity retention
	MaxAngle        float64 `yaml:"max_angle"`          // Fall boundary (radians)
	InitialSpeed    float64 `yaml:"initial_speed"`      // Forward speed at run start
	MaxSpeed        float64 `yaml:"max_speed"`          // Forward speed cap before rank multiplier
	SpeedIncrement  float64 `yaml:"speed_increment"`    // Speed gained per second
	DangerThreshold float64 `yaml:"danger_threshold"`   // |angle percent| counted as dangerous
	ZeroGravAngle   float64 `yaml:"zero_grav_angle"`    // Angle decay per step without gravity
	ZeroGravVel     float64 `yaml:"zero_grav_velocity"` // Velocity decay per step without gravity
}

// DifficultyConfig defines the distance bands that harden the pendulum.
type DifficultyConfig struct {
	Enabled          bool    `yaml:"enabled"`
	Threshold        float64 `yaml:"threshold"` // Distance below which nothing changes
	BandA            Band    `yaml:"band_a"`
	BandB            Band    `yaml:"band_b"`
	RankPenaltyScale float64 `yaml:"rank_penalty_scale"` // Penalty per unit of (speedMultiplier - 1)
	MinDamping       float64 `yaml:"min_damping_multiplier"`
	MaxEffectiveDamp float64 `yaml:"max_effective_damping"`
	Backgrounds      []Label `yaml:"backgrounds"`
}

// Band is one smoothstep ramp over a distance range.
type Band struct {
	Start   float64 `yaml:"start"`
	End     float64 `yaml:"end"`
	Gravity float64 `yaml:"gravity"` // Added to the gravity multiplier at End
	Damping float64 `yaml:"damping"` // Added to the damping multiplier at End
}

// Label names the background shown up to a distance.
type Label struct {
	Until float64 `yaml:"until"` // 0 means no upper bound
	Name  string  `yaml:"name"`
}

// EventsConfig holds the spawn tables for each event kind.
type EventsConfig struct {
	Bump  EventKindConfig `yaml:"bump"`
	Wind  EventKindConfig `yaml:"wind"`
	Slope EventKindConfig `yaml:"slope"`
}

// EventKindConfig defines spawn gaps, magnitude and duration of one kind.
type EventKindConfig struct {
	GapMin       float64 `yaml:"gap_min"`
	GapMax       float64 `yaml:"gap_max"`
	MagnitudeMin float64 `yaml:"magnitude_min"`
	MagnitudeMax float64 `yaml:"magnitude_max"`
	DurationMin  float64 `yaml:"duration_min"` // Ignored for bumps
	DurationMax  float64 `yaml:"duration_max"`
	IntensityCap float64 `yaml:"intensity_cap"`
}

// RigConfig defines the character skeleton and gait.
type RigConfig struct {
	LegUpper        float64     `yaml:"leg_upper"`
	LegLower        float64     `yaml:"leg_lower"`
	HipHeight       float64     `yaml:"hip_height"`
	StrideForward   float64     `yaml:"stride_forward"`
	StepHeight      float64     `yaml:"step_height"`
	SwingDuration   float64     `yaml:"swing_duration"`
	SwingTiltFactor float64     `yaml:"swing_tilt_factor"`
	StrideTiltScale float64     `yaml:"stride_tilt_scale"`
	FootSpacing     float64     `yaml:"foot_spacing"`
	TorsoLength     float64     `yaml:"torso_length"`
	HeadRadius      float64     `yaml:"head_radius"`
	SwayAmplitude   float64     `yaml:"sway_amplitude"`
	BobAmplitude    float64     `yaml:"bob_amplitude"`
	ClampSlack      float64     `yaml:"clamp_slack"`  // Extra px behind the hip before a forced step
	ReachFactor     float64     `yaml:"reach_factor"` // Fraction of leg length before a forced step
	SwingLerp       float64     `yaml:"swing_lerp"`
	PlantedLerp     float64     `yaml:"planted_lerp"`
	FallDuration    float64     `yaml:"fall_duration"`
	WarmUpFrames    int         `yaml:"warm_up_frames"`
	Leg             ChainConfig `yaml:"leg"`
	Arm             ChainConfig `yaml:"arm"`
	Tail            ChainConfig `yaml:"tail"`
}

// ChainConfig holds Verlet chain parameters.
type ChainConfig struct {
	Nodes         int     `yaml:"nodes"`
	SegmentLength float64 `yaml:"segment_length"`
	Gravity       float64 `yaml:"gravity"`
	Damping       float64 `yaml:"damping"`
	GravityDir    float64 `yaml:"gravity_dir"`
	Iterations    int     `yaml:"iterations"`
}

// LoopConfig defines the frame scheduler limits.
type LoopConfig struct {
	MaxDelta float64 `yaml:"max_delta"` // Largest frame delta in seconds
}

// ProgressionConfig defines stages and the building entry sequence.
type ProgressionConfig struct {
	StageLength       float64 `yaml:"stage_length"`
	StartRank         int     `yaml:"start_rank"`
	EntryWalkSeconds  float64 `yaml:"entry_walk_seconds"`
	EntryFadeSeconds  float64 `yaml:"entry_fade_seconds"`
	IntensityBase     float64 `yaml:"intensity_base"`
	StageMultiplierUp float64 `yaml:"stage_multiplier_step"`
	EndlessUnlockAt   float64 `yaml:"endless_unlock_at"`
}

// ShieldConfig defines the coffee shield.
type ShieldConfig struct {
	Distance     float64 `yaml:"distance"`
	StageCharges int     `yaml:"charges_per_stage"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
