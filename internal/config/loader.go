package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "tightrope.yaml"

// Load loads the run configuration.
// Search order: customPath -> ~/.tightrope/configs/tightrope.yaml ->
// ./configs/tightrope.yaml -> embedded default -> DefaultConfig.
// Files are decoded over the defaults, so partial files only override what
// they mention. Only an explicit customPath can produce an error.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over DefaultConfig and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// MaxFrameDeltaLimit bounds the real delta one update may drain.
const MaxFrameDeltaLimit = 0.1

// Validate rejects values the simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Physics.FixedDT <= 0:
		return fmt.Errorf("config: physics.fixed_dt must be positive, got %v", c.Physics.FixedDT)
	case c.Physics.MaxFrameDelta <= 0 || c.Physics.MaxFrameDelta > MaxFrameDeltaLimit:
		return fmt.Errorf("config: physics.max_frame_delta must be in (0, %v], got %v", MaxFrameDeltaLimit, c.Physics.MaxFrameDelta)
	case c.Physics.MaxAngle <= 0:
		return fmt.Errorf("config: physics.max_angle must be positive, got %v", c.Physics.MaxAngle)
	case c.Physics.MaxSpeed < c.Physics.InitialSpeed:
		return fmt.Errorf("config: physics.max_speed (%v) below initial_speed (%v)", c.Physics.MaxSpeed, c.Physics.InitialSpeed)
	case c.Rig.Leg.Nodes < 2 || c.Rig.Arm.Nodes < 2 || c.Rig.Tail.Nodes < 2:
		return errors.New("config: rig chains need at least 2 nodes")
	case c.Progression.StageLength <= 0:
		return fmt.Errorf("config: progression.stage_length must be positive, got %v", c.Progression.StageLength)
	}
	for name, ev := range map[string]EventKindConfig{"bump": c.Events.Bump, "wind": c.Events.Wind, "slope": c.Events.Slope} {
		if ev.GapMin <= 0 || ev.GapMax < ev.GapMin {
			return fmt.Errorf("config: events.%s gap range [%v, %v] is invalid", name, ev.GapMin, ev.GapMax)
		}
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tightrope", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Physics.GravityScale = 0.85
		cfg.Progression.StartRank = 0
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Physics.GravityScale = 1.15
		cfg.Progression.StartRank = 2
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	}
}
