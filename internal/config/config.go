// Package config loads game options from an optional YAML file, an
// optional .env file and MARBLE_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTicksPerSecond  = 60
	DefaultMaxUpdateCount  = 3
	DefaultPhysics         = PhysicsHigh
	DefaultStickiness      = 0.5
	DefaultBonkMinVelocity = 8.0
	DefaultBonkMaxVelocity = 30.0
	DefaultCameraRadius    = 2.5
	DefaultCameraLayer     = 1
	DefaultWindowWidth     = 1280
	DefaultWindowHeight    = 720
	DefaultTargetFPS       = 120

	PhysicsLow  = "low"
	PhysicsHigh = "high"
)

var ErrInvalid = errors.New("invalid options")

// Options are the tunables that affect simulation and presentation.
type Options struct {
	TicksPerSecond  int     `yaml:"ticks_per_second"`
	MaxUpdateCount  int     `yaml:"max_update_count"`
	Physics         string  `yaml:"physics"`
	Stickiness      float32 `yaml:"stickiness"`
	BonkMinVelocity float32 `yaml:"bonk_min_velocity"`
	BonkMaxVelocity float32 `yaml:"bonk_max_velocity"`
	// MaxBallSpeed of 0 derives the cap from the tick rate.
	MaxBallSpeed float32 `yaml:"max_ball_speed"`
	CameraRadius float32 `yaml:"camera_radius"`
	CameraLayer  int     `yaml:"camera_layer"`
	Debug        bool    `yaml:"debug"`

	WindowWidth  int `yaml:"window_width"`
	WindowHeight int `yaml:"window_height"`
	TargetFPS    int `yaml:"target_fps"`
}

func Default() Options {
	return Options{
		TicksPerSecond:  DefaultTicksPerSecond,
		MaxUpdateCount:  DefaultMaxUpdateCount,
		Physics:         DefaultPhysics,
		Stickiness:      DefaultStickiness,
		BonkMinVelocity: DefaultBonkMinVelocity,
		BonkMaxVelocity: DefaultBonkMaxVelocity,
		CameraRadius:    DefaultCameraRadius,
		CameraLayer:     DefaultCameraLayer,
		WindowWidth:     DefaultWindowWidth,
		WindowHeight:    DefaultWindowHeight,
		TargetFPS:       DefaultTargetFPS,
	}
}

// Load builds Options from defaults, then path (skipped when empty or
// missing), then .env, then the environment.
func Load(path string) (Options, error) {
	opts := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return opts, fmt.Errorf("read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &opts); err != nil {
				return opts, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	// A missing .env is normal.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return opts, fmt.Errorf("load .env: %w", err)
	}

	if err := opts.applyEnv(); err != nil {
		return opts, err
	}
	return opts, opts.Validate()
}

func (o *Options) applyEnv() error {
	var problems []string

	intVar := func(key string, dst *int) {
		if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s must be an integer, got %q", key, raw))
				return
			}
			*dst = v
		}
	}
	floatVar := func(key string, dst *float32) {
		if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
			v, err := strconv.ParseFloat(raw, 32)
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s must be a number, got %q", key, raw))
				return
			}
			*dst = float32(v)
		}
	}

	intVar("MARBLE_TICKS_PER_SECOND", &o.TicksPerSecond)
	intVar("MARBLE_MAX_UPDATE_COUNT", &o.MaxUpdateCount)
	floatVar("MARBLE_STICKINESS", &o.Stickiness)
	floatVar("MARBLE_BONK_MIN_VELOCITY", &o.BonkMinVelocity)
	floatVar("MARBLE_BONK_MAX_VELOCITY", &o.BonkMaxVelocity)
	floatVar("MARBLE_MAX_BALL_SPEED", &o.MaxBallSpeed)
	floatVar("MARBLE_CAMERA_RADIUS", &o.CameraRadius)
	intVar("MARBLE_CAMERA_LAYER", &o.CameraLayer)
	intVar("MARBLE_TARGET_FPS", &o.TargetFPS)

	if raw := strings.TrimSpace(os.Getenv("MARBLE_PHYSICS")); raw != "" {
		o.Physics = strings.ToLower(raw)
	}
	if raw := strings.TrimSpace(os.Getenv("MARBLE_DEBUG")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("MARBLE_DEBUG must be a boolean value, got %q", raw))
		} else {
			o.Debug = v
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// Validate rejects option combinations the simulation cannot run with.
func (o Options) Validate() error {
	var problems []string

	switch o.TicksPerSecond {
	case 15, 30, 60:
	default:
		problems = append(problems, fmt.Sprintf("ticks_per_second must be 15, 30 or 60, got %d", o.TicksPerSecond))
	}
	if o.MaxUpdateCount <= 0 {
		problems = append(problems, fmt.Sprintf("max_update_count must be positive, got %d", o.MaxUpdateCount))
	}
	if o.Physics != PhysicsLow && o.Physics != PhysicsHigh {
		problems = append(problems, fmt.Sprintf("physics must be %q or %q, got %q", PhysicsLow, PhysicsHigh, o.Physics))
	}
	if o.Stickiness < 0 {
		problems = append(problems, fmt.Sprintf("stickiness must not be negative, got %g", o.Stickiness))
	}
	if o.BonkMaxVelocity <= o.BonkMinVelocity {
		problems = append(problems, fmt.Sprintf("bonk_max_velocity %g must exceed bonk_min_velocity %g", o.BonkMaxVelocity, o.BonkMinVelocity))
	}
	if o.MaxBallSpeed < 0 {
		problems = append(problems, fmt.Sprintf("max_ball_speed must not be negative, got %g", o.MaxBallSpeed))
	}
	if o.CameraRadius <= 0 {
		problems = append(problems, fmt.Sprintf("camera_radius must be positive, got %g", o.CameraRadius))
	}
	// Layer 0 is the default layer every node starts on.
	if o.CameraLayer < 1 || o.CameraLayer > 31 {
		problems = append(problems, fmt.Sprintf("camera_layer must be in [1,31], got %d", o.CameraLayer))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// FixedTimestep is the physics step in seconds.
func (o Options) FixedTimestep() float64 {
	return 1 / float64(o.TicksPerSecond)
}

func (o Options) SolverIterations() int {
	if o.Physics == PhysicsLow {
		return 1
	}
	return 10
}

// MaxVelocity caps the ball speed. Low tick rates get a tighter cap so the
// ball cannot tunnel through thin geometry.
func (o Options) MaxVelocity() float32 {
	if o.MaxBallSpeed > 0 {
		return o.MaxBallSpeed
	}
	if o.TicksPerSecond == 15 {
		return 15
	}
	return 40
}
