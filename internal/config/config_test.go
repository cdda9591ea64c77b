package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	opts := Default()
	if err := opts.Validate(); err != nil {
		t.Fatalf("Defaults should validate, got %v", err)
	}
	if opts.FixedTimestep() != 1.0/60 {
		t.Errorf("Expected 1/60 timestep, got %f", opts.FixedTimestep())
	}
	if opts.SolverIterations() != 10 {
		t.Errorf("Expected 10 iterations, got %d", opts.SolverIterations())
	}
	if opts.MaxVelocity() != 40 {
		t.Errorf("Expected max velocity 40, got %f", opts.MaxVelocity())
	}
}

func TestDerivedValues(t *testing.T) {
	opts := Default()
	opts.TicksPerSecond = 15
	opts.Physics = PhysicsLow

	if opts.MaxVelocity() != 15 {
		t.Errorf("Expected max velocity 15 at 15 TPS, got %f", opts.MaxVelocity())
	}
	if opts.SolverIterations() != 1 {
		t.Errorf("Expected 1 iteration on low physics, got %d", opts.SolverIterations())
	}

	opts.MaxBallSpeed = 22
	if opts.MaxVelocity() != 22 {
		t.Errorf("Explicit speed should win, got %f", opts.MaxVelocity())
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"tick rate", func(o *Options) { o.TicksPerSecond = 45 }},
		{"update count", func(o *Options) { o.MaxUpdateCount = 0 }},
		{"physics", func(o *Options) { o.Physics = "ultra" }},
		{"bonk range", func(o *Options) { o.BonkMaxVelocity = o.BonkMinVelocity }},
		{"camera radius", func(o *Options) { o.CameraRadius = 0 }},
		{"camera layer", func(o *Options) { o.CameraLayer = 32 }},
		{"default layer as camera layer", func(o *Options) { o.CameraLayer = 0 }},
		{"stickiness", func(o *Options) { o.Stickiness = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Default()
			tt.mutate(&opts)
			if err := opts.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "marble.yaml")
	data := []byte("ticks_per_second: 30\nphysics: low\nstickiness: 0.8\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MARBLE_STICKINESS", "1.5")
	t.Setenv("MARBLE_DEBUG", "true")
	t.Setenv("MARBLE_CAMERA_LAYER", "4")

	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if opts.TicksPerSecond != 30 || opts.Physics != PhysicsLow {
		t.Errorf("File values not applied: %+v", opts)
	}
	if opts.Stickiness != 1.5 {
		t.Errorf("Environment should override the file, got %f", opts.Stickiness)
	}
	if !opts.Debug {
		t.Error("Expected debug from the environment")
	}
	if opts.CameraLayer != 4 {
		t.Errorf("Expected camera layer 4 from the environment, got %d", opts.CameraLayer)
	}
	if opts.MaxUpdateCount != DefaultMaxUpdateCount {
		t.Errorf("Unset values should keep defaults, got %d", opts.MaxUpdateCount)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("MARBLE_TICKS_PER_SECOND=15\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that are already set, and sets
	// them for the rest of the process; register cleanup through Setenv.
	t.Setenv("MARBLE_TICKS_PER_SECOND", "")
	os.Unsetenv("MARBLE_TICKS_PER_SECOND")

	opts, err := Load("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if opts.TicksPerSecond != 15 {
		t.Errorf("Expected 15 TPS from .env, got %d", opts.TicksPerSecond)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	opts, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Missing file should not fail, got %v", err)
	}
	if opts != Default() {
		t.Errorf("Expected defaults, got %+v", opts)
	}
}

func TestLoadBadValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("MARBLE_MAX_UPDATE_COUNT", "many")
	if _, err := Load(""); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for a bad integer, got %v", err)
	}

	t.Setenv("MARBLE_MAX_UPDATE_COUNT", "")
	t.Setenv("MARBLE_TICKS_PER_SECOND", "50")
	if _, err := Load(""); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for an unsupported tick rate, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("ticks_per_second: [1"), 0o644)
	t.Setenv("MARBLE_TICKS_PER_SECOND", "")
	if _, err := Load(path); err == nil {
		t.Error("Expected a parse error")
	}
}
