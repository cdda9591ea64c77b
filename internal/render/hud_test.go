package render

import (
	"marble/internal/config"
	"marble/internal/level"
	"marble/internal/sim"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00.00"},
		{1.25, "0:01.25"},
		{61.5, "1:01.50"},
		{-3, "0:00.00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%v): expected %s, got %s", tt.seconds, tt.want, got)
		}
	}
}

func TestStatusOf(t *testing.T) {
	scene, _ := level.Straight()
	l, err := level.Load(config.Default(), scene, level.NewScoreKeeper(0, 0), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	s := StatusOf(l, sim.Frame{Time: 2})
	if s.Coins != "Coins 0/5" || s.Stars != "Stars 0/1" || s.Deaths != "Deaths 0" {
		t.Errorf("Unexpected counters %+v", s)
	}
	if s.Banner != "Straight" {
		t.Errorf("Expected the level name during the intro, got %q", s.Banner)
	}
	if s.Clock != "0:02.00" {
		t.Errorf("Expected clock 0:02.00, got %s", s.Clock)
	}

	if s := StatusOf(l, sim.Frame{Paused: true}); s.Banner != "Paused" {
		t.Errorf("Expected the pause banner, got %q", s.Banner)
	}
}

func TestShade(t *testing.T) {
	light := rl.Vector3{Y: -1}
	white := rl.NewColor(200, 200, 200, 255)

	lit := Shade(white, rl.Vector3{Y: 1}, light)
	if lit.R < 199 || lit.A != 255 {
		t.Errorf("Expected a fully lit face to keep its colour, got %v", lit)
	}
	dark := Shade(white, rl.Vector3{Y: -1}, light)
	if dark.R < 89 || dark.R > 90 {
		t.Errorf("Expected an unlit face near ambient 90, got %d", dark.R)
	}
}
