package render

import (
	"fmt"
	"marble/internal/level"
	"marble/internal/sim"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Status is the text the HUD shows for a frame.
type Status struct {
	Level  string
	Clock  string
	Coins  string
	Stars  string
	Deaths string
	Banner string
}

// StatusOf summarises l at frame f.
func StatusOf(l *level.Level, f sim.Frame) Status {
	coins, totalCoins := l.Coins()
	stars, totalStars := l.Stars()
	s := Status{
		Level:  l.Name,
		Clock:  FormatClock(f.Time),
		Coins:  fmt.Sprintf("Coins %d/%d", coins, totalCoins),
		Stars:  fmt.Sprintf("Stars %d/%d", stars, totalStars),
		Deaths: fmt.Sprintf("Deaths %d", l.Score.Deaths),
	}
	switch l.State {
	case level.StateIntro:
		s.Banner = l.Name
	case level.StateFalling:
		s.Banner = "Oops!"
	case level.StateGoal, level.StateComplete:
		s.Banner = "Goal!"
	}
	if f.Paused {
		s.Banner = "Paused"
	}
	return s
}

// FormatClock renders seconds as m:ss.cc.
func FormatClock(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	centis := int(seconds * 100)
	return fmt.Sprintf("%d:%02d.%02d", centis/6000, centis/100%60, centis%100)
}

type HUD struct {
	Visible bool
}

func (h *HUD) Draw(l *level.Level, f sim.Frame) {
	if !h.Visible {
		return
	}
	s := StatusOf(l, f)

	gui.Panel(rl.Rectangle{X: 10, Y: 10, Width: 180, Height: 124}, s.Level)
	gui.Label(rl.Rectangle{X: 20, Y: 38, Width: 160, Height: 20}, s.Clock)
	gui.Label(rl.Rectangle{X: 20, Y: 58, Width: 160, Height: 20}, s.Coins)
	gui.Label(rl.Rectangle{X: 20, Y: 78, Width: 160, Height: 20}, s.Stars)
	gui.Label(rl.Rectangle{X: 20, Y: 98, Width: 160, Height: 20}, s.Deaths)

	screenW := float32(rl.GetScreenWidth())
	l.Loop.Paused = gui.Toggle(rl.Rectangle{X: screenW - 110, Y: 10, Width: 100, Height: 28}, "Pause", l.Loop.Paused)

	if s.Banner != "" {
		const size = 40
		width := rl.MeasureText(s.Banner, size)
		rl.DrawText(s.Banner, int32(screenW)/2-width/2, 80, size, rl.RayWhite)
	}
}

func (h *HUD) DrawDebug(f sim.Frame, stats Stats) {
	rl.DrawFPS(10, 144)
	rl.DrawText(fmt.Sprintf("Ticks: %d  Fraction: %.2f", f.Ticks, f.Fraction), 10, 166, 16, rl.Green)
	rl.DrawText(fmt.Sprintf("Drawn: %d  Culled: %d  Tris: %d", stats.Drawn, stats.Culled, stats.Triangles), 10, 186, 16, rl.Green)
}
