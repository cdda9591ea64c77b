package game

import (
	"fmt"
	"log"
	"marble/internal/config"
	"marble/internal/level"
	"marble/internal/render"
	"marble/internal/sim"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Game struct {
	Options   config.Options
	Input     *KeyboardInput
	Runner    *sim.Runner
	Player    *level.CoursePlayer
	Renderer  *render.Renderer
	DebugMode bool

	// Debug timing (ms)
	frameMs float64
}

func New(opts config.Options, course level.Course) *Game {
	input := &KeyboardInput{}
	runner := &sim.Runner{}
	g := &Game{
		Options:   opts,
		Input:     input,
		Runner:    runner,
		Player:    level.NewCoursePlayer(course, opts, input, runner),
		Renderer:  render.NewRenderer(),
		DebugMode: opts.Debug,
	}
	g.Renderer.Debug = g.DebugMode
	g.Player.OnLevel.AddListener(func(l *level.Level) {
		g.Renderer.Attach(l)
		g.applyDebug(l)
		log.Printf("Game: level %d of %s: %s", g.Player.LevelIndex(), course.Name, l.Name)
	})
	return g
}

func (g *Game) Run() error {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(g.Options.WindowWidth), int32(g.Options.WindowHeight), "Marble")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(g.Options.TargetFPS))

	if err := g.Player.Start(); err != nil {
		return err
	}
	defer g.Runner.Stop()

	for !rl.WindowShouldClose() {
		if g.Player.Finished() {
			g.drawSummary()
			if rl.IsKeyPressed(rl.KeyEnter) {
				return nil
			}
			continue
		}

		g.Update()
		start := time.Now()
		if _, err := g.Player.Frame(rl.GetTime()); err != nil {
			return err
		}
		g.frameMs = float64(time.Since(start).Microseconds()) / 1000.0
	}
	return nil
}

// Update handles the keys that act outside the level loop.
func (g *Game) Update() {
	l := g.Player.Current()
	if l == nil {
		return
	}

	if rl.IsKeyPressed(rl.KeyP) {
		l.Loop.Paused = !l.Loop.Paused
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		g.DebugMode = !g.DebugMode
		g.Renderer.Debug = g.DebugMode
		g.applyDebug(l)
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.Renderer.HUD.Visible = !g.Renderer.HUD.Visible
	}
	if g.DebugMode && rl.IsKeyPressed(rl.KeyR) {
		l.Reset()
	}
}

func (g *Game) applyDebug(l *level.Level) {
	l.Options.Debug = g.DebugMode
	l.Movers.Debug = g.DebugMode
	l.World.Debug = g.DebugMode
	l.Score.Debug = g.DebugMode
}

func (g *Game) drawSummary() {
	s := g.Player.Score
	lines := []string{
		g.Player.Course.Name + " complete",
		fmt.Sprintf("Time %s  (+%d)", s.FormatPlayTime(), s.TimeBonus()),
		fmt.Sprintf("Deaths %d  (+%d)", s.Deaths, s.DeathsBonus()),
		fmt.Sprintf("Coins %d/%d  (+%d)", s.CoinsCollected, s.TotalCoins, s.CoinBonus()),
		fmt.Sprintf("Stars %d/%d  (+%d)", s.StarsCollected, s.TotalStars, s.StarsBonus()),
		fmt.Sprintf("Score %d", s.Score()),
		"Press Enter to quit",
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))
	y := int32(120)
	for i, line := range lines {
		size := int32(24)
		if i == 0 {
			size = 40
		}
		w := rl.MeasureText(line, size)
		rl.DrawText(line, int32(rl.GetScreenWidth())/2-w/2, y, size, rl.RayWhite)
		y += size + 16
	}
	if g.DebugMode {
		rl.DrawText(fmt.Sprintf("Last frame: %.2f ms", g.frameMs), 10, 10, 16, rl.Green)
	}
	rl.EndDrawing()
}
