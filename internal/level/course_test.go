package level

import (
	"errors"
	"marble/internal/config"
	"marble/internal/engine"
	"marble/internal/sim"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// shortcut builds a level whose Start sits inside the goal.
func shortcut(name string) Builder {
	return func() (*engine.Scene, error) {
		return sceneOf(name,
			box("Floor", rl.Vector3{X: 10, Y: 1, Z: 10}, rl.Vector3{Y: -0.5}, rl.Gray),
			marker("Start", rl.Vector3{Y: 1}),
			goalMarker(rl.Vector3{}),
		), nil
	}
}

func TestCoursePlayerPlaysLevelsInOrder(t *testing.T) {
	course := Course{Name: "short", ParTime: 30, ParDeaths: 2, Levels: []Builder{shortcut("One"), shortcut("Two")}}
	runner := &sim.Runner{}
	p := NewCoursePlayer(course, config.Default(), &ScriptedInput{SkipIntro: true}, runner)

	var loaded []*Level
	p.OnLevel.AddListener(func(l *Level) { loaded = append(loaded, l) })
	var final *ScoreKeeper
	p.OnFinish.AddListener(func(s *ScoreKeeper) { final = s })

	if err := p.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if p.LevelIndex() != 1 || p.Current().Name != "One" {
		t.Fatalf("Expected level 1 'One', got %d %q", p.LevelIndex(), p.Current().Name)
	}

	ts := 0.0
	for i := 0; i < 1000 && !p.Finished(); i++ {
		if _, err := p.Frame(ts); err != nil {
			t.Fatalf("Frame failed: %v", err)
		}
		ts += frameDt

		if len(loaded) == 2 && loaded[0].Loop.Running() {
			t.Fatal("The first level loop should stop once the second starts")
		}
	}

	if !p.Finished() {
		t.Fatal("Expected the course to finish")
	}
	if len(loaded) != 2 || loaded[1].Name != "Two" {
		t.Fatalf("Expected levels One and Two, got %d", len(loaded))
	}
	if loaded[1].Loop.Running() || runner.Current() != nil {
		t.Error("Expected no loop running after the course")
	}
	if final != p.Score {
		t.Error("OnFinish should report the course score")
	}
	if p.Score.TotalCoins != 0 || p.Score.PlayTime <= 0 {
		t.Errorf("Unexpected final score %+v", p.Score)
	}
	if p.Score.TimeBonus() == 0 || p.Score.DeathsBonus() != 20 {
		t.Errorf("Expected time and deaths bonuses, got %d and %d", p.Score.TimeBonus(), p.Score.DeathsBonus())
	}
}

func TestCoursePlayerReportsBuildErrors(t *testing.T) {
	broken := errors.New("broken")
	course := Course{Name: "bad", Levels: []Builder{func() (*engine.Scene, error) { return nil, broken }}}
	p := NewCoursePlayer(course, config.Default(), nil, &sim.Runner{})
	if err := p.Start(); !errors.Is(err, broken) {
		t.Errorf("Expected the builder error, got %v", err)
	}
}

func TestCoursePlayerEmptyCourseFinishes(t *testing.T) {
	p := NewCoursePlayer(Course{Name: "empty"}, config.Default(), nil, &sim.Runner{})
	if err := p.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !p.Finished() || p.Current() != nil {
		t.Error("An empty course should finish immediately")
	}
}
