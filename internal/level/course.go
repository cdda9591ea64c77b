package level

import (
	"fmt"
	"log"
	"marble/internal/config"
	"marble/internal/engine"
	"marble/internal/sim"
)

// Builder creates a fresh scene for one level.
type Builder func() (*engine.Scene, error)

type Course struct {
	Name      string
	ParTime   float64
	ParDeaths int
	Levels    []Builder
}

// CoursePlayer plays the levels of a course in order through a Runner, so
// only one level loop ever runs at a time.
type CoursePlayer struct {
	Course  Course
	Options config.Options
	Input   Input
	Runner  *sim.Runner
	Score   *ScoreKeeper

	// OnLevel fires after each level is loaded and before its first frame.
	OnLevel engine.EventWithArg[*Level]
	// OnFinish fires once after the last level completes.
	OnFinish engine.EventWithArg[*ScoreKeeper]

	current  *Level
	next     int
	advance  bool
	finished bool
}

func NewCoursePlayer(course Course, opts config.Options, input Input, runner *sim.Runner) *CoursePlayer {
	score := NewScoreKeeper(course.ParTime, course.ParDeaths)
	score.Debug = opts.Debug
	return &CoursePlayer{
		Course:  course,
		Options: opts,
		Input:   input,
		Runner:  runner,
		Score:   score,
	}
}

// Start loads the first level.
func (p *CoursePlayer) Start() error {
	p.next = 0
	p.finished = false
	return p.loadNext()
}

func (p *CoursePlayer) loadNext() error {
	if p.next >= len(p.Course.Levels) {
		p.Runner.Stop()
		p.current = nil
		p.finished = true
		log.Printf("Level: course %s finished, score %d, time %s, deaths %d",
			p.Course.Name, p.Score.Score(), p.Score.FormatPlayTime(), p.Score.Deaths)
		p.OnFinish.Invoke(p.Score)
		return nil
	}

	index := p.next
	p.next++

	scene, err := p.Course.Levels[index]()
	if err != nil {
		return fmt.Errorf("course %s level %d: %w", p.Course.Name, index+1, err)
	}
	lvl, err := Load(p.Options, scene, p.Score, p.Input)
	if err != nil {
		return fmt.Errorf("course %s level %d: %w", p.Course.Name, index+1, err)
	}
	lvl.OnComplete.AddListener(func() { p.advance = true })

	p.current = lvl
	p.OnLevel.Invoke(lvl)
	p.Runner.Switch(lvl.Loop)
	return nil
}

// Frame runs one frame of the current level and moves on to the next level
// once it completes.
func (p *CoursePlayer) Frame(timestamp float64) (sim.Frame, error) {
	f, _ := p.Runner.Frame(timestamp)
	if p.advance {
		p.advance = false
		if err := p.loadNext(); err != nil {
			return f, err
		}
	}
	return f, nil
}

func (p *CoursePlayer) Current() *Level { return p.current }

func (p *CoursePlayer) Finished() bool { return p.finished }

// LevelIndex is the 1-based number of the current level.
func (p *CoursePlayer) LevelIndex() int { return p.next }
