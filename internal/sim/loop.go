package sim

import (
	"log"
	"marble/internal/engine"
	"marble/internal/interp"
)

// World is the physics simulation stepped once per tick.
type World interface {
	Step(dt float32)
}

// Platforms moves scripted geometry. Tick runs before every physics step,
// UpdateVisuals once per frame.
type Platforms interface {
	Tick(T float64, dt float32)
	UpdateVisuals(time float64)
}

type Renderer interface {
	Render(f Frame)
}

// Frame describes one frame callback.
type Frame struct {
	Timestamp float64
	Delta     float64 // after capping
	Ticks     int
	Fraction  float32
	Time      float64 // accumulated simulation time
	Paused    bool
}

// Tick describes one fixed step.
type Tick struct {
	Index int64
	Time  float64 // fixed interval time at the start of the step
	Dt    float32
}

type tracked struct {
	body   interp.Body
	node   *engine.GameObject
	interp interp.Interpolator
}

// Loop orchestrates one level's simulation. It is idle until Start and
// ignores frames after Stop.
type Loop struct {
	Name      string
	Clock     Clock
	World     World
	Platforms Platforms
	Renderer  Renderer
	Paused    bool

	PreFrame  engine.EventWithArg[Frame]
	PreStep   engine.EventWithArg[Tick]
	PostStep  engine.EventWithArg[Tick]
	PostFrame engine.EventWithArg[Frame]

	tracked       []*tracked
	running       bool
	haveTimestamp bool
	lastTimestamp float64
}

func NewLoop(name string, clock Clock, world World) *Loop {
	return &Loop{
		Name:  name,
		Clock: clock,
		World: world,
	}
}

// Track interpolates body onto node every frame and returns its
// interpolator.
func (l *Loop) Track(body interp.Body, node *engine.GameObject) *interp.Interpolator {
	t := &tracked{body: body, node: node}
	t.interp.Reset(body)
	l.tracked = append(l.tracked, t)
	return &t.interp
}

func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.haveTimestamp = false
	log.Printf("Loop: %s started (step %.4fs, max delta %.4fs)", l.Name, l.Clock.FixedTimestep, l.Clock.MaxDelta())
}

func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	log.Printf("Loop: %s stopped after %d ticks", l.Name, l.Clock.Ticks())
}

func (l *Loop) Running() bool {
	return l.running
}

// Reset rewinds simulation time and snaps every interpolator to its body.
func (l *Loop) Reset() {
	l.Clock.Reset()
	for _, t := range l.tracked {
		t.interp.Reset(t.body)
		if t.node != nil {
			t.interp.Sample(0).Apply(t.node)
		}
	}
}

// Frame runs one frame callback at timestamp seconds.
func (l *Loop) Frame(timestamp float64) Frame {
	if !l.running {
		return Frame{Timestamp: timestamp}
	}

	delta := 0.0
	if l.haveTimestamp {
		delta = timestamp - l.lastTimestamp
	}
	l.haveTimestamp = true
	l.lastTimestamp = timestamp

	f := Frame{Timestamp: timestamp, Paused: l.Paused}
	if l.Paused {
		f.Fraction = float32(l.Clock.Fraction())
		f.Time = l.Clock.AccumulatedTime()
		l.render(f)
		return f
	}

	f.Delta = l.Clock.Accumulate(delta)
	f.Time = l.Clock.AccumulatedTime()
	l.PreFrame.Invoke(f)

	step := float32(l.Clock.FixedTimestep)
	for l.running && l.Clock.Due() {
		tick := Tick{Index: l.Clock.Ticks(), Time: l.Clock.FixedIntervalTime(), Dt: step}

		l.PreStep.Invoke(tick)
		if l.Platforms != nil {
			l.Platforms.Tick(tick.Time, step)
		}
		l.World.Step(step)
		l.PostStep.Invoke(tick)

		for _, t := range l.tracked {
			t.interp.Advance(t.body)
		}
		l.Clock.Advance()
		f.Ticks++
	}

	f.Fraction = float32(l.Clock.Fraction())
	f.Time = l.Clock.AccumulatedTime()
	for _, t := range l.tracked {
		if t.node != nil {
			t.interp.Sample(f.Fraction).Apply(t.node)
		}
	}
	if l.Platforms != nil {
		l.Platforms.UpdateVisuals(f.Time)
	}

	l.PostFrame.Invoke(f)
	l.render(f)
	return f
}

func (l *Loop) render(f Frame) {
	if l.Renderer != nil {
		l.Renderer.Render(f)
	}
}
