package level

import rl "github.com/gen2brain/raylib-go/raylib"

// Input is the player's intent for the current frame. Movement is in
// [-1,1] on both axes; Y is forward.
type Input interface {
	Movement() rl.Vector2
	Skip() bool
}

// NoInput never moves.
type NoInput struct{}

func (NoInput) Movement() rl.Vector2 { return rl.Vector2{} }
func (NoInput) Skip() bool           { return false }

// Segment holds a movement until the given time.
type Segment struct {
	Until    float64
	Movement rl.Vector2
}

// ScriptedInput replays movement segments against a caller-driven clock.
// After the last segment the input is released.
type ScriptedInput struct {
	Segments  []Segment
	SkipIntro bool

	now float64
}

// Update sets the script time in seconds.
func (s *ScriptedInput) Update(now float64) {
	s.now = now
}

func (s *ScriptedInput) Movement() rl.Vector2 {
	for _, seg := range s.Segments {
		if s.now < seg.Until {
			return seg.Movement
		}
	}
	return rl.Vector2{}
}

func (s *ScriptedInput) Skip() bool {
	return s.SkipIntro
}
