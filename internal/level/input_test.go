package level

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestScriptedInputSegments(t *testing.T) {
	in := &ScriptedInput{Segments: []Segment{
		{Until: 1, Movement: rl.Vector2{Y: 1}},
		{Until: 2, Movement: rl.Vector2{X: -1}},
	}}

	checks := []struct {
		now  float64
		want rl.Vector2
	}{
		{0, rl.Vector2{Y: 1}},
		{0.99, rl.Vector2{Y: 1}},
		{1, rl.Vector2{X: -1}},
		{2, rl.Vector2{}},
	}
	for _, c := range checks {
		in.Update(c.now)
		if got := in.Movement(); got != c.want {
			t.Errorf("At %v: expected %v, got %v", c.now, c.want, got)
		}
	}
	if in.Skip() {
		t.Error("Skip should follow SkipIntro")
	}
}
