package level

import (
	"fmt"
	"marble/internal/components"
	"marble/internal/engine"
	"marble/internal/geom"
	"marble/internal/motion"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	pickupSize = rl.Vector3{X: 0.6, Y: 0.6, Z: 0.15}
	starSize   = rl.Vector3{X: 1.2, Y: 1.2, Z: 0.3}
)

func box(name string, size, pos rl.Vector3, color rl.Color) *engine.GameObject {
	g := engine.NewMeshObject(name, geom.BoxMesh(size), pos)
	g.Color = color
	g.Props[PropEntity] = "platform"
	return g
}

func marker(name string, pos rl.Vector3) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	return g
}

func goalMarker(pos rl.Vector3) *engine.GameObject {
	g := marker("Goal", pos)
	pad := engine.NewMeshObject("GoalPad", geom.PlaneMesh(4, 4), rl.Vector3{Y: 0.02})
	pad.Color = rl.Gold
	g.AddChild(pad)
	return g
}

func coin(pos rl.Vector3) *engine.GameObject {
	g := engine.NewMeshObject("Coin", geom.BoxMesh(pickupSize), pos)
	g.Color = rl.Yellow
	g.Props[PropEntity] = "coin"
	return g
}

func star(pos rl.Vector3) *engine.GameObject {
	g := engine.NewMeshObject("Star", geom.BoxMesh(starSize), pos)
	g.Color = rl.SkyBlue
	g.Props[PropEntity] = "star"
	return g
}

func sceneOf(name string, nodes ...*engine.GameObject) *engine.Scene {
	s := engine.NewScene(name)
	for _, n := range nodes {
		s.AddGameObject(n)
	}
	return s
}

// Straight is a single long floor with a line of coins.
func Straight() (*engine.Scene, error) {
	nodes := []*engine.GameObject{
		box("Floor", rl.Vector3{X: 12, Y: 1, Z: 50}, rl.Vector3{Y: -0.5, Z: -20}, rl.LightGray),
		marker("Start", rl.Vector3{Y: 1}),
		goalMarker(rl.Vector3{Z: -38}),
		star(rl.Vector3{X: 4, Y: 1.5, Z: -24}),
	}
	for z := float32(-6); z >= -30; z -= 6 {
		nodes = append(nodes, coin(rl.Vector3{Y: 1, Z: z}))
	}
	return sceneOf("Straight", nodes...), nil
}

// Steps drops down three terraces onto a springy landing.
func Steps() (*engine.Scene, error) {
	landing := box("Landing", rl.Vector3{X: 10, Y: 1, Z: 14}, rl.Vector3{Y: -0.5, Z: -32}, rl.Green)
	landing.Props[PropRestitution] = "0.6"

	wall := box("Wall", rl.Vector3{X: 1, Y: 3, Z: 14}, rl.Vector3{X: 5.5, Y: 5.5, Z: -4}, rl.DarkGray)
	wall.Props[PropCameraCollide] = "false"

	return sceneOf("Steps",
		box("Top", rl.Vector3{X: 10, Y: 1, Z: 14}, rl.Vector3{Y: 3.5, Z: -4}, rl.LightGray),
		box("Middle", rl.Vector3{X: 10, Y: 1, Z: 14}, rl.Vector3{Y: 1.5, Z: -18}, rl.Gray),
		landing,
		wall,
		marker("Start", rl.Vector3{Y: 5}),
		goalMarker(rl.Vector3{Z: -34}),
		coin(rl.Vector3{Y: 5, Z: -8}),
		coin(rl.Vector3{Y: 3, Z: -18}),
		star(rl.Vector3{X: -3, Y: 1.5, Z: -28}),
	), nil
}

// Ferry carries the ball across a gap on a sticky platform.
func Ferry() (*engine.Scene, error) {
	ferry := box("Ferry", rl.Vector3{X: 6, Y: 0.5, Z: 6}, rl.Vector3{Y: -0.25, Z: -8}, rl.Orange)
	ferry.Props[PropPosition] = "[init[0], init[1], init[2] - 6 + 6*cos(t*0.8)]"
	ferry.Props[PropSticky] = "true"

	return sceneOf("Ferry",
		box("Dock", rl.Vector3{X: 10, Y: 1, Z: 10}, rl.Vector3{Y: -0.5}, rl.LightGray),
		ferry,
		box("Pier", rl.Vector3{X: 10, Y: 1, Z: 10}, rl.Vector3{Y: -0.5, Z: -28}, rl.LightGray),
		marker("Start", rl.Vector3{Y: 1, Z: 2}),
		goalMarker(rl.Vector3{Z: -30}),
		coin(rl.Vector3{Y: 1.5, Z: -8}),
		star(rl.Vector3{Y: 2, Z: -14}),
	), nil
}

// Turntable spins a square disc between the start and the exit.
func Turntable() (*engine.Scene, error) {
	disc := box("Disc", rl.Vector3{X: 14, Y: 1, Z: 14}, rl.Vector3{Y: -0.5}, rl.Purple)
	disc.AddComponent(components.NewMotion(nil, motion.Spin(rl.Vector3{}, rl.Vector3{Y: 0.5})))
	disc.Props[PropSticky] = "true"

	return sceneOf("Turntable",
		box("Entry", rl.Vector3{X: 8, Y: 1, Z: 8}, rl.Vector3{Y: -0.5, Z: 15}, rl.LightGray),
		disc,
		box("Exit", rl.Vector3{X: 8, Y: 1, Z: 8}, rl.Vector3{Y: -0.5, Z: -15}, rl.LightGray),
		marker("Start", rl.Vector3{Y: 1, Z: 16}),
		goalMarker(rl.Vector3{Z: -16}),
		coin(rl.Vector3{X: 4, Y: 1.5, Z: 4}),
		coin(rl.Vector3{X: -4, Y: 1.5, Z: -4}),
		star(rl.Vector3{Y: 2}),
	), nil
}

// Elevator lifts the ball from the start floor to a raised landing. An
// invisible backstop keeps it from rolling off the start.
func Elevator() (*engine.Scene, error) {
	lift := box("Lift", rl.Vector3{X: 6, Y: 0.5, Z: 6}, rl.Vector3{Y: 1.75, Z: -10}, rl.Orange)
	lift.AddComponent(components.NewMotion(motion.Oscillate(lift.Transform.Position, rl.Vector3{Y: 2}, 6), nil))
	lift.Props[PropSticky] = "true"

	backstop := box("Backstop", rl.Vector3{X: 10, Y: 3, Z: 1}, rl.Vector3{Y: 1.5, Z: 5.5}, rl.DarkGray)
	backstop.Props[PropVisible] = "false"

	return sceneOf("Elevator",
		box("Base", rl.Vector3{X: 10, Y: 1, Z: 10}, rl.Vector3{Y: -0.5}, rl.LightGray),
		backstop,
		lift,
		box("Landing", rl.Vector3{X: 10, Y: 1, Z: 12}, rl.Vector3{Y: 3.5, Z: -20}, rl.LightGray),
		marker("Start", rl.Vector3{Y: 1, Z: 2}),
		goalMarker(rl.Vector3{Y: 4, Z: -22}),
		coin(rl.Vector3{Y: 3, Z: -10}),
		star(rl.Vector3{X: 3, Y: 5.5, Z: -17}),
	), nil
}

// Courses lists the built-in courses in menu order.
func Courses() []Course {
	return []Course{
		{Name: "tutorial", ParTime: 60, ParDeaths: 3, Levels: []Builder{Straight, Steps}},
		{Name: "moving", ParTime: 90, ParDeaths: 5, Levels: []Builder{Ferry, Turntable, Elevator}},
	}
}

func FindCourse(name string) (Course, error) {
	var names []string
	for _, c := range Courses() {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
		names = append(names, c.Name)
	}
	return Course{}, fmt.Errorf("unknown course %q (have %s)", name, strings.Join(names, ", "))
}
