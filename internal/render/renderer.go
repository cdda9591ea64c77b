// Package render draws a level with raylib: flat-shaded scene meshes culled
// against the camera frustum, the interpolated ball, debug overlays and a
// raygui HUD.
package render

import (
	"marble/internal/engine"
	"marble/internal/level"
	"marble/internal/sim"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	ambient = 0.45
	diffuse = 0.55
)

var (
	backgroundColor = rl.NewColor(20, 20, 30, 255)
	ballColor       = rl.NewColor(230, 60, 60, 255)
)

// Stats counts what the last frame drew.
type Stats struct {
	Drawn     int
	Culled    int
	Triangles int
}

type Renderer struct {
	Level    *level.Level
	Debug    bool
	LightDir rl.Vector3
	HUD      HUD
	Stats    Stats
	// Layers selects which nodes are drawn.
	Layers engine.Layers

	balls []*engine.GameObject
}

func NewRenderer() *Renderer {
	return &Renderer{
		LightDir: rl.Vector3Normalize(rl.Vector3{X: -0.4, Y: -1, Z: -0.3}),
		HUD:      HUD{Visible: true},
		Layers:   engine.DefaultLayers,
	}
}

// Attach makes r the renderer of l's loop.
func (r *Renderer) Attach(l *level.Level) {
	r.Level = l
	r.balls = l.Scene.FindByTag("ball")
	l.Loop.Renderer = r
}

func (r *Renderer) Render(f sim.Frame) {
	if r.Level == nil {
		return
	}
	cam := r.Level.Camera.RaylibCamera()
	aspect := float32(rl.GetScreenWidth()) / float32(max(rl.GetScreenHeight(), 1))
	frustum := ExtractFrustum(cam, aspect)

	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	rl.BeginMode3D(cam)
	r.drawScene(&frustum)
	r.drawBalls(&frustum)
	if r.Debug {
		r.drawStick()
		r.drawBounds()
	}
	rl.EndMode3D()

	r.HUD.Draw(r.Level, f)
	if r.Debug {
		r.HUD.DrawDebug(f, r.Stats)
	}
	rl.EndDrawing()
}

func (r *Renderer) drawScene(frustum *Frustum) {
	r.Stats = Stats{}
	for g, world := range r.Level.Scene.Walk() {
		if !r.drawn(g) {
			continue
		}
		if !frustum.ContainsAABB(g.Mesh.Bounds().Transform(world)) {
			r.Stats.Culled++
			continue
		}
		r.Stats.Drawn++

		for i := 0; i < g.Mesh.TriangleCount(); i++ {
			a, b, c := g.Mesh.Triangle(i)
			a = rl.Vector3Transform(a, world)
			b = rl.Vector3Transform(b, world)
			c = rl.Vector3Transform(c, world)
			n := rl.Vector3Normalize(rl.Vector3CrossProduct(rl.Vector3Subtract(b, a), rl.Vector3Subtract(c, a)))
			rl.DrawTriangle3D(a, b, c, Shade(g.Color, n, r.LightDir))
			r.Stats.Triangles++
		}
	}
}

func (r *Renderer) drawn(g *engine.GameObject) bool {
	return g.Active && g.Mesh != nil && g.Mesh.TriangleCount() > 0 &&
		g.Layers.Test(r.Layers) && g.VisibleInTree()
}

// drawBounds outlines the scene and every mesh node. Nodes the camera
// collides with are orange.
func (r *Renderer) drawBounds() {
	if b := r.Level.Scene.Bounds(); !b.IsEmpty() {
		rl.DrawBoundingBox(b.BoundingBox(), rl.DarkGray)
	}
	layer := r.Level.Options.CameraLayer
	for g, world := range r.Level.Scene.Walk() {
		if g.Mesh == nil || g.Mesh.TriangleCount() == 0 {
			continue
		}
		color := rl.SkyBlue
		if g.Layers.Has(layer) {
			color = rl.Orange
		}
		rl.DrawBoundingBox(g.Mesh.Bounds().Transform(world).BoundingBox(), color)
	}
}

func (r *Renderer) drawBalls(frustum *Frustum) {
	for _, g := range r.balls {
		if !g.Visible {
			continue
		}
		pos := g.Transform.Position
		if !frustum.ContainsSphere(pos, level.BallRadius) {
			r.Stats.Culled++
			continue
		}
		rl.DrawSphereEx(pos, level.BallRadius, 16, 16, ballColor)

		// A band around the local X axis makes rolling visible.
		axis := rl.Vector3RotateByQuaternion(rl.Vector3{X: level.BallRadius * 1.02}, g.Transform.Rotation)
		rl.DrawLine3D(rl.Vector3Subtract(pos, axis), rl.Vector3Add(pos, axis), rl.RayWhite)
		rl.DrawSphere(rl.Vector3Add(pos, axis), 0.12, rl.RayWhite)
	}
}

func (r *Renderer) drawStick() {
	stick := r.Level.Movers.Stick
	if !stick.Active {
		return
	}
	tip := rl.Vector3Add(stick.Point, stick.Velocity)
	rl.DrawLine3D(stick.Point, tip, rl.Lime)
	rl.DrawSphere(tip, 0.1, rl.Lime)
}

// Shade lights c by a single directional light with a fixed ambient term.
func Shade(c rl.Color, normal, lightDir rl.Vector3) rl.Color {
	lambert := -rl.Vector3DotProduct(normal, lightDir)
	if lambert < 0 {
		lambert = 0
	}
	k := float32(ambient + diffuse*lambert)
	scale := func(v uint8) uint8 {
		return uint8(min(float32(v)*k, 255))
	}
	return rl.NewColor(scale(c.R), scale(c.G), scale(c.B), c.A)
}
