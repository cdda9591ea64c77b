// Package level turns a scene graph into a playable level: physics bodies,
// moving platforms, pickups, and the intro/playing/goal state machine
// driven by a fixed-step loop.
package level

import (
	"errors"
	"fmt"
	"log"
	"marble/internal/camera"
	"marble/internal/components"
	"marble/internal/config"
	"marble/internal/engine"
	"marble/internal/geom"
	"marble/internal/interp"
	"marble/internal/motion"
	"marble/internal/physics"
	"marble/internal/platform"
	"marble/internal/sim"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	ErrMissingMarker = errors.New("missing marker")
	ErrNoMesh        = errors.New("platform has no mesh")
	ErrNestedMoving  = errors.New("moving platform must be a root node")
)

const (
	Gravity                = 15.0
	TiltMagnitude          = 0.8
	TiltRate               = 8.0
	DirectMovementStrength = 5.0

	BallRadius  = 1.0
	BallMass    = 1.0
	BallDamping = 0.25

	CoinDistance = 1.8
	StarDistance = 4.0

	FallOutBuffer = 10.0
	GoalDistance  = 5.0
	GoalHeight    = 5.0
	GoalPull      = 10.0

	IntroDuration     = 5.0
	IntroRotateBuffer = 20.0
	IntroHeight       = 10.0

	RespawnDelay  = 1.0
	CompleteDelay = 2.0

	// BouncyRestitution separates springy surfaces from dead ones for bonks.
	BouncyRestitution = 0.1
)

type State int

const (
	StateIntro State = iota
	StatePlaying
	StateFalling
	StateGoal
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIntro:
		return "intro"
	case StatePlaying:
		return "playing"
	case StateFalling:
		return "falling"
	case StateGoal:
		return "goal"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// Bonk is a hard landing on a surface the ball was not touching before.
type Bonk struct {
	Surface   *physics.Body
	Intensity float32 // [0,1]
	Bouncy    bool
	Point     rl.Vector3
	// SurfaceVelocity is the velocity of the surface at Point.
	SurfaceVelocity rl.Vector3
}

type pickup struct {
	node    *engine.GameObject
	spinner *components.Spinner
}

type Level struct {
	Name    string
	Options config.Options
	Scene   *engine.Scene
	World   *physics.World
	Loop    *sim.Loop
	Movers  *platform.Driver
	Camera  *camera.Dolly
	Collide camera.Resolver
	Score   *ScoreKeeper
	Input   Input

	Ball     *physics.Body
	BallNode *engine.GameObject
	BallPose *interp.Interpolator
	// BallCollider is an invisible child of BallNode on the camera layer,
	// so the camera keeps clear of the ball.
	BallCollider *engine.GameObject

	State State
	Tilt  rl.Vector3

	OnBonk     engine.EventWithArg[Bonk]
	OnCoin     engine.Event
	OnStar     engine.Event
	OnDeath    engine.Event
	OnGoal     engine.Event
	OnComplete engine.Event

	start    rl.Vector3
	startRot rl.Quaternion
	goal     rl.Vector3
	bounds   geom.AABB

	coins     []pickup
	stars     []pickup
	coinCount int
	starCount int

	// timer counts unpaused frame time in the current state.
	timer float64
	// preStepVelocity is the ball velocity after platforms moved and before
	// the world step.
	preStepVelocity rl.Vector3
	// landing is the first surface the ball began touching this tick.
	landing *physics.Body
}

// platformStep runs the platform driver and then captures the ball
// velocity, so the sticky blend is not counted as an impact.
type platformStep struct{ l *Level }

func (p platformStep) Tick(T float64, dt float32) {
	p.l.Movers.Tick(T, dt)
	p.l.preStepVelocity = p.l.Ball.Velocity
}

func (p platformStep) UpdateVisuals(time float64) {
	p.l.Movers.UpdateVisuals(time)
}

// Load builds a level from scene. The scene keeps ownership of its nodes;
// the level adds the ball node to it.
func Load(opts config.Options, scene *engine.Scene, score *ScoreKeeper, input Input) (*Level, error) {
	if input == nil {
		input = NoInput{}
	}
	world := physics.NewWorld()
	world.Gravity = rl.Vector3Zero()
	world.Iterations = opts.SolverIterations()
	world.Debug = opts.Debug

	l := &Level{
		Name:    scene.Name,
		Options: opts,
		Scene:   scene,
		World:   world,
		Score:   score,
		Input:   input,
		Collide: camera.NewResolver(opts.CameraRadius, opts.CameraLayer),
		Tilt:    rl.Vector3{X: 0, Y: -1, Z: 0},
		bounds:  geom.EmptyAABB(),
	}

	l.Ball = physics.NewBody("Ball", physics.Dynamic, physics.Sphere{Radius: BallRadius}, BallMass)
	l.Ball.LinearDamping = BallDamping
	l.Ball.AngularDamping = BallDamping
	l.Ball.Material.Restitution = 1

	l.Movers = platform.NewDriver(scene, world, l.Ball)
	l.Movers.Stickiness = opts.Stickiness
	l.Movers.Debug = opts.Debug

	// Collect first so adding bodies does not depend on walk order.
	type entry struct {
		node *engine.GameObject
		role Role
	}
	var entries []entry
	for g := range scene.Walk() {
		role, err := ParseRole(g)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", scene.Name, err)
		}
		entries = append(entries, entry{g, role})
	}

	var haveStart, haveGoal bool
	for _, e := range entries {
		if hidden(e.node) {
			e.node.Visible = false
		}
		switch role := e.role.(type) {
		case Platform:
			if err := l.addPlatform(e.node, role); err != nil {
				return nil, fmt.Errorf("load %s: %w", scene.Name, err)
			}
		case Coin:
			l.coins = append(l.coins, l.addPickup(e.node))
		case Star:
			l.stars = append(l.stars, l.addPickup(e.node))
		case Start:
			l.start = e.node.WorldPosition()
			l.startRot = e.node.WorldRotation()
			haveStart = true
		case Goal:
			l.goal = e.node.WorldPosition()
			haveGoal = true
		}
	}
	if !haveStart {
		return nil, fmt.Errorf("load %s: %w: Start", scene.Name, ErrMissingMarker)
	}
	if !haveGoal {
		return nil, fmt.Errorf("load %s: %w: Goal", scene.Name, ErrMissingMarker)
	}

	world.AddBody(l.Ball)
	l.BallNode = engine.NewGameObject("Ball")
	l.BallNode.Tags = append(l.BallNode.Tags, "ball")
	l.BallCollider = engine.NewMeshObject("BallCollider", geom.SphereMesh(BallRadius, 8, 12), rl.Vector3{})
	l.BallCollider.Layers.Set(opts.CameraLayer)
	l.BallNode.AddChild(l.BallCollider)
	scene.AddGameObject(l.BallNode)

	l.Ball.Position = l.start
	l.Camera = camera.NewDolly(l.start)

	clock := sim.NewClock(opts.TicksPerSecond, opts.MaxUpdateCount)
	l.Loop = sim.NewLoop(scene.Name, clock, world)
	l.Loop.Platforms = platformStep{l}
	l.BallPose = l.Loop.Track(l.Ball, l.BallNode)
	l.Loop.PreFrame.AddListener(l.preFrame)
	l.Loop.PreStep.AddListener(l.preStep)
	l.Loop.PostStep.AddListener(l.postStep)
	l.Loop.PostFrame.AddListener(l.postFrame)
	world.OnContactBegin.AddListener(l.contactBegin)

	scene.Start()
	l.State = StateIntro
	l.Reset()

	log.Printf("Level: loaded %s (%d bodies, %d moving, %d coins, %d stars)",
		scene.Name, len(world.Bodies), len(l.Movers.Platforms), len(l.coins), len(l.stars))
	return l, nil
}

func (l *Level) addPlatform(g *engine.GameObject, role Platform) error {
	if g.Mesh == nil || g.Mesh.TriangleCount() == 0 {
		return fmt.Errorf("%s: %w", g.Name, ErrNoMesh)
	}
	if role.Moving && g.Parent != nil {
		return fmt.Errorf("%s: %w", g.Name, ErrNestedMoving)
	}

	mesh, err := bakeScale(g.Mesh, worldScale(g))
	if err != nil {
		return fmt.Errorf("%s: %w", g.Name, err)
	}

	typ := physics.Static
	if role.Moving {
		typ = physics.Kinematic
	}
	body := physics.NewBody(g.Name, typ, physics.Trimesh{Mesh: mesh}, 0)
	body.Position = g.WorldPosition()
	body.Orientation = g.WorldRotation()
	body.Sticky = role.Sticky
	if role.HasRestitution {
		body.Material.Restitution = role.Restitution
	}
	l.World.AddBody(body)
	l.bounds = l.bounds.Union(body.Bounds())

	setLayer(g, l.Options.CameraLayer, role.CameraCollide)

	if !role.Moving {
		return nil
	}
	p := &platform.Platform{Body: body, Node: engine.RefTo(g)}
	if role.Motion != nil {
		p.Position, p.Rotation = role.Motion.Position, role.Motion.Rotation
		l.Movers.Add(p)
		return nil
	}
	if role.PositionExpr != "" {
		e, err := motion.Compile(role.PositionExpr, body.Position)
		if err != nil {
			return fmt.Errorf("%s position: %w", g.Name, err)
		}
		p.Position = e.Func()
	}
	if role.RotationExpr != "" {
		e, err := motion.Compile(role.RotationExpr, rl.QuaternionToEuler(body.Orientation))
		if err != nil {
			return fmt.Errorf("%s rotation: %w", g.Name, err)
		}
		p.Rotation = e.Func()
	}
	l.Movers.Add(p)
	return nil
}

func (l *Level) addPickup(g *engine.GameObject) pickup {
	s := components.NewSpinner(components.DefaultSpinSpeed)
	g.AddComponent(s)
	return pickup{node: g, spinner: s}
}

// Reset puts the ball back on Start and rewinds level time, pickups and
// platforms.
func (l *Level) Reset() {
	l.Ball.Teleport(l.start)
	l.Ball.Orientation = l.startRot
	l.preStepVelocity = rl.Vector3Zero()
	l.landing = nil
	l.BallNode.Visible = true

	l.Movers.Reset()
	l.Loop.Reset()
	l.Camera.Reset(l.start)
	l.Tilt = rl.Vector3{X: 0, Y: -1, Z: 0}
	l.timer = 0

	for _, c := range l.coins {
		c.node.Visible = true
		c.spinner.Reset()
	}
	for _, s := range l.stars {
		s.node.Visible = true
		s.spinner.Reset()
	}
	l.coinCount = 0
	l.starCount = 0
}

// Time is the level time since the last reset.
func (l *Level) Time() float64 {
	return l.Loop.Clock.AccumulatedTime()
}

func (l *Level) Coins() (collected, total int) {
	return l.coinCount, len(l.coins)
}

func (l *Level) Stars() (collected, total int) {
	return l.starCount, len(l.stars)
}

func (l *Level) Goal() rl.Vector3 { return l.goal }

// Bounds is the union of all platform bounds at load.
func (l *Level) Bounds() geom.AABB { return l.bounds }

func (l *Level) setState(s State) {
	if l.State == s {
		return
	}
	if l.Options.Debug {
		log.Printf("Level: %s %s -> %s", l.Name, l.State, s)
	}
	l.State = s
	l.timer = 0
}

func (l *Level) preFrame(f sim.Frame) {
	dt := float32(f.Delta)
	l.timer += f.Delta
	l.Scene.Update(dt)

	ball := l.BallNode.Transform.Position
	if l.State == StatePlaying {
		l.collect(l.coins, CoinDistance, func() {
			l.coinCount++
			l.OnCoin.Invoke()
		})
		l.collect(l.stars, StarDistance, func() {
			l.starCount++
			l.OnStar.Invoke()
		})
	}

	forward := l.Camera.Forward(ball)
	lateral := l.Camera.Lateral(ball)

	target := rl.Vector3{X: 0, Y: -1, Z: 0}
	if l.State == StatePlaying {
		move := l.Input.Movement()
		tilt := rl.Vector2Scale(move, TiltMagnitude)
		target = rl.Vector3Add(target, rl.Vector3Scale(forward, tilt.Y))
		target = rl.Vector3Add(target, rl.Vector3Scale(lateral, tilt.X))
		target = rl.Vector3Normalize(target)

		// Direct rolling control, applied above the centre for topspin.
		dir := rl.Vector3Add(rl.Vector3Scale(forward, move.Y), rl.Vector3Scale(lateral, move.X))
		at := rl.Vector3Add(l.Ball.Position, rl.Vector3{X: 0, Y: 0.5, Z: 0})
		l.Ball.ApplyImpulse(rl.Vector3Scale(dir, DirectMovementStrength*dt), at)
	}
	l.Tilt = rl.Vector3Normalize(camera.Damp(l.Tilt, target, TiltRate, dt))
}

func (l *Level) collect(items []pickup, distance float32, onCollect func()) {
	for _, item := range items {
		if !item.node.Visible {
			continue
		}
		if rl.Vector3Distance(item.node.WorldPosition(), l.Ball.Position) < distance {
			item.node.Visible = false
			onCollect()
		}
	}
}

func (l *Level) preStep(sim.Tick) {
	if l.State == StateGoal || l.State == StateComplete {
		l.World.Gravity = rl.Vector3{X: 0, Y: Gravity, Z: 0}
	} else {
		l.World.Gravity = rl.Vector3Scale(l.Tilt, Gravity)
	}
	l.landing = nil
}

func (l *Level) contactBegin(p physics.CollisionPair) {
	if l.landing != nil {
		return
	}
	switch l.Ball {
	case p.A:
		l.landing = p.B
	case p.B:
		l.landing = p.A
	}
}

func (l *Level) postStep(sim.Tick) {
	if l.State == StatePlaying && l.landing != nil {
		l.detectBonk(l.landing)
	}

	limit := l.Options.MaxVelocity()
	if speed := rl.Vector3Length(l.Ball.Velocity); speed > limit {
		l.Ball.Velocity = rl.Vector3Scale(l.Ball.Velocity, limit/speed)
		if l.Options.Debug {
			log.Printf("Level: restricting velocity %.1f -> %.1f", speed, limit)
		}
	}
}

func (l *Level) detectBonk(surface *physics.Body) {
	lo, hi := l.Options.BonkMinVelocity, l.Options.BonkMaxVelocity
	change := rl.Vector3Distance(l.preStepVelocity, l.Ball.Velocity)
	if change <= lo {
		return
	}
	intensity := clamp01((change - lo) / (hi - lo))

	bonk := Bonk{
		Surface:   surface,
		Intensity: intensity,
		Bouncy:    surface.Material.Restitution > BouncyRestitution,
	}
	for _, c := range l.World.Contacts() {
		if c.A == l.Ball && c.B == surface {
			bonk.Point = rl.Vector3Add(l.Ball.Position, c.RA)
			bonk.SurfaceVelocity = surface.VelocityAtWorldPoint(bonk.Point)
			break
		}
	}
	if l.Options.Debug {
		log.Printf("Level: bonk on %s, intensity %.2f", surface.Name, intensity)
	}
	l.OnBonk.Invoke(bonk)
}

func (l *Level) postFrame(f sim.Frame) {
	dt := float32(f.Delta)
	ball := l.BallNode.Transform.Position

	switch l.State {
	case StateIntro:
		l.intro(f)
		return

	case StatePlaying:
		if l.fellOut() {
			l.Score.IncrementDeaths()
			l.Score.AddPlayTime(f.Time)
			l.setState(StateFalling)
			l.OnDeath.Invoke()
			break
		}
		if l.inGoal() {
			l.Score.AddPlayTime(f.Time)
			l.Score.ReportCoins(l.coinCount, len(l.coins))
			l.Score.ReportStars(l.starCount, len(l.stars))
			l.setState(StateGoal)
			l.OnGoal.Invoke()
		}

	case StateFalling:
		if l.timer >= RespawnDelay {
			l.setState(StatePlaying)
			l.Reset()
			return
		}
	}

	if l.State == StateGoal {
		diff := rl.Vector2{X: l.goal.X - l.Ball.Position.X, Y: l.goal.Z - l.Ball.Position.Z}
		mag := dt * GoalPull
		l.Ball.ApplyImpulse(rl.Vector3{X: mag * diff.X, Y: 0, Z: mag * diff.Y}, l.Ball.Position)

		if l.timer >= CompleteDelay {
			l.setState(StateComplete)
			l.OnComplete.Invoke()
		}
	}

	if l.State == StatePlaying {
		l.Camera.Follow(ball, dt)
		if pos, pushed := l.Collide.Resolve(l.Camera.Position, l.Scene); pushed {
			l.Camera.Position = pos
		}
	}
	l.Camera.Look(ball, dt)
}

func (l *Level) fellOut() bool {
	return !l.bounds.IsEmpty() && l.Ball.Position.Y < l.bounds.Min.Y-FallOutBuffer
}

func (l *Level) inGoal() bool {
	pos := l.Ball.Position
	dist := math.Hypot(float64(pos.X-l.goal.X), float64(pos.Z-l.goal.Z))
	return dist < GoalDistance && pos.Y > l.goal.Y && pos.Y < l.goal.Y+GoalHeight
}

func (l *Level) intro(f sim.Frame) {
	center, radius := l.start, float32(IntroRotateBuffer)
	if !l.bounds.IsEmpty() {
		center = l.bounds.Center()
		radius += float32(math.Max(
			math.Abs(float64(center.X-l.bounds.Min.X)),
			math.Abs(float64(center.Z-l.bounds.Min.Z)),
		))
	}
	angle := float32(2 * math.Pi * f.Time / IntroDuration)
	l.Camera.Orbit(center, radius, IntroHeight, angle)

	if f.Time >= IntroDuration || l.Input.Skip() {
		l.setState(StatePlaying)
		l.Reset()
	}
}

func clamp01(v float32) float32 {
	return float32(math.Min(math.Max(float64(v), 0), 1))
}

func worldScale(g *engine.GameObject) rl.Vector3 {
	s := g.Transform.Scale
	for p := g.Parent; p != nil; p = p.Parent {
		s = rl.Vector3Multiply(s, p.Transform.Scale)
	}
	return s
}

// bakeScale returns mesh with scale applied to its vertices, since bodies
// carry only a rigid transform.
func bakeScale(mesh *geom.Mesh, scale rl.Vector3) (*geom.Mesh, error) {
	if scale == (rl.Vector3{X: 1, Y: 1, Z: 1}) {
		return mesh, nil
	}
	vertices := make([]rl.Vector3, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		vertices[i] = rl.Vector3Multiply(v, scale)
	}
	return geom.NewMesh(vertices, mesh.Indices)
}

// setLayer adds or removes layer on g and its mesh children.
func setLayer(g *engine.GameObject, layer int, on bool) {
	if on {
		g.Layers.Enable(layer)
	} else {
		g.Layers.Disable(layer)
	}
	for _, c := range g.Children {
		if c.Mesh != nil {
			setLayer(c, layer, on)
		}
	}
}
