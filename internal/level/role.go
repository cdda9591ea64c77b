package level

import (
	"fmt"
	"marble/internal/components"
	"marble/internal/engine"
	"strconv"
	"strings"
)

// Role is what a scene node means to gameplay. It is parsed once at load.
type Role interface {
	role()
}

// Platform is collidable level geometry.
type Platform struct {
	Moving      bool
	Sticky      bool
	Restitution float32
	// HasRestitution distinguishes an authored 0 from the default material.
	HasRestitution bool
	CameraCollide  bool
	PositionExpr   string
	RotationExpr   string
	// Motion is set when the node was built with motion functions.
	Motion *components.Motion
}

type Coin struct{}

type Star struct{}

type Goal struct{}

type Start struct{}

// Decoration is anything gameplay ignores.
type Decoration struct{}

func (Platform) role()   {}
func (Coin) role()       {}
func (Star) role()       {}
func (Goal) role()       {}
func (Start) role()      {}
func (Decoration) role() {}

// Authoring property keys.
const (
	PropEntity        = "entity"
	PropPosition      = "position"
	PropRotation      = "rotation"
	PropSticky        = "sticky"
	PropRestitution   = "restitution"
	PropCameraCollide = "cameracollide"
	PropVisible       = "visible"
)

// hidden reports whether g was authored invisible. Any node may carry it.
func hidden(g *engine.GameObject) bool {
	return g.Prop(PropVisible, "") == "false"
}

// ParseRole reads the role of g from its name and authoring properties.
// The markers are found by name; everything else by its entity property.
func ParseRole(g *engine.GameObject) (Role, error) {
	switch g.Name {
	case "Start":
		return Start{}, nil
	case "Goal":
		return Goal{}, nil
	}

	switch entity := strings.ToLower(g.Prop(PropEntity, "")); entity {
	case "":
		return Decoration{}, nil
	case "coin":
		return Coin{}, nil
	case "star":
		return Star{}, nil
	case "platform":
		return parsePlatform(g)
	default:
		return nil, fmt.Errorf("%s: unknown entity %q", g.Name, entity)
	}
}

func parsePlatform(g *engine.GameObject) (Platform, error) {
	p := Platform{
		PositionExpr:  strings.TrimSpace(g.Prop(PropPosition, "")),
		RotationExpr:  strings.TrimSpace(g.Prop(PropRotation, "")),
		Sticky:        g.Prop(PropSticky, "") == "true",
		CameraCollide: g.Prop(PropCameraCollide, "") != "false",
	}
	p.Motion = engine.GetComponent[*components.Motion](g)
	p.Moving = p.Motion != nil || p.PositionExpr != "" || p.RotationExpr != ""

	if raw := strings.TrimSpace(g.Prop(PropRestitution, "")); raw != "" {
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil || v < 0 {
			return p, fmt.Errorf("%s: restitution must be a non-negative number, got %q", g.Name, raw)
		}
		p.Restitution = float32(v)
		p.HasRestitution = true
	}
	return p, nil
}
