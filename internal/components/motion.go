package components

import (
	"marble/internal/engine"
	"marble/internal/motion"
)

// Motion attaches built-in motion functions to a platform node. A level
// treats a node carrying Motion as moving, and the functions take
// precedence over authored position and rotation expressions.
type Motion struct {
	engine.BaseComponent
	Position motion.Func
	Rotation motion.Func
}

func NewMotion(position, rotation motion.Func) *Motion {
	return &Motion{Position: position, Rotation: rotation}
}
