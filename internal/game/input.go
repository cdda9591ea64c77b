package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const gamepadDeadzone = 0.15

// KeyboardInput reads WASD, the arrow keys and the first gamepad stick.
type KeyboardInput struct{}

func (k *KeyboardInput) Movement() rl.Vector2 {
	var m rl.Vector2
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		m.Y += 1
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		m.Y -= 1
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		m.X += 1
	}
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		m.X -= 1
	}

	if rl.IsGamepadAvailable(0) {
		stick := rl.Vector2{
			X: rl.GetGamepadAxisMovement(0, rl.GamepadAxisLeftX),
			Y: -rl.GetGamepadAxisMovement(0, rl.GamepadAxisLeftY),
		}
		if rl.Vector2Length(stick) > gamepadDeadzone {
			m = rl.Vector2Add(m, stick)
		}
	}
	return ClampMovement(m)
}

func (k *KeyboardInput) Skip() bool {
	return rl.IsKeyPressed(rl.KeySpace) || rl.IsKeyPressed(rl.KeyEnter) ||
		(rl.IsGamepadAvailable(0) && rl.IsGamepadButtonPressed(0, rl.GamepadButtonRightFaceDown))
}

// ClampMovement limits m to the unit disc so diagonals are not faster.
func ClampMovement(m rl.Vector2) rl.Vector2 {
	if l := rl.Vector2Length(m); l > 1 {
		return rl.Vector2Scale(m, 1/l)
	}
	return m
}
