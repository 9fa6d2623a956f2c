// Package input reads keyboard, mouse and gamepad state into game input.
package input

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/camera"
	"github.com/pthm-cable/gravwell/game"
	"github.com/pthm-cable/gravwell/systems"
)

// Stick dead zone below which gamepad axes read as zero.
const deadZone = 0.2

// Reader samples devices once per frame.
// Keyboard moves with WASD or the arrows; the mouse aims and fires with the
// left button. A connected gamepad overrides both: left stick moves, right
// stick aims and fires.
type Reader struct {
	gamepad int32
}

// NewReader creates a reader listening to the first gamepad.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the input for this frame. player is the player's world
// position; the mouse aims from it.
func (r *Reader) Read(cam *camera.Camera, player r2.Vec) game.Input {
	if rl.IsGamepadAvailable(r.gamepad) {
		return r.readGamepad()
	}

	var move r2.Vec
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		move.X--
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		move.X++
	}
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		move.Y--
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		move.Y++
	}

	mouse := rl.GetMousePosition()
	aim := r2.Sub(cam.ScreenToWorld(mouse.X, mouse.Y), player)

	return game.Input{
		Move: systems.SafeNormalize(move),
		Aim:  aim,
		Fire: rl.IsMouseButtonDown(rl.MouseButtonLeft),
	}
}

func (r *Reader) readGamepad() game.Input {
	move := r2.Vec{
		X: deadZoned(rl.GetGamepadAxisMovement(r.gamepad, rl.GamepadAxisLeftX)),
		Y: deadZoned(rl.GetGamepadAxisMovement(r.gamepad, rl.GamepadAxisLeftY)),
	}
	aim := r2.Vec{
		X: deadZoned(rl.GetGamepadAxisMovement(r.gamepad, rl.GamepadAxisRightX)),
		Y: deadZoned(rl.GetGamepadAxisMovement(r.gamepad, rl.GamepadAxisRightY)),
	}
	return game.Input{
		Move: systems.ClampLength(move, 1),
		Aim:  aim,
		Fire: aim != (r2.Vec{}),
	}
}

func deadZoned(v float32) float64 {
	if math.Abs(float64(v)) < deadZone {
		return 0
	}
	return float64(v)
}
