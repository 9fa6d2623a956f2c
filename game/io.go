package game

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/telemetry"
)

// Input is one tick of player intent, already read from devices.
type Input struct {
	Move r2.Vec // unit disk
	Aim  r2.Vec // direction toward the aim target; zero keeps the current heading
	Fire bool
}

// Sounds plays fire-and-forget one-shots.
type Sounds interface {
	PlayShoot()
	PlayExplosion()
	PlaySpawn()
}

// NopSounds discards every sound event.
type NopSounds struct{}

func (NopSounds) PlayShoot()     {}
func (NopSounds) PlayExplosion() {}
func (NopSounds) PlaySpawn()     {}

// Renderer presents a frame of draw commands.
type Renderer interface {
	Present(cmds []components.DrawCommand)
}

// Observer receives simulation events, typically a telemetry collector.
type Observer interface {
	Record(e telemetry.Event)
}

type nopObserver struct{}

func (nopObserver) Record(telemetry.Event) {}
