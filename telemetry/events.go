// Package telemetry provides run statistics, highlight detection and CSV output.
package telemetry

import "github.com/pthm-cable/gravwell/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventShot EventType = iota
	EventSpawn
	EventKill
	EventAbsorb
	EventPlayerDeath
	EventSpawnSkipped
)

var eventNames = [...]string{"shot", "spawn", "kill", "absorb", "player_death", "spawn_skipped"}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type EventType
	Tick int32
	Kind components.Kind

	// Cause is the kind responsible: the killer of the player, or the bullet
	// that destroyed an enemy.
	Cause components.Kind
}

// NewShotEvent creates an event for one fired bullet.
func NewShotEvent(tick int32) Event {
	return Event{Type: EventShot, Tick: tick, Kind: components.KindBullet}
}

// NewSpawnEvent creates an enemy spawn event.
func NewSpawnEvent(tick int32, kind components.Kind) Event {
	return Event{Type: EventSpawn, Tick: tick, Kind: kind}
}

// NewKillEvent creates an event for an enemy destroyed by a bullet.
func NewKillEvent(tick int32, kind components.Kind) Event {
	return Event{Type: EventKill, Tick: tick, Kind: kind, Cause: components.KindBullet}
}

// NewAbsorbEvent creates an event for an object swallowed by a black hole.
func NewAbsorbEvent(tick int32, kind components.Kind) Event {
	return Event{Type: EventAbsorb, Tick: tick, Kind: kind, Cause: components.KindBlackHole}
}

// NewPlayerDeathEvent creates a game-over event.
func NewPlayerDeathEvent(tick int32, cause components.Kind) Event {
	return Event{Type: EventPlayerDeath, Tick: tick, Kind: components.KindPlayer, Cause: cause}
}

// NewSpawnSkippedEvent records a spawn dropped because its pool was full.
func NewSpawnSkippedEvent(tick int32, kind components.Kind) Event {
	return Event{Type: EventSpawnSkipped, Tick: tick, Kind: kind}
}
