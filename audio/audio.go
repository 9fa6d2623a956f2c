// Package audio plays the game's one-shot sound effects through raylib.
package audio

import (
	"log/slog"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gravwell/config"
	"github.com/pthm-cable/gravwell/systems"
)

// Bank holds the loaded clips for each sound event. Each play picks one
// clip of the event at random. Missing clips are skipped.
type Bank struct {
	rng       systems.Rand
	shoot     []rl.Sound
	explosion []rl.Sound
	spawn     []rl.Sound
}

// Load opens the audio device and loads every clip listed in cfg under root.
func Load(root string, cfg config.SoundsConfig, rng systems.Rand) *Bank {
	rl.InitAudioDevice()
	if !rl.IsAudioDeviceReady() {
		slog.Warn("audio device unavailable, sounds disabled")
	}

	b := &Bank{rng: rng}
	b.shoot = loadClips(root, cfg.Shoot, cfg.Volume)
	b.explosion = loadClips(root, cfg.Explosion, cfg.Volume)
	b.spawn = loadClips(root, cfg.Spawn, cfg.Volume)

	slog.Info("sounds loaded",
		"shoot", len(b.shoot),
		"explosion", len(b.explosion),
		"spawn", len(b.spawn),
	)
	return b
}

func loadClips(root string, paths []string, volume float64) []rl.Sound {
	clips := make([]rl.Sound, 0, len(paths))
	for _, p := range paths {
		full := filepath.Join(root, p)
		if !rl.FileExists(full) {
			slog.Warn("sound missing", "path", full)
			continue
		}
		s := rl.LoadSound(full)
		rl.SetSoundVolume(s, float32(volume))
		clips = append(clips, s)
	}
	return clips
}

func (b *Bank) play(clips []rl.Sound) {
	if len(clips) == 0 || !rl.IsAudioDeviceReady() {
		return
	}
	rl.PlaySound(clips[b.rng.Intn(len(clips))])
}

// PlayShoot plays a random shot clip.
func (b *Bank) PlayShoot() { b.play(b.shoot) }

// PlayExplosion plays a random explosion clip.
func (b *Bank) PlayExplosion() { b.play(b.explosion) }

// PlaySpawn plays a random spawn clip.
func (b *Bank) PlaySpawn() { b.play(b.spawn) }

// Unload frees every clip and closes the audio device.
func (b *Bank) Unload() {
	for _, set := range [][]rl.Sound{b.shoot, b.explosion, b.spawn} {
		for _, s := range set {
			rl.UnloadSound(s)
		}
	}
	rl.CloseAudioDevice()
}
