package game

import (
	"log/slog"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/gravwell/assets"
	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/config"
	"github.com/pthm-cable/gravwell/pool"
	"github.com/pthm-cable/gravwell/systems"
	"github.com/pthm-cable/gravwell/telemetry"
)

// fireEpsilon absorbs rounding when dt sums to exactly the fire interval
// or the game-over duration.
const fireEpsilon = 1e-9

// kindPool is one pooled entity kind and the rule that moves it.
type kindPool struct {
	kind   components.Kind
	pool   *systems.EntityPool
	motion systems.Motion
	tex    assets.Texture
	speed  float64
}

var (
	updateOrder = [...]components.Kind{components.KindBullet, components.KindSeeker, components.KindWanderer, components.KindBlackHole}
	renderOrder = [...]components.Kind{components.KindSeeker, components.KindWanderer, components.KindBlackHole, components.KindBullet}
)

// Deps are the collaborators a World is built with. Zero values get defaults.
type Deps struct {
	Rand      systems.Rand
	Sounds    Sounds
	Observer  Observer
	Logger    *slog.Logger
	Perf      *telemetry.PerfCollector
	Particles *systems.ParticleSystem
	Sprites   *Sprites // nil = handles built from configured sizes
}

// World owns every game object and advances them one fixed tick at a time.
type World struct {
	cfg    *config.Config
	bounds systems.Bounds
	rng    systems.Rand
	sounds Sounds
	obs    Observer
	logger *slog.Logger
	perf   *telemetry.PerfCollector

	sprites   Sprites
	particles *systems.ParticleSystem

	player       components.Entity
	playerMotion systems.PlayerMotion

	kinds [components.NumKinds]*kindPool

	spawner *systems.Spawner
	field   systems.AttractionField
	score   Score

	fireTimer     float64
	gameOverTimer float64
	tick          int32

	// Reused per tick
	env        systems.Env
	targets    []systems.Target
	threats    []systems.Target
	attractors []systems.Attractor
	distances  []float64
}

// NewWorld creates a world from configuration.
func NewWorld(cfg *config.Config, deps Deps) *World {
	w := &World{
		cfg:    cfg,
		bounds: systems.Bounds{Width: cfg.Field.Width, Height: cfg.Field.Height},
		rng:    deps.Rand,
		sounds: deps.Sounds,
		obs:    deps.Observer,
		logger: deps.Logger,
		perf:   deps.Perf,
		score:  NewScore(cfg.Scoring),
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(1))
	}
	if w.sounds == nil {
		w.sounds = NopSounds{}
	}
	if w.obs == nil {
		w.obs = nopObserver{}
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	if deps.Sprites != nil {
		w.sprites = *deps.Sprites
	} else {
		w.sprites = sizedSprites(cfg.Assets.Sprites)
	}

	w.particles = deps.Particles
	if w.particles == nil {
		w.particles = systems.NewParticleSystem(cfg.Particles.Capacity, w.bounds, ParticleTuning(cfg))
	}

	w.playerMotion = systems.PlayerMotion{LerpRate: cfg.Player.LerpRate}
	w.resetPlayer()

	w.kinds[components.KindBullet] = &kindPool{
		kind:   components.KindBullet,
		pool:   pool.New[components.Entity](cfg.Bullet.Capacity, cfg.Bullet.Capacity),
		motion: systems.BulletMotion{},
		tex:    w.sprites.Bullet,
		speed:  cfg.Bullet.MoveSpeed,
	}
	w.kinds[components.KindSeeker] = &kindPool{
		kind:   components.KindSeeker,
		pool:   pool.New[components.Entity](cfg.Seeker.Capacity, cfg.Seeker.Capacity),
		motion: systems.SeekerMotion{TurnRate: cfg.Seeker.TurnRate},
		tex:    w.sprites.Seeker,
		speed:  cfg.Seeker.MoveSpeed,
	}
	w.kinds[components.KindWanderer] = &kindPool{
		kind:   components.KindWanderer,
		pool:   pool.New[components.Entity](cfg.Wanderer.Capacity, cfg.Wanderer.Capacity),
		motion: systems.WandererMotion{SubSteps: cfg.Wanderer.SubSteps, Jitter: cfg.Wanderer.Jitter},
		tex:    w.sprites.Wanderer,
		speed:  cfg.Wanderer.MoveSpeed,
	}
	w.kinds[components.KindBlackHole] = &kindPool{
		kind:   components.KindBlackHole,
		pool:   pool.New[components.Entity](cfg.BlackHole.Capacity, cfg.BlackHole.Capacity),
		motion: systems.BlackHoleMotion{Spin: cfg.BlackHole.RotationSpeed},
		tex:    w.sprites.BlackHole,
	}

	w.targets = []systems.Target{
		{Kind: components.KindSeeker, Pool: w.kinds[components.KindSeeker].pool},
		{Kind: components.KindWanderer, Pool: w.kinds[components.KindWanderer].pool},
		{Kind: components.KindBlackHole, Pool: w.kinds[components.KindBlackHole].pool},
	}
	w.threats = w.targets[:2]

	w.spawner = systems.NewSpawner(cfg.Spawn.Interval,
		systems.SpawnRule{Kind: components.KindSeeker, Chance: cfg.Spawn.SeekerChance},
		systems.SpawnRule{Kind: components.KindWanderer, Chance: cfg.Spawn.WandererChance},
		systems.SpawnRule{Kind: components.KindBlackHole, Chance: cfg.Spawn.BlackHoleChance},
	)
	w.field = systems.NewAttractionField(
		cfg.BlackHole.InfluenceScale,
		cfg.BlackHole.MaxBlend,
		cfg.BlackHole.InfluenceWidthFraction,
		cfg.Field.Width,
	)

	return w
}

// ParticleTuning extracts particle motion constants from configuration.
func ParticleTuning(cfg *config.Config) systems.ParticleTuning {
	return systems.ParticleTuning{
		Damping:         cfg.Particles.Damping,
		PullGain:        cfg.Particles.PullGain,
		SwirlGain:       cfg.Particles.SwirlGain,
		SwirlRangeScale: cfg.Particles.SwirlRangeScale,
	}
}

func (w *World) resetPlayer() {
	w.player = components.Entity{
		Scale:     r2.Vec{X: 1, Y: 1},
		Color:     components.White,
		MoveSpeed: w.cfg.Player.MoveSpeed,
		Radius:    components.RadiusFromTexture(w.sprites.Player),
		Texture:   w.sprites.Player,
	}
}

func (w *World) phase(name string) {
	if w.perf != nil {
		w.perf.StartPhase(name)
	}
}

// Update advances the world by one fixed tick.
// While the game-over timer runs, only the timer counts down.
func (w *World) Update(dt float64, in Input) {
	w.tick++

	if w.gameOverTimer > 0 {
		w.gameOverTimer -= dt
		if w.gameOverTimer < fireEpsilon {
			w.gameOverTimer = 0
			w.logger.Info("new run", "tick", w.tick, "best", w.score.Best())
		}
		return
	}

	w.phase(telemetry.PhaseMotion)
	w.env = systems.Env{DT: dt, Bounds: w.bounds, Move: in.Move, Rng: w.rng}
	w.playerMotion.Step(&w.player, &w.env)
	w.env.Player = w.player.Position

	w.phase(telemetry.PhaseFire)
	w.updateFire(dt, in)

	w.phase(telemetry.PhaseSpawn)
	w.updateSpawns(dt)

	w.phase(telemetry.PhaseMotion)
	for _, kind := range updateOrder {
		kp := w.kinds[kind]
		kp.pool.ForEachActive(func(i int, e *components.Entity) {
			if !kp.motion.Step(e, &w.env) {
				return
			}
			if kp.kind == components.KindBullet {
				w.DestroyBullet(i, true)
			} else {
				w.destroyEnemy(kp.kind, i)
			}
		})
	}

	w.phase(telemetry.PhaseAttraction)
	if w.applyGravity() {
		return
	}

	w.phase(telemetry.PhaseCollision)
	w.resolveCollisions()
}

// updateFire accumulates the fire timer while fire is held and releases a
// volley each time it reaches the interval. Releasing fire zeroes the timer,
// so a fresh press waits one full interval.
func (w *World) updateFire(dt float64, in Input) {
	if !in.Fire {
		w.fireTimer = 0
		return
	}
	w.fireTimer += dt
	if w.fireTimer+fireEpsilon < w.cfg.Fire.Interval {
		return
	}
	w.fireTimer = 0
	w.fireVolley(in.Aim)
}

// fireVolley spawns two bullets split either side of aim.
func (w *World) fireVolley(aim r2.Vec) {
	dir := systems.SafeNormalize(aim)
	if dir == (r2.Vec{}) {
		dir = systems.FromPolar(w.player.Rotation, 1)
	}
	base := systems.Angle(dir) + systems.RandRange(w.rng, -w.cfg.Fire.Spread, w.cfg.Fire.Spread)*math.Pi
	split := w.cfg.Fire.SplitOffset * math.Pi
	muzzle := w.cfg.Fire.MuzzleOffset * w.player.Radius

	fired := false
	for _, a := range [2]float64{base - split, base + split} {
		pos := r2.Add(w.player.Position, systems.FromPolar(a, muzzle))
		if _, err := w.SpawnBullet(pos, systems.FromPolar(a, 1)); err != nil {
			continue
		}
		w.obs.Record(telemetry.NewShotEvent(w.tick))
		fired = true
	}
	if fired {
		w.sounds.PlayShoot()
	}
}

func (w *World) updateSpawns(dt float64) {
	for _, kind := range w.spawner.Update(dt, w.rng) {
		pos, ok := systems.SamplePosition(w.rng, w.bounds, w.cfg.Spawn.Margin,
			w.player.Position, w.cfg.Derived.MinDistanceSq, w.cfg.Spawn.MaxAttempts)
		if !ok {
			w.logger.Debug("spawn position fallback", "kind", kind.String(), "attempts", w.cfg.Spawn.MaxAttempts)
		}
		switch kind {
		case components.KindSeeker:
			w.SpawnSeeker(pos)
		case components.KindWanderer:
			w.SpawnWanderer(pos)
		case components.KindBlackHole:
			w.SpawnBlackHole(pos)
		}
	}
}

// applyGravity runs every faded-in black hole against the player, seekers
// and wanderers. It returns true if the player was consumed.
func (w *World) applyGravity() bool {
	consumed := false
	w.kinds[components.KindBlackHole].pool.ForEachActive(func(_ int, h *components.Entity) {
		if consumed || h.FadingIn() {
			return
		}
		hole := *h
		if w.field.UpdateBlackhole(hole, &w.player) {
			consumed = true
			return
		}
		for _, kind := range [...]components.Kind{components.KindSeeker, components.KindWanderer} {
			w.kinds[kind].pool.ForEachActive(func(i int, e *components.Entity) {
				if e.FadingIn() {
					return
				}
				if w.field.UpdateBlackhole(hole, e) {
					w.destroyEnemy(kind, i)
					w.obs.Record(telemetry.NewAbsorbEvent(w.tick, kind))
				}
			})
		}
	})

	if consumed {
		w.TriggerGameOver(components.KindBlackHole)
	}
	return consumed
}

// resolveCollisions runs bullets against enemies, then enemies against the player.
func (w *World) resolveCollisions() {
	systems.ResolveBullets(w.kinds[components.KindBullet].pool, w.targets, func(bullet int, kind components.Kind, target int) {
		w.DestroyBullet(bullet, false)
		w.destroyEnemy(kind, target)
		w.score.Kill(kind)
		w.obs.Record(telemetry.NewKillEvent(w.tick, kind))
	})

	if kind, _, hit := systems.FindPlayerHit(&w.player, w.threats); hit {
		w.TriggerGameOver(kind)
	}
}

// acquire takes a slot of kind and initializes it. Enemies start transparent
// and fade in; bullets start opaque.
func (w *World) acquire(kind components.Kind, pos, vel r2.Vec, alpha float64) (int, error) {
	kp := w.kinds[kind]
	i, err := kp.pool.Acquire()
	if err != nil {
		w.obs.Record(telemetry.NewSpawnSkippedEvent(w.tick, kind))
		w.logger.Debug("spawn skipped", "kind", kind.String(), "error", err)
		return -1, err
	}

	e := kp.pool.Get(i)
	*e = components.Entity{
		Position:  pos,
		Velocity:  vel,
		Scale:     r2.Vec{X: 1, Y: 1},
		Color:     components.White.WithAlpha(alpha),
		MoveSpeed: kp.speed,
		Radius:    components.RadiusFromTexture(kp.tex),
		Texture:   kp.tex,
	}
	if vel != (r2.Vec{}) {
		e.Rotation = systems.Angle(vel)
	}
	return i, nil
}

func (w *World) spawnEnemy(kind components.Kind, pos, vel r2.Vec) (int, error) {
	i, err := w.acquire(kind, pos, vel, 0)
	if err != nil {
		return -1, err
	}
	w.sounds.PlaySpawn()
	w.obs.Record(telemetry.NewSpawnEvent(w.tick, kind))
	return i, nil
}

// SpawnBullet fires a bullet from pos along dir.
func (w *World) SpawnBullet(pos, dir r2.Vec) (int, error) {
	return w.acquire(components.KindBullet, pos, systems.SafeNormalize(dir), 1)
}

// SpawnSeeker adds a seeker at pos.
func (w *World) SpawnSeeker(pos r2.Vec) (int, error) {
	return w.spawnEnemy(components.KindSeeker, pos, r2.Vec{})
}

// SpawnWanderer adds a wanderer at pos with a random heading.
func (w *World) SpawnWanderer(pos r2.Vec) (int, error) {
	heading := w.rng.Float64() * 2 * math.Pi
	return w.spawnEnemy(components.KindWanderer, pos, systems.FromPolar(heading, 1))
}

// SpawnBlackHole adds a black hole at pos.
func (w *World) SpawnBlackHole(pos r2.Vec) (int, error) {
	return w.spawnEnemy(components.KindBlackHole, pos, r2.Vec{})
}

// DestroyBullet removes a bullet, optionally with a small spark burst.
func (w *World) DestroyBullet(i int, burst bool) bool {
	kp := w.kinds[components.KindBullet]
	e := kp.pool.Get(i)
	if e == nil {
		return false
	}
	pos := e.Position
	kp.pool.Release(i)
	if burst {
		w.spray(pos, w.cfg.Bullet.ExitParticles, w.cfg.Particles.ExplosionSpeed/2, w.cfg.Particles.ExplosionLife/2)
	}
	return true
}

// DestroySeeker removes a seeker with an explosion.
func (w *World) DestroySeeker(i int) bool {
	return w.destroyEnemy(components.KindSeeker, i)
}

// DestroyWanderer removes a wanderer with an explosion.
func (w *World) DestroyWanderer(i int) bool {
	return w.destroyEnemy(components.KindWanderer, i)
}

// DestroyBlackHole removes a black hole with an explosion.
func (w *World) DestroyBlackHole(i int) bool {
	return w.destroyEnemy(components.KindBlackHole, i)
}

func (w *World) destroyEnemy(kind components.Kind, i int) bool {
	kp := w.kinds[kind]
	e := kp.pool.Get(i)
	if e == nil {
		return false
	}
	pos := e.Position
	kp.pool.Release(i)
	w.spray(pos, w.cfg.Particles.ExplosionCount, w.cfg.Particles.ExplosionSpeed, w.cfg.Particles.ExplosionLife)
	w.sounds.PlayExplosion()
	return true
}

// spray emits count particles from pos in random directions, tinted along a
// random pair of hues. Stops early when the particle pool is full.
func (w *World) spray(pos r2.Vec, count int, speedMax, life float64) {
	tint := systems.HuePair(w.rng, 0.5, 1)
	scale := r2.Vec{X: 1, Y: w.cfg.Particles.ExplosionScale}
	for n := 0; n < count; n++ {
		speed := speedMax * (1 - 1/systems.RandRange(w.rng, 1, 10))
		angle := w.rng.Float64() * 2 * math.Pi
		vel := systems.FromPolar(angle, speed)
		err := w.particles.SpawnParticle(w.sprites.Particle, pos, tint(w.rng.Float64()), life, scale, angle, vel)
		if err != nil {
			return
		}
	}
}

// TriggerGameOver ends the run: every pooled object is cleared, a large
// burst marks the player's last position, and the player returns to the
// origin. Updates are suspended for the game-over duration.
func (w *World) TriggerGameOver(cause components.Kind) {
	last := w.player.Position

	for _, kp := range w.kinds {
		if kp != nil {
			kp.pool.Reset()
		}
	}
	w.gameOverTimer = w.cfg.GameOver.Duration
	w.fireTimer = 0
	w.spawner.Reset()

	w.spray(last, w.cfg.GameOver.BurstCount,
		w.cfg.GameOver.BurstSpeedMax*w.cfg.Derived.MaxDimension, w.cfg.GameOver.BurstLife)
	w.sounds.PlayExplosion()
	w.resetPlayer()

	w.obs.Record(telemetry.NewPlayerDeathEvent(w.tick, cause))
	w.logger.Info("game over",
		"tick", w.tick,
		"cause", cause.String(),
		"score", w.score.Current(),
		"best", w.score.Best(),
	)
	w.score.Reset()
}

// Render appends draw commands in order: player, seekers, wanderers,
// black holes, bullets. Nothing is drawn during game over.
func (w *World) Render(dst []components.DrawCommand) []components.DrawCommand {
	if w.gameOverTimer > 0 {
		return dst
	}
	dst = append(dst, w.player.Draw(components.BlendAlpha))
	for _, kind := range renderOrder {
		w.kinds[kind].pool.ForEachActive(func(_ int, e *components.Entity) {
			dst = append(dst, e.Draw(components.BlendAlpha))
		})
	}
	return dst
}

// Attractors returns every active black hole as a particle attractor,
// including holes still fading in. The slice is reused by the next call.
func (w *World) Attractors() []systems.Attractor {
	w.attractors = w.attractors[:0]
	w.kinds[components.KindBlackHole].pool.ForEachActive(func(_ int, h *components.Entity) {
		w.attractors = append(w.attractors, systems.Attractor{Position: h.Position, Radius: h.Radius})
	})
	return w.attractors
}

// Census samples counts and enemy distances for telemetry.
func (w *World) Census() telemetry.Census {
	w.distances = w.distances[:0]
	for _, tgt := range w.targets {
		tgt.Pool.ForEachActive(func(_ int, e *components.Entity) {
			w.distances = append(w.distances, r2.Norm(r2.Sub(e.Position, w.player.Position)))
		})
	}
	return telemetry.Census{
		Seekers:         w.Count(components.KindSeeker),
		Wanderers:       w.Count(components.KindWanderer),
		BlackHoles:      w.Count(components.KindBlackHole),
		Bullets:         w.Count(components.KindBullet),
		Particles:       w.particles.Count(),
		Score:           w.score.Current(),
		BestScore:       w.score.Best(),
		ThreatDistances: w.distances,
	}
}

// Each calls fn for every live entity of kind.
func (w *World) Each(kind components.Kind, fn func(i int, e *components.Entity)) {
	if kind == components.KindPlayer {
		fn(0, &w.player)
		return
	}
	if kp := w.kinds[kind]; kp != nil {
		kp.pool.ForEachActive(fn)
	}
}

// Get returns the entity of kind in slot i, or nil if the slot is free.
func (w *World) Get(kind components.Kind, i int) *components.Entity {
	if kp := w.kinds[kind]; kp != nil {
		return kp.pool.Get(i)
	}
	return nil
}

// Count returns the number of live entities of kind.
func (w *World) Count(kind components.Kind) int {
	if kind == components.KindPlayer {
		return 1
	}
	if kp := w.kinds[kind]; kp != nil {
		return kp.pool.Count()
	}
	return 0
}

// Player returns the player entity.
func (w *World) Player() *components.Entity { return &w.player }

// Particles returns the particle system explosions are emitted into.
func (w *World) Particles() *systems.ParticleSystem { return w.particles }

// Bounds returns the play-field.
func (w *World) Bounds() systems.Bounds { return w.bounds }

// Score returns the run score.
func (w *World) Score() *Score { return &w.score }

// GameOver reports whether the game-over pause is running.
func (w *World) GameOver() bool { return w.gameOverTimer > 0 }

// GameOverRemaining returns the seconds left in the game-over pause.
func (w *World) GameOverRemaining() float64 { return w.gameOverTimer }

// FireTimer returns the time accumulated toward the next volley.
func (w *World) FireTimer() float64 { return w.fireTimer }

// Tick returns the number of updates run.
func (w *World) Tick() int32 { return w.tick }
