package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gravwell/assets"
	"github.com/pthm-cable/gravwell/audio"
	"github.com/pthm-cable/gravwell/camera"
	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/config"
	"github.com/pthm-cable/gravwell/game"
	"github.com/pthm-cable/gravwell/input"
	"github.com/pthm-cable/gravwell/renderer"
	"github.com/pthm-cable/gravwell/telemetry"
	"github.com/pthm-cable/gravwell/ui"
)

const controlsLegend = "WASD/Arrows: move | Mouse: aim & fire | Space: pause | P: autopilot | +/-: speed | Tab: panel"

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, driven by the autopilot")
	autopilot := flag.Bool("autopilot", false, "Let the autopilot play in graphical mode")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
		Autopilot:      *autopilot,
		Logger:         logger,
	}

	if *headless {
		if err := runHeadless(cfg, opts, *maxTicks); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}
	if err := runWindowed(cfg, opts, *maxTicks); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless simulates without raylib. Sprite sizes come from image
// headers, or from config when the files are absent.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks int) error {
	cache := assets.NewCache(assets.FileLoader(cfg.Assets.Root, game.FallbackSizes(cfg.Assets.Sprites)))
	sprites, err := game.LoadSprites(cache, cfg.Assets.Sprites)
	if err != nil {
		return err
	}
	opts.Sprites = &sprites

	g, err := game.NewGameWithOptions(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"stats_window", opts.StatsWindowSec,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for {
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached",
				"tick", g.Tick(),
				"best", g.World().Score().Best(),
			)
			return nil
		}
	}
}

func runWindowed(cfg *config.Config, opts game.Options, maxTicks int) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Gravwell")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(rl.KeyNull)

	cam := camera.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height), cfg.Field.Width, cfg.Field.Height)

	sprites := renderer.NewSpriteRenderer(cfg.Assets.Root, game.FallbackSizes(cfg.Assets.Sprites), cam)
	defer sprites.Unload()
	cache := assets.NewCache(sprites.Loader())
	handles, err := game.LoadSprites(cache, cfg.Assets.Sprites)
	if err != nil {
		return err
	}
	opts.Sprites = &handles

	sounds := audio.Load(cfg.Assets.Root, cfg.Assets.Sounds, rand.New(rand.NewSource(opts.Seed+1)))
	defer sounds.Unload()
	opts.Sounds = sounds

	g, err := game.NewGameWithOptions(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	background := renderer.NewBackgroundRenderer(cfg.Field.Width, cfg.Field.Height, 80)
	reader := input.NewReader()
	hud := ui.NewHUD()
	panel := ui.NewControlPanel(int32(cfg.Screen.Width)-290, 10, 280)

	slog.Info("starting", "seed", opts.Seed, "field_w", cfg.Field.Width, "field_h", cfg.Field.Height)

	for !rl.WindowShouldClose() {
		handleKeys(g, panel)

		if rl.IsWindowResized() {
			w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
			cam.Resize(float64(w), float64(h))
			panel.SetPosition(int32(w)-290, 10)
		}

		frameTime := float64(rl.GetFrameTime())
		player := g.World().Player()
		g.Advance(frameTime, reader.Read(cam, player.Position))
		cam.Follow(player.Position, frameTime)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		background.Draw(cam)
		g.Draw(sprites)
		hud.Draw(hudData(g))
		actions := panel.Draw(panelData(g))
		hud.DrawControls(int32(rl.GetScreenHeight()), controlsLegend)
		rl.EndDrawing()

		if actions.TogglePause {
			g.TogglePause()
		}
		if actions.ToggleAutopilot {
			g.SetAutopilot(!g.AutopilotEnabled())
		}
		g.SetSpeed(actions.Speed)

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
	return nil
}

func handleKeys(g *game.Game, panel *ui.ControlPanel) {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.SetAutopilot(!g.AutopilotEnabled())
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.SetSpeed(g.Speed() + 1)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.SetSpeed(g.Speed() - 1)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		panel.Toggle()
	}
}

func hudData(g *game.Game) ui.HUDData {
	w := g.World()
	return ui.HUDData{
		Score:             w.Score().Current(),
		BestScore:         w.Score().Best(),
		Tick:              g.Tick(),
		Speed:             g.Speed(),
		FPS:               rl.GetFPS(),
		Paused:            g.Paused(),
		Autopilot:         g.AutopilotEnabled(),
		GameOver:          w.GameOver(),
		GameOverRemaining: w.GameOverRemaining(),
		ScreenWidth:       int32(rl.GetScreenWidth()),
		ScreenHeight:      int32(rl.GetScreenHeight()),
	}
}

func panelData(g *game.Game) ui.PanelData {
	w := g.World()
	cfg := g.Config()
	perf := g.Perf().Stats()
	return ui.PanelData{
		Paused:    g.Paused(),
		Autopilot: g.AutopilotEnabled(),
		Speed:     g.Speed(),
		MinSpeed:  game.MinSpeed,
		MaxSpeed:  game.MaxSpeed,

		Bullets:     w.Count(components.KindBullet),
		BulletLimit: cfg.Bullet.Capacity,
		Enemies: w.Count(components.KindSeeker) +
			w.Count(components.KindWanderer) +
			w.Count(components.KindBlackHole),
		EnemyLimit:       cfg.Seeker.Capacity + cfg.Wanderer.Capacity + cfg.BlackHole.Capacity,
		Particles:        w.Particles().Count(),
		ParticleLimit:    cfg.Particles.Capacity,
		ParticlesDropped: w.Particles().Dropped(),

		TickTime: perf.AvgTickDuration,
		Phases:   perf.PhaseAvg,
		Order:    telemetry.Phases,
	}
}
