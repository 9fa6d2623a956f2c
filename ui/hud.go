package ui

import (
	"fmt"
	"math"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Score     int
	BestScore int
	Tick      int32
	Speed     int
	FPS       int32
	Paused    bool
	Autopilot bool

	GameOver          bool
	GameOverRemaining float64

	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the score line and the game-over banner.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(fmt.Sprintf("Score: %d", data.Score), 10, 10, 24, rl.White)
	rl.DrawText(fmt.Sprintf("Best: %d", data.BestScore), 10, 38, 16, rl.LightGray)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 58, 14, rl.Gray,
	)

	status := ""
	switch {
	case data.Paused:
		status = "PAUSED"
	case data.Autopilot:
		status = "AUTOPILOT"
	}
	if status != "" {
		rl.DrawText(status, 10, 76, 16, rl.Yellow)
	}

	if data.GameOver {
		msg := "GAME OVER"
		size := int32(48)
		w := rl.MeasureText(msg, size)
		rl.DrawText(msg, (data.ScreenWidth-w)/2, data.ScreenHeight/2-size, size, rl.Red)

		sub := fmt.Sprintf("Score %d   Best %d   Next run in %.0f", data.Score, data.BestScore, math.Ceil(data.GameOverRemaining))
		sw := rl.MeasureText(sub, 18)
		rl.DrawText(sub, (data.ScreenWidth-sw)/2, data.ScreenHeight/2+8, 18, rl.LightGray)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PanelActions reports what the user changed in the control panel this frame.
type PanelActions struct {
	TogglePause     bool
	ToggleAutopilot bool
	Speed           int
}

// PanelData is the live state shown in the control panel.
type PanelData struct {
	Paused    bool
	Autopilot bool
	Speed     int
	MinSpeed  int
	MaxSpeed  int

	Bullets, BulletLimit     int
	Enemies, EnemyLimit      int
	Particles, ParticleLimit int
	ParticlesDropped         int

	TickTime time.Duration
	Phases   map[string]time.Duration
	Order    []string
}

// ControlPanel is the toggleable side panel with raygui controls and pool usage.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlPanel creates a hidden panel at x, y.
func NewControlPanel(x, y, width int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (c *ControlPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlPanel) IsVisible() bool { return c.visible }

// SetPosition updates the panel position.
func (c *ControlPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel and returns the user's actions.
func (c *ControlPanel) Draw(data PanelData) PanelActions {
	actions := PanelActions{Speed: data.Speed}
	if !c.visible {
		return actions
	}

	r := c.renderer
	pad := r.Theme.Padding
	inner := c.width - pad*2
	height := int32(250) + int32(len(data.Order))*r.Theme.LineHeight
	r.DrawPanel(c.x, c.y, c.width, height)

	x := c.x + pad
	y := c.y + pad
	y = r.DrawSectionHeader(x, y, "Simulation")

	pauseText := "Pause"
	if data.Paused {
		pauseText = "Resume"
	}
	half := float32(inner-pad) / 2
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: half, Height: 24}, pauseText) {
		actions.TogglePause = true
	}
	autoText := "Autopilot: off"
	if data.Autopilot {
		autoText = "Autopilot: on"
	}
	if gui.Button(rl.Rectangle{X: float32(x) + half + float32(pad), Y: float32(y), Width: half, Height: 24}, autoText) {
		actions.ToggleAutopilot = true
	}
	y += 32

	speed := gui.SliderBar(
		rl.Rectangle{X: float32(x + 40), Y: float32(y), Width: float32(inner - 80), Height: 16},
		"Speed", fmt.Sprintf("%dx", data.Speed),
		float32(data.Speed), float32(data.MinSpeed), float32(data.MaxSpeed),
	)
	actions.Speed = int(math.Round(float64(speed)))
	y += 28

	y = r.DrawSectionHeader(x, y, "Pools")
	y = r.DrawUsageBar(x, y, "Bullets", data.Bullets, data.BulletLimit, inner)
	y = r.DrawUsageBar(x, y, "Enemies", data.Enemies, data.EnemyLimit, inner)
	y = r.DrawUsageBar(x, y, "Particles", data.Particles, data.ParticleLimit, inner)
	y = r.DrawLabelValue(x, y, "Dropped", fmt.Sprintf("%d", data.ParticlesDropped))
	y += 6

	y = r.DrawSectionHeader(x, y, "Step time")
	y = r.DrawLabelValue(x, y, "Total", data.TickTime.Round(time.Microsecond).String())
	for _, name := range data.Order {
		d := data.Phases[name]
		pct := 0.0
		if data.TickTime > 0 {
			pct = float64(d) / float64(data.TickTime) * 100
		}
		y = r.DrawLabelValue(x, y, name, fmt.Sprintf("%s  %4.1f%%", d.Round(time.Microsecond), pct))
	}

	return actions
}
