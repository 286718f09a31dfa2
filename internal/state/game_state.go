// internal/state/game_state.go
package state

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"

	"go-tower-arena/internal/audio"
	"go-tower-arena/internal/config"
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/event"
	"go-tower-arena/internal/input"
	"go-tower-arena/internal/snapshot"
	"go-tower-arena/internal/ui"
	"go-tower-arena/pkg/render"
)

var _ State = (*GameState)(nil)

var (
	lobbyStateColor   = color.RGBA{120, 120, 120, 255}
	buildStateColor   = color.RGBA{50, 205, 50, 255}
	waveStateColor    = color.RGBA{220, 40, 40, 255}
	pausedStateColor  = color.RGBA{255, 215, 0, 255}
	offlineStateColor = color.RGBA{40, 40, 40, 255}
)

var hudTop = float32(config.ScreenHeight - config.HUDHeight)

// GameState — игровой экран, одинаковый для одиночной и сетевой игры.
type GameState struct {
	sm      *StateMachine
	env     *Env
	session session
	handler *input.Handler

	renderer    *render.GridRenderer
	towerBar    *ui.TowerBar
	infoPanel   *ui.InfoPanel
	health      *ui.PlayerHealthIndicator
	wave        *ui.WaveIndicator
	indicator   *ui.StateIndicator
	speedButton *ui.SpeedButton
	pauseButton *ui.PauseButton
	waveButton  *ui.Button

	snap snapshot.Snapshot
}

func NewGameState(sm *StateMachine, env *Env, s session) *GameState {
	terrain := defs.TerrainLibrary[s.Terrain()]
	// Карта известна обоим концам по имени, сетка строится локально.
	grid, err := terrain.Build()
	if err != nil {
		log.Printf("[state] terrain %s: %v", s.Terrain(), err)
	}
	g := &GameState{
		sm:          sm,
		env:         env,
		session:     s,
		handler:     input.NewHandler(s.Controller()),
		towerBar:    ui.NewTowerBar(4, hudTop+4),
		infoPanel:   ui.NewInfoPanel(env.Face, 0),
		health:      ui.NewPlayerHealthIndicator(config.ScreenWidth-190, 160, terrain.StartingLives),
		wave:        ui.NewWaveIndicator(10, hudTop+78),
		indicator:   ui.NewStateIndicator(config.ScreenWidth-15, hudTop+22, 8),
		speedButton: ui.NewSpeedButton(config.ScreenWidth-100, hudTop+80, 10),
		pauseButton: ui.NewPauseButton(config.ScreenWidth-40, hudTop+80, 12, config.ButtonColor, config.HealthBarColor),
		waveButton:  ui.NewButton(ui.Rect{X: 300, Y: hudTop + 62, W: 120, H: 30}, "Next wave"),
	}
	if grid != nil {
		g.renderer = render.NewGridRenderer(grid, config.CellSize, 0, 0, env.Face)
	}
	return g
}

func (g *GameState) Enter() {}

func (g *GameState) me() snapshot.Player {
	p, _ := g.snap.Player(g.handler.PlayerID())
	return p
}

func (g *GameState) Update(deltaTime float64) {
	if rs, ok := g.session.(*remoteSession); ok && rs.Lost() {
		g.session.Close()
		g.sm.SetState(NewMenuState(g.sm, g.env))
		return
	}

	g.snap = g.session.Controller().Snapshot()
	for _, e := range g.session.Events() {
		g.env.Audio.Play(audio.CueFor(e, g.handler.PlayerID()))
		if e.Type == event.TowerSold && e.Entity == g.handler.Selected {
			g.handler.Selected = 0
		}
	}
	g.refreshIndicator()

	switch g.snap.Phase {
	case "over":
		g.sm.SetState(NewGameOverState(g.sm, g.env, g.session, g.snap))
		return
	case "paused":
		// пауза могла прийти от другого игрока
		g.pauseButton.SetPaused(true)
		g.sm.SetState(NewPauseState(g.sm, g.env, g))
		return
	}
	g.pauseButton.SetPaused(false)

	// в сетевой игре новая башня появляется в снимке с задержкой
	if _, ok := g.snap.Tower(g.handler.Selected); ok {
		g.infoPanel.SetTarget(g.handler.Selected)
	} else {
		g.infoPanel.Hide()
	}
	g.infoPanel.Update(&g.snap, g.handler.PlayerID())
	g.waveButton.Enabled = !g.snap.WaveActive

	g.handleKeys()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.handleClick(ebiten.CursorPosition())
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.handler.Selected = 0
	}
}

func (g *GameState) refreshIndicator() {
	switch {
	case g.snap.Phase == "lobby":
		g.indicator.SetColor(lobbyStateColor)
	case g.snap.Phase == "paused":
		g.indicator.SetColor(pausedStateColor)
	case g.snap.Phase == "":
		g.indicator.SetColor(offlineStateColor)
	case g.snap.WaveActive:
		g.indicator.SetColor(waveStateColor)
	default:
		g.indicator.SetColor(buildStateColor)
	}
}

func (g *GameState) apply(in input.Intent) {
	if err := g.handler.Handle(in); err != nil {
		g.env.Audio.Play(audio.CueError)
	}
}

var slotKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8}

func (g *GameState) handleKeys() {
	for i, k := range slotKeys {
		if inpututil.IsKeyJustPressed(k) {
			if kind, ok := g.towerBar.KindForKey(i + 1); ok {
				g.apply(input.ChooseKindIntent{Kind: kind})
			}
		}
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyU):
		g.apply(input.UpgradeIntent{})
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.apply(input.SellIntent{})
	case inpututil.IsKeyJustPressed(ebiten.KeyN), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.apply(input.WaveIntent{})
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.pause()
	case inpututil.IsKeyJustPressed(ebiten.KeyF) && g.session.Solo():
		g.toggleSpeed()
	}
}

func (g *GameState) handleClick(x, y int) {
	switch {
	case g.infoPanel.Visible() && g.infoPanel.UpgradeButton.IsClicked(x, y):
		g.apply(input.UpgradeIntent{})
	case g.infoPanel.Visible() && g.infoPanel.SellButton.IsClicked(x, y):
		g.apply(input.SellIntent{})
	case g.waveButton.IsClicked(x, y):
		g.apply(input.WaveIntent{})
	case g.pauseButton.IsClicked(x, y):
		g.pause()
	case g.session.Solo() && g.speedButton.IsClicked(x, y):
		g.toggleSpeed()
	default:
		if kind, ok := g.towerBar.KindAt(x, y); ok {
			g.apply(input.ChooseKindIntent{Kind: kind})
			return
		}
		if g.renderer == nil {
			return
		}
		cell, ok := g.renderer.ScreenToCell(x, y)
		if !ok {
			return
		}
		if _, taken := g.snap.TowerAt(cell.X, cell.Y); taken {
			g.apply(input.SelectIntent{X: cell.X, Y: cell.Y})
			return
		}
		g.apply(input.PlaceTowerIntent{X: cell.X, Y: cell.Y})
	}
}

func (g *GameState) pause() {
	g.pauseButton.TogglePause()
	if err := g.handler.Handle(input.PauseIntent{Paused: true}); err != nil {
		g.pauseButton.SetPaused(false)
		g.env.Audio.Play(audio.CueError)
		return
	}
	g.sm.SetState(NewPauseState(g.sm, g.env, g))
}

func (g *GameState) toggleSpeed() {
	g.speedButton.ToggleState()
	if err := g.session.SetSpeed(g.speedButton.Speed()); err != nil {
		log.Printf("[state] speed: %v", err)
	}
}

func (g *GameState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	face := g.env.Face
	mx, my := ebiten.CursorPosition()
	me := g.me()

	if g.renderer != nil {
		g.renderer.Draw(screen, &g.snap, g.handler.Selected, g.handler.PlayerID())
	}
	g.towerBar.Draw(screen, face, g.handler.BuildKind, me.Gold)
	g.health.Draw(screen, face, g.snap.Players, g.handler.PlayerID())
	g.wave.Draw(screen, face, g.snap.Wave, g.snap.TotalWaves, g.snap.WaveName)
	g.indicator.Draw(screen)
	g.waveButton.Draw(screen, face, mx, my)
	g.pauseButton.Draw(screen)
	if g.session.Solo() {
		g.speedButton.Draw(screen)
		text.Draw(screen, g.speedButton.Label(), face, int(g.speedButton.X)-8, int(g.speedButton.Y)+26, config.TextLightColor)
	}
	text.Draw(screen, fmt.Sprintf("gold %d   lives %d   score %d   kills %d", me.Gold, me.Lives, me.Score, me.Kills),
		face, 10, int(hudTop)+58, config.TextLightColor)
	if g.handler.LastError != nil {
		text.Draw(screen, g.handler.LastError.Error(), face, 10, config.ScreenHeight-8, config.StarColor)
	}
	g.infoPanel.Draw(screen, &g.snap, mx, my)
	if rs, ok := g.session.(*remoteSession); ok {
		rs.Chat.Draw(screen, face, 8, 16)
	}
}

func (g *GameState) Exit() {}
