// internal/state/menu_state.go
package state

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"go-tower-arena/internal/audio"
	"go-tower-arena/internal/config"
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/ui"
)

var _ State = (*MenuState)(nil)

type dialResult struct {
	session *remoteSession
	err     error
}

// MenuState — выбор карты для одиночной игры и вход на сервер.
type MenuState struct {
	sm  *StateMachine
	env *Env

	terrains []*ui.TerrainButton
	join     *ui.Button
	status   string
	dialing  chan dialResult
}

func NewMenuState(sm *StateMachine, env *Env) *MenuState {
	return &MenuState{sm: sm, env: env}
}

// Enter reloads the score table, a finished game may have unlocked a terrain.
func (m *MenuState) Enter() {
	unlocked := map[string]bool{}
	stars := 0
	if names, err := m.env.Store.UnlockedTerrains(); err == nil {
		for _, n := range names {
			unlocked[n] = true
		}
		stars, _ = m.env.Store.TotalStars()
	} else {
		log.Printf("[menu] scores unavailable: %v", err)
		unlocked[defs.TerrainNames()[0]] = true
	}

	m.terrains = m.terrains[:0]
	for i, name := range defs.TerrainNames() {
		best, bestStars := 0, 0
		if scores, err := m.env.Store.LoadScores(name); err == nil && len(scores) > 0 {
			best = scores[0].Value
			for _, sc := range scores {
				bestStars = max(bestStars, sc.Stars)
			}
		}
		rect := ui.Rect{X: 220, Y: float32(90 + i*48), W: 200, H: 34}
		def := defs.TerrainLibrary[name]
		m.terrains = append(m.terrains, ui.NewTerrainButton(rect, name, bestStars, def.StarsToUnlock, best, unlocked[name]))
	}
	if m.env.ServerAddr != "" {
		m.join = ui.NewButton(ui.Rect{X: 220, Y: float32(110 + len(m.terrains)*48), W: 200, H: 34}, "Join "+m.env.ServerAddr)
	}
	m.status = fmt.Sprintf("%d stars collected", stars)
}

func (m *MenuState) Update(deltaTime float64) {
	if m.dialing != nil {
		select {
		case res := <-m.dialing:
			m.dialing = nil
			if res.err != nil {
				m.status = "connection failed: " + res.err.Error()
				m.env.Audio.Play(audio.CueError)
				return
			}
			m.sm.SetState(NewLobbyState(m.sm, m.env, res.session))
		default:
		}
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		m.sm.SetState(nil) // окно закрывается
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	x, y := ebiten.CursorPosition()
	for _, b := range m.terrains {
		if !b.IsClicked(x, y) {
			continue
		}
		s, err := newSoloSession(b.Terrain, m.env.Name)
		if err != nil {
			m.status = err.Error()
			return
		}
		m.sm.SetState(NewGameState(m.sm, m.env, s))
		return
	}
	if m.join != nil && m.join.IsClicked(x, y) {
		m.status = "connecting..."
		m.dialing = make(chan dialResult, 1)
		go func(ch chan<- dialResult) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s, err := dialSession(ctx, m.env)
			ch <- dialResult{session: s, err: err}
		}(m.dialing)
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	mx, my := ebiten.CursorPosition()
	ui.DrawCentered(screen, m.env.Face, "TOWER ARENA", config.ScreenWidth/2, 40, config.TextLightColor)
	ui.DrawCentered(screen, m.env.Face, "player: "+m.env.Name, config.ScreenWidth/2, 60, config.TextLightColor)
	for _, b := range m.terrains {
		b.Draw(screen, m.env.Face, mx, my)
	}
	if m.join != nil {
		m.join.Enabled = m.dialing == nil
		m.join.Draw(screen, m.env.Face, mx, my)
	}
	ui.DrawCentered(screen, m.env.Face, m.status, config.ScreenWidth/2, config.ScreenHeight-20, config.TextLightColor)
	ui.DrawCentered(screen, m.env.Face, "Esc quits", config.ScreenWidth/2, config.ScreenHeight-6, config.TextLightColor)
}

func (m *MenuState) Exit() {}
