// internal/state/pause_state.go
package state

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-tower-arena/internal/config"
	"go-tower-arena/internal/input"
	"go-tower-arena/internal/ui"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

var overlayColor = color.RGBA{0, 0, 0, 128}

// PauseState draws the frozen game under a dim overlay. Any player of a
// network game may resume, so the server phase is watched as well.
type PauseState struct {
	sm   *StateMachine
	env  *Env
	game *GameState
}

func NewPauseState(sm *StateMachine, env *Env, game *GameState) *PauseState {
	return &PauseState{sm: sm, env: env, game: game}
}

func (s *PauseState) Enter() {}

func (s *PauseState) Update(deltaTime float64) {
	snap := s.game.session.Controller().Snapshot()
	if snap.Phase != "paused" {
		s.sm.SetState(s.game)
		return
	}

	resume := inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if s.game.pauseButton.IsClicked(ebiten.CursorPosition()) {
			resume = true
		}
	}
	if !resume {
		return
	}
	s.game.pauseButton.TogglePause()
	if err := s.game.handler.Handle(input.PauseIntent{Paused: false}); err != nil {
		return
	}
	s.sm.SetState(s.game)
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.game.Draw(screen)
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, overlayColor, false)
	ui.DrawCentered(screen, s.env.Face, "PAUSED", config.ScreenWidth/2, config.ScreenHeight/2-10, config.TextLightColor)
	ui.DrawCentered(screen, s.env.Face, "P or Esc to resume", config.ScreenWidth/2, config.ScreenHeight/2+10, config.TextLightColor)
	s.game.pauseButton.Draw(screen)
}

func (s *PauseState) Exit() {}
