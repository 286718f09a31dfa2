// internal/state/game_over_state.go
package state

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-tower-arena/internal/audio"
	"go-tower-arena/internal/config"
	"go-tower-arena/internal/persistence"
	"go-tower-arena/internal/snapshot"
	"go-tower-arena/internal/ui"
)

var _ State = (*GameOverState)(nil)

// GameOverState shows the outcome and the score table of the terrain.
// Solo scores are saved locally, network scores are kept by the server.
type GameOverState struct {
	sm      *StateMachine
	env     *Env
	session session
	summary Summary
	saved   bool

	scores chan []persistence.Score
	table  []persistence.Score
	menu   *ui.Button
}

func NewGameOverState(sm *StateMachine, env *Env, s session, final snapshot.Snapshot) *GameOverState {
	me := s.Controller().PlayerID()
	return &GameOverState{
		sm:      sm,
		env:     env,
		session: s,
		summary: Summarize(final, me),
		scores:  make(chan []persistence.Score, 1),
		menu:    ui.NewButton(ui.Rect{X: config.ScreenWidth/2 - 90, Y: config.ScreenHeight - 70, W: 180, H: 34}, "Menu"),
	}
}

func (s *GameOverState) Enter() {
	if s.summary.Won {
		s.env.Audio.Play(audio.CueVictory)
	} else {
		s.env.Audio.Play(audio.CueDefeat)
	}

	if s.session.Solo() {
		kept, err := s.env.Store.SaveScore(s.summary.Terrain, persistence.Score{
			Player: s.env.Name,
			Value:  s.summary.Score,
			Stars:  s.summary.Stars,
		})
		if err != nil {
			log.Printf("[state] save score: %v", err)
		}
		s.saved = kept
		s.session.Close()
		table, err := s.env.Store.LoadScores(s.summary.Terrain)
		if err != nil {
			log.Printf("[state] load scores: %v", err)
		}
		s.scores <- table
		return
	}

	rs := s.session.(*remoteSession)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		table, err := rs.client.Scores(ctx, s.summary.Terrain)
		if err != nil {
			log.Printf("[state] scores: %v", err)
		}
		s.scores <- table
	}()
}

func (s *GameOverState) Update(deltaTime float64) {
	select {
	case t := <-s.scores:
		s.table = t
	default:
	}
	leave := inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && s.menu.IsClicked(ebiten.CursorPosition()) {
		leave = true
	}
	if leave {
		s.sm.SetState(NewMenuState(s.sm, s.env))
	}
}

func (s *GameOverState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	face := s.env.Face
	cx := float32(config.ScreenWidth / 2)

	ui.DrawCentered(screen, face, s.summary.Title(), cx, 40, config.TextLightColor)
	ui.DrawCentered(screen, face, fmt.Sprintf("%s   score %d   kills %d   lives %d",
		s.summary.Terrain, s.summary.Score, s.summary.Kills, s.summary.Lives), cx, 64, config.TextLightColor)
	for i := 0; i < 3; i++ {
		x := cx - 30 + float32(i*30)
		if i < s.summary.Stars {
			vector.DrawFilledCircle(screen, x, 94, 9, config.StarColor, true)
		}
		vector.StrokeCircle(screen, x, 94, 9, 1.5, config.StarColor, true)
	}
	if s.saved {
		ui.DrawCentered(screen, face, "new entry in the score table", cx, 120, config.StarColor)
	}

	for i, sc := range s.table {
		line := fmt.Sprintf("%2d. %-16s %6d  %s  %s", i+1, sc.Player, sc.Value, stars(sc.Stars), sc.Date.Local().Format("2006-01-02"))
		text.Draw(screen, line, face, int(cx)-160, 150+i*16, config.TextLightColor)
	}
	mx, my := ebiten.CursorPosition()
	s.menu.Draw(screen, face, mx, my)
}

// Exit closes a network session. A solo one is already closed by Enter.
func (s *GameOverState) Exit() {
	if !s.session.Solo() {
		s.session.Close()
	}
}

func stars(n int) string {
	out := []byte("---")
	for i := 0; i < n && i < len(out); i++ {
		out[i] = '*'
	}
	return string(out)
}
