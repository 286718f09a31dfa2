// internal/state/lobby_state.go
package state

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"

	"go-tower-arena/internal/config"
	"go-tower-arena/internal/network"
	"go-tower-arena/internal/ui"
)

var _ State = (*LobbyState)(nil)

const maxChatInput = 120

// LobbyState waits on the server for the game to start: roster, chat and
// the start button.
type LobbyState struct {
	sm      *StateMachine
	env     *Env
	session *remoteSession

	start   *ui.Button
	leave   *ui.Button
	input   []rune
	message string
}

func NewLobbyState(sm *StateMachine, env *Env, s *remoteSession) *LobbyState {
	return &LobbyState{
		sm:      sm,
		env:     env,
		session: s,
		start:   ui.NewButton(ui.Rect{X: 560, Y: 60, W: 180, H: 34}, "Start game"),
		leave:   ui.NewButton(ui.Rect{X: 560, Y: 104, W: 180, H: 34}, "Leave"),
	}
}

func (l *LobbyState) Enter() {
	l.session.Chat.Add(fmt.Sprintf("* joined %s as %s (team %d)", l.session.info.Terrain, l.env.Name, l.session.info.Team))
}

func (l *LobbyState) Update(deltaTime float64) {
	if l.session.Lost() {
		l.session.Close()
		l.sm.SetState(NewMenuState(l.sm, l.env))
		return
	}
	if l.session.Started() {
		l.sm.SetState(NewGameState(l.sm, l.env, l.session))
		return
	}

	l.input = ebiten.AppendInputChars(l.input)
	if len(l.input) > maxChatInput {
		l.input = l.input[:maxChatInput]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(l.input) > 0 {
		l.input = l.input[:len(l.input)-1]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if msg := strings.TrimSpace(string(l.input)); msg != "" {
			if err := l.session.client.ChatAll(msg); err != nil {
				l.message = err.Error()
			}
		}
		l.input = l.input[:0]
	}

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	x, y := ebiten.CursorPosition()
	switch {
	case l.start.IsClicked(x, y):
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		res, err := l.session.client.StartGame(ctx)
		switch {
		case err != nil:
			l.message = err.Error()
		case res.Code != network.CodeOK:
			l.message = res.Error
		}
	case l.leave.IsClicked(x, y):
		l.session.Close()
		l.sm.SetState(NewMenuState(l.sm, l.env))
	}
}

func (l *LobbyState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	face := l.env.Face
	mx, my := ebiten.CursorPosition()

	text.Draw(screen, "Lobby: "+l.session.info.Terrain, face, 40, 40, config.TextLightColor)
	for i, r := range l.session.Roster() {
		line := fmt.Sprintf("slot %d  team %d  %s", r.Slot, r.Team, r.Name)
		if r.PlayerID == l.session.PlayerID() {
			line += "  (you)"
		}
		text.Draw(screen, line, face, 40, 70+i*16, config.TextLightColor)
	}
	l.start.Draw(screen, face, mx, my)
	l.leave.Draw(screen, face, mx, my)

	l.session.Chat.Draw(screen, face, 40, 260)
	text.Draw(screen, "> "+string(l.input)+"_", face, 40, 360, config.TextLightColor)
	if l.message != "" {
		text.Draw(screen, l.message, face, 40, 400, config.StarColor)
	}
}

func (l *LobbyState) Exit() {}
