package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"go-tower-arena/internal/audio"
	"go-tower-arena/internal/config"
	"go-tower-arena/internal/persistence"
	"go-tower-arena/internal/state"
)

// viewer adapts the state machine to ebiten.Game.
type viewer struct {
	states *state.StateMachine
	last   time.Time
}

func (v *viewer) Update() error {
	if v.states.Current() == nil {
		return ebiten.Termination
	}
	now := time.Now()
	dt := min(now.Sub(v.last).Seconds(), config.MaxDeltaTime)
	v.last = now
	v.states.Update(dt)
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) { v.states.Draw(screen) }

func (v *viewer) Layout(int, int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	server := flag.String("server", "", "server address, host:port or ws://host:port/ws")
	ws := flag.Bool("ws", false, "connect through the websocket gateway")
	name := flag.String("name", "player", "player name")
	password := flag.String("password", "", "join password of the server")
	scores := flag.String("scores", "scores", "directory of the local score tables")
	volume := flag.Float64("volume", 0.5, "sound volume, 0 mutes")
	flag.Parse()

	sound := audio.NewPlayer(*volume)
	if *volume > 0 {
		if err := sound.Init(); err != nil {
			log.Printf("[game] audio disabled: %v", err)
		}
	}
	defer sound.Close()

	env := state.NewEnv(persistence.NewStore(*scores), sound)
	env.Name, env.ServerAddr, env.WebSocket, env.Password = *name, *server, *ws, *password

	states := state.NewStateMachine()
	states.SetState(state.NewMenuState(states, env))

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Tower Arena")
	if err := ebiten.RunGame(&viewer{states: states, last: time.Now()}); err != nil {
		log.Fatal(err)
	}
}
