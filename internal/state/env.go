// internal/state/env.go
package state

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"go-tower-arena/internal/audio"
	"go-tower-arena/internal/persistence"
)

// Env is what every screen shares: the font, the score store, the sound
// player and the multiplayer settings given on the command line.
type Env struct {
	Face  font.Face
	Store *persistence.Store
	Audio *audio.Player

	Name       string
	ServerAddr string // host:port, или ws://host/ws при WebSocket
	WebSocket  bool
	Password   string
}

// NewEnv fills the defaults: the built-in 7x13 face and the name "player".
func NewEnv(store *persistence.Store, player *audio.Player) *Env {
	return &Env{
		Face:  basicfont.Face7x13,
		Store: store,
		Audio: player,
		Name:  "player",
	}
}
