// internal/state/summary.go
package state

import (
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/snapshot"
	"go-tower-arena/internal/types"
)

// Summary is the end-of-game result of one player.
type Summary struct {
	Terrain string
	Outcome string
	Won     bool
	Score   int
	Kills   int
	Lives   int
	Stars   int
}

// Summarize reads the final snapshot. Stars come from the score thresholds
// of the terrain whatever the outcome, the same rule the score table uses.
func Summarize(snap snapshot.Snapshot, me types.PlayerID) Summary {
	s := Summary{Terrain: snap.Terrain, Outcome: snap.Outcome}
	p, ok := snap.Player(me)
	if ok {
		s.Score, s.Kills, s.Lives = p.Score, p.Kills, p.Lives
	}
	s.Won = snap.Outcome == "victory" && (snap.Winner == 0 || (ok && snap.Winner == p.Team))
	if t, ok := defs.TerrainLibrary[snap.Terrain]; ok {
		s.Stars = t.Stars(s.Score)
	}
	return s
}

// Title is the headline of the game over screen.
func (s Summary) Title() string {
	switch {
	case s.Won:
		return "VICTORY"
	case s.Outcome == "":
		return "GAME ENDED"
	default:
		return "DEFEAT"
	}
}
