// internal/console/format.go
package console

import (
	"fmt"
	"strings"

	"go-tower-arena/internal/network"
	"go-tower-arena/internal/snapshot"
	"go-tower-arena/internal/types"
)

// Status is the one-screen summary of a snapshot for player me.
func Status(snap snapshot.Snapshot, me types.PlayerID) string {
	if snap.Phase == "" {
		return "waiting for the first snapshot"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  wave %d/%d", snap.Terrain, snap.Phase, snap.Wave, snap.TotalWaves)
	if snap.WaveActive {
		fmt.Fprintf(&b, " (%s, %d creatures)", snap.WaveName, len(snap.Creatures))
	}
	for _, p := range snap.Players {
		marker := " "
		if p.ID == me {
			marker = ">"
		}
		fmt.Fprintf(&b, "\n%s %-12s team %d  gold %-5d lives %-3d score %-5d kills %d",
			marker, p.Name, p.Team, p.Gold, p.Lives, p.Score, p.Kills)
	}
	mine := 0
	for _, t := range snap.Towers {
		if t.Owner == me {
			mine++
		}
	}
	fmt.Fprintf(&b, "\ntowers: %d (%d yours)", len(snap.Towers), mine)
	if snap.Outcome != "" {
		fmt.Fprintf(&b, "\nresult: %s", snap.Outcome)
	}
	return b.String()
}

// FormatUpdate turns a broadcast into a log line. Snapshots and event
// batches report false, they feed Status instead.
func FormatUpdate(m *network.Message) (string, bool) {
	switch m.Type {
	case network.TypeChat:
		if m.Chat == nil {
			return "", false
		}
		if m.Chat.To != 0 {
			return fmt.Sprintf("[%s -> you] %s", m.Chat.FromName, m.Chat.Text), true
		}
		return fmt.Sprintf("<%s> %s", m.Chat.FromName, m.Chat.Text), true
	case network.TypeRoster:
		names := make([]string, len(m.Roster))
		for i, r := range m.Roster {
			names[i] = fmt.Sprintf("%s(#%d team %d)", r.Name, r.PlayerID, r.Team)
		}
		return "players: " + strings.Join(names, ", "), true
	case network.TypeGameStarted:
		return "* game started", true
	case network.TypeGameOver:
		if m.GameOver == nil {
			return "* game over", true
		}
		if m.GameOver.Winner != 0 {
			return fmt.Sprintf("* game over: %s, team %d wins", m.GameOver.Outcome, m.GameOver.Winner), true
		}
		return "* game over: " + m.GameOver.Outcome, true
	case network.TypeError:
		return "! " + m.Error, true
	}
	return "", false
}
