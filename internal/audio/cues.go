// internal/audio/cues.go
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"go-tower-arena/internal/event"
	"go-tower-arena/internal/types"
)

// Cue — короткий звуковой сигнал интерфейса.
type Cue int

const (
	CueNone Cue = iota
	CueTowerPlaced
	CueTowerSold
	CueUpgrade
	CueKill
	CueLifeLost
	CueWaveStart
	CueWaveCleared
	CueError
	CueVictory
	CueDefeat
)

type shape int

const (
	sine shape = iota
	square
	triangle
)

type note struct {
	freq  float64 // 0 — пауза
	dur   time.Duration
	shape shape
}

var cueNotes = map[Cue][]note{
	CueTowerPlaced: {{440, 60 * time.Millisecond, square}, {660, 60 * time.Millisecond, square}},
	CueTowerSold:   {{660, 60 * time.Millisecond, square}, {440, 80 * time.Millisecond, square}},
	CueUpgrade:     {{523.25, 50 * time.Millisecond, sine}, {659.25, 50 * time.Millisecond, sine}, {783.99, 90 * time.Millisecond, sine}},
	CueKill:        {{987.77, 40 * time.Millisecond, triangle}},
	CueLifeLost:    {{140, 180 * time.Millisecond, square}},
	CueWaveStart:   {{330, 120 * time.Millisecond, triangle}, {0, 40 * time.Millisecond, sine}, {330, 120 * time.Millisecond, triangle}},
	CueWaveCleared: {{784, 80 * time.Millisecond, sine}, {1046.5, 160 * time.Millisecond, sine}},
	CueError:       {{110, 120 * time.Millisecond, square}},
	CueVictory:     {{523.25, 120 * time.Millisecond, sine}, {659.25, 120 * time.Millisecond, sine}, {783.99, 120 * time.Millisecond, sine}, {1046.5, 300 * time.Millisecond, sine}},
	CueDefeat:      {{392, 200 * time.Millisecond, triangle}, {311.13, 200 * time.Millisecond, triangle}, {261.63, 400 * time.Millisecond, triangle}},
}

// Stream builds the streamer of a cue at the given rate and volume (0..1).
func Stream(cue Cue, sr beep.SampleRate, volume float64) (beep.Streamer, error) {
	notes, ok := cueNotes[cue]
	if !ok {
		return nil, fmt.Errorf("unknown cue %d", cue)
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		s, err := tone(n, sr)
		if err != nil {
			return nil, fmt.Errorf("cue %d: %w", cue, err)
		}
		parts = append(parts, beep.Take(sr.N(n.dur), s))
	}
	return withVolume(beep.Seq(parts...), volume), nil
}

func tone(n note, sr beep.SampleRate) (beep.Streamer, error) {
	if n.freq == 0 {
		return beep.Silence(-1), nil
	}
	switch n.shape {
	case square:
		return generators.SquareTone(sr, n.freq)
	case triangle:
		return generators.TriangleTone(sr, n.freq)
	}
	return generators.SineTone(sr, n.freq)
}

// math.Log2(0) is -Inf, zero volume is silence.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	// громкость 1 соответствует -2 (четверть амплитуды), чтобы тоны не резали слух
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol) - 2}
}

// CueFor picks the cue a game event deserves from the point of view of one player.
func CueFor(e event.Event, me types.PlayerID) Cue {
	switch e.Type {
	case event.TowerPlaced:
		if e.Player == me {
			return CueTowerPlaced
		}
	case event.TowerSold:
		if e.Player == me {
			return CueTowerSold
		}
	case event.TowerUpgraded:
		if e.Player == me {
			return CueUpgrade
		}
	case event.CreatureKilled:
		if e.Player == me {
			return CueKill
		}
	case event.CreatureArrived:
		if e.Player == me {
			return CueLifeLost
		}
	case event.WaveStarted:
		return CueWaveStart
	case event.WaveCleared:
		return CueWaveCleared
	case event.GameOver:
		if e.Text == "victory" {
			return CueVictory
		}
		return CueDefeat
	}
	return CueNone
}
