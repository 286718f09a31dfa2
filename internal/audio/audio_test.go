package audio

import (
	"testing"

	"go-tower-arena/internal/event"
)

func TestStreamLength(t *testing.T) {
	for cue, notes := range cueNotes {
		s, err := Stream(cue, sampleRate, 0.5)
		if err != nil {
			t.Fatalf("Stream(%d): %v", cue, err)
		}
		want := 0
		for _, n := range notes {
			want += sampleRate.N(n.dur)
		}

		buf := make([][2]float64, 512)
		got := 0
		for {
			n, ok := s.Stream(buf)
			got += n
			for i := 0; i < n; i++ {
				if buf[i][0] < -1 || buf[i][0] > 1 {
					t.Fatalf("cue %d sample out of range: %f", cue, buf[i][0])
				}
			}
			if !ok {
				break
			}
		}
		if got != want {
			t.Errorf("cue %d streamed %d samples, want %d", cue, got, want)
		}
	}
}

func TestStreamUnknownCue(t *testing.T) {
	if _, err := Stream(CueNone, sampleRate, 1); err == nil {
		t.Error("expected error for CueNone")
	}
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		name string
		e    event.Event
		want Cue
	}{
		{"own tower", event.Event{Type: event.TowerPlaced, Player: 1}, CueTowerPlaced},
		{"other tower", event.Event{Type: event.TowerPlaced, Player: 2}, CueNone},
		{"own kill", event.Event{Type: event.CreatureKilled, Player: 1}, CueKill},
		{"own life", event.Event{Type: event.CreatureArrived, Player: 1}, CueLifeLost},
		{"wave", event.Event{Type: event.WaveStarted, Player: 2}, CueWaveStart},
		{"cleared", event.Event{Type: event.WaveCleared}, CueWaveCleared},
		{"victory", event.Event{Type: event.GameOver, Text: "victory"}, CueVictory},
		{"defeat", event.Event{Type: event.GameOver, Text: "defeat"}, CueDefeat},
		{"spawn", event.Event{Type: event.CreatureSpawned}, CueNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CueFor(tt.e, 1); got != tt.want {
				t.Errorf("CueFor = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPlayWithoutSpeaker(t *testing.T) {
	p := NewPlayer(1)
	p.Play(CueKill) // без Init ничего не происходит
	p.SetVolume(3)
	if p.volume != 1 {
		t.Errorf("volume = %f, want 1", p.volume)
	}
	p.Close()
}
