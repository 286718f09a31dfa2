// internal/persistence/scores.go
package persistence

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"go-tower-arena/internal/config"
	"go-tower-arena/internal/defs"
)

// Score — одна запись таблицы рекордов карты.
type Score struct {
	Player string    `msgpack:"player" json:"player"`
	Value  int       `msgpack:"value" json:"value"`
	Stars  int       `msgpack:"stars" json:"stars"`
	Date   time.Time `msgpack:"date" json:"date"`
}

// Store keeps one score file per terrain, <dir>/<terrain>.ms, msgpack encoded.
type Store struct {
	dir string
	mu  sync.Mutex
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(terrain string) string {
	return filepath.Join(s.dir, terrain+".ms")
}

// LoadScores returns the terrain's scores, best first. A missing file is an empty table.
func (s *Store) LoadScores(terrain string) ([]Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(terrain)
}

func (s *Store) load(terrain string) ([]Score, error) {
	data, err := os.ReadFile(s.path(terrain))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read scores of %s: %w", terrain, err)
	}
	var scores []Score
	if err := msgpack.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("decode scores of %s: %w", terrain, err)
	}
	sortScores(scores)
	return scores, nil
}

// SaveScore inserts a score, keeps the table sorted and capped at
// config.ScoreboardSize, and reports whether the score made it into the table.
// Stars are derived from the terrain thresholds when left at zero.
func (s *Store) SaveScore(terrain string, score Score) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scores, err := s.load(terrain)
	if err != nil {
		return false, err
	}
	if score.Date.IsZero() {
		score.Date = time.Now()
	}
	if score.Stars == 0 {
		if t, ok := defs.TerrainLibrary[terrain]; ok {
			score.Stars = t.Stars(score.Value)
		}
	}
	score.Date = score.Date.UTC().Truncate(time.Millisecond)

	scores = append(scores, score)
	sortScores(scores)
	kept := false
	if len(scores) > config.ScoreboardSize {
		scores = scores[:config.ScoreboardSize]
	}
	for _, sc := range scores {
		if sc == score {
			kept = true
			break
		}
	}

	data, err := msgpack.Marshal(scores)
	if err != nil {
		return false, fmt.Errorf("encode scores of %s: %w", terrain, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return false, fmt.Errorf("create scores dir: %w", err)
	}
	tmp := s.path(terrain) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return false, fmt.Errorf("write scores of %s: %w", terrain, err)
	}
	if err := os.Rename(tmp, s.path(terrain)); err != nil {
		return false, fmt.Errorf("replace scores of %s: %w", terrain, err)
	}
	log.Printf("[scores] %s: %s scored %d (%d stars)", terrain, score.Player, score.Value, score.Stars)
	return kept, nil
}

// Лучший результат выше; при равенстве выше более ранний.
func sortScores(scores []Score) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Value != scores[j].Value {
			return scores[i].Value > scores[j].Value
		}
		return scores[i].Date.Before(scores[j].Date)
	})
}

// TotalStars sums the best star count of every built-in terrain.
func (s *Store) TotalStars() (int, error) {
	total := 0
	for _, name := range defs.TerrainNames() {
		scores, err := s.LoadScores(name)
		if err != nil {
			return 0, err
		}
		best := 0
		for _, sc := range scores {
			if sc.Stars > best {
				best = sc.Stars
			}
		}
		total += best
	}
	return total, nil
}

// UnlockedTerrains returns, in unlock order, the terrains the collected stars open.
func (s *Store) UnlockedTerrains() ([]string, error) {
	stars, err := s.TotalStars()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, name := range defs.TerrainNames() {
		if defs.TerrainLibrary[name].StarsToUnlock <= stars {
			names = append(names, name)
		}
	}
	return names, nil
}
