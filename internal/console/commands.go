// internal/console/commands.go
package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go-tower-arena/internal/app"
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/network"
	"go-tower-arena/internal/persistence"
	"go-tower-arena/internal/types"
)

// ErrQuit is returned by Execute for the quit command.
var ErrQuit = errors.New("quit")

// Remote is the part of network.Client the console drives.
type Remote interface {
	PlaceTower(ctx context.Context, kind defs.TowerKind, x, y int) (*network.Result, error)
	UpgradeTower(ctx context.Context, id types.EntityID) (*network.Result, error)
	SellTower(ctx context.Context, id types.EntityID) (*network.Result, error)
	StartWave(ctx context.Context, kind int) (int, error)
	StartGame(ctx context.Context) (*network.Result, error)
	SetPaused(ctx context.Context, paused bool) (*network.Result, error)
	Scores(ctx context.Context, terrain string) ([]persistence.Score, error)
	ChatAll(text string) error
	ChatOne(to types.PlayerID, text string) error
}

var _ Remote = (*network.Client)(nil)

// helpFormat lists the commands, %s takes the tower kinds.
const helpFormat = `place <kind> <x> <y>   build a tower (kinds: %s)
up <tower>             upgrade a tower
sell <tower>           sell a tower
wave [kind]            start the next wave, or a bonus wave kind
start                  start the game
pause | resume
say <text>             chat to everyone
tell <player> <text>   chat to one player
scores [terrain]       score table
quit`

func helpText() string {
	kinds := defs.TowerKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return fmt.Sprintf(helpFormat, strings.Join(names, ", "))
}

var waveStatuses = map[int]string{
	app.WaveStatusOK:         "wave started",
	app.WaveStatusInProgress: "a wave is already running",
	app.WaveStatusInvalid:    "no such wave",
	app.WaveStatusNotRunning: "the game is not running",
}

// Execute runs one command line and returns the text to show.
func Execute(ctx context.Context, r Remote, terrain, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "help", "?":
		return helpText(), nil

	case "quit", "exit":
		return "", ErrQuit

	case "place", "p":
		if len(args) != 3 {
			return "", errors.New("usage: place <kind> <x> <y>")
		}
		x, y, err := coords(args[1], args[2])
		if err != nil {
			return "", err
		}
		res, err := r.PlaceTower(ctx, defs.TowerKind(args[0]), x, y)
		if err != nil {
			return "", err
		}
		if res.Code == network.CodeOK {
			return fmt.Sprintf("OK tower %d", res.Entity), nil
		}
		return describe(res), nil

	case "up", "upgrade", "u":
		id, err := towerID(args)
		if err != nil {
			return "", err
		}
		res, err := r.UpgradeTower(ctx, id)
		if err != nil {
			return "", err
		}
		return describe(res), nil

	case "sell", "s":
		id, err := towerID(args)
		if err != nil {
			return "", err
		}
		res, err := r.SellTower(ctx, id)
		if err != nil {
			return "", err
		}
		if res.Code == network.CodeOK {
			return fmt.Sprintf("OK refund %d", res.Value), nil
		}
		return describe(res), nil

	case "wave", "w":
		kind := 0
		if len(args) > 0 {
			k, err := strconv.Atoi(args[0])
			if err != nil {
				return "", fmt.Errorf("bad wave kind %q", args[0])
			}
			kind = k
		}
		status, err := r.StartWave(ctx, kind)
		if err != nil {
			return "", err
		}
		if text, ok := waveStatuses[status]; ok {
			return text, nil
		}
		return fmt.Sprintf("wave status %d", status), nil

	case "start":
		res, err := r.StartGame(ctx)
		if err != nil {
			return "", err
		}
		return describe(res), nil

	case "pause", "resume":
		res, err := r.SetPaused(ctx, cmd == "pause")
		if err != nil {
			return "", err
		}
		return describe(res), nil

	case "say":
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return "", errors.New("usage: say <text>")
		}
		return "", r.ChatAll(text)

	case "tell":
		if len(args) < 2 {
			return "", errors.New("usage: tell <player> <text>")
		}
		to, err := strconv.Atoi(args[0])
		if err != nil {
			return "", fmt.Errorf("bad player id %q", args[0])
		}
		return "", r.ChatOne(types.PlayerID(to), strings.Join(args[1:], " "))

	case "scores":
		if len(args) > 0 {
			terrain = args[0]
		}
		scores, err := r.Scores(ctx, terrain)
		if err != nil {
			return "", err
		}
		return FormatScores(terrain, scores), nil
	}
	return "", fmt.Errorf("unknown command %q, try help", cmd)
}

func coords(xs, ys string) (int, int, error) {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return 0, 0, fmt.Errorf("bad x %q", xs)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return 0, 0, fmt.Errorf("bad y %q", ys)
	}
	return x, y, nil
}

func towerID(args []string) (types.EntityID, error) {
	if len(args) != 1 {
		return 0, errors.New("tower id required")
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad tower id %q", args[0])
	}
	return types.EntityID(id), nil
}

func describe(r *network.Result) string {
	if r.Error == "" {
		return string(r.Code)
	}
	return fmt.Sprintf("%s: %s", r.Code, r.Error)
}

// FormatScores renders a score table, best first.
func FormatScores(terrain string, scores []persistence.Score) string {
	if len(scores) == 0 {
		return "no scores on " + terrain
	}
	var b strings.Builder
	fmt.Fprintf(&b, "scores on %s", terrain)
	for i, s := range scores {
		fmt.Fprintf(&b, "\n%2d. %-16s %6d  %d*", i+1, s.Player, s.Value, s.Stars)
	}
	return b.String()
}
