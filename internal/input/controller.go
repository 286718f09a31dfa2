// internal/input/controller.go
package input

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-tower-arena/internal/app"
	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/interfaces"
	"go-tower-arena/internal/network"
	"go-tower-arena/internal/snapshot"
	"go-tower-arena/internal/types"
)

// Controller executes intents for one player, against a local game or a server.
type Controller interface {
	PlayerID() types.PlayerID
	PlaceTower(kind defs.TowerKind, x, y int) (types.EntityID, error)
	UpgradeTower(id types.EntityID) error
	SellTower(id types.EntityID) (int, error)
	StartWave(kind int) error
	SetPaused(paused bool) error
	Snapshot() snapshot.Snapshot
}

// LocalGame is what a LocalController needs of an in-process game.
type LocalGame interface {
	interfaces.Commands
	interfaces.SnapshotSource
}

// LocalController drives an in-process game.
type LocalController struct {
	game   LocalGame
	player types.PlayerID
}

func NewLocalController(game LocalGame, player types.PlayerID) *LocalController {
	return &LocalController{game: game, player: player}
}

func (c *LocalController) PlayerID() types.PlayerID { return c.player }

func (c *LocalController) PlaceTower(kind defs.TowerKind, x, y int) (types.EntityID, error) {
	return c.game.PlaceTower(c.player, kind, x, y)
}

func (c *LocalController) UpgradeTower(id types.EntityID) error {
	return c.game.UpgradeTower(c.player, id)
}

func (c *LocalController) SellTower(id types.EntityID) (int, error) {
	return c.game.SellTower(c.player, id)
}

func (c *LocalController) StartWave(kind int) error {
	return c.game.StartWave(c.player, kind)
}

func (c *LocalController) SetPaused(paused bool) error {
	return c.game.SetPaused(c.player, paused)
}

func (c *LocalController) Snapshot() snapshot.Snapshot { return c.game.Snapshot() }

// RemoteController forwards intents to a server and keeps the latest
// snapshot it broadcast. Non-snapshot updates are handed to OnMessage.
type RemoteController struct {
	client  *network.Client
	timeout time.Duration

	mu   sync.RWMutex
	snap snapshot.Snapshot

	// OnMessage получает чат, состав и прочие рассылки. Вызывается из Run.
	OnMessage func(*network.Message)
}

func NewRemoteController(client *network.Client, timeout time.Duration) *RemoteController {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RemoteController{client: client, timeout: timeout}
}

// Run consumes server broadcasts until ctx ends or the connection closes.
func (c *RemoteController) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.client.Done():
			return network.ErrClosed
		case m := <-c.client.Updates():
			if m.Type == network.TypeSnapshot && m.Snapshot != nil {
				c.mu.Lock()
				c.snap = *m.Snapshot
				c.mu.Unlock()
			}
			if c.OnMessage != nil {
				c.OnMessage(m)
			}
		}
	}
}

func (c *RemoteController) PlayerID() types.PlayerID { return c.client.PlayerID }

func (c *RemoteController) Snapshot() snapshot.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

func (c *RemoteController) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}

func (c *RemoteController) PlaceTower(kind defs.TowerKind, x, y int) (types.EntityID, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	r, err := c.client.PlaceTower(ctx, kind, x, y)
	if err != nil {
		return 0, err
	}
	return r.Entity, ErrorFor(r)
}

func (c *RemoteController) UpgradeTower(id types.EntityID) error {
	ctx, cancel := c.ctx()
	defer cancel()
	r, err := c.client.UpgradeTower(ctx, id)
	if err != nil {
		return err
	}
	return ErrorFor(r)
}

func (c *RemoteController) SellTower(id types.EntityID) (int, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	r, err := c.client.SellTower(ctx, id)
	if err != nil {
		return 0, err
	}
	return r.Value, ErrorFor(r)
}

func (c *RemoteController) StartWave(kind int) error {
	ctx, cancel := c.ctx()
	defer cancel()
	status, err := c.client.StartWave(ctx, kind)
	if err != nil {
		return err
	}
	return waveError(status)
}

func (c *RemoteController) SetPaused(paused bool) error {
	ctx, cancel := c.ctx()
	defer cancel()
	r, err := c.client.SetPaused(ctx, paused)
	if err != nil {
		return err
	}
	return ErrorFor(r)
}

// ErrorFor turns a wire result back into the game error it stands for, so
// callers match remote and local failures the same way.
func ErrorFor(r *network.Result) error {
	switch r.Code {
	case network.CodeOK:
		return nil
	case network.CodeNoMoney:
		return app.ErrInsufficientFunds
	case network.CodeInaccessibleZone:
		return app.ErrInvalidPosition
	case network.CodePathBlocked:
		return app.ErrPathBlocked
	}
	if r.Error == "" {
		return errors.New(string(r.Code))
	}
	return errors.New(r.Error)
}

func waveError(status int) error {
	switch status {
	case app.WaveStatusOK:
		return nil
	case app.WaveStatusInProgress:
		return app.ErrWaveInProgress
	case app.WaveStatusNotRunning:
		return app.ErrNotRunning
	}
	return app.ErrInvalidWave
}
