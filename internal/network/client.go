// internal/network/client.go
package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"go-tower-arena/internal/defs"
	"go-tower-arena/internal/persistence"
	"go-tower-arena/internal/types"
)

// ErrClosed is returned once the connection is gone.
var ErrClosed = errors.New("connection closed")

// Client is the remote side of a session: one request in flight at a time,
// unsolicited broadcasts delivered on Updates.
type Client struct {
	codec   Codec
	updates chan *Message
	nextID  atomic.Uint64

	reqMu     sync.Mutex
	pendingMu sync.Mutex
	pending   map[uint64]chan *Message

	closeCh   chan struct{}
	closeOnce sync.Once

	PlayerID types.PlayerID
	Info     RegisterResponse
}

// NewClient wraps an established codec and starts reading.
func NewClient(codec Codec, updateBuffer int) *Client {
	if updateBuffer <= 0 {
		updateBuffer = 64
	}
	c := &Client{
		codec:   codec,
		updates: make(chan *Message, updateBuffer),
		pending: make(map[uint64]chan *Message),
		closeCh: make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// Dial connects over TCP with the JSON-lines codec.
func Dial(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return NewClient(NewLineCodec(conn), 0), nil
}

// DialWebSocket connects to the websocket gateway, e.g. ws://host:8080/ws.
func DialWebSocket(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return NewClient(NewWSCodec(conn), 0), nil
}

func (c *Client) readLoop() {
	defer c.Close()
	for {
		m := &Message{}
		if err := c.codec.Decode(m); err != nil {
			return
		}
		if m.ID != 0 {
			c.pendingMu.Lock()
			ch, ok := c.pending[m.ID]
			delete(c.pending, m.ID)
			c.pendingMu.Unlock()
			if ok {
				ch <- m
				continue
			}
		}
		c.deliver(m)
	}
}

// deliver queues a broadcast, dropping the oldest one when the reader lags.
func (c *Client) deliver(m *Message) {
	select {
	case c.updates <- m:
		return
	default:
	}

	// буфер полон: выбрасываем самый старый снимок, сигналы не теряются
	held := make([]*Message, 0, cap(c.updates)+1)
	for len(held) < cap(c.updates) {
		select {
		case old := <-c.updates:
			held = append(held, old)
			continue
		default:
		}
		break
	}
	held = append(held, m)
	if i := droppable(held); i >= 0 {
		held = append(held[:i], held[i+1:]...)
	}
	for _, old := range held {
		select {
		case c.updates <- old:
		case <-c.closeCh:
			return
		}
	}
}

// droppable picks the update to lose on overflow: the oldest snapshot, else
// the oldest message that is not a game signal, -1 if every one is.
func droppable(msgs []*Message) int {
	other := -1
	for i, m := range msgs {
		switch m.Type {
		case TypeSnapshot:
			return i
		case TypeGameStarted, TypeGameOver:
		default:
			if other < 0 {
				other = i
			}
		}
	}
	return other
}

// Updates returns unsolicited server messages: snapshots, events, roster, chat.
func (c *Client) Updates() <-chan *Message { return c.updates }

// Done is closed when the connection ends.
func (c *Client) Done() <-chan struct{} { return c.closeCh }

func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closeCh)
		err = c.codec.Close()
	})
	return err
}

// Send writes a message without waiting for an answer.
func (c *Client) Send(m *Message) error {
	select {
	case <-c.closeCh:
		return ErrClosed
	default:
	}
	return c.codec.Encode(m)
}

// Request sends m and waits for the message carrying the same ID.
func (c *Client) Request(ctx context.Context, m *Message) (*Message, error) {
	c.reqMu.Lock()
	defer c.reqMu.Unlock()

	m.ID = c.nextID.Add(1)
	ch := make(chan *Message, 1)
	c.pendingMu.Lock()
	c.pending[m.ID] = ch
	c.pendingMu.Unlock()
	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, m.ID)
		c.pendingMu.Unlock()
	}()

	if err := c.Send(m); err != nil {
		return nil, err
	}
	select {
	case reply := <-ch:
		return reply, nil
	case <-c.closeCh:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Register identifies the player. The server answers with a player id or a reason.
func (c *Client) Register(ctx context.Context, name, password string) (RegisterResponse, error) {
	reply, err := c.Request(ctx, &Message{Type: TypeRegister, Register: &RegisterRequest{Name: name, Password: password}})
	if err != nil {
		return RegisterResponse{}, err
	}
	if reply.Type != TypeRegistered || reply.Registered == nil {
		return RegisterResponse{}, fmt.Errorf("registration refused: %s", reply.Error)
	}
	c.PlayerID = reply.Registered.PlayerID
	c.Info = *reply.Registered
	return c.Info, nil
}

func (c *Client) command(ctx context.Context, m *Message) (*Result, error) {
	reply, err := c.Request(ctx, m)
	if err != nil {
		return nil, err
	}
	if reply.Result == nil {
		return nil, fmt.Errorf("%s: %s", m.Type, reply.Error)
	}
	return reply.Result, nil
}

func (c *Client) PlaceTower(ctx context.Context, kind defs.TowerKind, x, y int) (*Result, error) {
	return c.command(ctx, &Message{Type: TypePlaceTower, Place: &PlaceTowerRequest{Kind: kind, X: x, Y: y}})
}

func (c *Client) UpgradeTower(ctx context.Context, id types.EntityID) (*Result, error) {
	return c.command(ctx, &Message{Type: TypeUpgrade, Tower: &TowerRequest{TowerID: id}})
}

func (c *Client) SellTower(ctx context.Context, id types.EntityID) (*Result, error) {
	return c.command(ctx, &Message{Type: TypeSell, Tower: &TowerRequest{TowerID: id}})
}

// StartWave returns the integer wave status (0 OK).
func (c *Client) StartWave(ctx context.Context, kind int) (int, error) {
	r, err := c.command(ctx, &Message{Type: TypeStartWave, Wave: &StartWaveRequest{Kind: kind}})
	if err != nil {
		return 0, err
	}
	return r.Status, nil
}

func (c *Client) StartGame(ctx context.Context) (*Result, error) {
	return c.command(ctx, &Message{Type: TypeStartGame})
}

func (c *Client) SetPaused(ctx context.Context, paused bool) (*Result, error) {
	return c.command(ctx, &Message{Type: TypePause, Pause: &PauseRequest{Paused: paused}})
}

func (c *Client) Scores(ctx context.Context, terrain string) ([]persistence.Score, error) {
	reply, err := c.Request(ctx, &Message{Type: TypeScores, Scores: &ScoresPayload{Terrain: terrain}})
	if err != nil {
		return nil, err
	}
	if reply.Scores == nil {
		return nil, fmt.Errorf("scores: %s", reply.Error)
	}
	return reply.Scores.Scores, nil
}

// ChatAll and ChatOne are fire-and-forget.
func (c *Client) ChatAll(text string) error {
	return c.Send(&Message{Type: TypeChatAll, Chat: &ChatMessage{Text: text}})
}

func (c *Client) ChatOne(to types.PlayerID, text string) error {
	return c.Send(&Message{Type: TypeChatOne, Chat: &ChatMessage{To: to, Text: text}})
}
