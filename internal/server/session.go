// internal/server/session.go
package server

import (
	"sync"
	"sync/atomic"
	"time"

	"go-tower-arena/internal/network"
	"go-tower-arena/internal/types"
)

// session is one registered connection. Writes go through sendCh so a slow
// client never blocks the broadcaster or the game.
type session struct {
	conn   uint64
	player types.PlayerID
	name   string
	codec  network.Codec

	sendCh       chan *network.Message
	writeTimeout time.Duration
	dropped      atomic.Uint64

	closeCh   chan struct{}
	closeOnce sync.Once
}

func newSession(conn uint64, player types.PlayerID, name string, codec network.Codec, queue int, writeTimeout time.Duration) *session {
	return &session{
		conn:         conn,
		player:       player,
		name:         name,
		codec:        codec,
		sendCh:       make(chan *network.Message, queue),
		writeTimeout: writeTimeout,
		closeCh:      make(chan struct{}),
	}
}

// send queues m. Returns false if the session is closed or its queue is full.
func (c *session) send(m *network.Message) bool {
	select {
	case <-c.closeCh:
		return false
	default:
	}
	select {
	case c.sendCh <- m:
		return true
	default:
		c.dropped.Add(1)
		return false
	}
}

func (c *session) close() {
	c.closeOnce.Do(func() {
		close(c.closeCh)
		c.codec.Close()
	})
}

func (c *session) closed() <-chan struct{} { return c.closeCh }

func (c *session) writeLoop() {
	defer c.close()
	for {
		select {
		case <-c.closeCh:
			return
		case m := <-c.sendCh:
			if c.writeTimeout > 0 {
				c.codec.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			}
			if err := c.codec.Encode(m); err != nil {
				return
			}
		}
	}
}
