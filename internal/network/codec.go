// internal/network/codec.go
package network

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// MaxMessageSize bounds a single inbound message.
const MaxMessageSize = 1 << 20

// Codec reads and writes envelopes on one connection. Decode is called from a
// single reader goroutine; Encode may be called concurrently.
type Codec interface {
	Encode(m *Message) error
	Decode(m *Message) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	RemoteAddr() string
	Close() error
}

// LineCodec speaks JSON, one envelope per line, over a stream connection.
type LineCodec struct {
	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer
	enc    *json.Encoder
	mu     sync.Mutex
}

func NewLineCodec(conn net.Conn) *LineCodec {
	c := &LineCodec{
		conn:   conn,
		reader: bufio.NewReaderSize(conn, 64*1024),
		writer: bufio.NewWriterSize(conn, 64*1024),
	}
	c.enc = json.NewEncoder(c.writer)
	return c
}

func (c *LineCodec) Encode(m *Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.enc.Encode(m); err != nil {
		return fmt.Errorf("encode %s: %w", m.Type, err)
	}
	return c.writer.Flush()
}

func (c *LineCodec) Decode(m *Message) error {
	var line []byte
	for {
		chunk, isPrefix, err := c.reader.ReadLine()
		if err != nil {
			return err
		}
		line = append(line, chunk...)
		if len(line) > MaxMessageSize {
			return fmt.Errorf("message exceeds %d bytes", MaxMessageSize)
		}
		if !isPrefix {
			break
		}
	}
	if len(bytes.TrimSpace(line)) == 0 {
		return c.Decode(m)
	}
	*m = Message{}
	if err := json.Unmarshal(line, m); err != nil {
		return fmt.Errorf("malformed message: %w", err)
	}
	return nil
}

func (c *LineCodec) SetReadDeadline(t time.Time) error  { return c.conn.SetReadDeadline(t) }
func (c *LineCodec) SetWriteDeadline(t time.Time) error { return c.conn.SetWriteDeadline(t) }
func (c *LineCodec) RemoteAddr() string                 { return c.conn.RemoteAddr().String() }
func (c *LineCodec) Close() error                       { return c.conn.Close() }

// WSCodec speaks msgpack in binary websocket frames. Text frames are read as JSON,
// so a browser console can drive the server by hand.
type WSCodec struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewWSCodec(conn *websocket.Conn) *WSCodec {
	conn.SetReadLimit(MaxMessageSize)
	return &WSCodec{conn: conn}
}

func (c *WSCodec) Encode(m *Message) error {
	data, err := MarshalMsgpack(m)
	if err != nil {
		return fmt.Errorf("encode %s: %w", m.Type, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (c *WSCodec) Decode(m *Message) error {
	kind, data, err := c.conn.ReadMessage()
	if err != nil {
		return err
	}
	*m = Message{}
	switch kind {
	case websocket.TextMessage:
		err = json.Unmarshal(data, m)
	case websocket.BinaryMessage:
		err = UnmarshalMsgpack(data, m)
	default:
		return fmt.Errorf("unexpected frame type %d", kind)
	}
	if err != nil {
		return fmt.Errorf("malformed message: %w", err)
	}
	return nil
}

func (c *WSCodec) SetReadDeadline(t time.Time) error  { return c.conn.SetReadDeadline(t) }
func (c *WSCodec) SetWriteDeadline(t time.Time) error { return c.conn.SetWriteDeadline(t) }
func (c *WSCodec) RemoteAddr() string                 { return c.conn.RemoteAddr().String() }

func (c *WSCodec) Close() error {
	c.mu.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	c.mu.Unlock()
	return c.conn.Close()
}

// MarshalMsgpack encodes an envelope with msgpack, reusing the json field names.
func MarshalMsgpack(m *Message) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalMsgpack is the inverse of MarshalMsgpack.
func UnmarshalMsgpack(data []byte, m *Message) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(m)
}
