// internal/server/websocket.go
package server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"go-tower-arena/internal/network"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebSocketHandler upgrades /ws requests into sessions speaking msgpack frames.
// The same registration and commands apply as on the TCP port.
func (s *Server) WebSocketHandler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("[ws] upgrade from %s: %v", r.RemoteAddr, err)
			return
		}
		if ctx.Err() != nil || !s.track() {
			conn.Close()
			return
		}
		defer s.wg.Done()
		s.handleConn(ctx, network.NewWSCodec(conn))
	})
	return mux
}

// ServeWebSocket runs the gateway on ln until ctx is cancelled.
func (s *Server) ServeWebSocket(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.WebSocketHandler(ctx),
		ReadHeaderTimeout: s.cfg.RegistrationTimeout.Duration,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	log.Printf("[ws] gateway on %s", ln.Addr())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
