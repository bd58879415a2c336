package websocket

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/Guneshwar24/youtube-live-chat-insights/internal/domain"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/metrics"
)

const (
	maxClients    = 50
	writeDeadline = 5 * time.Second
	sendBuffer    = 8
)

// --- Command types ---

type broadcasterCmd interface{ broadcasterCmd() }

type cmdRegister struct {
	conn  *websocket.Conn
	errCh chan error
}

func (cmdRegister) broadcasterCmd() {}

type cmdUnregister struct {
	conn *websocket.Conn
}

func (cmdUnregister) broadcasterCmd() {}

type cmdBroadcast struct {
	data []byte
}

func (cmdBroadcast) broadcasterCmd() {}

type cmdClientCount struct {
	replyCh chan int
}

func (cmdClientCount) broadcasterCmd() {}

type cmdStop struct{}

func (cmdStop) broadcasterCmd() {}

// --- Per-connection writer ---

type clientWriter struct {
	conn   *websocket.Conn
	clock  clockwork.Clock
	sendCh chan []byte
	done   chan struct{}
}

func newClientWriter(conn *websocket.Conn, clock clockwork.Clock) *clientWriter {
	cw := &clientWriter{
		conn:   conn,
		clock:  clock,
		sendCh: make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
	go cw.run()
	return cw
}

func (cw *clientWriter) run() {
	for {
		select {
		case msg := <-cw.sendCh:
			cw.conn.SetWriteDeadline(cw.clock.Now().Add(writeDeadline))
			if err := cw.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-cw.done:
			return
		}
	}
}

func (cw *clientWriter) stop() {
	close(cw.done)
	cw.conn.Close()
}

// --- Broadcaster ---

// OverlayBroadcaster is a single-owner actor that fans refreshed snapshots
// out to connected overlay clients. It satisfies the snapshot publisher
// contract of the session: Publish hands a snapshot to the actor and never
// blocks on a slow client; slow clients are disconnected instead.
type OverlayBroadcaster struct {
	cmdCh   chan broadcasterCmd
	clock   clockwork.Clock
	clients map[*websocket.Conn]*clientWriter
	last    []byte
}

func NewOverlayBroadcaster(clock clockwork.Clock) *OverlayBroadcaster {
	b := &OverlayBroadcaster{
		cmdCh:   make(chan broadcasterCmd, 256),
		clock:   clock,
		clients: make(map[*websocket.Conn]*clientWriter),
	}
	go b.run()
	return b
}

var _ domain.SnapshotPublisher = (*OverlayBroadcaster)(nil)

// Publish fans a refreshed snapshot out to all connected clients. Called by
// the session at refresh boundaries.
func (b *OverlayBroadcaster) Publish(snapshot *domain.Snapshot) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		slog.Error("Failed to marshal snapshot for broadcast", "error", err)
		return
	}
	b.cmdCh <- cmdBroadcast{data: data}
}

// Register adds a client. Newly registered clients immediately receive the
// last published snapshot so overlays render without waiting for a refresh.
func (b *OverlayBroadcaster) Register(conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	b.cmdCh <- cmdRegister{conn: conn, errCh: errCh}
	return <-errCh
}

// Unregister removes a client and stops its writer.
func (b *OverlayBroadcaster) Unregister(conn *websocket.Conn) {
	b.cmdCh <- cmdUnregister{conn: conn}
}

// ClientCount returns the number of connected clients.
func (b *OverlayBroadcaster) ClientCount() int {
	replyCh := make(chan int, 1)
	b.cmdCh <- cmdClientCount{replyCh: replyCh}
	return <-replyCh
}

// Stop shuts the broadcaster down, closing all client connections.
func (b *OverlayBroadcaster) Stop() {
	b.cmdCh <- cmdStop{}
}

func (b *OverlayBroadcaster) run() {
	for cmd := range b.cmdCh {
		switch c := cmd.(type) {
		case cmdRegister:
			b.handleRegister(c)
		case cmdUnregister:
			b.handleUnregister(c.conn)
		case cmdBroadcast:
			b.handleBroadcast(c.data)
		case cmdClientCount:
			c.replyCh <- len(b.clients)
		case cmdStop:
			b.handleStop()
			return
		}
	}
}

func (b *OverlayBroadcaster) handleRegister(c cmdRegister) {
	if len(b.clients) >= maxClients {
		slog.Warn("Rejecting overlay client: max clients reached", "max", maxClients)
		c.conn.Close()
		c.errCh <- ErrTooManyClients
		return
	}

	cw := newClientWriter(c.conn, b.clock)
	b.clients[c.conn] = cw
	metrics.OverlayClients.Set(float64(len(b.clients)))
	slog.Info("Overlay client registered", "total", len(b.clients))

	if b.last != nil {
		cw.sendCh <- b.last
	}
	c.errCh <- nil
}

func (b *OverlayBroadcaster) handleUnregister(conn *websocket.Conn) {
	cw, exists := b.clients[conn]
	if !exists {
		return
	}

	cw.stop()
	delete(b.clients, conn)
	metrics.OverlayClients.Set(float64(len(b.clients)))
	slog.Info("Overlay client unregistered", "remaining", len(b.clients))
}

func (b *OverlayBroadcaster) handleBroadcast(data []byte) {
	b.last = data

	var slow []*websocket.Conn
	for conn, cw := range b.clients {
		select {
		case cw.sendCh <- data:
		default:
			slow = append(slow, conn)
		}
	}

	for _, conn := range slow {
		slog.Warn("Disconnecting slow overlay client")
		b.handleUnregister(conn)
	}
}

func (b *OverlayBroadcaster) handleStop() {
	for conn, cw := range b.clients {
		cw.stop()
		delete(b.clients, conn)
	}
	metrics.OverlayClients.Set(0)
}
