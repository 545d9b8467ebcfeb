package server

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/holdem-table/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

// ErrConnectionClosed is returned by SendMessage when it closes a connection
// because the connection's outbound buffer is full.
var ErrConnectionClosed = websocket.ErrCloseSent

// Connection wraps one client's WebSocket socket: a buffered outbound queue
// drained by writePump, and an inbound loop that decodes envelopes and hands
// them to the owning Session.
type Connection struct {
	conn      *websocket.Conn
	send      chan protocol.Envelope
	clientRef string
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	session *Session
}

// NewConnection wraps conn for clientRef, routing decoded commands to session.
func NewConnection(conn *websocket.Conn, clientRef string, logger *log.Logger, session *Session) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:      conn,
		send:      make(chan protocol.Envelope, 256),
		clientRef: clientRef,
		logger:    logger.WithPrefix("conn").With("client", clientRef),
		ctx:       ctx,
		cancel:    cancel,
		session:   session,
	}
}

// Start launches the read and write pumps as separate goroutines.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close tears down the connection exactly once.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage enqueues env for delivery, closing the connection if its
// outbound buffer is full rather than blocking the broadcaster.
func (c *Connection) SendMessage(env protocol.Envelope) error {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Debug("send on closed connection", "recovered", r)
		}
	}()
	select {
	case c.send <- env:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("outbound buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

func (c *Connection) readPump() {
	defer func() {
		c.session.unregister(c)
		_ = c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var env protocol.Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket read error", "error", err)
			}
			return
		}
		c.session.handle(c, env)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case env, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(env); err != nil {
				c.logger.Error("websocket write error", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}
