// Package tui implements a terminal spectator/admin client that renders the
// server's per-viewer projection (spec §4.7) and lets the operator drive
// seat/action commands, the redesign's equivalent of the teacher's
// internal/tui + cmd/holdem-client pairing.
package tui

import (
	"fmt"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/holdem-table/internal/protocol"
)

// Client is a single WebSocket connection to a holdem-server table.
type Client struct {
	conn    *websocket.Conn
	logger  *log.Logger
	States  chan protocol.State
	Errors  chan protocol.Error
	closeCh chan struct{}
}

// Dial connects to serverURL's /ws endpoint. serverURL may be given as
// http(s):// or ws(s)://; the scheme is normalized automatically.
func Dial(serverURL string, logger *log.Logger) (*Client, error) {
	if logger == nil {
		logger = log.Default()
	}
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("tui: invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("tui: connecting to %s: %w", u.String(), err)
	}

	c := &Client{
		conn:    conn,
		logger:  logger.WithPrefix("tui-client"),
		States:  make(chan protocol.State, 16),
		Errors:  make(chan protocol.Error, 16),
		closeCh: make(chan struct{}),
	}
	go c.readPump()
	return c, nil
}

// Close tears down the underlying connection.
func (c *Client) Close() error {
	select {
	case <-c.closeCh:
	default:
		close(c.closeCh)
	}
	return c.conn.Close()
}

func (c *Client) readPump() {
	defer close(c.States)
	defer close(c.Errors)
	for {
		var env protocol.Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			c.logger.Debug("read loop ending", "error", err)
			return
		}
		switch env.Type {
		case protocol.TypeState:
			var s protocol.State
			if err := protocol.DecodePayload(env, &s); err != nil {
				c.logger.Warn("decoding state", "error", err)
				continue
			}
			c.States <- s
		case protocol.TypeError:
			var e protocol.Error
			if err := protocol.DecodePayload(env, &e); err != nil {
				c.logger.Warn("decoding error message", "error", err)
				continue
			}
			c.Errors <- e
		}
	}
}

func (c *Client) send(msgType string, payload any) error {
	env, err := protocol.Encode(msgType, payload)
	if err != nil {
		return err
	}
	return c.conn.WriteJSON(env)
}

// SetUsername sends a set-username command.
func (c *Client) SetUsername(name string) error {
	return c.send(protocol.TypeSetUsername, protocol.SetUsername{Name: name})
}

// BecomeOwner sends a become-owner command.
func (c *Client) BecomeOwner() error {
	return c.send(protocol.TypeBecomeOwner, nil)
}

// Sit sends a sit command for the given seat and buy-in.
func (c *Client) Sit(seat, buyIn int) error {
	return c.send(protocol.TypeSit, protocol.Sit{Seat: seat, BuyIn: buyIn})
}

// Stand sends a stand command.
func (c *Client) Stand() error {
	return c.send(protocol.TypeStand, nil)
}

// Kick sends an owner-only kick command for the given seat.
func (c *Client) Kick(seat int) error {
	return c.send(protocol.TypeKick, protocol.Kick{Seat: seat})
}

// StartHand sends a start-hand command.
func (c *Client) StartHand() error {
	return c.send(protocol.TypeStartHand, nil)
}

// Action sends a betting action. amount is ignored by the server for
// fold/check/call/all-in.
func (c *Client) Action(kind string, amount int) error {
	return c.send(protocol.TypeAction, protocol.Action{Kind: kind, Amount: amount})
}
