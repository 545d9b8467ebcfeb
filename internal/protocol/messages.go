// Package protocol defines the JSON messages exchanged between a client and
// the table server over a single WebSocket connection.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/lox/holdem-table/internal/table"
)

// Message type tags, shared by both directions of the envelope.
const (
	// Client -> Server
	TypeSetUsername = "set-username"
	TypeBecomeOwner = "become-owner"
	TypeSit         = "sit"
	TypeStand       = "stand"
	TypeKick        = "kick"
	TypeStartHand   = "start-hand"
	TypeAction      = "action"

	// Server -> Client
	TypeState = "state"
	TypeError = "error"
)

// Envelope is the outer shape of every message: Type selects how Payload is
// interpreted. Clients and the server both marshal/unmarshal through it so
// a single connection can multiplex every message kind.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SetUsername asks the server to record a display name for the caller's seat.
type SetUsername struct {
	Name string `json:"name"`
}

// Sit asks to occupy a seat with a buy-in.
type Sit struct {
	Seat  int `json:"seat"`
	BuyIn int `json:"buyIn"`
}

// Kick is an owner-only request to remove whoever holds a seat.
type Kick struct {
	Seat int `json:"seat"`
}

// Action is a betting-round move: Kind is one of table.ActionKind's values,
// Amount is the intended total current-street bet for bet/raise.
type Action struct {
	Kind   string `json:"kind"`
	Amount int    `json:"amount,omitempty"`
}

// State carries the full per-viewer table projection (spec §4.7).
type State struct {
	View table.TableView `json:"view"`
}

// Error reports a rejected command back to its sender.
type Error struct {
	Code string `json:"code"`
}

// Encode wraps a payload value into an Envelope with the given type tag.
func Encode(msgType string, payload any) (Envelope, error) {
	if payload == nil {
		return Envelope{Type: msgType}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("protocol: encoding %s: %w", msgType, err)
	}
	return Envelope{Type: msgType, Payload: raw}, nil
}

// DecodePayload unmarshals an Envelope's payload into dst, a pointer to one
// of the message structs above.
func DecodePayload(env Envelope, dst any) error {
	if len(env.Payload) == 0 {
		return fmt.Errorf("protocol: %s message has no payload", env.Type)
	}
	if err := json.Unmarshal(env.Payload, dst); err != nil {
		return fmt.Errorf("protocol: decoding %s payload: %w", env.Type, err)
	}
	return nil
}
