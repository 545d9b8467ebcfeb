package server

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-table/internal/protocol"
	"github.com/lox/holdem-table/internal/table"
)

// broadcastTimeout bounds how long the session waits for every connection's
// send to be enqueued before acking the command that triggered it.
const broadcastTimeout = 2 * time.Second

// command is one decoded client request queued onto the session's single
// writer goroutine — the same serialization model the engine itself assumes
// (spec §5: one goroutine owns table state, no mutex contention).
type command struct {
	conn *Connection
	env  protocol.Envelope
	done chan struct{} // closed once idle-timer commands are applied; nil for client commands
}

// Session is one running table plus every connection attached to it. All
// mutation of the embedded Table happens on the run() goroutine; everything
// else only ever reads through View via a broadcast.
type Session struct {
	logger *log.Logger
	table  *table.Table

	cmds chan command

	mu    sync.Mutex
	conns map[*Connection]struct{}
}

// NewSession constructs a session around a fresh idle table and starts its
// single-writer command loop.
func NewSession(logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{
		logger: logger.WithPrefix("session"),
		cmds:   make(chan command, 64),
		conns:  make(map[*Connection]struct{}),
	}
	s.table = table.NewTable(rand.New(rand.NewSource(time.Now().UnixNano())), quartz.NewReal(), logger)
	s.table.OnIdleTimeout = func() {
		done := make(chan struct{})
		s.cmds <- command{done: done}
		<-done
	}
	go s.run()
	return s
}

// register adds conn to the broadcast set and immediately sends it the
// current view.
func (s *Session) register(conn *Connection) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
	_ = conn.SendMessage(s.stateFor(conn.clientRef))
}

// unregister drops conn from the broadcast set and queues a stand for its
// client, so a disconnect folds and frees the seat (and clears ownership)
// through the single writer like any other command.
func (s *Session) unregister(conn *Connection) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	s.cmds <- command{conn: conn, env: protocol.Envelope{Type: protocol.TypeStand}}
}

// handle queues a decoded command for the single writer goroutine. Called
// from each connection's readPump goroutine.
func (s *Session) handle(conn *Connection, env protocol.Envelope) {
	s.cmds <- command{conn: conn, env: env}
}

// run is the single writer: every table mutation happens here, one command
// at a time, followed by a broadcast of the resulting state.
func (s *Session) run() {
	for cmd := range s.cmds {
		if cmd.conn == nil {
			// Idle-timer callback: just finish the hand and broadcast.
			s.table.FinishHand()
			s.broadcast()
			close(cmd.done)
			continue
		}
		if err := s.apply(cmd.conn, cmd.env); err != nil {
			_ = cmd.conn.SendMessage(protocol.Envelope{Type: protocol.TypeError})
			env, encErr := protocol.Encode(protocol.TypeError, protocol.Error{Code: err.Error()})
			if encErr == nil {
				_ = cmd.conn.SendMessage(env)
			}
			continue
		}
		s.broadcast()
	}
}

func (s *Session) apply(conn *Connection, env protocol.Envelope) error {
	clientRef := conn.clientRef
	switch env.Type {
	case protocol.TypeSetUsername:
		var msg protocol.SetUsername
		if err := protocol.DecodePayload(env, &msg); err != nil {
			return err
		}
		return s.table.SetUsername(clientRef, msg.Name)

	case protocol.TypeBecomeOwner:
		return s.table.ClaimOwner(clientRef)

	case protocol.TypeSit:
		var msg protocol.Sit
		if err := protocol.DecodePayload(env, &msg); err != nil {
			return err
		}
		return s.table.Sit(msg.Seat, clientRef, "", msg.BuyIn)

	case protocol.TypeStand:
		return s.table.Stand(clientRef)

	case protocol.TypeKick:
		var msg protocol.Kick
		if err := protocol.DecodePayload(env, &msg); err != nil {
			return err
		}
		return s.table.Kick(clientRef, msg.Seat)

	case protocol.TypeStartHand:
		return s.table.StartHand(clientRef)

	case protocol.TypeAction:
		var msg protocol.Action
		if err := protocol.DecodePayload(env, &msg); err != nil {
			return err
		}
		return s.table.Action(clientRef, table.ActionKind(msg.Kind), msg.Amount)

	default:
		return table.ErrUnknownAction
	}
}

// broadcast fans the current per-viewer projection out to every connection
// concurrently, waiting for all sends (or the broadcast timeout) before
// returning — generalizing the evaluator's worker-pool use of errgroup into
// parallel client fan-out.
func (s *Session) broadcast() {
	s.mu.Lock()
	recipients := make([]*Connection, 0, len(s.conns))
	for c := range s.conns {
		recipients = append(recipients, c)
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), broadcastTimeout)
	defer cancel()

	g, _ := errgroup.WithContext(ctx)
	for _, conn := range recipients {
		conn := conn
		g.Go(func() error {
			return conn.SendMessage(s.stateFor(conn.clientRef))
		})
	}
	waitErr := make(chan error, 1)
	go func() { waitErr <- g.Wait() }()
	select {
	case err := <-waitErr:
		if err != nil {
			s.logger.Warn("broadcast incomplete", "error", err)
		}
	case <-ctx.Done():
		s.logger.Warn("broadcast incomplete", "error", ctx.Err())
	}
}

func (s *Session) stateFor(viewerRef string) protocol.Envelope {
	view := s.table.View(viewerRef)
	env, err := protocol.Encode(protocol.TypeState, protocol.State{View: view})
	if err != nil {
		s.logger.Error("encoding state", "error", err)
		return protocol.Envelope{Type: protocol.TypeError}
	}
	return env
}

// NewClientRef mints a fresh per-connection identity.
func NewClientRef() string {
	return uuid.NewString()
}
