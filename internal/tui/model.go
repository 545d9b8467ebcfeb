package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/protocol"
	"github.com/lox/holdem-table/internal/table"
)

// Model is the Bubble Tea model driving the spectator/admin terminal view:
// a scrollback log plus a command line, fed by a Client's state/error
// channels (spec §4.7 projection, §6 commands).
type Model struct {
	client *Client
	logger *log.Logger

	view table.TableView

	log         []string
	logViewport viewport.Model
	input       textinput.Model

	width, height int
	quitting      bool
}

// stateMsg and errMsg wrap values read off the Client's channels into
// messages Bubble Tea can dispatch through Update.
type stateMsg protocol.State
type errMsg protocol.Error
type connClosedMsg struct{}

// NewModel builds the initial model around an already-dialed Client.
func NewModel(client *Client, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.Default()
	}
	vp := viewport.New(80, 10)
	ti := textinput.New()
	ti.Placeholder = "sit 0 1000 | start | call | raise 40 | fold | check | allin | quit"
	ti.Focus()
	ti.CharLimit = 80
	ti.Prompt = "> "

	return &Model{
		client:      client,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
		view:        table.TableView{TurnSeat: -1},
	}
}

// Init starts listening for server pushes and blinking the cursor.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForState(), m.waitForError())
}

func (m *Model) waitForState() tea.Cmd {
	return func() tea.Msg {
		s, ok := <-m.client.States
		if !ok {
			return connClosedMsg{}
		}
		return stateMsg(s)
	}
}

func (m *Model) waitForError() tea.Cmd {
	return func() tea.Msg {
		e, ok := <-m.client.Errors
		if !ok {
			return connClosedMsg{}
		}
		return errMsg(e)
	}
}

// Update handles incoming server pushes and local keystrokes.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.logViewport.Width = msg.Width
		m.logViewport.Height = msg.Height - 12
		m.input.Width = msg.Width - 4

	case stateMsg:
		m.view = msg.View
		m.logViewport.SetContent(strings.Join(m.log, "\n"))
		return m, m.waitForState()

	case errMsg:
		m.appendLog(errorStyle.Render("error: " + msg.Code))
		return m, m.waitForError()

	case connClosedMsg:
		m.appendLog(errorStyle.Render("connection closed"))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			_ = m.client.Close()
			return m, tea.Quit
		case "enter":
			cmdline := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if cmdline != "" {
				m.runCommand(cmdline)
			}
		case "pgup":
			m.logViewport.HalfPageUp()
			return m, nil
		case "pgdown":
			m.logViewport.HalfPageDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// appendLog records a line in the scrollback and refreshes the viewport.
func (m *Model) appendLog(line string) {
	m.log = append(m.log, line)
	m.logViewport.SetContent(strings.Join(m.log, "\n"))
	m.logViewport.GotoBottom()
}

// runCommand parses and dispatches a typed command line to the server.
func (m *Model) runCommand(line string) {
	fields := strings.Fields(line)
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	var err error
	switch verb {
	case "quit", "exit":
		m.quitting = true
		err = m.client.Close()
	case "name":
		if len(args) < 1 {
			err = fmt.Errorf("usage: name <display-name>")
			break
		}
		err = m.client.SetUsername(strings.Join(args, " "))
	case "owner":
		err = m.client.BecomeOwner()
	case "sit":
		if len(args) < 2 {
			err = fmt.Errorf("usage: sit <seat> <buyin>")
			break
		}
		seat, e1 := strconv.Atoi(args[0])
		buyIn, e2 := strconv.Atoi(args[1])
		if e1 != nil || e2 != nil {
			err = fmt.Errorf("usage: sit <seat> <buyin>")
			break
		}
		err = m.client.Sit(seat, buyIn)
	case "stand":
		err = m.client.Stand()
	case "kick":
		if len(args) < 1 {
			err = fmt.Errorf("usage: kick <seat>")
			break
		}
		seat, e := strconv.Atoi(args[0])
		if e != nil {
			err = fmt.Errorf("usage: kick <seat>")
			break
		}
		err = m.client.Kick(seat)
	case "start":
		err = m.client.StartHand()
	case "fold", "check", "call", "allin":
		kind := verb
		if verb == "allin" {
			kind = string(table.ActionAllIn)
		}
		err = m.client.Action(kind, 0)
	case "bet", "raise":
		if len(args) < 1 {
			err = fmt.Errorf("usage: %s <amount>", verb)
			break
		}
		amount, e := strconv.Atoi(args[0])
		if e != nil {
			err = fmt.Errorf("usage: %s <amount>", verb)
			break
		}
		err = m.client.Action(verb, amount)
	default:
		err = fmt.Errorf("unknown command %q", verb)
	}

	if err != nil {
		m.appendLog(errorStyle.Render(err.Error()))
	} else {
		m.appendLog(infoStyle.Render("> " + line))
	}
}

// View renders the table and scrollback.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	header := headerStyle.Render(fmt.Sprintf(" Hold'em — %s  blinds %d/%d ",
		m.view.Phase, m.view.SmallBlind, m.view.BigBlind)) +
		"  " + potStyle.Render(fmt.Sprintf("pot %d", m.view.PotTotal))

	community := renderCards(m.view.Community)

	var seats []string
	for i, sv := range m.view.Seats {
		seats = append(seats, renderSeat(i, sv))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"board: "+community,
		strings.Join(seats, "\n"),
		m.logViewport.View(),
		m.input.View(),
	)
	return body
}

func renderSeat(idx int, sv table.SeatView) string {
	style := seatStyle
	if sv.IsTurn {
		style = turnSeatStyle
	} else if sv.Folded {
		style = foldedSeatStyle
	}

	label := fmt.Sprintf("seat %d: empty", idx)
	if sv.Occupied {
		hole := "??"
		if sv.Hole != nil {
			hole = renderCards(sv.Hole[:])
		} else if sv.HasCards {
			hole = "[] []"
		}
		dealer := ""
		if sv.IsDealer {
			dealer = " (D)"
		}
		label = fmt.Sprintf("seat %d: %s%s stack=%d bet=%d %s",
			idx, sv.DisplayName, dealer, sv.Stack, sv.CurrentBet, hole)
	}
	return style.Render(label)
}

func renderCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "-"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		style := blackCardStyle
		if c.Suit == deck.Hearts || c.Suit == deck.Diamonds {
			style = redCardStyle
		}
		parts[i] = style.Render(c.String())
	}
	return strings.Join(parts, " ")
}
