// Command holdem-tui is a terminal spectator/admin client for a running
// holdem-server table.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/holdem-table/internal/tui"
)

var cli struct {
	Server string `short:"s" long:"server" default:"http://localhost:8080" help:"holdem-server base URL"`
}

func main() {
	kong.Parse(&cli)

	logger := log.New(os.Stderr)
	logger.SetColorProfile(termenv.TrueColor)
	logger.SetLevel(log.WarnLevel) // keep stderr quiet; the TUI owns the screen

	client, err := tui.Dial(cli.Server, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "holdem-tui: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	model := tui.NewModel(client, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "holdem-tui: %v\n", err)
		os.Exit(1)
	}
}
