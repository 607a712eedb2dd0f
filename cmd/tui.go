package cmd

import (
	"fmt"

	"github.com/tntzzxwife/my-order-app/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive order manager (same as default)",
	Long: `Start the Terminal User Interface (TUI) for managing orders.
It shows the searchable order table, the add-order form and the bulk
status/delete actions.

Note: This is the same as running the program without any commands.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		tui.NewModel(s),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
