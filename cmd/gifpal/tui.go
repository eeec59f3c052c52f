package main

import (
	"fmt"

	"gifpal/internal/schedule"
	"gifpal/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// tuiCmd creates the TUI command for the CLI
func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the terminal interface",
		Long:  `Manage the library and the display cycle from the terminal. Overlays are logged instead of drawn; use the GUI for real overlay windows.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cfgPath, err := loadConfig()
			if err != nil {
				return err
			}

			lib, guard := buildLibrary(cfg, cfgPath)
			scheduler := schedule.New(lib, schedule.LogDisplay{}, schedule.FromConfig(guard))
			defer scheduler.Stop()

			model := tui.New(cfg, lib, scheduler, loadCredentials())
			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
}
