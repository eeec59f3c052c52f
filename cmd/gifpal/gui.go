package main

import (
	"fmt"
	"os"

	"gifpal/internal/gui"
	"gifpal/internal/log"
	"gifpal/internal/store"

	"github.com/spf13/cobra"
)

// runGUI launches the GUI directly
func runGUI() error {
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}

	lib, guard := buildLibrary(cfg, cfgPath)
	creds := loadCredentials()

	// The GUI keeps working without history if the database fails.
	var history *store.Manager
	if dbPath, err := store.DefaultPath(); err == nil {
		history = store.NewManager(dbPath)
		if err := history.Open(); err != nil {
			log.Warnf("History database unavailable: %v", err)
			history = nil
		}
	}

	guiApp := gui.NewApp(cfg, guard, cfgPath, lib, history, creds)
	guiApp.Run()

	return nil
}

// guiCmd creates the GUI command for the CLI
func guiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Launch the graphical user interface",
		Long:  `Launch the GUI with the system tray icon, library manager and GIF search.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runGUI(); err != nil {
				fmt.Printf("Error launching GUI: %v\n", err)
				os.Exit(1)
			}
		},
	}
}
