package main

import (
	"fmt"
	"os"

	"gifpal/internal/config"
	"gifpal/internal/library"
	"gifpal/internal/log"
	"gifpal/internal/search"

	"github.com/spf13/cobra"
)

var (
	version = "dev"

	cfgFile string
	debug   bool
)

// Entry point for the application
func main() {
	rootCmd := &cobra.Command{
		Use:     "gifpal",
		Short:   "A desktop GIF companion",
		Long:    `gifpal periodically pops animated GIFs from your own library onto the screen. Manage the library, search Giphy and Tenor for new GIFs, and tune the schedule.`,
		Version: version,
		// Running gifpal without a subcommand opens the GUI
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/gifpal/config.json)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	cobra.OnInitialize(func() {
		if debug {
			log.SetDebug(true)
		}
	})

	// Add subcommands
	rootCmd.AddCommand(guiCmd())
	rootCmd.AddCommand(tuiCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(libraryCmd())
	rootCmd.AddCommand(historyCmd())

	// Execute the command
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadConfig loads the configuration from the --config flag or the
// default path. A missing file yields the defaults; an unreadable or
// invalid one falls back to the defaults with a warning so the app
// still opens.
func loadConfig() (*config.Config, string, error) {
	path := cfgFile
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, "", err
		}
	}

	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		fmt.Printf("Warning: Could not load config: %v. Using default settings.\n", err)
		cfg = config.New()
	}
	return cfg, path, nil
}

// buildLibrary creates the library manager wired to persist back to
// the config file, sharing one config guard between the manager and
// anything else that touches the record.
func buildLibrary(cfg *config.Config, path string) (*library.Manager, *config.Guard) {
	guard := config.NewGuard(cfg)
	lib := library.NewManager(guard, func() error {
		return config.SaveConfig(cfg, path)
	})
	return lib, guard
}

// loadCredentials reads the provider API keys from the credentials
// file and the environment.
func loadCredentials() search.Credentials {
	path, err := search.DefaultCredentialsPath()
	if err != nil {
		log.Warnf("Could not locate credentials file: %v", err)
		return search.Credentials{}
	}
	creds, err := search.LoadCredentials(path)
	if err != nil {
		log.Warnf("Could not read credentials: %v", err)
	}
	return creds
}
