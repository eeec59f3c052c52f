package main

import (
	"fmt"
	"time"

	"gifpal/internal/store"

	"github.com/spf13/cobra"
)

// historyCmd shows the download and search history
func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent downloads and searches",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := store.DefaultPath()
			if err != nil {
				return err
			}
			history := store.NewManager(dbPath)
			if err := history.Open(); err != nil {
				return err
			}
			defer history.Close()

			downloads, err := history.RecentDownloads(limit)
			if err != nil {
				return err
			}
			searches, err := history.RecentSearches(limit)
			if err != nil {
				return err
			}

			if len(downloads) == 0 && len(searches) == 0 {
				fmt.Println("No history yet.")
				return nil
			}

			if len(downloads) > 0 {
				fmt.Println("Recent downloads:")
				for _, d := range downloads {
					when := time.Unix(d.TimeStampUnix, 0).Format("2006-01-02 15:04")
					fmt.Printf("  %s  %-8s %s\n", when, d.Provider, d.Title)
				}
			}
			if len(searches) > 0 {
				fmt.Println("Recent searches:")
				for _, s := range searches {
					when := time.Unix(s.TimeStampUnix, 0).Format("2006-01-02 15:04")
					fmt.Printf("  %s  %-8s %q (%d results)\n", when, s.Provider, s.Term, s.Results)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "number of entries to show")
	return cmd
}
