package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gifpal/internal/log"
	"gifpal/internal/search"
	"gifpal/internal/store"

	"github.com/spf13/cobra"
)

// searchCmd represents the search command
func searchCmd() *cobra.Command {
	var sourceName string
	var limit int
	var download bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the web for GIFs",
		Long:  `Search Giphy or Tenor for GIFs. With --download, every result is saved to the download folder and added to the library. With --json, results are printed as JSON for scripting.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			cfg, cfgPath, err := loadConfig()
			if err != nil {
				return err
			}
			if sourceName == "" {
				sourceName = cfg.SearchProvider
			}

			provider, err := search.New(sourceName, loadCredentials())
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			results, err := provider.Search(ctx, query, limit)
			if err != nil {
				return err
			}
			recordSearch(query, provider.Name(), len(results))

			if asJSON {
				if results == nil {
					results = []search.Result{}
				}
				out, err := json.MarshalIndent(results, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode results: %w", err)
				}
				fmt.Println(string(out))
				if !download {
					return nil
				}
			} else {
				if len(results) == 0 {
					fmt.Println("No GIFs found.")
					return nil
				}

				fmt.Printf("%d results for %q on %s:\n", len(results), query, provider.Name())
				for i, r := range results {
					title := r.Title
					if title == "" {
						title = r.ID
					}
					fmt.Printf("  %2d. %s (%dx%d)\n", i+1, title, r.Width, r.Height)
				}
			}

			if !download {
				return nil
			}

			lib, _ := buildLibrary(cfg, cfgPath)
			saved := 0
			for _, r := range results {
				dlCtx, dlCancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
				path, existed, err := search.Download(dlCtx, r, cfg.DownloadLocation)
				dlCancel()
				if err != nil {
					fmt.Printf("  failed: %s: %v\n", r.Title, err)
					continue
				}
				if existed {
					continue
				}
				if err := lib.Add(path); err != nil {
					fmt.Printf("  not added: %s: %v\n", path, err)
					continue
				}
				recordDownload(r, path)
				saved++
			}
			fmt.Printf("\nSaved %d new GIFs to %s\n", saved, cfg.DownloadLocation)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceName, "source", "s", "", "search source: giphy or tenor (defaults to the configured one)")
	cmd.Flags().IntVarP(&limit, "limit", "l", search.DefaultLimit, "maximum number of results")
	cmd.Flags().BoolVarP(&download, "download", "D", false, "download all results into the library")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")

	return cmd
}

// recordSearch writes the query to the history database, best effort.
func recordSearch(query, provider string, results int) {
	withHistory(func(h *store.Manager) error {
		return h.RecordSearch(query, provider, results)
	})
}

// recordDownload writes a saved GIF to the history database, best
// effort.
func recordDownload(r search.Result, path string) {
	withHistory(func(h *store.Manager) error {
		return h.RecordDownload(r.Provider, r.ID, r.Title, r.URL, path)
	})
}

func withHistory(fn func(*store.Manager) error) {
	dbPath, err := store.DefaultPath()
	if err != nil {
		return
	}
	history := store.NewManager(dbPath)
	if err := history.Open(); err != nil {
		log.Debugf("History database unavailable: %v", err)
		return
	}
	defer history.Close()
	if err := fn(history); err != nil {
		log.Warnf("Failed to update history: %v", err)
	}
}
