package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// libraryCmd represents the library command and its subcommands
func libraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage the GIF library",
		Long:  `List, add, remove and scan for GIFs in the library.`,
	}

	cmd.AddCommand(libraryListCmd())
	cmd.AddCommand(libraryAddCmd())
	cmd.AddCommand(libraryRemoveCmd())
	cmd.AddCommand(libraryScanCmd())

	return cmd
}

func libraryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the GIFs in the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cfgPath, err := loadConfig()
			if err != nil {
				return err
			}
			lib, _ := buildLibrary(cfg, cfgPath)

			entries := lib.Entries()
			if len(entries) == 0 {
				fmt.Println("The library is empty.")
				return nil
			}

			fmt.Printf("%d GIFs in the library:\n", len(entries))
			for _, entry := range entries {
				marker := " "
				if !entry.Valid {
					marker = "!"
				}
				fmt.Printf("  %s %s\n", marker, entry.Path)
			}
			return nil
		},
	}
}

func libraryAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <gif>...",
		Short: "Add GIF files to the library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cfgPath, err := loadConfig()
			if err != nil {
				return err
			}
			lib, _ := buildLibrary(cfg, cfgPath)

			for _, arg := range args {
				path, err := filepath.Abs(arg)
				if err != nil {
					return err
				}
				if err := lib.Add(path); err != nil {
					fmt.Printf("  not added: %s: %v\n", arg, err)
					continue
				}
				fmt.Printf("  added: %s\n", path)
			}
			return nil
		},
	}
}

func libraryRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <gif>...",
		Short: "Remove GIFs from the library",
		Long:  `Remove GIFs from the library. The files themselves are not deleted.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cfgPath, err := loadConfig()
			if err != nil {
				return err
			}
			lib, _ := buildLibrary(cfg, cfgPath)

			for _, arg := range args {
				path, err := filepath.Abs(arg)
				if err != nil {
					return err
				}
				lib.Remove(path)
				fmt.Printf("  removed: %s\n", path)
			}
			return nil
		},
	}
}

func libraryScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <directory>",
		Short: "Add every GIF found under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cfgPath, err := loadConfig()
			if err != nil {
				return err
			}
			lib, _ := buildLibrary(cfg, cfgPath)

			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			added, err := lib.ScanDir(dir)
			if err != nil {
				return err
			}
			fmt.Printf("Added %d GIFs from %s (library now holds %d)\n", added, dir, lib.Len())
			return nil
		},
	}
}
