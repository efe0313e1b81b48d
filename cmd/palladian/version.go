package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/kittclouds/palladian/internal/store"
)

// Set with -ldflags "-X main.gitRelease=... -X main.gitCommit=...".
var (
	gitRelease = "dev"
	gitCommit  = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "palladian %s\n", gitRelease)
		fmt.Fprintf(w, "  Go:      %s\n", runtime.Version())
		fmt.Fprintf(w, "  Commit:  %s\n", gitCommit)

		s, err := store.NewSQLiteStore()
		if err != nil {
			return err
		}
		defer s.Close()
		sqlite, vec, err := s.Versions(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  SQLite:  %s (sqlite-vec %s)\n", sqlite, vec)
		return nil
	},
}
