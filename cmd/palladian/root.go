package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kittclouds/palladian/internal/config"
	"github.com/kittclouds/palladian/internal/store"
	"github.com/kittclouds/palladian/pkg/ner"
)

var (
	cfgFile      string
	dbPath       string
	outputFormat string
	verbose      bool

	logger = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:   "palladian",
	Short: "Dictionary based named entity recognition",
	Long: `Palladian trains dictionary based named entity recognizers from
column-format corpora and tags plain text with them.

Models are stored by name in a SQLite database:
  palladian train --corpus 'data/**/*.tsv' --name news
  palladian tag --model news article.txt
  palladian evaluate --model news --corpus test.tsv`,
	Version:      gitRelease,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch outputFormat {
		case formatYAML, formatJSON:
		default:
			return fmt.Errorf("unknown output format %q", outputFormat)
		}
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./palladian.yaml or ~/.palladian/palladian.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&dbPath, "db", "palladian.db", "model database",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", formatYAML, "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "log progress to stderr",
	)

	rootCmd.AddCommand(trainCmd, tagCmd, evaluateCmd, modelsCmd, versionCmd)
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStoreWithDSN(dbPath)
}

func loadSettings(mode string) (ner.Settings, error) {
	return config.Load(cfgFile, ner.LanguageMode(mode))
}
