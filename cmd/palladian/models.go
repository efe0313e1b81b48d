package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kittclouds/palladian/internal/store"
	"github.com/kittclouds/palladian/pkg/ner"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Manage stored models",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored models",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		models, err := s.ListModels(cmd.Context())
		if err != nil {
			return err
		}
		if models == nil {
			models = []store.ModelInfo{}
		}
		return output(cmd.OutOrStdout(), models)
	},
}

var modelsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the settings and size of a stored model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		m, err := s.LoadModel(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return output(cmd.OutOrStdout(), struct {
			Name     string       `json:"name" yaml:"name"`
			Settings ner.Settings `json:"settings" yaml:"settings"`
			Summary  ner.Summary  `json:"summary" yaml:"summary"`
		}{args[0], m.Settings(), m.Summary()})
	},
}

var modelsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		return s.DeleteModel(cmd.Context(), args[0])
	},
}

var modelsExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write every stored model to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		data, err := s.Export(cmd.Context())
		if err != nil {
			return err
		}
		return os.WriteFile(args[0], data, 0o644)
	},
}

var modelsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the stored models with an export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Import(cmd.Context(), data); err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelsListCmd, modelsShowCmd, modelsDeleteCmd, modelsExportCmd, modelsImportCmd)
}
