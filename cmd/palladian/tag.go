package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kittclouds/palladian/pkg/annotation"
	"github.com/kittclouds/palladian/pkg/docstore"
	"github.com/kittclouds/palladian/pkg/ner"
)

var (
	tagModel       string
	tagConcurrency int
)

type tagResult struct {
	Source      string                            `json:"source" yaml:"source"`
	Annotations []annotation.ClassifiedAnnotation `json:"annotations" yaml:"annotations"`
	Error       string                            `json:"error,omitempty" yaml:"error,omitempty"`
}

var tagCmd = &cobra.Command{
	Use:   "tag [file...]",
	Short: "Tag text files, or stdin when no file is given",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		model, err := s.LoadModel(ctx, tagModel)
		if err != nil {
			return err
		}

		docs := docstore.New()
		if len(args) == 0 {
			text, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			docs.Upsert("-", string(text), 1)
		}
		for _, path := range args {
			text, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			docs.Upsert(path, string(text), 1)
		}

		tagger := ner.NewTagger(model, ner.WithLogger(logger))
		failed, err := ner.AnnotateAll(ctx, tagger, docs, tagConcurrency)
		if err != nil {
			return err
		}

		results := docs.Results()
		out := make([]tagResult, len(results))
		for i, r := range results {
			out[i] = tagResult{Source: r.ID, Annotations: r.Annotations}
			if r.Err != nil {
				out[i].Error = r.Err.Error()
			}
		}
		if err := output(cmd.OutOrStdout(), out); err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d documents failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	tagCmd.Flags().StringVarP(&tagModel, "model", "m", "", "name of the stored model")
	tagCmd.Flags().IntVarP(&tagConcurrency, "concurrency", "j", 0, "documents tagged in parallel (default: GOMAXPROCS)")
	tagCmd.MarkFlagRequired("model")
}
