package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kittclouds/palladian/internal/store"
	"github.com/kittclouds/palladian/pkg/corpus"
	"github.com/kittclouds/palladian/pkg/ner"
)

var (
	trainCorpus   string
	trainSeeds    string
	trainName     string
	trainMode     string
	trainTraining string
	trainEqualize bool
)

type trainReport struct {
	Model   store.ModelInfo `json:"model" yaml:"model"`
	Corpus  corpus.Stats    `json:"corpus" yaml:"corpus"`
	Seeds   int             `json:"seeds" yaml:"seeds"`
	Summary ner.Summary     `json:"summary" yaml:"summary"`
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a model and store it under a name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		settings, err := loadSettings(trainMode)
		if err != nil {
			return err
		}
		if trainTraining != "" {
			settings.TrainingMode = ner.TrainingMode(trainTraining)
		}
		if cmd.Flags().Changed("equalize") {
			settings.EqualizeTypeCounts = trainEqualize
		}

		var docs []corpus.Document
		var stats corpus.Stats
		if trainCorpus != "" {
			docs, stats, err = corpus.ReadColumnFiles(trainCorpus, corpus.WithLogger(logger))
			if err != nil {
				return err
			}
		}
		var seeds []corpus.Seed
		if trainSeeds != "" {
			seeds, _, err = corpus.ReadSeedsFile(trainSeeds, corpus.WithLogger(logger))
			if err != nil {
				return err
			}
		}

		trainer, err := ner.NewTrainer(settings, ner.WithLogger(logger))
		if err != nil {
			return err
		}
		model, err := trainer.Train(ctx, docs, seeds)
		if err != nil {
			return fmt.Errorf("train %s: %w", trainName, err)
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		info, err := s.SaveModel(ctx, trainName, model)
		if err != nil {
			return err
		}
		return output(cmd.OutOrStdout(), trainReport{
			Model:   info,
			Corpus:  stats,
			Seeds:   len(seeds),
			Summary: model.Summary(),
		})
	},
}

func init() {
	trainCmd.Flags().StringVar(&trainCorpus, "corpus", "", "column-format training files (glob, ** allowed)")
	trainCmd.Flags().StringVar(&trainSeeds, "seeds", "", "seed annotations file (value<TAB>tag per line)")
	trainCmd.Flags().StringVar(&trainName, "name", "", "name to store the model under")
	trainCmd.Flags().StringVar(&trainMode, "mode", "", "language mode: english or language_independent")
	trainCmd.Flags().StringVar(&trainTraining, "training", "", "training mode: sparse or complete")
	trainCmd.Flags().BoolVar(&trainEqualize, "equalize", false, "equalize the number of training instances per type")
	trainCmd.MarkFlagRequired("name")
}
