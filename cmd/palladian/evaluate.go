package main

import (
	"github.com/spf13/cobra"

	"github.com/kittclouds/palladian/pkg/corpus"
	"github.com/kittclouds/palladian/pkg/ner"
)

var (
	evalModel  string
	evalCorpus string
	evalErrors bool
)

type evaluationReport struct {
	Counts map[string]int `json:"counts" yaml:"counts"`
	Exact  []ner.Score    `json:"exact" yaml:"exact"`
	MUC    []ner.Score    `json:"muc" yaml:"muc"`
	Errors []ner.Match    `json:"errors,omitempty" yaml:"errors,omitempty"`
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a stored model on a column-format test corpus",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		model, err := s.LoadModel(ctx, evalModel)
		if err != nil {
			return err
		}
		docs, _, err := corpus.ReadColumnFiles(evalCorpus, corpus.WithLogger(logger))
		if err != nil {
			return err
		}

		e, err := ner.Evaluate(ctx, ner.NewTagger(model, ner.WithLogger(logger)), docs)
		if err != nil {
			return err
		}

		report := evaluationReport{
			Counts: make(map[string]int),
			Exact:  e.Scores(ner.Exact),
			MUC:    e.Scores(ner.MUC),
		}
		for _, o := range []ner.Outcome{ner.Correct, ner.Error1, ner.Error2, ner.Error3, ner.Error4, ner.Error5} {
			report.Counts[o.String()] = e.Count(o)
		}
		if evalErrors {
			for _, m := range e.Matches {
				if m.Outcome != ner.Correct {
					report.Errors = append(report.Errors, m)
				}
			}
		}
		return output(cmd.OutOrStdout(), report)
	},
}

func init() {
	evaluateCmd.Flags().StringVarP(&evalModel, "model", "m", "", "name of the stored model")
	evaluateCmd.Flags().StringVar(&evalCorpus, "corpus", "", "column-format test files (glob, ** allowed)")
	evaluateCmd.Flags().BoolVar(&evalErrors, "errors", false, "list every wrong or missed annotation")
	evaluateCmd.MarkFlagRequired("model")
	evaluateCmd.MarkFlagRequired("corpus")
}
