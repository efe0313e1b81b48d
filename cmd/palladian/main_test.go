package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const trainingCorpus = "Angela\tPER\nMerkel\tPER\nvisited\tO\nDresden\tLOC\n.\tO\n\n" +
	"Barack\tB-PER\nObama\tI-PER\nmet\tO\nAngela\tB-PER\nMerkel\tI-PER\nin\tO\nBerlin\tB-LOC\n.\tO\n"

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTrainTagEvaluate(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train.tsv"), []byte(trainingCorpus), 0o644))
	db := filepath.Join(dir, "models.db")

	out, err := run(t, "", "train", "--db", db, "--corpus", "*.tsv", "--name", "news", "-o", "yaml")
	require.NoError(t, err)
	var report trainReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, "news", report.Model.Name)
	assert.Equal(t, 2, report.Corpus.Sentences)

	out, err = run(t, "Angela Merkel visited Berlin.", "tag", "--db", db, "--model", "news", "-o", "yaml")
	require.NoError(t, err)
	var tagged []tagResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &tagged))
	require.Len(t, tagged, 1)
	assert.Equal(t, "-", tagged[0].Source)
	assert.NotEmpty(t, tagged[0].Annotations)
	assert.Equal(t, "Angela Merkel", tagged[0].Annotations[0].Value)
	assert.Equal(t, "PER", tagged[0].Annotations[0].Categories.MostLikelyName())

	out, err = run(t, "", "evaluate", "--db", db, "--model", "news", "--corpus", "train.tsv", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"CORRECT"`)

	out, err = run(t, "", "models", "list", "--db", db, "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: news")

	_, err = run(t, "", "models", "delete", "--db", db, "news")
	require.NoError(t, err)
	_, err = run(t, "", "models", "delete", "--db", db, "news")
	assert.Error(t, err)
}

func TestUnknownOutputFormat(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := run(t, "", "models", "list", "--db", ":memory:", "-o", "xml")
	assert.Error(t, err)
	outputFormat = formatYAML
}
