package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/kanaflash/internal/config"
	"github.com/vytor/kanaflash/internal/loader"
	"github.com/vytor/kanaflash/internal/models"
	"github.com/vytor/kanaflash/internal/session"
)

const (
	defaultDataDir      = "web/data"
	defaultDatasetsFile = "datasets.toml"
	defaultTimeout      = 10 * time.Second
	sampleSize          = 5
)

type options struct {
	dataDir      string
	baseURL      string
	datasetsFile string
	timeout      time.Duration
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "datacheck",
		Short:         "Validate kana, kanji and quiz datasets",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", defaultDataDir, "directory holding {name}.json datasets")
	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "fetch datasets from this URL instead of --data-dir")
	rootCmd.PersistentFlags().StringVar(&opts.datasetsFile, "datasets-file", defaultDatasetsFile, "flashcard dataset registry (TOML)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", defaultTimeout, "per-request fetch timeout")

	rootCmd.AddCommand(newSetsCmd(opts))
	rootCmd.AddCommand(newQuizCmd(opts))
	return rootCmd
}

func (o *options) loader() *loader.Loader {
	return loader.New(loader.NewSource(o.dataDir, o.baseURL, o.timeout))
}

func newSetsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sets [NAME...]",
		Short: "Load flashcard sets and print their sizes",
		Long:  "Load flashcard sets (all registered sets when no name is given) and print their sizes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSets(cmd, opts, args)
		},
	}
}

func runSets(cmd *cobra.Command, opts *options, names []string) error {
	if len(names) == 0 {
		datasets, err := config.LoadDatasets(opts.datasetsFile)
		if err != nil {
			return fmt.Errorf("failed to read dataset registry: %w", err)
		}
		names = datasets.Names()
	}

	sets, err := opts.loader().LoadEntrySets(context.Background(), names)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		entries := sets[name]
		var kana, kanji int
		for _, e := range entries {
			if e.Kind == models.KindKana {
				kana++
			} else {
				kanji++
			}
		}
		rows = append(rows, []string{
			name,
			strconv.Itoa(len(entries)),
			strconv.Itoa(kana),
			strconv.Itoa(kanji),
			sampleGlyphs(entries),
		})
	}

	lines := formatTable([]string{"SET", "ENTRIES", "KANA", "KANJI", "SAMPLE"}, rows, map[int]bool{1: true, 2: true, 3: true})
	return writeLines(cmd, lines)
}

func sampleGlyphs(entries []models.CharacterEntry) string {
	n := min(len(entries), sampleSize)
	glyphs := make([]string, 0, n)
	for _, e := range entries[:n] {
		glyphs = append(glyphs, e.Glyph)
	}
	return strings.Join(glyphs, " ")
}

func newQuizCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "quiz NAME...",
		Short: "Load quiz sets and check they can back a multiple-choice session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuiz(cmd, opts, args)
		},
	}
}

func runQuiz(cmd *cobra.Command, opts *options, names []string) error {
	l := opts.loader()
	ctx := context.Background()

	var failed []string
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		items, err := l.LoadQuiz(ctx, name)
		if err != nil {
			failed = append(failed, name)
			rows = append(rows, []string{name, "-", "-", "-", err.Error()})
			continue
		}

		meanings := make(map[string]struct{}, len(items))
		for _, it := range items {
			meanings[it.Meaning] = struct{}{}
		}

		status := "ok"
		if err := session.CheckQuizPool(items); err != nil {
			failed = append(failed, name)
			status = err.Error()
		}
		rows = append(rows, []string{
			name,
			strconv.Itoa(len(items)),
			strconv.Itoa(len(meanings)),
			strconv.Itoa(session.DefaultCount(len(items))),
			status,
		})
	}

	lines := formatTable([]string{"QUIZ", "ITEMS", "MEANINGS", "DEFAULT", "STATUS"}, rows, map[int]bool{1: true, 2: true, 3: true})
	if err := writeLines(cmd, lines); err != nil {
		return err
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d quiz sets failed: %s", len(failed), len(names), strings.Join(failed, ", "))
	}
	return nil
}

func writeLines(cmd *cobra.Command, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
