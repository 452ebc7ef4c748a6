package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/analysis"
	"github.com/jonathan/resume-tailor/internal/observability"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Extract skills, experience and education requirements from a job description",
	Long:  "Reads a job description from a file, URL or --text and prints the detected job signals as JSON.",
	RunE:  runAnalyze,
}

var (
	analyzeJob        string
	analyzeJobURL     string
	analyzeText       string
	analyzeTokenizer  string
	analyzeVocabulary string
	analyzeUseBrowser bool
	analyzeVerbose    bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to job description file")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL to fetch the job description from")
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "Job description text")
	analyzeCmd.Flags().StringVar(&analyzeTokenizer, "tokenizer", string(analysis.StrategyTreebank), "Tokenizer: treebank or whitespace")
	analyzeCmd.Flags().StringVar(&analyzeVocabulary, "vocabulary", "", "Path to a YAML skill vocabulary")
	analyzeCmd.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Use headless browser for SPA job pages (requires Chrome)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Also print a boxed summary")

	analyzeCmd.MarkFlagsMutuallyExclusive("job", "job-url", "text")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	jobText := analyzeText
	if jobText == "" {
		text, err := readJob(cmd.Context(), analyzeJob, analyzeJobURL, analyzeUseBrowser, analyzeVerbose)
		if err != nil {
			return err
		}
		jobText = text
	}

	vocab, err := loadVocabulary(analyzeVocabulary)
	if err != nil {
		return err
	}
	tok, _ := analysis.NewTokenizer(analysis.Strategy(analyzeTokenizer))
	signals := analysis.NewExtractor(vocab, tok).Extract(jobText)

	if analyzeVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintJobSignals(signals)
	}

	data, err := json.MarshalIndent(signals, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode job signals: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}
