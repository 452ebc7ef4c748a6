package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/analysis"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/ranking"
	"github.com/jonathan/resume-tailor/internal/resumes"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Reorder a resume by relevance to a job description without trimming it",
	Long: `Ranks work experience, projects and skills by how well they match the job
description and prints the reordered resume as JSON. Nothing is removed.`,
	RunE: runRank,
}

var (
	rankResume     string
	rankJob        string
	rankJobURL     string
	rankOutput     string
	rankTokenizer  string
	rankVocabulary string
	rankUseBrowser bool
	rankScores     bool
)

func init() {
	rankCmd.Flags().StringVarP(&rankResume, "resume", "r", resumes.DefaultPath, "Path to the JSON resume")
	rankCmd.Flags().StringVarP(&rankJob, "job", "j", "", "Path to job description file")
	rankCmd.Flags().StringVar(&rankJobURL, "job-url", "", "URL to fetch the job description from")
	rankCmd.Flags().StringVarP(&rankOutput, "output", "o", "", "Write the ranked resume to this file instead of stdout")
	rankCmd.Flags().StringVar(&rankTokenizer, "tokenizer", string(analysis.StrategyTreebank), "Tokenizer: treebank or whitespace")
	rankCmd.Flags().StringVar(&rankVocabulary, "vocabulary", "", "Path to a YAML skill vocabulary")
	rankCmd.Flags().BoolVar(&rankUseBrowser, "use-browser", false, "Use headless browser for SPA job pages (requires Chrome)")
	rankCmd.Flags().BoolVar(&rankScores, "scores", false, "Print per-item relevance scores to stderr")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	jobText, err := readJob(cmd.Context(), rankJob, rankJobURL, rankUseBrowser, false)
	if err != nil {
		return err
	}

	resume, err := resumes.Load(rankResume)
	if err != nil {
		return err
	}

	vocab, err := loadVocabulary(rankVocabulary)
	if err != nil {
		return err
	}
	tok, _ := analysis.NewTokenizer(analysis.Strategy(rankTokenizer))
	signals := analysis.NewExtractor(vocab, tok).Extract(jobText)
	ranked := ranking.NewRanker(ranking.NewScorer(tok)).RankWithScores(resume, signals)

	if rankScores {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintRankedResume(ranked)
	}

	data, err := resumes.Marshal(ranked.Resume)
	if err != nil {
		return err
	}
	if rankOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := writeFile(rankOutput, string(data)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Ranked resume saved to %s\n", rankOutput)
	return nil
}
