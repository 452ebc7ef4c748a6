// Package main provides the resume_tailor command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_tailor",
	Short: "Tailor a JSON resume to a job description",
	Long: `resume_tailor reads a JSON resume and a job description, ranks the resume's
experience, projects and skills by relevance to the job, trims content to fit a
page budget, and renders the result as Markdown, JSON, HTML or LaTeX.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
