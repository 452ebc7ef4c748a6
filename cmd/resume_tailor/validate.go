package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate resume JSON files against the resume schema",
	Long: `Validates each file against the built-in resume schema. With --tailored the
jobAnalysis section written by "tailor --format json" is required as well.
--schema validates against a custom JSON Schema file instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

var (
	validateTailored bool
	validateSchema   string
)

func init() {
	validateCmd.Flags().BoolVar(&validateTailored, "tailored", false, "Require the jobAnalysis section of a tailored resume")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a JSON Schema file to validate against")

	validateCmd.MarkFlagsMutuallyExclusive("tailored", "schema")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0

	for _, path := range args {
		if err := validateFile(path); err != nil {
			failed++
			fmt.Fprintf(out, "✗ %s\n%v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "✓ %s is valid\n", path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(args))
	}
	return nil
}

func validateFile(path string) error {
	if validateSchema != "" {
		return schemas.ValidateJSON(validateSchema, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if validateTailored {
		return schemas.ValidateTailoredResume(data)
	}
	return schemas.ValidateResume(data)
}
