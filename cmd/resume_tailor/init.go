package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/resumes"
	"github.com/jonathan/resume-tailor/internal/types"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example resume to fill in",
	RunE:  runInit,
}

var (
	initOutput string
	initForce  bool
)

func init() {
	initCmd.Flags().StringVarP(&initOutput, "output", "o", resumes.DefaultPath, "Where to write the example resume")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(initOutput); err == nil && !initForce {
		return fmt.Errorf("%s already exists; use --force to overwrite it", initOutput)
	}

	if err := resumes.Save(initOutput, types.ExampleResume()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Example resume written to %s\n", initOutput)
	return nil
}
