package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/resumes"
	"github.com/jonathan/resume-tailor/internal/types"
)

// TestMain runs before all tests and loads .env if available
func TestMain(m *testing.M) {
	_ = godotenv.Load()
	os.Exit(m.Run())
}

const testJob = `Senior Backend Engineer

We are looking for an engineer with 5+ years of experience building services
in Python and Go. Experience with PostgreSQL, Docker and Kubernetes is a plus.
A Bachelor's degree in Computer Science or equivalent is required.`

// runCLI executes the root command in-process and returns everything it wrote.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so package-level flag
// variables do not leak between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// writeFixtures writes the example resume and a job description into a temp
// directory and returns the directory with both paths.
func writeFixtures(t *testing.T) (dir, resumePath, jobPath string) {
	t.Helper()
	dir = t.TempDir()
	resumePath = filepath.Join(dir, "resume.json")
	jobPath = filepath.Join(dir, "job.txt")
	require.NoError(t, resumes.Save(resumePath, types.ExampleResume()))
	require.NoError(t, os.WriteFile(jobPath, []byte(testJob), 0644))
	return dir, resumePath, jobPath
}
