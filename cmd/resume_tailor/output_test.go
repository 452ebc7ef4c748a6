package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/rendering"
)

func TestOutputPath(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		explicit string
		format   rendering.Format
		want     string
	}{
		{"generated markdown", "", rendering.FormatMarkdown, "tailored_resume_20250102_030405.md"},
		{"generated latex", "", rendering.FormatLaTeX, "tailored_resume_20250102_030405.tex"},
		{"extension appended", "out", rendering.FormatJSON, "out.json"},
		{"explicit extension kept", "out.txt", rendering.FormatHTML, "out.txt"},
		{"dot in directory ignored", filepath.Join("v1.2", "resume"), rendering.FormatHTML, filepath.Join("v1.2", "resume.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outputPath(tt.explicit, tt.format, now))
		})
	}
}

func TestBatchOutputPath(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, "out_1.md", batchOutputPath("out", rendering.FormatMarkdown, now, 0))
	assert.Equal(t, "out_3.json", batchOutputPath("out.json", rendering.FormatJSON, now, 2))
	assert.Equal(t, "tailored_resume_20250102_030405_2.tex", batchOutputPath("", rendering.FormatLaTeX, now, 1))
}

func TestReadJob(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte(testJob), 0644))

	text, err := readJob(ctx, path, "", false, false)
	require.NoError(t, err)
	assert.Contains(t, text, "Senior Backend Engineer")

	_, err = readJob(ctx, path, "https://example.com/job", false, false)
	assert.ErrorContains(t, err, "mutually exclusive")

	_, err = readJob(ctx, "", "", false, false)
	assert.ErrorContains(t, err, "either --job or --job-url")

	_, err = readJob(ctx, filepath.Join(t.TempDir(), "missing.txt"), "", false, false)
	assert.ErrorContains(t, err, "failed to read job description")
}

func TestWriteFile_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.md")
	require.NoError(t, writeFile(path, "# Resume\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Resume\n", string(data))
}
