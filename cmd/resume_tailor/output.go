package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/resume-tailor/internal/analysis"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/rendering"
)

// outputPath names the file a rendering is written to. An explicit name gets
// the format's extension appended when its file name has no dot; otherwise a
// timestamped name is generated.
func outputPath(explicit string, format rendering.Format, now time.Time) string {
	ext := format.Extension()
	if explicit == "" {
		return fmt.Sprintf("tailored_resume_%s.%s", now.Format("20060102_150405"), ext)
	}
	if strings.Contains(filepath.Base(explicit), ".") {
		return explicit
	}
	return explicit + "." + ext
}

// batchOutputPath numbers the output of the i-th job (zero-based) in a batch.
func batchOutputPath(explicit string, format rendering.Format, now time.Time, i int) string {
	path := outputPath(explicit, format, now)
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(path, ext), i+1, ext)
}

// readJob loads a job description from a file or URL.
func readJob(ctx context.Context, path, url string, useBrowser, verbose bool) (string, error) {
	switch {
	case path != "" && url != "":
		return "", fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	case path != "":
		text, _, err := ingestion.IngestFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return text, nil
	case url != "":
		text, _, err := ingestion.IngestURL(ctx, url, useBrowser, verbose)
		if err != nil {
			return "", fmt.Errorf("failed to fetch job description: %w", err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("either --job or --job-url must be provided")
	}
}

// loadVocabulary returns the default vocabulary when path is empty.
func loadVocabulary(path string) (*analysis.Vocabulary, error) {
	if path == "" {
		return analysis.DefaultVocabulary(), nil
	}
	return analysis.LoadVocabulary(path)
}

func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
