// Package resumes reads and writes resume JSON documents.
package resumes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-tailor/internal/schemas"
	"github.com/jonathan/resume-tailor/internal/types"
)

// DefaultPath is the resume file used when none is given
const DefaultPath = "resume_data.json"

// ErrInvalidJSON is the cause of a LoadError for documents that are not JSON
var ErrInvalidJSON = errors.New("invalid JSON")

// Origin describes where LoadOrCreate got its resume from
type Origin int

const (
	// FromFile means the file existed and was valid
	FromFile Origin = iota
	// CreatedExample means the file was missing and the example template was written to it
	CreatedExample
	// FallbackExample means the file was not valid JSON; the example template
	// is returned and the file is left untouched
	FallbackExample
)

// Load reads a resume, validating it against the resume schema
func Load(path string) (*types.Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read resume", Cause: err}
	}
	return Parse(data, path)
}

// Parse decodes and validates resume JSON. source names the document in errors.
func Parse(data []byte, source string) (*types.Resume, error) {
	if !json.Valid(data) {
		return nil, &LoadError{Path: source, Message: "failed to parse resume", Cause: ErrInvalidJSON}
	}
	if err := schemas.ValidateResume(data); err != nil {
		return nil, &LoadError{Path: source, Message: "resume does not match schema", Cause: err}
	}

	var resume types.Resume
	if err := json.Unmarshal(data, &resume); err != nil {
		return nil, &LoadError{Path: source, Message: "failed to decode resume", Cause: err}
	}
	return &resume, nil
}

// LoadOrCreate loads a resume. A missing file is created from the example
// template; a file that is not valid JSON yields the template without being
// overwritten. Schema violations are returned as errors.
func LoadOrCreate(path string) (*types.Resume, Origin, error) {
	resume, err := Load(path)
	if err == nil {
		return resume, FromFile, nil
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		example := types.ExampleResume()
		if err := Save(path, example); err != nil {
			return nil, CreatedExample, err
		}
		return example, CreatedExample, nil
	case errors.Is(err, ErrInvalidJSON):
		return types.ExampleResume(), FallbackExample, nil
	default:
		return nil, FromFile, err
	}
}

// Save writes a resume as indented JSON, creating parent directories
func Save(path string, resume *types.Resume) error {
	data, err := Marshal(resume)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write resume %s: %w", path, err)
	}
	return nil
}

// Marshal encodes a resume as two-space indented JSON with a trailing newline
func Marshal(resume *types.Resume) ([]byte, error) {
	data, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}
	return append(data, '\n'), nil
}
