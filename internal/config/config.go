// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Resume     string `json:"resume,omitempty"`                           // Path to resume JSON
	Job        string `json:"job,omitempty"`                              // Path to job posting text file
	JobURL     string `json:"job_url,omitempty" validate:"omitempty,url"` // URL to fetch job posting from
	Output     string `json:"output,omitempty"`                           // Output file path
	Template   string `json:"template,omitempty"`                         // Path to LaTeX template
	Vocabulary string `json:"vocabulary,omitempty"`                       // Path to a YAML skill vocabulary

	// Behavior
	Format       string `json:"format,omitempty" validate:"omitempty,oneof=markdown json html latex"`
	PageMode     string `json:"page_mode,omitempty" validate:"omitempty,oneof=auto single-page multi-page"`
	Tokenizer    string `json:"tokenizer,omitempty" validate:"omitempty,oneof=treebank whitespace"`
	Style        string `json:"style,omitempty" validate:"omitempty,oneof=none rules llm"`
	APIKey       string `json:"api_key,omitempty"`                               // Gemini API key
	UseBrowser   bool   `json:"use_browser,omitempty"`                           // Use headless browser for SPA sites
	Verbose      bool   `json:"verbose,omitempty"`                               // Print detailed debug information
	OmitAnalysis bool   `json:"omit_analysis,omitempty"`                         // Leave the job match section out of rendered output
	CacheSize    int    `json:"cache_size,omitempty" validate:"gte=0,lte=100000"` // Extracted-signal cache entries
}

// ValidationError describes a single invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "config error: " + e.Message
	}
	return fmt.Sprintf("config error: '%s' %s", e.Field, e.Message)
}

var validate = newValidator()

// newValidator reports field names by their JSON key so errors match the config file.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Defaults returns the configuration used when neither a config file nor a flag
// sets a value.
func Defaults() Config {
	return Config{
		Resume:    "resume_data.json",
		Format:    "markdown",
		PageMode:  "auto",
		Tokenizer: "treebank",
		Style:     "none",
		CacheSize: 256,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are not checked here since those are handled by CLI flag
// validation after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fieldError(fieldErrs[0])
		}
		return &ValidationError{Message: err.Error()}
	}

	if c.Job != "" && c.JobURL != "" {
		return &ValidationError{Message: "'job' and 'job_url' are mutually exclusive"}
	}

	files := []struct {
		field string
		path  string
	}{
		{"template", c.Template},
		{"vocabulary", c.Vocabulary},
		{"job", c.Job},
	}
	for _, f := range files {
		if f.path == "" {
			continue
		}
		if _, err := os.Stat(f.path); os.IsNotExist(err) {
			return &ValidationError{Field: f.field, Message: "file not found: " + f.path}
		}
	}

	return nil
}

func fieldError(fe validator.FieldError) *ValidationError {
	msg := "is invalid"
	switch fe.Tag() {
	case "oneof":
		msg = fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		msg = "must be a valid URL"
	case "gte":
		msg = "must be at least " + fe.Param()
	case "lte":
		msg = "must be at most " + fe.Param()
	}
	return &ValidationError{Field: fe.Field(), Message: msg}
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&result.Resume, defaults.Resume)
	fill(&result.Job, defaults.Job)
	fill(&result.JobURL, defaults.JobURL)
	fill(&result.Output, defaults.Output)
	fill(&result.Template, defaults.Template)
	fill(&result.Vocabulary, defaults.Vocabulary)
	fill(&result.Format, defaults.Format)
	fill(&result.PageMode, defaults.PageMode)
	fill(&result.Tokenizer, defaults.Tokenizer)
	fill(&result.Style, defaults.Style)
	fill(&result.APIKey, defaults.APIKey)

	if result.CacheSize == 0 {
		result.CacheSize = defaults.CacheSize
	}

	// Bool fields: cannot distinguish unset from false, so they are OR-ed
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose
	result.OmitAnalysis = result.OmitAnalysis || defaults.OmitAnalysis

	return result
}
