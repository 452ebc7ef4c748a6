package rendering

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-tailor/internal/ranking"
	"github.com/jonathan/resume-tailor/internal/styling"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Format is an output format name
type Format string

// Supported formats
const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
	FormatLaTeX    Format = "latex"
)

var formats = []Format{FormatMarkdown, FormatJSON, FormatHTML, FormatLaTeX}

var extensions = map[Format]string{
	FormatMarkdown: "md",
	FormatJSON:     "json",
	FormatHTML:     "html",
	FormatLaTeX:    "tex",
}

// ParseFormat parses a format name. An empty string selects markdown.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatMarkdown, nil
	}
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := extensions[f]; !ok {
		return "", &UnsupportedFormatError{Format: s}
	}
	return f, nil
}

// Extension returns the file extension for the format, without a dot
func (f Format) Extension() string {
	return extensions[f]
}

// Options carries the optional inputs of a render
type Options struct {
	// Theme styles HTML and LaTeX output; the zero value uses the default theme
	Theme styling.Theme
	// ExperienceYears and EducationFit are added to the Markdown job match
	// analysis when set
	ExperienceYears float64
	EducationFit    *ranking.EducationFit
	// OmitAnalysis drops the Markdown job match analysis section
	OmitAnalysis bool
	// LaTeXTemplate is a template file path replacing the built-in LaTeX layout
	LaTeXTemplate string
}

func (o Options) theme() (styling.Theme, error) {
	if o.Theme == (styling.Theme{}) {
		return styling.DefaultTheme(), nil
	}
	if err := o.Theme.Validate(); err != nil {
		return styling.Theme{}, &RenderError{Message: "invalid theme", Cause: err}
	}
	return o.Theme, nil
}

// Render renders resume in the given format
func Render(resume *types.Resume, format Format, opts Options) (string, error) {
	if resume == nil {
		resume = &types.Resume{}
	}

	switch format {
	case FormatMarkdown:
		return RenderMarkdown(resume, opts), nil
	case FormatJSON:
		return RenderJSON(resume)
	case FormatHTML:
		theme, err := opts.theme()
		if err != nil {
			return "", err
		}
		return RenderHTML(resume, theme)
	case FormatLaTeX:
		theme, err := opts.theme()
		if err != nil {
			return "", err
		}
		return RenderLaTeX(resume, theme, opts.LaTeXTemplate)
	default:
		return "", &UnsupportedFormatError{Format: string(format)}
	}
}

// RenderJSON renders the resume as two-space indented JSON
func RenderJSON(resume *types.Resume) (string, error) {
	data, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return "", &RenderError{Message: "failed to marshal resume", Cause: err}
	}
	return string(data) + "\n", nil
}

func formatList() string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// yearOf returns the part of a date before its first '-', so "2020-01-15"
// becomes "2020" and "Present" stays as is
func yearOf(date string) string {
	year, _, _ := strings.Cut(date, "-")
	return year
}
