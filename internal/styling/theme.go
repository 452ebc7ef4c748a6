// Package styling picks a cosmetic theme for rendered resumes from the job
// signals. Themes change colors and fonts only, never resume content.
package styling

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FontFamily is the generic font family a theme renders with
type FontFamily string

// Supported font families
const (
	FontSerif FontFamily = "serif"
	FontSans  FontFamily = "sans-serif"
)

// Theme is a named palette and font choice
type Theme struct {
	Name         string     `json:"name" validate:"required"`
	PrimaryColor string     `json:"primary_color" validate:"required,hexcolor"`
	AccentColor  string     `json:"accent_color" validate:"required,hexcolor"`
	FontFamily   FontFamily `json:"font_family" validate:"required,oneof=serif sans-serif"`
}

// Built-in theme names
const (
	ThemeClassic   = "classic"
	ThemeTechnical = "technical"
	ThemeCreative  = "creative"
	ThemeResearch  = "research"
	ThemeCorporate = "corporate"
)

var themes = map[string]Theme{
	ThemeClassic:   {Name: ThemeClassic, PrimaryColor: "#1F2937", AccentColor: "#2563EB", FontFamily: FontSerif},
	ThemeTechnical: {Name: ThemeTechnical, PrimaryColor: "#0F172A", AccentColor: "#0891B2", FontFamily: FontSans},
	ThemeCreative:  {Name: ThemeCreative, PrimaryColor: "#4C1D95", AccentColor: "#DB2777", FontFamily: FontSans},
	ThemeResearch:  {Name: ThemeResearch, PrimaryColor: "#14532D", AccentColor: "#15803D", FontFamily: FontSerif},
	ThemeCorporate: {Name: ThemeCorporate, PrimaryColor: "#1E3A5F", AccentColor: "#B45309", FontFamily: FontSerif},
}

var validate = validator.New()

// DefaultTheme returns the classic theme
func DefaultTheme() Theme {
	return themes[ThemeClassic]
}

// Lookup returns the built-in theme with the given name
func Lookup(name string) (Theme, error) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (expected one of: %s)", name, strings.Join(Names(), ", "))
	}
	return t, nil
}

// Names returns the built-in theme names, sorted
func Names() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that colors are hex values and the font family is supported
func (t Theme) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("invalid theme %q: %w", t.Name, err)
	}
	return nil
}

// HexDigits returns a color without its leading '#', as LaTeX's xcolor expects
func HexDigits(color string) string {
	return strings.ToUpper(strings.TrimPrefix(color, "#"))
}
