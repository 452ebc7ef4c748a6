package rendering

import (
	"html/template"
	"strings"

	"github.com/jonathan/resume-tailor/internal/styling"
	"github.com/jonathan/resume-tailor/internal/types"
)

const htmlTemplateName = "templates/resume.html"

var fontStacks = map[styling.FontFamily]string{
	styling.FontSerif: `Georgia, "Times New Roman", serif`,
	styling.FontSans:  `"Helvetica Neue", Arial, sans-serif`,
}

type htmlData struct {
	Resume  *types.Resume
	Basics  *types.Basics
	Primary template.CSS
	Accent  template.CSS
	Font    template.CSS
}

// RenderHTML renders the resume as a standalone HTML page styled by theme.
// The job analysis is not included.
func RenderHTML(resume *types.Resume, theme styling.Theme) (string, error) {
	content, err := templateFiles.ReadFile(htmlTemplateName)
	if err != nil {
		return "", &TemplateError{Message: "embedded template not found: " + htmlTemplateName, Cause: err}
	}

	tmpl, err := template.New(htmlTemplateName).Funcs(template.FuncMap{
		"join":   strings.Join,
		"year":   yearOf,
		"orName": func(s string) string { return orDefault(s, "Your Name") },
	}).Parse(string(content))
	if err != nil {
		return "", &TemplateError{Message: "failed to parse template", Cause: err}
	}

	basics := resume.Basics
	if basics == nil {
		basics = &types.Basics{}
	}
	font, ok := fontStacks[theme.FontFamily]
	if !ok {
		font = fontStacks[styling.FontSerif]
	}

	// Theme colors are validated hex values, so they are safe as raw CSS
	data := htmlData{
		Resume:  resume,
		Basics:  basics,
		Primary: template.CSS(theme.PrimaryColor),
		Accent:  template.CSS(theme.AccentColor),
		Font:    template.CSS(font),
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}
	return result.String(), nil
}
