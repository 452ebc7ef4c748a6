package rendering

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/jonathan/resume-tailor/internal/styling"
	"github.com/jonathan/resume-tailor/internal/types"
)

//go:embed templates/*
var templateFiles embed.FS

const latexTemplateName = "templates/resume.tex"

// TemplateData is the LaTeX-escaped view of a resume passed to the template
type TemplateData struct {
	Name           string
	Label          string
	Email          string
	Phone          string
	Website        string
	Summary        string
	PrimaryColor   string // hex digits without '#'
	AccentColor    string
	SansSerif      bool
	Skills         []SkillLine
	Companies      []CompanySection
	Projects       []ProjectSection
	Education      []EducationLine
	Certifications []string
}

// SkillLine is a skill category and its comma-joined keywords
type SkillLine struct {
	Name     string
	Keywords string
}

// CompanySection represents a company with one or more roles
type CompanySection struct {
	Company string
	Roles   []RoleSection
}

// RoleSection represents a role within a company with merged date ranges
type RoleSection struct {
	Role       string
	DateRanges string // e.g., "08/2020 -- 10/2021, 07/2023 -- Present"
	Bullets    []string
}

// ProjectSection is one project entry
type ProjectSection struct {
	Name        string
	Description string
	URL         string
	Highlights  []string
}

// EducationLine is one degree entry
type EducationLine struct {
	Degree      string
	Institution string
	Dates       string
	GPA         string
}

// RenderLaTeX renders the resume with the built-in LaTeX layout, or with the
// template at templatePath when it is not empty
func RenderLaTeX(resume *types.Resume, theme styling.Theme, templatePath string) (string, error) {
	var (
		tmpl *template.Template
		err  error
	)
	if templatePath == "" {
		tmpl, err = parseEmbeddedTemplate(latexTemplateName)
	} else {
		tmpl, err = parseTemplate(templatePath)
	}
	if err != nil {
		return "", err
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, buildTemplateData(resume, theme)); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}

	return result.String(), nil
}

func latexFuncs() template.FuncMap {
	return template.FuncMap{"escape": EscapeLaTeX}
}

func parseEmbeddedTemplate(name string) (*template.Template, error) {
	content, err := templateFiles.ReadFile(name)
	if err != nil {
		return nil, &TemplateError{Message: fmt.Sprintf("embedded template not found: %s", name), Cause: err}
	}
	return parseTemplateContent(name, string(content))
}

// parseTemplate reads and parses a LaTeX template file
func parseTemplate(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}
	return parseTemplateContent(templatePath, string(content))
}

func parseTemplateContent(name, content string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(latexFuncs()).Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

// buildTemplateData escapes every resume field for LaTeX
func buildTemplateData(resume *types.Resume, theme styling.Theme) *TemplateData {
	basics := resume.Basics
	if basics == nil {
		basics = &types.Basics{}
	}

	data := &TemplateData{
		Name:         EscapeLaTeX(orDefault(basics.Name, "Your Name")),
		Label:        EscapeLaTeX(basics.Label),
		Email:        EscapeLaTeX(basics.Email),
		Phone:        EscapeLaTeX(basics.Phone),
		Website:      EscapeLaTeX(basics.Website),
		Summary:      EscapeLaTeX(basics.Summary),
		PrimaryColor: styling.HexDigits(theme.PrimaryColor),
		AccentColor:  styling.HexDigits(theme.AccentColor),
		SansSerif:    theme.FontFamily == styling.FontSans,
		Companies:    groupByCompanyAndRole(resume.Work),
	}

	for _, skill := range resume.Skills {
		data.Skills = append(data.Skills, SkillLine{
			Name:     EscapeLaTeX(skill.Name),
			Keywords: EscapeLaTeX(strings.Join(skill.Keywords, ", ")),
		})
	}
	for _, p := range resume.Projects {
		data.Projects = append(data.Projects, ProjectSection{
			Name:        EscapeLaTeX(orDefault(p.Name, "Project")),
			Description: EscapeLaTeX(p.Description),
			URL:         EscapeLaTeX(p.URL),
			Highlights:  escapeAll(p.Highlights),
		})
	}
	for _, edu := range resume.Education {
		data.Education = append(data.Education, EducationLine{
			Degree:      EscapeLaTeX(strings.TrimSpace(edu.StudyType + " in " + edu.Area)),
			Institution: EscapeLaTeX(edu.Institution),
			Dates:       formatRange(edu.StartDate, edu.EndDate),
			GPA:         EscapeLaTeX(edu.GPA),
		})
	}
	for _, cert := range resume.Certifications {
		line := cert.Name
		if cert.Issuer != "" {
			line += ", " + cert.Issuer
		}
		if cert.Date != "" {
			line += " (" + yearOf(cert.Date) + ")"
		}
		data.Certifications = append(data.Certifications, EscapeLaTeX(line))
	}

	return data
}

// roleKey is used for grouping work entries by company and role
type roleKey struct {
	Company string
	Role    string
}

// roleEntry holds one work entry's bullets with its date range
type roleEntry struct {
	Bullets   []string
	StartDate string
	EndDate   string
}

// groupByCompanyAndRole groups work entries by company, then by role,
// merging date ranges. Companies and roles keep the order they first appear
// in, which is the ranked order.
func groupByCompanyAndRole(work []types.Work) []CompanySection {
	if len(work) == 0 {
		return nil
	}

	roleData := make(map[roleKey][]roleEntry)
	companyOrder := []string{}
	companyRoleOrder := make(map[string][]string)
	seenCompanies := make(map[string]bool)
	seenRoles := make(map[roleKey]bool)

	for _, job := range work {
		key := roleKey{Company: job.Company, Role: job.Position}

		if !seenCompanies[job.Company] {
			seenCompanies[job.Company] = true
			companyOrder = append(companyOrder, job.Company)
		}
		if !seenRoles[key] {
			seenRoles[key] = true
			companyRoleOrder[job.Company] = append(companyRoleOrder[job.Company], job.Position)
		}

		bullets := job.Highlights
		if len(bullets) == 0 && job.Summary != "" {
			bullets = []string{job.Summary}
		}
		roleData[key] = append(roleData[key], roleEntry{
			Bullets:   escapeAll(bullets),
			StartDate: job.StartDate,
			EndDate:   job.EndDate,
		})
	}

	companies := make([]CompanySection, 0, len(companyOrder))
	for _, companyName := range companyOrder {
		var roles []RoleSection
		for _, roleName := range companyRoleOrder[companyName] {
			entries := roleData[roleKey{Company: companyName, Role: roleName}]

			var bullets []string
			for _, e := range entries {
				bullets = append(bullets, e.Bullets...)
			}
			roles = append(roles, RoleSection{
				Role:       EscapeLaTeX(roleName),
				DateRanges: mergeDateRanges(entries),
				Bullets:    bullets,
			})
		}
		companies = append(companies, CompanySection{
			Company: EscapeLaTeX(companyName),
			Roles:   roles,
		})
	}

	return companies
}

// mergeDateRanges collects unique date ranges, sorts them by start date and
// joins them with commas
func mergeDateRanges(entries []roleEntry) string {
	seen := make(map[string]bool)
	var ranges []roleEntry
	for _, e := range entries {
		if e.StartDate == "" && e.EndDate == "" {
			continue
		}
		key := e.StartDate + "|" + e.EndDate
		if !seen[key] {
			seen[key] = true
			ranges = append(ranges, e)
		}
	}

	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].StartDate < ranges[j].StartDate
	})

	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = formatRange(r.StartDate, r.EndDate)
	}
	return strings.Join(parts, ", ")
}

// formatRange renders "MM/YYYY -- MM/YYYY", with Present kept as is
func formatRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return formatMonth(start)
	case start == "":
		return formatMonth(end)
	}
	return formatMonth(start) + " -- " + formatMonth(end)
}

// formatMonth turns "2020-08-01" into "08/2020". Other values are escaped
// and returned unchanged.
func formatMonth(date string) string {
	if strings.EqualFold(date, types.PresentDate) {
		return types.PresentDate
	}
	if len(date) >= 7 && date[4] == '-' {
		return date[5:7] + "/" + date[:4]
	}
	return EscapeLaTeX(date)
}

// latexEscaper maps each LaTeX special character to text that typesets it
// literally. Replacements are not rescanned, so the backslash entry cannot
// double-escape the others.
var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`_`, `\_`,
	`^`, `\textasciicircum{}`,
	`~`, `\textasciitilde{}`,
)

// EscapeLaTeX makes resume text safe to place in a LaTeX document. It is also
// available to custom templates as the escape function.
func EscapeLaTeX(text string) string {
	return latexEscaper.Replace(text)
}

func escapeAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = EscapeLaTeX(v)
	}
	return out
}
