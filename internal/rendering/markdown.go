package rendering

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jonathan/resume-tailor/internal/types"
)

// AnalysisNote heads the job match analysis so it is not sent by accident
const AnalysisNote = "_This section is for your reference and should be removed before sending the resume._\n"

// RenderMarkdown renders the resume as Markdown. Lines are joined with "\n"
// and the output has no trailing newline.
func RenderMarkdown(resume *types.Resume, opts Options) string {
	var md []string
	add := func(lines ...string) { md = append(md, lines...) }

	basics := resume.Basics
	if basics == nil {
		basics = &types.Basics{}
	}
	add("# "+orDefault(basics.Name, "Your Name"), "## "+orDefault(basics.Label, "Your Title"))

	var contact []string
	if basics.Email != "" {
		contact = append(contact, "Email: "+basics.Email)
	}
	if basics.Phone != "" {
		contact = append(contact, "Phone: "+basics.Phone)
	}
	if basics.Website != "" {
		contact = append(contact, "Website: "+basics.Website)
	}
	if len(contact) > 0 {
		add("\n" + strings.Join(contact, " | ") + "\n")
	}

	if basics.Summary != "" {
		add("## Summary", basics.Summary+"\n")
	}

	if len(resume.Skills) > 0 {
		add("## Skills")
		for _, skill := range resume.Skills {
			add(fmt.Sprintf("- **%s:** %s", skill.Name, strings.Join(skill.Keywords, ", ")))
		}
		add("")
	}

	if len(resume.Work) > 0 {
		add("## Work Experience")
		for _, job := range resume.Work {
			add(fmt.Sprintf("### %s at %s", job.Position, job.Company))
			if dates := dateLine(job.StartDate, job.EndDate); dates != "" {
				add(dates)
			}
			if job.Summary != "" {
				add("\n" + job.Summary)
			}
			if len(job.Highlights) > 0 {
				add("\nKey Achievements:")
				for _, h := range job.Highlights {
					add("- " + h)
				}
			}
			add("")
		}
	}

	if len(resume.Projects) > 0 {
		add("## Projects")
		for _, project := range resume.Projects {
			add("### " + orDefault(project.Name, "Project"))
			if project.Description != "" {
				add(project.Description)
			}
			if len(project.Highlights) > 0 {
				add("\nHighlights:")
				for _, h := range project.Highlights {
					add("- " + h)
				}
			}
			if project.URL != "" {
				add(fmt.Sprintf("\n[Project Link](%s)", project.URL))
			}
			add("")
		}
	}

	if len(resume.Education) > 0 {
		add("## Education")
		for _, edu := range resume.Education {
			add(fmt.Sprintf("### %s in %s, %s", edu.StudyType, edu.Area, edu.Institution))
			if dates := dateLine(edu.StartDate, edu.EndDate); dates != "" {
				add(dates)
			}
			if edu.GPA != "" {
				add("\nGPA: " + edu.GPA)
			}
			if len(edu.Courses) > 0 {
				add("\nRelevant Coursework:", strings.Join(edu.Courses, ", "))
			}
			add("")
		}
	}

	if len(resume.Certifications) > 0 {
		add("## Certifications")
		for _, cert := range resume.Certifications {
			add(fmt.Sprintf("- **%s** - %s (%s)", cert.Name, cert.Issuer, yearOf(cert.Date)))
		}
		add("")
	}

	if resume.JobAnalysis != nil && !opts.OmitAnalysis {
		add(analysisLines(resume.JobAnalysis, opts)...)
	}

	return strings.Join(md, "\n")
}

func analysisLines(signals *types.JobSignals, opts Options) []string {
	lines := []string{"## Job Match Analysis", AnalysisNote, "### Key Skills Detected"}
	for _, skill := range signals.Skills {
		lines = append(lines, "- "+skill)
	}
	lines = append(lines, "")

	if len(signals.Experience) > 0 {
		lines = append(lines, "### Experience Requirements")
		for _, years := range signals.Experience {
			lines = append(lines, fmt.Sprintf("- %s years of experience", years))
		}
		lines = append(lines, "")
	}

	if len(signals.Education) > 0 {
		lines = append(lines, "### Education Requirements")
		for _, degree := range signals.Education {
			lines = append(lines, fmt.Sprintf("- %s degree", capitalize(degree)))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "### Frequently Mentioned Terms")
	for _, wc := range signals.FrequentWords {
		lines = append(lines, fmt.Sprintf("- %s: %d mentions", wc.Word, wc.Count))
	}

	fit := opts.EducationFit
	if opts.ExperienceYears > 0 || fit != nil {
		lines = append(lines, "", "### Candidate Fit")
		if opts.ExperienceYears > 0 {
			lines = append(lines, fmt.Sprintf("- %.1f years of listed work experience", opts.ExperienceYears))
		}
		if fit != nil {
			verdict := "meets"
			if !fit.Meets {
				verdict = "does not meet"
			}
			lines = append(lines, fmt.Sprintf("- Education %s the requirement: %s", verdict, fit.Reason))
		}
	}

	return lines
}

// dateLine formats "_start - end_" using only the year of each date
func dateLine(start, end string) string {
	var dates []string
	if start != "" {
		dates = append(dates, yearOf(start))
	}
	if end != "" {
		dates = append(dates, yearOf(end))
	}
	if len(dates) == 0 {
		return ""
	}
	return "_" + strings.Join(dates, " - ") + "_"
}

// capitalize upper-cases the first letter and lower-cases the rest
func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
