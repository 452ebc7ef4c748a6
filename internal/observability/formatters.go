// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-tailor/internal/ranking"
	"github.com/jonathan/resume-tailor/internal/selection"
	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, shorten(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// shorten cuts s to at most n runes, ending in "..." when cut
func shorten(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// PrintJobSignals outputs a human-readable summary of the extracted job signals.
func (p *Printer) PrintJobSignals(signals *types.JobSignals) {
	if signals == nil {
		return
	}

	var sb strings.Builder
	if len(signals.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills:     %s\n", strings.Join(signals.Skills, ", ")))
	} else {
		sb.WriteString("Skills:     (none detected)\n")
	}
	if len(signals.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience: %s years\n", strings.Join(signals.Experience, ", ")))
	}
	if len(signals.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education:  %s\n", strings.Join(signals.Education, ", ")))
	}

	if len(signals.FrequentWords) > 0 {
		sb.WriteString("\nFrequent terms:\n")
		count := min(len(signals.FrequentWords), maxItemsToShow)
		for i := 0; i < count; i++ {
			wc := signals.FrequentWords[i]
			sb.WriteString(fmt.Sprintf("  • %s (%d)\n", wc.Word, wc.Count))
		}
		if len(signals.FrequentWords) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(signals.FrequentWords)-maxItemsToShow))
		}
	}

	p.printBox("JOB SIGNALS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedResume outputs the top ranked entries of each section with scores.
func (p *Printer) PrintRankedResume(r *ranking.Ranking) {
	if r == nil || (len(r.Work) == 0 && len(r.Projects) == 0 && len(r.Skills) == 0) {
		return
	}

	var sb strings.Builder
	writeSection := func(name string, scores []ranking.ItemScore) {
		if len(scores) == 0 {
			return
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%s (%d):\n", name, len(scores)))
		count := min(len(scores), maxItemsToShow)
		for i := 0; i < count; i++ {
			s := scores[i]
			sb.WriteString(fmt.Sprintf("  #%d %s [%d]\n", i+1, s.Label, s.Score))
			if s.Score > 0 {
				sb.WriteString(fmt.Sprintf("     %s\n", s.Notes))
			}
		}
		if len(scores) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(scores)-maxItemsToShow))
		}
	}

	writeSection("Work", r.Work)
	writeSection("Projects", r.Projects)
	writeSection("Skills", r.Skills)

	p.printBox("RANKED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOptimization outputs the tier chosen and what was trimmed.
func (p *Printer) PrintOptimization(report *selection.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Content size: %d chars (~%d lines)\n", report.ContentSize, report.EstimatedLinesBefore))
	sb.WriteString(fmt.Sprintf("Tier:         %s (summary %d, highlights %d, projects %d)\n",
		report.Tier.Name, report.Tier.SummaryLimit, report.Tier.HighlightLimit, report.Tier.ProjectLimit))
	sb.WriteString("\n")

	if report.SummaryTruncated {
		sb.WriteString("• Summary truncated\n")
	}
	for _, t := range report.TrimmedWork {
		sb.WriteString(fmt.Sprintf("• %s: %d → %d highlights\n", t.Label, t.Before, t.After))
	}
	if report.ProjectsAfter < report.ProjectsBefore {
		sb.WriteString(fmt.Sprintf("• Projects: %d → %d\n", report.ProjectsBefore, report.ProjectsAfter))
	}
	if !report.SummaryTruncated && len(report.TrimmedWork) == 0 && report.ProjectsAfter == report.ProjectsBefore {
		sb.WriteString("Nothing trimmed\n")
	}

	sb.WriteString(fmt.Sprintf("\nFinal size:   %d chars (~%d lines)", report.FinalContentSize, report.EstimatedLinesAfter))

	p.printBox("PAGE OPTIMIZATION", sb.String())
}

// PrintEducationFit outputs the degree requirement comparison.
func (p *Printer) PrintEducationFit(fit *ranking.EducationFit) {
	if fit == nil {
		return
	}

	status := "✓"
	if !fit.Meets {
		status = "⚠"
	}
	p.printBox("EDUCATION FIT", fmt.Sprintf("%s %s", status, fit.Reason))
}

// PrintDateErrors outputs malformed work dates skipped in the experience total.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintDateErrors(errs []*types.DateError) {
	if len(errs) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ ALL WORK DATES VALID")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skipped %d date fields:\n\n", len(errs)))
	for _, e := range errs {
		sb.WriteString(fmt.Sprintf("⚠ %s.%s\n", e.Section, e.Field))
		sb.WriteString(fmt.Sprintf("  %q\n", e.Value))
	}

	p.printBox("DATE ISSUES", strings.TrimSuffix(sb.String(), "\n"))
}
