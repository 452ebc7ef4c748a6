package selection

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Report records what Optimize measured and removed
type Report struct {
	ContentSize          int        `json:"content_size"`
	Tier                 Tier       `json:"tier"`
	SummaryTruncated     bool       `json:"summary_truncated"`
	TrimmedWork          []WorkTrim `json:"trimmed_work,omitempty"`
	ProjectsBefore       int        `json:"projects_before"`
	ProjectsAfter        int        `json:"projects_after"`
	FinalContentSize     int        `json:"final_content_size"`
	EstimatedLinesBefore int        `json:"estimated_lines_before"`
	EstimatedLinesAfter  int        `json:"estimated_lines_after"`
}

// WorkTrim records highlight pruning on one work entry
type WorkTrim struct {
	Index  int    `json:"index"`
	Label  string `json:"label"`
	Before int    `json:"before"`
	After  int    `json:"after"`
}

// HighlightsRemoved is the total number of work highlights pruned
func (r *Report) HighlightsRemoved() int {
	n := 0
	for _, t := range r.TrimmedWork {
		n += t.Before - t.After
	}
	return n
}

// Optimize returns a trimmed deep copy of a ranked resume. The tier is chosen
// from the content size; the basics summary is truncated, and work highlights
// and projects are pruned to the tier limits keeping the entries that mention
// the most required skills.
func Optimize(resume *types.Resume, signals *types.JobSignals) (*types.Resume, *Report) {
	out := resume.Clone()
	if out == nil {
		out = &types.Resume{}
	}

	var required []string
	if signals != nil {
		required = lowerAll(signals.Skills)
	}

	size := ContentSize(out)
	tier := SelectTier(size)
	report := &Report{
		ContentSize:          size,
		Tier:                 tier,
		ProjectsBefore:       len(out.Projects),
		EstimatedLinesBefore: estimateLines(size),
	}

	if out.Basics != nil && runeCount(out.Basics.Summary) > tier.SummaryLimit {
		out.Basics.Summary = truncate(out.Basics.Summary, tier.SummaryLimit)
		report.SummaryTruncated = true
	}

	for i := range out.Work {
		w := &out.Work[i]
		if len(w.Highlights) <= tier.HighlightLimit {
			continue
		}
		before := len(w.Highlights)
		w.Highlights = topByScore(w.Highlights, tier.HighlightLimit, func(h string) int {
			return countContained(strings.ToLower(h), required)
		})
		report.TrimmedWork = append(report.TrimmedWork, WorkTrim{
			Index:  i,
			Label:  strings.TrimSpace(w.Position + " " + w.Company),
			Before: before,
			After:  len(w.Highlights),
		})
	}

	if len(out.Projects) > tier.ProjectLimit {
		out.Projects = topByScore(out.Projects, tier.ProjectLimit, func(p types.Project) int {
			return countContained(flattenProject(p), required)
		})
	}

	report.ProjectsAfter = len(out.Projects)
	report.FinalContentSize = ContentSize(out)
	report.EstimatedLinesAfter = estimateLines(report.FinalContentSize)
	return out, report
}

type scoredEntry[T any] struct {
	item  T
	score int
}

// topByScore keeps the limit highest-scoring items in descending score order.
// Equal scores keep their original relative order.
func topByScore[T any](items []T, limit int, score func(T) int) []T {
	pairs := make([]scoredEntry[T], len(items))
	for i, item := range items {
		pairs[i] = scoredEntry[T]{item: item, score: score(item)}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].score > pairs[j].score
	})

	if limit > len(pairs) {
		limit = len(pairs)
	}
	kept := make([]T, limit)
	for i := range kept {
		kept[i] = pairs[i].item
	}
	return kept
}

// truncate shortens s to exactly limit runes ending in "..."
func truncate(s string, limit int) string {
	runes := []rune(s)
	if limit < 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

func countContained(text string, required []string) int {
	n := 0
	for _, skill := range required {
		if skill != "" && strings.Contains(text, skill) {
			n++
		}
	}
	return n
}

// flattenProject joins every field value of a project into one lower-cased string
func flattenProject(p types.Project) string {
	parts := []string{p.Name, p.Description}
	parts = append(parts, p.Highlights...)
	parts = append(parts, p.Keywords...)
	parts = append(parts, p.URL, p.StartDate, p.EndDate)
	return strings.ToLower(strings.Join(parts, " "))
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
