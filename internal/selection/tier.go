// Package selection trims a ranked resume to fit a page budget.
package selection

import (
	"math"
	"unicode/utf8"

	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	aggressiveThreshold = 3500
	moderateThreshold   = 3000

	// charsPerLine is the estimated number of characters per rendered line
	charsPerLine = 100
)

// TierName identifies a content-size tier
type TierName string

// Content-size tiers, from least to most trimming
const (
	TierMild       TierName = "mild"
	TierModerate   TierName = "moderate"
	TierAggressive TierName = "aggressive"
)

// Tier holds the truncation limits applied at a content size
type Tier struct {
	Name           TierName `json:"name"`
	SummaryLimit   int      `json:"summary_limit"`
	HighlightLimit int      `json:"highlight_limit"`
	ProjectLimit   int      `json:"project_limit"`
}

var (
	mildTier       = Tier{Name: TierMild, SummaryLimit: 200, HighlightLimit: 4, ProjectLimit: 4}
	moderateTier   = Tier{Name: TierModerate, SummaryLimit: 150, HighlightLimit: 3, ProjectLimit: 3}
	aggressiveTier = Tier{Name: TierAggressive, SummaryLimit: 100, HighlightLimit: 2, ProjectLimit: 2}
)

// SelectTier picks the tier for a content size using strict thresholds
func SelectTier(contentSize int) Tier {
	switch {
	case contentSize > aggressiveThreshold:
		return aggressiveTier
	case contentSize > moderateThreshold:
		return moderateTier
	default:
		return mildTier
	}
}

// ContentSize counts the characters of the basics summary, every work summary
// and highlight, and every project description and highlight
func ContentSize(r *types.Resume) int {
	if r == nil {
		return 0
	}

	size := 0
	if r.Basics != nil {
		size += runeCount(r.Basics.Summary)
	}
	for _, w := range r.Work {
		size += runeCount(w.Summary)
		for _, h := range w.Highlights {
			size += runeCount(h)
		}
	}
	for _, p := range r.Projects {
		size += runeCount(p.Description)
		for _, h := range p.Highlights {
			size += runeCount(h)
		}
	}
	return size
}

// estimateLines approximates the rendered line count of a content size
func estimateLines(size int) int {
	if size <= 0 {
		return 0
	}
	return int(math.Ceil(float64(size) / charsPerLine))
}

func runeCount(s string) int {
	return utf8.RuneCountInString(s)
}
