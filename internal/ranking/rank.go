// Package ranking orders resume entries by lexical relevance to a job's required skills.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// ItemScore describes how one entry scored. It lives beside the ranked
// resume and is never written into the entries themselves.
type ItemScore struct {
	Label   string   `json:"label"`
	Score   int      `json:"score"`
	Matched []string `json:"matched,omitempty"`
	Notes   string   `json:"notes"`
}

// Ranking is a ranked resume plus the per-section scores, in ranked order
type Ranking struct {
	Resume   *types.Resume `json:"resume"`
	Work     []ItemScore   `json:"work,omitempty"`
	Projects []ItemScore   `json:"projects,omitempty"`
	Skills   []ItemScore   `json:"skills,omitempty"`
}

// Ranker reorders work, projects and skills by relevance
type Ranker struct {
	scorer *Scorer
}

// NewRanker creates a ranker. A nil scorer uses whitespace tokenization.
func NewRanker(scorer *Scorer) *Ranker {
	if scorer == nil {
		scorer = NewScorer(nil)
	}
	return &Ranker{scorer: scorer}
}

// Rank returns a ranked deep copy of resume with signals attached as jobAnalysis.
// The input resume is never modified.
func (r *Ranker) Rank(resume *types.Resume, signals *types.JobSignals) *types.Resume {
	return r.RankWithScores(resume, signals).Resume
}

// RankWithScores ranks like Rank and also reports each entry's score
func (r *Ranker) RankWithScores(resume *types.Resume, signals *types.JobSignals) *Ranking {
	ranked := resume.Clone()
	if ranked == nil {
		ranked = &types.Resume{}
	}

	var required []string
	if signals != nil {
		required = signals.Skills
	}

	out := &Ranking{Resume: ranked}
	if ranked.Work != nil {
		ranked.Work, out.Work = sortByScore(ranked.Work, required,
			func(w types.Work) []string { return r.scorer.matchItem(WorkItem(w), required) },
			func(w types.Work) string { return joinLabel(w.Position, w.Company) })
	}
	if ranked.Projects != nil {
		ranked.Projects, out.Projects = sortByScore(ranked.Projects, required,
			func(p types.Project) []string { return r.scorer.matchItem(ProjectItem(p), required) },
			func(p types.Project) string { return p.Name })
	}
	if ranked.Skills != nil {
		ranked.Skills, out.Skills = sortByScore(ranked.Skills, required,
			func(s types.Skill) []string { return r.scorer.matchSkill(s, required) },
			func(s types.Skill) string { return s.Name })
	}

	ranked.JobAnalysis = signals.Clone()
	return out
}

type scored[T any] struct {
	item    T
	matched []string
}

// sortByScore stable-sorts items by descending match count. Scores are kept
// in local pairs and returned separately.
func sortByScore[T any](items []T, required []string, match func(T) []string, label func(T) string) ([]T, []ItemScore) {
	pairs := make([]scored[T], len(items))
	for i, item := range items {
		pairs[i] = scored[T]{item: item, matched: match(item)}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return len(pairs[i].matched) > len(pairs[j].matched)
	})

	sorted := make([]T, len(pairs))
	scores := make([]ItemScore, len(pairs))
	for i, p := range pairs {
		sorted[i] = p.item
		scores[i] = ItemScore{
			Label:   label(p.item),
			Score:   len(p.matched),
			Matched: p.matched,
			Notes:   generateNotes(p.matched, len(required)),
		}
	}
	return sorted, scores
}

// generateNotes creates a brief explanation of a score
func generateNotes(matched []string, required int) string {
	if len(matched) == 0 || required == 0 {
		return "No skill matches"
	}

	ratio := float64(len(matched)) / float64(required)
	list := strings.Join(matched, ", ")
	switch {
	case ratio >= 0.7:
		return fmt.Sprintf("Strong skill match (%s)", list)
	case ratio >= 0.4:
		return fmt.Sprintf("Moderate skill match (%s)", list)
	default:
		return fmt.Sprintf("Weak skill match (%s)", list)
	}
}

func joinLabel(position, company string) string {
	switch {
	case position != "" && company != "":
		return position + " @ " + company
	case position != "":
		return position
	default:
		return company
	}
}
