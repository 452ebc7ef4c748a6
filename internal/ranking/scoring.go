package ranking

import (
	"strings"

	"github.com/jonathan/resume-tailor/internal/analysis"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Item is the scorable view of a work or project entry
type Item struct {
	Keywords   []string
	Highlights []string
	Summary    string
}

// WorkItem builds the scorable view of a work entry
func WorkItem(w types.Work) Item {
	return Item{Keywords: w.Keywords, Highlights: w.Highlights, Summary: w.Summary}
}

// ProjectItem builds the scorable view of a project. The description is not
// part of the keyword bag.
func ProjectItem(p types.Project) Item {
	return Item{Keywords: p.Keywords, Highlights: p.Highlights}
}

// Scorer computes lexical relevance of resume entries against required skills
type Scorer struct {
	tokenizer analysis.Tokenizer
}

// NewScorer creates a scorer. A nil tokenizer falls back to whitespace splitting.
func NewScorer(tok analysis.Tokenizer) *Scorer {
	if tok == nil {
		tok = analysis.WhitespaceTokenizer{}
	}
	return &Scorer{tokenizer: tok}
}

// ScoreItem returns the number of required skills contained as a substring in
// any entry of the item's keyword bag. "java" therefore scores against "javascript".
func (s *Scorer) ScoreItem(item Item, requiredSkills []string) int {
	return len(s.matchItem(item, requiredSkills))
}

// ScoreSkill returns the number of required skills contained in the skill's
// name or any of its keywords
func (s *Scorer) ScoreSkill(skill types.Skill, requiredSkills []string) int {
	return len(s.matchSkill(skill, requiredSkills))
}

func (s *Scorer) matchItem(item Item, requiredSkills []string) []string {
	return matchBag(s.keywordBag(item), requiredSkills)
}

func (s *Scorer) matchSkill(skill types.Skill, requiredSkills []string) []string {
	bag := make([]string, 0, len(skill.Keywords)+1)
	bag = append(bag, strings.ToLower(skill.Name))
	for _, kw := range skill.Keywords {
		bag = append(bag, strings.ToLower(kw))
	}
	return matchBag(bag, requiredSkills)
}

// keywordBag is the lower-cased explicit keywords plus the alphanumeric
// tokens of every highlight and the summary
func (s *Scorer) keywordBag(item Item) []string {
	bag := make([]string, 0, len(item.Keywords))
	for _, kw := range item.Keywords {
		bag = append(bag, strings.ToLower(kw))
	}
	for _, h := range item.Highlights {
		bag = append(bag, analysis.AlnumTokens(s.tokenizer, h)...)
	}
	if item.Summary != "" {
		bag = append(bag, analysis.AlnumTokens(s.tokenizer, item.Summary)...)
	}
	return bag
}

// matchBag returns each required skill that appears inside some bag entry,
// once per skill
func matchBag(bag []string, requiredSkills []string) []string {
	var matched []string
	for _, skill := range requiredSkills {
		skill = strings.ToLower(skill)
		if skill == "" {
			continue
		}
		for _, entry := range bag {
			if strings.Contains(entry, skill) {
				matched = append(matched, skill)
				break
			}
		}
	}
	return matched
}
