package ranking

import (
	"testing"

	"github.com/jonathan/resume-tailor/internal/analysis"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestScoreItem_KeywordMatch(t *testing.T) {
	s := NewScorer(nil)
	item := Item{Keywords: []string{"Python", "Docker"}}

	assert.Equal(t, 2, s.ScoreItem(item, []string{"python", "docker", "react"}))
}

func TestScoreItem_SubstringContainment(t *testing.T) {
	s := NewScorer(nil)
	item := Item{Keywords: []string{"javascript"}}

	// "java" is contained in "javascript"
	assert.Equal(t, 1, s.ScoreItem(item, []string{"java"}))
}

func TestScoreItem_HighlightAndSummaryTokens(t *testing.T) {
	s := NewScorer(analysis.WhitespaceTokenizer{})
	item := Item{
		Highlights: []string{"Shipped Kubernetes operators"},
		Summary:    "Owned AWS migration",
	}

	assert.Equal(t, 2, s.ScoreItem(item, []string{"kubernetes", "aws", "react"}))
}

func TestScoreItem_PunctuatedTokensDroppedByWhitespaceTokenizer(t *testing.T) {
	item := Item{Highlights: []string{"Built services in Python."}}

	whitespace := NewScorer(analysis.WhitespaceTokenizer{})
	assert.Equal(t, 0, whitespace.ScoreItem(item, []string{"python"}))

	tok, _ := analysis.NewTokenizer(analysis.StrategyTreebank)
	treebank := NewScorer(tok)
	assert.Equal(t, 1, treebank.ScoreItem(item, []string{"python"}))
}

func TestScoreItem_EachSkillCountsOnce(t *testing.T) {
	s := NewScorer(nil)
	item := Item{
		Keywords:   []string{"go", "golang"},
		Highlights: []string{"go go go"},
	}

	assert.Equal(t, 1, s.ScoreItem(item, []string{"go"}))
}

func TestScoreItem_EmptyItem(t *testing.T) {
	s := NewScorer(nil)

	assert.Equal(t, 0, s.ScoreItem(Item{}, []string{"python"}))
	assert.Equal(t, 0, s.ScoreItem(Item{Keywords: []string{"python"}}, nil))
}

func TestProjectItem_IgnoresDescription(t *testing.T) {
	s := NewScorer(nil)
	p := types.Project{Name: "Python Tool", Description: "python everywhere"}

	assert.Equal(t, 0, s.ScoreItem(ProjectItem(p), []string{"python"}))
}

func TestScoreSkill(t *testing.T) {
	s := NewScorer(nil)
	skill := types.Skill{Name: "Web Development", Keywords: []string{"HTML", "CSS", "JavaScript"}}

	assert.Equal(t, 2, s.ScoreSkill(skill, []string{"css", "java", "rust"}))
	assert.Equal(t, 1, s.ScoreSkill(skill, []string{"web"}))
	assert.Equal(t, 0, s.ScoreSkill(types.Skill{}, []string{"web"}))
}
