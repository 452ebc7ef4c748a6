package selection

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resumeWithSize(summaryLen, workSummaryLen int) *types.Resume {
	return &types.Resume{
		Basics: &types.Basics{Summary: strings.Repeat("s", summaryLen)},
		Work:   []types.Work{{Company: "Acme", Summary: strings.Repeat("w", workSummaryLen)}},
	}
}

func TestSelectTier(t *testing.T) {
	tests := []struct {
		size int
		want Tier
	}{
		{3600, Tier{Name: TierAggressive, SummaryLimit: 100, HighlightLimit: 2, ProjectLimit: 2}},
		{3501, Tier{Name: TierAggressive, SummaryLimit: 100, HighlightLimit: 2, ProjectLimit: 2}},
		{3500, Tier{Name: TierModerate, SummaryLimit: 150, HighlightLimit: 3, ProjectLimit: 3}},
		{3200, Tier{Name: TierModerate, SummaryLimit: 150, HighlightLimit: 3, ProjectLimit: 3}},
		{3000, Tier{Name: TierMild, SummaryLimit: 200, HighlightLimit: 4, ProjectLimit: 4}},
		{1000, Tier{Name: TierMild, SummaryLimit: 200, HighlightLimit: 4, ProjectLimit: 4}},
		{0, Tier{Name: TierMild, SummaryLimit: 200, HighlightLimit: 4, ProjectLimit: 4}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SelectTier(tt.size), "size %d", tt.size)
	}
}

func TestContentSize(t *testing.T) {
	r := &types.Resume{
		Basics: &types.Basics{Summary: "héllo"},
		Work: []types.Work{
			{Summary: "abc", Highlights: []string{"de", "f"}},
			{Keywords: []string{"ignored"}},
		},
		Projects: []types.Project{
			{Name: "ignored", Description: "1234", Highlights: []string{"56"}},
		},
		Skills: []types.Skill{{Name: "ignored"}},
	}

	assert.Equal(t, 5+3+2+1+4+2, ContentSize(r))
	assert.Equal(t, 0, ContentSize(nil))
	assert.Equal(t, 0, ContentSize(&types.Resume{}))
}

func TestOptimize_AggressiveTierTruncatesSummary(t *testing.T) {
	r := resumeWithSize(600, 3000)

	out, report := Optimize(r, &types.JobSignals{})

	assert.Equal(t, 3600, report.ContentSize)
	assert.Equal(t, TierAggressive, report.Tier.Name)
	assert.True(t, report.SummaryTruncated)
	assert.Equal(t, 100, utf8.RuneCountInString(out.Basics.Summary))
	assert.True(t, strings.HasSuffix(out.Basics.Summary, "..."))
	assert.Equal(t, strings.Repeat("s", 97)+"...", out.Basics.Summary)
}

func TestOptimize_ModerateTier(t *testing.T) {
	r := resumeWithSize(400, 2800)

	out, report := Optimize(r, nil)

	assert.Equal(t, 3200, report.ContentSize)
	assert.Equal(t, TierModerate, report.Tier.Name)
	assert.Equal(t, 150, utf8.RuneCountInString(out.Basics.Summary))
}

func TestOptimize_MildTierKeepsShortSummary(t *testing.T) {
	r := resumeWithSize(180, 820)

	out, report := Optimize(r, nil)

	assert.Equal(t, 1000, report.ContentSize)
	assert.Equal(t, TierMild, report.Tier.Name)
	assert.False(t, report.SummaryTruncated)
	assert.Equal(t, r.Basics.Summary, out.Basics.Summary)
}

func TestOptimize_TruncatesByRunes(t *testing.T) {
	r := resumeWithSize(0, 0)
	r.Basics.Summary = strings.Repeat("é", 250)

	out, _ := Optimize(r, nil)

	assert.Equal(t, 200, utf8.RuneCountInString(out.Basics.Summary))
	assert.Equal(t, strings.Repeat("é", 197)+"...", out.Basics.Summary)
}

func TestOptimize_HighlightPruningKeepsRelevant(t *testing.T) {
	r := resumeWithSize(3600, 0)
	r.Work[0].Highlights = []string{
		"Organized team offsites",
		"Built data pipelines in Python",
		"Wrote quarterly reports",
		"Shipped a React dashboard",
		"Mentored interns",
	}

	out, report := Optimize(r, &types.JobSignals{Skills: []string{"python", "react"}})

	require.Equal(t, TierAggressive, report.Tier.Name)
	assert.Equal(t, []string{"Built data pipelines in Python", "Shipped a React dashboard"}, out.Work[0].Highlights)
	require.Len(t, report.TrimmedWork, 1)
	assert.Equal(t, 5, report.TrimmedWork[0].Before)
	assert.Equal(t, 2, report.TrimmedWork[0].After)
	assert.Equal(t, 3, report.HighlightsRemoved())
}

func TestOptimize_HighlightPruningOrdersByScoreThenPosition(t *testing.T) {
	r := resumeWithSize(0, 0)
	r.Work[0].Highlights = []string{"a", "python", "b", "python and docker", "c", "docker"}

	out, report := Optimize(r, &types.JobSignals{Skills: []string{"docker", "python"}})

	require.Equal(t, TierMild, report.Tier.Name)
	assert.Equal(t, []string{"python and docker", "python", "docker", "a"}, out.Work[0].Highlights)
}

func TestOptimize_ProjectPruning(t *testing.T) {
	r := resumeWithSize(3600, 0)
	r.Projects = []types.Project{
		{Name: "Garden"},
		{Name: "Tool", Keywords: []string{"Go"}},
		{Name: "Blog", URL: "https://example.com/react"},
		{Name: "Bakery"},
	}

	out, report := Optimize(r, &types.JobSignals{Skills: []string{"react", "go"}})

	require.Len(t, out.Projects, 2)
	assert.Equal(t, "Tool", out.Projects[0].Name)
	assert.Equal(t, "Blog", out.Projects[1].Name)
	assert.Equal(t, 4, report.ProjectsBefore)
	assert.Equal(t, 2, report.ProjectsAfter)
}

func TestOptimize_DoesNotMutateInput(t *testing.T) {
	r := resumeWithSize(3600, 0)
	r.Work[0].Highlights = []string{"a", "b", "c", "python"}
	r.Projects = []types.Project{{Name: "x"}, {Name: "y"}, {Name: "python"}}
	before := r.Clone()

	first, _ := Optimize(r, &types.JobSignals{Skills: []string{"python"}})
	second, _ := Optimize(r, &types.JobSignals{Skills: []string{"python"}})

	assert.Equal(t, before, r)
	assert.Equal(t, first, second)
}

func TestOptimize_NilInputs(t *testing.T) {
	out, report := Optimize(nil, nil)

	require.NotNil(t, out)
	assert.Equal(t, TierMild, report.Tier.Name)
	assert.Equal(t, 0, report.EstimatedLinesBefore)
}

func TestEstimateLines(t *testing.T) {
	assert.Equal(t, 0, estimateLines(0))
	assert.Equal(t, 1, estimateLines(100))
	assert.Equal(t, 2, estimateLines(101))
	assert.Equal(t, 3, estimateLines(250))
}
