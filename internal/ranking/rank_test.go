package ranking

import (
	"testing"

	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank_RelevantWorkRanksFirst(t *testing.T) {
	resume := &types.Resume{
		Work: []types.Work{
			{Company: "Other", Keywords: []string{"gardening"}},
			{Company: "Match", Keywords: []string{"python"}},
		},
	}
	signals := &types.JobSignals{Skills: []string{"python", "react"}}

	ranked := NewRanker(nil).Rank(resume, signals)

	require.Len(t, ranked.Work, 2)
	assert.Equal(t, "Match", ranked.Work[0].Company)
	assert.Equal(t, "Other", ranked.Work[1].Company)
	assert.Equal(t, signals, ranked.JobAnalysis)
}

func TestRank_StableForEqualScores(t *testing.T) {
	resume := &types.Resume{
		Projects: []types.Project{
			{Name: "a", Keywords: []string{"python"}},
			{Name: "b"},
			{Name: "c", Keywords: []string{"python"}},
			{Name: "d"},
			{Name: "e", Keywords: []string{"python", "docker"}},
		},
	}
	signals := &types.JobSignals{Skills: []string{"docker", "python"}}

	ranked := NewRanker(nil).Rank(resume, signals)

	names := make([]string, 0, len(ranked.Projects))
	for _, p := range ranked.Projects {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"e", "a", "c", "b", "d"}, names)
}

func TestRank_ContainmentQuirk(t *testing.T) {
	resume := &types.Resume{
		Work: []types.Work{
			{Company: "Plain", Keywords: []string{"cobol"}},
			{Company: "Web", Keywords: []string{"javascript"}},
		},
	}

	result := NewRanker(nil).RankWithScores(resume, &types.JobSignals{Skills: []string{"java"}})

	assert.Equal(t, "Web", result.Resume.Work[0].Company)
	assert.Equal(t, 1, result.Work[0].Score)
	assert.Equal(t, []string{"java"}, result.Work[0].Matched)
}

func TestRank_SkillsRanked(t *testing.T) {
	resume := &types.Resume{
		Skills: []types.Skill{
			{Name: "Cooking"},
			{Name: "Programming", Keywords: []string{"Python", "Go"}},
		},
	}

	ranked := NewRanker(nil).Rank(resume, &types.JobSignals{Skills: []string{"python"}})

	assert.Equal(t, "Programming", ranked.Skills[0].Name)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	resume := types.ExampleResume()
	resume.Work = append(resume.Work, types.Work{Company: "Second", Keywords: []string{"react"}})
	before := resume.Clone()

	ranked := NewRanker(nil).Rank(resume, &types.JobSignals{Skills: []string{"react"}})

	assert.Equal(t, before, resume)
	assert.Nil(t, resume.JobAnalysis)
	assert.Equal(t, "Second", ranked.Work[0].Company)

	ranked.Work[0].Keywords[0] = "changed"
	assert.Equal(t, "react", resume.Work[1].Keywords[0])
}

func TestRank_NilSectionsStayNil(t *testing.T) {
	resume := &types.Resume{Basics: &types.Basics{Name: "Jane"}}

	result := NewRanker(nil).RankWithScores(resume, &types.JobSignals{Skills: []string{"go"}})

	assert.Nil(t, result.Resume.Work)
	assert.Nil(t, result.Resume.Projects)
	assert.Nil(t, result.Resume.Skills)
	assert.Nil(t, result.Work)
	assert.Equal(t, "Jane", result.Resume.Basics.Name)
}

func TestRank_NilResume(t *testing.T) {
	ranked := NewRanker(nil).Rank(nil, &types.JobSignals{Skills: []string{"go"}})

	require.NotNil(t, ranked)
	assert.Equal(t, []string{"go"}, ranked.JobAnalysis.Skills)
}

func TestRank_ScoresCarryNotes(t *testing.T) {
	resume := &types.Resume{
		Work: []types.Work{
			{Position: "Engineer", Company: "Acme", Keywords: []string{"python", "react"}},
			{Company: "Solo", Keywords: []string{"python"}},
			{Company: "None"},
		},
	}
	signals := &types.JobSignals{Skills: []string{"python", "react", "docker", "aws"}}

	result := NewRanker(nil).RankWithScores(resume, signals)

	require.Len(t, result.Work, 3)
	assert.Equal(t, "Engineer @ Acme", result.Work[0].Label)
	assert.Equal(t, "Moderate skill match (python, react)", result.Work[0].Notes)
	assert.Equal(t, "Weak skill match (python)", result.Work[1].Notes)
	assert.Equal(t, "No skill matches", result.Work[2].Notes)
}
