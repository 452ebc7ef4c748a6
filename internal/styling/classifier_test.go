package styling

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	answer string
	err    error
	prompt string
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompt = prompt
	return f.answer, f.err
}

func (f *fakeClient) Close() error { return nil }

func TestRuleClassifier(t *testing.T) {
	c := NewRuleClassifier(nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		signals  *types.JobSignals
		expected string
	}{
		{"nil signals", nil, ThemeClassic},
		{"no votes", &types.JobSignals{Skills: []string{}}, ThemeClassic},
		{"backend", &types.JobSignals{Skills: []string{"aws", "docker", "python"}}, ThemeTechnical},
		{"frontend", &types.JobSignals{Skills: []string{"angular", "react"}}, ThemeCreative},
		{"ml", &types.JobSignals{Skills: []string{"machine learning", "nlp"}}, ThemeResearch},
		{"doctorate", &types.JobSignals{Education: []string{"phd"}}, ThemeResearch},
		{"practices", &types.JobSignals{Skills: []string{"agile", "leadership"}}, ThemeCorporate},
		{"tie prefers technical", &types.JobSignals{Skills: []string{"python", "react"}}, ThemeTechnical},
		{
			"frequent words add votes",
			&types.JobSignals{
				Skills:        []string{"python", "react"},
				FrequentWords: []types.WordCount{{Word: "react", Count: 3}},
			},
			ThemeCreative,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := c.Classify(ctx, tt.signals)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, theme.Name)
		})
	}
}

func TestLLMClassifier_UsesModelAnswer(t *testing.T) {
	client := &fakeClient{answer: "```json\n{\"theme\": \"Creative\", \"reason\": \"design role\"}\n```"}
	c := NewLLMClassifier(client, NewRuleClassifier(nil))

	theme, err := c.Classify(context.Background(), &types.JobSignals{Skills: []string{"python"}})
	require.NoError(t, err)

	assert.Equal(t, ThemeCreative, theme.Name)
	assert.Contains(t, client.prompt, "Skills detected in the job posting: python")
	assert.Contains(t, client.prompt, "- research (serif")
	assert.NotContains(t, client.prompt, "{{.")
}

func TestLLMClassifier_FallsBack(t *testing.T) {
	signals := &types.JobSignals{Skills: []string{"kubernetes"}}

	tests := []struct {
		name   string
		client *fakeClient
	}{
		{"transport error", &fakeClient{err: errors.New("quota exceeded")}},
		{"not json", &fakeClient{answer: "I think classic"}},
		{"unknown theme", &fakeClient{answer: `{"theme": "neon"}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := NewLLMClassifier(tt.client, NewRuleClassifier(nil)).Classify(context.Background(), signals)
			require.NoError(t, err)
			assert.Equal(t, ThemeTechnical, theme.Name)
		})
	}
}

func TestNewClassifier(t *testing.T) {
	c, err := NewClassifier("", nil)
	require.NoError(t, err)
	theme, err := c.Classify(context.Background(), &types.JobSignals{Skills: []string{"react"}})
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme(), theme)

	c, err = NewClassifier(ModeRules, nil)
	require.NoError(t, err)
	assert.IsType(t, &RuleClassifier{}, c)

	_, err = NewClassifier(ModeLLM, nil)
	assert.ErrorIs(t, err, ErrNoClient)

	c, err = NewClassifier(ModeLLM, &fakeClient{})
	require.NoError(t, err)
	assert.IsType(t, &LLMClassifier{}, c)

	_, err = NewClassifier("sparkly", nil)
	assert.ErrorContains(t, err, "invalid style mode")
}
