package styling

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/types"
)

// LLMClassifier asks a model to pick one of the built-in themes. Any failure
// (transport, malformed answer, unknown theme) falls back to the wrapped
// classifier, so Classify only errors when the fallback does.
type LLMClassifier struct {
	client   llm.Client
	fallback Classifier
	tier     llm.ModelTier
}

// NewLLMClassifier creates a model-backed classifier. A nil fallback uses
// the default theme.
func NewLLMClassifier(client llm.Client, fallback Classifier) *LLMClassifier {
	if fallback == nil {
		fallback = StaticClassifier{Theme: DefaultTheme()}
	}
	return &LLMClassifier{client: client, fallback: fallback, tier: llm.TierLite}
}

type themeAnswer struct {
	Theme  string `json:"theme"`
	Reason string `json:"reason"`
}

// Classify asks the model for a theme, falling back on any error
func (c *LLMClassifier) Classify(ctx context.Context, signals *types.JobSignals) (Theme, error) {
	theme, err := c.ask(ctx, signals)
	if err != nil {
		log.Printf("Warning: model style classification failed, using fallback: %v", err)
		return c.fallback.Classify(ctx, signals)
	}
	return theme, nil
}

func (c *LLMClassifier) ask(ctx context.Context, signals *types.JobSignals) (Theme, error) {
	template, err := prompts.Get("styling.json", "classify-theme")
	if err != nil {
		return Theme{}, err
	}

	prompt := prompts.Format(template, promptData(signals))
	text, err := c.client.GenerateJSON(ctx, prompt, c.tier)
	if err != nil {
		return Theme{}, err
	}

	var answer themeAnswer
	if err := llm.DecodeJSON(text, &answer); err != nil {
		return Theme{}, err
	}
	theme, err := Lookup(answer.Theme)
	if err != nil {
		return Theme{}, fmt.Errorf("model answered with %w", err)
	}
	return theme, nil
}

func promptData(signals *types.JobSignals) map[string]string {
	if signals == nil {
		signals = &types.JobSignals{}
	}

	var themeLines []string
	for _, name := range Names() {
		t := themes[name]
		themeLines = append(themeLines, fmt.Sprintf("- %s (%s, accent %s)", t.Name, t.FontFamily, t.AccentColor))
	}
	terms := make([]string, len(signals.FrequentWords))
	for i, wc := range signals.FrequentWords {
		terms[i] = wc.Word
	}

	return map[string]string{
		"Themes":    strings.Join(themeLines, "\n"),
		"Skills":    orNone(signals.Skills),
		"Education": orNone(signals.Education),
		"Terms":     orNone(terms),
	}
}

func orNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
