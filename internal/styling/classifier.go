package styling

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/resume-tailor/internal/analysis"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/ranking"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Mode selects how a theme is chosen
type Mode string

// Supported modes
const (
	ModeNone  Mode = "none"
	ModeRules Mode = "rules"
	ModeLLM   Mode = "llm"
)

// ErrNoClient is returned when LLM styling is requested without a client
var ErrNoClient = errors.New("llm style mode requires a model client")

// Classifier chooses a theme for a job
type Classifier interface {
	Classify(ctx context.Context, signals *types.JobSignals) (Theme, error)
}

// NewClassifier builds the classifier for a mode. An empty mode means none.
func NewClassifier(mode Mode, client llm.Client) (Classifier, error) {
	switch mode {
	case "", ModeNone:
		return StaticClassifier{Theme: DefaultTheme()}, nil
	case ModeRules:
		return NewRuleClassifier(nil), nil
	case ModeLLM:
		if client == nil {
			return nil, ErrNoClient
		}
		return NewLLMClassifier(client, NewRuleClassifier(nil)), nil
	default:
		return nil, fmt.Errorf("invalid style mode %q (expected one of: none, rules, llm)", mode)
	}
}

// StaticClassifier always returns the same theme
type StaticClassifier struct {
	Theme Theme
}

// Classify returns the fixed theme
func (s StaticClassifier) Classify(context.Context, *types.JobSignals) (Theme, error) {
	return s.Theme, nil
}

// groupThemes maps vocabulary skill groups to the theme they vote for
var groupThemes = map[string]string{
	"languages":  ThemeTechnical,
	"cloud":      ThemeTechnical,
	"frameworks": ThemeCreative,
	"ml":         ThemeResearch,
	"practices":  ThemeCorporate,
}

// themePriority breaks ties between equal votes
var themePriority = []string{ThemeTechnical, ThemeCreative, ThemeResearch, ThemeCorporate}

// RuleClassifier votes for a theme from the vocabulary groups of the job's
// skills and frequent terms. A detected skill counts 2, a frequent term that
// is a known skill counts 1, and a doctorate requirement adds 2 to research.
// No votes selects the classic theme.
type RuleClassifier struct {
	termThemes map[string]string
}

// NewRuleClassifier builds a classifier over vocab (nil means the default)
func NewRuleClassifier(vocab *analysis.Vocabulary) *RuleClassifier {
	if vocab == nil {
		vocab = analysis.DefaultVocabulary()
	}
	termThemes := make(map[string]string)
	for _, group := range vocab.Groups() {
		theme, ok := groupThemes[group.Name]
		if !ok {
			continue
		}
		for _, term := range group.Terms {
			term = strings.ToLower(term)
			if _, seen := termThemes[term]; !seen {
				termThemes[term] = theme
			}
		}
	}
	return &RuleClassifier{termThemes: termThemes}
}

// Classify returns the theme with the most votes
func (c *RuleClassifier) Classify(_ context.Context, signals *types.JobSignals) (Theme, error) {
	if signals == nil {
		return DefaultTheme(), nil
	}

	votes := make(map[string]int)
	for _, skill := range signals.Skills {
		if theme, ok := c.termThemes[skill]; ok {
			votes[theme] += 2
		}
	}
	for _, wc := range signals.FrequentWords {
		if theme, ok := c.termThemes[wc.Word]; ok {
			votes[theme]++
		}
	}
	for _, degree := range signals.Education {
		if ranking.NormalizeDegree(degree) == "phd" {
			votes[ThemeResearch] += 2
			break
		}
	}

	best, bestVotes := ThemeClassic, 0
	for _, name := range themePriority {
		if votes[name] > bestVotes {
			best, bestVotes = name, votes[name]
		}
	}
	return themes[best], nil
}
