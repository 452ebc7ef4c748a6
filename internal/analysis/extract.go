package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// FrequentWordLimit is the number of most common terms kept in JobSignals
const FrequentWordLimit = 15

var (
	experiencePattern = regexp.MustCompile(`(?i)(\d+)\+?\s+years?\s+(?:of\s+)?experience`)
	// Abbreviations such as "b.s." are deliberately loose: the dots are
	// optional, so "ms" and "ba" also match inside ordinary words.
	educationPattern = regexp.MustCompile(`bachelor'?s?|master'?s?|phd|doctorate|b\.?s\.?|m\.?s\.?|b\.?a\.?|m\.?a\.?`)
)

// Extractor turns job description text into JobSignals.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	vocab     *Vocabulary
	tokenizer Tokenizer
}

// NewExtractor creates an extractor. A nil vocabulary selects the built-in
// one and a nil tokenizer selects the treebank strategy.
func NewExtractor(vocab *Vocabulary, tok Tokenizer) *Extractor {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	if tok == nil {
		tok, _ = NewTokenizer(StrategyTreebank)
	}
	return &Extractor{vocab: vocab, tokenizer: tok}
}

// Tokenizer returns the tokenizer used for frequency counting
func (e *Extractor) Tokenizer() Tokenizer {
	return e.tokenizer
}

// Extract analyzes job text. It never fails; empty input yields empty signals.
func (e *Extractor) Extract(jobText string) *types.JobSignals {
	lower := strings.ToLower(jobText)

	return &types.JobSignals{
		Skills:        e.skills(lower),
		Experience:    experienceYears(jobText),
		Education:     educationMatches(lower),
		FrequentWords: e.frequentWords(jobText),
	}
}

func (e *Extractor) skills(lower string) []string {
	seen := make(map[string]struct{})
	skills := []string{}
	for _, match := range e.vocab.matchSkills(lower) {
		if _, ok := seen[match]; ok {
			continue
		}
		seen[match] = struct{}{}
		skills = append(skills, match)
	}
	sort.Strings(skills)
	return skills
}

func experienceYears(text string) []string {
	years := []string{}
	for _, m := range experiencePattern.FindAllStringSubmatch(text, -1) {
		years = append(years, m[1])
	}
	return years
}

func educationMatches(lower string) []string {
	matches := educationPattern.FindAllString(lower, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

// frequentWords counts non-stopword alphanumeric tokens and returns the top
// FrequentWordLimit by descending count. Ties keep first-seen order.
func (e *Extractor) frequentWords(text string) []types.WordCount {
	counts := make(map[string]int)
	var order []string
	for _, token := range AlnumTokens(e.tokenizer, text) {
		if e.vocab.IsStopword(token) {
			continue
		}
		if _, ok := counts[token]; !ok {
			order = append(order, token)
		}
		counts[token]++
	}

	words := make([]types.WordCount, len(order))
	for i, w := range order {
		words[i] = types.WordCount{Word: w, Count: counts[w]}
	}
	sort.SliceStable(words, func(i, j int) bool {
		return words[i].Count > words[j].Count
	})

	if len(words) > FrequentWordLimit {
		words = words[:FrequentWordLimit]
	}
	return words
}
