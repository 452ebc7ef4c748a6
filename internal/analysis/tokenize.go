package analysis

import (
	"log"
	"strings"
	"unicode"

	"github.com/jdkato/prose/tokenize"
)

// Tokenizer splits text into word tokens
type Tokenizer interface {
	Tokenize(text string) []string
}

// Strategy names a tokenization strategy
type Strategy string

const (
	// StrategyTreebank splits sentences with punkt, then words with the Penn
	// Treebank rules, so trailing punctuation becomes its own token.
	StrategyTreebank Strategy = "treebank"
	// StrategyWhitespace splits on runs of whitespace only. This is the
	// degraded mode: "react." stays one token and is later dropped as non-alphanumeric.
	StrategyWhitespace Strategy = "whitespace"
)

// NewTokenizer returns the tokenizer for a strategy. An empty strategy selects
// treebank. Unknown strategies fall back to whitespace splitting and report
// degraded=true; this is not an error.
func NewTokenizer(strategy Strategy) (tok Tokenizer, degraded bool) {
	switch strategy {
	case StrategyTreebank, "":
		return newTreebankTokenizer(), false
	case StrategyWhitespace:
		return WhitespaceTokenizer{}, false
	default:
		log.Printf("Warning: tokenizer %q unavailable, using whitespace tokenization", strategy)
		return WhitespaceTokenizer{}, true
	}
}

// WhitespaceTokenizer splits on unicode whitespace
type WhitespaceTokenizer struct{}

// Tokenize implements Tokenizer
func (WhitespaceTokenizer) Tokenize(text string) []string {
	return strings.Fields(text)
}

type treebankTokenizer struct {
	sentences Tokenizer
	words     Tokenizer
}

func newTreebankTokenizer() *treebankTokenizer {
	return &treebankTokenizer{
		sentences: tokenize.NewPunktSentenceTokenizer(),
		words:     tokenize.NewTreebankWordTokenizer(),
	}
}

// Tokenize implements Tokenizer
func (t *treebankTokenizer) Tokenize(text string) []string {
	var tokens []string
	for _, sentence := range t.sentences.Tokenize(text) {
		tokens = append(tokens, t.words.Tokenize(sentence)...)
	}
	return tokens
}

// AlnumTokens lower-cases text, tokenizes it and keeps only tokens made
// entirely of letters and digits. A nil tokenizer uses whitespace splitting.
func AlnumTokens(tok Tokenizer, text string) []string {
	if tok == nil {
		tok = WhitespaceTokenizer{}
	}
	raw := tok.Tokenize(strings.ToLower(text))
	out := make([]string, 0, len(raw))
	for _, token := range raw {
		if isAlnum(token) {
			out = append(out, token)
		}
	}
	return out
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
