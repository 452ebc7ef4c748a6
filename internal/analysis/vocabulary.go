// Package analysis extracts lexical signals (skills, experience, education,
// frequent terms) from job description text.
package analysis

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabularyYAML []byte

// SkillGroup is a named list of known terms matched as a single alternation
type SkillGroup struct {
	Name  string   `yaml:"name"`
	Terms []string `yaml:"terms"`
}

// vocabularyFile is the on-disk YAML layout
type vocabularyFile struct {
	SkillGroups []SkillGroup `yaml:"skill_groups"`
	Stopwords   []string     `yaml:"stopwords"`
}

// Vocabulary is the read-only term table used for skill extraction and token
// filtering. Build it once and share it; nothing mutates it after construction.
type Vocabulary struct {
	groups    []SkillGroup
	patterns  []*regexp.Regexp
	stopwords map[string]struct{}
}

var defaultVocabulary = sync.OnceValues(func() (*Vocabulary, error) {
	return ParseVocabulary(defaultVocabularyYAML)
})

// DefaultVocabulary returns the built-in vocabulary
func DefaultVocabulary() *Vocabulary {
	v, err := defaultVocabulary()
	if err != nil {
		panic(fmt.Sprintf("embedded vocabulary is invalid: %v", err))
	}
	return v
}

// LoadVocabulary reads a vocabulary YAML file from disk
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file %s: %w", path, err)
	}
	v, err := ParseVocabulary(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary %s: %w", path, err)
	}
	return v, nil
}

// ParseVocabulary parses vocabulary YAML
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var file vocabularyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary YAML: %w", err)
	}
	return NewVocabulary(file.SkillGroups, file.Stopwords)
}

// NewVocabulary compiles skill groups and builds the stopword set
func NewVocabulary(groups []SkillGroup, stopwords []string) (*Vocabulary, error) {
	v := &Vocabulary{
		groups:    make([]SkillGroup, 0, len(groups)),
		patterns:  make([]*regexp.Regexp, 0, len(groups)),
		stopwords: make(map[string]struct{}, len(stopwords)),
	}

	for _, group := range groups {
		alternatives := make([]string, 0, len(group.Terms))
		terms := make([]string, 0, len(group.Terms))
		for _, term := range group.Terms {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" {
				continue
			}
			terms = append(terms, term)
			alternatives = append(alternatives, regexp.QuoteMeta(term))
		}
		if len(alternatives) == 0 {
			return nil, fmt.Errorf("skill group %q has no terms", group.Name)
		}

		pattern, err := regexp.Compile(strings.Join(alternatives, "|"))
		if err != nil {
			return nil, fmt.Errorf("skill group %q: %w", group.Name, err)
		}
		v.groups = append(v.groups, SkillGroup{Name: group.Name, Terms: terms})
		v.patterns = append(v.patterns, pattern)
	}

	for _, word := range stopwords {
		v.stopwords[strings.ToLower(word)] = struct{}{}
	}

	return v, nil
}

// Groups returns a copy of the skill groups
func (v *Vocabulary) Groups() []SkillGroup {
	out := make([]SkillGroup, len(v.groups))
	for i, g := range v.groups {
		out[i] = SkillGroup{Name: g.Name, Terms: append([]string(nil), g.Terms...)}
	}
	return out
}

// IsStopword reports whether word is in the stopword set
func (v *Vocabulary) IsStopword(word string) bool {
	_, ok := v.stopwords[word]
	return ok
}

// matchSkills applies every group pattern to already lower-cased text and
// returns all matches, group by group, in order of appearance.
func (v *Vocabulary) matchSkills(lowerText string) []string {
	var matches []string
	for _, pattern := range v.patterns {
		matches = append(matches, pattern.FindAllString(lowerText, -1)...)
	}
	return matches
}
