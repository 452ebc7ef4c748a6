package types

import "slices"

// JobSignals is the lexical analysis of a job description
type JobSignals struct {
	Skills        []string    `json:"skills"`        // lower-case, deduplicated, sorted
	Experience    []string    `json:"experience"`    // digit groups in match order
	Education     []string    `json:"education"`     // raw degree tokens in match order
	FrequentWords []WordCount `json:"frequentWords"` // top terms by descending count
}

// WordCount is a term and the number of times it occurs
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Clone returns a deep copy of the signals
func (s *JobSignals) Clone() *JobSignals {
	if s == nil {
		return nil
	}
	return &JobSignals{
		Skills:        slices.Clone(s.Skills),
		Experience:    slices.Clone(s.Experience),
		Education:     slices.Clone(s.Education),
		FrequentWords: slices.Clone(s.FrequentWords),
	}
}
