package ranking

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// EducationFit compares the degree level a job mentions with the highest
// degree on the resume. It is informational; education entries are never
// reordered or removed.
type EducationFit struct {
	RequiredDegree  string `json:"required_degree,omitempty"`
	CandidateDegree string `json:"candidate_degree,omitempty"`
	Meets           bool   `json:"meets"`
	Reason          string `json:"reason"`
}

// degreeRank maps degree levels to numeric ranks for comparison
var degreeRank = map[string]int{
	"associate": 1,
	"bachelor":  2,
	"master":    3,
	"phd":       4,
}

// degreeAbbreviations maps dotless abbreviations to degree levels
var degreeAbbreviations = map[string]string{
	"aa": "associate", "as": "associate",
	"ba": "bachelor", "bs": "bachelor", "bsc": "bachelor", "beng": "bachelor",
	"ma": "master", "ms": "master", "msc": "master", "mba": "master", "meng": "master",
	"phd": "phd", "dphil": "phd",
}

// AssessEducation reports whether the resume's highest degree meets the highest
// degree level mentioned in the job signals
func AssessEducation(education []types.Education, signals *types.JobSignals) *EducationFit {
	fit := &EducationFit{}

	if signals != nil {
		for _, token := range signals.Education {
			if level := NormalizeDegree(token); degreeRank[level] > degreeRank[fit.RequiredDegree] {
				fit.RequiredDegree = level
			}
		}
	}
	for _, edu := range education {
		if level := NormalizeDegree(edu.StudyType); degreeRank[level] > degreeRank[fit.CandidateDegree] {
			fit.CandidateDegree = level
		}
	}

	reqRank := degreeRank[fit.RequiredDegree]
	eduRank := degreeRank[fit.CandidateDegree]
	switch {
	case reqRank == 0:
		fit.Meets = true
		fit.Reason = "no degree requirement detected"
	case eduRank == 0:
		fit.Reason = fmt.Sprintf("job mentions a %s degree; no degree found on resume", fit.RequiredDegree)
	case eduRank >= reqRank:
		fit.Meets = true
		fit.Reason = fmt.Sprintf("%s meets %s requirement", fit.CandidateDegree, fit.RequiredDegree)
	case eduRank == reqRank-1:
		fit.Reason = fmt.Sprintf("%s is one level below %s requirement", fit.CandidateDegree, fit.RequiredDegree)
	default:
		fit.Reason = fmt.Sprintf("%s is below %s requirement", fit.CandidateDegree, fit.RequiredDegree)
	}
	return fit
}

// NormalizeDegree maps a degree token or study type ("B.S.", "Master's",
// "Doctorate") to associate, bachelor, master or phd. Unknown values map to "".
func NormalizeDegree(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.NewReplacer(".", "", "'", "", "’", "").Replace(v)

	switch {
	case strings.HasPrefix(v, "associate"):
		return "associate"
	case strings.HasPrefix(v, "bachelor"):
		return "bachelor"
	case strings.HasPrefix(v, "master"):
		return "master"
	case strings.HasPrefix(v, "doctor"), strings.HasPrefix(v, "phd"):
		return "phd"
	}

	first := v
	if i := strings.IndexAny(v, " ,("); i >= 0 {
		first = v[:i]
	}
	return degreeAbbreviations[first]
}
