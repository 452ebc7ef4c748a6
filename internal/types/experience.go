package types

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the date format used by resume entries
const DateLayout = "2006-01-02"

const daysPerYear = 365.25

// DateError reports a single malformed date field
type DateError struct {
	Section string // e.g. "work[2]"
	Field   string // startDate or endDate
	Value   string
	Cause   error
}

func (e *DateError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s.%s: missing date", e.Section, e.Field)
	}
	return fmt.Sprintf("%s.%s: invalid date %q: %v", e.Section, e.Field, e.Value, e.Cause)
}

func (e *DateError) Unwrap() error {
	return e.Cause
}

// Years returns the length of the position in years. An empty or "Present"
// end date counts up to now.
func (w Work) Years(now time.Time) (float64, error) {
	start, err := parseDate(w.StartDate)
	if err != nil {
		return 0, &DateError{Field: "startDate", Value: w.StartDate, Cause: err}
	}

	end := now
	if w.EndDate != "" && !strings.EqualFold(w.EndDate, PresentDate) {
		end, err = parseDate(w.EndDate)
		if err != nil {
			return 0, &DateError{Field: "endDate", Value: w.EndDate, Cause: err}
		}
	}

	days := end.Sub(start).Hours() / 24
	return days / daysPerYear, nil
}

// TotalExperience sums the years of every work entry. Entries with malformed
// dates are skipped and reported individually.
func TotalExperience(r *Resume, now time.Time) (float64, []*DateError) {
	if r == nil {
		return 0, nil
	}

	total := 0.0
	var errs []*DateError
	for i, w := range r.Work {
		years, err := w.Years(now)
		if err != nil {
			dateErr := err.(*DateError)
			dateErr.Section = fmt.Sprintf("work[%d]", i)
			errs = append(errs, dateErr)
			continue
		}
		total += years
	}
	return total, errs
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	return time.Parse(DateLayout, value)
}
