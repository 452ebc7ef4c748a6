package pipeline

import (
	"fmt"
	"strings"
)

// PageMode selects whether the page budget is enforced
type PageMode string

// Recognized page modes
const (
	PageModeAuto       PageMode = "auto"
	PageModeSinglePage PageMode = "single-page"
	PageModeMultiPage  PageMode = "multi-page"
)

var pageModes = []PageMode{PageModeAuto, PageModeSinglePage, PageModeMultiPage}

// ParsePageMode parses a page mode name. An empty string selects auto.
func ParsePageMode(s string) (PageMode, error) {
	if s == "" {
		return PageModeAuto, nil
	}
	m := PageMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("invalid page mode %q (expected one of: %s)", s, pageModeList())
	}
	return m, nil
}

// Valid reports whether m is a recognized page mode
func (m PageMode) Valid() bool {
	for _, known := range pageModes {
		if m == known {
			return true
		}
	}
	return false
}

// Optimizes reports whether the content optimizer runs in this mode.
// Only multi-page skips it.
func (m PageMode) Optimizes() bool {
	return m != PageModeMultiPage
}

func pageModeList() string {
	names := make([]string, len(pageModes))
	for i, m := range pageModes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
