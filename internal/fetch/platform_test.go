package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/company/abc-123", PlatformLever},
		{"https://company.wd5.myworkdayjobs.com/en-US/External/job/123", PlatformWorkday},
		{"https://jobs.ashbyhq.com/company/456", PlatformAshby},
		{"https://example.com/careers/engineer", PlatformUnknown},
		{"://bad url", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformContentSelectors(t *testing.T) {
	assert.Equal(t, ".job__description.body", PlatformContentSelectors(PlatformGreenhouse)[0])
	assert.Contains(t, PlatformContentSelectors(PlatformLever), ".posting-description")
	assert.Contains(t, PlatformContentSelectors(PlatformAshby), "main")
	assert.Equal(t, JobPostingSelectors(), PlatformContentSelectors(PlatformUnknown))
}

func TestPlatformNoiseSelectors(t *testing.T) {
	common := PlatformNoiseSelectors(PlatformUnknown)
	assert.Contains(t, common, "form")
	assert.Contains(t, common, ".eeo-statement")

	greenhouse := PlatformNoiseSelectors(PlatformGreenhouse)
	assert.Contains(t, greenhouse, "#usa_self_id_section")
	assert.Greater(t, len(greenhouse), len(common))
}

func TestPlatformSelectors_ReturnCopies(t *testing.T) {
	selectors := PlatformContentSelectors(PlatformLever)
	selectors[0] = "mutated"
	assert.Equal(t, ".posting-page", PlatformContentSelectors(PlatformLever)[0])

	noise := PlatformNoiseSelectors(PlatformAshby)
	assert.Contains(t, noise, ".ashby-application-form-container")
	assert.NotContains(t, PlatformNoiseSelectors(PlatformUnknown), ".ashby-application-form-container")
}
