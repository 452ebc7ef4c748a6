package fetch

import (
	"net/url"
	"slices"
	"strings"
)

// Platform is an applicant tracking system that hosts job postings.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformUnknown    Platform = "unknown"
)

// platformRule ties host suffixes to the selectors that isolate the job text
// on that platform's pages.
type platformRule struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

var platformRules = []platformRule{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content: []string{
			".job__description.body",
			".job__description",
			".job-description__content",
			"#content",
			".job-post-container",
		},
		noise: []string{
			".application--wrapper",
			".voluntary-self-id",
			".voluntary-self-id-wrapper",
			"#usa_self_id_section",
			".post-apply",
		},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content: []string{
			".posting-page",
			".section-wrapper.page-full-width",
			".posting-description",
			".content",
		},
		noise: []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content: []string{
			"[data-automation-id='jobDescription']",
			".WDXK",
			".gwt-HTML",
			".job-description",
		},
		noise: []string{"[data-automation-id='applyButton']", ".application-section", ".WDAF"},
	},
	{
		platform: PlatformAshby,
		hosts:    []string{"ashbyhq.com"},
		content:  []string{"[class*='descriptionText']", "main"},
		noise:    []string{".ashby-application-form-container"},
	},
}

// commonNoise covers application forms, EEO/legal blocks, share buttons and
// cookie banners found on every platform.
var commonNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".application--container",
	".apply-button-container",
	"[data-testid='application-form']",
	".voluntary-disclosure",
	".eeo-statement",
	".eeo-section",
	"[data-testid='eeo']",
	".legal-disclosure",
	".self-identification",
	".social-share",
	".share-buttons",
	".social-links",
	".cookie-banner",
	".cookie-consent",
	".gdpr-notice",
}

func ruleFor(platform Platform) (platformRule, bool) {
	for _, r := range platformRules {
		if r.platform == platform {
			return r, true
		}
	}
	return platformRule{}, false
}

// DetectPlatform identifies the job board platform from a URL's host.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())

	for _, r := range platformRules {
		for _, h := range r.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return r.platform
			}
		}
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns the selectors tried, in order, to find the
// job description. Unknown platforms get the generic JobPostingSelectors.
func PlatformContentSelectors(platform Platform) []string {
	if r, ok := ruleFor(platform); ok {
		return slices.Clone(r.content)
	}
	return JobPostingSelectors()
}

// PlatformNoiseSelectors returns the elements removed before text extraction.
func PlatformNoiseSelectors(platform Platform) []string {
	noise := slices.Clone(commonNoise)
	if r, ok := ruleFor(platform); ok {
		noise = append(noise, r.noise...)
	}
	return noise
}
