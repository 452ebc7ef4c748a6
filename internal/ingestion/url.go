package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jonathan/resume-tailor/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = errors.New("content extraction failed")
	// ErrNoContent is returned when a posting has no text left after cleaning
	ErrNoContent = errors.New("job posting has no text")
)

// renderWithBrowser is replaced in tests
var renderWithBrowser fetch.BrowserFunc = fetch.RenderWithBrowser

// IngestURL fetches a job posting, extracts its text with platform-specific
// selectors and cleans it. With useBrowser, a page whose text is shorter than
// fetch.MinContentLength is re-rendered in a headless browser; a browser
// failure keeps the HTTP text.
func IngestURL(ctx context.Context, urlStr string, useBrowser bool, verbose bool) (string, *Metadata, error) {
	platform := fetch.DetectPlatform(urlStr)
	if verbose {
		log.Printf("[VERBOSE] URL: %s", urlStr)
		log.Printf("[VERBOSE] Detected platform: %s", platform)
	}

	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	if verbose {
		log.Printf("[VERBOSE] Fetched HTML: %d bytes", len(result.HTML))
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	textContent, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	if verbose {
		log.Printf("[VERBOSE] Extracted text: %d chars", len(textContent))
	}

	if useBrowser && fetch.ShouldUseBrowser(textContent) {
		if verbose {
			log.Printf("[VERBOSE] Content too short (%d chars < %d), falling back to browser rendering...",
				len(textContent), fetch.MinContentLength)
		}
		textContent = browserText(ctx, urlStr, textContent, contentSelectors, noiseSelectors, verbose)
	}

	cleaned := CleanText(textContent)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%w: %s", ErrNoContent, urlStr)
	}
	if verbose {
		log.Printf("[VERBOSE] Cleaned text: %d chars", len(cleaned))
	}

	metadata := NewMetadata(cleaned, urlStr)
	metadata.URL = urlStr
	metadata.Platform = string(platform)
	metadata.Format = FormatHTML
	return cleaned, metadata, nil
}

// browserText returns the text of the browser-rendered page, or fallback
// when rendering or extraction fails
func browserText(ctx context.Context, urlStr, fallback string, contentSelectors, noiseSelectors []string, verbose bool) string {
	html, err := renderWithBrowser(ctx, urlStr, verbose)
	if err != nil {
		if verbose {
			log.Printf("[VERBOSE] Browser rendering failed: %v, using HTTP content", err)
		}
		return fallback
	}

	text, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		if verbose {
			log.Printf("[VERBOSE] Browser content extraction failed: %v", err)
		}
		return fallback
	}
	if verbose {
		log.Printf("[VERBOSE] Browser extracted text: %d chars", len(text))
	}
	return text
}
