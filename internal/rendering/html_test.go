package rendering

import (
	"testing"

	"github.com/jonathan/resume-tailor/internal/styling"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(types.ExampleResume(), styling.DefaultTheme())
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Your Name</title>")
	assert.Contains(t, html, "<h1>Your Name</h1>")
	assert.Contains(t, html, "color: #1F2937")
	assert.Contains(t, html, "serif")
	assert.Contains(t, html, "<h3>Job Title at Company Name</h3>")
	assert.Contains(t, html, `<p class="dates">2018 - 2021</p>`)
	assert.Contains(t, html, "<li><strong>Programming:</strong> Python, Java, C&#43;&#43;</li>")
	assert.Contains(t, html, `<a href="https://project.com">Project Name</a>`)
	assert.Contains(t, html, "Relevant Coursework: Course 1, Course 2")
	assert.NotContains(t, html, "Job Match Analysis")
}

func TestRenderHTML_EscapesContent(t *testing.T) {
	resume := &types.Resume{
		Basics: &types.Basics{Name: "<script>alert(1)</script>"},
		Work:   []types.Work{{Company: "A & B", Position: "Dev"}},
	}

	html, err := RenderHTML(resume, styling.DefaultTheme())
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "Dev at A &amp; B")
}

func TestRenderHTML_ThemeColors(t *testing.T) {
	theme, err := styling.Lookup(styling.ThemeCreative)
	require.NoError(t, err)

	html, err := RenderHTML(&types.Resume{}, theme)
	require.NoError(t, err)

	assert.Contains(t, html, "#4C1D95")
	assert.Contains(t, html, "#DB2777")
	assert.Contains(t, html, "sans-serif")
	assert.Contains(t, html, "<h1>Your Name</h1>")
}
