package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	md, err := RenderMarkdown(sampleDocument())
	require.NoError(t, err)

	assert.Contains(t, md, "# Ada Lovelace")
	assert.Contains(t, md, "## Professional Summary")
	assert.Contains(t, md, "First programmer.")
	assert.Contains(t, md, "Sep 1842 - Present")
	assert.NotContains(t, md, "Education")
	assert.NotContains(t, md, ".template-modern", "styles stay out of the markdown")
}

func TestElementMarkdown_MissingElement(t *testing.T) {
	_, err := ElementMarkdown("<html><body><p>hi</p></body></html>", "resume-preview")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Element with ID resume-preview not found")
}
