package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	prompt, err := Get("generation.json", "job_description")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Format it as 3-5 bullet points")
}

func TestGet_InvalidFile(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	_, err := Get("generation.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{"none", "plain text", nil},
		{"in order", "{{.B}} and {{.A}} and {{.B}}", []string{"B", "A"}},
		{"unterminated", "{{.A}} then {{.B", []string{"A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Placeholders(tt.template))
		})
	}
}

func TestFormat(t *testing.T) {
	result := Format("Hello {{.Name}}, welcome to {{.Company}}!", map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	})
	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", result)
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	assert.Equal(t, template, Format(template, map[string]string{}))
}

func TestFormat_ValuesAreNotRescanned(t *testing.T) {
	for i := 0; i < 50; i++ {
		result := Format("{{.A}} / {{.B}}", map[string]string{
			"A": "Report to {{.B}}",
			"B": "{{.A}}",
		})
		require.Equal(t, "Report to {{.B}} / {{.A}}", result)
	}
}

func TestRender(t *testing.T) {
	prompt, err := Render("generation.json", "summary", map[string]string{
		"JobTitle": "Data Engineer",
		"Years":    "4",
		"Skills":   "Go, SQL",
	})
	require.NoError(t, err)
	assert.Equal(t,
		"Write a professional summary for a Data Engineer with 4 years of experience. "+
			"Skills include: Go, SQL. Keep it concise (3-4 sentences).",
		prompt)
}

func TestRender_UnfilledPlaceholder(t *testing.T) {
	_, err := Render("generation.json", "summary", map[string]string{"JobTitle": "Data Engineer"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unfilled placeholder {{.Years}}")
}

func TestRender_TemplateSyntaxInValues(t *testing.T) {
	prompt, err := Render("generation.json", "cover_letter_job_description", map[string]string{
		"JobDescription": "Maintain Helm charts using {{.Values.image}} templates. Report to {{.Name}}",
	})
	require.NoError(t, err)
	assert.Equal(t, " Job description: Maintain Helm charts using {{.Values.image}} templates. Report to {{.Name}}.", prompt)
}

func TestList(t *testing.T) {
	keys, err := List("generation.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"cover_letter", "cover_letter_job_description", "job_description", "summary"}, keys)
}

func TestEveryPromptRenders(t *testing.T) {
	keys, err := List("generation.json")
	require.NoError(t, err)

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			template, err := Get("generation.json", key)
			require.NoError(t, err)

			data := make(map[string]string)
			for _, name := range Placeholders(template) {
				data[name] = "x"
			}
			prompt, err := Render("generation.json", key, data)
			require.NoError(t, err)
			assert.NotContains(t, prompt, "{{.")
		})
	}
}
