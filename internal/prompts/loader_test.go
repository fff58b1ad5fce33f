package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("career.json", "career-label")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Profile}}")
	assert.Contains(t, prompt, "{{.Labels}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("career.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	ClearCache()

	assert.NotPanics(t, func() {
		assert.NotEmpty(t, MustGet("career.json", "career-label-system"))
	})
}

func TestFormat(t *testing.T) {
	out := Format("Hello {{.Name}}, role {{.Role}} {{.Unknown}}", map[string]string{
		"Name": "Asha",
		"Role": "data analyst",
	})
	assert.Equal(t, "Hello Asha, role data analyst {{.Unknown}}", out)
}

func TestRender(t *testing.T) {
	out, err := Render("career.json", "career-label", map[string]string{
		"System":  "sys",
		"Labels":  "- data analyst",
		"Profile": "python sql",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "- data analyst")
	assert.Contains(t, out, "python sql")
	assert.NotContains(t, out, "{{.Profile}}")
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("career.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"career-label", "career-label-system"}, keys)
}
