package ingestion

import (
	"regexp"
	"strings"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9\s]+`)
	xmlTag          = regexp.MustCompile(`<[^>]*>`)
)

// CleanText lower-cases text, replaces every non-alphanumeric character with
// a space and collapses whitespace runs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}
	content = nonAlphanumeric.ReplaceAllString(content, " ")
	return strings.ToLower(strings.Join(strings.Fields(content), " "))
}

// stripXMLTags removes the WordprocessingML markup returned for DOCX bodies,
// leaving a space between runs.
func stripXMLTags(s string) string {
	return strings.Join(strings.Fields(xmlTag.ReplaceAllString(s, " ")), " ")
}
