package util

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Post and comment bodies are plain text
var textPolicy = bluemonday.StrictPolicy()

// SanitizeText strips markup and surrounding whitespace. The result is
// unescaped; templates escape it again on output.
func SanitizeText(val string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(val)))
}
