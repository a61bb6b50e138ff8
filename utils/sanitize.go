package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Sanitize strips all HTML from user supplied text fields (names, titles,
// biographies are plain text in this application) and trims whitespace.
func Sanitize(input string) string {
	return strings.TrimSpace(strict.Sanitize(input))
}
