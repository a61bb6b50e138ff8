package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Ada Lovelace", "ada-lovelace"},
		{"Hello, World!", "hello-world"},
		{"  spaced   out  ", "spaced-out"},
		{"UPPER_case.mixed", "upper-case-mixed"},
		{"100% Go", "100-go"},
		{"---", "fallback"},
		{"", "fallback"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Slugify(c.in, "fallback"), "input %q", c.in)
	}
}

func TestSlugifyTruncates(t *testing.T) {
	long := strings.Repeat("word ", 50)
	slug := Slugify(long, "fallback")
	assert.LessOrEqual(t, len(slug), 100)
	assert.False(t, strings.HasSuffix(slug, "-"))
}

func TestSlugPrefix(t *testing.T) {
	assert.Equal(t, "ada-lovelace-hello", SlugPrefix("ada-lovelace-hello-world", 3))
	assert.Equal(t, "short", SlugPrefix("short", 3))
	assert.Equal(t, "a-b", SlugPrefix("a-b", 3))
}
