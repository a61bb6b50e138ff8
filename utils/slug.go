package utils

import "strings"

// slugMaxLen bounds generated slugs so they fit indexed varchar columns.
const slugMaxLen = 100

// Slugify converts arbitrary text into a lowercase, hyphen-separated,
// URL-safe token. Any run of characters outside [a-z0-9] collapses into a
// single hyphen; leading and trailing hyphens are trimmed. The result is
// never empty: when nothing survives, the fallback is returned so callers
// always get a usable token.
func Slugify(s, fallback string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastWasDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasDash = false
		default:
			if !lastWasDash {
				b.WriteRune('-')
				lastWasDash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return fallback
	}
	if len(slug) > slugMaxLen {
		slug = strings.TrimRight(slug[:slugMaxLen], "-")
	}
	return slug
}

// SlugPrefix returns the first n hyphen-separated segments of a slug,
// used to build short directory names for stored post photos.
func SlugPrefix(slug string, n int) string {
	parts := strings.Split(slug, "-")
	if len(parts) > n {
		parts = parts[:n]
	}
	return strings.Join(parts, "-")
}
