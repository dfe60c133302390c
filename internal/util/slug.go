package util

import (
	"strings"
	"unicode"
)

const maxSlugLength = 120

// Slugify derives a URL-safe identifier from a title: lowercase ASCII
// letters, digits and single hyphens. Returns "" when nothing usable
// remains, letting the caller decide on a fallback.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true

	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r) && r < 128:
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.Trim(slug[:maxSlugLength], "-")
	}

	return slug
}

// IsValidSlug reports whether a caller-supplied slug already satisfies the
// Slugify shape.
func IsValidSlug(slug string) bool {
	return slug != "" && slug == Slugify(slug)
}
