package language

import (
	"strings"

	"golang.org/x/text/language"
)

// BaseCode reduces a BCP 47 tag to its ISO 639 base code, so a configured
// "en-US" compares equal to TMDB's original_language values, which are
// bare two-letter codes.
// Returns empty string when the tag cannot be identified.
func BaseCode(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}

	parsed, err := language.Parse(tag)
	if err != nil {
		return ""
	}

	base, conf := parsed.Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}

// Matches reports whether an item's original language matches the
// configured filter language, comparing base codes only.
func Matches(originalLanguage, filterTag string) bool {
	filter := BaseCode(filterTag)
	if filter == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(originalLanguage), filter)
}
