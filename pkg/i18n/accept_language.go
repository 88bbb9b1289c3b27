package i18n

import (
	"golang.org/x/text/language"
)

// maxAcceptLanguageLength prevents DoS attacks through oversized Accept-Language headers.
const maxAcceptLanguageLength = 4096

// MatchLocale picks the supported locale that best serves an Accept-Language header.
// q-values are honored and "de-AT" is served by "de_de" when that is the closest match.
// Returns the first supported locale when nothing matches, and DefaultLocale when
// supported is empty.
func MatchLocale(header string, supported []Locale) Locale {
	if len(supported) == 0 {
		return DefaultLocale
	}
	if header == "" {
		return supported[0]
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(desired) == 0 {
		return supported[0]
	}

	tags := make([]language.Tag, len(supported))
	for i, l := range supported {
		tags[i] = l.Tag()
	}

	_, idx, conf := language.NewMatcher(tags).Match(desired...)
	if conf == language.No || idx < 0 || idx >= len(supported) {
		return supported[0]
	}
	return supported[idx]
}
