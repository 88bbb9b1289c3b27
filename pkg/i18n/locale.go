package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Locale is a language with an optional region.
// The zero value is the root locale, which carries no qualifier at all.
type Locale struct {
	Language string
	Region   string
}

var (
	// Root is the locale without language or region.
	Root = Locale{}

	// DefaultLocale backs the Default tier and is used when a locale string has no usable parts.
	DefaultLocale = Locale{Language: "en", Region: "US"}
)

// LocaleOf builds a locale from a language and region code.
// The language is lowercased and the region uppercased; blank values are dropped.
func LocaleOf(lang, region string) Locale {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return Root
	}
	return Locale{
		Language: lang,
		Region:   strings.ToUpper(strings.TrimSpace(region)),
	}
}

func (l Locale) normalized() Locale {
	return LocaleOf(l.Language, l.Region)
}

// ParseLocale decodes a canonical locale string such as "it_it" or "en".
// Blank segments are ignored, segments past the second are ignored,
// and a string without usable segments yields DefaultLocale. It never fails.
func ParseLocale(s string) Locale {
	parts := make([]string, 0, 2)
	for part := range strings.SplitSeq(s, "_") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		parts = append(parts, part)
		if len(parts) == 2 {
			break
		}
	}

	switch len(parts) {
	case 0:
		return DefaultLocale
	case 1:
		return LocaleOf(parts[0], "")
	default:
		return LocaleOf(parts[0], parts[1])
	}
}

// LocaleFromTag converts a BCP 47 tag into a Locale.
// Only an explicitly present region is kept; inferred regions are dropped.
func LocaleFromTag(tag language.Tag) Locale {
	if tag == language.Und {
		return Root
	}
	base, _ := tag.Base()
	region, conf := tag.Region()
	if conf != language.Exact {
		return LocaleOf(base.String(), "")
	}
	return LocaleOf(base.String(), region.String())
}

// String returns the canonical form: language, plus "_" and the lowercased region when present.
func (l Locale) String() string {
	if strings.TrimSpace(l.Region) == "" {
		return l.Language
	}
	return l.Language + "_" + strings.ToLower(l.Region)
}

// IsRoot reports whether the locale has no language.
func (l Locale) IsRoot() bool {
	return strings.TrimSpace(l.Language) == ""
}

// Equal compares language and region case-insensitively.
func (l Locale) Equal(other Locale) bool {
	return strings.EqualFold(strings.TrimSpace(l.Language), strings.TrimSpace(other.Language)) &&
		strings.EqualFold(strings.TrimSpace(l.Region), strings.TrimSpace(other.Region))
}

// Tag returns the BCP 47 tag for the locale, or language.Und when it cannot be parsed.
func (l Locale) Tag() language.Tag {
	if l.IsRoot() {
		return language.Und
	}
	s := l.Language
	if r := strings.TrimSpace(l.Region); r != "" {
		s += "-" + r
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und
	}
	return tag
}

// DisplayName returns the English name of the locale, e.g. "Italian (Italy)".
// Falls back to the canonical string when no name is known.
func (l Locale) DisplayName() string {
	if l.IsRoot() {
		return "root"
	}
	if name := display.Tags(language.English).Name(l.Tag()); name != "" {
		return name
	}
	return l.String()
}

// Candidates returns the lookup chain inside a single tier, most specific first:
// language_region, language, root.
func (l Locale) Candidates() []Locale {
	switch {
	case l.IsRoot():
		return []Locale{Root}
	case strings.TrimSpace(l.Region) == "":
		return []Locale{l, Root}
	default:
		return []Locale{l, {Language: l.Language}, Root}
	}
}
