package i18n

import "strings"

// Plural categories as named by Unicode CLDR.
const (
	PluralZero  = "zero"
	PluralOne   = "one"
	PluralTwo   = "two"
	PluralFew   = "few"
	PluralMany  = "many"
	PluralOther = "other"
)

// PluralRule maps an integer count to its CLDR category.
type PluralRule func(n int) string

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// OneOtherRule covers English, German, Dutch, Italian, Spanish and the Nordic languages.
var OneOtherRule PluralRule = func(n int) string {
	if abs(n) == 1 {
		return PluralOne
	}
	return PluralOther
}

// FrenchRule treats 0 and 1 as singular (French, Brazilian Portuguese).
var FrenchRule PluralRule = func(n int) string {
	if abs(n) <= 1 {
		return PluralOne
	}
	return PluralOther
}

// EastSlavicRule covers Russian, Ukrainian, Belarusian and the Serbo-Croatian languages.
var EastSlavicRule PluralRule = func(n int) string {
	n = abs(n)
	mod10, mod100 := n%10, n%100
	switch {
	case mod10 == 1 && mod100 != 11:
		return PluralOne
	case mod10 >= 2 && mod10 <= 4 && (mod100 < 12 || mod100 > 14):
		return PluralFew
	default:
		return PluralMany
	}
}

// PolishRule: one for 1, few for 2-4 outside the teens, many otherwise.
var PolishRule PluralRule = func(n int) string {
	n = abs(n)
	mod10, mod100 := n%10, n%100
	switch {
	case n == 1:
		return PluralOne
	case mod10 >= 2 && mod10 <= 4 && (mod100 < 12 || mod100 > 14):
		return PluralFew
	default:
		return PluralMany
	}
}

// CzechRule covers Czech and Slovak.
var CzechRule PluralRule = func(n int) string {
	switch abs(n) {
	case 1:
		return PluralOne
	case 2, 3, 4:
		return PluralFew
	default:
		return PluralOther
	}
}

// ArabicRule uses all six categories.
var ArabicRule PluralRule = func(n int) string {
	n = abs(n)
	mod100 := n % 100
	switch {
	case n == 0:
		return PluralZero
	case n == 1:
		return PluralOne
	case n == 2:
		return PluralTwo
	case mod100 >= 3 && mod100 <= 10:
		return PluralFew
	case mod100 >= 11:
		return PluralMany
	default:
		return PluralOther
	}
}

// InvariantRule is for languages without grammatical number (Japanese, Chinese, Korean...).
var InvariantRule PluralRule = func(int) string {
	return PluralOther
}

var pluralRules = map[string]PluralRule{
	"en": OneOtherRule, "de": OneOtherRule, "nl": OneOtherRule, "it": OneOtherRule,
	"es": OneOtherRule, "sv": OneOtherRule, "nb": OneOtherRule, "no": OneOtherRule,
	"da": OneOtherRule, "fi": OneOtherRule, "el": OneOtherRule, "hu": OneOtherRule,
	"fr": FrenchRule, "pt": FrenchRule,
	"ru": EastSlavicRule, "uk": EastSlavicRule, "be": EastSlavicRule,
	"hr": EastSlavicRule, "sr": EastSlavicRule, "bs": EastSlavicRule,
	"pl": PolishRule,
	"cs": CzechRule, "sk": CzechRule,
	"ar": ArabicRule,
	"ja": InvariantRule, "zh": InvariantRule, "ko": InvariantRule, "th": InvariantRule,
	"vi": InvariantRule, "id": InvariantRule, "ms": InvariantRule,
}

// PluralRuleFor returns the rule for the locale language, OneOtherRule when unknown.
func PluralRuleFor(l Locale) PluralRule {
	if rule, ok := pluralRules[strings.ToLower(l.Language)]; ok {
		return rule
	}
	return OneOtherRule
}

// PluralForms lists the categories a rule can produce, in CLDR order.
// Useful for checking that a plural template covers every case.
func PluralForms(rule PluralRule) []string {
	seen := make(map[string]bool)
	for _, n := range []int{0, 1, 2, 3, 4, 5, 10, 11, 12, 14, 21, 22, 25, 100, 101, 111, 1000} {
		seen[rule(n)] = true
	}

	var forms []string
	for _, form := range []string{PluralZero, PluralOne, PluralTwo, PluralFew, PluralMany, PluralOther} {
		if seen[form] {
			forms = append(forms, form)
		}
	}
	return forms
}
