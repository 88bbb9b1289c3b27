package i18n

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// numericDates builds the four date styles from a day-month-year layout such as "02.01.2006".
func numericDates(short, medium string) LocaleFormatOption {
	return WithDateLayouts(short, medium, medium, "Monday "+medium)
}

var clock24 = WithTimeLayouts("15:04", "15:04:05", "15:04:05 MST", "15:04:05 MST")

// FormatEnUS returns the en_US conventions.
func FormatEnUS() *LocaleFormat {
	return NewLocaleFormat()
}

// FormatEnGB returns the en_GB conventions.
func FormatEnGB() *LocaleFormat {
	return NewLocaleFormat(
		WithCurrency("£", "GBP", 2),
		WithDateLayouts("02/01/2006", "2 Jan 2006", "2 January 2006", "Monday, 2 January 2006"),
		clock24,
	)
}

// FormatDeDE returns the de_DE conventions.
func FormatDeDE() *LocaleFormat {
	return NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator("."),
		WithCurrency("€", "EUR", 2),
		WithCurrencyPosition("after"),
		numericDates("02.01.06", "02.01.2006"),
		clock24,
	)
}

// FormatFrFR returns the fr_FR conventions.
func FormatFrFR() *LocaleFormat {
	return NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator(" "),
		WithCurrency("€", "EUR", 2),
		WithCurrencyPosition("after"),
		WithPercentSymbol(" %"),
		numericDates("02/01/2006", "02/01/2006"),
		clock24,
	)
}

// FormatItIT returns the it_IT conventions.
func FormatItIT() *LocaleFormat {
	return NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator("."),
		WithCurrency("€", "EUR", 2),
		WithCurrencyPosition("after"),
		numericDates("02/01/06", "02/01/2006"),
		clock24,
	)
}

// FormatEsES returns the es_ES conventions.
func FormatEsES() *LocaleFormat {
	return NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator("."),
		WithCurrency("€", "EUR", 2),
		WithCurrencyPosition("after"),
		numericDates("02/01/06", "02/01/2006"),
		clock24,
	)
}

// FormatPtBR returns the pt_BR conventions.
func FormatPtBR() *LocaleFormat {
	return NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator("."),
		WithCurrency("R$", "BRL", 2),
		numericDates("02/01/2006", "02/01/2006"),
		clock24,
	)
}

// FormatJaJP returns the ja_JP conventions.
func FormatJaJP() *LocaleFormat {
	return NewLocaleFormat(
		WithCurrency("¥", "JPY", 0),
		WithDateLayouts("2006/01/02", "2006/01/02", "2006年1月2日", "2006年1月2日 Monday"),
		clock24,
	)
}

// FormatZhCN returns the zh_CN conventions.
func FormatZhCN() *LocaleFormat {
	return NewLocaleFormat(
		WithCurrency("¥", "CNY", 2),
		WithDateLayouts("2006/1/2", "2006-01-02", "2006年1月2日", "2006年1月2日 Monday"),
		clock24,
	)
}

// FormatKoKR returns the ko_KR conventions.
func FormatKoKR() *LocaleFormat {
	return NewLocaleFormat(
		WithCurrency("₩", "KRW", 0),
		WithDateLayouts("06. 1. 2.", "2006. 1. 2.", "2006년 1월 2일", "2006년 1월 2일 Monday"),
		clock24,
	)
}

// FormatPlPL returns the pl_PL conventions.
func FormatPlPL() *LocaleFormat {
	return NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator(" "),
		WithCurrency("zł", "PLN", 2),
		WithCurrencyPosition("after"),
		numericDates("02.01.2006", "02.01.2006"),
		clock24,
	)
}

// FormatRuRU returns the ru_RU conventions.
func FormatRuRU() *LocaleFormat {
	return NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator(" "),
		WithCurrency("₽", "RUB", 2),
		WithCurrencyPosition("after"),
		numericDates("02.01.2006", "02.01.2006"),
		clock24,
	)
}

// predefinedFormats is ordered for the matcher; the first entry is the fallback.
var predefinedFormats = []struct {
	tag    language.Tag
	format func() *LocaleFormat
}{
	{language.AmericanEnglish, FormatEnUS},
	{language.BritishEnglish, FormatEnGB},
	{language.MustParse("de-DE"), FormatDeDE},
	{language.MustParse("fr-FR"), FormatFrFR},
	{language.MustParse("it-IT"), FormatItIT},
	{language.MustParse("es-ES"), FormatEsES},
	{language.MustParse("pt-BR"), FormatPtBR},
	{language.MustParse("ja-JP"), FormatJaJP},
	{language.MustParse("zh-CN"), FormatZhCN},
	{language.MustParse("ko-KR"), FormatKoKR},
	{language.MustParse("pl-PL"), FormatPlPL},
	{language.MustParse("ru-RU"), FormatRuRU},
}

var formatMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(predefinedFormats))
	for i, p := range predefinedFormats {
		tags[i] = p.tag
	}
	return language.NewMatcher(tags)
}()

// FormatForLocale returns the conventions closest to l.
// When l names a region whose currency differs from the matched conventions,
// the currency is replaced by the region's ISO 4217 currency, written as its code.
func FormatForLocale(l Locale) *LocaleFormat {
	tag := l.Tag()
	_, idx, conf := formatMatcher.Match(tag)
	if conf == language.No || idx < 0 || idx >= len(predefinedFormats) {
		idx = 0
	}
	lf := predefinedFormats[idx].format()

	if l.Region == "" {
		return lf
	}
	region, err := language.ParseRegion(l.Region)
	if err != nil {
		return lf
	}
	unit, ok := currency.FromRegion(region)
	if !ok || unit.String() == lf.currencyCode {
		return lf
	}
	digits, _ := currency.Standard.Rounding(unit)
	regional := *lf
	regional.currencySymbol = unit.String()
	regional.currencyCode = unit.String()
	regional.currencyDigits = digits
	return &regional
}
