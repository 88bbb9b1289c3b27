package i18n

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Style selects one of the four predefined date or time lengths.
type Style int

const (
	StyleShort Style = iota
	StyleMedium
	StyleLong
	StyleFull
)

// ParseStyle maps "short", "medium", "long", "full" and "" (medium) to a Style.
func ParseStyle(s string) (Style, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "short":
		return StyleShort, true
	case "", "medium":
		return StyleMedium, true
	case "long":
		return StyleLong, true
	case "full":
		return StyleFull, true
	default:
		return 0, false
	}
}

// LocaleFormat holds the number, currency and date conventions of one locale.
// It is immutable after creation and safe for concurrent use.
type LocaleFormat struct {
	decimalSeparator  string
	thousandSeparator string
	currencySymbol    string
	currencyCode      string
	currencyDigits    int
	currencyAfter     bool
	percentSymbol     string
	dateLayouts       [4]string
	timeLayouts       [4]string
}

// LocaleFormatOption configures a LocaleFormat during construction.
type LocaleFormatOption func(*LocaleFormat)

// NewLocaleFormat creates a LocaleFormat. Without options it formats like en_US.
func NewLocaleFormat(opts ...LocaleFormatOption) *LocaleFormat {
	lf := &LocaleFormat{
		decimalSeparator:  ".",
		thousandSeparator: ",",
		currencySymbol:    "$",
		currencyCode:      "USD",
		currencyDigits:    2,
		percentSymbol:     "%",
		dateLayouts:       [4]string{"1/2/06", "Jan 2, 2006", "January 2, 2006", "Monday, January 2, 2006"},
		timeLayouts:       [4]string{"3:04 PM", "3:04:05 PM", "3:04:05 PM MST", "3:04:05 PM MST"},
	}

	for _, opt := range opts {
		opt(lf)
	}

	return lf
}

// WithDecimalSeparator sets the decimal separator.
func WithDecimalSeparator(sep string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.decimalSeparator = sep
	}
}

// WithThousandSeparator sets the grouping separator.
func WithThousandSeparator(sep string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.thousandSeparator = sep
	}
}

// WithCurrency sets the currency symbol, ISO 4217 code and number of fraction digits.
func WithCurrency(symbol, code string, digits int) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.currencySymbol = symbol
		lf.currencyCode = code
		if digits >= 0 {
			lf.currencyDigits = digits
		}
	}
}

// WithCurrencyPosition sets where the symbol goes: "before" or "after" the amount.
func WithCurrencyPosition(pos string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		switch pos {
		case "before":
			lf.currencyAfter = false
		case "after":
			lf.currencyAfter = true
		}
	}
}

// WithPercentSymbol sets the percent symbol.
func WithPercentSymbol(symbol string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.percentSymbol = symbol
	}
}

// WithDateLayouts sets the Go layouts for the short, medium, long and full date styles.
func WithDateLayouts(short, medium, long, full string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.dateLayouts = [4]string{short, medium, long, full}
	}
}

// WithTimeLayouts sets the Go layouts for the short, medium, long and full time styles.
func WithTimeLayouts(short, medium, long, full string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.timeLayouts = [4]string{short, medium, long, full}
	}
}

// CurrencyCode returns the ISO 4217 code of the locale currency.
func (lf *LocaleFormat) CurrencyCode() string {
	return lf.currencyCode
}

// FormatNumber formats n with grouping and at most three fraction digits.
func (lf *LocaleFormat) FormatNumber(n float64) string {
	return lf.FormatDecimal(n, 0, 3, true)
}

// FormatInteger rounds n half-even to a whole number and formats it with grouping.
func (lf *LocaleFormat) FormatInteger(n float64) string {
	return lf.FormatDecimal(math.RoundToEven(n), 0, 0, true)
}

// FormatDecimal formats n with between minFrac and maxFrac fraction digits.
// Trailing zeros past minFrac are dropped.
func (lf *LocaleFormat) FormatDecimal(n float64, minFrac, maxFrac int, grouping bool) string {
	return lf.formatDecimal(n, 1, minFrac, maxFrac, grouping)
}

func (lf *LocaleFormat) formatDecimal(n float64, minInt, minFrac, maxFrac int, grouping bool) string {
	if math.IsNaN(n) {
		return "NaN"
	}
	if math.IsInf(n, 0) {
		if n < 0 {
			return "-∞"
		}
		return "∞"
	}
	maxFrac = max(maxFrac, minFrac, 0)

	s := strconv.FormatFloat(math.Abs(n), 'f', maxFrac, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")
	for len(frac) < minFrac {
		frac += "0"
	}
	if minInt == 0 && intPart == "0" && frac != "" {
		intPart = ""
	}
	for len(intPart) < minInt {
		intPart = "0" + intPart
	}
	if grouping {
		intPart = groupDigits(intPart, lf.thousandSeparator)
	}

	result := intPart
	if frac != "" {
		result += lf.decimalSeparator + frac
	}
	if n < 0 && strings.ContainsAny(s, "123456789") {
		result = "-" + result
	}
	return result
}

// FormatCurrency formats amount with the locale currency symbol and digits.
func (lf *LocaleFormat) FormatCurrency(amount float64) string {
	num := lf.FormatDecimal(math.Abs(amount), lf.currencyDigits, lf.currencyDigits, true)

	var result string
	switch {
	case lf.currencyAfter:
		result = num + " " + lf.currencySymbol
	case tightSymbol(lf.currencySymbol):
		result = lf.currencySymbol + num
	default:
		result = lf.currencySymbol + " " + num
	}

	if amount < 0 && strings.ContainsAny(num, "123456789") {
		result = "-" + result
	}
	return result
}

// FormatPercent formats a ratio as a whole percentage: 0.256 becomes "26%".
func (lf *LocaleFormat) FormatPercent(n float64) string {
	return lf.FormatDecimal(n*100, 0, 0, true) + lf.percentSymbol
}

// FormatDate formats the date part of t in the given style.
func (lf *LocaleFormat) FormatDate(t time.Time, style Style) string {
	return t.Format(lf.dateLayouts[clampStyle(style)])
}

// FormatTime formats the time part of t in the given style.
func (lf *LocaleFormat) FormatTime(t time.Time, style Style) string {
	return t.Format(lf.timeLayouts[clampStyle(style)])
}

// FormatDateTime formats t as date followed by time, both in the given style.
func (lf *LocaleFormat) FormatDateTime(t time.Time, style Style) string {
	return lf.FormatDate(t, style) + " " + lf.FormatTime(t, style)
}

func clampStyle(s Style) Style {
	return min(max(s, StyleShort), StyleFull)
}

// tightSymbol reports whether the symbol is written without a space before the amount.
func tightSymbol(symbol string) bool {
	switch symbol {
	case "$", "£", "¥", "₩", "₹":
		return true
	}
	return strings.HasSuffix(symbol, "$")
}

func groupDigits(digits, sep string) string {
	if len(digits) <= 3 || sep == "" {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
