package i18n

import (
	"math"
	"strings"
)

type numberKind int

const (
	numDecimal numberKind = iota
	numInteger
	numCurrency
	numPercent
	numCustom
)

// numberPattern is a parsed number style: a keyword or a decimal pattern like "#,##0.00 ¤".
type numberPattern struct {
	kind     numberKind
	prefix   []affix
	suffix   []affix
	minInt   int
	minFrac  int
	maxFrac  int
	grouping bool
	scale    float64
}

// affix is literal text or one of the symbols '%', '‰', '¤' (symbol) and 'C' (ISO code).
type affix struct {
	text   string
	symbol rune
}

func parseNumberStyle(style string) (*numberPattern, error) {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "":
		return &numberPattern{kind: numDecimal}, nil
	case "integer":
		return &numberPattern{kind: numInteger}, nil
	case "currency":
		return &numberPattern{kind: numCurrency}, nil
	case "percent":
		return &numberPattern{kind: numPercent}, nil
	}
	return parseDecimalPattern(strings.TrimSpace(style))
}

// parseDecimalPattern reads the positive subpattern of a DecimalFormat-style pattern.
func parseDecimalPattern(pattern string) (*numberPattern, error) {
	np := &numberPattern{kind: numCustom, scale: 1}

	var (
		prefix, core, suffix []rune
		stage                int
		inQuote              bool
	)
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if ch == '\'' {
			if i+1 < len(runes) && runes[i+1] == '\'' {
				i++
			} else {
				inQuote = !inQuote
				continue
			}
		}
		if !inQuote && ch == ';' {
			break
		}

		isCore := !inQuote && strings.ContainsRune("#0,.", ch)
		switch {
		case stage == 0 && isCore:
			stage = 1
			core = append(core, ch)
		case stage == 0:
			prefix = append(prefix, markAffix(ch, inQuote))
		case stage == 1 && isCore:
			core = append(core, ch)
		default:
			stage = 2
			suffix = append(suffix, markAffix(ch, inQuote))
		}
	}
	if inQuote {
		return nil, malformed("unterminated quote in number pattern %q", pattern)
	}
	if !strings.ContainsAny(string(core), "#0") {
		return nil, malformed("number pattern %q has no digits", pattern)
	}

	intDigits, fracDigits, hasPoint := strings.Cut(string(core), ".")
	if hasPoint && strings.ContainsAny(fracDigits, ",.") {
		return nil, malformed("misplaced separator in number pattern %q", pattern)
	}
	np.grouping = strings.Contains(intDigits, ",")
	np.minInt = strings.Count(intDigits, "0")
	np.minFrac = strings.Count(fracDigits, "0")
	np.maxFrac = np.minFrac + strings.Count(fracDigits, "#")

	np.prefix = np.affixes(prefix)
	np.suffix = np.affixes(suffix)
	return np, nil
}

// markAffix tags unquoted special characters with a private-use rune so quoting survives.
const (
	markPercent  = '\uE000'
	markPermille = '\uE001'
	markCurrency = '\uE002'
)

func markAffix(ch rune, quoted bool) rune {
	if quoted {
		return ch
	}
	switch ch {
	case '%':
		return markPercent
	case '‰':
		return markPermille
	case '¤':
		return markCurrency
	}
	return ch
}

func (np *numberPattern) affixes(runes []rune) []affix {
	var (
		out []affix
		lit strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, affix{text: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case markPercent:
			flush()
			np.scale = 100
			out = append(out, affix{symbol: '%'})
		case markPermille:
			flush()
			np.scale = 1000
			out = append(out, affix{symbol: '‰'})
		case markCurrency:
			flush()
			if i+1 < len(runes) && runes[i+1] == markCurrency {
				i++
				out = append(out, affix{symbol: 'C'})
			} else {
				out = append(out, affix{symbol: '¤'})
			}
		default:
			lit.WriteRune(runes[i])
		}
	}
	flush()
	return out
}

func (np *numberPattern) render(lf *LocaleFormat, n float64) string {
	switch np.kind {
	case numInteger:
		return lf.FormatInteger(n)
	case numCurrency:
		return lf.FormatCurrency(n)
	case numPercent:
		return lf.FormatPercent(n)
	case numCustom:
	default:
		return lf.FormatNumber(n)
	}

	v := n * np.scale
	num := lf.formatDecimal(math.Abs(v), np.minInt, np.minFrac, np.maxFrac, np.grouping)

	var b strings.Builder
	if v < 0 && strings.ContainsAny(num, "123456789") {
		b.WriteByte('-')
	}
	writeAffixes(&b, lf, np.prefix)
	b.WriteString(num)
	writeAffixes(&b, lf, np.suffix)
	return b.String()
}

func writeAffixes(b *strings.Builder, lf *LocaleFormat, parts []affix) {
	for _, a := range parts {
		switch a.symbol {
		case '%':
			b.WriteString(strings.TrimSpace(lf.percentSymbol))
		case '‰':
			b.WriteString("‰")
		case '¤':
			b.WriteString(lf.currencySymbol)
		case 'C':
			b.WriteString(lf.currencyCode)
		default:
			b.WriteString(a.text)
		}
	}
}
