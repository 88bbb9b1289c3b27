package i18n

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

type choiceCase struct {
	limit    float64
	segments []segment
}

// parseChoice reads "limit#text|limit<text|..." where '#' (or '≤') means "at least limit"
// and '<' means "greater than limit". Limits must not decrease.
func parseChoice(style string) ([]choiceCase, error) {
	var cases []choiceCase
	for _, item := range splitUnquoted(style, '|') {
		sep := strings.IndexAny(item, "#<≤")
		if sep < 0 {
			return nil, malformed("choice %q has no limit separator", item)
		}
		op, size := rune(item[sep]), 1
		if strings.HasPrefix(item[sep:], "≤") {
			op, size = '≤', len("≤")
		}

		limit, err := parseLimit(item[:sep])
		if err != nil {
			return nil, err
		}
		if op == '<' {
			limit = math.Nextafter(limit, math.Inf(1))
		}
		if n := len(cases); n > 0 && limit < cases[n-1].limit {
			return nil, malformed("choice limits in %q are not in ascending order", style)
		}

		segments, err := parsePattern(item[sep+size:], false)
		if err != nil {
			return nil, err
		}
		cases = append(cases, choiceCase{limit: limit, segments: segments})
	}
	if len(cases) == 0 {
		return nil, malformed("empty choice pattern")
	}
	return cases, nil
}

func parseLimit(s string) (float64, error) {
	switch s = strings.TrimSpace(s); s {
	case "∞", "+∞":
		return math.Inf(1), nil
	case "-∞":
		return math.Inf(-1), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, malformed("invalid choice limit %q", s)
	}
	return f, nil
}

// selectChoice returns the last case whose limit is <= n, or the first case.
func selectChoice(cases []choiceCase, n float64) []segment {
	i := 0
	for i < len(cases) && n >= cases[i].limit {
		i++
	}
	return cases[max(i-1, 0)].segments
}

// splitUnquoted splits s on sep, ignoring separators inside quotes or braces.
func splitUnquoted(s string, sep rune) []string {
	var (
		out     []string
		cur     strings.Builder
		inQuote bool
		depth   int
	)
	for _, ch := range s {
		switch {
		case ch == '\'':
			inQuote = !inQuote
		case inQuote:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
		case ch == sep && depth == 0:
			out = append(out, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(ch)
	}
	if cur.Len() > 0 || len(out) > 0 {
		out = append(out, cur.String())
	}
	return out
}

type pluralCase struct {
	selector string
	exact    float64
	isExact  bool
	segments []segment
}

type pluralSpec struct {
	offset float64
	cases  []pluralCase
}

var pluralKeywords = map[string]bool{
	PluralZero: true, PluralOne: true, PluralTwo: true,
	PluralFew: true, PluralMany: true, PluralOther: true,
}

// parsePlural reads "offset:1 =0{none} one{# item} other{# items}".
func parsePlural(style string) (*pluralSpec, error) {
	spec := &pluralSpec{}
	rest := strings.TrimSpace(style)

	if after, ok := strings.CutPrefix(rest, "offset:"); ok {
		end := strings.IndexFunc(after, unicode.IsSpace)
		if end < 0 {
			return nil, malformed("plural %q has only an offset", style)
		}
		off, err := strconv.ParseFloat(after[:end], 64)
		if err != nil {
			return nil, malformed("invalid plural offset %q", after[:end])
		}
		spec.offset = off
		rest = strings.TrimSpace(after[end:])
	}

	hasOther := false
	for rest != "" {
		open := strings.IndexByte(rest, '{')
		if open <= 0 {
			return nil, malformed("plural %q: expected selector{text}", style)
		}
		selector := strings.TrimSpace(rest[:open])
		body, tail, ok := cutBraced(rest[open:])
		if !ok {
			return nil, malformed("plural %q has unbalanced braces", style)
		}

		var err error
		c := pluralCase{selector: selector}
		switch {
		case strings.HasPrefix(selector, "="):
			c.exact, err = strconv.ParseFloat(selector[1:], 64)
			if err != nil {
				return nil, malformed("invalid plural selector %q", selector)
			}
			c.isExact = true
		case pluralKeywords[selector]:
			hasOther = hasOther || selector == PluralOther
		default:
			return nil, malformed("unknown plural selector %q", selector)
		}

		c.segments, err = parsePattern(body, true)
		if err != nil {
			return nil, err
		}
		spec.cases = append(spec.cases, c)
		rest = strings.TrimSpace(tail)
	}

	if !hasOther {
		return nil, malformed("plural %q has no other case", style)
	}
	return spec, nil
}

// cutBraced splits "{body}tail" honoring nested braces and quotes.
func cutBraced(s string) (body, tail string, ok bool) {
	depth := 0
	inQuote := false
	for i, ch := range s {
		switch {
		case ch == '\'':
			inQuote = !inQuote
		case inQuote:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return s[1:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// pick returns the segments for n and the value '#' stands for.
func (p *pluralSpec) pick(rule PluralRule, n float64) ([]segment, float64) {
	for _, c := range p.cases {
		if c.isExact && c.exact == n {
			return c.segments, n - p.offset
		}
	}

	value := n - p.offset
	category := PluralOther
	if value == math.Trunc(value) && math.Abs(value) < math.MaxInt32 {
		category = rule(int(value))
	}

	var other []segment
	for _, c := range p.cases {
		if c.isExact {
			continue
		}
		if c.selector == category {
			return c.segments, value
		}
		if c.selector == PluralOther {
			other = c.segments
		}
	}
	return other, value
}
