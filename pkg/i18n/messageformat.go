package i18n

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// maxArgumentIndex bounds placeholder indexes so a typo cannot allocate huge argument lists.
const maxArgumentIndex = 10000

type argKind int

const (
	argPlain argKind = iota
	argNumber
	argDate
	argTime
	argChoice
	argPlural
)

// Message is a compiled message template bound to a locale.
//
// Template syntax: text in single quotes is literal and "''" is an apostrophe.
// Placeholders are {index}, {index,type} or {index,type,style} where type is
// number, date, time, choice or plural. Number styles are integer, currency,
// percent or a decimal pattern such as "#,##0.00". Date and time styles are
// short, medium, long, full or a pattern such as "yyyy-MM-dd HH:mm".
// Choice styles look like "0#no files|1#one file|1<{0} files" and plural styles
// like "=0{none} one{# file} other{# files}".
type Message struct {
	pattern  string
	locale   Locale
	format   *LocaleFormat
	rule     PluralRule
	segments []segment
}

type segment struct {
	text string
	arg  *placeholder
	hash bool
}

type placeholder struct {
	index  int
	kind   argKind
	style  Style
	number *numberPattern
	date   []datePiece
	choice []choiceCase
	plural *pluralSpec
}

// CompileMessage parses pattern for locale. Syntax errors wrap ErrMalformedTemplate.
func CompileMessage(pattern string, locale Locale) (*Message, error) {
	segments, err := parsePattern(pattern, false)
	if err != nil {
		return nil, err
	}
	return &Message{
		pattern:  pattern,
		locale:   locale,
		format:   FormatForLocale(locale),
		rule:     PluralRuleFor(locale),
		segments: segments,
	}, nil
}

// Pattern returns the source template.
func (m *Message) Pattern() string {
	return m.pattern
}

// Locale returns the locale the message was compiled for.
func (m *Message) Locale() Locale {
	return m.locale
}

// Placeholders returns the number of arguments the message refers to, which is one more
// than the highest placeholder index, or 0 when it has none.
func (m *Message) Placeholders() int {
	return maxIndex(m.segments) + 1
}

// Format applies args. Placeholders without a matching argument are written as {index}.
// An argument of the wrong kind for a typed placeholder yields ErrArgumentMismatch.
func (m *Message) Format(args ...any) (string, error) {
	var b strings.Builder
	if err := m.render(&b, m.segments, args, nil); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Defanged renders the literal text with every placeholder written as [index].
func (m *Message) Defanged() string {
	var b strings.Builder
	for _, seg := range m.segments {
		switch {
		case seg.arg != nil:
			b.WriteString("[" + strconv.Itoa(seg.arg.index) + "]")
		case seg.hash:
			b.WriteByte('#')
		default:
			b.WriteString(seg.text)
		}
	}
	return b.String()
}

func maxIndex(segments []segment) int {
	highest := -1
	for _, seg := range segments {
		if seg.arg == nil {
			continue
		}
		highest = max(highest, seg.arg.index)
		for _, c := range seg.arg.choice {
			highest = max(highest, maxIndex(c.segments))
		}
		if seg.arg.plural != nil {
			for _, c := range seg.arg.plural.cases {
				highest = max(highest, maxIndex(c.segments))
			}
		}
	}
	return highest
}

func (m *Message) render(b *strings.Builder, segments []segment, args []any, hash *float64) error {
	for _, seg := range segments {
		switch {
		case seg.hash && hash != nil:
			b.WriteString(m.format.FormatNumber(*hash))
		case seg.hash:
			b.WriteByte('#')
		case seg.arg == nil:
			b.WriteString(seg.text)
		default:
			if err := m.renderArg(b, seg.arg, args); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Message) renderArg(b *strings.Builder, p *placeholder, args []any) error {
	if p.index >= len(args) {
		b.WriteString("{" + strconv.Itoa(p.index) + "}")
		return nil
	}
	arg := args[p.index]
	if arg == nil {
		b.WriteString(fmt.Sprint(arg))
		return nil
	}

	switch p.kind {
	case argPlain:
		b.WriteString(m.plain(arg))
		return nil

	case argNumber:
		n, ok := toFloat(arg)
		if !ok {
			return mismatch(p, "number", arg)
		}
		b.WriteString(p.number.render(m.format, n))
		return nil

	case argDate, argTime:
		t, ok := toTime(arg)
		if !ok {
			return mismatch(p, "date", arg)
		}
		switch {
		case p.date != nil:
			renderDate(b, p.date, t)
		case p.kind == argDate:
			b.WriteString(m.format.FormatDate(t, p.style))
		default:
			b.WriteString(m.format.FormatTime(t, p.style))
		}
		return nil

	case argChoice:
		n, ok := toFloat(arg)
		if !ok {
			return mismatch(p, "number", arg)
		}
		return m.render(b, selectChoice(p.choice, n), args, nil)

	case argPlural:
		n, ok := toFloat(arg)
		if !ok {
			return mismatch(p, "number", arg)
		}
		segments, value := p.plural.pick(m.rule, n)
		return m.render(b, segments, args, &value)
	}
	return nil
}

func (m *Message) plain(arg any) string {
	switch v := arg.(type) {
	case string:
		return v
	case time.Time:
		return m.format.FormatDateTime(v, StyleShort)
	case *time.Time:
		return m.format.FormatDateTime(*v, StyleShort)
	}
	if n, ok := toFloat(arg); ok {
		return m.format.FormatNumber(n)
	}
	return fmt.Sprint(arg)
}

func mismatch(p *placeholder, want string, arg any) error {
	return fmt.Errorf("%w: argument %d is %T, want %s", ErrArgumentMismatch, p.index, arg, want)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// toTime accepts a time.Time or a number of milliseconds since the Unix epoch (UTC).
func toTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, true
	}
	if ms, ok := toFloat(v); ok {
		return time.UnixMilli(int64(ms)).UTC(), true
	}
	return time.Time{}, false
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedTemplate, fmt.Sprintf(format, args...))
}

// parsePattern splits a template into literal text and placeholders.
// Inside plural cases an unquoted '#' stands for the plural count.
func parsePattern(pattern string, inPlural bool) ([]segment, error) {
	var (
		segments []segment
		lit      strings.Builder
		parts    [4]strings.Builder
		part     int
		inQuote  bool
		depth    int
	)

	flush := func() {
		if lit.Len() > 0 {
			segments = append(segments, segment{text: lit.String()})
			lit.Reset()
		}
	}

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if part == 0 {
			switch {
			case ch == '\'':
				if i+1 < len(runes) && runes[i+1] == '\'' {
					lit.WriteRune('\'')
					i++
				} else {
					inQuote = !inQuote
				}
			case ch == '{' && !inQuote:
				part = 1
			case ch == '#' && inPlural && !inQuote:
				flush()
				segments = append(segments, segment{hash: true})
			default:
				lit.WriteRune(ch)
			}
			continue
		}

		if inQuote {
			parts[part].WriteRune(ch)
			if ch == '\'' {
				inQuote = false
			}
			continue
		}

		switch ch {
		case ',':
			if part < 3 {
				part++
			} else {
				parts[part].WriteRune(ch)
			}
		case '{':
			depth++
			parts[part].WriteRune(ch)
		case '}':
			if depth > 0 {
				depth--
				parts[part].WriteRune(ch)
				continue
			}
			p, err := newPlaceholder(parts[1].String(), parts[2].String(), parts[3].String())
			if err != nil {
				return nil, err
			}
			flush()
			segments = append(segments, segment{arg: p})
			for j := range parts {
				parts[j].Reset()
			}
			part = 0
		case ' ':
			if part != 2 || parts[2].Len() > 0 {
				parts[part].WriteRune(ch)
			}
		case '\'':
			inQuote = true
			parts[part].WriteRune(ch)
		default:
			parts[part].WriteRune(ch)
		}
	}

	if part != 0 {
		return nil, malformed("unmatched braces in %q", pattern)
	}
	flush()
	return segments, nil
}

func newPlaceholder(index, kind, style string) (*placeholder, error) {
	if index == "" || strings.TrimLeft(index, "0123456789") != "" {
		return nil, malformed("can't parse argument number %q", index)
	}
	n, err := strconv.Atoi(index)
	if err != nil || n > maxArgumentIndex {
		return nil, malformed("argument number %q out of range", index)
	}

	p := &placeholder{index: n}
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "":
		p.kind = argPlain
	case "number":
		p.kind = argNumber
		p.number, err = parseNumberStyle(style)
	case "date", "time":
		p.kind = argDate
		if strings.EqualFold(strings.TrimSpace(kind), "time") {
			p.kind = argTime
		}
		if s, ok := ParseStyle(style); ok {
			p.style = s
		} else {
			p.date, err = parseDatePattern(strings.TrimSpace(style))
		}
	case "choice":
		p.kind = argChoice
		p.choice, err = parseChoice(style)
	case "plural":
		p.kind = argPlural
		p.plural, err = parsePlural(style)
	default:
		return nil, malformed("unknown format type %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
