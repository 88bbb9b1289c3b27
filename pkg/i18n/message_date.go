package i18n

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// datePiece is one token of a translated date pattern: literal text,
// a Go layout fragment or a field Go layouts cannot express.
type datePiece struct {
	text   string
	layout string
	field  func(time.Time) string
}

func renderDate(b *strings.Builder, pieces []datePiece, t time.Time) {
	for _, p := range pieces {
		switch {
		case p.field != nil:
			b.WriteString(p.field(t))
		case p.layout != "":
			b.WriteString(t.Format(p.layout))
		default:
			b.WriteString(p.text)
		}
	}
}

// parseDatePattern translates a SimpleDateFormat pattern ("dd.MM.yyyy HH:mm").
// Literal text is kept apart from layout fragments, so digits in it are never reinterpreted.
func parseDatePattern(pattern string) ([]datePiece, error) {
	var (
		pieces  []datePiece
		lit     strings.Builder
		inQuote bool
	)
	flush := func() {
		if lit.Len() > 0 {
			pieces = append(pieces, datePiece{text: lit.String()})
			lit.Reset()
		}
	}

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if ch == '\'' {
			if i+1 < len(runes) && runes[i+1] == '\'' {
				lit.WriteRune('\'')
				i++
			} else {
				inQuote = !inQuote
			}
			continue
		}
		if inQuote || !isASCIILetter(ch) {
			lit.WriteRune(ch)
			continue
		}

		count := 1
		for i+1 < len(runes) && runes[i+1] == ch {
			count++
			i++
		}
		piece, err := dateField(ch, count)
		if err != nil {
			return nil, err
		}
		flush()
		pieces = append(pieces, piece)
	}
	if inQuote {
		return nil, malformed("unterminated quote in date pattern %q", pattern)
	}
	flush()
	return pieces, nil
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func pick(count int, layouts ...string) datePiece {
	return datePiece{layout: layouts[min(count, len(layouts))-1]}
}

func padded(count int, value func(time.Time) int) datePiece {
	return datePiece{field: func(t time.Time) string {
		return fmt.Sprintf("%0*d", count, value(t))
	}}
}

func dateField(letter rune, count int) (datePiece, error) {
	switch letter {
	case 'G':
		return datePiece{field: func(t time.Time) string {
			if t.Year() <= 0 {
				return "BC"
			}
			return "AD"
		}}, nil
	case 'y', 'Y':
		if count == 2 {
			return datePiece{layout: "06"}, nil
		}
		return datePiece{layout: "2006"}, nil
	case 'M', 'L':
		return pick(count, "1", "01", "Jan", "January"), nil
	case 'd':
		return pick(count, "2", "02"), nil
	case 'D':
		return padded(count, func(t time.Time) int { return t.YearDay() }), nil
	case 'E':
		return pick(count, "Mon", "Mon", "Mon", "Monday"), nil
	case 'u':
		return datePiece{field: func(t time.Time) string {
			wd := int(t.Weekday())
			if wd == 0 {
				wd = 7
			}
			return strconv.Itoa(wd)
		}}, nil
	case 'a':
		return datePiece{layout: "PM"}, nil
	case 'H':
		return padded(count, func(t time.Time) int { return t.Hour() }), nil
	case 'k':
		return padded(count, func(t time.Time) int {
			if t.Hour() == 0 {
				return 24
			}
			return t.Hour()
		}), nil
	case 'K':
		return padded(count, func(t time.Time) int { return t.Hour() % 12 }), nil
	case 'h':
		return pick(count, "3", "03"), nil
	case 'm':
		return pick(count, "4", "04"), nil
	case 's':
		return pick(count, "5", "05"), nil
	case 'S':
		return padded(count, func(t time.Time) int { return t.Nanosecond() / int(time.Millisecond) }), nil
	case 'w':
		return padded(count, func(t time.Time) int {
			_, week := t.ISOWeek()
			return week
		}), nil
	case 'W', 'F':
		return padded(count, func(t time.Time) int { return (t.Day()-1)/7 + 1 }), nil
	case 'z':
		return datePiece{layout: "MST"}, nil
	case 'Z':
		return datePiece{layout: "-0700"}, nil
	case 'X':
		return pick(count, "Z07", "Z0700", "Z07:00"), nil
	default:
		return datePiece{}, malformed("illegal pattern character %q", letter)
	}
}
