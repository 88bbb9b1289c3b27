package i18n

import (
	"strconv"
	"strings"
)

// ParseArgs converts textual arguments, such as query parameters or command-line
// words, into template arguments. Integers and decimal floats become numbers so
// number, choice and plural placeholders can format them; anything else stays a string.
func ParseArgs(raw []string) []any {
	args := make([]any, 0, len(raw))
	for _, v := range raw {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			args = append(args, n)
			continue
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil && !strings.ContainsAny(v, "xXpPnNiI") {
			args = append(args, f)
			continue
		}
		args = append(args, v)
	}
	return args
}
