package i18n

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"sync"
)

// nonNumericPlaceholder matches placeholders such as {name} or {} that can never compile.
var nonNumericPlaceholder = regexp.MustCompile(`\{(\D*?)\}`)

// formatterCache keeps compiled messages per canonical locale string.
// A nil *Message records a template that failed to compile even after recovery.
type formatterCache struct {
	mu     sync.RWMutex
	tables map[string]map[string]*Message
	logger *slog.Logger

	// retain reports whether compiled messages of a locale may be stored.
	// Called under mu; nil retains every locale.
	retain func(Locale) bool
}

func newFormatterCache(logger *slog.Logger) *formatterCache {
	return &formatterCache{
		tables: make(map[string]map[string]*Message),
		logger: logger,
	}
}

// format renders template with args for locale, degrading instead of failing:
// with no args the template is returned with "''" unescaped; a template that cannot be
// compiled yields fallback; an argument mismatch yields the template with [index] placeholders.
func (c *formatterCache) format(locale Locale, template string, args []any, fallback string) string {
	if len(args) == 0 {
		return strings.ReplaceAll(template, "''", "'")
	}

	msg, ok := c.get(locale, template)
	if !ok {
		msg = c.compile(locale, template)
	}
	if msg == nil {
		return fallback
	}

	out, err := msg.Format(args...)
	if err != nil {
		c.logger.LogAttrs(context.Background(), slog.LevelDebug, "i18n: arguments do not fit template",
			slog.String("locale", locale.String()),
			slog.String("template", template),
			slog.Any("error", err),
		)
		return msg.Defanged()
	}
	return out
}

func (c *formatterCache) get(locale Locale, template string) (*Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	msg, ok := c.tables[locale.String()][template]
	return msg, ok
}

func (c *formatterCache) compile(locale Locale, template string) *Message {
	msg, err := CompileMessage(template, locale)
	if err != nil {
		recovered := nonNumericPlaceholder.ReplaceAllString(template, "[$1]")
		c.logger.LogAttrs(context.Background(), slog.LevelWarn, "i18n: malformed template",
			slog.String("locale", locale.String()),
			slog.String("template", template),
			slog.String("recovered", recovered),
			slog.Any("error", err),
		)

		msg, err = CompileMessage(recovered, locale)
		if err != nil {
			msg = nil
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.retain != nil && !c.retain(locale) {
		return msg
	}
	key := locale.String()
	table, ok := c.tables[key]
	if !ok {
		table = make(map[string]*Message)
		c.tables[key] = table
	}
	table[template] = msg
	return msg
}

// clear drops the table of one locale.
func (c *formatterCache) clear(locale Locale) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.tables, locale.String())
}

func (c *formatterCache) clearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tables = make(map[string]map[string]*Message)
}

// size returns the number of cached templates for locale, invalid ones included.
func (c *formatterCache) size(locale Locale) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.tables[locale.String()])
}
