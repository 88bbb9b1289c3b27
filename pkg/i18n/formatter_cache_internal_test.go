package i18n

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatterCache(t *testing.T) {
	t.Parallel()

	c := newFormatterCache(slog.New(slog.DiscardHandler))
	it := ParseLocale("it_it")

	require.Equal(t, "a 1", c.format(DefaultLocale, "a {0}", []any{1}, "fb"))
	require.Equal(t, "a 2", c.format(DefaultLocale, "a {0}", []any{2}, "fb"))
	require.Equal(t, 1, c.size(DefaultLocale))

	// Templates without arguments are never compiled.
	require.Equal(t, "it's {0}", c.format(DefaultLocale, "it''s {0}", nil, "fb"))
	require.Equal(t, 1, c.size(DefaultLocale))

	require.Equal(t, "x [name] 1", c.format(DefaultLocale, "x {name} {0}", []any{1}, "fb"))
	require.Equal(t, "fb", c.format(DefaultLocale, "broken {0", []any{1}, "fb"))
	require.Equal(t, 3, c.size(DefaultLocale))

	msg, ok := c.get(DefaultLocale, "broken {0")
	require.True(t, ok)
	require.Nil(t, msg, "templates that cannot be recovered are cached as nil")

	require.Equal(t, "[0]", c.format(DefaultLocale, "{0,number}", []any{"nope"}, "fb"))

	require.Equal(t, "1,5", c.format(it, "{0}", []any{1.5}, "fb"))
	require.Equal(t, 1, c.size(it))

	c.clear(DefaultLocale)
	require.Equal(t, 0, c.size(DefaultLocale))
	require.Equal(t, 1, c.size(it))

	c.clearAll()
	require.Equal(t, 0, c.size(it))
}

func TestEngine_FormattersFollowLocale(t *testing.T) {
	t.Parallel()

	e, err := New("i18n.messages", WithResources(os.DirFS("testdata")))
	require.NoError(t, err)

	require.Equal(t, "successful format test 1", e.T("test.format", 1))
	require.Equal(t, 1, e.formatters.size(DefaultLocale))

	it := ParseLocale("it_it")
	require.NoError(t, e.SetCurrentLocale(it))
	require.Equal(t, 0, e.formatters.size(DefaultLocale), "previous locale table is dropped")

	e.T("test.format", 1)
	require.Equal(t, 1, e.formatters.size(it))

	// A reader still holding the previous snapshot formats without caching.
	require.Equal(t, "a 1", e.formatters.format(DefaultLocale, "a {0}", []any{1}, "fb"))
	require.Equal(t, 0, e.formatters.size(DefaultLocale))

	// Setting the same locale keeps compiled templates.
	require.NoError(t, e.SetCurrentLocale(it))
	require.Equal(t, 1, e.formatters.size(it))

	require.NoError(t, e.Close())
	require.Equal(t, 0, e.formatters.size(it))
}
