package i18n_test

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := map[string]i18n.Kind{
		"lang":       i18n.KindProperties,
		"properties": i18n.KindProperties,
		" JSON ":     i18n.KindJSON,
		"yml":        i18n.KindYAML,
		"yaml":       i18n.KindYAML,
		"toml":       i18n.KindTOML,
		"custom":     i18n.KindCustom,
	}
	for in, want := range tests {
		got, err := i18n.ParseKind(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := i18n.ParseKind("xml")
	require.ErrorIs(t, err, i18n.ErrUnknownFormat)

	require.Equal(t, "json", i18n.KindJSON.String())
	require.Equal(t, "unknown(9)", i18n.Kind(9).String())
}

func TestFormatFor(t *testing.T) {
	t.Parallel()

	for kind, ext := range map[i18n.Kind]string{
		i18n.KindProperties: "lang",
		i18n.KindJSON:       "json",
		i18n.KindYAML:       "yaml",
		i18n.KindTOML:       "toml",
	} {
		f, err := i18n.FormatFor(kind)
		require.NoError(t, err)
		require.Equal(t, kind, f.Kind())
		require.Equal(t, ext, f.Extension())
	}

	_, err := i18n.FormatFor(i18n.KindCustom)
	require.ErrorIs(t, err, i18n.ErrInvalidConfiguration)

	_, err = i18n.FormatFor(i18n.Kind(9))
	require.ErrorIs(t, err, i18n.ErrUnknownFormat)

	require.Equal(t, "properties", i18n.PropertiesFormat{Ext: "properties"}.Extension())
}

func TestPropertiesFormat_Load(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		"# comment",
		"! another comment",
		"greeting = Hello, {0}!",
		"path=${HOME}/x",
		"colon: separated",
		"multi=first \\",
		"  second",
		"unicode=caf\\u00e9",
		"apostrophe=it''s",
		"",
	}, "\n")

	b, err := i18n.PropertiesFormat{}.Load(strings.NewReader(src))
	require.NoError(t, err)

	want := map[string]string{
		"greeting":   "Hello, {0}!",
		"path":       "${HOME}/x",
		"colon":      "separated",
		"multi":      "first second",
		"unicode":    "café",
		"apostrophe": "it''s",
	}
	require.Equal(t, len(want), b.Len())
	for k, v := range want {
		got, ok := b.Get(k)
		require.True(t, ok, k)
		require.Equal(t, v, got, k)
	}
	require.Equal(t, []string{"apostrophe", "colon", "greeting", "multi", "path", "unicode"}, b.Keys())
}

func TestStructuredFormats_Load(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format i18n.Format
		src    string
	}{
		{
			name:   "json",
			format: i18n.JSONFormat{},
			src:    `{"s": "text", "n": 1.5, "b": false, "one": [7], "many": [1, 2], "none": [], "obj": {"a": "b"}, "nil": null, "deep": [["x"]]}`,
		},
		{
			name:   "yaml",
			format: i18n.YAMLFormat{},
			src:    "s: text\nn: 1.5\nb: false\none: [7]\nmany: [1, 2]\nnone: []\nobj:\n  a: b\nnil: null\ndeep: [[x]]\n",
		},
		{
			name:   "toml",
			format: i18n.TOMLFormat{},
			src:    "s = \"text\"\nn = 1.5\nb = false\none = [7]\nmany = [1, 2]\nnone = []\ndeep = [[\"x\"]]\n[obj]\na = \"b\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := tt.format.Load(strings.NewReader(tt.src))
			require.NoError(t, err)
			require.Equal(t, []string{"b", "n", "one", "s"}, b.Keys())

			v, _ := b.Get("s")
			require.Equal(t, "text", v)
			v, _ = b.Get("n")
			require.Equal(t, "1.5", v)
			v, _ = b.Get("b")
			require.Equal(t, "false", v)
			v, _ = b.Get("one")
			require.Equal(t, "7", v)
		})
	}
}

func TestStructuredFormats_Errors(t *testing.T) {
	t.Parallel()

	t.Run("parse errors", func(t *testing.T) {
		t.Parallel()
		for _, f := range []i18n.Format{i18n.JSONFormat{}, i18n.YAMLFormat{}, i18n.TOMLFormat{}} {
			_, err := f.Load(strings.NewReader("{not valid: [}"))
			require.ErrorIs(t, err, i18n.ErrInvalidFile, f.Kind().String())
		}
	})

	t.Run("json top level must be an object", func(t *testing.T) {
		t.Parallel()
		for _, src := range []string{"null", "[1]", `"text"`} {
			_, err := i18n.JSONFormat{}.Load(strings.NewReader(src))
			require.ErrorIs(t, err, i18n.ErrInvalidFile, src)
		}
	})

	t.Run("read errors are returned as is", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		for _, f := range []i18n.Format{i18n.PropertiesFormat{}, i18n.JSONFormat{}, i18n.YAMLFormat{}, i18n.TOMLFormat{}} {
			_, err := f.Load(iotest.ErrReader(boom))
			require.ErrorIs(t, err, boom)
			require.NotErrorIs(t, err, i18n.ErrInvalidFile)
		}
	})
}
