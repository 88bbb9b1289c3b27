package i18n_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

func TestMatchLocale(t *testing.T) {
	t.Parallel()

	supported := []i18n.Locale{
		i18n.ParseLocale("en_us"),
		i18n.ParseLocale("de_de"),
		i18n.ParseLocale("it_it"),
	}

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty header", "", "en_us"},
		{"exact", "it-IT", "it_it"},
		{"language only", "de", "de_de"},
		{"regional variant", "de-AT,de;q=0.9", "de_de"},
		{"quality order", "it;q=0.5, de;q=0.9", "de_de"},
		{"english variant", "en-GB", "en_us"},
		{"unsupported", "ja-JP", "en_us"},
		{"oversized", strings.Repeat("x", 5000), "en_us"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, i18n.MatchLocale(tt.header, supported).String())
		})
	}

	t.Run("no supported locales", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, i18n.DefaultLocale, i18n.MatchLocale("it-IT", nil))
	})
}
