package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

func TestLocale_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		locale i18n.Locale
		want   string
	}{
		{i18n.LocaleOf("it", "IT"), "it_it"},
		{i18n.Locale{Language: "en", Region: "US"}, "en_us"},
		{i18n.LocaleOf("de", ""), "de"},
		{i18n.Locale{Language: "pt", Region: "  "}, "pt"},
		{i18n.Root, ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.locale.String())
	}
}

func TestParseLocale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want i18n.Locale
	}{
		{"it_it", i18n.Locale{Language: "it", Region: "IT"}},
		{"EN_us", i18n.Locale{Language: "en", Region: "US"}},
		{"de", i18n.Locale{Language: "de"}},
		{"_fr__ca_", i18n.Locale{Language: "fr", Region: "CA"}},
		{"sr_rs_latn", i18n.Locale{Language: "sr", Region: "RS"}},
		{"", i18n.DefaultLocale},
		{"___", i18n.DefaultLocale},
		{" _ ", i18n.DefaultLocale},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, i18n.ParseLocale(tt.in), tt.in)
	}
}

func TestLocale_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, l := range []i18n.Locale{
		i18n.LocaleOf("it", "it"),
		i18n.LocaleOf("en", "US"),
		i18n.LocaleOf("ja", ""),
		i18n.Locale{Language: "pt", Region: "br"},
	} {
		require.True(t, i18n.ParseLocale(l.String()).Equal(l), l.String())
	}
}

func TestLocale_Equal(t *testing.T) {
	t.Parallel()

	require.True(t, i18n.Locale{Language: "EN", Region: "us"}.Equal(i18n.DefaultLocale))
	require.False(t, i18n.LocaleOf("en", "GB").Equal(i18n.DefaultLocale))
	require.True(t, i18n.Root.Equal(i18n.Locale{}))
}

func TestLocale_Tag(t *testing.T) {
	t.Parallel()

	require.Equal(t, "it-IT", i18n.ParseLocale("it_it").Tag().String())
	require.Equal(t, "und", i18n.Root.Tag().String())
	require.Equal(t, "und", i18n.LocaleOf("not a language", "").Tag().String())

	require.Equal(t, i18n.LocaleOf("pt", "BR"), i18n.LocaleFromTag(language.MustParse("pt-BR")))
	require.Equal(t, i18n.LocaleOf("fr", ""), i18n.LocaleFromTag(language.French))
	require.Equal(t, i18n.Root, i18n.LocaleFromTag(language.Und))
}

func TestLocale_DisplayName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Italian", i18n.LocaleOf("it", "").DisplayName())
	require.Equal(t, "root", i18n.Root.DisplayName())
}

func TestLocale_Candidates(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		[]i18n.Locale{i18n.LocaleOf("it", "IT"), i18n.LocaleOf("it", ""), i18n.Root},
		i18n.ParseLocale("it_it").Candidates(),
	)
	require.Equal(t, []i18n.Locale{i18n.LocaleOf("de", ""), i18n.Root}, i18n.ParseLocale("de").Candidates())
	require.Equal(t, []i18n.Locale{i18n.Root}, i18n.Root.Candidates())
}

func TestNaming(t *testing.T) {
	t.Parallel()

	it := i18n.ParseLocale("it_it")

	require.Equal(t, "app.messages.it_it", i18n.BundleName("app.messages", it))
	require.Equal(t, "app.messages", i18n.BundleName("app.messages", i18n.Root))
	require.Equal(t, "app.messages", i18n.BundleName("app.messages", i18n.Locale{Region: "US"}))

	require.Equal(t, "app/messages/it_it.json", i18n.ResourceName("app.messages", it, "json"))
	require.Equal(t, "app/messages/de.lang", i18n.ResourceName("app.messages", i18n.ParseLocale("de"), "lang"))
	require.Equal(t, "app/messages.lang", i18n.ResourceName("app.messages", i18n.Root, "lang"))
	require.Equal(t, "messages/en_us.lang", i18n.ResourceName("messages", i18n.DefaultLocale, "lang"))
}
