package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

func TestPluralRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule i18n.PluralRule
		want map[int]string
	}{
		{
			name: "one/other",
			rule: i18n.OneOtherRule,
			want: map[int]string{0: "other", 1: "one", -1: "one", 2: "other", 21: "other"},
		},
		{
			name: "french",
			rule: i18n.FrenchRule,
			want: map[int]string{0: "one", 1: "one", 2: "other", 1000000: "other"},
		},
		{
			name: "east slavic",
			rule: i18n.EastSlavicRule,
			want: map[int]string{1: "one", 21: "one", 11: "many", 2: "few", 24: "few", 12: "many", 5: "many", 0: "many"},
		},
		{
			name: "polish",
			rule: i18n.PolishRule,
			want: map[int]string{1: "one", 21: "many", 2: "few", 22: "few", 12: "many", 5: "many"},
		},
		{
			name: "czech",
			rule: i18n.CzechRule,
			want: map[int]string{1: "one", 3: "few", 5: "other", 22: "other"},
		},
		{
			name: "arabic",
			rule: i18n.ArabicRule,
			want: map[int]string{0: "zero", 1: "one", 2: "two", 5: "few", 105: "few", 11: "many", 99: "many", 100: "other", 102: "other"},
		},
		{
			name: "invariant",
			rule: i18n.InvariantRule,
			want: map[int]string{0: "other", 1: "other", 2: "other"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for n, want := range tt.want {
				require.Equal(t, want, tt.rule(n), "n=%d", n)
			}
		})
	}
}

func TestPluralRuleFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, "few", i18n.PluralRuleFor(i18n.ParseLocale("pl_pl"))(3))
	require.Equal(t, "one", i18n.PluralRuleFor(i18n.ParseLocale("fr"))(0))
	require.Equal(t, "other", i18n.PluralRuleFor(i18n.ParseLocale("ja_jp"))(1))
	require.Equal(t, "one", i18n.PluralRuleFor(i18n.ParseLocale("xx"))(1), "unknown languages use one/other")
	require.Equal(t, "other", i18n.PluralRuleFor(i18n.Root)(0))
}

func TestPluralForms(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"one", "other"}, i18n.PluralForms(i18n.OneOtherRule))
	require.Equal(t, []string{"one", "few", "many"}, i18n.PluralForms(i18n.EastSlavicRule))
	require.Equal(t, []string{"zero", "one", "two", "few", "many", "other"}, i18n.PluralForms(i18n.ArabicRule))
	require.Equal(t, []string{"other"}, i18n.PluralForms(i18n.InvariantRule))
}
