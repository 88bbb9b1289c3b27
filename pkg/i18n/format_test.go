package i18n_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

func TestLocaleFormat_FormatNumber(t *testing.T) {
	t.Parallel()

	t.Run("English format", func(t *testing.T) {
		t.Parallel()
		lf := i18n.FormatEnUS()

		require.Equal(t, "1,234", lf.FormatNumber(1234))
		require.Equal(t, "1,234.5", lf.FormatNumber(1234.5))
		require.Equal(t, "1,234,567.89", lf.FormatNumber(1234567.89))
		require.Equal(t, "-1,234.5", lf.FormatNumber(-1234.5))
		require.Equal(t, "3.142", lf.FormatNumber(math.Pi))
		require.Equal(t, "123", lf.FormatNumber(123))
		require.Equal(t, "0", lf.FormatNumber(0))
		require.Equal(t, "0", lf.FormatNumber(-0.0001))
	})

	t.Run("European format", func(t *testing.T) {
		t.Parallel()
		lf := i18n.NewLocaleFormat(
			i18n.WithDecimalSeparator(","),
			i18n.WithThousandSeparator("."),
		)

		require.Equal(t, "1.234", lf.FormatNumber(1234))
		require.Equal(t, "1.234,5", lf.FormatNumber(1234.5))
		require.Equal(t, "1.234.567,89", lf.FormatNumber(1234567.89))
		require.Equal(t, "-1.234,5", lf.FormatNumber(-1234.5))
	})

	t.Run("special values", func(t *testing.T) {
		t.Parallel()
		lf := i18n.FormatEnUS()

		require.Equal(t, "NaN", lf.FormatNumber(math.NaN()))
		require.Equal(t, "∞", lf.FormatNumber(math.Inf(1)))
		require.Equal(t, "-∞", lf.FormatNumber(math.Inf(-1)))
	})
}

func TestLocaleFormat_FormatDecimal(t *testing.T) {
	t.Parallel()

	lf := i18n.FormatEnUS()

	require.Equal(t, "1,234.50", lf.FormatDecimal(1234.5, 2, 2, true))
	require.Equal(t, "1234.5", lf.FormatDecimal(1234.5, 0, 2, false))
	require.Equal(t, "0.12", lf.FormatDecimal(0.125, 0, 2, true), "ties round half-even")
	require.Equal(t, "2", lf.FormatDecimal(1.5, 0, 0, true))
	require.Equal(t, "2", lf.FormatDecimal(2.5, 0, 0, true))
}

func TestLocaleFormat_FormatInteger(t *testing.T) {
	t.Parallel()

	lf := i18n.FormatEnUS()

	require.Equal(t, "1,235", lf.FormatInteger(1234.6))
	require.Equal(t, "2", lf.FormatInteger(2.5))
	require.Equal(t, "4", lf.FormatInteger(3.5))
}

func TestLocaleFormat_FormatCurrency(t *testing.T) {
	t.Parallel()

	t.Run("English/USD format", func(t *testing.T) {
		t.Parallel()
		lf := i18n.FormatEnUS()

		require.Equal(t, "$1,234.50", lf.FormatCurrency(1234.50))
		require.Equal(t, "$1.06", lf.FormatCurrency(float64(float32(1.06))))
		require.Equal(t, "$2.15", lf.FormatCurrency(float64(float32(2.15))))
		require.Equal(t, "-$5.00", lf.FormatCurrency(-5))
		require.Equal(t, "$0.00", lf.FormatCurrency(0))
	})

	t.Run("symbol after amount", func(t *testing.T) {
		t.Parallel()
		lf := i18n.FormatDeDE()

		require.Equal(t, "1.234,50 €", lf.FormatCurrency(1234.5))
		require.Equal(t, "-1.234,50 €", lf.FormatCurrency(-1234.5))
	})

	t.Run("currency without fraction digits", func(t *testing.T) {
		t.Parallel()
		lf := i18n.FormatJaJP()

		require.Equal(t, "¥1,235", lf.FormatCurrency(1234.6))
	})

	t.Run("multi-letter symbol before amount", func(t *testing.T) {
		t.Parallel()
		lf := i18n.NewLocaleFormat(i18n.WithCurrency("CHF", "CHF", 2))

		require.Equal(t, "CHF 10.00", lf.FormatCurrency(10))
		require.Equal(t, "CHF", lf.CurrencyCode())
	})
}

func TestLocaleFormat_FormatPercent(t *testing.T) {
	t.Parallel()

	require.Equal(t, "26%", i18n.FormatEnUS().FormatPercent(0.256))
	require.Equal(t, "100%", i18n.FormatEnUS().FormatPercent(1))
	require.Equal(t, "1,250%", i18n.FormatEnUS().FormatPercent(12.5))
	require.Equal(t, "50\u202f%", i18n.FormatFrFR().FormatPercent(0.5))
}

func TestLocaleFormat_Dates(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 5, 14, 30, 15, 0, time.UTC)
	lf := i18n.FormatEnUS()

	tests := []struct {
		style    i18n.Style
		date     string
		time     string
		dateTime string
	}{
		{i18n.StyleShort, "3/5/24", "2:30 PM", "3/5/24 2:30 PM"},
		{i18n.StyleMedium, "Mar 5, 2024", "2:30:15 PM", "Mar 5, 2024 2:30:15 PM"},
		{i18n.StyleLong, "March 5, 2024", "2:30:15 PM UTC", "March 5, 2024 2:30:15 PM UTC"},
		{i18n.StyleFull, "Tuesday, March 5, 2024", "2:30:15 PM UTC", "Tuesday, March 5, 2024 2:30:15 PM UTC"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.date, lf.FormatDate(ts, tt.style))
		require.Equal(t, tt.time, lf.FormatTime(ts, tt.style))
		require.Equal(t, tt.dateTime, lf.FormatDateTime(ts, tt.style))
	}

	require.Equal(t, "3/5/24", lf.FormatDate(ts, i18n.Style(-3)), "out of range styles are clamped")
	require.Equal(t, "Tuesday, March 5, 2024", lf.FormatDate(ts, i18n.Style(42)))
}

func TestParseStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    string
		want  i18n.Style
		valid bool
	}{
		{"short", i18n.StyleShort, true},
		{" SHORT ", i18n.StyleShort, true},
		{"", i18n.StyleMedium, true},
		{"medium", i18n.StyleMedium, true},
		{"long", i18n.StyleLong, true},
		{"Full", i18n.StyleFull, true},
		{"yyyy-MM-dd", 0, false},
	}
	for _, tt := range tests {
		got, ok := i18n.ParseStyle(tt.in)
		require.Equal(t, tt.valid, ok, tt.in)
		if ok {
			require.Equal(t, tt.want, got, tt.in)
		}
	}
}
