package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

func TestParseArgs(t *testing.T) {
	t.Parallel()

	got := i18n.ParseArgs([]string{"3", "-7", "2.5", "1e3", "Ann", "0x10", "NaN", "inf", ""})
	require.Equal(t, []any{int64(3), int64(-7), 2.5, 1000.0, "Ann", "0x10", "NaN", "inf", ""}, got)
	require.Empty(t, i18n.ParseArgs(nil))
}
