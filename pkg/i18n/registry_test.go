package i18n_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	_, err := i18n.NewRegistry(" ", nil)
	require.ErrorIs(t, err, i18n.ErrEmptyNamespace)

	r, err := i18n.NewRegistry(testNamespace, nil)
	require.NoError(t, err)
	require.Equal(t, []i18n.Locale{i18n.DefaultLocale}, r.Supported())
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	it := i18n.ParseLocale("it_it")
	r, err := i18n.NewRegistry(testNamespace,
		[]i18n.Locale{i18n.DefaultLocale, it},
		i18n.WithResources(testResources(t)),
	)
	require.NoError(t, err)

	require.Empty(t, r.Engines())
	require.Equal(t, it, r.Match("it-IT,it;q=0.9,en;q=0.5"))
	require.Equal(t, i18n.DefaultLocale, r.Match(""))
	require.True(t, r.Supports(i18n.Locale{Language: "IT", Region: "it"}))
	require.False(t, r.Supports(i18n.ParseLocale("fr_fr")))

	itEngine, err := r.Get(it)
	require.NoError(t, err)
	require.Equal(t, "test riuscito", itEngine.T("test.result"))
	require.Equal(t, it, itEngine.CurrentLocale())

	again, err := r.Get(it)
	require.NoError(t, err)
	require.Same(t, itEngine, again)

	upper, err := r.Get(i18n.Locale{Language: "IT", Region: "IT"})
	require.NoError(t, err)
	require.Same(t, itEngine, upper)

	enEngine, err := r.Get(i18n.DefaultLocale)
	require.NoError(t, err)
	require.Equal(t, "successful test", enEngine.T("test.result"))

	engines := r.Engines()
	require.Len(t, engines, 2)
	require.Same(t, enEngine, engines[0])
	require.Same(t, itEngine, engines[1])

	require.NoError(t, r.ReloadAll(context.Background()))
	require.Equal(t, "test riuscito", itEngine.T("test.result"))

	require.NoError(t, r.Close())
	require.Empty(t, r.Engines())
}

func TestRegistry_GetPropagatesErrors(t *testing.T) {
	t.Parallel()

	r, err := i18n.NewRegistry(testNamespace, nil, i18n.WithResourceType(i18n.KindCustom))
	require.NoError(t, err)

	_, err = r.Get(i18n.DefaultLocale)
	require.ErrorIs(t, err, i18n.ErrInvalidConfiguration)
	require.Empty(t, r.Engines())
}
