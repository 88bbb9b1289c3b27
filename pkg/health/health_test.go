package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingo/pkg/health"
	"github.com/dmitrymomot/lingo/pkg/i18n"
)

func ok(context.Context) error { return nil }

func failing(context.Context) error { return errors.New("connection refused") }

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	t.Run("healthy plain text", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		health.ReadinessHandler(health.Checks{"redis": ok})(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "OK", rec.Body.String())
	})

	t.Run("unhealthy json", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Accept", "application/json")
		health.ReadinessHandler(health.Checks{"redis": failing, "bundles": ok})(rec, req)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var resp health.Response
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Equal(t, health.StatusUnhealthy, resp.Status)
		require.Equal(t, health.StatusHealthy, resp.Checks["bundles"].Status)
		require.Equal(t, "connection refused", resp.Checks["redis"].Error)
	})

	t.Run("format query", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		health.ReadinessHandler(nil)(rec, httptest.NewRequest(http.MethodGet, "/healthz?format=json", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	})
}

func TestRun(t *testing.T) {
	t.Parallel()

	resp, err := health.Run(context.Background(), health.Checks{"a": ok})
	require.NoError(t, err)
	require.Equal(t, health.StatusHealthy, resp.Status)

	_, err = health.Run(context.Background(), health.Checks{"a": ok, "b": failing})
	require.ErrorIs(t, err, health.ErrCheckFailed)
	require.ErrorContains(t, err, "b: connection refused")

	slow := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}
	resp, err = health.Run(context.Background(), health.Checks{"slow": slow}, health.WithTimeout(10*time.Millisecond))
	require.ErrorIs(t, err, health.ErrCheckFailed)
	require.Contains(t, resp.Checks["slow"].Error, health.ErrCheckTimeout.Error())
}

func TestBundles(t *testing.T) {
	t.Parallel()

	resources := fstest.MapFS{
		"i18n/messages/en_us.lang": {Data: []byte("greeting=Hello\n")},
	}
	good, err := i18n.New("i18n.messages", i18n.WithResources(resources))
	require.NoError(t, err)
	broken, err := i18n.New("i18n.messages", i18n.WithResources(fstest.MapFS{}))
	require.NoError(t, err)

	require.NoError(t, health.Bundles(func() []*i18n.Engine { return nil })(context.Background()))
	require.NoError(t, health.Bundles(func() []*i18n.Engine { return []*i18n.Engine{good} })(context.Background()))

	err = health.Bundles(func() []*i18n.Engine { return []*i18n.Engine{good, broken} })(context.Background())
	require.ErrorIs(t, err, i18n.ErrTierUnavailable)
	require.ErrorContains(t, err, "i18n.messages default tier for en_us")
}
