package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lingo/internal/server"
	"github.com/dmitrymomot/lingo/pkg/i18n"
	"github.com/dmitrymomot/lingo/pkg/logger"
)

var resources = fstest.MapFS{
	"app/messages/en_us.lang": {Data: []byte("greeting=Hello, {0}!\ncount={0,plural,one{# item} other{# items}}\n")},
	"app/messages/de_de.lang": {Data: []byte("greeting=Hallo, {0}!\n")},
}

func newServer(t *testing.T, opts ...server.Option) (*server.Server, *i18n.Registry) {
	t.Helper()

	reg, err := i18n.NewRegistry("app.messages",
		[]i18n.Locale{i18n.DefaultLocale, i18n.ParseLocale("de_de")},
		i18n.WithResources(resources),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Close() })

	return server.New(reg, opts...), reg
}

func get(t *testing.T, h http.Handler, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)
	h := srv.Handler()

	t.Run("default locale", func(t *testing.T) {
		t.Parallel()
		rec := get(t, h, "/v1/translate?key=greeting&arg=Ann", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, "en-US", rec.Header().Get("Content-Language"))

		resp := decode[server.TranslateResponse](t, rec)
		assert.Equal(t, server.TranslateResponse{
			Key: "greeting", Locale: "en_us", Value: "Hello, Ann!", Tier: "internal", Found: true,
		}, resp)
	})

	t.Run("accept language", func(t *testing.T) {
		t.Parallel()
		rec := get(t, h, "/v1/translate?key=greeting&arg=Ann", http.Header{"Accept-Language": {"de-DE,de;q=0.9"}})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "de-DE", rec.Header().Get("Content-Language"))

		resp := decode[server.TranslateResponse](t, rec)
		assert.Equal(t, "de_de", resp.Locale)
		assert.Equal(t, "Hallo, Ann!", resp.Value)
	})

	t.Run("query locale wins", func(t *testing.T) {
		t.Parallel()
		rec := get(t, h, "/v1/translate?key=greeting&arg=Ann&locale=en_us", http.Header{"Accept-Language": {"de-DE"}})
		assert.Equal(t, "Hello, Ann!", decode[server.TranslateResponse](t, rec).Value)
	})

	t.Run("numeric arguments", func(t *testing.T) {
		t.Parallel()
		rec := get(t, h, "/v1/translate?key=count&arg=3", nil)
		assert.Equal(t, "3 items", decode[server.TranslateResponse](t, rec).Value)
	})

	t.Run("falls through to default tier", func(t *testing.T) {
		t.Parallel()
		rec := get(t, h, "/v1/translate?key=count&arg=1&locale=de_de", nil)
		resp := decode[server.TranslateResponse](t, rec)
		assert.Equal(t, "default", resp.Tier)
		assert.Equal(t, "1 item", resp.Value)
	})

	t.Run("missing key uses fallback", func(t *testing.T) {
		t.Parallel()
		rec := get(t, h, "/v1/translate?key=nope&fallback=Hi+%7B0%7D&arg=x", nil)
		resp := decode[server.TranslateResponse](t, rec)
		assert.False(t, resp.Found)
		assert.Equal(t, "none", resp.Tier)
		assert.Equal(t, "Hi x", resp.Value)
	})

	t.Run("missing key without fallback echoes key", func(t *testing.T) {
		t.Parallel()
		rec := get(t, h, "/v1/translate?key=nope", nil)
		assert.Equal(t, "nope", decode[server.TranslateResponse](t, rec).Value)
	})

	t.Run("key is required", func(t *testing.T) {
		t.Parallel()
		rec := get(t, h, "/v1/translate", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"key is required"}`, rec.Body.String())
	})
}

func TestUnsupportedLocale(t *testing.T) {
	t.Parallel()

	srv, reg := newServer(t)
	h := srv.Handler()

	rec := get(t, h, "/v1/translate?key=greeting&locale=de_de", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	engines := len(reg.Engines())

	for _, target := range []string{
		"/v1/translate?key=greeting&locale=zz1_qq",
		"/v1/translate?key=greeting&locale=zz2_qq",
		"/v1/keys?locale=fr_fr",
		"/v1/status?locale=xx",
	} {
		rec := get(t, h, target, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.JSONEq(t, `{"error":"unsupported locale"}`, rec.Body.String())
	}
	assert.Len(t, reg.Engines(), engines)

	rec = get(t, h, "/v1/translate?key=greeting&arg=Ann&locale=DE_DE", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hallo, Ann!", decode[server.TranslateResponse](t, rec).Value)
	assert.Len(t, reg.Engines(), engines)
}

func TestKeys(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)
	h := srv.Handler()

	rec := get(t, h, "/v1/keys", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, server.KeysResponse{Locale: "en_us", Keys: []string{"count", "greeting"}}, decode[server.KeysResponse](t, rec))

	rec = get(t, h, "/v1/keys?locale=de_de&tier=internal", nil)
	assert.Equal(t, server.KeysResponse{Locale: "de_de", Tier: "internal", Keys: []string{"greeting"}}, decode[server.KeysResponse](t, rec))

	rec = get(t, h, "/v1/keys?locale=de_de&tier=EXTERNAL", nil)
	assert.Equal(t, server.KeysResponse{Locale: "de_de", Tier: "external", Keys: []string{}}, decode[server.KeysResponse](t, rec))

	rec = get(t, h, "/v1/keys?tier=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatus(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)

	rec := get(t, srv.Handler(), "/v1/status?locale=de_de", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	statuses := decode[[]server.TierStatus](t, rec)
	require.Len(t, statuses, 3)
	assert.Equal(t, "external", statuses[0].Tier)
	assert.False(t, statuses[0].Attempted)
	assert.NotEmpty(t, statuses[0].Error)
	assert.Equal(t, "internal", statuses[1].Tier)
	assert.True(t, statuses[1].Loaded)
	assert.Equal(t, 1, statuses[1].Keys)
	assert.Equal(t, "default", statuses[2].Tier)
	assert.Equal(t, "en_us", statuses[2].Locale)
	assert.Equal(t, 2, statuses[2].Keys)
}

func TestReload(t *testing.T) {
	t.Parallel()

	srv, reg := newServer(t)
	_, err := reg.Get(i18n.DefaultLocale)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/reload", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = get(t, srv.Handler(), "/v1/reload", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)
	assert.Equal(t, http.StatusOK, get(t, srv.Handler(), "/healthz/live", nil).Code)
	assert.Equal(t, http.StatusOK, get(t, srv.Handler(), "/healthz/ready", nil).Code)

	failing, _ := newServer(t, server.WithCheck("redis", func(context.Context) error {
		return errors.New("connection refused")
	}))
	rec := get(t, failing.Handler(), "/healthz/ready?format=json", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	h := server.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = server.RequestIDFromContext(r.Context())
	}))

	rec := get(t, h, "/", http.Header{"X-Correlation-Id": {"upstream-1"}})
	assert.Equal(t, "upstream-1", seen)
	assert.Equal(t, "upstream-1", rec.Header().Get("X-Request-ID"))

	rec = get(t, h, "/", nil)
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	attr, ok := server.RequestIDExtractor()(context.Background())
	assert.False(t, ok)
	assert.Empty(t, attr.Key)
}

func TestRecover(t *testing.T) {
	t.Parallel()

	h := server.Recover(logger.NewNope())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := get(t, h, "/", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)
	rec := get(t, srv.Handler(), "/v2/anything", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServe_GracefulShutdown(t *testing.T) {
	t.Parallel()

	hookCalled := make(chan struct{})
	srv, _ := newServer(t,
		server.WithShutdownTimeout(time.Second),
		server.WithShutdownHook(func(context.Context) error {
			close(hookCalled)
			return nil
		}),
	)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz/live")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
	<-hookCalled
}

func TestServe_HookErrors(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t, server.WithShutdownHook(func(context.Context) error {
		return errors.New("close failed")
	}))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorContains(t, srv.Serve(ctx, ln), "close failed")
}
