package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

// TranslateResponse is the body of GET /v1/translate.
type TranslateResponse struct {
	Key    string `json:"key"`
	Locale string `json:"locale"`
	Value  string `json:"value"`
	Tier   string `json:"tier"`
	Found  bool   `json:"found"`
}

// KeysResponse is the body of GET /v1/keys.
type KeysResponse struct {
	Locale string   `json:"locale"`
	Tier   string   `json:"tier,omitempty"`
	Keys   []string `json:"keys"`
}

// TierStatus is one entry of GET /v1/status.
type TierStatus struct {
	Tier      string   `json:"tier"`
	Locale    string   `json:"locale"`
	Attempted bool     `json:"attempted"`
	Loaded    bool     `json:"loaded"`
	Resources []string `json:"resources,omitempty"`
	Keys      int      `json:"keys"`
	Error     string   `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := q.Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}

	fallback := key
	if q.Has("fallback") {
		fallback = q.Get("fallback")
	}

	engine := engineFromContext(r.Context())
	_, tier, found := engine.Lookup(key)

	writeJSON(w, http.StatusOK, TranslateResponse{
		Key:    key,
		Locale: engine.CurrentLocale().String(),
		Value:  engine.Translate(key, fallback, i18n.ParseArgs(q["arg"])...),
		Tier:   tier.String(),
		Found:  found,
	})
}

func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	engine := engineFromContext(r.Context())
	resp := KeysResponse{Locale: engine.CurrentLocale().String()}

	if name := r.URL.Query().Get("tier"); name != "" {
		tier, ok := parseTier(name)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown tier "+strconv.Quote(name))
			return
		}
		resp.Tier = tier.String()
		resp.Keys = engine.TierKeys(tier)
	} else {
		resp.Keys = engine.Keys()
	}
	if resp.Keys == nil {
		resp.Keys = []string{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	engine := engineFromContext(r.Context())

	statuses := engine.Status()
	out := make([]TierStatus, 0, len(statuses))
	for _, st := range statuses {
		ts := TierStatus{
			Tier:      st.Tier.String(),
			Locale:    st.Locale.String(),
			Attempted: st.Attempted,
			Loaded:    st.Loaded,
			Resources: st.Resources,
			Keys:      st.Keys,
		}
		if st.Err != nil {
			ts.Error = st.Err.Error()
		}
		out = append(out, ts)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.ReloadAll(r.Context()); err != nil {
		s.logger.WarnContext(r.Context(), "reload failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseTier(name string) (i18n.Tier, bool) {
	for _, t := range []i18n.Tier{i18n.TierExternal, i18n.TierInternal, i18n.TierDefault} {
		if strings.EqualFold(name, t.String()) {
			return t, true
		}
	}
	return i18n.TierNone, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
