package config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/pizza-pos/internal/money"
)

func passthrough(next http.Handler) http.Handler { return next }

func newTestRouter(guard func(http.Handler) http.Handler) (*chi.Mux, *Store) {
	store, _ := newTestStore()
	r := chi.NewRouter()
	NewHandler(store, guard, nil).RegisterRoutes(r)
	return r, store
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestHandlerSetWithCoercion(t *testing.T) {
	r, store := newTestRouter(passthrough)

	rec := do(r, http.MethodPut, "/api/v1/config", `{"path":"business.taxRate","value":"6","kind":"percentage"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "0.06", store.Snapshot().Business.TaxRate.String())

	rec = do(r, http.MethodPut, "/api/v1/config", `{"path":"pricing.pizza.small","value":"garbage","kind":"number"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, money.Amount(0), store.Snapshot().Pricing.Pizza.Small)

	rec = do(r, http.MethodPut, "/api/v1/config", `{"path":"pricing.pizza.large","value":17.25}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, money.Amount(1725), store.Snapshot().Pricing.Pizza.Large)
}

func TestHandlerSetErrors(t *testing.T) {
	r, _ := newTestRouter(passthrough)

	rec := do(r, http.MethodPut, "/api/v1/config", `{"path":"business.bogus","value":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, http.MethodPut, "/api/v1/config", `{"path":"pricing.pizza.small","value":-3}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(r, http.MethodPut, "/api/v1/config", `{"path":"info.name"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPut, "/api/v1/config", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerGetValue(t *testing.T) {
	r, _ := newTestRouter(passthrough)

	rec := do(r, http.MethodGet, "/api/v1/config/value?path=pricing.stromboli.large", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"path":"pricing.stromboli.large","value":11.99}`, rec.Body.String())

	rec = do(r, http.MethodGet, "/api/v1/config/value?path=pricing.calzone", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerSaveLoadReset(t *testing.T) {
	r, store := newTestRouter(passthrough)

	require.NoError(t, store.Set("info.name", "Saved"))
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/config/save", "").Code)

	require.NoError(t, store.Set("info.name", "Unsaved"))
	rec := do(r, http.MethodPost, "/api/v1/config/load", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"loaded":true`)
	assert.Equal(t, "Saved", store.Snapshot().Info.Name)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/config/reset", "").Code)
	assert.Equal(t, Default().Info.Name, store.Snapshot().Info.Name)
}

func TestHandlerGuard(t *testing.T) {
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}
	r, _ := newTestRouter(deny)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/v1/config", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPut, "/api/v1/config", `{}`).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/v1/config/reset", "").Code)

	rec := do(r, http.MethodGet, "/api/v1/config/info", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var info infoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "Tony's Pizza Palace", info.Info.Name)
	assert.NotContains(t, rec.Body.String(), "9999")
}

func TestHandlerChangeStream(t *testing.T) {
	r, store := newTestRouter(passthrough)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/config/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "connected", ev.Event)
	assert.Equal(t, store.Version(), ev.Payload.Version)

	require.NoError(t, store.Set("info.phone", "555-0199"))
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "configChanged", ev.Event)
	assert.Equal(t, ChangeSet, ev.Payload.Kind)
	assert.Equal(t, "info.phone", ev.Payload.Path)
}
