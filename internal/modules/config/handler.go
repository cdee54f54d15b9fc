package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/georgemunganga/pizza-pos/internal/modules/settings"
)

// Handler exposes configuration HTTP endpoints. Everything except the public
// info and the change stream sits behind guard.
type Handler struct {
	store  *Store
	guard  func(http.Handler) http.Handler
	logger *zap.Logger
}

func NewHandler(store *Store, guard func(http.Handler) http.Handler, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, guard: guard, logger: logger}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/config", func(r chi.Router) {
		r.Get("/info", h.getInfo)         // GET    /api/v1/config/info
		r.Get("/events", h.streamChanges) // GET    /api/v1/config/events (websocket)

		r.Group(func(r chi.Router) {
			r.Use(h.guard)
			r.Get("/", h.getConfig)     // GET    /api/v1/config
			r.Get("/value", h.getValue) // GET    /api/v1/config/value?path=a.b.c
			r.Put("/", h.setValue)      // PUT    /api/v1/config
			r.Post("/save", h.save)     // POST   /api/v1/config/save
			r.Post("/load", h.load)     // POST   /api/v1/config/load
			r.Post("/reset", h.reset)   // POST   /api/v1/config/reset
		})
	})
}

type infoResponse struct {
	Info            Info     `json:"info"`
	KitchenStations []string `json:"kitchenStations"`
	Version         uint64   `json:"version"`
}

func (h *Handler) getInfo(w http.ResponseWriter, r *http.Request) {
	cfg, version := h.store.Current()
	respond(w, http.StatusOK, infoResponse{Info: cfg.Info, KitchenStations: cfg.KitchenStations, Version: version})
}

func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	cfg, version := h.store.Current()
	w.Header().Set("X-Config-Version", strconv.FormatUint(version, 10))
	respond(w, http.StatusOK, cfg)
}

func (h *Handler) getValue(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	v, err := h.store.Get(path)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"path": path, "value": v})
}

// SetRequest edits one leaf. Kind selects settings-panel coercion for string
// input; without it the JSON value is stored as sent.
type SetRequest struct {
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value"`
	Kind  settings.Kind   `json:"kind,omitempty"`
}

func (h *Handler) setValue(w http.ResponseWriter, r *http.Request) {
	var req SetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	value, err := req.decodeValue()
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.store.Set(req.Path, value); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"path": req.Path, "version": h.store.Version()})
}

func (req SetRequest) decodeValue() (interface{}, error) {
	if len(req.Value) == 0 {
		return nil, errors.New("value is required")
	}
	dec := json.NewDecoder(bytes.NewReader(req.Value))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if s, ok := v.(string); ok && req.Kind != "" {
		return settings.Coerce(req.Kind, s)
	}
	return v, nil
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Save(r.Context()); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"saved": true, "version": h.store.Version()})
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) {
	loaded := h.store.Load(r.Context())
	respond(w, http.StatusOK, map[string]interface{}{"loaded": loaded, "version": h.store.Version()})
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Reset(r.Context()); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"reset": true, "version": h.store.Version()})
}

// ── change stream ──────────────────────────────────────────────────────────

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Event is one message on the change stream.
type Event struct {
	Event   string `json:"event"`
	Payload Change `json:"payload"`
}

const writeWait = 5 * time.Second

func (h *Handler) streamChanges(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	changes := make(chan Change, 16)
	cancel := h.store.Subscribe(func(c Change) {
		select {
		case changes <- c:
		default:
			h.logger.Warn("dropping config event for slow client", zap.Uint64("version", c.Version))
		}
	})
	defer cancel()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	hello := Event{Event: "connected", Payload: Change{Version: h.store.Version()}}
	if err := conn.WriteJSON(hello); err != nil {
		return
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case c := <-changes:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(Event{Event: "configChanged", Payload: c}); err != nil {
				return
			}
		}
	}
}

// ── helpers ────────────────────────────────────────────────────────────────

func respondErr(w http.ResponseWriter, err error) {
	var pathErr *InvalidPathError
	var valueErr *InvalidValueError
	code := http.StatusInternalServerError
	switch {
	case errors.As(err, &pathErr):
		code = http.StatusNotFound
	case errors.As(err, &valueErr):
		code = http.StatusUnprocessableEntity
	}
	respond(w, code, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
