package inventory

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes stock levels. Reads sit behind view, writes behind modify.
type Handler struct {
	service Service
	view    func(http.Handler) http.Handler
	modify  func(http.Handler) http.Handler
}

func NewHandler(service Service, view, modify func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, view: view, modify: modify}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/inventory", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.view)
			r.Get("/", h.report)       // GET  /api/v1/inventory
			r.Get("/alerts", h.alerts) // GET  /api/v1/inventory/alerts
			r.Get("/{item}", h.item)   // GET  /api/v1/inventory/{item}
		})
		r.Group(func(r chi.Router) {
			r.Use(h.modify)
			r.Put("/{item}", h.setLevel)       // PUT  /api/v1/inventory/{item}
			r.Post("/{item}/adjust", h.adjust) // POST /api/v1/inventory/{item}/adjust
		})
	})
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.Report(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) alerts(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.Alerts(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) item(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.Item(r.Context(), chi.URLParam(r, "item"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) setLevel(w http.ResponseWriter, r *http.Request) {
	var req SetLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	out, err := h.service.SetLevel(r.Context(), chi.URLParam(r, "item"), req.Quantity)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request) {
	var req AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	out, err := h.service.Adjust(r.Context(), chi.URLParam(r, "item"), req.Delta)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, out)
}

func respondErr(w http.ResponseWriter, err error) {
	var unknown *UnknownItemError
	code := http.StatusInternalServerError
	switch {
	case errors.As(err, &unknown):
		code = http.StatusNotFound
	case errors.Is(err, ErrNegativeQuantity):
		code = http.StatusUnprocessableEntity
	}
	respond(w, code, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
