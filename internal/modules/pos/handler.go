package pos

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/pizza-pos/internal/modules/config"
	"github.com/georgemunganga/pizza-pos/internal/modules/order"
	"github.com/georgemunganga/pizza-pos/internal/modules/pricing"
)

// Handler exposes the cashier terminal over HTTP. Voiding an order sits behind
// voidGuard.
type Handler struct {
	service   Service
	voidGuard func(http.Handler) http.Handler
}

func NewHandler(service Service, voidGuard func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, voidGuard: voidGuard}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/pos/order", func(r chi.Router) {
		r.Get("/", h.current)                      // GET    /api/v1/pos/order
		r.Post("/items", h.addItem)                // POST   /api/v1/pos/order/items
		r.Patch("/items/{line_id}", h.updateQty)   // PATCH  /api/v1/pos/order/items/{line_id}
		r.Delete("/items/{line_id}", h.removeLine) // DELETE /api/v1/pos/order/items/{line_id}
		r.Post("/checkout", h.checkout)            // POST   /api/v1/pos/order/checkout
		r.Post("/complete", h.complete)            // POST   /api/v1/pos/order/complete
		r.With(h.voidGuard).Delete("/", h.void)    // DELETE /api/v1/pos/order
	})
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.service.CurrentOrder(r.Context()))
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	view, err := h.service.AddItem(r.Context(), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, view)
}

func (h *Handler) updateQty(w http.ResponseWriter, r *http.Request) {
	var req QuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	view, err := h.service.UpdateQuantity(r.Context(), chi.URLParam(r, "line_id"), req.Delta)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) removeLine(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.RemoveLine(r.Context(), chi.URLParam(r, "line_id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var opts pricing.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	b, err := h.service.Checkout(r.Context(), opts)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, b)
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	var req CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.Complete(r.Context(), req.Customer)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) void(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.service.Void(r.Context()))
}

func respondErr(w http.ResponseWriter, err error) {
	var (
		unknownTopping *config.UnknownToppingError
		tooMany        *order.TooManyItemsError
		unknownZone    *pricing.UnknownZoneError
	)
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrItemNotFound):
		code = http.StatusNotFound
	case errors.Is(err, order.ErrMissingCustomerInfo):
		code = http.StatusBadRequest
	case errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrOrderAlreadyCompleted),
		errors.As(err, &unknownTopping),
		errors.As(err, &tooMany),
		errors.As(err, &unknownZone):
		code = http.StatusUnprocessableEntity
	}
	respond(w, code, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
