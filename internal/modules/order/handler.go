package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes order history HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)                         // GET    /api/v1/orders?status=pending
		r.Get("/kitchen", h.kitchenQueue)                // GET    /api/v1/orders/kitchen
		r.Get("/customers", h.searchCustomers)           // GET    /api/v1/orders/customers?q=ada
		r.Get("/customers/{phone}", h.getCustomer)       // GET    /api/v1/orders/customers/{phone}
		r.Get("/{id}", h.getOrder)                       // GET    /api/v1/orders/{id}
		r.Get("/customer/{phone}", h.listCustomerOrders) // GET    /api/v1/orders/customer/{phone}
		r.Patch("/{id}/status", h.updateStatus)          // PATCH  /api/v1/orders/{id}/status
		r.Delete("/{id}", h.cancelOrder)                 // DELETE /api/v1/orders/{id}
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, nonNil(orders))
}

func (h *Handler) kitchenQueue(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.service.KitchenQueue(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, tickets)
}

func (h *Handler) searchCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.SearchCustomers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, nonNil(customers))
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCustomer(r.Context(), chi.URLParam(r, "phone"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) listCustomerOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListCustomerOrders(r.Context(), chi.URLParam(r, "phone"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, nonNil(orders))
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CancelOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "order cancelled"})
}

func respondErr(w http.ResponseWriter, err error) {
	var te *TransitionError
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrOrderNotFound), errors.Is(err, ErrCustomerNotFound):
		code = http.StatusNotFound
	case errors.As(err, &te):
		code = http.StatusUnprocessableEntity
	}
	respond(w, code, map[string]string{"error": err.Error()})
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
