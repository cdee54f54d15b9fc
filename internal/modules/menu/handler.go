package menu

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/pizza-pos/internal/money"
)

// Handler exposes the derived menu over HTTP.
type Handler struct {
	cache   *Cache
	configs Source
}

func NewHandler(cache *Cache, configs Source) *Handler {
	return &Handler{cache: cache, configs: configs}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/menu", func(r chi.Router) {
		r.Get("/", h.list)              // GET    /api/v1/menu?category=pizza
		r.Get("/items/{id}", h.getItem) // GET    /api/v1/menu/items/{id}
		r.Get("/toppings", h.toppings)  // GET    /api/v1/menu/toppings
	})
}

type listResponse struct {
	Version  uint64   `json:"version"`
	Items    []Item   `json:"items"`
	Excluded []string `json:"excluded,omitempty"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	cat, err := h.cache.Get()
	resp := listResponse{Version: cat.Version, Items: cat.Items}
	if c := r.URL.Query().Get("category"); c != "" {
		resp.Items = cat.ByCategory(Category(c))
	}
	if resp.Items == nil {
		resp.Items = []Item{}
	}
	if err != nil {
		resp.Excluded = splitJoined(err)
	}
	respond(w, http.StatusOK, resp)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	cat, _ := h.cache.Get()
	it, ok := cat.Find(chi.URLParam(r, "id"))
	if !ok {
		respond(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
		return
	}
	respond(w, http.StatusOK, it)
}

type topping struct {
	Name  string       `json:"name"`
	Price money.Amount `json:"price"`
}

func (h *Handler) toppings(w http.ResponseWriter, r *http.Request) {
	cfg, _ := h.configs.Current()
	prices := cfg.Pricing.Toppings
	out := make([]topping, 0, len(prices))
	for name, p := range prices {
		out = append(out, topping{Name: name, Price: p})
	}
	slices.SortFunc(out, func(a, b topping) int { return strings.Compare(a.Name, b.Name) })
	respond(w, http.StatusOK, out)
}

// splitJoined unpacks an errors.Join result into one message per entry.
func splitJoined(err error) []string {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		msgs := make([]string, 0, len(j.Unwrap()))
		for _, e := range j.Unwrap() {
			msgs = append(msgs, e.Error())
		}
		return msgs
	}
	return []string{err.Error()}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
