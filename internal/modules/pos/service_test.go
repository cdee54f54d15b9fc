package pos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/georgemunganga/pizza-pos/internal/modules/auth"
	"github.com/georgemunganga/pizza-pos/internal/modules/config"
	"github.com/georgemunganga/pizza-pos/internal/modules/menu"
	"github.com/georgemunganga/pizza-pos/internal/modules/order"
	"github.com/georgemunganga/pizza-pos/internal/modules/permission"
	"github.com/georgemunganga/pizza-pos/internal/modules/pricing"
	"github.com/georgemunganga/pizza-pos/internal/money"
)

type terminal struct {
	store   *config.Store
	history order.Service
	svc     Service
}

func newTerminal(t *testing.T, repo order.Repository) *terminal {
	t.Helper()
	store := config.NewStore(config.NewMemoryBlobStore(), nil)
	cache := menu.NewCache(store, nil)
	t.Cleanup(cache.Close)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	history := order.NewService(repo, store, nil)
	return &terminal{
		store:   store,
		history: history,
		svc:     NewService(cache, pricing.NewEngine(store), node, history, nil),
	}
}

var ada = order.CustomerInfo{Name: "Ada", Phone: "555-0100"}

func TestTerminalScenario(t *testing.T) {
	term := newTerminal(t, order.NewMemoryRepository())
	ctx := context.Background()

	_, err := term.svc.AddItem(ctx, AddItemRequest{ItemID: "byo-small", Toppings: []string{"pepperoni"}})
	require.NoError(t, err)
	view, err := term.svc.AddItem(ctx, AddItemRequest{ItemID: "byo-small", Toppings: []string{"mushrooms"}})
	require.NoError(t, err)

	assert.Equal(t, order.StateBuilding, view.State)
	assert.Len(t, view.Lines, 2)
	assert.Equal(t, money.MustParse("22.73"), view.Totals.Subtotal)
	assert.Equal(t, "$24.66", view.Totals.Display().Total)

	o, err := term.svc.Complete(ctx, ada)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, o.Status)

	fresh := term.svc.CurrentOrder(ctx)
	assert.Equal(t, order.StateEmpty, fresh.State)
	assert.Empty(t, fresh.Lines)

	saved, err := term.history.GetOrder(ctx, o.ID.String())
	require.NoError(t, err)
	assert.Equal(t, o.TicketNumber, saved.TicketNumber)
}

func TestTerminalUnknownItem(t *testing.T) {
	term := newTerminal(t, order.NewMemoryRepository())
	_, err := term.svc.AddItem(context.Background(), AddItemRequest{ItemID: "calzone-large"})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestTerminalExcludedItemIsNotSold(t *testing.T) {
	term := newTerminal(t, order.NewMemoryRepository())
	require.NoError(t, term.store.Set("specialtyPizzas.hawaiian.toppings.1", "mango"))

	_, err := term.svc.AddItem(context.Background(), AddItemRequest{ItemID: "hawaiian-large"})
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = term.svc.AddItem(context.Background(), AddItemRequest{ItemID: "supreme-large"})
	assert.NoError(t, err)
}

func TestTerminalQuantityAndRemoval(t *testing.T) {
	term := newTerminal(t, order.NewMemoryRepository())
	ctx := context.Background()

	view, err := term.svc.AddItem(ctx, AddItemRequest{ItemID: "coffee"})
	require.NoError(t, err)
	id := view.Lines[0].LineID.String()

	view, err = term.svc.UpdateQuantity(ctx, id, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, view.Lines[0].Quantity)

	view, err = term.svc.UpdateQuantity(ctx, "not-a-uuid", 1)
	require.NoError(t, err)
	assert.Equal(t, 4, view.Lines[0].Quantity)

	view, err = term.svc.RemoveLine(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Equal(t, order.StateEmpty, view.State)
}

func TestTerminalCheckout(t *testing.T) {
	term := newTerminal(t, order.NewMemoryRepository())
	ctx := context.Background()

	_, err := term.svc.Checkout(ctx, pricing.Options{})
	assert.ErrorIs(t, err, order.ErrEmptyOrder)

	_, err = term.svc.AddItem(ctx, AddItemRequest{ItemID: "garlic-bread"})
	require.NoError(t, err)
	b, err := term.svc.Checkout(ctx, pricing.Options{Delivery: true, Zone: "west"})
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("4.99"), b.DeliveryFee)
}

func TestTerminalVoid(t *testing.T) {
	term := newTerminal(t, order.NewMemoryRepository())
	ctx := context.Background()
	_, err := term.svc.AddItem(ctx, AddItemRequest{ItemID: "beer"})
	require.NoError(t, err)

	view := term.svc.Void(ctx)
	assert.Empty(t, view.Lines)
	assert.Equal(t, order.StateEmpty, view.State)
}

func TestManagerVoidIsAttributed(t *testing.T) {
	store := config.NewStore(config.NewMemoryBlobStore(), nil)
	cache := menu.NewCache(store, nil)
	t.Cleanup(cache.Close)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	core, logs := observer.New(zap.InfoLevel)
	svc := NewService(cache, pricing.NewEngine(store), node, order.NewService(order.NewMemoryRepository(), store, nil), zap.New(core))

	authSvc := auth.NewService(store, []byte("test-key"), nil)
	session, err := authSvc.Login(context.Background(), "9999")
	require.NoError(t, err)

	r := chi.NewRouter()
	NewHandler(svc, auth.RequirePermission(authSvc, permission.POSVoidOrder)).RegisterRoutes(r)

	_, err = svc.AddItem(context.Background(), AddItemRequest{ItemID: "beer"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/pos/order", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	voided := logs.FilterMessage("order voided").All()
	require.Len(t, voided, 1)
	fields := voided[0].ContextMap()
	assert.Equal(t, "manager", fields["role"])
	assert.EqualValues(t, 1, fields["lines"])
}

type brokenRepo struct{ order.Repository }

func (brokenRepo) Create(context.Context, *order.CompletedOrder) error {
	return errors.New("database unavailable")
}

func TestTerminalCompleteSurvivesHistoryFailure(t *testing.T) {
	term := newTerminal(t, brokenRepo{order.NewMemoryRepository()})
	ctx := context.Background()
	_, err := term.svc.AddItem(ctx, AddItemRequest{ItemID: "beer"})
	require.NoError(t, err)

	o, err := term.svc.Complete(ctx, ada)
	require.NoError(t, err)
	assert.NotZero(t, o.ID)
	assert.Equal(t, order.StateEmpty, term.svc.CurrentOrder(ctx).State)
}

func TestTerminalCompleteValidation(t *testing.T) {
	term := newTerminal(t, order.NewMemoryRepository())
	ctx := context.Background()

	_, err := term.svc.Complete(ctx, ada)
	assert.ErrorIs(t, err, order.ErrEmptyOrder)

	_, err = term.svc.AddItem(ctx, AddItemRequest{ItemID: "beer"})
	require.NoError(t, err)
	_, err = term.svc.Complete(ctx, order.CustomerInfo{Name: "Ada"})
	assert.ErrorIs(t, err, order.ErrMissingCustomerInfo)
	assert.Len(t, term.svc.CurrentOrder(ctx).Lines, 1, "failed completion keeps the order")
}

func TestPOSHandler(t *testing.T) {
	term := newTerminal(t, order.NewMemoryRepository())
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusForbidden) })
	}
	r := chi.NewRouter()
	NewHandler(term.svc, deny).RegisterRoutes(r)

	do := func(method, target, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
		return rec
	}

	rec := do(http.MethodPost, "/api/v1/pos/order/items", `{"itemId":"byo-medium","toppings":["bacon"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var view struct {
		State string       `json:"state"`
		Lines []order.Line `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "building", view.State)
	require.Len(t, view.Lines, 1)
	lineID := view.Lines[0].LineID.String()

	assert.Equal(t, http.StatusUnprocessableEntity,
		do(http.MethodPost, "/api/v1/pos/order/items", `{"itemId":"byo-medium","toppings":["gold"]}`).Code)
	assert.Equal(t, http.StatusNotFound,
		do(http.MethodPost, "/api/v1/pos/order/items", `{"itemId":"nope"}`).Code)

	rec = do(http.MethodPatch, "/api/v1/pos/order/items/"+lineID, `{"delta":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"quantity":2`)

	rec = do(http.MethodPost, "/api/v1/pos/order/checkout", `{"loyalty":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tips"`)

	assert.Equal(t, http.StatusUnprocessableEntity,
		do(http.MethodPost, "/api/v1/pos/order/checkout", `{"delivery":true,"zone":"mars"}`).Code)

	assert.Equal(t, http.StatusForbidden, do(http.MethodDelete, "/api/v1/pos/order", "").Code)

	assert.Equal(t, http.StatusBadRequest,
		do(http.MethodPost, "/api/v1/pos/order/complete", `{"customerInfo":{"name":"Ada"}}`).Code)
	rec = do(http.MethodPost, "/api/v1/pos/order/complete", `{"customerInfo":{"name":"Ada","phone":"555"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)

	rec = do(http.MethodGet, "/api/v1/pos/order", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"empty"`)

	rec = do(http.MethodDelete, "/api/v1/pos/order/items/"+lineID, "")
	assert.Equal(t, http.StatusOK, rec.Code, "removing a line from a finished order is a no-op")
}
