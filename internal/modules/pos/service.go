package pos

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/georgemunganga/pizza-pos/internal/modules/auth"
	"github.com/georgemunganga/pizza-pos/internal/modules/menu"
	"github.com/georgemunganga/pizza-pos/internal/modules/order"
	"github.com/georgemunganga/pizza-pos/internal/modules/pricing"
)

// Service is the single cashier terminal. It owns the in-progress order and
// starts a fresh one after each completion or void.
type Service interface {
	CurrentOrder(ctx context.Context) *OrderView
	AddItem(ctx context.Context, req AddItemRequest) (*OrderView, error)
	UpdateQuantity(ctx context.Context, lineID string, delta int) (*OrderView, error)
	RemoveLine(ctx context.Context, lineID string) (*OrderView, error)
	Checkout(ctx context.Context, opts pricing.Options) (*pricing.Breakdown, error)
	Complete(ctx context.Context, customer order.CustomerInfo) (*order.CompletedOrder, error)
	Void(ctx context.Context) *OrderView
}

type service struct {
	menu    *menu.Cache
	engine  *pricing.Engine
	ids     order.IDGenerator
	history order.Service
	logger  *zap.Logger

	mu     sync.Mutex
	ledger *order.Ledger
}

// NewService wires a terminal. Completed orders are handed to history.
func NewService(menuCache *menu.Cache, engine *pricing.Engine, ids order.IDGenerator, history order.Service, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		menu:    menuCache,
		engine:  engine,
		ids:     ids,
		history: history,
		logger:  logger,
		ledger:  order.NewLedger(engine, ids),
	}
}

func (s *service) CurrentOrder(ctx context.Context) *OrderView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *service) AddItem(ctx context.Context, req AddItemRequest) (*OrderView, error) {
	// Excluded entries are simply absent from the catalog.
	catalog, _ := s.menu.Get()
	item, ok := catalog.Find(req.ItemID)
	if !ok {
		return nil, ErrItemNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.ledger.AddItem(item, req.Toppings); err != nil {
		return nil, err
	}
	return s.view(), nil
}

func (s *service) UpdateQuantity(ctx context.Context, lineID string, delta int) (*OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// A malformed id cannot name a line, which is the same no-op as an unknown one.
	if id, err := uuid.Parse(lineID); err == nil {
		if err := s.ledger.UpdateQuantity(id, delta); err != nil {
			return nil, err
		}
	}
	return s.view(), nil
}

func (s *service) RemoveLine(ctx context.Context, lineID string) (*OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, err := uuid.Parse(lineID); err == nil {
		if err := s.ledger.RemoveLine(id); err != nil {
			return nil, err
		}
	}
	return s.view(), nil
}

func (s *service) Checkout(ctx context.Context, opts pricing.Options) (*pricing.Breakdown, error) {
	s.mu.Lock()
	lines := s.ledger.Lines()
	s.mu.Unlock()

	if len(lines) == 0 {
		return nil, order.ErrEmptyOrder
	}
	priced := make([]pricing.Line, len(lines))
	for i, l := range lines {
		priced[i] = pricing.Line{UnitPrice: l.UnitPrice, Quantity: l.Quantity}
	}
	b, err := s.engine.Checkout(priced, opts)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Complete finishes the current order and opens a new one. A history write
// failure is logged; the completed order is still returned.
func (s *service) Complete(ctx context.Context, customer order.CustomerInfo) (*order.CompletedOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.ledger.Complete(customer)
	if err != nil {
		return nil, err
	}
	s.ledger = order.NewLedger(s.engine, s.ids)

	if err := s.history.Record(ctx, o); err != nil {
		s.logger.Error("completed order not saved to history",
			zap.String("order_id", o.ID.String()), zap.Error(err))
	}
	return o, nil
}

func (s *service) Void(ctx context.Context) *OrderView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.ledger.Lines()); n > 0 {
		fields := []zap.Field{zap.Int("lines", n)}
		if claims, ok := auth.ClaimsFrom(ctx); ok {
			fields = append(fields, zap.String("role", string(claims.Role)))
		}
		s.logger.Info("order voided", fields...)
	}
	s.ledger = order.NewLedger(s.engine, s.ids)
	return s.view()
}

// view must be called with s.mu held.
func (s *service) view() *OrderView {
	return &OrderView{
		State:  s.ledger.State(),
		Lines:  s.ledger.Lines(),
		Totals: s.ledger.Totals(),
	}
}
