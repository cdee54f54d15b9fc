package order

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"github.com/georgemunganga/pizza-pos/internal/modules/config"
	"github.com/georgemunganga/pizza-pos/internal/modules/routing"
)

// Service manages the history of completed orders and their kitchen status.
type Service interface {
	// Record persists a freshly completed order.
	Record(ctx context.Context, o *CompletedOrder) error

	// GetOrder retrieves an order by its id.
	GetOrder(ctx context.Context, id string) (*CompletedOrder, error)

	// ListOrders returns all orders, optionally filtered by status.
	ListOrders(ctx context.Context, status string) ([]*CompletedOrder, error)

	// ListCustomerOrders returns the orders placed under a phone number.
	ListCustomerOrders(ctx context.Context, phone string) ([]*CompletedOrder, error)

	// SearchCustomers looks customers up by part of their name or phone.
	SearchCustomers(ctx context.Context, q string) ([]*Customer, error)

	// GetCustomer returns the directory entry for a phone number.
	GetCustomer(ctx context.Context, phone string) (*Customer, error)

	// KitchenQueue returns tickets for orders still being worked, oldest
	// first, each routed to the least loaded kitchen station.
	KitchenQueue(ctx context.Context) ([]KitchenTicket, error)

	// UpdateStatus advances an order to a new lifecycle status.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*CompletedOrder, error)

	// CancelOrder cancels an order that the kitchen has not finished.
	CancelOrder(ctx context.Context, id string) error
}

// ConfigSource provides the live configuration.
type ConfigSource interface {
	Snapshot() *config.Config
}

type service struct {
	repo    Repository
	configs ConfigSource
	logger  *zap.Logger
}

// NewService creates a new order history service.
func NewService(repo Repository, configs ConfigSource, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{repo: repo, configs: configs, logger: logger}
}

// validTransitions defines the allowed status state machine.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

func (s *service) Record(ctx context.Context, o *CompletedOrder) error {
	if err := s.repo.Create(ctx, o); err != nil {
		return fmt.Errorf("failed to persist order: %w", err)
	}
	s.logger.Info("order recorded",
		zap.String("order_id", o.ID.String()),
		zap.String("ticket", o.TicketNumber),
		zap.Int("items", o.ItemCount()),
		zap.String("total", o.Totals.Display().Total))
	return nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*CompletedOrder, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, oid)
}

func (s *service) ListOrders(ctx context.Context, status string) ([]*CompletedOrder, error) {
	if status == "" {
		return s.repo.ListByStatus(ctx)
	}
	return s.repo.ListByStatus(ctx, OrderStatus(strings.ToLower(status)))
}

func (s *service) ListCustomerOrders(ctx context.Context, phone string) ([]*CompletedOrder, error) {
	return s.repo.ListByPhone(ctx, phone)
}

func (s *service) SearchCustomers(ctx context.Context, q string) ([]*Customer, error) {
	return s.repo.SearchCustomers(ctx, strings.TrimSpace(q))
}

func (s *service) GetCustomer(ctx context.Context, phone string) (*Customer, error) {
	return s.repo.GetCustomer(ctx, strings.TrimSpace(phone))
}

func (s *service) KitchenQueue(ctx context.Context) ([]KitchenTicket, error) {
	orders, err := s.repo.ListByStatus(ctx, StatusPending, StatusPreparing)
	if err != nil {
		return nil, err
	}
	stations := routing.NewBalancer(s.configs.Snapshot().KitchenStations)
	tickets := make([]KitchenTicket, 0, len(orders))
	for _, o := range slices.Backward(orders) {
		items := make([]string, len(o.Lines))
		for i, l := range o.Lines {
			items[i] = fmt.Sprintf("%dx %s", l.Quantity, l.Name)
		}
		tickets = append(tickets, KitchenTicket{
			OrderID:      o.ID,
			TicketNumber: o.TicketNumber,
			Items:        items,
			Station:      stations.Route(o.ItemCount()).Station,
			Status:       o.Status,
			OrderedAt:    o.CreatedAt,
		})
	}
	return tickets, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*CompletedOrder, error) {
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	newStatus := OrderStatus(strings.ToLower(req.Status))
	if !slices.Contains(validTransitions[o.Status], newStatus) {
		return nil, &TransitionError{From: o.Status, To: newStatus}
	}

	if err := s.repo.UpdateStatus(ctx, o.ID, newStatus); err != nil {
		return nil, err
	}
	o.Status = newStatus
	return o, nil
}

func (s *service) CancelOrder(ctx context.Context, id string) error {
	_, err := s.UpdateStatus(ctx, id, UpdateStatusRequest{Status: string(StatusCancelled)})
	return err
}

// ── helpers ───────────────────────────────────────────────────────────────────

func parseID(id string) (snowflake.ID, error) {
	oid, err := snowflake.ParseString(id)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrOrderNotFound, id)
	}
	return oid, nil
}
