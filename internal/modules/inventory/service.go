package inventory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/georgemunganga/pizza-pos/internal/modules/config"
)

// ConfigSource supplies the reorder policy for each stock item.
type ConfigSource interface {
	Snapshot() *config.Config
}

// Service tracks stock levels against the configured inventory policy.
type Service interface {
	// Report assesses every configured item, sorted by name. Items that
	// were never counted report a quantity of zero.
	Report(ctx context.Context) ([]Report, error)

	// Alerts is Report restricted to low and out items.
	Alerts(ctx context.Context) ([]Report, error)

	// Item assesses a single configured item.
	Item(ctx context.Context, item string) (*Report, error)

	// SetLevel records a fresh count.
	SetLevel(ctx context.Context, item string, quantity float64) (*Report, error)

	// Adjust adds delta to the current count, stopping at zero.
	Adjust(ctx context.Context, item string, delta float64) (*Report, error)
}

type service struct {
	repo    Repository
	configs ConfigSource
	logger  *zap.Logger
	now     func() time.Time

	// mu serialises read-modify-write in Adjust.
	mu sync.Mutex
}

func NewService(repo Repository, configs ConfigSource, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{repo: repo, configs: configs, logger: logger, now: time.Now}
}

func (s *service) Report(ctx context.Context) ([]Report, error) {
	levels, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock levels: %w", err)
	}
	counted := make(map[string]float64, len(levels))
	for _, l := range levels {
		counted[l.Item] = l.Quantity
	}

	policy := s.configs.Snapshot().Inventory
	out := make([]Report, 0, len(policy))
	for name, p := range policy {
		out = append(out, assess(name, counted[name], p))
	}
	slices.SortFunc(out, func(a, b Report) int { return strings.Compare(a.Item, b.Item) })
	return out, nil
}

func (s *service) Alerts(ctx context.Context) ([]Report, error) {
	all, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(all, func(r Report) bool { return r.Status == StatusOK }), nil
}

func (s *service) Item(ctx context.Context, item string) (*Report, error) {
	p, err := s.policy(item)
	if err != nil {
		return nil, err
	}
	qty, err := s.quantity(ctx, item)
	if err != nil {
		return nil, err
	}
	r := assess(item, qty, p)
	return &r, nil
}

func (s *service) SetLevel(ctx context.Context, item string, quantity float64) (*Report, error) {
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	p, err := s.policy(item)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store(ctx, item, quantity, p)
}

func (s *service) Adjust(ctx context.Context, item string, delta float64) (*Report, error) {
	p, err := s.policy(item)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	qty, err := s.quantity(ctx, item)
	if err != nil {
		return nil, err
	}
	next := qty + delta
	if next < 0 {
		s.logger.Warn("stock adjustment below zero, clamping",
			zap.String("item", item), zap.Float64("on_hand", qty), zap.Float64("delta", delta))
		next = 0
	}
	return s.store(ctx, item, next, p)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (s *service) policy(item string) (config.InventoryItem, error) {
	p, ok := s.configs.Snapshot().Inventory[item]
	if !ok {
		return config.InventoryItem{}, &UnknownItemError{Item: item}
	}
	return p, nil
}

func (s *service) quantity(ctx context.Context, item string) (float64, error) {
	l, err := s.repo.Get(ctx, item)
	if errors.Is(err, ErrLevelNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read stock level: %w", err)
	}
	return l.Quantity, nil
}

func (s *service) store(ctx context.Context, item string, qty float64, p config.InventoryItem) (*Report, error) {
	if err := s.repo.Set(ctx, &Level{Item: item, Quantity: qty, UpdatedAt: s.now().UTC()}); err != nil {
		return nil, fmt.Errorf("failed to save stock level: %w", err)
	}
	r := assess(item, qty, p)
	if r.Status != StatusOK {
		s.logger.Info("stock below minimum",
			zap.String("item", item), zap.String("status", string(r.Status)),
			zap.Float64("on_hand", qty), zap.Float64("minimum", p.Minimum))
	}
	return &r, nil
}

func assess(item string, qty float64, p config.InventoryItem) Report {
	r := Report{
		Item:        item,
		Quantity:    qty,
		Minimum:     p.Minimum,
		Unit:        p.Unit,
		Status:      Assess(qty, p.Minimum),
		ReorderCost: decimal.Zero,
	}
	if r.Status != StatusOK {
		r.Shortfall = max(p.Minimum-qty, 0)
		r.ReorderCost = decimal.NewFromFloat(r.Shortfall).Mul(p.Cost.Decimal())
	}
	return r
}
