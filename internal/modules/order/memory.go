package order

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/bwmarrin/snowflake"
)

type memoryRepo struct {
	mu     sync.RWMutex
	orders map[snowflake.ID]*CompletedOrder
}

// NewMemoryRepository keeps completed orders for the life of the process.
func NewMemoryRepository() Repository {
	return &memoryRepo{orders: make(map[snowflake.ID]*CompletedOrder)}
}

func (r *memoryRepo) Create(ctx context.Context, o *CompletedOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id snowflake.ID) (*CompletedOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return copyOrder(o), nil
}

func (r *memoryRepo) ListByPhone(ctx context.Context, phone string) ([]*CompletedOrder, error) {
	return r.filter(func(o *CompletedOrder) bool { return o.Customer.Phone == phone }), nil
}

func (r *memoryRepo) ListByStatus(ctx context.Context, statuses ...OrderStatus) ([]*CompletedOrder, error) {
	return r.filter(func(o *CompletedOrder) bool {
		return len(statuses) == 0 || slices.Contains(statuses, o.Status)
	}), nil
}

func (r *memoryRepo) UpdateStatus(ctx context.Context, id snowflake.ID, status OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (r *memoryRepo) SearchCustomers(ctx context.Context, q string) ([]*Customer, error) {
	var out []*Customer
	for _, c := range directory(r.filter(func(*CompletedOrder) bool { return true })) {
		if c.Matches(q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryRepo) GetCustomer(ctx context.Context, phone string) (*Customer, error) {
	customers := directory(r.filter(func(o *CompletedOrder) bool { return o.Customer.Phone == phone }))
	if len(customers) == 0 {
		return nil, ErrCustomerNotFound
	}
	return customers[0], nil
}

func (r *memoryRepo) filter(keep func(*CompletedOrder) bool) []*CompletedOrder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*CompletedOrder
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, copyOrder(o))
		}
	}
	// Snowflake ids grow with time, so descending id is newest first.
	slices.SortFunc(out, func(a, b *CompletedOrder) int { return cmp.Compare(b.ID, a.ID) })
	return out
}

func copyOrder(o *CompletedOrder) *CompletedOrder {
	c := *o
	c.Lines = make([]Line, len(o.Lines))
	for i, l := range o.Lines {
		c.Lines[i] = l.clone()
	}
	return &c
}
