package order

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/georgemunganga/pizza-pos/internal/modules/menu"
	"github.com/georgemunganga/pizza-pos/internal/modules/pricing"
	"github.com/georgemunganga/pizza-pos/internal/money"
)

// Pricer prices lines and totals against the live configuration.
type Pricer interface {
	PriceOf(item menu.Item, toppings []string) (money.Amount, error)
	Totals(lines []pricing.Line) pricing.Totals
	MaxOrderItems() int
}

// IDGenerator issues order ids. *snowflake.Node satisfies it.
type IDGenerator interface {
	Generate() snowflake.ID
}

// State is the ledger lifecycle: Empty -> Building -> Completed. Removing the
// last line returns a Building ledger to Empty.
type State int

const (
	StateEmpty State = iota
	StateBuilding
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateBuilding:
		return "building"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

var validate = validator.New()

// Ledger is the in-progress order for one terminal. Once completed it rejects
// every mutation; the caller starts a new ledger for the next order.
type Ledger struct {
	mu     sync.Mutex
	pricer Pricer
	ids    IDGenerator
	lines  []Line
	state  State

	ticket func() string
	now    func() time.Time
}

func NewLedger(pricer Pricer, ids IDGenerator) *Ledger {
	return &Ledger{
		pricer: pricer,
		ids:    ids,
		ticket: randomTicket,
		now:    time.Now,
	}
}

// randomTicket draws a display ticket in [1000, 9999). Collisions are allowed;
// the order id is the unique key.
func randomTicket() string {
	return strconv.Itoa(rand.IntN(8999) + 1000)
}

// AddItem adds one unit of item. An equivalent line (same item and same
// topping set, in any order) is incremented and its id returned; otherwise a
// new line is priced now and keeps that price. Toppings on a fixed item are
// ignored.
func (l *Ledger) AddItem(item menu.Item, toppings []string) (uuid.UUID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == StateCompleted {
		return uuid.Nil, ErrOrderAlreadyCompleted
	}
	if !item.Customizable {
		toppings = nil
	} else {
		toppings = toppingSet(toppings)
	}
	if limit := l.pricer.MaxOrderItems(); l.count()+1 > limit {
		return uuid.Nil, &TooManyItemsError{Limit: limit}
	}

	for i := range l.lines {
		if l.lines[i].ItemID == item.ID && sameToppings(l.lines[i].Toppings, toppings) {
			l.lines[i].Quantity++
			return l.lines[i].LineID, nil
		}
	}

	price, err := l.pricer.PriceOf(item, toppings)
	if err != nil {
		return uuid.Nil, fmt.Errorf("cannot price %s: %w", item.ID, err)
	}
	line := Line{
		LineID:    uuid.New(),
		ItemID:    item.ID,
		Name:      item.Name,
		Quantity:  1,
		Toppings:  toppings,
		UnitPrice: price,
	}
	l.lines = append(l.lines, line)
	l.state = StateBuilding
	return line.LineID, nil
}

// UpdateQuantity adds delta to a line, clamping at zero. A line reaching zero
// is removed. An unknown line id is ignored.
func (l *Ledger) UpdateQuantity(lineID uuid.UUID, delta int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == StateCompleted {
		return ErrOrderAlreadyCompleted
	}
	i := l.indexOf(lineID)
	if i < 0 {
		return nil
	}
	if delta > 0 {
		if limit := l.pricer.MaxOrderItems(); l.count()+delta > limit {
			return &TooManyItemsError{Limit: limit}
		}
	}
	l.lines[i].Quantity = max(0, l.lines[i].Quantity+delta)
	if l.lines[i].Quantity == 0 {
		l.removeAt(i)
	}
	return nil
}

// RemoveLine drops a line. An unknown line id is ignored.
func (l *Ledger) RemoveLine(lineID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == StateCompleted {
		return ErrOrderAlreadyCompleted
	}
	if i := l.indexOf(lineID); i >= 0 {
		l.removeAt(i)
	}
	return nil
}

// Lines returns a copy of the current lines.
func (l *Ledger) Lines() []Line {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

// Totals recomputes the order totals on every call.
func (l *Ledger) Totals() pricing.Totals {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pricer.Totals(pricingLines(l.lines))
}

func (l *Ledger) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Complete freezes the ledger into a CompletedOrder.
func (l *Ledger) Complete(customer CustomerInfo) (*CompletedOrder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == StateCompleted {
		return nil, ErrOrderAlreadyCompleted
	}
	if len(l.lines) == 0 {
		return nil, ErrEmptyOrder
	}
	if err := validate.Struct(customer); err != nil {
		return nil, ErrMissingCustomerInfo
	}

	lines := l.snapshot()
	o := &CompletedOrder{
		ID:           l.ids.Generate(),
		TicketNumber: l.ticket(),
		Customer:     customer,
		Lines:        lines,
		Totals:       l.pricer.Totals(pricingLines(lines)),
		CreatedAt:    l.now().UTC(),
		Status:       StatusPending,
	}
	l.state = StateCompleted
	return o, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (l *Ledger) snapshot() []Line {
	out := make([]Line, len(l.lines))
	for i, line := range l.lines {
		out[i] = line.clone()
	}
	return out
}

func (l *Ledger) count() int {
	n := 0
	for _, line := range l.lines {
		n += line.Quantity
	}
	return n
}

func (l *Ledger) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(l.lines, func(line Line) bool { return line.LineID == id })
}

func (l *Ledger) removeAt(i int) {
	l.lines = slices.Delete(l.lines, i, i+1)
	if len(l.lines) == 0 {
		l.state = StateEmpty
	}
}

// toppingSet drops repeated toppings, keeping first-chosen order.
func toppingSet(toppings []string) []string {
	if len(toppings) == 0 {
		return nil
	}
	out := make([]string, 0, len(toppings))
	for _, t := range toppings {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func sameToppings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := slices.Clone(a), slices.Clone(b)
	slices.Sort(as)
	slices.Sort(bs)
	return slices.Equal(as, bs)
}
