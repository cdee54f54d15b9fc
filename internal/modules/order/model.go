package order

import (
	"slices"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"

	"github.com/georgemunganga/pizza-pos/internal/modules/pricing"
	"github.com/georgemunganga/pizza-pos/internal/money"
)

// OrderStatus is the kitchen lifecycle state of a completed order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// CustomerInfo identifies who the order is for. Name and phone are required.
type CustomerInfo struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Line is one entry of an order. UnitPrice is fixed when the line is created.
type Line struct {
	LineID    uuid.UUID    `json:"lineId"`
	ItemID    string       `json:"catalogItemId"`
	Name      string       `json:"name"`
	Quantity  int          `json:"quantity"`
	Toppings  []string     `json:"chosenToppings,omitempty"`
	UnitPrice money.Amount `json:"unitPrice"`
}

func (l Line) clone() Line {
	l.Toppings = slices.Clone(l.Toppings)
	return l
}

// CompletedOrder is the immutable record emitted when a ledger completes.
type CompletedOrder struct {
	ID           snowflake.ID   `json:"orderId"`
	TicketNumber string         `json:"ticketNumber"`
	Customer     CustomerInfo   `json:"customerInfo"`
	Lines        []Line         `json:"lines"`
	Totals       pricing.Totals `json:"totals"`
	CreatedAt    time.Time      `json:"timestamp"`
	Status       OrderStatus    `json:"status"`
}

// ItemCount is the total quantity across lines.
func (o *CompletedOrder) ItemCount() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}

// KitchenTicket is the summary shown on the kitchen display.
type KitchenTicket struct {
	OrderID      snowflake.ID `json:"orderId"`
	TicketNumber string       `json:"ticketNumber"`
	Items        []string     `json:"items"`
	Station      string       `json:"station"`
	Status       OrderStatus  `json:"status"`
	OrderedAt    time.Time    `json:"orderedAt"`
}

// UpdateStatusRequest is the payload for advancing an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func pricingLines(lines []Line) []pricing.Line {
	out := make([]pricing.Line, len(lines))
	for i, l := range lines {
		out[i] = pricing.Line{UnitPrice: l.UnitPrice, Quantity: l.Quantity}
	}
	return out
}
