package order

import (
	"slices"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Customer is a directory entry built from the completed orders placed under
// one phone number. Name is taken from the most recent order; cancelled
// orders count towards neither OrderCount nor TotalSpent.
type Customer struct {
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	Addresses   []string        `json:"addresses"`
	OrderCount  int             `json:"orderCount"`
	TotalSpent  decimal.Decimal `json:"totalSpent"`
	LastOrderID snowflake.ID    `json:"lastOrderId"`
	LastOrderAt time.Time       `json:"lastOrderAt"`
}

// Matches reports whether q is part of the customer's name (ignoring case) or
// phone number. An empty q matches everyone.
func (c *Customer) Matches(q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(c.Phone, q) ||
		strings.Contains(strings.ToLower(c.Name), strings.ToLower(q))
}

// directory folds orders, newest first, into customers ordered by their
// latest order.
func directory(orders []*CompletedOrder) []*Customer {
	var (
		out     []*Customer
		byPhone = make(map[string]*Customer)
	)
	for _, o := range orders {
		c, ok := byPhone[o.Customer.Phone]
		if !ok {
			c = &Customer{
				Name:        o.Customer.Name,
				Phone:       o.Customer.Phone,
				Addresses:   []string{},
				TotalSpent:  decimal.Zero,
				LastOrderID: o.ID,
				LastOrderAt: o.CreatedAt,
			}
			byPhone[c.Phone] = c
			out = append(out, c)
		}
		c.Addresses = addAddress(c.Addresses, o.Customer.Address)
		if o.Status == StatusCancelled {
			continue
		}
		c.OrderCount++
		c.TotalSpent = c.TotalSpent.Add(o.Totals.Total)
	}
	return out
}

func addAddress(list []string, addr string) []string {
	addr = strings.TrimSpace(addr)
	if addr == "" || slices.Contains(list, addr) {
		return list
	}
	return append(list, addr)
}
