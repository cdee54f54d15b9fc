package inventory

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the stock condition of one item relative to its configured minimum.
type Status string

const (
	StatusOK  Status = "ok"
	StatusLow Status = "low"
	StatusOut Status = "out"
)

// Assess classifies a quantity on hand against a reorder minimum. Nothing on
// hand is always out; anything at or under the minimum is low.
func Assess(quantity, minimum float64) Status {
	switch {
	case quantity <= 0:
		return StatusOut
	case quantity <= minimum:
		return StatusLow
	default:
		return StatusOK
	}
}

// Level is the counted quantity of one stock item.
type Level struct {
	Item      string    `json:"item"`
	Quantity  float64   `json:"quantity"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Report joins a level with its reorder policy.
type Report struct {
	Item        string          `json:"item"`
	Quantity    float64         `json:"quantity"`
	Minimum     float64         `json:"minimum"`
	Unit        string          `json:"unit"`
	Status      Status          `json:"status"`
	Shortfall   float64         `json:"shortfall"`
	ReorderCost decimal.Decimal `json:"reorderCost"`
}

// SetLevelRequest replaces the counted quantity.
type SetLevelRequest struct {
	Quantity float64 `json:"quantity"`
}

// AdjustRequest adds Delta (negative to consume) to the counted quantity.
type AdjustRequest struct {
	Delta float64 `json:"delta"`
}

var (
	ErrLevelNotFound    = errors.New("no stock level recorded")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
)

// UnknownItemError reports a stock item with no configured reorder policy.
type UnknownItemError struct {
	Item string
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("unknown inventory item %q", e.Item)
}
