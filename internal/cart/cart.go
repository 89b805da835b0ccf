package cart

import (
	"math"
	"sync"

	"github.com/ChathuraSudaraka/WEB2-sub001/internal/models"
)

const (
	freeShippingThreshold = 50.0
	flatShippingRate      = 10.0
	taxRate               = 0.08
)

// Cart is the cart collaborator. It owns the item list and the computed
// totals; no other component mutates cart state.
type Cart struct {
	mu    sync.Mutex
	items []models.CartItem
}

// New creates a cart holding the given items.
func New(items []models.CartItem) *Cart {
	c := &Cart{}
	c.items = append(c.items, items...)
	return c
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// Clear removes every line from the cart. Called only after a successful
// order creation.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Totals computes subtotal, shipping, tax and total. Shipping is free at
// or above the threshold, tax is a flat rate on the subtotal, and every
// amount is rounded to cents.
func (c *Cart) Totals() models.CartTotals {
	c.mu.Lock()
	defer c.mu.Unlock()

	var subtotal float64
	var totalItems int
	for _, item := range c.items {
		subtotal += item.Price * float64(item.Quantity)
		totalItems += item.Quantity
	}

	shipping := flatShippingRate
	if subtotal >= freeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * taxRate

	return models.CartTotals{
		Subtotal:   round2(subtotal),
		Shipping:   round2(shipping),
		Tax:        round2(tax),
		Total:      round2(subtotal + shipping + tax),
		TotalItems: totalItems,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
