package cart

import (
	"testing"

	"github.com/ChathuraSudaraka/WEB2-sub001/internal/models"
)

func TestCartTotals(t *testing.T) {
	tests := []struct {
		name  string
		items []models.CartItem
		want  models.CartTotals
	}{
		{
			name: "below free shipping threshold",
			items: []models.CartItem{
				{ID: 1, Name: "Widget", Price: 10, Quantity: 2},
			},
			want: models.CartTotals{Subtotal: 20, Shipping: 10, Tax: 1.6, Total: 31.6, TotalItems: 2},
		},
		{
			name: "at the free shipping threshold",
			items: []models.CartItem{
				{ID: 1, Name: "Widget", Price: 25, Quantity: 2},
			},
			want: models.CartTotals{Subtotal: 50, Shipping: 0, Tax: 4, Total: 54, TotalItems: 2},
		},
		{
			name: "amounts round to cents",
			items: []models.CartItem{
				{ID: 1, Name: "Mug", Price: 8.99, Quantity: 3},
			},
			want: models.CartTotals{Subtotal: 26.97, Shipping: 10, Tax: 2.16, Total: 39.13, TotalItems: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.items).Totals()
			if got != tt.want {
				t.Errorf("Totals() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCartClear(t *testing.T) {
	c := New([]models.CartItem{{ID: 1, Name: "Widget", Price: 10, Quantity: 1}})

	if c.IsEmpty() {
		t.Fatal("cart should not start empty")
	}
	c.Clear()
	if !c.IsEmpty() {
		t.Error("cart not empty after Clear")
	}
	if got := c.Totals(); got.Subtotal != 0 || got.TotalItems != 0 {
		t.Errorf("totals after clear = %+v", got)
	}
}

func TestCartItemsReturnsCopy(t *testing.T) {
	c := New([]models.CartItem{{ID: 1, Name: "Widget", Price: 10, Quantity: 1}})

	items := c.Items()
	items[0].Quantity = 99

	if got := c.Items()[0].Quantity; got != 1 {
		t.Errorf("cart line mutated through returned slice: quantity = %d", got)
	}
}
