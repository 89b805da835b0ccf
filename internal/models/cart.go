package models

// CartItem is one line of the shopper's cart. Owned by the cart
// collaborator; read-only everywhere else.
type CartItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Color    string  `json:"color,omitempty"`
	Size     string  `json:"size,omitempty"`
	Image    string  `json:"image,omitempty"`
}

// CartTotals carries the amounts computed by the cart collaborator.
// The checkout flow never recomputes these.
type CartTotals struct {
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
	TotalItems int     `json:"totalItems"`
}

// ShippingForm holds the checkout shipping fields. All fields except
// OrderNotes are required at submission time.
type ShippingForm struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zipCode"`
	Country    string `json:"country"`
	OrderNotes string `json:"orderNotes,omitempty"`
}

// Profile is the prefill data fetched for an authenticated user.
// The upstream calls the zip field postalCode.
type Profile struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}
