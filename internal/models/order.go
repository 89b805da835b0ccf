package models

// OrderStatus is the closed set of statuses the order API reports.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// KnownStatuses lists every filterable status in display order.
var KnownStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// IsKnownStatus reports whether s is one of the fixed status values.
// Comparison is exact; callers normalize case first.
func IsKnownStatus(s OrderStatus) bool {
	for _, known := range KnownStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// WireItem is the item shape sent to the order API, distinct from the
// cart's internal item shape.
type WireItem struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Color       string  `json:"color"`
	Size        string  `json:"size"`
}

// OrderCreateRequest is the normalized order-creation payload.
// Immutable once built; sent exactly once per submit.
type OrderCreateRequest struct {
	UserID          int64      `json:"userId"`
	TotalAmount     float64    `json:"totalAmount"`
	ShippingAddress string     `json:"shippingAddress"`
	PaymentMethod   string     `json:"paymentMethod"`
	Items           []WireItem `json:"items"`
}

// CreatedOrder is the minimal confirmation the order API returns for a
// successful create.
type CreatedOrder struct {
	ID          int64  `json:"id"`
	OrderNumber string `json:"orderNumber"`
}

// OrderItem is one line of a fetched order after normalization.
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Color    string  `json:"color,omitempty"`
	Size     string  `json:"size,omitempty"`
}

// OrderRecord is the client view of one order, produced by the response
// normalizer. Items and ShippingAddress are always well-formed collections
// regardless of what the server sent.
type OrderRecord struct {
	ID              int64          `json:"id"`
	OrderNumber     string         `json:"orderNumber"`
	Date            string         `json:"date"`
	Status          OrderStatus    `json:"status"`
	Total           float64        `json:"total"`
	Items           []OrderItem    `json:"items"`
	ShippingAddress map[string]any `json:"shippingAddress"`
	PaymentMethod   string         `json:"paymentMethod"`
	CustomerName    string         `json:"customerName,omitempty"`
	CustomerEmail   string         `json:"customerEmail,omitempty"`
}
