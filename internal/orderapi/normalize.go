package orderapi

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ChathuraSudaraka/WEB2-sub001/internal/models"
)

// RawOrder is one order object as the API sends it. The server embeds
// items and shippingAddress as JSON text inside string fields, and
// totalAmount may arrive as a number or a string.
type RawOrder struct {
	ID              int64           `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	Status          string          `json:"status"`
	TotalAmount     json.RawMessage `json:"totalAmount"`
	Items           string          `json:"items"`
	ShippingAddress string          `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	CreatedAt       string          `json:"createdAt"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
}

// Normalizer converts raw API orders into well-formed client records.
// The zero value uses the real clock; tests inject Now.
type Normalizer struct {
	Now func() time.Time
	Log *slog.Logger
}

// NormalizeOrder reshapes one raw order. It never fails: malformed
// embedded JSON degrades to an empty collection, an unparseable total to
// zero, a missing status to pending, and a missing timestamp to today.
func (n *Normalizer) NormalizeOrder(raw RawOrder) models.OrderRecord {
	return models.OrderRecord{
		ID:              raw.ID,
		OrderNumber:     raw.OrderNumber,
		Date:            n.deriveDate(raw.CreatedAt),
		Status:          normalizeStatus(raw.Status),
		Total:           n.parseTotal(raw.TotalAmount),
		Items:           n.parseItems(raw.Items),
		ShippingAddress: n.parseAddress(raw.ShippingAddress),
		PaymentMethod:   raw.PaymentMethod,
		CustomerName:    raw.CustomerName,
		CustomerEmail:   raw.CustomerEmail,
	}
}

// NormalizeOrders reshapes a whole listing, preserving order.
func (n *Normalizer) NormalizeOrders(raws []RawOrder) []models.OrderRecord {
	records := make([]models.OrderRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, n.NormalizeOrder(raw))
	}
	return records
}

// normalizeStatus lower-cases the server status and defaults to pending
// when absent. Unrecognized values pass through so they stay renderable;
// they simply fall outside the filterable set.
func normalizeStatus(s string) models.OrderStatus {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return models.StatusPending
	}
	return models.OrderStatus(s)
}

func (n *Normalizer) parseTotal(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			return v
		}
	}

	n.logger().Warn("unparseable order total, defaulting to 0", "raw", string(raw))
	return 0
}

func (n *Normalizer) parseItems(s string) []models.OrderItem {
	items := []models.OrderItem{}
	if s == "" {
		return items
	}
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		n.logger().Warn("malformed order items field", "error", err)
		return []models.OrderItem{}
	}
	if items == nil {
		items = []models.OrderItem{}
	}
	return items
}

func (n *Normalizer) parseAddress(s string) map[string]any {
	addr := map[string]any{}
	if s == "" {
		return addr
	}
	if err := json.Unmarshal([]byte(s), &addr); err != nil {
		n.logger().Warn("malformed shipping address field", "error", err)
		return map[string]any{}
	}
	return addr
}

// deriveDate keeps the date portion of the server timestamp, falling back
// to the current date when none is present.
func (n *Normalizer) deriveDate(createdAt string) string {
	createdAt = strings.TrimSpace(createdAt)
	if createdAt != "" {
		if len(createdAt) >= 10 {
			if _, err := time.Parse("2006-01-02", createdAt[:10]); err == nil {
				return createdAt[:10]
			}
		}
		return createdAt
	}

	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	return now().Format("2006-01-02")
}

func (n *Normalizer) logger() *slog.Logger {
	if n.Log != nil {
		return n.Log
	}
	return slog.Default()
}
