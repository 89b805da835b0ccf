package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/ChathuraSudaraka/WEB2-sub001/internal/models"
	"github.com/ChathuraSudaraka/WEB2-sub001/internal/orderapi"
	"github.com/ChathuraSudaraka/WEB2-sub001/internal/orders"
	"github.com/go-chi/chi/v5"
)

// OrderAPI is the slice of the upstream client the order views need.
type OrderAPI interface {
	ListAllOrders(ctx context.Context) ([]orderapi.RawOrder, error)
	ListUserOrders(ctx context.Context, userID int64) ([]orderapi.RawOrder, error)
	GetOrder(ctx context.Context, orderID int64) (*orderapi.RawOrder, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error
}

// OrderHandler serves the order-history views backed by the upstream
// order API.
type OrderHandler struct {
	client     OrderAPI
	normalizer *orderapi.Normalizer
	log        *slog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(client OrderAPI, normalizer *orderapi.Normalizer, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		client:     client,
		normalizer: normalizer,
		log:        log,
	}
}

// OrderListResponse is the order-history view for one user.
type OrderListResponse struct {
	Orders []models.OrderRecord       `json:"orders"`
	Counts map[models.OrderStatus]int `json:"counts"`
	Filter string                     `json:"filter"`
}

// AdminOrderListResponse is the administrative listing with its
// dashboard roll-up.
type AdminOrderListResponse struct {
	Orders  []models.OrderRecord `json:"orders"`
	Summary orders.Summary       `json:"summary"`
}

// ListAllOrders handles GET /api/orders (admin). No pagination: the
// upstream returns the full set and so does this view.
func (h *OrderHandler) ListAllOrders(w http.ResponseWriter, r *http.Request) {
	raws, err := h.client.ListAllOrders(r.Context())
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	records := h.normalizer.NormalizeOrders(raws)
	WriteJSON(w, http.StatusOK, AdminOrderListResponse{
		Orders:  records,
		Summary: orders.Summarize(records),
	}, h.log)
}

// ListUserOrders handles GET /api/orders/user/{userID}. An optional
// status query filters the view; counts always cover the full listing.
func (h *OrderHandler) ListUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid user ID", h.log)
		return
	}

	raws, err := h.client.ListUserOrders(r.Context(), userID)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	filter := strings.TrimSpace(r.URL.Query().Get("status"))
	if filter == "" {
		filter = orders.FilterAll
	}

	records := h.normalizer.NormalizeOrders(raws)
	WriteJSON(w, http.StatusOK, OrderListResponse{
		Orders: orders.FilterOrders(records, filter),
		Counts: orders.CountByStatus(records),
		Filter: strings.ToLower(filter),
	}, h.log)
}

// GetOrder handles GET /api/orders/{orderID}.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid order ID", h.log)
		return
	}

	raw, err := h.client.GetOrder(r.Context(), orderID)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, h.normalizer.NormalizeOrder(*raw), h.log)
}

// UpdateStatusRequest carries the target status for an order.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PUT /api/orders/{orderID}/status (admin).
// The status must belong to the closed set; the upstream decides whether
// the transition is legal.
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid order ID", h.log)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	status := models.OrderStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if err := h.client.UpdateOrderStatus(r.Context(), orderID, status); err != nil {
		if errors.Is(err, orderapi.ErrInvalidStatus) {
			WriteError(w, http.StatusBadRequest, "Invalid order status", h.log)
			return
		}
		h.writeUpstreamError(w, err)
		return
	}

	h.log.Info("order status updated", "order_id", orderID, "status", status)
	WriteJSON(w, http.StatusOK, map[string]any{"id": orderID, "status": status}, h.log)
}

// writeUpstreamError converts an order API failure into a gateway error,
// passing along the server-reported message when there is one.
func (h *OrderHandler) writeUpstreamError(w http.ResponseWriter, err error) {
	h.log.Error("order api request failed", "error", err)

	var apiErr *orderapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		WriteError(w, http.StatusBadGateway, apiErr.Message, h.log)
		return
	}
	WriteError(w, http.StatusBadGateway, "Order service is unavailable", h.log)
}
