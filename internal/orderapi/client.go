package orderapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ChathuraSudaraka/WEB2-sub001/internal/models"
)

// APIError is a failure reported by the order API itself: a response that
// arrived and parsed, but carried success=false or a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("order api returned status %d", e.StatusCode)
}

// Client talks to the remote order API. Requests are form-encoded,
// responses are JSON wrapped in a success envelope. The client performs
// no retries; each call is issued exactly once.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the order API at baseURL. A zero timeout
// means no client-side timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// envelope is the success wrapper every order API response carries.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// CreateOrder submits an order-creation request. Repeated calls with an
// identical payload create distinct orders; callers guard against
// re-submission while a call is in flight.
func (c *Client) CreateOrder(ctx context.Context, req models.OrderCreateRequest) (*models.CreatedOrder, error) {
	items, err := json.Marshal(req.Items)
	if err != nil {
		return nil, fmt.Errorf("encoding order items: %w", err)
	}

	form := url.Values{}
	form.Set("userId", strconv.FormatInt(req.UserID, 10))
	form.Set("totalAmount", strconv.FormatFloat(req.TotalAmount, 'f', 2, 64))
	form.Set("shippingAddress", req.ShippingAddress)
	form.Set("paymentMethod", req.PaymentMethod)
	form.Set("items", string(items))

	data, err := c.do(ctx, http.MethodPost, "/orders", form)
	if err != nil {
		return nil, err
	}

	var created models.CreatedOrder
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, fmt.Errorf("decoding created order: %w", err)
	}
	return &created, nil
}

// ListAllOrders fetches every order. Administrative scope; the API
// defines no pagination, so the full set comes back in one response.
func (c *Client) ListAllOrders(ctx context.Context) ([]RawOrder, error) {
	return c.listOrders(ctx, "/orders")
}

// ListUserOrders fetches the orders belonging to one user. A user with no
// orders yields an empty slice, not an error.
func (c *Client) ListUserOrders(ctx context.Context, userID int64) ([]RawOrder, error) {
	return c.listOrders(ctx, "/orders/user/"+strconv.FormatInt(userID, 10))
}

func (c *Client) listOrders(ctx context.Context, path string) ([]RawOrder, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var orders []RawOrder
	if len(data) > 0 {
		if err := json.Unmarshal(data, &orders); err != nil {
			return nil, fmt.Errorf("decoding order list: %w", err)
		}
	}
	if orders == nil {
		orders = []RawOrder{}
	}
	return orders, nil
}

// GetOrder fetches a single order by ID.
func (c *Client) GetOrder(ctx context.Context, orderID int64) (*RawOrder, error) {
	data, err := c.do(ctx, http.MethodGet, "/orders/"+strconv.FormatInt(orderID, 10), nil)
	if err != nil {
		return nil, err
	}

	var order RawOrder
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("decoding order: %w", err)
	}
	return &order, nil
}

// ErrInvalidStatus rejects status values outside the closed set before a
// request is issued. The server stays authoritative on whether the
// transition itself is legal.
var ErrInvalidStatus = fmt.Errorf("status is not a recognized order status")

// UpdateOrderStatus asks the API to move an order to the given status.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	if !models.IsKnownStatus(status) {
		return ErrInvalidStatus
	}

	form := url.Values{}
	form.Set("status", string(status))

	_, err := c.do(ctx, http.MethodPut, "/orders/"+strconv.FormatInt(orderID, 10)+"/status", form)
	return err
}

// FetchProfile fetches the shipping prefill data for a user.
func (c *Client) FetchProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	data, err := c.do(ctx, http.MethodGet, "/user-profile/"+strconv.FormatInt(userID, 10), nil)
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return &profile, nil
}

// do issues one request and unwraps the success envelope. Network
// failures, non-2xx statuses, malformed bodies and success=false all come
// back as errors; nothing is retried.
func (c *Client) do(ctx context.Context, method, path string, form url.Values) (json.RawMessage, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling order api: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading order api response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &APIError{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("decoding order api response: %w", err)
	}

	if !env.Success || resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	return env.Data, nil
}
