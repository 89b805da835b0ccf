package orderapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ChathuraSudaraka/WEB2-sub001/internal/models"
)

func TestClientCreateOrder(t *testing.T) {
	var gotForm map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotForm = map[string]string{
			"userId":          r.PostForm.Get("userId"),
			"totalAmount":     r.PostForm.Get("totalAmount"),
			"shippingAddress": r.PostForm.Get("shippingAddress"),
			"paymentMethod":   r.PostForm.Get("paymentMethod"),
			"items":           r.PostForm.Get("items"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"id":42,"orderNumber":"ORD-2024-042"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	req := models.OrderCreateRequest{
		UserID:          7,
		TotalAmount:     31.6,
		ShippingAddress: "Jane Doe, 1 Main St, Springfield, IL 62701, United States",
		PaymentMethod:   "STRIPE",
		Items: []models.WireItem{
			{ProductID: 1, ProductName: "Widget", Quantity: 2, Price: 10, Color: "Default", Size: "M"},
		},
	}

	created, err := client.CreateOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if created.ID != 42 || created.OrderNumber != "ORD-2024-042" {
		t.Errorf("created = %+v", created)
	}

	if gotForm["userId"] != "7" {
		t.Errorf("userId = %q, want 7", gotForm["userId"])
	}
	if gotForm["totalAmount"] != "31.60" {
		t.Errorf("totalAmount = %q, want 31.60", gotForm["totalAmount"])
	}
	if gotForm["paymentMethod"] != "STRIPE" {
		t.Errorf("paymentMethod = %q", gotForm["paymentMethod"])
	}

	// Items travel as a JSON-encoded string inside the form body.
	var items []models.WireItem
	if err := json.Unmarshal([]byte(gotForm["items"]), &items); err != nil {
		t.Fatalf("items field is not JSON: %v", err)
	}
	if len(items) != 1 || items[0] != req.Items[0] {
		t.Errorf("wire items = %+v", items)
	}
}

func TestClientCreateOrderServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"error":"Out of stock"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.CreateOrder(context.Background(), models.OrderCreateRequest{UserID: 1})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.Message != "Out of stock" {
		t.Errorf("message = %q, want Out of stock", apiErr.Message)
	}
}

func TestClientNon2xxResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.ListAllOrders(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", apiErr.StatusCode)
	}
}

func TestClientMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	if _, err := client.ListAllOrders(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestClientNetworkUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	client := NewClient(server.URL, time.Second)
	if _, err := client.ListAllOrders(context.Background()); err == nil {
		t.Fatal("expected network error")
	}
}

func TestClientListUserOrders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/user/7" {
			t.Errorf("path = %q, want /orders/user/7", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[{"id":1,"orderNumber":"ORD-1","status":"PENDING"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	raws, err := client.ListUserOrders(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListUserOrders() error = %v", err)
	}
	if len(raws) != 1 || raws[0].OrderNumber != "ORD-1" {
		t.Errorf("raws = %+v", raws)
	}
}

func TestClientListUserOrdersEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	raws, err := client.ListUserOrders(context.Background(), 9)
	if err != nil {
		t.Fatalf("empty listing must not be an error, got %v", err)
	}
	if raws == nil || len(raws) != 0 {
		t.Errorf("raws = %#v, want empty slice", raws)
	}
}

func TestClientGetOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/42" {
			t.Errorf("path = %q, want /orders/42", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"id":42,"orderNumber":"ORD-42","totalAmount":"42.5"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	raw, err := client.GetOrder(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetOrder() error = %v", err)
	}
	if raw.ID != 42 || raw.OrderNumber != "ORD-42" {
		t.Errorf("raw = %+v", raw)
	}
}

func TestClientUpdateOrderStatus(t *testing.T) {
	var gotStatus string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/orders/5/status" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotStatus = r.PostForm.Get("status")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	if err := client.UpdateOrderStatus(context.Background(), 5, models.StatusShipped); err != nil {
		t.Fatalf("UpdateOrderStatus() error = %v", err)
	}
	if gotStatus != "shipped" {
		t.Errorf("status = %q, want shipped", gotStatus)
	}
}

func TestClientUpdateOrderStatusInvalid(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	err := client.UpdateOrderStatus(context.Background(), 5, "refunded")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("error = %v, want ErrInvalidStatus", err)
	}
	if called {
		t.Error("invalid status must be rejected before any request is issued")
	}
}

func TestClientFetchProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user-profile/7" {
			t.Errorf("path = %q, want /user-profile/7", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"firstName":"Jane","postalCode":"62701"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	profile, err := client.FetchProfile(context.Background(), 7)
	if err != nil {
		t.Fatalf("FetchProfile() error = %v", err)
	}
	if profile.FirstName != "Jane" || profile.PostalCode != "62701" {
		t.Errorf("profile = %+v", profile)
	}
}
