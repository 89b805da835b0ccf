package checkout

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/ChathuraSudaraka/WEB2-sub001/internal/auth"
	"github.com/ChathuraSudaraka/WEB2-sub001/internal/cart"
	"github.com/ChathuraSudaraka/WEB2-sub001/internal/models"
)

// Step is the wizard's current position in the checkout flow.
type Step string

const (
	StepShipping   Step = "shipping"
	StepReview     Step = "review"
	StepSubmitting Step = "submitting"
	StepCompleted  Step = "completed"
)

var (
	ErrNotAuthenticated = errors.New("checkout requires an authenticated user")
	ErrNotInReview      = errors.New("submit is only allowed from the review step")
	ErrSubmitInFlight   = errors.New("an order submission is already in flight")
	ErrCompleted        = errors.New("checkout session already completed")
	ErrUnknownField     = errors.New("unknown shipping field")
)

// OrderCreator is the slice of the order API client the wizard needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req models.OrderCreateRequest) (*models.CreatedOrder, error)
}

// Notifier is the toast sink shown to the shopper.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Navigator receives route changes with an optional state payload.
type Navigator interface {
	NavigateTo(route string, state any)
}

// OrderSummary is handed to the navigation sink after a successful
// submit, mirroring what the confirmation page renders.
type OrderSummary struct {
	ID          int64               `json:"id"`
	OrderNumber string              `json:"orderNumber"`
	Total       float64             `json:"total"`
	Items       []models.CartItem   `json:"items"`
	Shipping    models.ShippingForm `json:"shipping"`
}

// Wizard drives the two-step checkout flow: Shipping -> Review ->
// (submit) -> Submitting -> Completed, or back to Review on failure.
// A boolean in-flight guard is the only mutual exclusion: while a create
// call is running, further submits are no-ops.
type Wizard struct {
	mu         sync.Mutex
	step       Step
	submitting bool
	form       models.ShippingForm
	dirty      map[string]bool

	user   auth.UserContext
	cart   *cart.Cart
	orders OrderCreator
	notify Notifier
	nav    Navigator
	log    *slog.Logger
}

// NewWizard starts a checkout for the given user and cart. Missing
// preconditions redirect (login for anonymous users, the product listing
// for an empty cart) without surfacing a user-facing error.
func NewWizard(user auth.UserContext, c *cart.Cart, orders OrderCreator, notify Notifier, nav Navigator, log *slog.Logger) (*Wizard, error) {
	if !user.Authenticated || user.UserID == 0 {
		nav.NavigateTo("/login", map[string]string{"from": "/checkout"})
		return nil, ErrNotAuthenticated
	}
	if c.IsEmpty() {
		nav.NavigateTo("/products", nil)
		return nil, ErrEmptyCart
	}

	return &Wizard{
		step:  StepShipping,
		form:  models.ShippingForm{Country: "United States"},
		dirty: make(map[string]bool),

		user:   user,
		cart:   c,
		orders: orders,
		notify: notify,
		nav:    nav,
		log:    log,
	}, nil
}

// Step returns the wizard's current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submitting {
		return StepSubmitting
	}
	return w.step
}

// Items returns the cart lines, read through the cart collaborator.
func (w *Wizard) Items() []models.CartItem {
	return w.cart.Items()
}

// Totals returns the cart-computed amounts.
func (w *Wizard) Totals() models.CartTotals {
	return w.cart.Totals()
}

// Form returns the current shipping form values.
func (w *Wizard) Form() models.ShippingForm {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

// SetField records one user edit to the shipping form and marks the
// field dirty so a late profile fetch cannot overwrite it.
func (w *Wizard) SetField(name, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch name {
	case "firstName":
		w.form.FirstName = value
	case "lastName":
		w.form.LastName = value
	case "email":
		w.form.Email = value
	case "phone":
		w.form.Phone = value
	case "address":
		w.form.Address = value
	case "city":
		w.form.City = value
	case "state":
		w.form.State = value
	case "zipCode":
		w.form.ZipCode = value
	case "country":
		w.form.Country = value
	case "orderNotes":
		w.form.OrderNotes = value
	default:
		return ErrUnknownField
	}
	w.dirty[name] = true
	return nil
}

// ApplyProfile prefills the shipping form from fetched profile data.
// Only fields the user has not touched are filled; empty profile values
// never erase anything.
func (w *Wizard) ApplyProfile(p models.Profile) {
	w.mu.Lock()
	defer w.mu.Unlock()

	set := func(name, value string, dst *string) {
		if value != "" && !w.dirty[name] {
			*dst = value
		}
	}
	set("firstName", p.FirstName, &w.form.FirstName)
	set("lastName", p.LastName, &w.form.LastName)
	set("email", p.Email, &w.form.Email)
	set("phone", p.Phone, &w.form.Phone)
	set("address", p.Address, &w.form.Address)
	set("city", p.City, &w.form.City)
	set("zipCode", p.PostalCode, &w.form.ZipCode)
	set("country", p.Country, &w.form.Country)
}

// Next advances Shipping -> Review. Required-field enforcement is the
// form layer's job; the transition itself is unconditional.
func (w *Wizard) Next() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepShipping {
		w.step = StepReview
	}
}

// Back returns Review -> Shipping.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepReview && !w.submitting {
		w.step = StepShipping
	}
}

// Submit issues the order-create call. While a call is in flight any
// further Submit returns ErrSubmitInFlight without touching the network.
// On success the cart is cleared and the summary handed to navigation;
// on failure the wizard returns to Review and the error is surfaced as a
// notification.
func (w *Wizard) Submit(ctx context.Context) (*OrderSummary, error) {
	w.mu.Lock()
	if w.step == StepCompleted {
		w.mu.Unlock()
		return nil, ErrCompleted
	}
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if w.step != StepReview {
		w.mu.Unlock()
		return nil, ErrNotInReview
	}
	w.submitting = true
	form := w.form
	w.mu.Unlock()

	items := w.cart.Items()
	totals := w.cart.Totals()

	req, err := BuildOrderRequest(items, form, w.user.UserID, totals.Total)
	if err != nil {
		w.failSubmit(err)
		return nil, err
	}

	w.notify.Success("Processing your order...")

	created, err := w.orders.CreateOrder(ctx, req)
	if err != nil {
		w.log.Error("order creation failed", "user_id", w.user.UserID, "error", err)
		w.failSubmit(err)
		return nil, err
	}

	// Only the cart collaborator mutates cart state.
	w.cart.Clear()

	w.mu.Lock()
	w.submitting = false
	w.step = StepCompleted
	w.mu.Unlock()

	summary := &OrderSummary{
		ID:          created.ID,
		OrderNumber: created.OrderNumber,
		Total:       totals.Total,
		Items:       items,
		Shipping:    form,
	}

	w.notify.Success("Order placed successfully!")
	w.nav.NavigateTo("/payment-success", summary)

	w.log.Info("order placed", "user_id", w.user.UserID, "order_number", created.OrderNumber, "total", totals.Total)
	return summary, nil
}

// failSubmit clears the in-flight flag, returns to Review and surfaces
// the error. The cart is left untouched.
func (w *Wizard) failSubmit(err error) {
	w.mu.Lock()
	w.submitting = false
	w.step = StepReview
	w.mu.Unlock()

	msg := err.Error()
	if msg == "" {
		msg = "Failed to process order. Please try again."
	}
	w.notify.Error(msg)
}
