package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ChathuraSudaraka/WEB2-sub001/internal/auth"
	"github.com/ChathuraSudaraka/WEB2-sub001/internal/checkout"
	"github.com/ChathuraSudaraka/WEB2-sub001/internal/models"
	"github.com/ChathuraSudaraka/WEB2-sub001/internal/notify"
	"github.com/ChathuraSudaraka/WEB2-sub001/internal/repository"
	"github.com/go-chi/chi/v5"
)

// CheckoutHandler exposes the checkout wizard over HTTP.
type CheckoutHandler struct {
	sessions *checkout.Manager
	log      *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(sessions *checkout.Manager, log *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		sessions: sessions,
		log:      log,
	}
}

// StartCheckoutRequest opens a checkout session for a shopper's cart.
type StartCheckoutRequest struct {
	UserID int64             `json:"userId"`
	Items  []models.CartItem `json:"items"`
}

// CheckoutState is the wizard state returned after every checkout call.
type CheckoutState struct {
	SessionID string              `json:"sessionId"`
	Step      checkout.Step       `json:"step"`
	Form      models.ShippingForm `json:"form"`
	Totals    models.CartTotals   `json:"totals"`
	Items     []models.CartItem   `json:"items"`
	Toasts    []notify.Toast      `json:"toasts"`
	Redirect  *Redirect           `json:"redirect,omitempty"`
	Order     any                 `json:"order,omitempty"`
}

// Redirect tells the frontend where to navigate, with an optional state
// payload.
type Redirect struct {
	Location string `json:"location"`
	State    any    `json:"state,omitempty"`
}

// StartCheckout handles POST /api/checkout.
func (h *CheckoutHandler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	var req StartCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode checkout request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	user := auth.UserContext{UserID: req.UserID, Authenticated: req.UserID != 0}

	session, err := h.sessions.Start(r.Context(), user, req.Items)
	if err != nil {
		// Precondition failures redirect without a user-facing error.
		switch {
		case errors.Is(err, checkout.ErrNotAuthenticated):
			WriteJSON(w, http.StatusUnauthorized, CheckoutState{
				Toasts:   []notify.Toast{},
				Redirect: &Redirect{Location: "/login", State: map[string]string{"from": "/checkout"}},
			}, h.log)
		case errors.Is(err, checkout.ErrEmptyCart):
			WriteJSON(w, http.StatusBadRequest, CheckoutState{
				Toasts:   []notify.Toast{},
				Redirect: &Redirect{Location: "/products"},
			}, h.log)
		default:
			h.log.Error("failed to start checkout", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, h.state(session), h.log)
}

// GetCheckout handles GET /api/checkout/{sessionID}.
func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, h.state(session), h.log)
}

// UpdateShipping handles PUT /api/checkout/{sessionID}/shipping. The body
// is a flat object of shipping fields; each present field is recorded as
// a user edit.
func (h *CheckoutHandler) UpdateShipping(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	for name, value := range fields {
		if err := session.Wizard.SetField(name, value); err != nil {
			WriteError(w, http.StatusBadRequest, "Unknown shipping field: "+name, h.log)
			return
		}
	}

	WriteJSON(w, http.StatusOK, h.state(session), h.log)
}

// NextStep handles POST /api/checkout/{sessionID}/next.
func (h *CheckoutHandler) NextStep(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}
	session.Wizard.Next()
	WriteJSON(w, http.StatusOK, h.state(session), h.log)
}

// PrevStep handles POST /api/checkout/{sessionID}/back.
func (h *CheckoutHandler) PrevStep(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}
	session.Wizard.Back()
	WriteJSON(w, http.StatusOK, h.state(session), h.log)
}

// Submit handles POST /api/checkout/{sessionID}/submit.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	summary, err := session.Wizard.Submit(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrSubmitInFlight):
			// Second submit while in flight is a no-op.
			WriteJSON(w, http.StatusConflict, h.state(session), h.log)
		case errors.Is(err, checkout.ErrNotInReview), errors.Is(err, checkout.ErrCompleted):
			WriteJSON(w, http.StatusConflict, h.state(session), h.log)
		default:
			// Transport failure: the wizard already surfaced a toast and
			// returned to review.
			h.log.Error("order submission failed", "session_id", session.ID, "error", err)
			WriteJSON(w, http.StatusBadGateway, h.state(session), h.log)
		}
		return
	}

	state := h.state(session)
	state.Order = summary
	WriteJSON(w, http.StatusOK, state, h.log)
}

func (h *CheckoutHandler) lookup(w http.ResponseWriter, r *http.Request) (*checkout.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	session, err := h.sessions.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			WriteError(w, http.StatusNotFound, "Checkout session not found", h.log)
		} else {
			h.log.Error("failed to load checkout session", "session_id", id, "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return nil, false
	}
	return session, true
}

func (h *CheckoutHandler) state(s *checkout.Session) CheckoutState {
	state := CheckoutState{
		SessionID: s.ID,
		Step:      s.Wizard.Step(),
		Form:      s.Wizard.Form(),
		Totals:    s.Wizard.Totals(),
		Items:     s.Wizard.Items(),
		Toasts:    s.Toasts.Drain(),
	}
	if route, payload, ok := s.Routes.Last(); ok {
		state.Redirect = &Redirect{Location: route, State: payload}
	}
	return state
}
