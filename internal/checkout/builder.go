package checkout

import (
	"errors"
	"fmt"

	"github.com/ChathuraSudaraka/WEB2-sub001/internal/models"
)

const (
	defaultColor         = "Default"
	defaultSize          = "M"
	defaultPaymentMethod = "STRIPE"
)

var (
	ErrNoUser    = errors.New("no authenticated user for order")
	ErrEmptyCart = errors.New("cart must contain at least one item")
)

// BuildOrderRequest maps cart lines and the shipping form into the
// order-creation payload. Pure; required-field validation happens
// upstream in the form layer.
func BuildOrderRequest(items []models.CartItem, form models.ShippingForm, userID int64, total float64) (models.OrderCreateRequest, error) {
	return buildOrderRequest(items, form, userID, total, defaultPaymentMethod)
}

// BuildOrderRequestWithPayment is BuildOrderRequest with the payment
// method overridden.
func BuildOrderRequestWithPayment(items []models.CartItem, form models.ShippingForm, userID int64, total float64, paymentMethod string) (models.OrderCreateRequest, error) {
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}
	return buildOrderRequest(items, form, userID, total, paymentMethod)
}

func buildOrderRequest(items []models.CartItem, form models.ShippingForm, userID int64, total float64, paymentMethod string) (models.OrderCreateRequest, error) {
	if userID == 0 {
		return models.OrderCreateRequest{}, ErrNoUser
	}

	wireItems := make([]models.WireItem, 0, len(items))
	for _, item := range items {
		color := item.Color
		if color == "" {
			color = defaultColor
		}
		size := item.Size
		if size == "" {
			size = defaultSize
		}
		wireItems = append(wireItems, models.WireItem{
			ProductID:   item.ID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Color:       color,
			Size:        size,
		})
	}

	return models.OrderCreateRequest{
		UserID:          userID,
		TotalAmount:     total,
		ShippingAddress: FormatShippingAddress(form),
		PaymentMethod:   paymentMethod,
		Items:           wireItems,
	}, nil
}

// FormatShippingAddress joins the shipping fields into the single
// human-readable string the order API stores:
// "first last, address, city, state zip, country".
func FormatShippingAddress(form models.ShippingForm) string {
	return fmt.Sprintf("%s %s, %s, %s, %s %s, %s",
		form.FirstName, form.LastName,
		form.Address,
		form.City,
		form.State, form.ZipCode,
		form.Country,
	)
}
