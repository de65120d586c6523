package models

import (
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// Order status values. Transitions are admin-driven direct sets with no
// enforced ordering between states.
const (
	OrderStatusNotPlaced      = "Order not placed"
	OrderStatusInProgress     = "In progress"
	OrderStatusPlaced         = "Order placed"
	OrderStatusOutForDelivery = "Out for delivery"
	OrderStatusDelivered      = "Delivered"
	OrderStatusCanceled       = "Canceled"
)

// Payment status values, same unguarded direct-set semantics.
const (
	PaymentStatusNotDone    = "Not done"
	PaymentStatusInProgress = "In progress"
	PaymentStatusFailed     = "Failed"
	PaymentStatusSuccess    = "Success"
)

var orderStatuses = []string{
	OrderStatusNotPlaced,
	OrderStatusInProgress,
	OrderStatusPlaced,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCanceled,
}

var paymentStatuses = []string{
	PaymentStatusNotDone,
	PaymentStatusInProgress,
	PaymentStatusFailed,
	PaymentStatusSuccess,
}

func ValidOrderStatus(status string) bool {
	for _, s := range orderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func ValidPaymentStatus(status string) bool {
	for _, s := range paymentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// ValidPhone reports whether s is exactly ten digits.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// Order is the immutable checkout snapshot. It copies the cart lines at
// placement time and is never embedded back into the user document.
type Order struct {
	gorm.Model
	UserID        uint        `json:"userId"`
	Name          string      `json:"name"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	Total         float64     `json:"total"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"paymentStatus"`
	ManualPayment bool        `json:"manualPayment"`
	TransactionID string      `json:"transactionId"`
	TrackingID    string      `json:"-"`
	Items         []OrderItem `json:"books" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is one snapshot line owned by its order.
type OrderItem struct {
	gorm.Model
	OrderID  uint    `json:"orderId"`
	BookID   uint    `json:"bookId"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type OrderLineInput struct {
	BookID   uint `json:"bookId"`
	Quantity int  `json:"quantity"`
}

type PlaceOrderInput struct {
	Order   []OrderLineInput `json:"order"`
	Address string           `json:"address"`
	Name    string           `json:"name"`
	Phone   string           `json:"phone"`
	Total   float64          `json:"total"`
}

var (
	ErrAddressRequired = errors.New("Address is required to place an order")
	ErrInvalidPhone    = errors.New("Phone number must be 10 digits")
	ErrCartEmpty       = errors.New("Cart is empty")
	ErrInvalidQuantity = errors.New("Quantity must be at least 1")
)

// Validate checks the checkout inputs: non-empty address, ten-digit
// phone, at least one line, every line quantity at least one.
func (in PlaceOrderInput) Validate() error {
	if strings.TrimSpace(in.Address) == "" {
		return ErrAddressRequired
	}
	if !ValidPhone(in.Phone) {
		return ErrInvalidPhone
	}
	if len(in.Order) == 0 {
		return ErrCartEmpty
	}
	for _, line := range in.Order {
		if line.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}
	return nil
}
