package domain

import (
	"strings"
	"time"
)

// Order statuses.
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
)

// Payment methods.
const (
	PaymentCOD    = "COD"
	PaymentBKash  = "bKash"
	PaymentNagad  = "Nagad"
	PaymentRocket = "Rocket"
)

// DefaultCity is used when the customer leaves the city blank.
const DefaultCity = "Dhaka"

// LowStockThreshold marks products with fewer units as stock alerts.
const LowStockThreshold = 10

// OrderIDPrefix starts every order id.
const OrderIDPrefix = "RD-"

// CustomerDetails is the delivery contact captured at checkout.
type CustomerDetails struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address"`
	City     string `json:"city"`
}

// Normalize trims whitespace and applies the default city.
func (c CustomerDetails) Normalize() CustomerDetails {
	c.FullName = strings.TrimSpace(c.FullName)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.Address = strings.TrimSpace(c.Address)
	c.City = strings.TrimSpace(c.City)
	if c.City == "" {
		c.City = DefaultCity
	}
	return c
}

// Order is a placed purchase. Only Status changes after creation.
type Order struct {
	ID            string          `json:"id"`
	Customer      CustomerDetails `json:"customer"`
	Items         []CartItem      `json:"items"`
	Subtotal      int64           `json:"subtotal"`
	DeliveryFee   int64           `json:"delivery_fee"`
	Total         int64           `json:"total"`
	CreatedAt     time.Time       `json:"date"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method,omitempty"`
}

// ValidStatuses returns the order statuses in lifecycle order.
func ValidStatuses() []string {
	return []string{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
	}
}

// IsValidStatus checks if a status string is valid.
func IsValidStatus(status string) bool {
	return statusRank(status) >= 0
}

func statusRank(status string) int {
	for i, s := range ValidStatuses() {
		if s == status {
			return i
		}
	}
	return -1
}

// IsForwardTransition reports whether moving from one status to another
// follows the lifecycle order. Staying put is not a transition.
func IsForwardTransition(from, to string) bool {
	f, t := statusRank(from), statusRank(to)
	return f >= 0 && t > f
}

// IsValidPaymentMethod checks if m is a supported payment method.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCOD, PaymentBKash, PaymentNagad, PaymentRocket:
		return true
	}
	return false
}

// Analytics summarises the order book and inventory for the admin dashboard.
type Analytics struct {
	Revenue         int64          `json:"revenue"`
	OrderCount      int            `json:"order_count"`
	CustomerCount   int            `json:"customer_count"`
	StockAlerts     int            `json:"stock_alerts"`
	StatusBreakdown map[string]int `json:"status_breakdown"`
}

// ComputeAnalytics derives the dashboard figures. Customers are counted by
// distinct phone number.
func ComputeAnalytics(orders []Order, products []Product) Analytics {
	a := Analytics{
		OrderCount:      len(orders),
		StatusBreakdown: make(map[string]int, len(ValidStatuses())),
	}
	for _, s := range ValidStatuses() {
		a.StatusBreakdown[s] = 0
	}
	phones := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		a.Revenue += o.Total
		phones[o.Customer.Phone] = struct{}{}
		a.StatusBreakdown[o.Status]++
	}
	a.CustomerCount = len(phones)
	for i := range products {
		if products[i].Stock != nil && *products[i].Stock < LowStockThreshold {
			a.StockAlerts++
		}
	}
	return a
}

// MatchesQuery reports whether the order matches an admin search term by
// customer name (case-insensitive), phone or order id.
func (o *Order) MatchesQuery(q string) bool {
	q = strings.TrimSpace(q)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(o.Customer.FullName), strings.ToLower(q)) ||
		strings.Contains(o.Customer.Phone, q) ||
		strings.Contains(strings.ToUpper(o.ID), strings.ToUpper(q))
}
