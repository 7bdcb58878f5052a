package domain

import "time"

type (
	// DeliveryType distinguishes how an order reaches the customer.
	DeliveryType string
	// FulfillmentStatus tracks order progress through fulfillment.
	FulfillmentStatus string
)

// Address is the structured shipping address attached to an order.
type Address struct {
	Street string `json:"address"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip_code"`
}

// Order is the slice of the order entity the dispatch engine consumes.
// Orders are created and owned elsewhere; dispatch mutates only the
// fulfillment status, driver reference and estimated delivery time.
type Order struct {
	ID                int64
	OrderNumber       string
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	Total             float64
	DeliveryType      DeliveryType
	ShippingAddress   Address
	FulfillmentStatus FulfillmentStatus
	DriverID          *int64
	EstimatedDelivery *time.Time
}
