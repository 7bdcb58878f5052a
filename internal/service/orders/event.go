package orders

import (
	"time"
)

// Event is a single order event published by the storefront.
type Event struct {
	OrderID   int64     `json:"order_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
