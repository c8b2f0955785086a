package models

// Payment represents a payment for an order
type Payment struct {
	PaymentID string  `json:"paymentId"`
	OrderID   string  `json:"orderId"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"` // "pending", "completed", "failed"
}

// Delivery represents delivery tracking state for an order
type Delivery struct {
	DeliveryID string `json:"deliveryId"`
	OrderID    string `json:"orderId"`
	DriverID   string `json:"driverId,omitempty"`
	Status     string `json:"status"` // "assigned", "picked_up", "delivered"
	ETA        string `json:"eta,omitempty"`
}
