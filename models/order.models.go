package models

import "time"

// OrderItem is one line of an order as the order service consumes it
type OrderItem struct {
	ID       string  `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order represents an order created by the order service. The storefront
// treats it as opaque beyond the fields that drive payment and redirects.
type Order struct {
	OrderID         string      `json:"orderId"`
	RestaurantID    string      `json:"restaurantId"`
	Items           []OrderItem `json:"items"`
	DeliveryAddress Address     `json:"deliveryAddress"`
	CustomerName    string      `json:"customerName"`
	CustomerPhone   string      `json:"customerPhone"`
	Status          string      `json:"status"` // e.g. "pending", "confirmed"
	Total           float64     `json:"total"`
	CreatedAt       time.Time   `json:"createdAt"`
}
