package models

// ItemRef is the minimal cart line the user service persists.
// The remote cart intentionally stores only id and quantity; price and
// availability are always re-resolved from the catalog.
type ItemRef struct {
	ItemID   string `bson:"item_id" json:"itemId"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// LineItem is one menu item plus quantity within a cart.
type LineItem struct {
	ItemID       string  `bson:"item_id" json:"itemId"`
	RestaurantID string  `bson:"restaurant_id" json:"restaurantId"`
	Name         string  `bson:"name" json:"name"`
	Price        float64 `bson:"price" json:"price"`
	Quantity     int     `bson:"quantity" json:"quantity"`
	IsAvailable  bool    `bson:"is_available" json:"isAvailable"`
}

// Cart is the in-memory shopping cart. A non-empty cart only ever holds
// items from a single restaurant.
type Cart struct {
	Items        []LineItem `json:"items"`
	RestaurantID string     `json:"restaurantId,omitempty"`
	Subtotal     float64    `json:"subtotal"`
	DeliveryFee  float64    `json:"deliveryFee"`
	Total        float64    `json:"total"`
}

// CartSnapshot is the guest cart document kept per browser session.
type CartSnapshot struct {
	SessionID    string     `bson:"_id" json:"-"`
	Items        []LineItem `bson:"items" json:"items"`
	RestaurantID string     `bson:"restaurant_id" json:"restaurantId,omitempty"`
}
