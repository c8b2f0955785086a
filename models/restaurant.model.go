package models

// Restaurant represents a restaurant in the catalog service
type Restaurant struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Cuisine     string  `json:"cuisine"`
	Address     string  `json:"address"`
	Phone       string  `json:"phone"`
	DeliveryFee float64 `json:"deliveryFee"`
	IsOpen      bool    `json:"isOpen"`
	Rating      float64 `json:"rating"`
}

// MenuItem represents one entry on a restaurant's live menu
type MenuItem struct {
	ItemID       string  `json:"itemId"`
	RestaurantID string  `json:"restaurantId"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	IsAvailable  bool    `json:"isAvailable"`
}
