package models

// Address represents a saved delivery address on a user's profile
type Address struct {
	ID        string `bson:"_id,omitempty" json:"id,omitempty"`
	Label     string `bson:"label" json:"label"`
	Street    string `bson:"street" json:"street"`
	City      string `bson:"city" json:"city"`
	State     string `bson:"state" json:"state"`
	ZipCode   string `bson:"zipcode" json:"zipCode"`
	IsDefault bool   `bson:"is_default" json:"isDefault"`
}

// User represents an account held by the user service
type User struct {
	ID       string `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Phone    string `bson:"phone" json:"phone,omitempty"`
	IsActive bool   `bson:"is_active" json:"isActive"`
}
