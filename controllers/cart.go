// controllers/cart.go
package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"go-foodorder/cart"
	"go-foodorder/services"
)

// CartController handles cart-related requests. The cart itself lives on
// the session; this controller only shapes HTTP around it.
type CartController struct {
	Catalog *services.CatalogService
}

// NewCartController creates a new CartController
func NewCartController(catalog *services.CatalogService) *CartController {
	return &CartController{Catalog: catalog}
}

// GetCart returns the session's cart with computed totals
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	body := map[string]interface{}{"cart": sess.Cart.Cart()}
	if err := sess.Cart.LastLoadError(); err != nil {
		// Previously loaded state is intact; the client may retry.
		body["loadError"] = "Failed to load cart, please retry"
	}
	writeJSON(w, http.StatusOK, body)
}

// AddItem resolves a menu item against the catalog and adds one unit of
// it to the cart
func (cc *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	var input struct {
		ItemID string `json:"itemId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ItemID == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	item, err := cc.Catalog.GetMenuItem(r.Context(), input.ItemID)
	if err != nil {
		serviceError(w, err)
		return
	}
	if !item.IsAvailable {
		http.Error(w, "Item is currently unavailable", http.StatusConflict)
		return
	}

	if err := sess.Cart.AddItem(*item); err != nil {
		if errors.Is(err, cart.ErrRestaurantMismatch) {
			writeJSON(w, http.StatusConflict, map[string]string{
				"error":  "Cart holds items from a different restaurant",
				"action": "clear_cart",
			})
			return
		}
		http.Error(w, "Error adding item to cart", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"cart": sess.Cart.Cart()})
}

// UpdateItem sets the quantity of one line; zero or less removes it
func (cc *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	itemID := mux.Vars(r)["item_id"]
	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	sess.Cart.UpdateQuantity(itemID, input.Quantity)
	writeJSON(w, http.StatusOK, map[string]interface{}{"cart": sess.Cart.Cart()})
}

// RemoveItem removes one line from the cart
func (cc *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	sess.Cart.RemoveItem(mux.Vars(r)["item_id"])
	writeJSON(w, http.StatusOK, map[string]interface{}{"cart": sess.Cart.Cart()})
}

// ClearCart empties the cart
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	sess.Cart.ClearCart()
	writeJSON(w, http.StatusOK, map[string]interface{}{"cart": sess.Cart.Cart()})
}

// SetRestaurant switches the cart to a restaurant, discarding any items
// from a previous one. The response reports how many lines were
// discarded so the client can warn the user.
func (cc *CartController) SetRestaurant(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	var input struct {
		RestaurantID string `json:"restaurantId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.RestaurantID == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	discarded := sess.Cart.SetRestaurant(input.RestaurantID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cart":      sess.Cart.Cart(),
		"discarded": discarded,
	})
}

// RefreshCart reloads the cart from its active backend, revalidating
// against the live menu for authenticated sessions
func (cc *CartController) RefreshCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	if err := sess.Cart.Reload(r.Context()); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"cart": sess.Cart.Cart()})
}
