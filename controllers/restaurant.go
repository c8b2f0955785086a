// controllers/restaurant.go
package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"go-foodorder/services"
)

// RestaurantController proxies catalog browsing requests
type RestaurantController struct {
	Catalog *services.CatalogService
}

// NewRestaurantController creates a new RestaurantController
func NewRestaurantController(catalog *services.CatalogService) *RestaurantController {
	return &RestaurantController{Catalog: catalog}
}

// GetRestaurants lists all restaurants
func (rc *RestaurantController) GetRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := rc.Catalog.GetRestaurants(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"restaurants": restaurants})
}

// GetRestaurant fetches one restaurant
func (rc *RestaurantController) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant, err := rc.Catalog.GetRestaurant(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"restaurant": restaurant})
}

// GetMenu fetches the live menu for a restaurant
func (rc *RestaurantController) GetMenu(w http.ResponseWriter, r *http.Request) {
	items, err := rc.Catalog.GetRestaurantMenu(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}
