// routes/routes.go
package routes

import (
	"go-foodorder/controllers"
	"go-foodorder/middleware"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, userController *controllers.UserController, restaurantController *controllers.RestaurantController, cartController *controllers.CartController, checkoutController *controllers.CheckoutController, orderController *controllers.OrderController) {
	// Public routes
	router.HandleFunc("/session", userController.GetSession).Methods("GET")
	router.HandleFunc("/signup", userController.Signup).Methods("POST")
	router.HandleFunc("/login", userController.Login).Methods("POST")
	router.HandleFunc("/logout", userController.Logout).Methods("POST")

	// Restaurant routes
	router.HandleFunc("/restaurants", restaurantController.GetRestaurants).Methods("GET")
	router.HandleFunc("/restaurants/{id}", restaurantController.GetRestaurant).Methods("GET")
	router.HandleFunc("/restaurants/{id}/menu", restaurantController.GetMenu).Methods("GET")

	// Cart routes work for guests too; the session decides the backend
	router.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	router.HandleFunc("/cart/items", cartController.AddItem).Methods("POST")
	router.HandleFunc("/cart/items/{item_id}", cartController.UpdateItem).Methods("PUT")
	router.HandleFunc("/cart/items/{item_id}", cartController.RemoveItem).Methods("DELETE")
	router.HandleFunc("/cart", cartController.ClearCart).Methods("DELETE")
	router.HandleFunc("/cart/restaurant", cartController.SetRestaurant).Methods("PUT")
	router.HandleFunc("/cart/refresh", cartController.RefreshCart).Methods("POST")

	// Protected routes
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/profile", userController.GetProfile).Methods("GET")
	protected.HandleFunc("/profile", userController.UpdateProfile).Methods("PUT")

	// Address routes
	protected.HandleFunc("/addresses", userController.GetAddresses).Methods("GET")
	protected.HandleFunc("/addresses", userController.AddAddress).Methods("POST")
	protected.HandleFunc("/addresses/{id}", userController.UpdateAddress).Methods("PUT")
	protected.HandleFunc("/addresses/{id}", userController.DeleteAddress).Methods("DELETE")
	protected.HandleFunc("/addresses/{id}/default", userController.SetDefaultAddress).Methods("PUT")

	// Checkout routes
	protected.HandleFunc("/checkout", checkoutController.BeginCheckout).Methods("GET")
	protected.HandleFunc("/checkout/order", checkoutController.PlaceOrder).Methods("POST")
	protected.HandleFunc("/checkout/success", checkoutController.CheckoutSuccess).Methods("GET")

	// Order routes
	protected.HandleFunc("/orders", orderController.GetOrders).Methods("GET")
	protected.HandleFunc("/orders/{id}", orderController.GetOrder).Methods("GET")
	protected.HandleFunc("/orders/{id}/cancel", orderController.CancelOrder).Methods("POST")
	protected.HandleFunc("/orders/{id}/payments", orderController.GetPayments).Methods("GET")
	protected.HandleFunc("/orders/{id}/delivery", orderController.GetDelivery).Methods("GET")
}
