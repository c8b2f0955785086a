// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"go-foodorder/cart"
	"go-foodorder/checkout"
	"go-foodorder/controllers"
	"go-foodorder/middleware"
	"go-foodorder/routes"
	"go-foodorder/services"
	"go-foodorder/session"
	"go-foodorder/utils"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))

	// Initialize EmailService
	emailService := utils.NewEmailService()

	// Connect to MongoDB (guest cart snapshots)
	client := utils.ConnectDB()
	defer func() {
		if err = client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()

	catalogURL := serviceURL("CATALOG_API_URL", "http://localhost:8081")
	authURL := serviceURL("AUTH_API_URL", "http://localhost:8082")
	userURL := serviceURL("USER_API_URL", "http://localhost:8082")
	orderURL := serviceURL("ORDER_API_URL", "http://localhost:8083")
	paymentURL := serviceURL("PAYMENT_API_URL", "http://localhost:8084")
	deliveryURL := serviceURL("DELIVERY_API_URL", "http://localhost:8085")

	// The catalog is public and shared across all sessions.
	catalogService := services.NewCatalogService(services.NewClient(catalogURL, nil))

	// Everything else is session-scoped: clients bound to the session's
	// token, the cart engine and the checkout flow. All wiring lives in
	// this factory.
	manager := session.NewManager(func(id string) *session.Session {
		state := session.NewState()

		authService := services.NewAuthService(services.NewClient(authURL, state))

		userClient := services.NewClient(userURL, state)
		orderClient := services.NewClient(orderURL, state)
		paymentClient := services.NewClient(paymentURL, state)
		deliveryClient := services.NewClient(deliveryURL, state)

		refresh := func(ctx context.Context) (string, error) {
			return authService.Refresh(ctx, state.RefreshToken())
		}
		userClient.SetRefresh(refresh)
		orderClient.SetRefresh(refresh)
		paymentClient.SetRefresh(refresh)
		deliveryClient.SetRefresh(refresh)

		userService := services.NewUserService(userClient)
		orderService := services.NewOrderService(orderClient)
		paymentService := services.NewPaymentService(paymentClient)
		deliveryService := services.NewDeliveryService(deliveryClient)

		engine := cart.NewEngine(
			state,
			cart.NewLocalStore(client, id),
			cart.NewRemoteStore(userService),
			catalogService,
		)

		// A nil *EmailService must not become a non-nil Mailer.
		var mailer checkout.Mailer
		if emailService != nil {
			mailer = emailService
		}

		orchestrator := checkout.NewOrchestrator(
			engine, state, orderService, paymentService,
			userService, catalogService, mailer,
		)

		return &session.Session{
			ID:       id,
			State:    state,
			Cart:     engine,
			Checkout: orchestrator,
			Auth:     authService,
			Users:    userService,
			Orders:   orderService,
			Payments: paymentService,
			Delivery: deliveryService,
		}
	})

	// Initialize controllers
	userController := controllers.NewUserController(manager)
	restaurantController := controllers.NewRestaurantController(catalogService)
	cartController := controllers.NewCartController(catalogService)
	checkoutController := controllers.NewCheckoutController()
	orderController := controllers.NewOrderController()

	// Set up the router
	router := mux.NewRouter()
	router.Use(middleware.SessionMiddleware(manager))
	routes.RegisterRoutes(router, userController, restaurantController, cartController, checkoutController, orderController)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

func serviceURL(envVar, fallback string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return fallback
}
