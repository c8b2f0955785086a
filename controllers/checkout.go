// controllers/checkout.go
package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-foodorder/checkout"
)

// CheckoutController drives the checkout flow over HTTP. The flow state
// itself lives in the session's orchestrator.
type CheckoutController struct{}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController() *CheckoutController {
	return &CheckoutController{}
}

// BeginCheckout runs the entry guards and returns what the checkout page
// needs: cart, addresses with a pre-selected one, delivery fee and total
func (cc *CheckoutController) BeginCheckout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	result, err := sess.Checkout.Begin(r.Context(), "/checkout")
	if err != nil {
		var loginErr *checkout.LoginRequiredError
		switch {
		case errors.As(err, &loginErr):
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":      "Login required",
				"redirectTo": "/login",
				"returnTo":   loginErr.ReturnTo,
			})
		case errors.Is(err, checkout.ErrEmptyCart):
			http.Error(w, "Cart is empty", http.StatusBadRequest)
		case errors.Is(err, checkout.ErrCorruptCart):
			writeJSON(w, http.StatusConflict, map[string]string{
				"error":  "Some cart items are missing required information",
				"action": "clear_cart",
			})
		default:
			serviceError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// PlaceOrder submits the order and returns the payment redirect URL
func (cc *CheckoutController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	var req checkout.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	result, err := sess.Checkout.PlaceOrder(r.Context(), req)
	if err != nil {
		var validationErr *checkout.ValidationError
		var loginErr *checkout.LoginRequiredError
		switch {
		case errors.As(err, &validationErr):
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":   "Please fill in the missing address fields",
				"missing": validationErr.Missing,
			})
		case errors.As(err, &loginErr):
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":      "Login required",
				"redirectTo": "/login",
				"returnTo":   loginErr.ReturnTo,
			})
		case errors.Is(err, checkout.ErrPhoneRequired):
			writeJSON(w, http.StatusConflict, map[string]string{
				"error":      "A phone number is required to place orders",
				"redirectTo": "/profile",
			})
		case errors.Is(err, checkout.ErrSubmissionInFlight):
			http.Error(w, "An order is already being submitted", http.StatusTooManyRequests)
		case errors.Is(err, checkout.ErrEmptyCart):
			http.Error(w, "Cart is empty", http.StatusBadRequest)
		default:
			// Order or payment step failed; retry is user-initiated.
			http.Error(w, "Failed to place order. Please try again.", http.StatusBadGateway)
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// CheckoutSuccess clears the cart after the external payment flow came
// back successful, then points the client at order history
func (cc *CheckoutController) CheckoutSuccess(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	sess.Checkout.Finish()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":              "Payment successful",
		"redirectTo":           "/orders",
		"redirectAfterSeconds": 5,
	})
}
