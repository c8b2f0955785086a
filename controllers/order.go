// controllers/order.go
package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// OrderController proxies order history and delivery tracking requests
type OrderController struct{}

// NewOrderController creates a new OrderController
func NewOrderController() *OrderController {
	return &OrderController{}
}

// GetOrders lists the authenticated user's orders
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	orders, err := sess.Orders.GetOrders(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// GetOrder fetches one order
func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	order, err := sess.Orders.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"order": order})
}

// CancelOrder cancels an order that has not been confirmed yet
func (oc *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	order, err := sess.Orders.CancelOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"order": order})
}

// GetPayments lists payments recorded against an order
func (oc *OrderController) GetPayments(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	payments, err := sess.Payments.GetPaymentsByOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"payments": payments})
}

// GetDelivery fetches delivery tracking for an order
func (oc *OrderController) GetDelivery(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(w, r)
	if sess == nil {
		return
	}

	delivery, err := sess.Delivery.GetDelivery(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"delivery": delivery})
}
