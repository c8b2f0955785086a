// services/payment.go
package services

import (
	"context"
	"fmt"
	"net/url"

	"go-foodorder/models"
)

// PaymentService is the adapter to the payment service
type PaymentService struct {
	client *Client
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(client *Client) *PaymentService {
	return &PaymentService{client: client}
}

// PaymentSession is the external checkout session the payment service
// opens for an order. The storefront hands the browser to RedirectURL.
type PaymentSession struct {
	SessionID   string `json:"sessionId"`
	RedirectURL string `json:"url"`
}

// InitiatePayment opens a payment session for a freshly created order
func (s *PaymentService) InitiatePayment(ctx context.Context, orderID string) (*PaymentSession, error) {
	body := map[string]string{"orderId": orderID}
	var session PaymentSession
	if err := s.client.post(ctx, "/api/payments", body, &session); err != nil {
		return nil, fmt.Errorf("initiating payment for order %s: %w", orderID, err)
	}
	return &session, nil
}

// GetPaymentsByOrder lists payments recorded against an order
func (s *PaymentService) GetPaymentsByOrder(ctx context.Context, orderID string) ([]models.Payment, error) {
	var resp struct {
		Payments []models.Payment `json:"payments"`
	}
	if err := s.client.get(ctx, "/api/payments/order/"+url.PathEscape(orderID), &resp); err != nil {
		return nil, fmt.Errorf("listing payments for order %s: %w", orderID, err)
	}
	return resp.Payments, nil
}
