// services/delivery.go
package services

import (
	"context"
	"fmt"
	"net/url"

	"go-foodorder/models"
)

// DeliveryService is the adapter to the delivery tracking service
type DeliveryService struct {
	client *Client
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(client *Client) *DeliveryService {
	return &DeliveryService{client: client}
}

// GetDelivery fetches the delivery tracking state for an order
func (s *DeliveryService) GetDelivery(ctx context.Context, orderID string) (*models.Delivery, error) {
	var resp struct {
		Delivery models.Delivery `json:"delivery"`
	}
	if err := s.client.get(ctx, "/api/delivery/"+url.PathEscape(orderID), &resp); err != nil {
		return nil, fmt.Errorf("fetching delivery for order %s: %w", orderID, err)
	}
	return &resp.Delivery, nil
}
