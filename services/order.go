// services/order.go
package services

import (
	"context"
	"fmt"
	"net/url"

	"go-foodorder/models"
)

// OrderService is the adapter to the order service
type OrderService struct {
	client *Client
}

// NewOrderService creates a new OrderService
func NewOrderService(client *Client) *OrderService {
	return &OrderService{client: client}
}

// CreateOrderRequest is the payload the order service consumes
type CreateOrderRequest struct {
	RestaurantID    string             `json:"restaurantId"`
	Items           []models.OrderItem `json:"items"`
	DeliveryAddress models.Address     `json:"deliveryAddress"`
	CustomerName    string             `json:"customerName"`
	CustomerPhone   string             `json:"customerPhone"`
}

// CreateOrder submits a new order
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	var resp struct {
		Order models.Order `json:"order"`
	}
	if err := s.client.post(ctx, "/api/orders", req, &resp); err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}
	return &resp.Order, nil
}

// GetOrders lists the authenticated user's orders
func (s *OrderService) GetOrders(ctx context.Context) ([]models.Order, error) {
	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	if err := s.client.get(ctx, "/api/orders", &resp); err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return resp.Orders, nil
}

// GetOrder fetches a single order
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var resp struct {
		Order models.Order `json:"order"`
	}
	if err := s.client.get(ctx, "/api/orders/"+url.PathEscape(orderID), &resp); err != nil {
		return nil, fmt.Errorf("fetching order %s: %w", orderID, err)
	}
	return &resp.Order, nil
}

// CancelOrder cancels an order that has not been confirmed yet
func (s *OrderService) CancelOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var resp struct {
		Order models.Order `json:"order"`
	}
	if err := s.client.put(ctx, "/api/orders/"+url.PathEscape(orderID)+"/cancel", nil, &resp); err != nil {
		return nil, fmt.Errorf("cancelling order %s: %w", orderID, err)
	}
	return &resp.Order, nil
}
