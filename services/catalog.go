// services/catalog.go
package services

import (
	"context"
	"fmt"
	"net/url"

	"go-foodorder/models"
)

// CatalogService is the adapter to the restaurant catalog service
type CatalogService struct {
	client *Client
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(client *Client) *CatalogService {
	return &CatalogService{client: client}
}

// GetRestaurants lists all restaurants
func (s *CatalogService) GetRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	var resp struct {
		Restaurants []models.Restaurant `json:"restaurants"`
	}
	if err := s.client.get(ctx, "/api/restaurants", &resp); err != nil {
		return nil, fmt.Errorf("listing restaurants: %w", err)
	}
	return resp.Restaurants, nil
}

// GetRestaurant fetches one restaurant, including its delivery fee and
// open state, which checkout depends on.
func (s *CatalogService) GetRestaurant(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	var resp struct {
		Restaurant models.Restaurant `json:"restaurant"`
	}
	if err := s.client.get(ctx, "/api/restaurants/"+url.PathEscape(restaurantID), &resp); err != nil {
		return nil, fmt.Errorf("fetching restaurant %s: %w", restaurantID, err)
	}
	return &resp.Restaurant, nil
}

// GetRestaurantMenu fetches the live menu for a restaurant
func (s *CatalogService) GetRestaurantMenu(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	var resp struct {
		Items []models.MenuItem `json:"items"`
	}
	if err := s.client.get(ctx, "/api/restaurants/"+url.PathEscape(restaurantID)+"/menu", &resp); err != nil {
		return nil, fmt.Errorf("fetching menu for restaurant %s: %w", restaurantID, err)
	}
	return resp.Items, nil
}

// GetMenuItem resolves a single menu item by id
func (s *CatalogService) GetMenuItem(ctx context.Context, itemID string) (*models.MenuItem, error) {
	var resp struct {
		Item models.MenuItem `json:"item"`
	}
	if err := s.client.get(ctx, "/api/menu-items/"+url.PathEscape(itemID), &resp); err != nil {
		return nil, fmt.Errorf("fetching menu item %s: %w", itemID, err)
	}
	return &resp.Item, nil
}
