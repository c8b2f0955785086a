// services/user.go
package services

import (
	"context"
	"fmt"
	"net/url"

	"go-foodorder/models"
)

// UserService is the adapter to the user service: profile, address book,
// and the server-side cart of an authenticated user.
type UserService struct {
	client *Client
}

// NewUserService creates a new UserService
func NewUserService(client *Client) *UserService {
	return &UserService{client: client}
}

// GetProfile fetches the authenticated user's profile
func (s *UserService) GetProfile(ctx context.Context) (*models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := s.client.get(ctx, "/api/users/profile", &resp); err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	return &resp.User, nil
}

// UpdateProfile updates name and phone on the profile
func (s *UserService) UpdateProfile(ctx context.Context, name, phone string) (*models.User, error) {
	body := map[string]string{"name": name, "phone": phone}
	var resp struct {
		User models.User `json:"user"`
	}
	if err := s.client.put(ctx, "/api/users/profile", body, &resp); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return &resp.User, nil
}

// GetAddresses lists the user's saved delivery addresses
func (s *UserService) GetAddresses(ctx context.Context) ([]models.Address, error) {
	var resp struct {
		Addresses []models.Address `json:"addresses"`
	}
	if err := s.client.get(ctx, "/api/users/addresses", &resp); err != nil {
		return nil, fmt.Errorf("listing addresses: %w", err)
	}
	return resp.Addresses, nil
}

// AddAddress saves a new address on the profile
func (s *UserService) AddAddress(ctx context.Context, addr models.Address) (*models.Address, error) {
	var resp struct {
		Address models.Address `json:"address"`
	}
	if err := s.client.post(ctx, "/api/users/addresses", addr, &resp); err != nil {
		return nil, fmt.Errorf("adding address: %w", err)
	}
	return &resp.Address, nil
}

// UpdateAddress updates a saved address
func (s *UserService) UpdateAddress(ctx context.Context, id string, addr models.Address) (*models.Address, error) {
	var resp struct {
		Address models.Address `json:"address"`
	}
	if err := s.client.put(ctx, "/api/users/addresses/"+url.PathEscape(id), addr, &resp); err != nil {
		return nil, fmt.Errorf("updating address %s: %w", id, err)
	}
	return &resp.Address, nil
}

// DeleteAddress removes a saved address
func (s *UserService) DeleteAddress(ctx context.Context, id string) error {
	if err := s.client.delete(ctx, "/api/users/addresses/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("deleting address %s: %w", id, err)
	}
	return nil
}

// SetDefaultAddress marks an address as the default
func (s *UserService) SetDefaultAddress(ctx context.Context, id string) error {
	if err := s.client.put(ctx, "/api/users/addresses/"+url.PathEscape(id)+"/default", nil, nil); err != nil {
		return fmt.Errorf("setting default address %s: %w", id, err)
	}
	return nil
}

// GetCart fetches the persisted cart: item ids and quantities only
func (s *UserService) GetCart(ctx context.Context) ([]models.ItemRef, error) {
	var resp struct {
		Items []models.ItemRef `json:"items"`
	}
	if err := s.client.get(ctx, "/api/users/cart", &resp); err != nil {
		return nil, fmt.Errorf("fetching cart: %w", err)
	}
	return resp.Items, nil
}

// UpdateCart replaces the persisted cart. Prices are never sent; the
// catalog re-resolves them on every load.
func (s *UserService) UpdateCart(ctx context.Context, items []models.ItemRef) error {
	if items == nil {
		items = []models.ItemRef{}
	}
	body := map[string]interface{}{"items": items}
	if err := s.client.put(ctx, "/api/users/cart", body, nil); err != nil {
		return fmt.Errorf("updating cart: %w", err)
	}
	return nil
}
