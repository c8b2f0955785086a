// services/auth.go
package services

import (
	"context"
	"fmt"

	"go-foodorder/models"
)

// AuthService is the adapter to the auth endpoints of the user service
type AuthService struct {
	client *Client
}

// NewAuthService creates a new AuthService
func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

// AuthResult carries the outcome of signup and login
type AuthResult struct {
	User         models.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

// Signup registers a new account
func (s *AuthService) Signup(ctx context.Context, name, email, phone, password string) (*AuthResult, error) {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"phone":    phone,
		"password": password,
	}
	var result AuthResult
	if err := s.client.post(ctx, "/api/auth/signup", body, &result); err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	return &result, nil
}

// Login authenticates an existing account
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result AuthResult
	if err := s.client.post(ctx, "/api/auth/login", body, &result); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &result, nil
}

// Refresh exchanges a refresh token for a new access token
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	body := map[string]string{"refreshToken": refreshToken}
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := s.client.post(ctx, "/api/auth/refresh", body, &resp); err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}
	return resp.AccessToken, nil
}

// Validate checks whether the current credential is still accepted.
// Consulted once at session startup.
func (s *AuthService) Validate(ctx context.Context) (*models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := s.client.post(ctx, "/api/auth/validate", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
