// services/base.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ErrAuthExpired signals a 401 that survived the refresh attempt. The
// session must be logged out and the in-flight operation abandoned.
var ErrAuthExpired = errors.New("authentication expired")

// StatusError is a non-2xx response from a backend service.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("service returned %d: %s", e.Code, e.Message)
}

// TokenSource supplies the bearer token for outbound calls and absorbs
// credential changes. The session state implements it.
type TokenSource interface {
	AccessToken() string
	SetAccessToken(token string)
	Invalidate()
}

// RefreshFunc exchanges the stale credential for a fresh access token.
type RefreshFunc func(ctx context.Context) (string, error)

// Client is the base HTTP adapter shared by the service clients. A 401
// triggers at most one token refresh and one retry; if that fails the
// token source is invalidated and ErrAuthExpired is returned.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	refresh RefreshFunc

	refreshMu sync.Mutex
}

// NewClient creates a base client for one backend service.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
}

// SetRefresh installs the token refresh hook. Installed after construction
// because the auth client performing the refresh is itself a Client.
func (c *Client) SetRefresh(fn RefreshFunc) {
	c.refresh = fn
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	usedToken, err := c.roundTrip(ctx, method, path, body, out)
	if err == nil {
		return nil
	}

	var se *StatusError
	if errors.As(err, &se) && se.Code == http.StatusUnauthorized && c.tokens != nil && usedToken != "" {
		if c.refreshed(ctx, usedToken) {
			if _, err := c.roundTrip(ctx, method, path, body, out); err == nil {
				return nil
			}
		}
		log.Printf("[services] %s %s: credential rejected, logging session out", method, path)
		c.tokens.Invalidate()
		return ErrAuthExpired
	}
	return err
}

// refreshed obtains a fresh access token. Concurrent 401s serialize here;
// a caller whose token was already replaced skips the extra refresh.
func (c *Client) refreshed(ctx context.Context, usedToken string) bool {
	if c.refresh == nil {
		return false
	}
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if current := c.tokens.AccessToken(); current != "" && current != usedToken {
		return true
	}
	token, err := c.refresh(ctx)
	if err != nil {
		log.Printf("[services] token refresh failed: %v", err)
		return false
	}
	c.tokens.SetAccessToken(token)
	return true
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out interface{}) (string, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	usedToken := ""
	if c.tokens != nil {
		if t := c.tokens.AccessToken(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
			usedToken = t
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return usedToken, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return usedToken, &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return usedToken, fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}
	return usedToken, nil
}
